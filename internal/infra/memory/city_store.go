package memory

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"kartografi-service/internal/domain"
)

// CityStore is an in-memory city coordinate table.
type CityStore struct {
	mu     sync.RWMutex
	cities []domain.City
}

func NewCityStore(cities []domain.City) *CityStore {
	return &CityStore{cities: append([]domain.City(nil), cities...)}
}

func (s *CityStore) Random(_ context.Context) (*domain.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.cities) == 0 {
		return nil, domain.ErrCityNotFound
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.cities))))
	if err != nil {
		return nil, fmt.Errorf("random city: %w", err)
	}
	city := s.cities[n.Int64()]
	return &city, nil
}

func (s *CityStore) ByName(_ context.Context, name string) (*domain.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, city := range s.cities {
		if city.Name == name {
			copied := city
			return &copied, nil
		}
	}
	return nil, domain.ErrCityNotFound
}
