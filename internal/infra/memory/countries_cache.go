package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"kartografi-service/internal/domain"
)

// CountryLoader fetches the bulk country dataset from the upstream API.
type CountryLoader interface {
	All(ctx context.Context) ([]domain.Country, error)
}

// DefaultCountriesTTL matches the one-hour staleness window the quiz accepts.
const DefaultCountriesTTL = time.Hour

// CountriesCache holds the bulk country dataset in process memory with a lazy
// TTL refresh. Concurrent refreshes collapse into one upstream call; waiters
// block on the in-flight fetch rather than issuing their own.
type CountriesCache struct {
	loader CountryLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu        sync.RWMutex
	data      []domain.Country
	fetchedAt time.Time
}

func NewCountriesCache(loader CountryLoader, ttl time.Duration) *CountriesCache {
	if ttl <= 0 {
		ttl = DefaultCountriesTTL
	}
	return &CountriesCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
	}
}

func (c *CountriesCache) GetAll(ctx context.Context) ([]domain.Country, error) {
	if data, ok := c.fresh(); ok {
		return data, nil
	}

	result, err, _ := c.sf.Do("countries", func() (interface{}, error) {
		// Re-check in case another goroutine refreshed while we queued.
		if data, ok := c.fresh(); ok {
			return data, nil
		}

		data, err := c.loader.All(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.data = data
		c.fetchedAt = c.clock()
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Country), nil
}

func (c *CountriesCache) fresh() ([]domain.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil || c.clock().Sub(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.data, true
}
