package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"kartografi-service/internal/domain"
)

// LeaderboardStore keeps score entries in memory. Best-score-only semantics
// live in the app layer; this store just persists and queries entries.
type LeaderboardStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.ScoreEntry
	nextID  int
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{entries: make(map[string]*domain.ScoreEntry), nextID: 1}
}

func (s *LeaderboardStore) Find(_ context.Context, userID, gameType, continent string) (*domain.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.UserID == userID && entry.GameType == gameType && entry.Continent == continent {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, domain.ErrScoreNotFound
}

func (s *LeaderboardStore) Save(_ context.Context, entry *domain.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = "lb" + strconv.Itoa(s.nextID)
		s.nextID++
	}
	stored := *entry
	s.entries[entry.ID] = &stored
	return nil
}

func (s *LeaderboardStore) Top(_ context.Context, gameType, continent string, limit int) ([]domain.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.ScoreEntry, 0)
	for _, entry := range s.entries {
		if entry.GameType != gameType {
			continue
		}
		if continent != "" && entry.Continent != continent {
			continue
		}
		matched = append(matched, *entry)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Score > matched[j].Score })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *LeaderboardStore) ByUser(_ context.Context, userID string) ([]domain.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.ScoreEntry, 0)
	for _, entry := range s.entries {
		if entry.UserID == userID {
			matched = append(matched, *entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Score > matched[j].Score })
	return matched, nil
}
