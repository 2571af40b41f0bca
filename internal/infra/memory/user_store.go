package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"kartografi-service/internal/domain"
)

// UserStore is an in-memory user collection, used when no Mongo URI is
// configured and throughout the tests.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*domain.User), nextID: 1}
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	if user.ID == "" {
		user.ID = "u" + strconv.Itoa(s.nextID)
		s.nextID++
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	return users, nil
}

func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}
