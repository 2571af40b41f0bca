package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"kartografi-service/internal/domain"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike, so login failures don't reveal which it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService handles registration, login, and profile updates. Passwords
// are bcrypt-hashed; hashes never leave this package.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Register creates a user with a hashed password.
func (s *UserService) Register(ctx context.Context, username, password string, points int) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Points:       points,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns the user.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return *user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.List(ctx)
}

// Rename changes a username, enforcing uniqueness.
func (s *UserService) Rename(ctx context.Context, id, username string) (domain.User, error) {
	if taken, err := s.store.GetByUsername(ctx, username); err == nil && taken.ID != id {
		return domain.User{}, domain.ErrUsernameTaken
	}
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.Username = username
	if err := s.store.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

// UpdatePoints overwrites a user's points counter.
func (s *UserService) UpdatePoints(ctx context.Context, id string, points int) (domain.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.Points = points
	if err := s.store.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.store.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
