package app

import (
	"context"

	"kartografi-service/internal/domain"
)

// UserStore abstracts the user collection (Mongo in production, memory in tests).
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// LeaderboardStore abstracts the score entry collection.
type LeaderboardStore interface {
	Find(ctx context.Context, userID, gameType, continent string) (*domain.ScoreEntry, error)
	Save(ctx context.Context, entry *domain.ScoreEntry) error
	Top(ctx context.Context, gameType, continent string, limit int) ([]domain.ScoreEntry, error)
	ByUser(ctx context.Context, userID string) ([]domain.ScoreEntry, error)
}

// CityStore abstracts the city coordinate table.
type CityStore interface {
	Random(ctx context.Context) (*domain.City, error)
	ByName(ctx context.Context, name string) (*domain.City, error)
}

// ScoreRank is a compact leaderboard row pushed over the live score feed.
type ScoreRank struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

// LeaderboardCache mirrors best scores for cheap top-N reads (Redis ZSET).
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, gameType, username string, score int) error
	Top(ctx context.Context, gameType string, limit int) ([]ScoreRank, error)
}
