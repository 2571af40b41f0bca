package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"kartografi-service/internal/domain"
)

// LeaderboardStore persists score entries in the "leaderboard" collection.
type LeaderboardStore struct {
	collection *mongo.Collection
}

func NewLeaderboardStore(db *mongo.Database) *LeaderboardStore {
	return &LeaderboardStore{collection: db.Collection("leaderboard")}
}

func (s *LeaderboardStore) Find(ctx context.Context, userID, gameType, continent string) (*domain.ScoreEntry, error) {
	filter := bson.M{"userId": userID, "gameType": gameType}
	if continent != "" {
		filter["continent"] = continent
	}

	var entry domain.ScoreEntry
	err := s.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScoreNotFound
		}
		return nil, fmt.Errorf("find score entry: %w", err)
	}
	return &entry, nil
}

func (s *LeaderboardStore) Save(ctx context.Context, entry *domain.ScoreEntry) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, opts); err != nil {
		return fmt.Errorf("save score entry: %w", err)
	}
	return nil
}

func (s *LeaderboardStore) Top(ctx context.Context, gameType, continent string, limit int) ([]domain.ScoreEntry, error) {
	filter := bson.M{"gameType": gameType}
	if continent != "" {
		filter["continent"] = continent
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]domain.ScoreEntry, 0, limit)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return entries, nil
}

func (s *LeaderboardStore) ByUser(ctx context.Context, userID string) ([]domain.ScoreEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("query user scores: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.ScoreEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode user scores: %w", err)
	}
	return entries, nil
}
