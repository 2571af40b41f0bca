// Package mongo implements the document stores on the MongoDB driver.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the stores rely on: unique usernames,
// the per-user best-score lookup, and city name lookups.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	if _, err := db.Collection("leaderboard").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "gameType", Value: 1}, {Key: "continent", Value: 1}}},
		{Keys: bson.D{{Key: "gameType", Value: 1}, {Key: "score", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("leaderboard indexes: %w", err)
	}

	if _, err := db.Collection("cities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "city", Value: 1}},
	}); err != nil {
		return fmt.Errorf("cities index: %w", err)
	}
	return nil
}
