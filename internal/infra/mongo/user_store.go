package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"kartografi-service/internal/domain"
)

// UserStore persists users in the "users" collection.
type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{collection: db.Collection("users")}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if existing, err := s.GetByUsername(ctx, user.Username); err == nil && existing != nil {
		return domain.ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
