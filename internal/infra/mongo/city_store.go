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

// CityStore reads the "cities" collection seeded by the seed command.
type CityStore struct {
	collection *mongo.Collection
}

func NewCityStore(db *mongo.Database) *CityStore {
	return &CityStore{collection: db.Collection("cities")}
}

func (s *CityStore) Random(ctx context.Context) (*domain.City, error) {
	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("sample city: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, domain.ErrCityNotFound
	}
	var city domain.City
	if err := cursor.Decode(&city); err != nil {
		return nil, fmt.Errorf("decode city: %w", err)
	}
	return &city, nil
}

func (s *CityStore) ByName(ctx context.Context, name string) (*domain.City, error) {
	var city domain.City
	err := s.collection.FindOne(ctx, bson.M{"city": name}).Decode(&city)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCityNotFound
		}
		return nil, fmt.Errorf("find city: %w", err)
	}
	return &city, nil
}

// Insert adds city rows; used by the seed command.
func (s *CityStore) Insert(ctx context.Context, cities []domain.City) error {
	if len(cities) == 0 {
		return nil
	}
	docs := make([]interface{}, len(cities))
	for i := range cities {
		if cities[i].ID == "" {
			cities[i].ID = primitive.NewObjectID().Hex()
		}
		docs[i] = cities[i]
	}
	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert cities: %w", err)
	}
	return nil
}
