package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"kartografi-service/internal/domain"
)

// CountryLoader fetches the bulk country dataset from the upstream API.
type CountryLoader interface {
	All(ctx context.Context) ([]domain.Country, error)
}

const countriesKey = "countries:dataset"

// CountriesCache keeps the bulk country dataset in Redis so multiple service
// instances share one upstream refresh. The dataset is stored marshalled
// under a single key; misses collapse through singleflight before hitting
// the upstream API.
type CountriesCache struct {
	client *redis.Client
	loader CountryLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCountriesCache(client *redis.Client, loader CountryLoader, ttl time.Duration) *CountriesCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CountriesCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CountriesCache) GetAll(ctx context.Context) ([]domain.Country, error) {
	if data, ok := c.cached(ctx); ok {
		return data, nil
	}

	result, err, _ := c.sf.Do(countriesKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if data, ok := c.cached(ctx); ok {
			return data, nil
		}

		data, err := c.loader.All(ctx)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal countries: %w", err)
		}
		// Best effort; a write failure just means the next call refetches.
		_ = c.client.Set(ctx, countriesKey, payload, c.ttlWithJitter()).Err()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Country), nil
}

func (c *CountriesCache) cached(ctx context.Context) ([]domain.Country, bool) {
	payload, err := c.client.Get(ctx, countriesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var data []domain.Country
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, false
	}
	return data, len(data) > 0
}

func (c *CountriesCache) ttlWithJitter() time.Duration {
	// up to 10% jitter to spread expirations across instances
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
