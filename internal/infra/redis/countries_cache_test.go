package redis

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"kartografi-service/internal/domain"
)

type countingCountryLoader struct {
	calls int32
	data  []domain.Country
}

func (l *countingCountryLoader) All(context.Context) ([]domain.Country, error) {
	atomic.AddInt32(&l.calls, 1)
	return l.data, nil
}

func sampleCountries() []domain.Country {
	return []domain.Country{
		{Name: domain.CountryName{Common: "Slovenia"}, CCA3: "SVN", Capital: []string{"Ljubljana"}},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCountriesCacheStoresDatasetInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingCountryLoader{data: sampleCountries()}
	cache := NewCountriesCache(newClient(mr), loader, time.Minute)

	countries, err := cache.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(countries) != 1 || countries[0].CCA3 != "SVN" {
		t.Fatalf("unexpected countries %+v", countries)
	}
	if !mr.Exists("countries:dataset") {
		t.Fatal("expected dataset key in redis")
	}

	if _, err := cache.GetAll(context.Background()); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if calls := atomic.LoadInt32(&loader.calls); calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", calls)
	}
}

func TestCountriesCacheSharedAcrossInstances(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingCountryLoader{data: sampleCountries()}
	first := NewCountriesCache(newClient(mr), loader, time.Minute)
	if _, err := first.GetAll(context.Background()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	// A second instance sharing the redis must not refetch.
	second := NewCountriesCache(newClient(mr), loader, time.Minute)
	if _, err := second.GetAll(context.Background()); err != nil {
		t.Fatalf("second instance get: %v", err)
	}
	if calls := atomic.LoadInt32(&loader.calls); calls != 1 {
		t.Fatalf("expected shared dataset, loader calls=%d", calls)
	}
}

func TestCountriesCacheRefetchesAfterExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingCountryLoader{data: sampleCountries()}
	cache := NewCountriesCache(newClient(mr), loader, time.Minute)

	if _, err := cache.GetAll(context.Background()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := cache.GetAll(context.Background()); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if calls := atomic.LoadInt32(&loader.calls); calls != 2 {
		t.Fatalf("expected refetch after expiry, loader calls=%d", calls)
	}
}
