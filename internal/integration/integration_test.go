package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"kartografi-service/internal/app"
	"kartografi-service/internal/domain"
	inframongo "kartografi-service/internal/infra/mongo"
	infraredis "kartografi-service/internal/infra/redis"
)

func TestSubmitScoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	mongoURI, mongoCleanup := startMongo(t, ctx)
	defer mongoCleanup()
	redisAddr, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	client, err := inframongo.Connect(ctx, mongoURI)
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("kartografi_test")
	if err := inframongo.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: redisAddr})
	defer redisClient.Close()

	users := inframongo.NewUserStore(db)
	scores := inframongo.NewLeaderboardStore(db)
	cache := infraredis.NewLeaderboardCache(redisClient)
	feed := app.NewScoreFeed()

	userService := app.NewUserService(users)
	lbService := app.NewLeaderboardService(scores, users, cache, feed)

	alice, err := userService.Register(ctx, "alice", "s3cret99", 0)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := userService.Login(ctx, "alice", "s3cret99"); err != nil {
		t.Fatalf("login: %v", err)
	}

	updates, cancel := feed.Subscribe("capitals")
	defer cancel()

	entry, isNewRecord, err := lbService.SubmitScore(ctx, app.ScoreSubmission{
		UserID:     alice.ID,
		GameType:   "capitals",
		Score:      14,
		MaxScore:   20,
		Percentage: 70,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !isNewRecord || entry.Username != "alice" || entry.Score != 14 {
		t.Fatalf("unexpected entry %+v new=%v", entry, isNewRecord)
	}

	// A lower score must not displace the stored best.
	entry, isNewRecord, err = lbService.SubmitScore(ctx, app.ScoreSubmission{
		UserID:   alice.ID,
		GameType: "capitals",
		Score:    3,
	})
	if err != nil {
		t.Fatalf("submit lower: %v", err)
	}
	if isNewRecord || entry.Score != 14 {
		t.Fatalf("lower score overwrote the best: %+v new=%v", entry, isNewRecord)
	}

	top, err := lbService.Top(ctx, "capitals", "", 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].Score != 14 {
		t.Fatalf("unexpected leaderboard %+v", top)
	}

	ranks, err := cache.Top(ctx, "capitals", 10)
	if err != nil {
		t.Fatalf("cache top: %v", err)
	}
	if len(ranks) != 1 || ranks[0].Username != "alice" || ranks[0].Score != 14 {
		t.Fatalf("unexpected cache mirror %+v", ranks)
	}

	select {
	case snapshot := <-updates:
		if snapshot.GameType != "capitals" || len(snapshot.Entries) == 0 {
			t.Fatalf("unexpected snapshot %+v", snapshot)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a feed snapshot after the record")
	}
}

func TestCitySamplingEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	mongoURI, cleanup := startMongo(t, ctx)
	defer cleanup()

	client, err := inframongo.Connect(ctx, mongoURI)
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("kartografi_test")
	store := inframongo.NewCityStore(db)

	if err := store.Insert(ctx, []domain.City{
		{Name: "Ljubljana", Lat: 46.0569, Lng: 14.5058},
		{Name: "Maribor", Lat: 46.5547, Lng: 15.6459},
	}); err != nil {
		t.Fatalf("insert cities: %v", err)
	}

	city, err := store.Random(ctx)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if city.Name != "Ljubljana" && city.Name != "Maribor" {
		t.Fatalf("unexpected city %+v", city)
	}

	found, err := store.ByName(ctx, "Maribor")
	if err != nil {
		t.Fatalf("by name: %v", err)
	}
	if found.Lat != 46.5547 || found.Lng != 15.6459 {
		t.Fatalf("unexpected coordinates %+v", found)
	}

	if _, err := store.ByName(ctx, "Atlantis"); !errors.Is(err, domain.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}

func startMongo(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start mongo: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("mongo host: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		t.Fatalf("mongo port: %v", err)
	}
	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	return uri, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), func() {
		_ = container.Terminate(ctx)
	}
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
