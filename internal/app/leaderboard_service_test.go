package app_test

import (
	"context"
	"testing"
	"time"

	"kartografi-service/internal/app"
	"kartografi-service/internal/domain"
	"kartografi-service/internal/infra/memory"
)

func newLeaderboardFixture() (*app.LeaderboardService, *app.ScoreFeed, *memory.UserStore) {
	users := memory.NewUserStore()
	feed := app.NewScoreFeed()
	service := app.NewLeaderboardService(memory.NewLeaderboardStore(), users, nil, feed)
	return service, feed, users
}

func TestSubmitScoreKeepsOnlyBest(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newLeaderboardFixture()

	first := app.ScoreSubmission{UserID: "u1", Username: "Alice", GameType: "capitals", Score: 10, MaxScore: 20, Percentage: 50}
	entry, isNewRecord, err := service.SubmitScore(ctx, first)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !isNewRecord || entry.Score != 10 {
		t.Fatalf("expected first submission to be a record, got %+v new=%v", entry, isNewRecord)
	}

	lower := first
	lower.Score = 5
	entry, isNewRecord, err = service.SubmitScore(ctx, lower)
	if err != nil {
		t.Fatalf("submit lower: %v", err)
	}
	if isNewRecord || entry.Score != 10 {
		t.Fatalf("lower score must not overwrite the best, got %+v new=%v", entry, isNewRecord)
	}

	higher := first
	higher.Score = 15
	entry, isNewRecord, err = service.SubmitScore(ctx, higher)
	if err != nil {
		t.Fatalf("submit higher: %v", err)
	}
	if !isNewRecord || entry.Score != 15 {
		t.Fatalf("expected new record at 15, got %+v new=%v", entry, isNewRecord)
	}

	top, err := service.Top(ctx, "capitals", "", 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].Score != 15 {
		t.Fatalf("expected single best entry, got %+v", top)
	}
}

func TestSubmitScoreSeparatesContinents(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newLeaderboardFixture()

	europe := app.ScoreSubmission{UserID: "u1", Username: "Alice", GameType: "countries", Continent: "Europe", Score: 10}
	asia := europe
	asia.Continent = "Asia"
	asia.Score = 3

	if _, _, err := service.SubmitScore(ctx, europe); err != nil {
		t.Fatalf("submit europe: %v", err)
	}
	if _, isNewRecord, err := service.SubmitScore(ctx, asia); err != nil || !isNewRecord {
		t.Fatalf("expected separate record per continent, err=%v new=%v", err, isNewRecord)
	}

	best, err := service.BestForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("best for user: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("expected 2 personal bests, got %+v", best)
	}
}

func TestSubmitScoreResolvesUsernameFromStore(t *testing.T) {
	ctx := context.Background()
	service, _, users := newLeaderboardFixture()

	alice := domainUser("Alice")
	if err := users.Create(ctx, alice); err != nil {
		t.Fatalf("create user: %v", err)
	}

	entry, _, err := service.SubmitScore(ctx, app.ScoreSubmission{UserID: alice.ID, GameType: "capitals", Score: 7})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.Username != "Alice" {
		t.Fatalf("expected username resolved from store, got %+v", entry)
	}
}

func TestTopIgnoresContinentForNonCountriesGames(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newLeaderboardFixture()

	submission := app.ScoreSubmission{UserID: "u1", Username: "Alice", GameType: "capitals", Continent: "Europe", Score: 8}
	if _, _, err := service.SubmitScore(ctx, submission); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// The continent query parameter is only meaningful for the countries
	// game; a capitals query carrying one must still find the entry.
	top, err := service.Top(ctx, "capitals", "Europe", 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].Score != 8 {
		t.Fatalf("expected the capitals entry regardless of continent, got %+v", top)
	}
}

func TestSloHighScoreReadsGameEntries(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newLeaderboardFixture()

	score, err := service.SloHighScore(ctx, "u1")
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0 before any entry, got %d", score)
	}

	if _, _, err := service.SubmitScore(ctx, app.ScoreSubmission{UserID: "u1", Username: "Alice", GameType: "slovenian-cities", Score: 17}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, err := service.SubmitScore(ctx, app.ScoreSubmission{UserID: "u1", Username: "Alice", GameType: "capitals", Score: 40}); err != nil {
		t.Fatalf("submit capitals: %v", err)
	}

	score, err = service.SloHighScore(ctx, "u1")
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if score != 17 {
		t.Fatalf("expected the slovenian-cities score, got %d", score)
	}
}

func TestUpdateSloHighScoreKeepsBestCounter(t *testing.T) {
	ctx := context.Background()
	service, _, users := newLeaderboardFixture()

	alice := domainUser("Alice")
	if err := users.Create(ctx, alice); err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, points, err := service.UpdateSloHighScore(ctx, alice.ID, 12)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated || points != 12 {
		t.Fatalf("expected first score to stick, got updated=%v points=%d", updated, points)
	}

	updated, points, err = service.UpdateSloHighScore(ctx, alice.ID, 5)
	if err != nil {
		t.Fatalf("update lower: %v", err)
	}
	if updated || points != 12 {
		t.Fatalf("lower score must not overwrite the counter, got updated=%v points=%d", updated, points)
	}

	stored, err := users.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.SloPoints != 12 {
		t.Fatalf("expected persisted counter 12, got %+v", stored)
	}
}

func TestLegacyBoardsRankByPointsCounters(t *testing.T) {
	ctx := context.Background()
	service, _, users := newLeaderboardFixture()

	for _, user := range []*domain.User{
		{Username: "alice", SloPoints: 30, QuizPoints: 1},
		{Username: "bob", SloPoints: 10, QuizPoints: 9},
		{Username: "carol", SloPoints: 20, QuizPoints: 5},
	} {
		if err := users.Create(ctx, user); err != nil {
			t.Fatalf("create %s: %v", user.Username, err)
		}
	}

	slo, err := service.TopBySloPoints(ctx, 2)
	if err != nil {
		t.Fatalf("slo board: %v", err)
	}
	if len(slo) != 2 || slo[0].Username != "alice" || slo[1].Username != "carol" {
		t.Fatalf("unexpected slo ranking %+v", slo)
	}

	quiz, err := service.TopByQuizPoints(ctx, 10)
	if err != nil {
		t.Fatalf("quiz board: %v", err)
	}
	if quiz[0].Username != "bob" {
		t.Fatalf("unexpected quiz ranking %+v", quiz)
	}
}

func TestNewRecordReachesFeedSubscribers(t *testing.T) {
	ctx := context.Background()
	service, feed, _ := newLeaderboardFixture()

	updates, cancel := feed.Subscribe("capitals")
	defer cancel()

	if _, _, err := service.SubmitScore(ctx, app.ScoreSubmission{UserID: "u1", Username: "Alice", GameType: "capitals", Score: 9}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case snapshot := <-updates:
		if snapshot.GameType != "capitals" || len(snapshot.Entries) != 1 || snapshot.Entries[0].Score != 9 {
			t.Fatalf("unexpected snapshot %+v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a feed snapshot after a new record")
	}
}
