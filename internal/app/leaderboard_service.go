package app

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"kartografi-service/internal/domain"
)

const feedTopSize = 10

// sloCitiesGame is the game type of the pre-continent Slovenian cities mode.
// Its high score lives on the user record, not in the leaderboard collection.
const sloCitiesGame = "slovenian-cities"

// ScoreSubmission is one finished game reported by the client.
type ScoreSubmission struct {
	UserID     string
	Username   string
	GameType   string
	Continent  string
	Score      int
	MaxScore   int
	Percentage float64
}

// LeaderboardService applies best-score-only semantics on top of the store
// and keeps the optional cache and live feed in sync.
type LeaderboardService struct {
	store LeaderboardStore
	users UserStore
	cache LeaderboardCache // nil when redis is not configured
	feed  *ScoreFeed
	now   func() time.Time
}

func NewLeaderboardService(store LeaderboardStore, users UserStore, cache LeaderboardCache, feed *ScoreFeed) *LeaderboardService {
	return &LeaderboardService{
		store: store,
		users: users,
		cache: cache,
		feed:  feed,
		now:   time.Now,
	}
}

// SubmitScore records a score, keeping only each user's best per game type
// (and continent for the countries game). Returns the stored entry and
// whether it set a new record.
func (s *LeaderboardService) SubmitScore(ctx context.Context, sub ScoreSubmission) (domain.ScoreEntry, bool, error) {
	if sub.Username == "" {
		user, err := s.users.GetByID(ctx, sub.UserID)
		if err != nil {
			return domain.ScoreEntry{}, false, err
		}
		sub.Username = user.Username
	}

	continent := ""
	if sub.GameType == "countries" {
		continent = sub.Continent
	}

	existing, err := s.store.Find(ctx, sub.UserID, sub.GameType, continent)
	switch {
	case err == nil:
		if sub.Score <= existing.Score {
			return *existing, false, nil
		}
		existing.Score = sub.Score
		existing.MaxScore = sub.MaxScore
		existing.Percentage = sub.Percentage
		existing.CompletedAt = s.now()
		if err := s.store.Save(ctx, existing); err != nil {
			return domain.ScoreEntry{}, false, err
		}
		s.recordAndBroadcast(ctx, *existing)
		return *existing, true, nil
	case errors.Is(err, domain.ErrScoreNotFound):
		entry := domain.ScoreEntry{
			UserID:      sub.UserID,
			Username:    sub.Username,
			GameType:    sub.GameType,
			Continent:   continent,
			Score:       sub.Score,
			MaxScore:    sub.MaxScore,
			Percentage:  sub.Percentage,
			CompletedAt: s.now(),
		}
		if err := s.store.Save(ctx, &entry); err != nil {
			return domain.ScoreEntry{}, false, err
		}
		s.recordAndBroadcast(ctx, entry)
		return entry, true, nil
	default:
		return domain.ScoreEntry{}, false, err
	}
}

// Top returns the best entries for a game type, highest score first. The
// continent filter only applies to the countries game.
func (s *LeaderboardService) Top(ctx context.Context, gameType, continent string, limit int) ([]domain.ScoreEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	if gameType != "countries" {
		continent = ""
	}
	return s.store.Top(ctx, gameType, continent, limit)
}

// BestForUser returns a user's personal bests across game types.
func (s *LeaderboardService) BestForUser(ctx context.Context, userID string) ([]domain.ScoreEntry, error) {
	return s.store.ByUser(ctx, userID)
}

// TopBySloPoints ranks users by their legacy Slovenian-cities points. Old
// clients still read this board, so it is kept alongside the entry-based one.
func (s *LeaderboardService) TopBySloPoints(ctx context.Context, limit int) ([]domain.User, error) {
	return s.legacyTop(ctx, limit, func(u domain.User) int { return u.SloPoints })
}

// TopByQuizPoints ranks users by their legacy quiz points.
func (s *LeaderboardService) TopByQuizPoints(ctx context.Context, limit int) ([]domain.User, error) {
	return s.legacyTop(ctx, limit, func(u domain.User) int { return u.QuizPoints })
}

func (s *LeaderboardService) legacyTop(ctx context.Context, limit int, points func(domain.User) int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return points(users[i]) > points(users[j]) })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// SloHighScore returns the user's best score from the Slovenian-cities
// leaderboard entries. Zero when the user never recorded one.
func (s *LeaderboardService) SloHighScore(ctx context.Context, userID string) (int, error) {
	entries, err := s.store.ByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	// ByUser sorts by score descending, so the first match is the best.
	for _, entry := range entries {
		if entry.GameType == sloCitiesGame {
			return entry.Score, nil
		}
	}
	return 0, nil
}

// UpdateSloHighScore bumps the user's Slovenian-cities counter when the
// submitted score beats it. Returns whether it did, and the resulting points.
func (s *LeaderboardService) UpdateSloHighScore(ctx context.Context, userID string, score int) (bool, int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	if score <= user.SloPoints {
		return false, user.SloPoints, nil
	}
	user.SloPoints = score
	if err := s.users.Update(ctx, user); err != nil {
		return false, 0, err
	}
	return true, user.SloPoints, nil
}

// recordAndBroadcast updates the cache mirror and pushes a fresh snapshot to
// feed subscribers. Both are best effort; the store already holds the truth.
func (s *LeaderboardService) recordAndBroadcast(ctx context.Context, entry domain.ScoreEntry) {
	if s.cache != nil {
		if err := s.cache.UpdateScore(ctx, entry.GameType, entry.Username, entry.Score); err != nil {
			log.Printf("leaderboard cache update failed: %v", err)
		}
	}
	if s.feed == nil {
		return
	}
	ranks, err := s.topRanks(ctx, entry.GameType)
	if err != nil {
		log.Printf("leaderboard snapshot failed: %v", err)
		return
	}
	s.feed.Publish(entry.GameType, ranks)
}

func (s *LeaderboardService) topRanks(ctx context.Context, gameType string) ([]ScoreRank, error) {
	if s.cache != nil {
		if ranks, err := s.cache.Top(ctx, gameType, feedTopSize); err == nil {
			return ranks, nil
		}
	}
	entries, err := s.store.Top(ctx, gameType, "", feedTopSize)
	if err != nil {
		return nil, err
	}
	ranks := make([]ScoreRank, len(entries))
	for i, entry := range entries {
		ranks[i] = ScoreRank{Username: entry.Username, Score: entry.Score, Rank: i + 1}
	}
	return ranks, nil
}
