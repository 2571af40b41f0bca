package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"kartografi-service/internal/app"
)

// LeaderboardCache mirrors best scores in a Redis ZSET per game type, keyed
// by username. It backs the live score feed; the document store stays
// authoritative for the full leaderboard entries.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

func (c *LeaderboardCache) key(gameType string) string {
	return "lb:" + gameType
}

func (c *LeaderboardCache) UpdateScore(ctx context.Context, gameType, username string, score int) error {
	return c.client.ZAdd(ctx, c.key(gameType), redis.Z{
		Score:  float64(score),
		Member: username,
	}).Err()
}

func (c *LeaderboardCache) Top(ctx context.Context, gameType string, limit int) ([]app.ScoreRank, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(gameType), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	ranks := make([]app.ScoreRank, len(results))
	for i, z := range results {
		username, _ := z.Member.(string)
		ranks[i] = app.ScoreRank{
			Username: username,
			Score:    int(z.Score),
			Rank:     i + 1,
		}
	}
	return ranks, nil
}
