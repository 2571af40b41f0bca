package app

import (
	"sync"
	"time"
)

// ScoreSnapshot is one live-feed frame: the top of a game type's leaderboard.
type ScoreSnapshot struct {
	GameType  string      `json:"gameType"`
	Entries   []ScoreRank `json:"entries"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ScoreFeed fans leaderboard snapshots out to websocket subscribers, one
// subscriber set per game type.
type ScoreFeed struct {
	now func() time.Time

	mu          sync.Mutex
	subscribers map[string]map[chan ScoreSnapshot]struct{}
}

func NewScoreFeed() *ScoreFeed {
	return &ScoreFeed{
		now:         time.Now,
		subscribers: make(map[string]map[chan ScoreSnapshot]struct{}),
	}
}

// Subscribe registers a listener for one game type. The caller must invoke
// the returned cancel function to avoid leaks.
func (f *ScoreFeed) Subscribe(gameType string) (<-chan ScoreSnapshot, func()) {
	ch := make(chan ScoreSnapshot, 8)

	f.mu.Lock()
	set, ok := f.subscribers[gameType]
	if !ok {
		set = make(map[chan ScoreSnapshot]struct{})
		f.subscribers[gameType] = set
	}
	set[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if set, ok := f.subscribers[gameType]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(f.subscribers, gameType)
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish pushes a snapshot to every subscriber of the game type. Slow
// consumers have their stale frame dropped rather than blocking the feed.
func (f *ScoreFeed) Publish(gameType string, entries []ScoreRank) ScoreSnapshot {
	snapshot := ScoreSnapshot{
		GameType:  gameType,
		Entries:   entries,
		UpdatedAt: f.now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[gameType] {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
	return snapshot
}
