package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"kartografi-service/internal/app"
)

// ScoreFeedHandler streams leaderboard snapshots over a websocket. Clients
// subscribe to one game type and receive a frame whenever a new high score
// lands.
type ScoreFeedHandler struct {
	feed     *app.ScoreFeed
	upgrader websocket.Upgrader
}

func NewScoreFeedHandler(feed *app.ScoreFeed) *ScoreFeedHandler {
	return &ScoreFeedHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *ScoreFeedHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameType := r.URL.Query().Get("gameType")
	if gameType == "" {
		http.Error(w, "missing gameType", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.feed.Subscribe(gameType)
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for snapshot := range updates {
			if err := conn.WriteJSON(snapshot); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// Read pump: the feed is one-way, we only read to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	<-writerDone
}
