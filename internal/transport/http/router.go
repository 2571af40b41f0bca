// Package http wires the REST and websocket endpoints.
package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"kartografi-service/internal/app"
	"kartografi-service/internal/quiz"
)

// Container holds the dependencies the router needs.
type Container struct {
	Quiz        *quiz.Service
	Users       *app.UserService
	Leaderboard *app.LeaderboardService
	Cities      app.CityStore
	Feed        *app.ScoreFeed
}

// NewRouter builds the API router.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	quizHandler := NewQuizHandler(c.Quiz)
	userHandler := NewUserHandler(c.Users)
	lbHandler := NewLeaderboardHandler(c.Leaderboard)
	cityHandler := NewCityHandler(c.Cities)
	wsHandler := NewScoreFeedHandler(c.Feed)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", handleHealth).Methods("GET")
	api.HandleFunc("/quiz", quizHandler.Handle).Methods("POST", "OPTIONS")

	api.HandleFunc("/users", userHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/users", userHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/users/login", userHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/users/{id}", userHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/users/{id}", userHandler.Rename).Methods("PATCH", "OPTIONS")
	api.HandleFunc("/users/{id}", userHandler.Delete).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/users/{id}/points", userHandler.UpdatePoints).Methods("PATCH", "OPTIONS")
	api.HandleFunc("/users/{id}/password", userHandler.ChangePassword).Methods("POST", "OPTIONS")

	api.HandleFunc("/leaderboard", lbHandler.Top).Methods("GET", "OPTIONS")
	api.HandleFunc("/leaderboard", lbHandler.Submit).Methods("POST", "OPTIONS")
	api.HandleFunc("/leaderboard/me", lbHandler.BestForUser).Methods("GET", "OPTIONS")
	api.HandleFunc("/leaderboard/slo", lbHandler.SloLeaderboard).Methods("GET", "OPTIONS")
	api.HandleFunc("/leaderboard/quiz", lbHandler.QuizLeaderboard).Methods("GET", "OPTIONS")
	api.HandleFunc("/leaderboard/slo-highscore", lbHandler.SloHighScore).Methods("GET", "OPTIONS")
	api.HandleFunc("/leaderboard/slo-highscore", lbHandler.UpdateSloHighScore).Methods("POST", "OPTIONS")

	api.HandleFunc("/cities/random", cityHandler.Random).Methods("GET", "OPTIONS")
	api.HandleFunc("/cities/coords", cityHandler.Coordinates).Methods("GET", "OPTIONS")

	r.HandleFunc("/ws/scores", wsHandler.ServeWS).Methods("GET")

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"service":   "kartografi-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
