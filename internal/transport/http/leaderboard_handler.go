package http

import (
	"net/http"
	"strconv"

	"kartografi-service/internal/app"
	"kartografi-service/internal/domain"
)

// LeaderboardHandler exposes score submission and leaderboard queries.
type LeaderboardHandler struct {
	leaderboard *app.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *app.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

type submitScoreRequest struct {
	GameType   string   `json:"gameType"`
	Continent  string   `json:"continent"`
	Score      *int     `json:"score"`
	MaxScore   *int     `json:"maxScore"`
	Percentage *float64 `json:"percentage"`
	UserID     string   `json:"userId"`
	Username   string   `json:"username"`
}

type submitScoreResponse struct {
	Message     string            `json:"message"`
	Entry       domain.ScoreEntry `json:"entry"`
	IsNewRecord bool              `json:"isNewRecord"`
}

func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.GameType == "" || req.Score == nil || req.MaxScore == nil || req.Percentage == nil {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if req.GameType == "countries" && req.Continent == "" {
		writeError(w, http.StatusBadRequest, "continent is required for countries game")
		return
	}

	entry, isNewRecord, err := h.leaderboard.SubmitScore(r.Context(), app.ScoreSubmission{
		UserID:     req.UserID,
		Username:   req.Username,
		GameType:   req.GameType,
		Continent:  req.Continent,
		Score:      *req.Score,
		MaxScore:   *req.MaxScore,
		Percentage: *req.Percentage,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	status := http.StatusOK
	message := "Score recorded but not a new high score"
	if isNewRecord {
		status = http.StatusCreated
		message = "New high score!"
	}
	writeJSON(w, status, submitScoreResponse{
		Message:     message,
		Entry:       entry,
		IsNewRecord: isNewRecord,
	})
}

func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameType := query.Get("gameType")
	if gameType == "" {
		writeError(w, http.StatusBadRequest, "gameType is required")
		return
	}

	limit := 100
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.leaderboard.Top(r.Context(), gameType, query.Get("continent"), limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// BestForUser returns the calling user's personal bests, identified by the
// login cookie.
func (h *LeaderboardHandler) BestForUser(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(userCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	entries, err := h.leaderboard.BestForUser(r.Context(), cookie.Value)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Legacy boards from before continent-scoped entries. Old clients still poll
// them, so they are served from the points counters on the user records.

type sloRankRow struct {
	Username  string `json:"username"`
	SloPoints int    `json:"slo_points"`
}

func (h *LeaderboardHandler) SloLeaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.leaderboard.TopBySloPoints(r.Context(), 100)
	if err != nil {
		writeFailure(w, err)
		return
	}
	rows := make([]sloRankRow, len(users))
	for i, user := range users {
		rows[i] = sloRankRow{Username: user.Username, SloPoints: user.SloPoints}
	}
	writeJSON(w, http.StatusOK, rows)
}

type quizRankRow struct {
	Username   string `json:"username"`
	QuizPoints int    `json:"quiz_points"`
}

func (h *LeaderboardHandler) QuizLeaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.leaderboard.TopByQuizPoints(r.Context(), 100)
	if err != nil {
		writeFailure(w, err)
		return
	}
	rows := make([]quizRankRow, len(users))
	for i, user := range users {
		rows[i] = quizRankRow{Username: user.Username, QuizPoints: user.QuizPoints}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *LeaderboardHandler) SloHighScore(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(userCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	score, err := h.leaderboard.SloHighScore(r.Context(), cookie.Value)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"slo_points": score})
}

type sloHighScoreRequest struct {
	Score *int `json:"score"`
}

type sloHighScoreResponse struct {
	Updated   bool `json:"updated"`
	SloPoints int  `json:"slo_points"`
}

func (h *LeaderboardHandler) UpdateSloHighScore(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(userCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req sloHighScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, "score must be a number")
		return
	}

	updated, points, err := h.leaderboard.UpdateSloHighScore(r.Context(), cookie.Value, *req.Score)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sloHighScoreResponse{Updated: updated, SloPoints: points})
}
