package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"kartografi-service/internal/app"
)

const userCookie = "userId"

// UserHandler exposes registration, login, and profile management.
type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Points   int    `json:"points"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password, req.Points)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeFailure(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    user.ID,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24,
	})
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type renameRequest struct {
	Username string `json:"username"`
}

func (h *UserHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(strings.TrimSpace(req.Username)) < 3 {
		writeError(w, http.StatusBadRequest, "username must be 3+ characters")
		return
	}

	user, err := h.users.Rename(r.Context(), mux.Vars(r)["id"], strings.TrimSpace(req.Username))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updatePointsRequest struct {
	Points *int `json:"points"`
}

func (h *UserHandler) UpdatePoints(w http.ResponseWriter, r *http.Request) {
	var req updatePointsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Points == nil {
		writeError(w, http.StatusBadRequest, "points must be a number")
		return
	}

	user, err := h.users.UpdatePoints(r.Context(), mux.Vars(r)["id"], *req.Points)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "currentPassword and newPassword required")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "newPassword must be at least 6 characters")
		return
	}

	if err := h.users.ChangePassword(r.Context(), mux.Vars(r)["id"], req.CurrentPassword, req.NewPassword); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
