package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kartografi-service/internal/app"
	"kartografi-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeFailure maps a failure to an HTTP status. Validation failures carry
// their own message to the client; everything else is logged with full
// detail and surfaces as a generic message.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingParameter),
		errors.Is(err, domain.ErrUnsupportedType),
		errors.Is(err, domain.ErrMalformedKey),
		errors.Is(err, domain.ErrInvalidMetadata),
		errors.Is(err, domain.ErrInvalidKey):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrCityNotFound):
		writeError(w, http.StatusNotFound, "city not found")
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
