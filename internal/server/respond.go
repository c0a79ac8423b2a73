package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"darts-tracker/internal/repository"

	"github.com/rs/zerolog"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error, status int, message string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg(message)
	respondJSON(w, status, map[string]string{"error": message})
}

// serviceError maps repository sentinels to HTTP statuses; anything else is a
// 500 with the given message.
func serviceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, repository.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	respondError(w, r, err, http.StatusInternalServerError, message)
}
