package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service-layer failures onto API responses.
// Anything outside the known taxonomy is logged and reported as a generic
// internal error so store details never leak to the client.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, models.ErrDuplicateEmail):
		respondError(w, http.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "Todo not found")
	default:
		log.Error().Err(err).Msg("Unexpected service failure")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
