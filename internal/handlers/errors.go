package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tinywords/internal/challenge"
	"tinywords/internal/security"
	"tinywords/internal/service"
	"tinywords/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, errorResponse{Error: userMsg})
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Warning: failed to write response: %v", err)
	}
}

// respondWithServiceError maps domain errors to a status. Unknown errors
// are logged and reported as 500.
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		respondWithError(w, status, ErrInternalServerError, logMsg, err)
		return
	}
	respondWithError(w, status, err.Error(), "", nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, challenge.ErrWordNotFound),
		errors.Is(err, service.ErrPlayerMissing),
		errors.Is(err, service.ErrNoRound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrChoiceUsed),
		errors.Is(err, service.ErrRoundComplete),
		errors.Is(err, service.ErrHintLimit),
		errors.Is(err, service.ErrNoParentEmail):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidChoice),
		errors.Is(err, validation.ErrInvalid),
		errors.Is(err, security.ErrInvalidPIN),
		errors.Is(err, challenge.ErrLevelMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrPINRequired),
		errors.Is(err, service.ErrPINMismatch):
		return http.StatusForbidden
	case errors.Is(err, challenge.ErrEmptyCatalog),
		errors.Is(err, challenge.ErrInsufficientDistractors),
		errors.Is(err, challenge.ErrNoWordsForLevel),
		errors.Is(err, challenge.ErrLevelInconsistent):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
