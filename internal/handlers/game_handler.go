package handlers

import (
	"net/http"

	"tinywords/internal/service"
)

// GameHandler serves rounds, choices, hints, score and settings
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// Challenge returns the current round, starting one when needed
func (h *GameHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	player := GetPlayerFromContext(r.Context())
	round, err := h.gameService.CurrentRound(player.ID)
	if err != nil {
		respondWithServiceError(w, "Failed to load round", err)
		return
	}
	respondWithJSON(w, http.StatusOK, round)
}

// NextChallenge starts a new round
func (h *GameHandler) NextChallenge(w http.ResponseWriter, r *http.Request) {
	player := GetPlayerFromContext(r.Context())
	round, err := h.gameService.NextRound(player.ID)
	if err != nil {
		respondWithServiceError(w, "Failed to start round", err)
		return
	}
	respondWithJSON(w, http.StatusOK, round)
}

type choiceRequest struct {
	Word string `json:"word"`
}

// Choice submits the word the player tapped
func (h *GameHandler) Choice(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Word == "" {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	player := GetPlayerFromContext(r.Context())
	result, err := h.gameService.SubmitChoice(player.ID, req.Word)
	if err != nil {
		respondWithServiceError(w, "Failed to submit choice", err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Hint raises the hint level of the current round
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	player := GetPlayerFromContext(r.Context())
	round, err := h.gameService.RequestHint(player.ID)
	if err != nil {
		respondWithServiceError(w, "Failed to give hint", err)
		return
	}
	respondWithJSON(w, http.StatusOK, round)
}

// Score returns score and streak
func (h *GameHandler) Score(w http.ResponseWriter, r *http.Request) {
	player := GetPlayerFromContext(r.Context())
	score, err := h.gameService.Score(player.ID)
	if err != nil {
		respondWithServiceError(w, "Failed to load score", err)
		return
	}
	respondWithJSON(w, http.StatusOK, score)
}

// ResetScore clears score and streak
func (h *GameHandler) ResetScore(w http.ResponseWriter, r *http.Request) {
	player := GetPlayerFromContext(r.Context())
	if err := h.gameService.ResetScore(player.ID); err != nil {
		respondWithServiceError(w, "Failed to reset score", err)
		return
	}
	h.Score(w, r)
}

// Settings returns the player's settings
func (h *GameHandler) Settings(w http.ResponseWriter, r *http.Request) {
	player := GetPlayerFromContext(r.Context())
	settings, err := h.gameService.Settings(player.ID)
	if err != nil {
		respondWithServiceError(w, "Failed to load settings", err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies a partial settings document over the stored one
func (h *GameHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	player := GetPlayerFromContext(r.Context())
	settings, err := h.gameService.Settings(player.ID)
	if err != nil {
		respondWithServiceError(w, "Failed to load settings", err)
		return
	}
	if err := decodeJSON(w, r, &settings); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	saved, err := h.gameService.UpdateSettings(player.ID, settings)
	if err != nil {
		respondWithServiceError(w, "Failed to save settings", err)
		return
	}
	respondWithJSON(w, http.StatusOK, saved)
}
