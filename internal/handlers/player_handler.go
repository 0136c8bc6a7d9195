package handlers

import (
	"log"
	"net/http"
	"time"

	"tinywords/internal/models"
	"tinywords/internal/security"
	"tinywords/internal/service"
)

const defaultReportDays = 7

// PlayerHandler handles player profiles, the parent PIN and reports
type PlayerHandler struct {
	playerService *service.PlayerService
	reportService *service.ReportService
	tokens        *security.TokenIssuer
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *service.PlayerService, reportService *service.ReportService, tokens *security.TokenIssuer) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		reportService: reportService,
		tokens:        tokens,
	}
}

type createPlayerRequest struct {
	Name        string `json:"name"`
	ParentEmail string `json:"parentEmail"`
	ParentPIN   string `json:"parentPin"`
}

type createPlayerResponse struct {
	Player *models.Player `json:"player"`
	Token  string         `json:"token"`
}

// CreatePlayer registers a player and returns its bearer token
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	player, err := h.playerService.CreatePlayer(req.Name, req.ParentEmail, req.ParentPIN)
	if err != nil {
		respondWithServiceError(w, "Failed to create player", err)
		return
	}

	token, err := h.tokens.Issue(player.ID, player.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to issue token", err)
		return
	}

	log.Printf("Player created: %s", player.ID)
	respondWithJSON(w, http.StatusCreated, createPlayerResponse{Player: player, Token: token})
}

// Me returns the authenticated player
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, GetPlayerFromContext(r.Context()))
}

type setPINRequest struct {
	CurrentPIN string `json:"currentPin"`
	NewPIN     string `json:"newPin"`
}

// SetParentPIN sets or replaces the parent PIN
func (h *PlayerHandler) SetParentPIN(w http.ResponseWriter, r *http.Request) {
	var req setPINRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	player := GetPlayerFromContext(r.Context())
	if err := h.playerService.SetParentPIN(player, req.CurrentPIN, req.NewPIN); err != nil {
		respondWithServiceError(w, "Failed to set parent PIN", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reportRequest struct {
	Days int `json:"days"`
}

// SendReport emails a progress report to the parent
func (h *PlayerHandler) SendReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
			return
		}
	}
	if req.Days <= 0 {
		req.Days = defaultReportDays
	}

	player := GetPlayerFromContext(r.Context())
	since := time.Now().UTC().AddDate(0, 0, -req.Days)
	summary, err := h.reportService.SendReport(r.Context(), player.ID, since)
	if err != nil {
		respondWithServiceError(w, "Failed to send progress report", err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}
