package handlers

import (
	"net/http"
	"path/filepath"
	"slices"

	"tinywords/internal/audio"
	"tinywords/internal/challenge"
	"tinywords/internal/models"
	"tinywords/internal/service"
)

// WordHandler serves catalog lookups and speech audio
type WordHandler struct {
	generator   *challenge.Generator
	tts         *audio.TTSService
	gameService *service.GameService
	spoken      service.SpokenContent
}

// NewWordHandler creates a new word handler
func NewWordHandler(generator *challenge.Generator, tts *audio.TTSService, gameService *service.GameService, spoken service.SpokenContent) *WordHandler {
	return &WordHandler{
		generator:   generator,
		tts:         tts,
		gameService: gameService,
		spoken:      spoken,
	}
}

// Word returns a catalog entry
func (h *WordHandler) Word(w http.ResponseWriter, r *http.Request) {
	def, ok := h.generator.Lookup(r.PathValue("word"))
	if !ok {
		respondWithServiceError(w, "", challenge.ErrWordNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, def)
}

// NextWord returns the catalog word after the given one
func (h *WordHandler) NextWord(w http.ResponseWriter, r *http.Request) {
	next, err := h.generator.NextWordTarget(r.PathValue("word"))
	if err != nil {
		respondWithServiceError(w, "Failed to find next word", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"targetWord": next})
}

// WordAudio serves the spoken word, or the word spelled out with ?spell=1
func (h *WordHandler) WordAudio(w http.ResponseWriter, r *http.Request) {
	def, ok := h.generator.Lookup(r.PathValue("word"))
	if !ok {
		respondWithServiceError(w, "", challenge.ErrWordNotFound)
		return
	}

	speed := h.speedFor(r)
	var name string
	var err error
	if r.URL.Query().Get("spell") == "1" {
		name, err = h.tts.SpelledAudio(r.Context(), def.TargetWord, speed)
	} else {
		name, err = h.tts.WordAudio(r.Context(), def.TargetWord, speed)
	}
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Speech unavailable", "Failed to generate word audio", err)
		return
	}
	h.serveAudio(w, r, name)
}

// PhraseAudio serves one of the feedback phrases
func (h *WordHandler) PhraseAudio(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if !slices.Contains(h.spoken.Phrases(), text) {
		respondWithError(w, http.StatusNotFound, "Unknown phrase", "", nil)
		return
	}

	name, err := h.tts.PhraseAudio(r.Context(), text, h.speedFor(r))
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Speech unavailable", "Failed to generate phrase audio", err)
		return
	}
	h.serveAudio(w, r, name)
}

// Health reports liveness and the catalog size
func (h *WordHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"words":  len(h.generator.Words()),
	})
}

func (h *WordHandler) speedFor(r *http.Request) float64 {
	player := GetPlayerFromContext(r.Context())
	if player == nil {
		return models.DefaultTTSSpeed
	}
	settings, err := h.gameService.Settings(player.ID)
	if err != nil {
		return models.DefaultTTSSpeed
	}
	return settings.TTSSpeed
}

func (h *WordHandler) serveAudio(w http.ResponseWriter, r *http.Request, name string) {
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, filepath.Join(h.tts.Dir(), name))
}
