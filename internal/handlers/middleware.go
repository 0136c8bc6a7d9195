package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"tinywords/internal/models"
	"tinywords/internal/security"
	"tinywords/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PlayerContextKey ContextKey = "player"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens        *security.TokenIssuer
	playerService *service.PlayerService
	limiter       *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenIssuer, playerService *service.PlayerService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		tokens:        tokens,
		playerService: playerService,
		limiter:       limiter,
	}
}

// RequirePlayer is middleware that requires a valid bearer token
func (m *Middleware) RequirePlayer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		playerID, err := m.tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		player, err := m.playerService.GetPlayer(playerID)
		if errors.Is(err, service.ErrPlayerMissing) {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load player", err)
			return
		}

		ctx := context.WithValue(r.Context(), PlayerContextKey, player)
		next(w, r.WithContext(ctx))
	}
}

// RequireParentPIN checks the X-Parent-PIN header against the player's PIN.
// It must run inside RequirePlayer.
func (m *Middleware) RequireParentPIN(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := GetPlayerFromContext(r.Context())
		if player == nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		if err := m.playerService.VerifyPIN(player, r.Header.Get(ParentPINHeader)); err != nil {
			respondWithError(w, http.StatusForbidden, ErrParentPINRequired, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit applies the per-client rate limiter
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	if m.limiter == nil {
		return next
	}
	return m.limiter.Middleware(next)
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetPlayerFromContext retrieves the player from the request context
func GetPlayerFromContext(ctx context.Context) *models.Player {
	player, ok := ctx.Value(PlayerContextKey).(*models.Player)
	if !ok {
		return nil
	}
	return player
}
