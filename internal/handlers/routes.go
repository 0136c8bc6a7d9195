package handlers

import "net/http"

// Routes registers the JSON API on a new mux
func Routes(m *Middleware, players *PlayerHandler, game *GameHandler, words *WordHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", words.Health)

	mux.HandleFunc("POST /api/players", m.RateLimit(players.CreatePlayer))
	mux.HandleFunc("GET /api/players/me", m.RequirePlayer(players.Me))
	mux.HandleFunc("PUT /api/parent/pin", m.RateLimit(m.RequirePlayer(players.SetParentPIN)))
	mux.HandleFunc("POST /api/report", m.RateLimit(m.RequirePlayer(m.RequireParentPIN(players.SendReport))))

	mux.HandleFunc("GET /api/challenge", m.RequirePlayer(game.Challenge))
	mux.HandleFunc("POST /api/challenge/next", m.RateLimit(m.RequirePlayer(game.NextChallenge)))
	mux.HandleFunc("POST /api/choice", m.RateLimit(m.RequirePlayer(game.Choice)))
	mux.HandleFunc("POST /api/hint", m.RateLimit(m.RequirePlayer(game.Hint)))
	mux.HandleFunc("GET /api/score", m.RequirePlayer(game.Score))
	mux.HandleFunc("POST /api/score/reset", m.RateLimit(m.RequirePlayer(m.RequireParentPIN(game.ResetScore))))
	mux.HandleFunc("GET /api/settings", m.RequirePlayer(game.Settings))
	mux.HandleFunc("PUT /api/settings", m.RateLimit(m.RequirePlayer(m.RequireParentPIN(game.UpdateSettings))))

	mux.HandleFunc("GET /api/words/{word}", words.Word)
	mux.HandleFunc("GET /api/words/{word}/next", words.NextWord)
	mux.HandleFunc("GET /api/audio/{word}", m.RequirePlayer(words.WordAudio))
	mux.HandleFunc("GET /api/phrase-audio", m.RequirePlayer(words.PhraseAudio))

	return mux
}
