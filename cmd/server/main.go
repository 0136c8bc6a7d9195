package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tinywords/internal/audio"
	"tinywords/internal/catalog"
	"tinywords/internal/challenge"
	"tinywords/internal/config"
	"tinywords/internal/database"
	"tinywords/internal/handlers"
	"tinywords/internal/images"
	"tinywords/internal/repository"
	"tinywords/internal/security"
	"tinywords/internal/service"
)

const imagesURLPrefix = "/static/images"

func main() {
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	result, err := catalog.Read(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load word catalog: %v", err)
	}
	for _, issue := range catalog.Check(result.Words) {
		log.Printf("Warning: catalog %s", issue)
	}
	log.Printf("Word catalog loaded: %d words, %d dropped", len(result.Words), len(result.Dropped))

	spoken, err := service.LoadSpokenContent(cfg.SpokenContentPath)
	if err != nil {
		log.Fatalf("Failed to load spoken content: %v", err)
	}

	picker := newPicker(cfg)
	generator := challenge.NewGenerator(result.Words, newImageResolver(cfg.ImagesPath), picker)

	// Initialize repositories
	playerRepo := repository.NewPlayerRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	roundRepo := repository.NewRoundRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	playerService := service.NewPlayerService(playerRepo)
	reportService := service.NewReportService(playerRepo, scoreRepo, roundRepo, emailService)
	gameService := service.NewGameService(db, generator, picker, spoken, cfg.RecentWindow)
	ttsService := audio.NewTTSService(cfg.AudioPath, cfg.TTSEndpoint)

	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	limiter := security.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens, playerService, limiter)
	mux := handlers.Routes(middleware,
		handlers.NewPlayerHandler(playerService, reportService, tokens),
		handlers.NewGameHandler(gameService),
		handlers.NewWordHandler(generator, ttsService, gameService, spoken),
	)
	mux.Handle("GET "+imagesURLPrefix+"/", http.StripPrefix(imagesURLPrefix+"/", http.FileServer(http.Dir(cfg.ImagesPath))))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// newPicker returns fixed ordering in deterministic mode, a seeded picker
// when RANDOM_SEED is set, and a randomly seeded one otherwise.
func newPicker(cfg *config.Config) challenge.Picker {
	switch {
	case cfg.Deterministic:
		log.Println("Deterministic mode: challenges use catalog order")
		return challenge.FixedOrder{}
	case cfg.RandomSeed != 0:
		return challenge.NewRandomPicker(cfg.RandomSeed)
	default:
		return challenge.NewPicker()
	}
}

func newImageResolver(dir string) challenge.ImageResolver {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Printf("Warning: images directory %s not found, challenges will have no pictures", dir)
		return images.Headless{}
	}
	return images.NewFileResolver(dir, imagesURLPrefix)
}
