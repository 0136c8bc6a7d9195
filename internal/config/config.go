package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	CatalogPath       string
	SpokenContentPath string
	ImagesPath        string
	AudioPath         string
	TTSEndpoint       string

	// Deterministic makes every round use catalog order; only for demos and tests.
	Deterministic bool
	RandomSeed    uint64
	RecentWindow  int

	TokenSecret    string
	TokenTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   strings.ToLower(getEnv("DATABASE_TYPE", "sqlite")),
		DatabasePath:   getEnv("DB_PATH", "./tinywords.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		CatalogPath:       getEnv("CATALOG_PATH", "./data/word_definitions.json"),
		SpokenContentPath: getEnv("SPOKEN_CONTENT_PATH", "./data/spoken_content.json"),
		ImagesPath:        getEnv("IMAGES_PATH", "./static/images"),
		AudioPath:         getEnv("AUDIO_PATH", "./static/audio"),
		TTSEndpoint:       getEnv("TTS_ENDPOINT", ""),

		Deterministic: getEnvBool("DETERMINISTIC", false),
		RandomSeed:    uint64(getEnvInt("RANDOM_SEED", 0)),
		RecentWindow:  getEnvInt("RECENT_WINDOW", 10),

		TokenSecret:    getEnv("TOKEN_SECRET", "change-me-in-production"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 30*24*time.Hour),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "TinyWords"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		Debug: getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
