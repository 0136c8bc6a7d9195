package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tinywords/internal/database"
	"tinywords/internal/models"
)

// SettingsRepository stores each player's game settings as a JSON document
type SettingsRepository struct {
	db database.DBTX
}

func NewSettingsRepository(db database.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings returns the stored settings or the defaults for a new player.
// Fields missing from an older stored document keep their default values.
func (r *SettingsRepository) GetSettings(playerID string) (models.GameSettings, error) {
	var raw string
	err := r.db.QueryRow("SELECT settings FROM game_settings WHERE player_id = ?", playerID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultGameSettings(), nil
	}
	if err != nil {
		return models.GameSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := models.DefaultGameSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.GameSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings updates or inserts the player's settings
func (r *SettingsRepository) SaveSettings(playerID string, settings models.GameSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := r.db.GetDialect().UpsertQuery("game_settings", "player_id", []string{"player_id", "settings", "updated_at"})
	if _, err := r.db.Exec(query, playerID, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
