package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tinywords/internal/database"
	"tinywords/internal/models"
)

var scoreColumns = []string{"player_id", "score", "streak", "high_score", "high_streak", "updated_at"}

// ScoreRepository persists score, streak and best values per player
type ScoreRepository struct {
	db database.DBTX
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db database.DBTX) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// GetScore returns the player's score; a player with no rounds scores zero
func (r *ScoreRepository) GetScore(playerID string) (models.ScoreStreak, error) {
	var s models.ScoreStreak
	query := "SELECT score, streak, high_score, high_streak FROM score_streaks WHERE player_id = ?"
	err := r.db.QueryRow(query, playerID).Scan(&s.Score, &s.Streak, &s.HighScore, &s.HighStreak)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScoreStreak{}, nil
	}
	if err != nil {
		return models.ScoreStreak{}, fmt.Errorf("failed to get score: %w", err)
	}
	return s, nil
}

// SaveScore stores the player's score, creating the row on first use
func (r *ScoreRepository) SaveScore(playerID string, s models.ScoreStreak) error {
	query := r.db.GetDialect().UpsertQuery("score_streaks", "player_id", scoreColumns)
	if _, err := r.db.Exec(query, playerID, s.Score, s.Streak, s.HighScore, s.HighStreak, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

// ResetScore clears score, streak and best values
func (r *ScoreRepository) ResetScore(playerID string) error {
	return r.SaveScore(playerID, models.ScoreStreak{})
}
