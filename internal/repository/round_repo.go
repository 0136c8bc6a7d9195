package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tinywords/internal/database"
	"tinywords/internal/models"
)

// RoundRepository records completed rounds for progress reports
type RoundRepository struct {
	db database.DBTX
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db database.DBTX) *RoundRepository {
	return &RoundRepository{db: db}
}

// RecordRound stores a completed round, filling in ID and time when unset
func (r *RoundRepository) RecordRound(round *models.RoundRecord) error {
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if round.CompletedAt.IsZero() {
		round.CompletedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO rounds (id, player_id, target_word, level, incorrect_count, hint_count, points, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, round.ID, round.PlayerID, round.TargetWord, round.Level,
		round.IncorrectCount, round.HintCount, round.Points, round.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to record round: %w", err)
	}
	return nil
}

// RecentRounds returns the player's latest rounds, newest first
func (r *RoundRepository) RecentRounds(playerID string, limit int) ([]models.RoundRecord, error) {
	query := `
		SELECT id, player_id, target_word, level, incorrect_count, hint_count, points, completed_at
		FROM rounds
		WHERE player_id = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []models.RoundRecord
	for rows.Next() {
		var rr models.RoundRecord
		if err := rows.Scan(&rr.ID, &rr.PlayerID, &rr.TargetWord, &rr.Level,
			&rr.IncorrectCount, &rr.HintCount, &rr.Points, &rr.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, rr)
	}

	return rounds, rows.Err()
}

// RoundStats holds the counts shown in a progress report
type RoundStats struct {
	Played   int
	FirstTry int
	Hinted   int
}

// GetRoundStats counts the player's rounds since the given time
func (r *RoundRepository) GetRoundStats(playerID string, since time.Time) (RoundStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN incorrect_count = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN hint_count > 0 THEN 1 ELSE 0 END), 0)
		FROM rounds
		WHERE player_id = ? AND completed_at >= ?
	`
	var stats RoundStats
	if err := r.db.QueryRow(query, playerID, since.UTC()).Scan(&stats.Played, &stats.FirstTry, &stats.Hinted); err != nil {
		return RoundStats{}, fmt.Errorf("failed to get round stats: %w", err)
	}
	return stats, nil
}
