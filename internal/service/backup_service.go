package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"tinywords/internal/database"
	"tinywords/internal/models"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exported_at"`
	Players    []PlayerBackup       `json:"players"`
	Rounds     []models.RoundRecord `json:"rounds"`
}

// PlayerBackup is a player with its score and settings
type PlayerBackup struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	ParentEmail   string              `json:"parent_email"`
	ParentPINHash string              `json:"parent_pin_hash"`
	CreatedAt     time.Time           `json:"created_at"`
	Score         *models.ScoreStreak `json:"score,omitempty"`
	Settings      json.RawMessage     `json:"settings,omitempty"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(file)
	if err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d players, %d rounds", len(backup.Players), len(backup.Rounds))
	return nil
}

// ExportToWriter writes the backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) (*BackupData, error) {
	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
	}

	if err := s.exportPlayers(backup); err != nil {
		return nil, fmt.Errorf("failed to export players: %w", err)
	}
	if err := s.exportRounds(backup); err != nil {
		return nil, fmt.Errorf("failed to export rounds: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores players and rounds in one transaction
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err := s.db.InTx(func(tx *database.Tx) error {
		if err := importPlayers(tx, backup.Players); err != nil {
			return fmt.Errorf("failed to import players: %w", err)
		}
		if err := importRounds(tx, backup.Rounds); err != nil {
			return fmt.Errorf("failed to import rounds: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Println("Database import completed successfully")
	return nil
}

// Clear deletes all player data, children first
func (s *BackupService) Clear() error {
	tables := []string{"rounds", "game_settings", "score_streaks", "players"}

	return s.db.InTx(func(tx *database.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			log.Printf("Cleared table: %s", table)
		}
		return nil
	})
}

func (s *BackupService) exportPlayers(backup *BackupData) error {
	query := `
		SELECT p.id, p.name, p.parent_email, p.parent_pin_hash, p.created_at,
			s.score, s.streak, s.high_score, s.high_streak, g.settings
		FROM players p
		LEFT JOIN score_streaks s ON s.player_id = p.id
		LEFT JOIN game_settings g ON g.player_id = p.id
		ORDER BY p.created_at, p.id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PlayerBackup
		var score, streak, highScore, highStreak *int
		var settings *string
		if err := rows.Scan(&p.ID, &p.Name, &p.ParentEmail, &p.ParentPINHash, &p.CreatedAt,
			&score, &streak, &highScore, &highStreak, &settings); err != nil {
			return err
		}
		if score != nil {
			p.Score = &models.ScoreStreak{Score: *score, Streak: *streak, HighScore: *highScore, HighStreak: *highStreak}
		}
		if settings != nil {
			p.Settings = json.RawMessage(*settings)
		}
		backup.Players = append(backup.Players, p)
	}
	return rows.Err()
}

func (s *BackupService) exportRounds(backup *BackupData) error {
	query := `
		SELECT id, player_id, target_word, level, incorrect_count, hint_count, points, completed_at
		FROM rounds
		ORDER BY completed_at, id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r models.RoundRecord
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.TargetWord, &r.Level,
			&r.IncorrectCount, &r.HintCount, &r.Points, &r.CompletedAt); err != nil {
			return err
		}
		backup.Rounds = append(backup.Rounds, r)
	}
	return rows.Err()
}

func importPlayers(tx *database.Tx, players []PlayerBackup) error {
	log.Printf("Importing %d players...", len(players))
	now := time.Now().UTC()
	for _, p := range players {
		query := "INSERT INTO players (id, name, parent_email, parent_pin_hash, created_at) VALUES (?, ?, ?, ?, ?)"
		if _, err := tx.Exec(query, p.ID, p.Name, p.ParentEmail, p.ParentPINHash, p.CreatedAt); err != nil {
			return fmt.Errorf("failed to import player %s: %w", p.ID, err)
		}

		if p.Score != nil {
			query := "INSERT INTO score_streaks (player_id, score, streak, high_score, high_streak, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
			if _, err := tx.Exec(query, p.ID, p.Score.Score, p.Score.Streak, p.Score.HighScore, p.Score.HighStreak, now); err != nil {
				return fmt.Errorf("failed to import score for player %s: %w", p.ID, err)
			}
		}

		if len(p.Settings) > 0 {
			query := "INSERT INTO game_settings (player_id, settings, updated_at) VALUES (?, ?, ?)"
			if _, err := tx.Exec(query, p.ID, string(p.Settings), now); err != nil {
				return fmt.Errorf("failed to import settings for player %s: %w", p.ID, err)
			}
		}
	}
	return nil
}

func importRounds(tx *database.Tx, rounds []models.RoundRecord) error {
	log.Printf("Importing %d rounds...", len(rounds))
	for _, r := range rounds {
		query := `
			INSERT INTO rounds (id, player_id, target_word, level, incorrect_count, hint_count, points, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.Exec(query, r.ID, r.PlayerID, r.TargetWord, r.Level,
			r.IncorrectCount, r.HintCount, r.Points, r.CompletedAt); err != nil {
			return fmt.Errorf("failed to import round %s: %w", r.ID, err)
		}
	}
	return nil
}
