package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tinywords/internal/database"
	"tinywords/internal/models"
)

// PlayerRepository handles database operations for players
type PlayerRepository struct {
	db database.DBTX
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db database.DBTX) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// CreatePlayer stores a new player with a generated ID
func (r *PlayerRepository) CreatePlayer(name, parentEmail, parentPINHash string) (*models.Player, error) {
	player := &models.Player{
		ID:            uuid.NewString(),
		Name:          name,
		ParentEmail:   parentEmail,
		ParentPINHash: parentPINHash,
		CreatedAt:     time.Now().UTC(),
	}

	query := "INSERT INTO players (id, name, parent_email, parent_pin_hash, created_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := r.db.Exec(query, player.ID, player.Name, player.ParentEmail, player.ParentPINHash, player.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// GetPlayerByID retrieves a player, returning nil when it does not exist
func (r *PlayerRepository) GetPlayerByID(id string) (*models.Player, error) {
	query := "SELECT id, name, parent_email, parent_pin_hash, created_at FROM players WHERE id = ?"
	player := &models.Player{}
	err := r.db.QueryRow(query, id).Scan(
		&player.ID,
		&player.Name,
		&player.ParentEmail,
		&player.ParentPINHash,
		&player.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// ListPlayers returns every player, oldest first
func (r *PlayerRepository) ListPlayers() ([]models.Player, error) {
	rows, err := r.db.Query("SELECT id, name, parent_email, parent_pin_hash, created_at FROM players ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.ParentEmail, &p.ParentPINHash, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

// UpdateParentPIN replaces the stored parent PIN hash
func (r *PlayerRepository) UpdateParentPIN(id, pinHash string) error {
	result, err := r.db.Exec("UPDATE players SET parent_pin_hash = ? WHERE id = ?", pinHash, id)
	if err != nil {
		return fmt.Errorf("failed to update parent PIN: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
