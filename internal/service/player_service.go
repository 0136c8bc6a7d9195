package service

import (
	"errors"
	"fmt"
	"strings"

	"tinywords/internal/models"
	"tinywords/internal/repository"
	"tinywords/internal/security"
	"tinywords/internal/validation"
)

var (
	ErrPlayerMissing = errors.New("player not found")
	ErrPINRequired   = errors.New("parent PIN required")
	ErrPINMismatch   = errors.New("parent PIN does not match")
)

// PlayerService manages player profiles and the parent PIN
type PlayerService struct {
	playerRepo *repository.PlayerRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(playerRepo *repository.PlayerRepository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// CreatePlayer validates input and stores a new player. Email and PIN are
// optional.
func (s *PlayerService) CreatePlayer(name, parentEmail, pin string) (*models.Player, error) {
	if err := validation.ValidatePlayerName(name); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	parentEmail = strings.TrimSpace(parentEmail)
	if parentEmail != "" {
		if err := validation.ValidateEmail(parentEmail); err != nil {
			return nil, err
		}
	}

	var pinHash string
	if pin != "" {
		hash, err := security.HashPIN(pin)
		if err != nil {
			return nil, err
		}
		pinHash = hash
	}

	player, err := s.playerRepo.CreatePlayer(name, parentEmail, pinHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// GetPlayer returns a player or ErrPlayerMissing
func (s *PlayerService) GetPlayer(id string) (*models.Player, error) {
	player, err := s.playerRepo.GetPlayerByID(id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerMissing
	}
	return player, nil
}

// VerifyPIN checks the parent PIN for a player. Players without a PIN
// accept any request.
func (s *PlayerService) VerifyPIN(player *models.Player, pin string) error {
	if !player.HasParentPIN() {
		return nil
	}
	if pin == "" {
		return ErrPINRequired
	}
	if !security.CheckPIN(pin, player.ParentPINHash) {
		return ErrPINMismatch
	}
	return nil
}

// SetParentPIN replaces the player's parent PIN
func (s *PlayerService) SetParentPIN(player *models.Player, currentPIN, newPIN string) error {
	if err := s.VerifyPIN(player, currentPIN); err != nil {
		return err
	}
	hash, err := security.HashPIN(newPIN)
	if err != nil {
		return err
	}
	if err := s.playerRepo.UpdateParentPIN(player.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlayerMissing
		}
		return err
	}
	player.ParentPINHash = hash
	return nil
}
