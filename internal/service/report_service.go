package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"tinywords/internal/models"
	"tinywords/internal/repository"
)

const recentWordsInReport = 10

// ErrNoParentEmail is returned when a report has nowhere to go
var ErrNoParentEmail = errors.New("player has no parent email")

// ReportService builds and sends parent progress reports
type ReportService struct {
	playerRepo *repository.PlayerRepository
	scoreRepo  *repository.ScoreRepository
	roundRepo  *repository.RoundRepository
	email      *EmailService
}

// NewReportService creates a new report service
func NewReportService(playerRepo *repository.PlayerRepository, scoreRepo *repository.ScoreRepository, roundRepo *repository.RoundRepository, email *EmailService) *ReportService {
	return &ReportService{
		playerRepo: playerRepo,
		scoreRepo:  scoreRepo,
		roundRepo:  roundRepo,
		email:      email,
	}
}

// Summary gathers the player's progress since the given time
func (s *ReportService) Summary(playerID string, since time.Time) (models.ProgressSummary, error) {
	player, err := s.playerRepo.GetPlayerByID(playerID)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	if player == nil {
		return models.ProgressSummary{}, ErrPlayerMissing
	}

	score, err := s.scoreRepo.GetScore(playerID)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	stats, err := s.roundRepo.GetRoundStats(playerID, since)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	rounds, err := s.roundRepo.RecentRounds(playerID, recentWordsInReport)
	if err != nil {
		return models.ProgressSummary{}, err
	}

	return models.ProgressSummary{
		Player:         *player,
		Score:          score,
		RoundsPlayed:   stats.Played,
		FirstTryRounds: stats.FirstTry,
		HintedRounds:   stats.Hinted,
		RecentWords: lo.Uniq(lo.Map(rounds, func(r models.RoundRecord, _ int) string {
			return r.TargetWord
		})),
	}, nil
}

// SendReport emails the summary to the player's parent
func (s *ReportService) SendReport(ctx context.Context, playerID string, since time.Time) (models.ProgressSummary, error) {
	summary, err := s.Summary(playerID, since)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	if summary.Player.ParentEmail == "" {
		return summary, ErrNoParentEmail
	}
	if err := s.email.SendProgressReport(ctx, summary, since); err != nil {
		return summary, fmt.Errorf("failed to send report: %w", err)
	}
	return summary, nil
}
