package service

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"tinywords/internal/challenge"
	"tinywords/internal/database"
	"tinywords/internal/models"
	"tinywords/internal/repository"
)

// Round errors returned to callers
var (
	ErrNoRound       = errors.New("no round in progress")
	ErrInvalidChoice = errors.New("word is not a choice in this round")
	ErrChoiceUsed    = errors.New("word has already been ruled out")
	ErrHintLimit     = errors.New("no more hints allowed")
	ErrRoundComplete = errors.New("round is already solved")
)

const (
	basePoints        = 10
	hintPenalty       = 3
	oneMissPenalty    = 3
	twoMissPenalty    = 8
	minPoints         = 1
	maxRoundAttempts  = 5
	DefaultRecentSize = 10
)

// Round is the state of a player's current challenge
type Round struct {
	Challenge      *models.Challenge `json:"-"`
	Level          int               `json:"level"`
	Feedback       models.Feedback   `json:"feedback"`
	HintLevel      int               `json:"hintLevel"`
	IncorrectCount int               `json:"incorrectCount"`
	HintCount      int               `json:"hintCount"`
	Disabled       []string          `json:"disabled"`
	StartedAt      time.Time         `json:"startedAt"`
}

// RoundView is the round as shown to the client
type RoundView struct {
	TargetWord string          `json:"targetWord"`
	Choices    []models.Choice `json:"choices"`
	Round
}

// ChoiceResult describes the outcome of submitting a word
type ChoiceResult struct {
	Correct     bool               `json:"correct"`
	Repeat      bool               `json:"repeat"`
	Word        string             `json:"word"`
	Points      int                `json:"points"`
	StreakDelta int                `json:"streakDelta"`
	Phrase      string             `json:"phrase,omitempty"`
	Score       models.ScoreStreak `json:"score"`
	Round       RoundView          `json:"round"`
}

type playerState struct {
	round  *Round
	recent []string
}

// GameService runs rounds for players and keeps score
type GameService struct {
	db           *database.DB
	generator    *challenge.Generator
	picker       challenge.Picker
	spoken       SpokenContent
	recentSize   int
	settingsRepo *repository.SettingsRepository
	scoreRepo    *repository.ScoreRepository
	now          func() time.Time

	mu      sync.RWMutex
	players map[string]*playerState
}

// NewGameService creates a game service. A nil picker uses fixed order.
func NewGameService(db *database.DB, generator *challenge.Generator, picker challenge.Picker, spoken SpokenContent, recentSize int) *GameService {
	if picker == nil {
		picker = challenge.FixedOrder{}
	}
	if recentSize <= 0 {
		recentSize = DefaultRecentSize
	}
	return &GameService{
		db:           db,
		generator:    generator,
		picker:       picker,
		spoken:       spoken,
		recentSize:   recentSize,
		settingsRepo: repository.NewSettingsRepository(db),
		scoreRepo:    repository.NewScoreRepository(db),
		now:          time.Now,
		players:      make(map[string]*playerState),
	}
}

// CurrentRound returns the player's round, starting one if there is none
func (s *GameService) CurrentRound(playerID string) (RoundView, error) {
	s.mu.RLock()
	state, ok := s.players[playerID]
	if ok && state.round != nil {
		view := viewOf(state.round)
		s.mu.RUnlock()
		return view, nil
	}
	s.mu.RUnlock()

	return s.NextRound(playerID)
}

// NextRound replaces the player's round with a new challenge
func (s *GameService) NextRound(playerID string) (RoundView, error) {
	settings, err := s.settingsRepo.GetSettings(playerID)
	if err != nil {
		return RoundView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state(playerID)
	c, err := s.newChallenge(settings.Level, state.recent)
	if err != nil {
		return RoundView{}, err
	}

	state.round = &Round{
		Challenge: c,
		Level:     settings.Level,
		Feedback:  models.FeedbackNone,
		Disabled:  []string{},
		StartedAt: s.now().UTC(),
	}
	state.recent = append(state.recent, c.TargetWord)
	if len(state.recent) > s.recentSize {
		state.recent = state.recent[len(state.recent)-s.recentSize:]
	}
	return viewOf(state.round), nil
}

// newChallenge builds a challenge avoiding recent targets. A single word
// without distractors does not end the game, so a few picks are tried.
func (s *GameService) newChallenge(level int, recent []string) (*models.Challenge, error) {
	var lastErr error
	for attempt := 0; attempt < maxRoundAttempts; attempt++ {
		var c *models.Challenge
		var err error
		if level >= models.MinLevel && level <= models.MaxLevel {
			c, err = s.generator.RandomForLevel(level, recent)
			if errors.Is(err, challenge.ErrNoWordsForLevel) && len(recent) > 0 {
				c, err = s.generator.RandomForLevel(level, nil)
			}
		} else {
			c, err = s.generator.RandomInitial(recent)
		}
		if err == nil {
			return c, nil
		}
		if errors.Is(err, challenge.ErrEmptyCatalog) || errors.Is(err, challenge.ErrNoWordsForLevel) {
			return nil, err
		}
		log.Printf("Warning: could not build challenge (attempt %d): %v", attempt+1, err)
		lastErr = err
	}
	return nil, lastErr
}

// SubmitChoice scores a chosen word against the current round
func (s *GameService) SubmitChoice(playerID, word string) (ChoiceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.players[playerID]
	if !ok || state.round == nil {
		return ChoiceResult{}, ErrNoRound
	}
	round := state.round
	c := round.Challenge

	chosen := canonical(c, word)
	if !c.HasChoice(chosen) {
		return ChoiceResult{}, ErrInvalidChoice
	}

	if round.Feedback == models.FeedbackCorrect {
		score, err := s.scoreRepo.GetScore(playerID)
		if err != nil {
			return ChoiceResult{}, err
		}
		return ChoiceResult{
			Correct: c.IsCorrect(chosen),
			Repeat:  true,
			Word:    chosen,
			Score:   score,
			Round:   viewOf(round),
		}, nil
	}
	if slices.Contains(round.Disabled, chosen) {
		return ChoiceResult{}, ErrChoiceUsed
	}

	result := ChoiceResult{Word: chosen}
	err := s.db.InTx(func(tx *database.Tx) error {
		scores := repository.NewScoreRepository(tx)
		score, err := scores.GetScore(playerID)
		if err != nil {
			return err
		}

		if c.IsCorrect(chosen) {
			points := RoundPoints(round.HintCount, round.IncorrectCount)
			score.Score += points
			score.Streak++
			score.HighScore = max(score.HighScore, score.Score)
			score.HighStreak = max(score.HighStreak, score.Streak)

			record := &models.RoundRecord{
				PlayerID:       playerID,
				TargetWord:     c.TargetWord,
				Level:          round.Level,
				IncorrectCount: round.IncorrectCount,
				HintCount:      round.HintCount,
				Points:         points,
				CompletedAt:    s.now().UTC(),
			}
			if err := repository.NewRoundRepository(tx).RecordRound(record); err != nil {
				return err
			}

			result.Correct = true
			result.Points = points
			result.StreakDelta = 1
		} else {
			result.StreakDelta = -score.Streak
			score.Score = 0
			score.Streak = 0
		}

		if err := scores.SaveScore(playerID, score); err != nil {
			return err
		}
		result.Score = score
		return nil
	})
	if err != nil {
		return ChoiceResult{}, fmt.Errorf("failed to record choice: %w", err)
	}

	if result.Correct {
		round.Feedback = models.FeedbackCorrect
		result.Phrase = s.spoken.PositivePhrase(s.picker)
	} else {
		round.Feedback = models.FeedbackIncorrect
		round.IncorrectCount++
		round.Disabled = append(round.Disabled, chosen)
		result.Phrase = s.spoken.EncouragementPhrase(s.picker)
	}
	result.Round = viewOf(round)
	return result, nil
}

// RequestHint raises the hint level of the current round. The second hint
// also rules out one distractor.
func (s *GameService) RequestHint(playerID string) (RoundView, error) {
	settings, err := s.settingsRepo.GetSettings(playerID)
	if err != nil {
		return RoundView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.players[playerID]
	if !ok || state.round == nil {
		return RoundView{}, ErrNoRound
	}
	round := state.round
	if round.Feedback == models.FeedbackCorrect {
		return RoundView{}, ErrRoundComplete
	}
	if round.HintLevel >= min(settings.HintLevelAllowed, models.MaxHintLevel) {
		return RoundView{}, ErrHintLimit
	}

	round.HintLevel++
	round.HintCount++
	if round.HintLevel == models.MaxHintLevel {
		for _, wrong := range round.Challenge.Incorrect {
			if !slices.Contains(round.Disabled, wrong.Word) {
				round.Disabled = append(round.Disabled, wrong.Word)
				break
			}
		}
	}
	return viewOf(round), nil
}

// Score returns the player's score and streak
func (s *GameService) Score(playerID string) (models.ScoreStreak, error) {
	return s.scoreRepo.GetScore(playerID)
}

// ResetScore clears the player's score and recent word history
func (s *GameService) ResetScore(playerID string) error {
	if err := s.scoreRepo.ResetScore(playerID); err != nil {
		return err
	}
	s.mu.Lock()
	if state, ok := s.players[playerID]; ok {
		state.recent = nil
	}
	s.mu.Unlock()
	return nil
}

// Settings returns the player's settings
func (s *GameService) Settings(playerID string) (models.GameSettings, error) {
	return s.settingsRepo.GetSettings(playerID)
}

// UpdateSettings clamps and stores new settings
func (s *GameService) UpdateSettings(playerID string, updated models.GameSettings) (models.GameSettings, error) {
	current, err := s.settingsRepo.GetSettings(playerID)
	if err != nil {
		return models.GameSettings{}, err
	}
	clamped := ClampSettings(current, updated)
	if err := s.settingsRepo.SaveSettings(playerID, clamped); err != nil {
		return models.GameSettings{}, err
	}
	return clamped, nil
}

// ClampSettings brings updated into the allowed ranges. Turning
// auto-advance off keeps the interval from current.
func ClampSettings(current, updated models.GameSettings) models.GameSettings {
	s := updated
	if s.TTSSpeed <= 0 {
		s.TTSSpeed = models.DefaultTTSSpeed
	}
	s.TTSSpeed = min(max(s.TTSSpeed, 0.25), 2.0)

	if !s.AutoAdvance {
		s.AutoAdvanceIntervalSeconds = current.AutoAdvanceIntervalSeconds
	}
	s.AutoAdvanceIntervalSeconds = max(s.AutoAdvanceIntervalSeconds, models.MinAutoAdvanceSeconds)

	s.HintLevelAllowed = min(max(s.HintLevelAllowed, 0), models.MaxHintLevel)
	s.MusicVolume = min(max(s.MusicVolume, 0), 100)
	s.TTSVolume = min(max(s.TTSVolume, 0), 100)
	s.LetterSpellingDelayMs = max(s.LetterSpellingDelayMs, 0)
	if strings.TrimSpace(s.BackgroundMusicTrack) == "" {
		s.BackgroundMusicTrack = current.BackgroundMusicTrack
	}
	if s.Level < 0 || s.Level > models.MaxLevel {
		s.Level = 0
	}
	return s
}

// RoundPoints is what a correct answer earns after hints and misses
func RoundPoints(hints, incorrect int) int {
	points := basePoints - hintPenalty*hints
	switch {
	case incorrect >= 2:
		points -= twoMissPenalty
	case incorrect == 1:
		points -= oneMissPenalty
	}
	return max(points, minPoints)
}

func (s *GameService) state(playerID string) *playerState {
	state, ok := s.players[playerID]
	if !ok {
		state = &playerState{}
		s.players[playerID] = state
	}
	return state
}

func canonical(c *models.Challenge, word string) string {
	w, _ := lo.Find(c.Words(), func(w string) bool {
		return strings.EqualFold(w, word)
	})
	return w
}

func viewOf(r *Round) RoundView {
	round := *r
	round.Disabled = slices.Clone(r.Disabled)
	return RoundView{
		TargetWord: r.Challenge.TargetWord,
		Choices:    r.Challenge.Choices(),
		Round:      round,
	}
}
