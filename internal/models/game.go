package models

import "time"

// Feedback is the state of the current round after the last choice.
type Feedback string

const (
	FeedbackNone      Feedback = "none"
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)

// Game setting defaults.
const (
	DefaultTTSSpeed              = 1.0
	DefaultAutoAdvanceSeconds    = 30
	MinAutoAdvanceSeconds        = 3
	DefaultHintLevelAllowed      = 2
	DefaultVolume                = 100
	DefaultMusicTrack            = "chill.mp3"
	DefaultLetterSpellingDelayMs = 750
	MaxHintLevel                 = 2
)

// GameSettings are the per-player preferences.
type GameSettings struct {
	TTSSpeed                   float64 `json:"ttsSpeed"`
	AutoAdvance                bool    `json:"autoAdvance"`
	AutoAdvanceIntervalSeconds int     `json:"autoAdvanceIntervalSeconds"`
	HintLevelAllowed           int     `json:"hintLevelAllowed"`
	AlwaysShowWords            bool    `json:"alwaysShowWords"`
	PronounceTargetAtStart     bool    `json:"pronounceTargetAtStart"`
	MusicVolume                int     `json:"musicVolume"`
	TTSVolume                  int     `json:"ttsVolume"`
	BackgroundMusicTrack       string  `json:"bgMusicTrack"`
	TTSEnabled                 bool    `json:"ttsEnabled"`
	LetterSpellingDelayMs      int     `json:"letterSpellingDelayMs"`
	// Level selects level mode when between 1 and 5; 0 plays the whole catalog.
	Level int `json:"level"`
}

// DefaultGameSettings returns the settings a new player starts with.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		TTSSpeed:                   DefaultTTSSpeed,
		AutoAdvance:                true,
		AutoAdvanceIntervalSeconds: DefaultAutoAdvanceSeconds,
		HintLevelAllowed:           DefaultHintLevelAllowed,
		MusicVolume:                DefaultVolume,
		TTSVolume:                  DefaultVolume,
		BackgroundMusicTrack:       DefaultMusicTrack,
		TTSEnabled:                 true,
		LetterSpellingDelayMs:      DefaultLetterSpellingDelayMs,
	}
}

// ScoreStreak is a player's running score, streak and best values.
type ScoreStreak struct {
	Score      int `json:"score"`
	Streak     int `json:"streak"`
	HighScore  int `json:"highScore"`
	HighStreak int `json:"highStreak"`
}

// Player is a child profile that owns score and settings.
type Player struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ParentEmail   string    `json:"parentEmail,omitempty"`
	ParentPINHash string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HasParentPIN reports whether settings changes need a parent PIN.
func (p Player) HasParentPIN() bool {
	return p.ParentPINHash != ""
}

// RoundRecord is a completed round stored for progress reports.
type RoundRecord struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"playerId"`
	TargetWord     string    `json:"targetWord"`
	Level          int       `json:"level"`
	IncorrectCount int       `json:"incorrectCount"`
	HintCount      int       `json:"hintCount"`
	Points         int       `json:"points"`
	CompletedAt    time.Time `json:"completedAt"`
}

// ProgressSummary aggregates round history for a parent report.
type ProgressSummary struct {
	Player         Player      `json:"player"`
	Score          ScoreStreak `json:"score"`
	RoundsPlayed   int         `json:"roundsPlayed"`
	FirstTryRounds int         `json:"firstTryRounds"`
	HintedRounds   int         `json:"hintedRounds"`
	RecentWords    []string    `json:"recentWords"`
}

// FirstTryPercent returns the share of rounds solved without a wrong guess.
func (s ProgressSummary) FirstTryPercent() float64 {
	if s.RoundsPlayed == 0 {
		return 0
	}
	return float64(s.FirstTryRounds) * 100 / float64(s.RoundsPlayed)
}
