package service

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tinywords/internal/challenge"
	"tinywords/internal/database"
	"tinywords/internal/models"
	"tinywords/internal/repository"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations(filepath.Join("..", "..", "migrations")))
	return db
}

func cvc(word, p1, p2, p3 string) models.WordDefinition {
	return models.WordDefinition{
		TargetWord:        word,
		ImageResName:      strings.ToLower(word) + "_image",
		Part1Sound:        p1,
		Part2Sound:        p2,
		Part3Sound:        p3,
		PhonicComplexity:  1,
		SoundType:         models.DefaultSoundType(),
		LevelAvailability: []int{1, 2, 3, 4, 5},
	}
}

func testCatalog() []models.WordDefinition {
	return []models.WordDefinition{
		cvc("CAT", "C", "A", "T"),
		cvc("BAT", "B", "A", "T"),
		cvc("HAT", "H", "A", "T"),
		cvc("MAT", "M", "A", "T"),
	}
}

var testPhrases = SpokenContent{
	Positive:      []string{"Great job!"},
	Encouragement: []string{"Have another go!"},
}

// stepClock advances one minute per call so stored rounds sort by time.
func stepClock() func() time.Time {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newTestGame(t *testing.T, recentSize int) (*GameService, *database.DB, *models.Player) {
	t.Helper()
	db := newTestDB(t)
	player, err := repository.NewPlayerRepository(db).CreatePlayer("Ada", "parent@example.com", "")
	require.NoError(t, err)

	gen := challenge.NewGenerator(testCatalog(), nil, challenge.FixedOrder{})
	game := NewGameService(db, gen, challenge.FixedOrder{}, testPhrases, recentSize)
	game.now = stepClock()
	return game, db, player
}
