package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinywords/internal/database"
	"tinywords/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations(filepath.Join("..", "..", "migrations")))
	return db
}

func TestPlayerRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)

	created, err := repo.CreatePlayer("Ada", "parent@example.com", "")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetPlayerByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "parent@example.com", got.ParentEmail)
	assert.False(t, got.HasParentPIN())

	require.NoError(t, repo.UpdateParentPIN(created.ID, "hash"))
	got, err = repo.GetPlayerByID(created.ID)
	require.NoError(t, err)
	assert.True(t, got.HasParentPIN())

	missing, err := repo.GetPlayerByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.UpdateParentPIN("nope", "hash"), ErrNotFound)

	_, err = repo.CreatePlayer("Bo", "", "")
	require.NoError(t, err)
	players, err := repo.ListPlayers()
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func TestScoreRepository(t *testing.T) {
	db := newTestDB(t)
	player, err := NewPlayerRepository(db).CreatePlayer("Ada", "", "")
	require.NoError(t, err)
	repo := NewScoreRepository(db)

	score, err := repo.GetScore(player.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScoreStreak{}, score)

	want := models.ScoreStreak{Score: 17, Streak: 2, HighScore: 30, HighStreak: 4}
	require.NoError(t, repo.SaveScore(player.ID, want))
	score, err = repo.GetScore(player.ID)
	require.NoError(t, err)
	assert.Equal(t, want, score)

	want.Score = 27
	require.NoError(t, repo.SaveScore(player.ID, want))
	score, err = repo.GetScore(player.ID)
	require.NoError(t, err)
	assert.Equal(t, 27, score.Score)

	require.NoError(t, repo.ResetScore(player.ID))
	score, err = repo.GetScore(player.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScoreStreak{}, score)
}

func TestSettingsRepository(t *testing.T) {
	db := newTestDB(t)
	player, err := NewPlayerRepository(db).CreatePlayer("Ada", "", "")
	require.NoError(t, err)
	repo := NewSettingsRepository(db)

	settings, err := repo.GetSettings(player.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultGameSettings(), settings)

	settings.Level = 2
	settings.AutoAdvance = false
	settings.TTSSpeed = 0.8
	require.NoError(t, repo.SaveSettings(player.ID, settings))

	got, err := repo.GetSettings(player.ID)
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}

func TestSettingsRepositoryFillsMissingFields(t *testing.T) {
	db := newTestDB(t)
	player, err := NewPlayerRepository(db).CreatePlayer("Ada", "", "")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO game_settings (player_id, settings, updated_at) VALUES (?, ?, ?)",
		player.ID, `{"level": 3}`, time.Now().UTC())
	require.NoError(t, err)

	got, err := NewSettingsRepository(db).GetSettings(player.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, models.DefaultMusicTrack, got.BackgroundMusicTrack)
	assert.True(t, got.TTSEnabled)
}

func TestRoundRepository(t *testing.T) {
	db := newTestDB(t)
	player, err := NewPlayerRepository(db).CreatePlayer("Ada", "", "")
	require.NoError(t, err)
	repo := NewRoundRepository(db)

	base := time.Now().UTC().Add(-time.Hour)
	rounds := []models.RoundRecord{
		{PlayerID: player.ID, TargetWord: "CAT", Points: 10, CompletedAt: base},
		{PlayerID: player.ID, TargetWord: "BAT", IncorrectCount: 1, Points: 7, CompletedAt: base.Add(time.Minute)},
		{PlayerID: player.ID, TargetWord: "HAT", HintCount: 1, Points: 7, CompletedAt: base.Add(2 * time.Minute)},
	}
	for i := range rounds {
		require.NoError(t, repo.RecordRound(&rounds[i]))
		assert.NotEmpty(t, rounds[i].ID)
	}

	recent, err := repo.RecentRounds(player.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "HAT", recent[0].TargetWord)
	assert.Equal(t, "BAT", recent[1].TargetWord)

	stats, err := repo.GetRoundStats(player.ID, base.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, RoundStats{Played: 3, FirstTry: 2, Hinted: 1}, stats)

	stats, err = repo.GetRoundStats(player.ID, base.Add(90*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Played)
}

func TestRepositoriesJoinTransactions(t *testing.T) {
	db := newTestDB(t)
	player, err := NewPlayerRepository(db).CreatePlayer("Ada", "", "")
	require.NoError(t, err)

	err = db.InTx(func(tx *database.Tx) error {
		if err := NewScoreRepository(tx).SaveScore(player.ID, models.ScoreStreak{Score: 10, Streak: 1}); err != nil {
			return err
		}
		return NewRoundRepository(tx).RecordRound(&models.RoundRecord{PlayerID: player.ID, TargetWord: "CAT", Points: 10})
	})
	require.NoError(t, err)

	score, err := NewScoreRepository(db).GetScore(player.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, score.Score)
}
