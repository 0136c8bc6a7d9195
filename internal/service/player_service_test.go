package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinywords/internal/repository"
	"tinywords/internal/security"
	"tinywords/internal/validation"
)

func TestCreatePlayer(t *testing.T) {
	svc := NewPlayerService(repository.NewPlayerRepository(newTestDB(t)))

	player, err := svc.CreatePlayer("  Ada  ", " parent@example.com ", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Ada", player.Name)
	assert.Equal(t, "parent@example.com", player.ParentEmail)
	assert.True(t, player.HasParentPIN())

	got, err := svc.GetPlayer(player.ID)
	require.NoError(t, err)
	assert.Equal(t, player.ParentPINHash, got.ParentPINHash)

	_, err = svc.GetPlayer("missing")
	assert.ErrorIs(t, err, ErrPlayerMissing)
}

func TestCreatePlayerValidation(t *testing.T) {
	svc := NewPlayerService(repository.NewPlayerRepository(newTestDB(t)))

	_, err := svc.CreatePlayer(" ", "", "")
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = svc.CreatePlayer("This name is far too long to fit on a badge", "", "")
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = svc.CreatePlayer("Ada", "not-an-email", "")
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = svc.CreatePlayer("Ada", "", "12")
	assert.ErrorIs(t, err, security.ErrInvalidPIN)
}

func TestVerifyAndChangePIN(t *testing.T) {
	svc := NewPlayerService(repository.NewPlayerRepository(newTestDB(t)))

	open, err := svc.CreatePlayer("Bo", "", "")
	require.NoError(t, err)
	assert.NoError(t, svc.VerifyPIN(open, ""), "players without a PIN are not gated")

	require.NoError(t, svc.SetParentPIN(open, "", "2468"))
	assert.ErrorIs(t, svc.VerifyPIN(open, ""), ErrPINRequired)
	assert.ErrorIs(t, svc.VerifyPIN(open, "1111"), ErrPINMismatch)
	assert.NoError(t, svc.VerifyPIN(open, "2468"))

	assert.ErrorIs(t, svc.SetParentPIN(open, "1111", "1357"), ErrPINMismatch)

	stored, err := svc.GetPlayer(open.ID)
	require.NoError(t, err)
	assert.NoError(t, svc.VerifyPIN(stored, "2468"))
}
