package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 50000, cfg.Game.StartingCash, 1e-9)
	assert.InDelta(t, 3500, cfg.Game.MonthlyExpenses, 1e-9)
	assert.InDelta(t, 150000, cfg.Game.WinThreshold, 1e-9)
	assert.Equal(t, 12, cfg.Game.MonthsToWin)
	assert.Equal(t, "bakehouse.db", cfg.DB.Path)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BAKEHOUSE_PORT", "9090")
	t.Setenv("BAKEHOUSE_SEED", "42")
	t.Setenv("BAKEHOUSE_STARTING_CASH", "25000")
	t.Setenv("BAKEHOUSE_WIN_THRESHOLD", "80000")
	t.Setenv("BAKEHOUSE_ADMIN_KEY", "sekrit")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.InDelta(t, 25000, cfg.Game.StartingCash, 1e-9)
	assert.InDelta(t, 80000, cfg.Game.WinThreshold, 1e-9)
	assert.Equal(t, "sekrit", cfg.Server.AdminKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("BAKEHOUSE_PORT", "-1")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateRejectsWinBelowStart(t *testing.T) {
	t.Setenv("BAKEHOUSE_STARTING_CASH", "200000")
	_, err := Load("")
	assert.Error(t, err)
}

func TestUnparseableValuesFallBack(t *testing.T) {
	t.Setenv("BAKEHOUSE_PORT", "not-a-number")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
