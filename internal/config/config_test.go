package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/pulse/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvTimezone, "")
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.General.DataDir = "/srv/pulse"
	cfg.General.Timezone = "Europe/Rome"
	cfg.Goals.MonthlyBudget = 1500
	cfg.Goals.CategoryBudgets = map[string]float64{"groceries": 400}
	cfg.Goals.Habits = []model.HabitGoal{{Name: "read"}, {Name: "water", Target: 8}}
	cfg.TUI.AutoRefresh = false

	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	info, err := os.Stat(filepath.Join(dir, "pulse", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	require.NoError(t, Save(DefaultConfig()))

	t.Setenv(EnvDataDir, "/tmp/export")
	t.Setenv(EnvTimezone, "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/export", cfg.General.DataDir)
	assert.Equal(t, "UTC", cfg.General.Timezone)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pulse"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pulse", "config.toml"), []byte("[general\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	loc, err := Location("")
	require.NoError(t, err)
	assert.Equal(t, "Local", loc.String())

	loc, err = Location("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = Location("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.General.DefaultDays = 0
	cfg.Goals.Habits = []model.HabitGoal{{Name: " "}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_days")
	assert.Contains(t, err.Error(), "habit name is empty")
}

func TestResolveDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	assert.Equal(t, "/xdg/data/pulse", ResolveDataDir(Config{}))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg := Config{General: GeneralConfig{DataDir: "~/exports"}}
	assert.Equal(t, filepath.Join(home, "exports"), ResolveDataDir(cfg))
}

func TestParseHabits(t *testing.T) {
	got := ParseHabits(" read , water:8,, read, stretch:x")
	assert.Equal(t, []model.HabitGoal{
		{Name: "read"},
		{Name: "water", Target: 8},
		{Name: "stretch"},
	}, got)
	assert.Equal(t, "read, water:8, stretch", FormatHabits(got))
	assert.Nil(t, ParseHabits(" , "))
}
