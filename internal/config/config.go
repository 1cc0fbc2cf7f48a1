// Package config reads and writes the pulse TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/pulse/internal/model"
)

// Config holds all pulse configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Goals      model.Goals      `toml:"goals"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir     string `toml:"data_dir,omitempty"`
	Timezone    string `toml:"timezone,omitempty"`
	DefaultDays int    `toml:"default_days"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// Environment overrides.
const (
	EnvDataDir  = "PULSE_DATA_DIR"
	EnvTimezone = "PULSE_TZ"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 30,
		},
		Goals: DefaultGoals(),
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 60,
		},
	}
}

// DefaultGoals returns the goals a fresh install starts with. Budgets stay
// unset because they depend on the user's currency and income.
func DefaultGoals() model.Goals {
	return model.Goals{
		WeeklyWorkouts: 3,
		DailyCalories:  2000,
		DailyProteinG:  100,
		SleepHours:     8,
		WeeklyContacts: 3,
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pulse")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir is where the export service writes when no data_dir is
// configured.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pulse")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.General.Timezone = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ResolveDataDir returns the configured data directory with ~ expanded,
// or the default one.
func ResolveDataDir(cfg Config) string {
	dir := cfg.General.DataDir
	if dir == "" {
		return DefaultDataDir()
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return dir
}

// ErrUnknownTimezone is returned for a timezone name the tz database lacks.
var ErrUnknownTimezone = errors.New("unknown timezone")

// Location resolves the configured timezone. Empty and "Local" mean the
// system zone.
func Location(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimezone, name, err)
	}
	return loc, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.General.DefaultDays < 1 {
		errs = append(errs, fmt.Errorf("general.default_days must be at least 1, got %d", c.General.DefaultDays))
	}
	if _, err := Location(c.General.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("general.timezone: %w", err))
	}
	if c.TUI.RefreshIntervalSec < 0 {
		errs = append(errs, fmt.Errorf("tui.refresh_interval_sec must not be negative"))
	}
	for _, h := range c.Goals.Habits {
		if strings.TrimSpace(h.Name) == "" {
			errs = append(errs, errors.New("goals.habits: habit name is empty"))
		}
		if h.Target < 0 {
			errs = append(errs, fmt.Errorf("goals.habits %q: target must not be negative", h.Name))
		}
	}
	return errors.Join(errs...)
}

// ParseHabits reads a comma separated habit list. "water:8" sets a counted
// target; blanks and repeated names are dropped.
func ParseHabits(s string) []model.HabitGoal {
	var out []model.HabitGoal
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name, target, _ := strings.Cut(strings.TrimSpace(part), ":")
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		h := model.HabitGoal{Name: name}
		if v, err := strconv.ParseFloat(strings.TrimSpace(target), 64); err == nil && v > 0 {
			h.Target = v
		}
		out = append(out, h)
	}
	return out
}

// FormatHabits is the inverse of ParseHabits.
func FormatHabits(habits []model.HabitGoal) string {
	parts := make([]string, len(habits))
	for i, h := range habits {
		parts[i] = h.Name
		if h.Target > 1 {
			parts[i] += ":" + strconv.FormatFloat(h.Target, 'f', -1, 64)
		}
	}
	return strings.Join(parts, ", ")
}
