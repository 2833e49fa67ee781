// Package config loads spendlog settings from TOML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	applog "github.com/theirongolddev/spendlog/internal/log"
	"github.com/theirongolddev/spendlog/internal/model"
)

// Environment overrides.
const (
	EnvDBPath   = "SPENDLOG_DB"
	EnvLogLevel = "SPENDLOG_LOG_LEVEL"
	EnvTimezone = "SPENDLOG_TZ"
)

// Config holds all spendlog configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Budget     BudgetConfig     `toml:"budget"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds storage and calendar preferences.
type GeneralConfig struct {
	DBPath        string `toml:"db_path,omitempty"`
	DefaultFilter string `toml:"default_filter"`
	Timezone      string `toml:"timezone,omitempty"`
	Currency      string `toml:"currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// BudgetConfig holds the optional monthly limit.
type BudgetConfig struct {
	MonthlyLimit *float64 `toml:"monthly_limit,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Themes recognised by the TUI.
var Themes = []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultFilter: "month",
			Currency:      "$",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendlog")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spendlog")
}

// DefaultDBPath is used when no db_path is configured.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "expenses.db")
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.General.Timezone = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ResolvedDBPath returns the configured database path with ~ expanded.
func (c Config) ResolvedDBPath() string {
	p := c.General.DBPath
	if p == "" {
		return DefaultDBPath()
	}
	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	}
	return p
}

// Filter returns the parsed default filter.
func (c Config) Filter() (model.Filter, error) {
	return model.ParseFilter(c.General.DefaultFilter)
}

// Location returns the zone used for calendar dates, the local zone when unset.
func (c Config) Location() (*time.Location, error) {
	if c.General.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (slog.Level, error) {
	return applog.ParseLevel(c.Log.Level)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.Filter(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if !knownTheme(c.Appearance.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (want one of %s)", c.Appearance.Theme, strings.Join(Themes, ", ")))
	}
	if c.Budget.MonthlyLimit != nil && *c.Budget.MonthlyLimit <= 0 {
		errs = append(errs, fmt.Errorf("budget.monthly_limit must be greater than zero, got %v", *c.Budget.MonthlyLimit))
	}

	return errors.Join(errs...)
}

func knownTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}
