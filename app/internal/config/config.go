package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
)

const (
	// FileName holds the user settings inside the data directory.
	FileName = "config.json"

	DefaultCacheDuration = 60
	DefaultCurrency      = "USD"
	DefaultLanguage      = "zh"

	workflowBundle = "com.runningwithcrayons.Alfred/Workflow Data/cursor-stats"
	storeRelPath   = "User/globalStorage/state.vscdb"
)

// Seconds is a duration read from the environment as a whole number of
// seconds. Anything that is not an integer falls back to DefaultCacheDuration.
type Seconds int

// SetValue implements cleanenv.Setter.
func (s *Seconds) SetValue(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*s = DefaultCacheDuration
		return nil
	}
	*s = Seconds(n)
	return nil
}

// Duration converts s to a time.Duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(s) * time.Second
}

// Settings is the user-editable part of the configuration, persisted as
// config.json. Keys present in the file override the built-in defaults.
// RefreshInterval is written out for the user's reference; freshness is
// governed by Config.CacheDuration.
type Settings struct {
	Currency         string `json:"currency" env:"currency" env-default:"USD" env-description:"ISO currency code used for spend amounts"`
	Language         string `json:"language"`
	ShowProgressBars bool   `json:"show_progress_bars"`
	RefreshInterval  int    `json:"refresh_interval"`
}

type Config struct {
	CacheDuration Seconds `env:"cache_duration" env-default:"60" env-description:"Seconds a fetched snapshot stays fresh"`
	DataDir       string  `env:"CURSOR_STATS_DATA_DIR,alfred_workflow_cache" env-description:"Directory for cache.json, config.json and error.log"`
	APIBaseURL    string  `env:"CURSOR_STATS_API_BASE" env-default:"https://cursor.com" env-description:"Base URL of the usage API"`
	LogLevel      string  `env:"CURSOR_STATS_LOG_LEVEL" env-default:"info" env-description:"error.log level: debug, info, warn, error"`

	Settings Settings
}

// Load reads the environment and fills in defaults. The settings file is
// merged separately by LoadSettings once a logger exists.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}

	cfg.Settings.Language = DefaultLanguage
	cfg.Settings.ShowProgressBars = true
	cfg.Settings.RefreshInterval = int(cfg.CacheDuration)
	return cfg, nil
}

// LoadSettings merges config.json on top of the current settings. A missing
// file is created from the defaults so it can be edited; an unreadable one is
// logged and the defaults are kept.
func (c *Config) LoadSettings(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		if err := c.Save(); err != nil {
			logger.Error("failed to create settings", zap.String("path", c.SettingsPath()), zap.Error(err))
		}
		return
	}
	if err != nil {
		logger.Error("failed to read settings", zap.String("path", c.SettingsPath()), zap.Error(err))
		return
	}

	merged := c.Settings
	if err := json.Unmarshal(data, &merged); err != nil {
		logger.Error("failed to parse settings", zap.String("path", c.SettingsPath()), zap.Error(err))
		return
	}
	c.Settings = merged
}

// Save writes the current settings to config.json.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c.Settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(c.SettingsPath(), data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (c *Config) SettingsPath() string { return filepath.Join(c.DataDir, FileName) }

// DataPath joins name onto the data directory.
func (c *Config) DataPath(name string) string { return filepath.Join(c.DataDir, name) }

// CandidateStorePaths lists the IDE state databases to try, in order:
// Cursor's own store first, then the VS Code one.
func CandidateStorePaths() ([]string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return []string{
		filepath.Join(base, "Cursor", storeRelPath),
		filepath.Join(base, "Code", storeRelPath),
	}, nil
}

// Description renders the environment variables Load understands.
func Description() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(&Config{}, &header)
}

func defaultDataDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, filepath.FromSlash(workflowBundle)), nil
}
