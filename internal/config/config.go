// Package config loads and saves cashpilot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides, applied after the config file.
const (
	EnvFile           = "CASHPILOT_ENV_FILE"
	EnvDataDir        = "CASHPILOT_DATA_DIR"
	EnvBaselineAmount = "CASHPILOT_BASELINE_AMOUNT"
	EnvFixedCost      = "CASHPILOT_FIXED_COST"
	EnvInitialBalance = "CASHPILOT_INITIAL_BALANCE"
)

// Config holds all cashpilot configuration.
type Config struct {
	General  GeneralConfig `toml:"general"`
	Settings Settings      `toml:"settings"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir      string `toml:"data_dir,omitempty"`
	DefaultDays  int    `toml:"default_days"`
	DefaultScope string `toml:"default_scope"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultScope: "month",
		},
		Settings: DefaultSettings(),
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashpilot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cashpilot")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns where ledger exports live when nothing else says so.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashpilot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cashpilot")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file is loaded first; environment overrides are applied last and
// the resulting settings are validated.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Settings.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadEnv loads $CASHPILOT_ENV_FILE, or ./.env when present.
// Variables already in the environment win.
func loadEnv() error {
	if envFile := os.Getenv(EnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.General.DataDir = dir
	}

	for _, o := range []struct {
		key string
		dst *float64
	}{
		{EnvBaselineAmount, &cfg.Settings.BaselineAmount},
		{EnvFixedCost, &cfg.Settings.FixedCost},
		{EnvInitialBalance, &cfg.Settings.InitialBalance},
	} {
		raw := os.Getenv(o.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", o.key, err)
		}
		*o.dst = v
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
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

// GetDataDir returns the ledger directory from config, or the default.
func GetDataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return DefaultDataDir()
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
