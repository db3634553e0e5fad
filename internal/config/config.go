// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/timeutil"
)

// Config holds the application configuration.
type Config struct {
	Planner PlannerConfig `toml:"planner"`
	Storage StorageConfig `toml:"storage"`
	Share   ShareConfig   `toml:"share"`
}

// PlannerConfig seeds the global day config on first run. After that
// the values live in the database and are edited via `horario config`.
type PlannerConfig struct {
	DayStart string `toml:"day_start"` // e.g., "08:00"
	DayEnd   string `toml:"day_end"`   // e.g., "18:00"
	Interval int    `toml:"interval"`  // minutes per grid slot
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ShareConfig holds share backend settings, for both the client and
// the `horario serve` command.
type ShareConfig struct {
	BaseURL    string `toml:"base_url"`    // backend the client talks to
	ListenAddr string `toml:"listen_addr"` // address `serve` binds
	DBPath     string `toml:"db_path"`     // share store used by `serve`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			DayStart: "08:00",
			DayEnd:   "18:00",
			Interval: 30,
		},
		Storage: StorageConfig{
			DBPath: defaultDataPath("horario.db"),
		},
		Share: ShareConfig{
			BaseURL:    "http://localhost:8787",
			ListenAddr: ":8787",
			DBPath:     defaultDataPath("shares.db"),
		},
	}
}

func defaultDataPath(file string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return file
	}
	return filepath.Join(home, ".local", "share", "horario", file)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "horario", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Share.DBPath = expandPath(cfg.Share.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HORARIO_DAY_START"); v != "" {
		cfg.Planner.DayStart = v
	}
	if v := os.Getenv("HORARIO_DAY_END"); v != "" {
		cfg.Planner.DayEnd = v
	}
	if v := os.Getenv("HORARIO_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Planner.Interval = n
		}
	}
	if v := os.Getenv("HORARIO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("HORARIO_SHARE_BASE_URL"); v != "" {
		cfg.Share.BaseURL = v
	}
	if v := os.Getenv("HORARIO_SHARE_LISTEN_ADDR"); v != "" {
		cfg.Share.ListenAddr = v
	}
	if v := os.Getenv("HORARIO_SHARE_DB_PATH"); v != "" {
		cfg.Share.DBPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := timeutil.ValidTime(c.Planner.DayStart); err != nil {
		return fmt.Errorf("day_start: %w", err)
	}
	if err := timeutil.ValidTime(c.Planner.DayEnd); err != nil {
		return fmt.Errorf("day_end: %w", err)
	}
	if c.Planner.DayStart >= c.Planner.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Planner.Interval < schedule.MinInterval || c.Planner.Interval > schedule.MaxInterval {
		return fmt.Errorf("interval must be between %d and %d minutes", schedule.MinInterval, schedule.MaxInterval)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Share.BaseURL == "" {
		return errors.New("share base_url must be set")
	}
	return nil
}

// PlannerDefaults returns the planner section as a schedule config,
// used to seed the global config on a fresh database.
func (c *Config) PlannerDefaults() schedule.DayConfig {
	return schedule.DayConfig{
		StartTime: c.Planner.DayStart,
		EndTime:   c.Planner.DayEnd,
		Interval:  c.Planner.Interval,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
