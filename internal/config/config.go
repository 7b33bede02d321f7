package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "riffle"

type Config struct {
	Country  string   `koanf:"country"`   // ISO country code for catalog searches, empty for the store default
	PageSize int      `koanf:"page_size"` // search results per page (1-50, default: 10)
	Volume   *float64 `koanf:"volume"`    // initial volume (0.0-1.0, default: 1.0)
	AutoPlay *bool    `koanf:"autoplay"`  // advance when a song ends (default: true)
	Shuffle  bool     `koanf:"shuffle"`   // shuffle the browsing context (default: false)
	DBPath   string   `koanf:"db_path"`   // empty means the XDG data dir

	Log LogConfig `koanf:"log"`

	Catalog CatalogConfig `koanf:"catalog"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level"`        // debug, info, warn, error (default: info)
	File       string `koanf:"file"`         // empty means the XDG state dir
	MaxSizeMB  int    `koanf:"max_size_mb"`  // rotate after this size (default: 10)
	MaxBackups int    `koanf:"max_backups"`  // rotated files to keep (default: 3)
	MaxAgeDays int    `koanf:"max_age_days"` // days to keep rotated files (default: 28)
}

// CatalogConfig holds catalog client settings.
type CatalogConfig struct {
	BaseURL        string `koanf:"base_url"`        // default: https://itunes.apple.com
	TimeoutSeconds int    `koanf:"timeout_seconds"` // default: 10
	MinIntervalMS  int    `koanf:"min_interval_ms"` // minimum delay between requests (default: 300, negative disables)
}

// CatalogSettings are the catalog settings with defaults applied.
type CatalogSettings struct {
	BaseURL     string
	Timeout     time.Duration
	MinInterval time.Duration
}

// Load reads the config files in priority order. When explicit is not
// empty, only that file is read and it must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		// Try config files in order of priority (last wins)
		for _, path := range getConfigPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load %s: %w", path, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Country = strings.ToLower(strings.TrimSpace(cfg.Country))
	if cfg.DBPath != "" {
		cfg.DBPath = expandPath(cfg.DBPath)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	cfg.Catalog.BaseURL = strings.TrimSuffix(cfg.Catalog.BaseURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/riffle/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPageSize returns the page size, defaulting to 10 when out of range.
func (c *Config) GetPageSize() int {
	if c.PageSize < 1 || c.PageSize > 50 {
		return 10
	}
	return c.PageSize
}

// GetVolume returns the initial volume clamped to [0,1].
func (c *Config) GetVolume() float64 {
	if c.Volume == nil {
		return 1
	}
	return min(max(*c.Volume, 0), 1)
}

// GetAutoPlay returns whether autoplay starts enabled.
func (c *Config) GetAutoPlay() bool {
	if c.AutoPlay == nil {
		return true
	}
	return *c.AutoPlay
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, appName, appName+".log")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups < 0 {
		cfg.MaxBackups = 0
	} else if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}
	return cfg
}

// GetCatalogSettings returns the catalog settings with defaults applied.
func (c *Config) GetCatalogSettings() CatalogSettings {
	s := CatalogSettings{
		BaseURL:     c.Catalog.BaseURL,
		Timeout:     time.Duration(c.Catalog.TimeoutSeconds) * time.Second,
		MinInterval: time.Duration(c.Catalog.MinIntervalMS) * time.Millisecond,
	}
	if s.BaseURL == "" {
		s.BaseURL = "https://itunes.apple.com"
	}
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Second
	}
	if c.Catalog.MinIntervalMS == 0 {
		s.MinInterval = 300 * time.Millisecond
	}
	return s
}
