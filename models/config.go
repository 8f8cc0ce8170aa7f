// Package models defines shared data structures for configuration and rankings.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for bookfreq.
// Values come from an optional YAML file; CLI flags override them.
type Config struct {
	DBPath       string
	CacheDir     string
	CacheTTL     time.Duration
	ArchiveURL   string
	FetchTimeout time.Duration
	UserAgent    string
	TopN         int
}

// rawConfig is the YAML shape; durations are strings ("30s", "24h") parsed
// with time.ParseDuration.
type rawConfig struct {
	DBPath       string `yaml:"db_path"`
	CacheDir     string `yaml:"cache_dir"`
	CacheTTL     string `yaml:"cache_ttl"`
	ArchiveURL   string `yaml:"archive_url"`
	FetchTimeout string `yaml:"fetch_timeout"`
	UserAgent    string `yaml:"user_agent"`
	TopN         int    `yaml:"top_n"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		DBPath:       "books.db",
		CacheDir:     ".bookfreq-cache",
		CacheTTL:     24 * time.Hour,
		ArchiveURL:   "https://www.gutenberg.org",
		FetchTimeout: 30 * time.Second,
		UserAgent:    "bookfreq/1.0",
		TopN:         10,
	}
}

// LoadConfig reads a YAML config file, filling unset fields with defaults.
// A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.DBPath != "" {
		cfg.DBPath = raw.DBPath
	}
	if raw.CacheDir != "" {
		cfg.CacheDir = raw.CacheDir
	}
	if raw.ArchiveURL != "" {
		cfg.ArchiveURL = raw.ArchiveURL
	}
	if raw.UserAgent != "" {
		cfg.UserAgent = raw.UserAgent
	}
	if raw.TopN > 0 {
		cfg.TopN = raw.TopN
	}
	if raw.CacheTTL != "" {
		ttl, err := time.ParseDuration(raw.CacheTTL)
		if err != nil {
			return cfg, fmt.Errorf("invalid cache_ttl duration: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if raw.FetchTimeout != "" {
		timeout, err := time.ParseDuration(raw.FetchTimeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid fetch_timeout duration: %w", err)
		}
		cfg.FetchTimeout = timeout
	}

	return cfg, nil
}
