// Package config loads settings from an optional YAML file, then .env and
// process environment, which win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/baxromumarov/job-capture/internal/httpx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type HostLimit struct {
	Every time.Duration `yaml:"every"`
	Burst int           `yaml:"burst"`
}

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Fetch struct {
		// Fetcher is "http" (robots-aware net/http client) or "colly".
		Fetcher    string               `yaml:"fetcher"`
		UserAgent  string               `yaml:"user_agent"`
		Timeout    time.Duration        `yaml:"timeout"`
		HostLimits map[string]HostLimit `yaml:"host_limits"`
	} `yaml:"fetch"`

	Retention struct {
		Days     int           `yaml:"days"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"retention"`

	Capture struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"capture"`
}

// Load reads path (a missing file is not an error), applies environment
// overrides and fills defaults.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FETCHER"); v != "" {
		c.Fetch.Fetcher = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		c.Fetch.UserAgent = v
	}
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RETENTION_DAYS %q: %w", v, err)
		}
		c.Retention.Days = days
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Database.URL == "" {
		c.Database.URL = "sqlite://job-capture.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Fetch.Fetcher == "" {
		c.Fetch.Fetcher = "http"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 20 * time.Second
	}
	if c.Retention.Days <= 0 {
		c.Retention.Days = 90
	}
	if c.Retention.Interval <= 0 {
		c.Retention.Interval = 24 * time.Hour
	}
	if c.Capture.Concurrency <= 0 {
		c.Capture.Concurrency = 4
	}
}

// SlogLevel maps the configured level name; unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) FetchOptions() httpx.Options {
	limits := make(map[string]httpx.Limit, len(c.Fetch.HostLimits))
	for host, l := range c.Fetch.HostLimits {
		limits[host] = httpx.Limit{Every: l.Every, Burst: l.Burst}
	}
	return httpx.Options{
		Kind:       c.Fetch.Fetcher,
		UserAgent:  c.Fetch.UserAgent,
		Timeout:    c.Fetch.Timeout,
		HostLimits: limits,
	}
}
