// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // read/write timeout per request
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful shutdown budget
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // file path, or ":memory:"
	MaxMemory string `koanf:"max_memory"` // DuckDB memory_limit, e.g. "1GB"
	Threads   int    `koanf:"threads"`    // 0 = use runtime.NumCPU()
	SeedData  bool   `koanf:"seed_data"`  // insert the MPA ratings and genres dictionaries

	MaxOpenConns       int           `koanf:"max_open_conns"`      // pool size, 0 = runtime.NumCPU()
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"` // 0 disables periodic CHECKPOINT
}

// APIConfig holds request limits and list sizes.
type APIConfig struct {
	DefaultCount      int           `koanf:"default_count"` // popular films and reviews when count is omitted
	MaxCount          int           `koanf:"max_count"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "console"}
)

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, errors.New("server.timeout must be positive"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Database.Threads < 0 {
		errs = append(errs, fmt.Errorf("database.threads must not be negative, got %d", c.Database.Threads))
	}
	if c.Database.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must not be negative, got %d", c.Database.MaxOpenConns))
	}
	if c.Database.CheckpointInterval < 0 {
		errs = append(errs, errors.New("database.checkpoint_interval must not be negative"))
	}
	if c.API.DefaultCount < 1 {
		errs = append(errs, fmt.Errorf("api.default_count must be positive, got %d", c.API.DefaultCount))
	}
	if c.API.MaxCount < c.API.DefaultCount {
		errs = append(errs, fmt.Errorf("api.max_count (%d) must be >= api.default_count (%d)", c.API.MaxCount, c.API.DefaultCount))
	}
	if !c.API.RateLimitDisabled && (c.API.RateLimitReqs < 1 || c.API.RateLimitWindow <= 0) {
		errs = append(errs, errors.New("api rate limit requires positive rate_limit_reqs and rate_limit_window"))
	}
	if !contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Errorf("logging.level must be one of %v, got %q", validLogLevels, c.Logging.Level))
	}
	if !contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Errorf("logging.format must be one of %v, got %q", validLogFormats, c.Logging.Format))
	}

	return errors.Join(errs...)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
