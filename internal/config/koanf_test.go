// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if cfg.Database.Path != "/data/filmgraph.duckdb" {
		t.Errorf("Database.Path = %q, want /data/filmgraph.duckdb", cfg.Database.Path)
	}
	if !cfg.Database.SeedData {
		t.Error("Database.SeedData should be true by default")
	}
	if cfg.API.DefaultCount != 10 {
		t.Errorf("API.DefaultCount = %d, want 10", cfg.API.DefaultCount)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "*" {
		t.Errorf("API.CORSOrigins = %v, want [*]", cfg.API.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 5*time.Second {
		t.Errorf("Server.Timeout = %v, want 5s", cfg.Server.Timeout)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
	want := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.API.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("API.CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
server:
  port: 7070
database:
  path: /tmp/films.duckdb
  max_memory: 512MB
api:
  default_count: 5
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7171")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7171 {
		t.Errorf("env should override file: Server.Port = %d, want 7171", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/films.duckdb" || cfg.Database.MaxMemory != "512MB" {
		t.Errorf("Database = %+v, want file values", cfg.Database)
	}
	if cfg.API.DefaultCount != 5 {
		t.Errorf("API.DefaultCount = %d, want 5", cfg.API.DefaultCount)
	}
	if cfg.API.MaxCount != 1000 {
		t.Errorf("API.MaxCount = %d, want default 1000", cfg.API.MaxCount)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"no path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"max below default", func(c *Config) { c.API.MaxCount = 1; c.API.DefaultCount = 10 }, "api.max_count"},
		{"rate limit zero", func(c *Config) { c.API.RateLimitReqs = 0 }, "rate limit"},
		{"rate limit disabled", func(c *Config) { c.API.RateLimitReqs = 0; c.API.RateLimitDisabled = true }, ""},
		{"negative pool", func(c *Config) { c.Database.MaxOpenConns = -1 }, "database.max_open_conns"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
