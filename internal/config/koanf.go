// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/session"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pawshop/config.yaml",
	"/etc/pawshop/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "PAWSHOP_CONFIG"

// Default returns the built-in configuration without reading a file or
// the environment.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:5000",
			Timeout:   gateway.DefaultTimeout,
			UserAgent: "pawshop-client",
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:      false,
				MaxRequests:  1,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				FailureRatio: 0.6,
				MinRequests:  10,
			},
		},
		Session: SessionConfig{
			StorePath: defaultStorePath(),
			InMemory:  false,
			TTL:       session.DefaultTTL,
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            5173,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"http://localhost:5173"},
		},
		Authz: AuthzConfig{
			CacheEnabled: true,
		},
		Catalog: CatalogConfig{
			PageSize:   12,
			Categories: []string{"dog", "cat"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// defaultStorePath is under the user's config directory, falling back to
// the working directory when there is none.
func defaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/pawshop/session"
	}
	return ".pawshop/session"
}

// Load loads configuration with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file. An empty path skips the file layer.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// PAWSHOP_API_URL -> api.base_url
	if err := k.Load(env.Provider("PAWSHOP_", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set by env.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"catalog.categories",
}

// processSliceFields converts comma-separated env values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps PAWSHOP_* variables (prefix stripped, lowercased) to config paths.
var envMappings = map[string]string{
	"api_url":        "api.base_url",
	"api_timeout":    "api.timeout",
	"api_user_agent": "api.user_agent",

	"breaker_enabled":       "api.circuit_breaker.enabled",
	"breaker_max_requests":  "api.circuit_breaker.max_requests",
	"breaker_interval":      "api.circuit_breaker.interval",
	"breaker_timeout":       "api.circuit_breaker.timeout",
	"breaker_failure_ratio": "api.circuit_breaker.failure_ratio",
	"breaker_min_requests":  "api.circuit_breaker.min_requests",

	"session_path":      "session.store_path",
	"session_in_memory": "session.in_memory",
	"session_ttl":       "session.ttl",

	"host":             "server.host",
	"port":             "server.port",
	"shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":     "server.cors_origins",

	"authz_model":  "authz.model_path",
	"authz_policy": "authz.policy_path",
	"authz_cache":  "authz.cache_enabled",

	"page_size":  "catalog.page_size",
	"categories": "catalog.categories",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps a PAWSHOP_* variable to its config path. Unmapped
// variables are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "PAWSHOP_"))
	if key == "config" {
		return ""
	}
	return envMappings[key]
}
