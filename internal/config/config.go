// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package config

import (
	"time"

	"github.com/tomtom215/pawshop/internal/authz"
	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/kvstore"
	"github.com/tomtom215/pawshop/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Session SessionConfig `koanf:"session"`
	Server  ServerConfig  `koanf:"server"`
	Authz   AuthzConfig   `koanf:"authz"`
	Catalog CatalogConfig `koanf:"catalog"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig describes the remote REST API.
type APIConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	UserAgent      string               `koanf:"user_agent"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig configures the optional breaker in front of the API.
// Off by default: a failing call is reported, never retried or queued.
type CircuitBreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	FailureRatio float64       `koanf:"failure_ratio"`
	MinRequests  uint32        `koanf:"min_requests"`
}

// SessionConfig configures the durable local store for the credential and principal.
type SessionConfig struct {
	StorePath string        `koanf:"store_path"`
	InMemory  bool          `koanf:"in_memory"`
	TTL       time.Duration `koanf:"ttl"`
}

// ServerConfig configures the local view host.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// AuthzConfig overrides the route guard's model and policy.
type AuthzConfig struct {
	ModelPath    string `koanf:"model_path"`
	PolicyPath   string `koanf:"policy_path"`
	CacheEnabled bool   `koanf:"cache_enabled"`
}

// CatalogConfig holds storefront display settings.
type CatalogConfig struct {
	PageSize   int      `koanf:"page_size"`
	Categories []string `koanf:"categories"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Gateway returns the gateway client configuration.
func (c *Config) Gateway() gateway.Config {
	cb := c.API.CircuitBreaker
	return gateway.Config{
		BaseURL:   c.API.BaseURL,
		Timeout:   c.API.Timeout,
		UserAgent: c.API.UserAgent,
		Breaker: gateway.BreakerConfig{
			Enabled:      cb.Enabled,
			MaxRequests:  cb.MaxRequests,
			Interval:     cb.Interval,
			Timeout:      cb.Timeout,
			FailureRatio: cb.FailureRatio,
			MinRequests:  cb.MinRequests,
		},
	}
}

// KVStore returns the durable store options.
func (c *Config) KVStore() kvstore.Options {
	return kvstore.Options{Path: c.Session.StorePath, InMemory: c.Session.InMemory}
}

// Enforcer returns the route guard's enforcer configuration.
func (c *Config) Enforcer() authz.EnforcerConfig {
	return authz.EnforcerConfig{
		ModelPath:    c.Authz.ModelPath,
		PolicyPath:   c.Authz.PolicyPath,
		CacheEnabled: c.Authz.CacheEnabled,
	}
}

// LoggingConfig returns the logger configuration.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
