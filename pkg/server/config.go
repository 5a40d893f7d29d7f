// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"net/http"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/waterlab/potability/pkg/defaults"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddress binds the server to every network interface.
	DefaultAddress = "0.0.0.0"

	// DefaultPort is the port the API listens on unless overridden.
	DefaultPort = 8000

	wildcard = "*"
)

// CORSConfig describes the cross-origin policy applied to every response.
// An empty AllowedOrigins list disables CORS handling entirely.
// MaxAge is a duration string in YAML ("10m", "600s"); it is sent in
// whole seconds, so a non-zero value must be at least one second.
type CORSConfig struct {
	AllowedOrigins   []string      `yaml:"allowedOrigins"`
	AllowedMethods   []string      `yaml:"allowedMethods"`
	AllowedHeaders   []string      `yaml:"allowedHeaders"`
	ExposedHeaders   []string      `yaml:"exposedHeaders"`
	AllowCredentials bool          `yaml:"allowCredentials"`
	MaxAge           time.Duration `yaml:"maxAge"`
}

// DefaultCORSConfig returns the permissive policy: any origin, any method,
// any header, credentials allowed.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins:   []string{wildcard},
		AllowedMethods:   []string{wildcard},
		AllowedHeaders:   []string{wildcard},
		AllowCredentials: true,
		MaxAge:           defaults.CORSMaxAge,
	}
}

// Enabled reports whether any origin is allowed.
func (c CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// AllowsAnyOrigin reports whether the origin list contains the wildcard.
func (c CORSConfig) AllowsAnyOrigin() bool {
	return slices.Contains(c.AllowedOrigins, wildcard)
}

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string `yaml:"-"`
	Version string `yaml:"-"`

	// Greeting is returned by the default root handler.
	// Falls back to Name when empty.
	Greeting string `yaml:"greeting"`

	// Additional Handlers to be added to the server
	Handlers map[string]http.HandlerFunc `yaml:"-"`

	// Server configuration
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`

	// Rate limiting configuration. The default rate.Inf leaves
	// application routes unlimited; a finite rateLimit turns the
	// limiter on.
	RateLimit      rate.Limit `yaml:"rateLimit"`      // requests per second
	RateLimitBurst int        `yaml:"rateLimitBurst"` // burst size

	// Timeouts
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	CORS CORSConfig `yaml:"cors"`
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// LoadConfig reads a YAML configuration file on top of the defaults.
// Environment variables still take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// RateLimited reports whether application routes go through the
// token-bucket limiter.
func (c *Config) RateLimited() bool {
	return c.RateLimit != rate.Inf
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimit)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got %d", c.RateLimitBurst)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("cors max age must not be negative, got %v", c.CORS.MaxAge)
	}
	if c.CORS.MaxAge > 0 && c.CORS.MaxAge < time.Second {
		return fmt.Errorf("cors max age must be at least 1s, got %v (use a duration such as 10m)", c.CORS.MaxAge)
	}
	return nil
}

// parseConfig returns sensible defaults
func parseConfig() *Config {
	cfg := defaultConfig()
	applyEnv(cfg)
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Name:            "server",
		Version:         "undefined",
		Address:         DefaultAddress,
		Port:            DefaultPort,
		RateLimit:       rate.Inf, // unlimited unless configured
		RateLimitBurst:  200,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
		CORS:            DefaultCORSConfig(),
	}
}

// applyEnv overrides cfg with environment variables if set.
// Unparseable values are ignored.
func applyEnv(cfg *Config) {
	if host := os.Getenv("HOST"); host != "" {
		cfg.Address = host
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}

	// Shutdown timeout should fit within the orchestrator grace period.
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		if seconds, err := strconv.Atoi(shutdownStr); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}
}
