// Package config provides configuration management for the agent relay.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env is the deployment environment tag.
type Env string

const (
	EnvDevelopment Env = "development"
	EnvTest        Env = "test"
	EnvProduction  Env = "production"
)

const (
	DefaultPort    = 3789
	DefaultModel   = "gpt-4o-mini"
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultLevel   = "info"

	// Host is the only interface the relay listens on.
	Host = "127.0.0.1"
)

// Config holds all configuration for the relay. It is built once at
// startup and never mutated afterwards.
type Config struct {
	// Port is the TCP port the HTTP server binds on Host.
	Port int

	// OpenAIAPIKey authenticates upstream calls. Required.
	OpenAIAPIKey string

	// OpenAIModel is the model identifier sent with every request.
	OpenAIModel string

	// OpenAIBaseURL is the API root; override it for compatible gateways.
	OpenAIBaseURL string

	// LogLevel is a zerolog level name (debug, info, warn, ...).
	LogLevel string

	// Env selects log formatting and is reported at startup.
	Env Env
}

// StartupError lists every configuration problem found by Load.
type StartupError struct {
	Problems []string
}

func (e *StartupError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Load creates a Config from a .env file in the working directory (if any)
// and the process environment. Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the process environment only.
func FromEnv() (*Config, error) {
	var problems []string

	port, err := parsePort(envOr("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		problems = append(problems, err.Error())
	}

	cfg := &Config{
		Port:          port,
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   envOr("OPENAI_MODEL", DefaultModel),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", DefaultBaseURL),
		LogLevel:      envOr("LOG_LEVEL", DefaultLevel),
		Env:           Env(envOr("APP_ENV", envOr("NODE_ENV", string(EnvDevelopment)))),
	}

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return nil, &StartupError{Problems: problems}
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if problems := c.validate(); len(problems) > 0 {
		return &StartupError{Problems: problems}
	}
	return nil
}

func (c *Config) validate() []string {
	var problems []string
	if c.OpenAIAPIKey == "" {
		problems = append(problems, "OPENAI_API_KEY is required")
	}
	switch c.Env {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		problems = append(problems, fmt.Sprintf("APP_ENV must be one of development, test, production (got %q)", c.Env))
	}
	return problems
}

// Addr returns the loopback listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(Host, strconv.Itoa(c.Port))
}

// URL returns the base URL clients use to reach the relay.
func (c *Config) URL() string {
	return "http://" + c.Addr()
}

func parsePort(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("PORT must be an integer between 1 and 65535 (got %q)", v)
	}
	return n, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
