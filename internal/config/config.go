// Package config loads settings for the heroes binaries from the environment.
// An optional .env file in the working directory is read first; real environment
// variables win over it.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Client configures cmd/heroes. Variables are prefixed HEROES_.
type Client struct {
	APIURL      string        `envconfig:"API_URL" default:"http://localhost:8080/api"`
	LogFile     string        `envconfig:"LOG_FILE" default:"heroes.log"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	// StartPath is the first route shown, e.g. "heroes" or "detail/12".
	StartPath string `envconfig:"START_PATH" default:""`
}

// Server configures cmd/heroapi. Variables are prefixed HEROAPI_.
type Server struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	Store          string        `envconfig:"STORE" default:"memory"`
	StorePath      string        `envconfig:"STORE_PATH" default:""`
	Latency        time.Duration `envconfig:"LATENCY" default:"0s"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS"`
}

// Store kinds accepted by Server.Store.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// LoadClient reads the client configuration.
func LoadClient() (Client, error) {
	_ = godotenv.Load()
	var cfg Client
	if err := envconfig.Process("HEROES", &cfg); err != nil {
		return Client{}, fmt.Errorf("load client config: %w", err)
	}
	if cfg.HTTPTimeout < 0 {
		return Client{}, fmt.Errorf("HEROES_HTTP_TIMEOUT must not be negative, got %s", cfg.HTTPTimeout)
	}
	return cfg, nil
}

// LoadServer reads the API server configuration.
func LoadServer() (Server, error) {
	_ = godotenv.Load()
	var cfg Server
	if err := envconfig.Process("HEROAPI", &cfg); err != nil {
		return Server{}, fmt.Errorf("load server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot.
func (s Server) Validate() error {
	switch s.Store {
	case StoreMemory, StoreBadger:
	default:
		return fmt.Errorf("HEROAPI_STORE must be %q or %q, got %q", StoreMemory, StoreBadger, s.Store)
	}
	if s.Latency < 0 {
		return fmt.Errorf("HEROAPI_LATENCY must not be negative, got %s", s.Latency)
	}
	return nil
}
