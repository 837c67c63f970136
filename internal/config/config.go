// Package config loads application configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/naka-gawa/github-traffic/internal/apperr"
)

// Config holds everything the API client needs to issue authorized requests.
// It is passed explicitly into constructors rather than read from globals so
// the client stays testable with fake credentials.
type Config struct {
	// Owner is the GitHub account whose repositories are reported on.
	Owner string
	// Token is a personal access token. Traffic endpoints require push
	// access, which means the token needs the "repo" scope.
	Token string
}

// Load reads configuration from environment variables, consulting a .env
// file first if one exists.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means env-only config.
	_ = godotenv.Load()

	cfg := &Config{
		Owner: os.Getenv("GITHUB_USER"),
		Token: os.Getenv("GITHUB_TOKEN"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the required fields are present.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return apperr.Validation("GITHUB_USER is not set")
	}
	if c.Token == "" {
		return apperr.Auth("GITHUB_TOKEN is not set", nil)
	}
	return nil
}
