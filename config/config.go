package config

import (
	"errors"
	"os"
)

// AppConfig holds the process-level configuration, loaded once at startup.
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string
	ListenAddr   string
}

// Load reads the configuration from the environment. DB_URL, REDIS_URL and
// BEARER_TOKEN are required; LISTEN_ADDR defaults to :8930.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		DBURL:        os.Getenv("DB_URL"),
		RedisAddress: os.Getenv("REDIS_URL"),
		BearerToken:  os.Getenv("BEARER_TOKEN"),
		ListenAddr:   os.Getenv("LISTEN_ADDR"),
	}
	if cfg.DBURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}
	if cfg.RedisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}
	if cfg.BearerToken == "" {
		return nil, errors.New("missing BEARER_TOKEN environment variable")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8930"
	}
	return cfg, nil
}

// GetBearerToken returns the static API token.
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
