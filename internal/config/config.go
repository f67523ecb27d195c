package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database Database
	Service  Service
}

type Database struct {
	Type string `envconfig:"POOL_DB_TYPE" default:"sqlite"`
	DSN  string `envconfig:"POOL_DB_DSN" default:"calculations.db"`
}

type Service struct {
	Address    string  `envconfig:"POOL_ADDRESS" default:":5000"`
	LogLevel   string  `envconfig:"POOL_LOG_LEVEL" default:"info"`
	TokenKey   string  `envconfig:"POOL_TOKEN_KEY" default:""`
	RateLimit  float64 `envconfig:"POOL_RATE_LIMIT" default:"5"`
	RateBurst  int     `envconfig:"POOL_RATE_BURST" default:"10"`
	CORSOrigin string  `envconfig:"POOL_CORS_ORIGIN" default:"*"`
	TLSCert    string  `envconfig:"POOL_TLS_CERT" default:""`
	TLSKey     string  `envconfig:"POOL_TLS_KEY" default:""`
}

// New loads the given .env files (".env" when none are named) and then reads
// the environment. Missing .env files are not an error.
func New(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	// PORT is what most hosting platforms set
	if _, set := os.LookupEnv("POOL_ADDRESS"); !set {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Service.Address = ":" + port
		}
	}
	return cfg, nil
}

// AuthEnabled reports whether write endpoints require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.Service.TokenKey != ""
}
