package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Everything is read once at startup;
// nothing mutates it afterwards.
type Config struct {
	Env        string        `env:"ENV" envDefault:"dev"`
	Port       string        `env:"PORT" envDefault:"8080"`
	MongoURI   string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB    string        `env:"MONGO_DB" envDefault:"goaltrack"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"*"`

	AuthRateMax    int           `env:"RATE_LIMIT_AUTH_MAX" envDefault:"10"`
	AuthRateWindow time.Duration `env:"RATE_LIMIT_AUTH_WINDOW" envDefault:"1m"`
}

// Load reads an optional .env file and then the process environment.
// JWT_SECRET is required for all token operations, so a missing secret is a
// startup error rather than a per-request surprise.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return &cfg, nil
}

// Production reports whether the process runs with the production environment
// name, which suppresses stack traces in error responses.
func (c *Config) Production() bool {
	return c.Env == "production"
}
