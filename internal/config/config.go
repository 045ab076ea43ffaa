package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// placeholderSecret is the compiled-in default the legacy deployment shipped
// with. Refusing it outside development keeps a forgotten .env from going to
// production with a guessable signing key.
const placeholderSecret = "supersecretkeychangeinproduction"

type Config struct {
	DatabaseURL   string        `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	HTTPPort      string        `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv        string        `env:"APP_ENV" envDefault:"production"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	UploadDir     string        `env:"UPLOAD_DIR" envDefault:"static/uploads"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL"`
}

func (c Config) Development() bool {
	return c.AppEnv == "development"
}

// Load reads configuration from the environment and validates the secret
// policy: the signing key must be present and must not be the known
// placeholder, except in development mode.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Development() {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = placeholderSecret
		}
		return cfg, nil
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required outside development mode")
	}
	if cfg.JWTSecret == placeholderSecret {
		return Config{}, errors.New("JWT_SECRET is set to the placeholder value; refusing to start")
	}
	return cfg, nil
}
