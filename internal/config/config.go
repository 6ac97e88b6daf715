package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/playperu/lovebird/internal/quiz"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	QuizMode     quiz.Mode `env:"QUIZ_MODE" envDefault:"score"`
	ScenarioPath string    `env:"SCENARIO_PATH"`

	SessionStore string        `env:"SESSION_STORE" envDefault:"sqlite"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	DBPath       string        `env:"DB_PATH" envDefault:"data/lovebird.db"`
	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !c.QuizMode.Valid() {
		return fmt.Errorf("QUIZ_MODE must be %q or %q, got %q", quiz.ModeScore, quiz.ModeGraph, c.QuizMode)
	}
	switch c.SessionStore {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("SESSION_STORE must be memory, sqlite or redis, got %q", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
