// Package config loads process configuration from QUIZROGUE_* environment
// variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/quizrogue/internal/game"
)

// Session backends.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Config is the process configuration shared by every command.
type Config struct {
	HTTPAddr string `env:"QUIZROGUE_HTTP_ADDR" envDefault:":8080"`
	GinMode  string `env:"QUIZROGUE_GIN_MODE"  envDefault:"release"`
	DBPath   string `env:"QUIZROGUE_DB"`

	LogLevel  string `env:"QUIZROGUE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"QUIZROGUE_LOG_FORMAT" envDefault:"text"`

	Session SessionConfig
	Game    GameConfig
}

// SessionConfig selects where live runs are kept between requests.
type SessionConfig struct {
	Backend string        `env:"QUIZROGUE_SESSION_BACKEND" envDefault:"memory"`
	TTL     time.Duration `env:"QUIZROGUE_SESSION_TTL"     envDefault:"24h"`

	RedisAddr     string `env:"QUIZROGUE_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"QUIZROGUE_REDIS_PASSWORD"`
	RedisDB       int    `env:"QUIZROGUE_REDIS_DB"       envDefault:"0"`
}

// GameConfig overrides game balance knobs. Zero means keep the default.
type GameConfig struct {
	TotalEncounters     int `env:"QUIZROGUE_TOTAL_ENCOUNTERS"`
	MinQuestionsToStart int `env:"QUIZROGUE_MIN_QUESTIONS"`
	PlayerMaxHP         int `env:"QUIZROGUE_PLAYER_MAX_HP"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the process configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can honour.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("unknown session backend %q (want %s or %s)", c.Session.Backend, SessionMemory, SessionRedis)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Game.TotalEncounters < 0 || c.Game.MinQuestionsToStart < 0 || c.Game.PlayerMaxHP < 0 {
		return fmt.Errorf("game overrides must not be negative")
	}
	return nil
}

// GameBalance returns the default balance with any overrides applied.
func (c *Config) GameBalance() game.Config {
	g := game.DefaultConfig()
	if c.Game.TotalEncounters > 0 {
		g.TotalEncounters = c.Game.TotalEncounters
	}
	if c.Game.MinQuestionsToStart > 0 {
		g.MinQuestionsToStart = c.Game.MinQuestionsToStart
	}
	if c.Game.PlayerMaxHP > 0 {
		g.PlayerMaxHP = c.Game.PlayerMaxHP
	}
	return g
}

// NewLogger builds a slog logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
