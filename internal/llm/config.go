package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM backend.
type Config struct {
	Provider string `env:"QUIZROGUE_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `env:"QUIZROGUE_LLM_TIMEOUT"`
}

type AnthropicConfig struct {
	APIKey string `env:"QUIZROGUE_ANTHROPIC_API_KEY"`
	Model  string `env:"QUIZROGUE_ANTHROPIC_MODEL"`
}

type OpenAIConfig struct {
	APIKey  string `env:"QUIZROGUE_OPENAI_API_KEY"`
	Model   string `env:"QUIZROGUE_OPENAI_MODEL"`
	BaseURL string `env:"QUIZROGUE_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"QUIZROGUE_GEMINI_API_KEY"`
	Model  string `env:"QUIZROGUE_GEMINI_MODEL"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"QUIZROGUE_OPENROUTER_API_KEY"`
	Model   string `env:"QUIZROGUE_OPENROUTER_MODEL"`
	BaseURL string `env:"QUIZROGUE_OPENROUTER_BASE_URL"`
}

// RetryConfig is exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int `env:"QUIZROGUE_LLM_MAX_ATTEMPTS"`
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv overlays QUIZROGUE_* variables on the defaults. Unset
// variables keep the default value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse LLM env: %w", err)
	}
	return cfg, nil
}

// discoveryOrder is probed by DiscoverConfig.
var discoveryOrder = []struct {
	envVar   string
	provider string
	set      func(*Config, string)
}{
	{"GEMINI_API_KEY", ProviderGemini, func(c *Config, k string) { c.Gemini.APIKey = k }},
	{"OPENAI_API_KEY", ProviderOpenAI, func(c *Config, k string) { c.OpenAI.APIKey = k }},
	{"ANTHROPIC_API_KEY", ProviderAnthropic, func(c *Config, k string) { c.Anthropic.APIKey = k }},
	{"OPENROUTER_API_KEY", ProviderOpenRouter, func(c *Config, k string) { c.OpenRouter.APIKey = k }},
}

// DiscoverConfig looks for a vendor's standard API key variable and returns
// a config for the first one found.
func DiscoverConfig() (Config, bool) {
	for _, d := range discoveryOrder {
		if k := os.Getenv(d.envVar); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = d.provider
			d.set(&cfg, k)
			return cfg, true
		}
	}
	return Config{}, false
}

// Load returns the QUIZROGUE_* configuration when a provider key is set
// there, else falls back to DiscoverConfig.
func Load() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	if cfg.Validate() == nil {
		return cfg, nil
	}
	if os.Getenv("QUIZROGUE_LLM_PROVIDER") == "" {
		if found, ok := DiscoverConfig(); ok {
			return found, nil
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, envVar string
	switch c.Provider {
	case ProviderAnthropic:
		key, envVar = c.Anthropic.APIKey, "QUIZROGUE_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, envVar = c.OpenAI.APIKey, "QUIZROGUE_OPENAI_API_KEY"
	case ProviderGemini:
		key, envVar = c.Gemini.APIKey, "QUIZROGUE_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, envVar = c.OpenRouter.APIKey, "QUIZROGUE_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	return nil
}
