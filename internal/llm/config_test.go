package llm

import (
	"context"
	"strings"
	"testing"
)

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZROGUE_LLM_PROVIDER", "QUIZROGUE_ANTHROPIC_API_KEY", "QUIZROGUE_OPENAI_API_KEY",
		"QUIZROGUE_GEMINI_API_KEY", "QUIZROGUE_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "QUIZROGUE_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, ""},
		{"openai without key", Config{Provider: ProviderOpenAI}, "QUIZROGUE_OPENAI_API_KEY"},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, ""},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, "QUIZROGUE_OPENROUTER_API_KEY"},
		{"mock", Config{Provider: ProviderMock}, ""},
		{"unknown", Config{Provider: "llama"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearKeys(t)
	t.Setenv("QUIZROGUE_LLM_PROVIDER", "openai")
	t.Setenv("QUIZROGUE_OPENAI_API_KEY", "sk-test")
	t.Setenv("QUIZROGUE_OPENAI_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("QUIZROGUE_LLM_MAX_ATTEMPTS", "5")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.BaseURL != "http://localhost:1234/v1" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unset model should keep default, got %q", cfg.OpenAI.Model)
	}
	if cfg.Retry.MaxAttempts != 5 || cfg.Retry.Multiplier != 2 {
		t.Errorf("retry = %+v", cfg.Retry)
	}
}

func TestLoadFallsBackToDiscovery(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-vendor")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-vendor" {
		t.Errorf("cfg = %+v, want openai from discovery", cfg)
	}
}

func TestLoadExplicitProviderWins(t *testing.T) {
	clearKeys(t)
	t.Setenv("QUIZROGUE_LLM_PROVIDER", "gemini")
	t.Setenv("OPENAI_API_KEY", "sk-vendor")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "QUIZROGUE_GEMINI_API_KEY") {
		t.Fatalf("err = %v, want missing gemini key", err)
	}
}

func TestLoadNothingConfigured(t *testing.T) {
	clearKeys(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("discovery should find nothing")
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("mock provider should be returned bare, got %T", p)
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(context.Background(), cfg, nil, discard)
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: ProviderAnthropic}, nil, nil); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "llama"}, nil, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}
