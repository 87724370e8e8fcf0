package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

var questionSchema = &Schema{
	Name: "test-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text":  map[string]any{"type": "string"},
			"correct_answer": map[string]any{"type": "string"},
		},
		"required": []any{"question_text", "correct_answer"},
	},
}

const questionJSON = `{"question_text":"What organelle makes ATP?","correct_answer":"Mitochondria"}`

func serve(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func apiError(kind string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	}
}

func newAnthropic(t *testing.T, srv *httptest.Server) Provider {
	t.Helper()
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func newOpenAI(t *testing.T, srv *httptest.Server) Provider {
	t.Helper()
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestProviders_StructuredOutput(t *testing.T) {
	tests := []struct {
		name       string
		provider   func(*testing.T, *httptest.Server) Provider
		body       any
		wantInput  int
		wantOutput int
		wantTotal  int
	}{
		{"anthropic", newAnthropic, anthropicMessage(questionJSON, "end_turn"), 50, 30, 80},
		{"openai", newOpenAI, chatCompletion(questionJSON, "stop"), 40, 25, 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.provider(t, serve(t, http.StatusOK, tt.body))
			resp, err := p.Generate(context.Background(), Request{
				System:    "You write quiz questions.",
				Messages:  []Message{{Role: RoleUser, Content: "One question please."}},
				Schema:    questionSchema,
				MaxTokens: 256,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(resp.Content) != questionJSON {
				t.Errorf("content = %s", resp.Content)
			}
			if resp.Usage.InputTokens != tt.wantInput || resp.Usage.OutputTokens != tt.wantOutput || resp.Usage.TotalTokens != tt.wantTotal {
				t.Errorf("usage = %+v", resp.Usage)
			}
			if resp.StopReason != StopEnd {
				t.Errorf("stop reason = %q, want %q", resp.StopReason, StopEnd)
			}
		})
	}
}

func TestProviders_SchemaViolation(t *testing.T) {
	bad := `{"question_text":"missing answer"}`
	tests := []struct {
		name     string
		provider func(*testing.T, *httptest.Server) Provider
		body     any
	}{
		{"anthropic", newAnthropic, anthropicMessage(bad, "end_turn")},
		{"openai", newOpenAI, chatCompletion(bad, "stop")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.provider(t, serve(t, http.StatusOK, tt.body))
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "q"}}, Schema: questionSchema, MaxTokens: 64,
			})
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
		})
	}
}

func TestProviders_Truncated(t *testing.T) {
	partial := `{"question_text":"What`
	tests := []struct {
		name     string
		provider func(*testing.T, *httptest.Server) Provider
		body     any
	}{
		{"anthropic", newAnthropic, anthropicMessage(partial, "max_tokens")},
		{"openai", newOpenAI, chatCompletion(partial, "length")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.provider(t, serve(t, http.StatusOK, tt.body))
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "q"}}, Schema: questionSchema, MaxTokens: 8,
			})
			var maxTok *ErrMaxTokensExceeded
			if !errors.As(err, &maxTok) {
				t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
			}
		})
	}
}

func TestProviders_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		provider func(*testing.T, *httptest.Server) Provider
		status   int
		wantRate bool
	}{
		{"anthropic 429", newAnthropic, http.StatusTooManyRequests, true},
		{"anthropic 500", newAnthropic, http.StatusInternalServerError, false},
		{"openai 429", newOpenAI, http.StatusTooManyRequests, true},
		{"openai 503", newOpenAI, http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.provider(t, serve(t, tt.status, apiError("rate_limit_error")))
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "q"}}, MaxTokens: 16,
			})
			var rl *ErrRateLimit
			var unavail *ErrProviderUnavailable
			switch {
			case tt.wantRate && !errors.As(err, &rl):
				t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
			case !tt.wantRate && !errors.As(err, &unavail):
				t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
			}
		})
	}
}

func TestModelResolution(t *testing.T) {
	a, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"})
	if err != nil {
		t.Fatal(err)
	}
	if a.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("anthropic model = %q", a.ModelID())
	}

	o, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4.1-nano"})
	if err != nil {
		t.Fatal(err)
	}
	if o.ModelID() != "gpt-4.1-nano" {
		t.Errorf("openai pass-through model = %q", o.ModelID())
	}

	r, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "anthropic/claude-3-haiku"})
	if err != nil {
		t.Fatal(err)
	}
	if r.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("openrouter model = %q", r.ModelID())
	}

	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Error("expected error for missing openrouter key")
	}
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Error("expected error for missing anthropic key")
	}
}

func TestOpenRouterUsesChatCompletions(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(questionJSON, "stop"))
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "google/gemini-2.0-flash-exp", BaseURL: srv.URL + "/api/v1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "q"}}}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotPath != "/api/v1/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_type": map[string]any{"type": "string", "enum": []any{"multiple_choice", "true_false"}},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
			},
			"weight": map[string]any{"type": "mystery"},
		},
		"required": []any{"question_type"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s", s.Type)
	}
	if got := s.Properties["question_type"].Enum; len(got) != 2 {
		t.Errorf("enum = %v", got)
	}
	opts := s.Properties["options"]
	if opts.Type != genai.TypeArray || opts.Items.Type != genai.TypeString {
		t.Errorf("options = %+v", opts)
	}
	if opts.MinItems == nil || *opts.MinItems != 2 {
		t.Errorf("minItems = %v", opts.MinItems)
	}
	if s.Properties["weight"].Type != genai.TypeString {
		t.Errorf("unknown type should fall back to string, got %s", s.Properties["weight"].Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "question_type" {
		t.Errorf("required = %v", s.Required)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 0.75 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if LookupCost("claude-haiku") == nil {
		t.Error("friendly names should resolve before lookup")
	}
	if LookupCost("unknown-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
