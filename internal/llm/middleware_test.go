package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/quizrogue/internal/store"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}
}

var (
	errDown   = &ErrProviderUnavailable{Err: errors.New("down")}
	errBadOut = &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}
	okReply   = MockResponse{Content: json.RawMessage(`{"ok":true}`)}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okReply}, false, 1},
		{"transient then success", []MockResponse{{Err: errDown}, okReply}, false, 2},
		{"rate limit honours retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okReply}, false, 2},
		{"all attempts fail", []MockResponse{{Err: errDown}, {Err: errDown}, {Err: errDown}, okReply}, true, 3},
		{"max tokens is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okReply}, true, 1},
		{"invalid output retried once", []MockResponse{{Err: errBadOut}, {Err: errBadOut}, okReply}, true, 2},
		{"invalid output then success", []MockResponse{{Err: errBadOut}, okReply}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, fastRetry(), discard)

			_, err := p.Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errDown}, okReply)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestTimeout(t *testing.T) {
	slow := &blockingProvider{}
	p := WithTimeout(slow, 5*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if WithTimeout(slow, 0) != Provider(slow) {
		t.Error("zero timeout should return the provider unchanged")
	}
}

// blockingProvider waits for its context to end.
type blockingProvider struct{}

func (*blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (*blockingProvider) ModelID() string { return "blocking" }

type recordingEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingEvents) QueryLLMRequests(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

func (r *recordingEvents) GetLLMRequest(context.Context, int64) (*store.LLMRequestEvent, error) {
	return nil, nil
}

func TestLoggingRecordsEvents(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		MockResponse{Err: errDown},
	)
	p := WithLogging(mock, ProviderMock, events, discard)
	ctx := WithPurpose(context.Background(), PurposeQuestionGen)

	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "chunk text"}}, Schema: questionSchema}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected second call to fail")
	}

	if len(events.events) != 2 {
		t.Fatalf("events = %d, want 2", len(events.events))
	}
	ok, failed := events.events[0], events.events[1]
	if !ok.Success || ok.InputTokens != 12 || ok.Purpose != PurposeQuestionGen || ok.Provider != ProviderMock {
		t.Errorf("success event = %+v", ok)
	}
	for _, want := range []string{"[system]\nsys", "[user]\nchunk text", "[schema: test-question]"} {
		if !strings.Contains(ok.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ok.RequestBody)
		}
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestLoggingSurvivesStoreFailure(t *testing.T) {
	events := &recordingEvents{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(okReply), ProviderMock, events, discard)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("event store failure leaked into the call: %v", err)
	}
}

func TestValidateResponse(t *testing.T) {
	schema := &Schema{
		Name: "validate-quiz",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
				"points":     map[string]any{"type": "integer", "minimum": 0},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"difficulty", "points"},
		},
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"difficulty":"easy","points":3,"options":["a","b"]}`, false},
		{"optional omitted", `{"difficulty":"hard","points":0}`, false},
		{"missing required", `{"difficulty":"easy"}`, true},
		{"wrong type", `{"difficulty":"easy","points":"three"}`, true},
		{"bad enum", `{"difficulty":"brutal","points":1}`, true},
		{"bad array item", `{"difficulty":"easy","points":1,"options":[1,2]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var inv *ErrInvalidResponse
			if err != nil && !errors.As(err, &inv) {
				t.Errorf("expected ErrInvalidResponse, got %T", err)
			}
		})
	}

	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Errorf("nil schema should accept anything, got %v", err)
	}
}

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10}})
	if err := mock.AddJSON(map[string]int{"b": 2}); err != nil {
		t.Fatal(err)
	}

	r1, err := mock.Generate(context.Background(), Request{System: "first"})
	if err != nil || string(r1.Content) != `{"a":1}` || r1.Usage.InputTokens != 10 {
		t.Fatalf("first = %+v, %v", r1, err)
	}
	r2, err := mock.Generate(context.Background(), Request{})
	if err != nil || string(r2.Content) != `{"b":2}` {
		t.Fatalf("second = %+v, %v", r2, err)
	}
	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue err = %T", err)
	}
	if mock.CallCount() != 3 || mock.Calls[0].System != "first" {
		t.Errorf("calls = %+v", mock.Calls)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("PurposeFrom(empty) = %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, PurposeQuestionGen)); p != PurposeQuestionGen {
		t.Fatalf("PurposeFrom = %q", p)
	}
}
