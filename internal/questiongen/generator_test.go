package questiongen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/quizrogue/internal/llm"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func mcOutput(text, answer string, options ...string) map[string]any {
	return map[string]any{
		"question_text":  text,
		"question_type":  TypeMultipleChoice,
		"correct_answer": answer,
		"options":        options,
		"explanation":    "Because the passage says so.",
		"topic":          "Cells",
		"difficulty":     DifficultyEasy,
	}
}

func tfOutput(text, answer string) map[string]any {
	return map[string]any{
		"question_text":  text,
		"question_type":  TypeTrueFalse,
		"correct_answer": answer,
		"options":        []string{"True", "False"},
		"explanation":    "Stated in paragraph two.",
		"topic":          "",
		"difficulty":     "extreme",
	}
}

func batchOf(qs ...map[string]any) map[string]any {
	return map[string]any{"questions": qs}
}

func TestGenerate_ValidBatch(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddJSON(batchOf(
		mcOutput("  Which organelle makes ATP? ", "Mitochondria", "Nucleus", "Mitochondria", "Ribosome", "Golgi"),
		tfOutput("DNA is double stranded.", "TRUE"),
	))
	gen := New(mock, DefaultConfig(), quiet)

	qs, err := gen.Generate(context.Background(), Input{Text: "Cells have organelles.", Count: 2, Difficulty: DifficultyEasy})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}

	mc := qs[0]
	if mc.Text != "Which organelle makes ATP?" {
		t.Errorf("text not trimmed: %q", mc.Text)
	}
	if mc.Type != TypeMultipleChoice || mc.CorrectAnswer != "Mitochondria" || len(mc.Options) != 4 {
		t.Errorf("mc = %+v", mc)
	}

	tf := qs[1]
	if tf.CorrectAnswer != "true" {
		t.Errorf("true/false answer should be lowercased, got %q", tf.CorrectAnswer)
	}
	if len(tf.Options) != 2 || tf.Options[0] != "true" || tf.Options[1] != "false" {
		t.Errorf("true/false options = %v", tf.Options)
	}
	if tf.Difficulty != DifficultyMedium {
		t.Errorf("unknown difficulty should default to medium, got %q", tf.Difficulty)
	}
	if tf.Topic != DefaultTopic {
		t.Errorf("empty topic should default to %q, got %q", DefaultTopic, tf.Topic)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddJSON(batchOf(tfOutput("Water boils at 100C at sea level.", "true")))
	gen := New(mock, DefaultConfig(), quiet)

	_, err := gen.Generate(context.Background(), Input{
		Text:           "Water boils.",
		Count:          3,
		Difficulty:     DifficultyHard,
		PriorQuestions: []string{"What is ice?"},
	})
	if err != nil {
		t.Fatal(err)
	}

	req := mock.Calls[0]
	if req.Schema != QuestionSchema {
		t.Error("expected question schema on the request")
	}
	if req.System != systemPrompt {
		t.Error("expected system prompt")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"exactly 3 questions", "Difficulty: hard", "Water boils.", "1. What is ice?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerate_DropsInvalidAndDuplicates(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddJSON(batchOf(
		mcOutput("Which gas do plants absorb?", "Oxygen", "Carbon dioxide", "Nitrogen"),
		mcOutput("What is photosynthesis?", "Light to sugar", "Light to sugar", "Sugar to light"),
		mcOutput("what is   PHOTOSYNTHESIS?", "Light to sugar", "Light to sugar", "Sugar to light"),
		mcOutput("Where does it happen?", "Chloroplast", "Chloroplast", "Nucleus"),
	))
	gen := New(mock, DefaultConfig(), quiet)

	qs, err := gen.Generate(context.Background(), Input{
		Text:           "Plants...",
		Count:          4,
		PriorQuestions: []string{"Where does it happen?"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 || qs[0].Text != "What is photosynthesis?" {
		t.Fatalf("got %+v, want only the photosynthesis question", qs)
	}
}

func TestGenerate_AllInvalid(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddJSON(batchOf(tfOutput("Is the sky green?", "maybe")))
	gen := New(mock, DefaultConfig(), quiet)

	_, err := gen.Generate(context.Background(), Input{Text: "x", Count: 1})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Validator != "answer" {
		t.Errorf("validator = %q", verr.Validator)
	}
}

func TestGenerate_EmptyBatch(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddJSON(batchOf())
	qs, err := New(mock, DefaultConfig(), quiet).Generate(context.Background(), Input{Text: "x", Count: 1})
	if err != nil || len(qs) != 0 {
		t.Fatalf("got %v, %v", qs, err)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_, err := New(mock, DefaultConfig(), quiet).Generate(context.Background(), Input{Text: "x", Count: 1})
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected wrapped ErrRateLimit, got %v", err)
	}
}

func TestGenerate_MalformedContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`{"questions": "nope"}`)})
	_, err := New(mock, DefaultConfig(), quiet).Generate(context.Background(), Input{Text: "x", Count: 1})
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
