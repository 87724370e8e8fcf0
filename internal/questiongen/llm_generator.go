package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGenerator. A nil logger uses slog.Default.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// Generate asks the model for a batch of questions and keeps the valid,
// previously unseen ones.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]game.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	seen := newSeenSet(input.PriorQuestions)
	var (
		out      []game.Question
		firstErr *ValidationError
	)
	for _, r := range raw.Questions {
		q := r.toQuestion()
		normalize(q)
		if verr := g.validate(q); verr != nil {
			g.logger.Warn("skipping invalid question", "question", q.Text, "error", verr)
			if firstErr == nil {
				firstErr = verr
			}
			continue
		}
		if seen.has(q.Text) {
			g.logger.Debug("skipping duplicate question", "question", q.Text)
			continue
		}
		seen.add(q.Text)
		out = append(out, *q)
	}

	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (g *LLMGenerator) validate(q *game.Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
