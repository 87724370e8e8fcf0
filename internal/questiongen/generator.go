package questiongen

import (
	"context"

	"github.com/abhisek/quizrogue/internal/game"
)

// Generator produces comprehension questions from a passage of text.
type Generator interface {
	// Generate returns the questions that passed every validator. Invalid
	// questions are dropped; an error means nothing usable came back.
	Generate(ctx context.Context, input Input) ([]game.Question, error)
}
