package questiongen

import (
	"fmt"

	"github.com/abhisek/quizrogue/internal/game"
)

// Validator checks one generated question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *game.Question) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
