package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure drops the question.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxSourceChars truncates the passage sent to the model.
	MaxSourceChars int

	// MaxPriorQuestions is how many stored questions the prompt lists so
	// the model avoids repeating them.
	MaxPriorQuestions int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
		},
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxSourceChars:    8000,
		MaxPriorQuestions: 15,
	}
}
