package questiongen

import (
	"slices"
	"strings"

	"github.com/abhisek/quizrogue/internal/game"
)

// AnswerValidator checks that the correct answer is one the player can
// actually give: an offered option, or true/false.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(q *game.Question) *ValidationError {
	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) < 2 {
			return &ValidationError{Validator: v.Name(), Message: "multiple_choice needs at least 2 options"}
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return &ValidationError{Validator: v.Name(), Message: "correct_answer is not one of the options"}
		}
	case TypeTrueFalse:
		if a := strings.ToLower(q.CorrectAnswer); a != "true" && a != "false" {
			return &ValidationError{Validator: v.Name(), Message: `true_false answer must be "true" or "false"`}
		}
	}
	return nil
}

// normalize trims fields, canonicalises true/false questions and fills in
// a default topic and difficulty.
func normalize(q *game.Question) {
	q.Text = strings.TrimSpace(q.Text)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	q.Explanation = strings.TrimSpace(q.Explanation)
	q.Topic = strings.TrimSpace(q.Topic)
	for i, o := range q.Options {
		q.Options[i] = strings.TrimSpace(o)
	}

	if q.Type == TypeTrueFalse {
		q.CorrectAnswer = strings.ToLower(q.CorrectAnswer)
		q.Options = []string{"true", "false"}
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		q.Difficulty = DifficultyMedium
	}
	if q.Topic == "" {
		q.Topic = DefaultTopic
	}
}
