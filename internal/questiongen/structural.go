package questiongen

import "github.com/abhisek/quizrogue/internal/game"

// StructuralValidator checks required fields, length limits and the
// question type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *game.Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}
	switch {
	case q.Text == "":
		return fail("question_text is empty")
	case len(q.Text) > 1000:
		return fail("question_text exceeds 1000 characters")
	case q.CorrectAnswer == "":
		return fail("correct_answer is empty")
	case q.Explanation == "":
		return fail("explanation is empty")
	case len(q.Explanation) > 2000:
		return fail("explanation exceeds 2000 characters")
	case q.Type != TypeMultipleChoice && q.Type != TypeTrueFalse:
		return fail(`question_type must be "multiple_choice" or "true_false"`)
	}
	return nil
}
