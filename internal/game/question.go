package game

import (
	"context"
	"fmt"
)

// ReviewPrefix marks a recycled question's text.
const ReviewPrefix = "🔄 REVIEW: "

var difficultyLabels = map[int]string{
	1: "easy",
	2: "easy",
	3: "medium",
	4: "medium",
	5: "hard",
}

// DifficultyLabel maps an enemy tier to a question difficulty.
func DifficultyLabel(tier int) string {
	if l, ok := difficultyLabels[tier]; ok {
		return l
	}
	return "medium"
}

// NextQuestion picks the question to ask against the current enemy. It
// tries, in order: a fresh question at the enemy's difficulty, a question
// from the review queue, and any question of the document. Returns
// ErrNoQuestions when all three come up empty.
func (e *Engine) NextQuestion(ctx context.Context, s *State) (*SafeQuestion, error) {
	if s == nil || s.Enemy == nil {
		return nil, fmt.Errorf("next question: %w", ErrInactiveGame)
	}
	if s.Over() {
		return nil, fmt.Errorf("next question: %w", ErrGameOver)
	}

	difficulty := DifficultyLabel(s.Enemy.Difficulty)
	q, err := e.questions.RandomQuestion(ctx, s.DocumentID, difficulty, e.cfg.QuestionBuffer)
	if err != nil {
		return nil, fmt.Errorf("random question: %w", err)
	}
	if q != nil {
		return safe(q, false), nil
	}

	if n := len(s.FailedQuestionIDs); n > 0 {
		id := s.FailedQuestionIDs[e.rng.IntN(n)]
		q, err = e.questions.GetQuestion(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get review question %d: %w", id, err)
		}
		if q != nil {
			e.logger.Info("recycling failed question", "question_id", id)
			return safe(q, true), nil
		}
	}

	q, err = e.questions.RandomQuestion(ctx, s.DocumentID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("random question: %w", err)
	}
	if q == nil {
		return nil, ErrNoQuestions
	}
	return safe(q, false), nil
}

func safe(q *Question, review bool) *SafeQuestion {
	text := q.Text
	if review {
		text = ReviewPrefix + text
	}
	return &SafeQuestion{
		ID:         q.ID,
		Text:       text,
		Type:       q.Type,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Topic:      q.Topic,
		IsReview:   review,
	}
}
