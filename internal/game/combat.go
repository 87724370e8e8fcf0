package game

import (
	"context"
	"fmt"
	"strings"
)

// AnswerQuestion resolves one submitted answer against the current enemy.
//
// The next state is computed on a copy of s. Store writes run before the
// copy is committed back into s, so a store error leaves s as it was.
func (e *Engine) AnswerQuestion(ctx context.Context, s *State, questionID int64, userAnswer, correctAnswer string) (*Outcome, error) {
	if s == nil {
		return nil, fmt.Errorf("answer question: %w", ErrInactiveGame)
	}
	if s.Over() {
		return nil, fmt.Errorf("answer question: %w", ErrGameOver)
	}
	if s.Enemy == nil {
		return nil, fmt.Errorf("answer question: no enemy: %w", ErrInactiveGame)
	}

	next := s.Clone()
	out := &Outcome{IsCorrect: IsCorrect(userAnswer, correctAnswer)}

	next.QuestionsAnswered++
	if out.IsCorrect {
		next.QuestionsCorrect++
	}

	var final *SessionUpdate
	if out.IsCorrect {
		if next.markMastered(questionID) {
			e.logger.Info("question mastered", "question_id", questionID)
		}
		if e.strike(next, out) {
			final = e.advance(next, out)
		}
	} else {
		if next.markFailed(questionID) {
			e.logger.Info("question queued for review", "question_id", questionID)
		}
		if e.takeHit(next, out) {
			u := e.sessionUpdate(next, false)
			final = &u
		}
	}

	if err := e.questions.UpdateQuestionStats(ctx, questionID, out.IsCorrect); err != nil {
		return nil, fmt.Errorf("update question stats: %w", err)
	}
	err := e.stats.RecordAnswer(ctx, AnswerRecord{
		QuestionID: questionID,
		DocumentID: s.DocumentID,
		SessionID:  s.StatsSessionID,
		UserAnswer: userAnswer,
		IsCorrect:  out.IsCorrect,
	})
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}
	if final != nil {
		if err := e.stats.UpdateSession(ctx, s.StatsSessionID, *final); err != nil {
			return nil, fmt.Errorf("finalize session: %w", err)
		}
	}

	*s = *next
	return out, nil
}

// IsCorrect compares answers ignoring case and surrounding whitespace.
func IsCorrect(userAnswer, correctAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(correctAnswer))
}

// strike deals player damage to the enemy. On a kill it awards score and
// rolls a drop. Reports whether the enemy was defeated.
func (e *Engine) strike(s *State, out *Outcome) bool {
	dmg := int(float64(e.cfg.PlayerBaseDamage) * s.Player.DamageBoost)
	s.Enemy.HP -= dmg
	out.DamageDealt = dmg
	if s.Enemy.HP > 0 {
		return false
	}

	out.EnemyDefeated = true
	out.ScoreGained = int(float64(s.Enemy.ScoreValue) * s.Player.ScoreBoost)
	s.Player.Score += out.ScoreGained

	if id, ok := e.cfg.RollDrop(e.rng); ok {
		s.Inventory = append(s.Inventory, id)
		out.PowerupGained = &id
	}

	e.logger.Info("enemy defeated",
		"enemy", s.Enemy.Type,
		"encounter", s.CurrentEncounter,
		"score_gained", out.ScoreGained)
	return true
}

// takeHit applies the enemy's attack, shield first. Reports whether the
// player died.
func (e *Engine) takeHit(s *State, out *Outcome) bool {
	dmg := s.Enemy.Damage
	absorbed := min(s.Player.Shield, dmg)
	s.Player.Shield -= absorbed
	dmg -= absorbed
	s.Player.HP -= dmg
	out.DamageReceived = dmg
	if s.Player.HP > 0 {
		return false
	}

	out.PlayerDied = true
	e.logger.Info("game over",
		"document_id", s.DocumentID,
		"encounter", s.CurrentEncounter,
		"score", s.Player.Score)
	return true
}
