package game

// advance moves past a defeated enemy. It installs the next encounter's
// enemy, or completes the run after the last one and returns the session
// aggregate to record.
func (e *Engine) advance(s *State, out *Outcome) *SessionUpdate {
	s.CurrentEncounter++
	if s.CurrentEncounter <= s.TotalEncounters {
		enemy := e.enemies.Generate(s.CurrentEncounter, s.TotalEncounters)
		s.Enemy = &enemy
		e.logger.Info("encounter started",
			"encounter", s.CurrentEncounter,
			"enemy", enemy.Type,
			"boss", enemy.IsBoss)
		return nil
	}

	out.GameWon = true
	u := e.sessionUpdate(s, true)
	e.logger.Info("game completed",
		"document_id", s.DocumentID,
		"score", s.Player.Score,
		"accuracy", accuracy(s.QuestionsCorrect, s.QuestionsAnswered))
	return &u
}

// sessionUpdate builds the aggregate for a finished run.
func (e *Engine) sessionUpdate(s *State, completed bool) SessionUpdate {
	u := SessionUpdate{
		QuestionsAnswered: s.QuestionsAnswered,
		QuestionsCorrect:  s.QuestionsCorrect,
		TotalScore:        s.Player.Score,
		EnemiesDefeated:   s.CurrentEncounter - 1,
		TimePlayedSeconds: int(e.now().Sub(s.StartTime).Seconds()),
		GameCompleted:     completed,
	}
	if completed {
		// CurrentEncounter is already past the final encounter.
		u.HighestEncounter = s.CurrentEncounter - 1
	} else {
		u.HighestEncounter = s.CurrentEncounter
	}
	return u
}

func accuracy(correct, answered int) float64 {
	if answered == 0 {
		return 0
	}
	return float64(correct) / float64(answered) * 100
}
