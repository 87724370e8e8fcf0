package game

// StatusView is the read-only view of a run for presentation.
type StatusView struct {
	Active         bool            `json:"active"`
	Phase          string          `json:"phase,omitempty"`
	Player         *PlayerStatus   `json:"player,omitempty"`
	Enemy          *EnemyStatus    `json:"enemy"`
	Progress       *ProgressStatus `json:"progress,omitempty"`
	Stats          *AnswerStats    `json:"stats,omitempty"`
	ActivePowerups map[string]bool `json:"active_powerups,omitempty"`
	Inventory      []PowerupID     `json:"inventory,omitempty"`
}

type PlayerStatus struct {
	HP          int     `json:"hp"`
	MaxHP       int     `json:"max_hp"`
	HPPercent   float64 `json:"hp_percent"`
	Level       int     `json:"level"`
	Score       int     `json:"score"`
	Shield      int     `json:"shield"`
	DamageBoost float64 `json:"damage_boost"`
	ScoreBoost  float64 `json:"score_boost"`
}

type EnemyStatus struct {
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Icon      string  `json:"emoji"`
	HP        int     `json:"hp"`
	MaxHP     int     `json:"max_hp"`
	HPPercent float64 `json:"hp_percent"`
	Damage    int     `json:"damage"`
	IsBoss    bool    `json:"is_boss"`
}

type ProgressStatus struct {
	Current int     `json:"current_encounter"`
	Total   int     `json:"total_encounters"`
	Percent float64 `json:"percent"`
}

type AnswerStats struct {
	Answered int     `json:"questions_answered"`
	Correct  int     `json:"questions_correct"`
	Accuracy float64 `json:"accuracy"`
}

// Status builds the status view of s. Hit points are clamped at zero.
func (e *Engine) Status(s *State) StatusView {
	if s == nil {
		return StatusView{}
	}

	hp := max(s.Player.HP, 0)
	v := StatusView{
		Active: true,
		Phase:  s.Phase().String(),
		Player: &PlayerStatus{
			HP:          hp,
			MaxHP:       s.Player.MaxHP,
			HPPercent:   percent(hp, s.Player.MaxHP),
			Level:       s.Player.Level,
			Score:       s.Player.Score,
			Shield:      s.Player.Shield,
			DamageBoost: s.Player.DamageBoost,
			ScoreBoost:  s.Player.ScoreBoost,
		},
		Progress: &ProgressStatus{
			Current: s.CurrentEncounter,
			Total:   s.TotalEncounters,
			Percent: percent(s.CurrentEncounter, s.TotalEncounters),
		},
		Stats: &AnswerStats{
			Answered: s.QuestionsAnswered,
			Correct:  s.QuestionsCorrect,
			Accuracy: accuracy(s.QuestionsCorrect, s.QuestionsAnswered),
		},
		ActivePowerups: s.ActivePowerups,
		Inventory:      s.Inventory,
	}
	if s.Enemy != nil {
		ehp := max(s.Enemy.HP, 0)
		v.Enemy = &EnemyStatus{
			Type:      s.Enemy.Type,
			Name:      s.Enemy.Name,
			Icon:      s.Enemy.Icon,
			HP:        ehp,
			MaxHP:     s.Enemy.MaxHP,
			HPPercent: percent(ehp, s.Enemy.MaxHP),
			Damage:    s.Enemy.Damage,
			IsBoss:    s.Enemy.IsBoss,
		}
	}
	return v
}

func percent(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
