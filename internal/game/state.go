package game

import (
	"slices"
	"time"
)

// Player holds the player's stats for one run.
type Player struct {
	HP          int     `json:"hp"`
	MaxHP       int     `json:"max_hp"`
	Level       int     `json:"level"`
	Score       int     `json:"score"`
	DamageBoost float64 `json:"damage_boost"`
	Shield      int     `json:"shield"`
	ScoreBoost  float64 `json:"score_boost"`
}

// Enemy is the opponent of the current encounter. Only HP changes after
// generation.
type Enemy struct {
	Type       string `json:"enemy_type"`
	Name       string `json:"name"`
	Icon       string `json:"emoji"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"max_hp"`
	Damage     int    `json:"damage"`
	ScoreValue int    `json:"score_value"`
	Difficulty int    `json:"difficulty"`
	IsBoss     bool   `json:"is_boss"`
}

// Phase is the run's position in the progression state machine.
type Phase int

const (
	PhaseNotStarted Phase = iota // no enemy generated yet
	PhaseInProgress              // fighting encounter CurrentEncounter
	PhaseWon                     // final encounter defeated
	PhaseLost                    // player HP reached zero
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// State is the aggregate root of a run. It carries no references to stores
// or other ambient services and can be copied, serialised and moved between
// processes freely. It is not safe for concurrent mutation.
type State struct {
	DocumentID        int64
	Player            Player
	Enemy             *Enemy
	CurrentEncounter  int
	TotalEncounters   int
	StatsSessionID    int64
	QuestionsAnswered int
	QuestionsCorrect  int
	StartTime         time.Time

	// ActivePowerups flags effects that last for the rest of the run.
	ActivePowerups map[string]bool

	// Inventory holds unused powerups in pickup order.
	Inventory []PowerupID

	// FailedQuestionIDs is the review queue.
	FailedQuestionIDs []int64
}

// Phase derives the progression phase from the state.
func (s *State) Phase() Phase {
	switch {
	case s.Player.HP <= 0:
		return PhaseLost
	case s.CurrentEncounter > s.TotalEncounters:
		return PhaseWon
	case s.Enemy == nil:
		return PhaseNotStarted
	default:
		return PhaseInProgress
	}
}

// Over reports whether the run reached a terminal phase.
func (s *State) Over() bool {
	p := s.Phase()
	return p == PhaseWon || p == PhaseLost
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := *s
	if s.Enemy != nil {
		e := *s.Enemy
		c.Enemy = &e
	}
	c.ActivePowerups = make(map[string]bool, len(s.ActivePowerups))
	for k, v := range s.ActivePowerups {
		c.ActivePowerups[k] = v
	}
	c.Inventory = slices.Clone(s.Inventory)
	c.FailedQuestionIDs = slices.Clone(s.FailedQuestionIDs)
	return &c
}

// HasPowerup reports whether id is held in the inventory.
func (s *State) HasPowerup(id PowerupID) bool {
	return slices.Contains(s.Inventory, id)
}

// InReview reports whether the question is in the review queue.
func (s *State) InReview(questionID int64) bool {
	return slices.Contains(s.FailedQuestionIDs, questionID)
}

// markFailed adds the question to the review queue. Returns false when it
// was already queued.
func (s *State) markFailed(questionID int64) bool {
	if s.InReview(questionID) {
		return false
	}
	s.FailedQuestionIDs = append(s.FailedQuestionIDs, questionID)
	return true
}

// markMastered removes the question from the review queue. Returns false
// when it was not queued.
func (s *State) markMastered(questionID int64) bool {
	i := slices.Index(s.FailedQuestionIDs, questionID)
	if i < 0 {
		return false
	}
	s.FailedQuestionIDs = slices.Delete(s.FailedQuestionIDs, i, i+1)
	return true
}

// removePowerup drops the first occurrence of id from the inventory.
func (s *State) removePowerup(id PowerupID) bool {
	i := slices.Index(s.Inventory, id)
	if i < 0 {
		return false
	}
	s.Inventory = slices.Delete(s.Inventory, i, i+1)
	return true
}

// Outcome is the result of one game action. It never carries the correct
// answer; callers attach that from the question record.
type Outcome struct {
	IsCorrect      bool       `json:"is_correct"`
	DamageDealt    int        `json:"damage_dealt"`
	DamageReceived int        `json:"damage_received"`
	EnemyDefeated  bool       `json:"enemy_defeated"`
	PlayerDied     bool       `json:"player_died"`
	PowerupGained  *PowerupID `json:"powerup_gained"`
	ScoreGained    int        `json:"score_gained"`
	GameWon        bool       `json:"game_won,omitempty"`

	// PowerupUsed is set by UsePowerup.
	PowerupUsed PowerupID `json:"powerup_used,omitempty"`
}
