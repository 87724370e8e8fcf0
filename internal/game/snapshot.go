package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is the current snapshot format.
const SnapshotVersion = 1

// Snapshot is the durable form of a State. The top-level fields mirror the
// primary save columns; everything else lives in Aux.
type Snapshot struct {
	DocumentID       int64           `json:"document_id"`
	PlayerHP         int             `json:"player_hp"`
	PlayerMaxHP      int             `json:"player_max_hp"`
	PlayerLevel      int             `json:"player_level"`
	CurrentEncounter int             `json:"current_encounter"`
	Score            int             `json:"score"`
	ActivePowerups   map[string]bool `json:"active_powerups"`

	// Enemy is kept undecoded so a damaged payload can be detected on load.
	Enemy json.RawMessage `json:"current_enemy,omitempty"`

	Aux AuxState `json:"game_state"`
}

// AuxState holds the run fields that have no primary save column.
type AuxState struct {
	Version           int         `json:"version"`
	StatsSessionID    int64       `json:"session_id"`
	QuestionsAnswered int         `json:"questions_answered"`
	QuestionsCorrect  int         `json:"questions_correct"`
	FailedQuestionIDs []int64     `json:"failed_question_ids"`
	Inventory         []PowerupID `json:"inventory"`
	Shield            int         `json:"shield"`
	DamageBoost       float64     `json:"damage_boost"`
	ScoreBoost        float64     `json:"score_boost"`
	TotalEncounters   int         `json:"total_encounters"`
}

// ToSnapshot captures s. The snapshot shares no memory with s.
func ToSnapshot(s *State) Snapshot {
	s = s.Clone()
	snap := Snapshot{
		DocumentID:       s.DocumentID,
		PlayerHP:         s.Player.HP,
		PlayerMaxHP:      s.Player.MaxHP,
		PlayerLevel:      s.Player.Level,
		CurrentEncounter: s.CurrentEncounter,
		Score:            s.Player.Score,
		ActivePowerups:   s.ActivePowerups,
		Aux: AuxState{
			Version:           SnapshotVersion,
			StatsSessionID:    s.StatsSessionID,
			QuestionsAnswered: s.QuestionsAnswered,
			QuestionsCorrect:  s.QuestionsCorrect,
			FailedQuestionIDs: s.FailedQuestionIDs,
			Inventory:         s.Inventory,
			Shield:            s.Player.Shield,
			DamageBoost:       s.Player.DamageBoost,
			ScoreBoost:        s.Player.ScoreBoost,
			TotalEncounters:   s.TotalEncounters,
		},
	}
	if s.Enemy != nil {
		// Enemy has only plain fields; Marshal cannot fail.
		snap.Enemy, _ = json.Marshal(s.Enemy)
	}
	return snap
}

// FromSnapshot rebuilds a State. A missing or unreadable enemy is replaced by
// a fresh one for the stored encounter. StartTime is set to now.
func FromSnapshot(snap Snapshot, gen *EnemyGenerator, now time.Time) *State {
	aux := snap.Aux
	total := aux.TotalEncounters
	if total <= 0 {
		total = gen.cfg.TotalEncounters
	}

	s := &State{
		DocumentID: snap.DocumentID,
		Player: Player{
			HP:          snap.PlayerHP,
			MaxHP:       snap.PlayerMaxHP,
			Level:       snap.PlayerLevel,
			Score:       snap.Score,
			DamageBoost: orOne(aux.DamageBoost),
			Shield:      aux.Shield,
			ScoreBoost:  orOne(aux.ScoreBoost),
		},
		CurrentEncounter:  snap.CurrentEncounter,
		TotalEncounters:   total,
		StatsSessionID:    aux.StatsSessionID,
		QuestionsAnswered: aux.QuestionsAnswered,
		QuestionsCorrect:  aux.QuestionsCorrect,
		StartTime:         now,
		ActivePowerups:    snap.ActivePowerups,
		Inventory:         aux.Inventory,
		FailedQuestionIDs: aux.FailedQuestionIDs,
	}
	if s.ActivePowerups == nil {
		s.ActivePowerups = map[string]bool{}
	}

	if enemy, ok := decodeEnemy(snap.Enemy); ok {
		s.Enemy = enemy
	} else if s.CurrentEncounter <= s.TotalEncounters {
		regen := gen.Generate(s.CurrentEncounter, s.TotalEncounters)
		s.Enemy = &regen
	}
	return s
}

func decodeEnemy(raw json.RawMessage) (*Enemy, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	var e Enemy
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false
	}
	if e.Type == "" || e.MaxHP <= 0 {
		return nil, false
	}
	return &e, true
}

func orOne(f float64) float64 {
	if f <= 0 {
		return 1
	}
	return f
}

// SaveRecord maps the snapshot onto a save row.
func (snap Snapshot) SaveRecord(name string) (SaveRecord, error) {
	powerups := snap.ActivePowerups
	if powerups == nil {
		powerups = map[string]bool{}
	}
	pu, err := json.Marshal(powerups)
	if err != nil {
		return SaveRecord{}, fmt.Errorf("marshal active powerups: %w", err)
	}
	aux, err := json.Marshal(snap.Aux)
	if err != nil {
		return SaveRecord{}, fmt.Errorf("marshal game state: %w", err)
	}
	return SaveRecord{
		DocumentID:       snap.DocumentID,
		Name:             name,
		PlayerHP:         snap.PlayerHP,
		PlayerMaxHP:      snap.PlayerMaxHP,
		PlayerLevel:      snap.PlayerLevel,
		CurrentEncounter: snap.CurrentEncounter,
		Score:            snap.Score,
		ActivePowerups:   string(pu),
		CurrentEnemy:     string(snap.Enemy),
		GameState:        string(aux),
	}, nil
}

// SnapshotFromSaveRecord reverses Snapshot.SaveRecord. The enemy column is
// passed through untouched.
func SnapshotFromSaveRecord(rec SaveRecord) (Snapshot, error) {
	snap := Snapshot{
		DocumentID:       rec.DocumentID,
		PlayerHP:         rec.PlayerHP,
		PlayerMaxHP:      rec.PlayerMaxHP,
		PlayerLevel:      rec.PlayerLevel,
		CurrentEncounter: rec.CurrentEncounter,
		Score:            rec.Score,
		Enemy:            json.RawMessage(rec.CurrentEnemy),
	}
	if rec.ActivePowerups != "" {
		if err := json.Unmarshal([]byte(rec.ActivePowerups), &snap.ActivePowerups); err != nil {
			return Snapshot{}, fmt.Errorf("unmarshal active powerups: %w", err)
		}
	}
	if rec.GameState != "" {
		if err := json.Unmarshal([]byte(rec.GameState), &snap.Aux); err != nil {
			return Snapshot{}, fmt.Errorf("unmarshal game state: %w", err)
		}
	}
	if snap.Aux.Version > SnapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", snap.Aux.Version)
	}
	return snap, nil
}
