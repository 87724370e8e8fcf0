package game

import (
	"context"
	"errors"
	"testing"
)

func TestNewGame(t *testing.T) {
	f := newFixture()
	s := f.newGame()

	if s.Phase() != PhaseInProgress {
		t.Errorf("phase = %v, want in_progress", s.Phase())
	}
	if s.Player.HP != 100 || s.Player.MaxHP != 100 || s.Player.Level != 1 {
		t.Errorf("player = %+v", s.Player)
	}
	if s.Player.DamageBoost != 1 || s.Player.ScoreBoost != 1 || s.Player.Shield != 0 {
		t.Errorf("player boosts = %+v", s.Player)
	}
	if s.CurrentEncounter != 1 || s.TotalEncounters != 5 {
		t.Errorf("encounter = %d/%d, want 1/5", s.CurrentEncounter, s.TotalEncounters)
	}
	if s.Enemy == nil || s.Enemy.Type != "slime" || s.Enemy.IsBoss {
		t.Errorf("first enemy = %+v", s.Enemy)
	}
	if s.StatsSessionID != 1 {
		t.Errorf("stats session = %d, want 1", s.StatsSessionID)
	}
	if !s.StartTime.Equal(testEpoch) {
		t.Errorf("start time = %v", s.StartTime)
	}
}

func TestValidateReady(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := int64(1); i <= 9; i++ {
		f.questions.add(&Question{ID: i})
	}
	err := f.engine.ValidateReady(ctx, 1)
	var nr *NotReadyError
	if !errors.As(err, &nr) {
		t.Fatalf("err = %v, want NotReadyError", err)
	}
	if nr.Have != 9 || nr.Need != 10 {
		t.Errorf("not ready = %+v", nr)
	}
	if !errors.Is(err, ErrNotReady) || !errors.Is(err, ErrBadRequest) {
		t.Error("NotReadyError does not unwrap to ErrNotReady")
	}

	f.questions.add(&Question{ID: 10})
	if err := f.engine.ValidateReady(ctx, 1); err != nil {
		t.Errorf("ValidateReady with 10 questions: %v", err)
	}
}

func TestMinimumQuestionsNeeded(t *testing.T) {
	f := newFixture()
	if got := f.engine.MinimumQuestionsNeeded(); got != 54 {
		t.Errorf("MinimumQuestionsNeeded = %d, want 54", got)
	}

	cfg := DefaultConfig()
	cfg.TotalEncounters = 1
	e := NewEngine(cfg, nil, nil, nil)
	if got := e.MinimumQuestionsNeeded(); got != cfg.MinQuestionsToStart*3 {
		t.Errorf("short run MinimumQuestionsNeeded = %d, want floor %d", got, cfg.MinQuestionsToStart*3)
	}
}

func TestStatusView(t *testing.T) {
	f := newFixture()

	if v := f.engine.Status(nil); v.Active {
		t.Error("nil state reported active")
	}

	s := f.newGame()
	s.Enemy.HP = -7
	s.QuestionsAnswered = 4
	s.QuestionsCorrect = 3
	s.Inventory = []PowerupID{PowerupShield}

	v := f.engine.Status(s)
	if !v.Active || v.Phase != "in_progress" {
		t.Errorf("active/phase = %v/%q", v.Active, v.Phase)
	}
	if v.Enemy.HP != 0 || v.Enemy.HPPercent != 0 {
		t.Errorf("enemy hp = %d (%.1f%%), want clamped to 0", v.Enemy.HP, v.Enemy.HPPercent)
	}
	if v.Player.HPPercent != 100 {
		t.Errorf("player hp percent = %.1f", v.Player.HPPercent)
	}
	if v.Progress.Percent != 20 {
		t.Errorf("progress percent = %.1f, want 20", v.Progress.Percent)
	}
	if v.Stats.Accuracy != 75 {
		t.Errorf("accuracy = %.1f, want 75", v.Stats.Accuracy)
	}
	if len(v.Inventory) != 1 {
		t.Errorf("inventory = %v", v.Inventory)
	}
}
