package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Engine applies game rules to a State. It holds no per-run state, so one
// Engine serves every session; callers serialise actions per State.
type Engine struct {
	cfg       Config
	questions QuestionStore
	saves     SaveStore
	stats     StatsStore
	rng       Rand
	enemies   *EnemyGenerator
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the randomness source. The Engine calls it from every
// goroutine that uses the Engine, so a shared Engine needs a source that is
// safe for concurrent use.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the wall clock used for run timing.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine backed by the given stores.
func NewEngine(cfg Config, questions QuestionStore, saves SaveStore, stats StatsStore, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		questions: questions,
		saves:     saves,
		stats:     stats,
		rng:       newLockedRand(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.enemies = NewEnemyGenerator(cfg, e.rng)
	return e
}

// Config returns the game balance the engine runs with.
func (e *Engine) Config() Config { return e.cfg }

// Enemies returns the engine's enemy generator.
func (e *Engine) Enemies() *EnemyGenerator { return e.enemies }

// ValidateReady checks that the document has enough questions to start a
// run.
func (e *Engine) ValidateReady(ctx context.Context, documentID int64) error {
	n, err := e.questions.QuestionCount(ctx, documentID)
	if err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if n < e.cfg.MinQuestionsToStart {
		return &NotReadyError{Have: n, Need: e.cfg.MinQuestionsToStart}
	}
	return nil
}

// NewGame starts a run against the document's question pool.
func (e *Engine) NewGame(ctx context.Context, documentID int64) (*State, error) {
	sessionID, err := e.stats.CreateSession(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("create stats session: %w", err)
	}

	s := &State{
		DocumentID: documentID,
		Player: Player{
			HP:          e.cfg.PlayerMaxHP,
			MaxHP:       e.cfg.PlayerMaxHP,
			Level:       e.cfg.PlayerStartLevel,
			DamageBoost: 1,
			ScoreBoost:  1,
		},
		CurrentEncounter:  1,
		TotalEncounters:   e.cfg.TotalEncounters,
		StatsSessionID:    sessionID,
		StartTime:         e.now(),
		ActivePowerups:    map[string]bool{},
		Inventory:         []PowerupID{},
		FailedQuestionIDs: []int64{},
	}
	enemy := e.enemies.Generate(s.CurrentEncounter, s.TotalEncounters)
	s.Enemy = &enemy

	e.logger.Info("game started",
		"document_id", documentID,
		"session_id", sessionID,
		"enemy", enemy.Type)
	return s, nil
}

// SaveGame persists a snapshot of s. An empty name is replaced by a
// timestamped one.
func (e *Engine) SaveGame(ctx context.Context, s *State, name string) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("save game: %w", ErrInactiveGame)
	}
	if name == "" {
		name = "Save " + e.now().Format("2006-01-02 15:04")
	}

	rec, err := ToSnapshot(s).SaveRecord(name)
	if err != nil {
		return 0, fmt.Errorf("encode save: %w", err)
	}
	id, err := e.saves.CreateSave(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("create save: %w", err)
	}

	e.logger.Info("game saved", "save_id", id, "document_id", s.DocumentID)
	return id, nil
}

// LoadGame restores a saved run. Returns nil, nil when the save does not
// exist.
func (e *Engine) LoadGame(ctx context.Context, saveID int64) (*State, error) {
	rec, err := e.saves.GetSave(ctx, saveID)
	if err != nil {
		return nil, fmt.Errorf("get save: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	snap, err := SnapshotFromSaveRecord(*rec)
	if err != nil {
		return nil, fmt.Errorf("decode save %d: %w", saveID, err)
	}
	s := FromSnapshot(snap, e.enemies, e.now())

	e.logger.Info("game loaded",
		"save_id", saveID,
		"document_id", s.DocumentID,
		"encounter", s.CurrentEncounter)
	return s, nil
}

// UsePowerup consumes a held powerup and applies its effect.
func (e *Engine) UsePowerup(s *State, id PowerupID) (*Outcome, error) {
	if s == nil {
		return nil, fmt.Errorf("use powerup: %w", ErrInactiveGame)
	}
	if s.Over() {
		return nil, fmt.Errorf("use powerup: %w", ErrGameOver)
	}
	if s.ActivePowerups == nil {
		s.ActivePowerups = map[string]bool{}
	}
	if err := e.cfg.applyPowerup(s, id); err != nil {
		return nil, err
	}

	e.logger.Info("powerup used", "powerup", id, "hp", s.Player.HP, "shield", s.Player.Shield)
	return &Outcome{PowerupUsed: id}, nil
}

// MinimumQuestionsNeeded estimates how many questions a document should
// have for a full run at 60% accuracy.
func (e *Engine) MinimumQuestionsNeeded() int {
	total := e.cfg.TotalEncounters
	totalHP := 0
	for k := 1; k < total; k++ {
		var avg float64
		switch p := Progress(k, total); {
		case p < 0.3:
			avg = e.averageHP(e.cfg.EarlyPool)
		case p < 0.7:
			avg = e.averageHP(e.cfg.MidPool)
		default:
			avg = e.averageHP(e.cfg.LatePool)
		}
		totalHP += int(avg * e.cfg.ScalingFactor(k, total))
	}
	if n := len(e.cfg.Bosses); n > 0 {
		sum := 0
		for _, b := range e.cfg.Bosses {
			sum += b.HP
		}
		totalHP += sum / n
	}

	perfect := totalHP/e.cfg.PlayerBaseDamage + 1
	recommended := int(float64(perfect) / 0.6)
	recommended = int(float64(recommended) * 1.2)
	return max(recommended, e.cfg.MinQuestionsToStart*3)
}

func (e *Engine) averageHP(pool []string) float64 {
	if len(pool) == 0 {
		return 0
	}
	sum := 0
	for _, t := range pool {
		sum += e.cfg.Enemies[t].HP
	}
	return float64(sum) / float64(len(pool))
}
