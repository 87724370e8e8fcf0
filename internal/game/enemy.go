package game

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness source of the game. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// lockedRand serialises access to a *rand.Rand, which is not safe for
// concurrent use. One Engine serves every session, so its default source
// is shared across goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(src rand.Source) *lockedRand {
	return &lockedRand{r: rand.New(src)}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// EnemyGenerator produces the enemy of each encounter.
type EnemyGenerator struct {
	cfg Config
	rng Rand
}

// NewEnemyGenerator creates a generator drawing from rng.
func NewEnemyGenerator(cfg Config, rng Rand) *EnemyGenerator {
	return &EnemyGenerator{cfg: cfg, rng: rng}
}

// Generate returns the enemy for encounter (1-indexed) of total. The final
// encounter is a boss taken unscaled from the boss table.
func (g *EnemyGenerator) Generate(encounter, total int) Enemy {
	if encounter == total && len(g.cfg.Bosses) > 0 {
		b := g.cfg.Bosses[g.rng.IntN(len(g.cfg.Bosses))]
		return Enemy{
			Type:       b.Type,
			Name:       b.Name,
			Icon:       b.Icon,
			HP:         b.HP,
			MaxHP:      b.HP,
			Damage:     b.Damage,
			ScoreValue: b.ScoreValue,
			Difficulty: b.Difficulty,
			IsBoss:     true,
		}
	}

	progress := Progress(encounter, total)
	pool := g.pool(progress)
	t := g.cfg.Enemies[pool[g.rng.IntN(len(pool))]]
	scale := 1 + progress*(g.cfg.DifficultyScaling-1)
	hp := int(float64(t.HP) * scale)

	return Enemy{
		Type:       t.Type,
		Name:       t.Name,
		Icon:       t.Icon,
		HP:         hp,
		MaxHP:      hp,
		Damage:     int(float64(t.Damage) * scale),
		ScoreValue: int(float64(t.ScoreValue) * scale),
		Difficulty: t.Difficulty,
	}
}

func (g *EnemyGenerator) pool(progress float64) []string {
	switch {
	case progress < 0.3:
		return g.cfg.EarlyPool
	case progress < 0.7:
		return g.cfg.MidPool
	default:
		return g.cfg.LatePool
	}
}

// Progress is the fraction of the run an encounter represents.
func Progress(encounter, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(encounter) / float64(total)
}

// ScalingFactor is the stat multiplier applied to non-boss enemies at
// encounter.
func (c Config) ScalingFactor(encounter, total int) float64 {
	return 1 + Progress(encounter, total)*(c.DifficultyScaling-1)
}

// RecommendedDifficulty maps run progress to a question difficulty label.
func RecommendedDifficulty(encounter, total int) string {
	switch p := Progress(encounter, total); {
	case p < 0.3:
		return "easy"
	case p < 0.7:
		return "medium"
	default:
		return "hard"
	}
}
