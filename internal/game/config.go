package game

// EnemyTemplate is the unscaled definition an Enemy is generated from.
type EnemyTemplate struct {
	Type       string
	Name       string
	Icon       string
	HP         int
	Damage     int
	ScoreValue int
	Difficulty int
}

// PowerupEffect identifies what a powerup does when used.
type PowerupEffect string

const (
	EffectHeal        PowerupEffect = "heal"
	EffectShield      PowerupEffect = "shield"
	EffectDamageBoost PowerupEffect = "damage_boost"
	EffectScoreBoost  PowerupEffect = "score_boost"
)

// PowerupID identifies an entry of the powerup table.
type PowerupID string

const (
	PowerupHealthPotion PowerupID = "health_potion"
	PowerupShield       PowerupID = "shield"
	PowerupDoubleDamage PowerupID = "double_damage"
	PowerupLuckyCoin    PowerupID = "lucky_coin"
)

// PowerupSpec is one row of the drop table.
type PowerupSpec struct {
	ID     PowerupID
	Name   string
	Effect PowerupEffect
	Value  float64
	Chance float64
}

// Config holds the balance parameters of a run.
type Config struct {
	PlayerMaxHP       int
	PlayerBaseDamage  int
	PlayerStartLevel  int
	TotalEncounters   int
	DifficultyScaling float64

	// QuestionBuffer is how many recently answered questions are excluded
	// from normal selection.
	QuestionBuffer int

	// MinQuestionsToStart gates new runs on the document's question pool.
	MinQuestionsToStart int

	Enemies map[string]EnemyTemplate

	// Pools list enemy template types per progress tier.
	EarlyPool []string
	MidPool   []string
	LatePool  []string

	// Bosses is ordered so seeded selection is reproducible.
	Bosses []EnemyTemplate

	// Powerups is iterated in order when rolling drops; the first entry
	// whose roll succeeds wins.
	Powerups []PowerupSpec
}

// DefaultConfig returns the standard game balance.
func DefaultConfig() Config {
	return Config{
		PlayerMaxHP:         100,
		PlayerBaseDamage:    20,
		PlayerStartLevel:    1,
		TotalEncounters:     5,
		DifficultyScaling:   1.5,
		QuestionBuffer:      20,
		MinQuestionsToStart: 10,
		Enemies: map[string]EnemyTemplate{
			"slime":    {Type: "slime", Name: "Slime", Icon: "🟢", HP: 30, Damage: 10, ScoreValue: 100, Difficulty: 1},
			"skeleton": {Type: "skeleton", Name: "Skeleton", Icon: "💀", HP: 50, Damage: 15, ScoreValue: 200, Difficulty: 2},
			"ghost":    {Type: "ghost", Name: "Ghost", Icon: "👻", HP: 40, Damage: 20, ScoreValue: 250, Difficulty: 2},
			"zombie":   {Type: "zombie", Name: "Zombie", Icon: "🧟", HP: 70, Damage: 18, ScoreValue: 300, Difficulty: 3},
			"demon":    {Type: "demon", Name: "Demon", Icon: "👹", HP: 90, Damage: 25, ScoreValue: 400, Difficulty: 4},
			"dragon":   {Type: "dragon", Name: "Dragon", Icon: "🐉", HP: 120, Damage: 30, ScoreValue: 500, Difficulty: 5},
		},
		EarlyPool: []string{"slime", "skeleton", "ghost"},
		MidPool:   []string{"skeleton", "ghost", "zombie"},
		LatePool:  []string{"zombie", "demon", "dragon"},
		Bosses: []EnemyTemplate{
			{Type: "lich_king", Name: "Lich King", Icon: "👑💀", HP: 200, Damage: 35, ScoreValue: 1000, Difficulty: 6},
			{Type: "ancient_dragon", Name: "Ancient Dragon", Icon: "🐲", HP: 250, Damage: 40, ScoreValue: 1200, Difficulty: 6},
			{Type: "demon_lord", Name: "Demon Lord", Icon: "😈", HP: 220, Damage: 38, ScoreValue: 1100, Difficulty: 6},
			{Type: "void_beast", Name: "Void Beast", Icon: "🌑", HP: 240, Damage: 42, ScoreValue: 1300, Difficulty: 6},
		},
		Powerups: []PowerupSpec{
			{ID: PowerupHealthPotion, Name: "Health Potion", Effect: EffectHeal, Value: 30, Chance: 0.30},
			{ID: PowerupShield, Name: "Shield", Effect: EffectShield, Value: 20, Chance: 0.25},
			{ID: PowerupDoubleDamage, Name: "Double Damage", Effect: EffectDamageBoost, Value: 2, Chance: 0.20},
			{ID: PowerupLuckyCoin, Name: "Lucky Coin", Effect: EffectScoreBoost, Value: 1.5, Chance: 0.25},
		},
	}
}

// Powerup returns the table entry for id.
func (c Config) Powerup(id PowerupID) (PowerupSpec, bool) {
	for _, p := range c.Powerups {
		if p.ID == id {
			return p, true
		}
	}
	return PowerupSpec{}, false
}
