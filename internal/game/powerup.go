package game

import "fmt"

// RollDrop tests each powerup in table order and returns the first one whose
// roll succeeds.
func (c Config) RollDrop(rng Rand) (PowerupID, bool) {
	for _, p := range c.Powerups {
		if rng.Float64() < p.Chance {
			return p.ID, true
		}
	}
	return "", false
}

// applyPowerup removes id from the inventory and applies its effect.
func (c Config) applyPowerup(s *State, id PowerupID) error {
	spec, ok := c.Powerup(id)
	if !ok || !s.HasPowerup(id) {
		return fmt.Errorf("use %q: %w", id, ErrInvalidPowerup)
	}
	s.removePowerup(id)

	switch spec.Effect {
	case EffectHeal:
		s.Player.HP = min(s.Player.MaxHP, s.Player.HP+int(spec.Value))
	case EffectShield:
		s.Player.Shield += int(spec.Value)
	case EffectDamageBoost:
		s.Player.DamageBoost *= spec.Value
		s.ActivePowerups[string(spec.Effect)] = true
	case EffectScoreBoost:
		s.Player.ScoreBoost *= spec.Value
		s.ActivePowerups[string(spec.Effect)] = true
	}
	return nil
}
