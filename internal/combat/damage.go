package combat

import (
	"math"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

// Resolver computes damage and round outcomes from a balance table. It is
// pure and stateless: safe for unlimited concurrent use.
type Resolver struct {
	bal *game.Balance
}

// NewResolver returns a resolver bound to the given balance table.
func NewResolver(bal *game.Balance) *Resolver {
	return &Resolver{bal: bal}
}

// DoesMoveBeat reports whether a's beats-set contains b.
func (r *Resolver) DoesMoveBeat(a, b game.MoveType) bool {
	for _, m := range r.bal.Moves[a].Beats {
		if m == b {
			return true
		}
	}
	return false
}

// MoveAdvantage returns +1 when m1 beats m2, -1 when m2 beats m1 and 0
// otherwise. The beats-sets are asymmetric: a draw occurs when both or
// neither beats the other.
func (r *Resolver) MoveAdvantage(m1, m2 game.MoveType) int {
	b1 := r.DoesMoveBeat(m1, m2)
	b2 := r.DoesMoveBeat(m2, m1)
	switch {
	case b1 && !b2:
		return 1
	case b2 && !b1:
		return -1
	default:
		return 0
	}
}

// CalculateDamage returns the damage the attacker's move deals against the
// defender's move.
func (r *Resolver) CalculateDamage(attacker, defender game.MoveType) int {
	base := r.bal.MoveDamage(attacker)
	switch {
	case r.DoesMoveBeat(attacker, defender):
		return int(math.Floor(float64(base) * r.bal.CounterBonus))
	case r.DoesMoveBeat(defender, attacker):
		return 0
	case attacker == defender:
		return int(math.Floor(float64(base) * r.bal.SameMoveMultiplier))
	default:
		// Neutral matchup. Unreachable for the selectable move set (the
		// attack cycle plus block-beats-all), but exercised by attacks
		// against a stunned fighter and kept for future move types.
		return base
	}
}

// CalculateSpecialDamage returns the damage of a special attack against
// the defender's move at the defender's current health. The counter bonus
// and the low-health bonus stack multiplicatively, each floored in
// sequence.
func (r *Resolver) CalculateSpecialDamage(defenderMove game.MoveType, defenderHealth int) int {
	if r.DoesMoveBeat(defenderMove, game.MoveSpecial) {
		return 0
	}
	dmg := r.bal.MoveDamage(game.MoveSpecial)
	if defenderMove == game.MoveSpecial {
		return int(math.Floor(float64(dmg) * r.bal.SameMoveMultiplier))
	}
	if r.DoesMoveBeat(game.MoveSpecial, defenderMove) {
		dmg = int(math.Floor(float64(dmg) * r.bal.CounterBonus))
	}
	threshold := int(math.Floor(float64(r.bal.StartingHealth) * r.bal.LowHealthThreshold))
	if defenderHealth <= threshold {
		dmg = int(math.Floor(float64(dmg) * r.bal.LowHealthBonus))
	}
	return dmg
}

// damageFor picks the special-aware calculator when the side played
// special, the generic one otherwise.
func (r *Resolver) damageFor(attackerMove, defenderMove game.MoveType, defenderHealth int) int {
	if attackerMove == game.MoveSpecial {
		return r.CalculateSpecialDamage(defenderMove, defenderHealth)
	}
	return r.CalculateDamage(attackerMove, defenderMove)
}
