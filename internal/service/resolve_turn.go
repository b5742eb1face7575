package service

import (
	"fmt"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/combat"
	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
)

// resolveTurn adjudicates one exchange once both pending moves are set.
// It mutates the match in memory only; callers persist it.
func (s *Service) resolveTurn(m *game.Match) {
	p1 := &m.Player1
	p2 := &m.Player2
	m.Phase = game.PhaseResolving

	// A stunned side cannot act, whatever was stored.
	if p1.Stunned {
		p1.PendingMove = game.MoveStunned
	}
	if p2.Stunned {
		p2.PendingMove = game.MoveStunned
	}

	// Energy: pay the move, then regenerate. A staggered side skips its
	// regeneration this turn.
	s.applyEnergy(p1)
	s.applyEnergy(p2)

	res := s.resolver.ResolveRound(p1.PendingMove, p2.PendingMove, p1.Health, p2.Health)
	p1.Health = res.Player1HealthAfter
	p2.Health = res.Player2HealthAfter

	// Stun and stagger each last exactly one turn.
	if p1.PendingMove == game.MoveStunned {
		p1.Stunned = false
	}
	if p2.PendingMove == game.MoveStunned {
		p2.Stunned = false
	}
	p1.Staggered = false
	p2.Staggered = false

	s.applyGuard(p1, p2.PendingMove)
	s.applyGuard(p2, p1.PendingMove)

	// A special that lands staggers the defender for the next turn.
	if p1.PendingMove == game.MoveSpecial && res.Player1.DamageDealt > 0 {
		p2.Staggered = true
	}
	if p2.PendingMove == game.MoveSpecial && res.Player2.DamageDealt > 0 {
		p1.Staggered = true
	}

	recordMove(p1)
	recordMove(p2)

	summary := fmt.Sprintf("%s used %s for %d damage; %s used %s for %d damage.",
		p1.DisplayName, p1.PendingMove, res.Player1.DamageDealt,
		p2.DisplayName, p2.PendingMove, res.Player2.DamageDealt)

	if res.IsKnockout {
		switch res.Winner {
		case game.WinnerPlayer1:
			p1.RoundsWon++
			summary += fmt.Sprintf(" %s wins round %d by knockout.", p1.DisplayName, m.RoundNumber)
		case game.WinnerPlayer2:
			p2.RoundsWon++
			summary += fmt.Sprintf(" %s wins round %d by knockout.", p2.DisplayName, m.RoundNumber)
		default:
			summary += fmt.Sprintf(" Round %d ends in a double knockout draw.", m.RoundNumber)
		}

		if combat.IsMatchOver(p1.RoundsWon, p2.RoundsWon, s.bal.RoundsToWin) {
			m.Status = game.StatusFinished
			m.Phase = game.PhaseResolved
			m.Winner = combat.MatchWinner(p1.RoundsWon, p2.RoundsWon, s.bal.RoundsToWin)
			m.Message = "The match is over."
			m.MoveDeadline = time.Time{}
		} else {
			s.startNextRound(m)
		}
	} else {
		m.TurnNumber++
		m.Phase = game.PhasePlanning
	}

	m.LastTurnSummary = summary
	p1.HasSubmitted = false
	p2.HasSubmitted = false
	p1.PendingMove = ""
	p2.PendingMove = ""

	logging.Info("turn resolved", logging.Fields{
		constants.LogFieldMatchCode: m.MatchCode,
		constants.LogFieldRound:     m.RoundNumber,
		constants.LogFieldTurn:      m.TurnNumber,
		constants.LogFieldWinner:    res.Winner,
		"knockout":                  res.IsKnockout,
	})
}

// startNextRound carries health over (floored at the configured minimum)
// and clears the per-round state.
func (s *Service) startNextRound(m *game.Match) {
	m.RoundNumber++
	m.TurnNumber = 1
	m.Phase = game.PhasePlanning
	for _, side := range []*game.Combatant{&m.Player1, &m.Player2} {
		side.Health = combat.NextRoundHealth(side.Health, s.bal.MinRoundStartHealth)
		side.Guard = 0
		side.Stunned = false
		side.Staggered = false
		side.ConsecutiveBlocks = 0
		side.ConsecutiveAttacks = 0
	}
}

// applyEnergy pays the pending move's cost and applies the character's
// regeneration, capped at the character's maximum.
func (s *Service) applyEnergy(side *game.Combatant) {
	c := s.characterFor(side.CharacterKey)
	side.Energy -= s.bal.MoveCost(side.PendingMove)
	if side.Energy < 0 {
		side.Energy = 0
	}
	if !side.Staggered {
		side.Energy += c.EnergyRegen
	}
	if side.Energy > c.MaxEnergy {
		side.Energy = c.MaxEnergy
	}
}

// applyGuard advances one side's guard meter. Blocking builds guard (more
// when the block absorbed an attack); anything else decays it. Crossing
// the threshold breaks the guard: the meter resets and the side is
// stunned for the next turn.
func (s *Service) applyGuard(side *game.Combatant, oppMove game.MoveType) {
	if side.PendingMove == game.MoveBlock {
		side.Guard += s.bal.GuardBuildupOnBlock
		if isAttackMove(oppMove) {
			side.Guard += s.bal.GuardBuildupOnHit
		}
		if side.Guard >= s.bal.GuardBreakThreshold {
			side.Guard = 0
			side.Stunned = true
		}
		return
	}
	side.Guard -= s.bal.GuardDecay
	if side.Guard < 0 {
		side.Guard = 0
	}
}

// recordMove updates the streak counters the bot predicts from.
func recordMove(side *game.Combatant) {
	mv := side.PendingMove
	side.LastMove = mv
	switch {
	case mv == game.MoveBlock:
		side.ConsecutiveBlocks++
		side.ConsecutiveAttacks = 0
	case isAttackMove(mv):
		side.ConsecutiveAttacks++
		side.ConsecutiveBlocks = 0
	default:
		side.ConsecutiveBlocks = 0
		side.ConsecutiveAttacks = 0
	}
}

func isAttackMove(m game.MoveType) bool {
	return m == game.MovePunch || m == game.MoveKick || m == game.MoveSpecial
}
