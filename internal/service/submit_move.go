package service

import (
	"context"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/bot"
	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
)

// SubmitMove stores a player's chosen move and resolves the turn once
// both sides have submitted. In bot matches the bot's move is obtained
// right after the human's. Returns the updated match and whether the
// turn was resolved.
func (s *Service) SubmitMove(ctx context.Context, matchCode, address string, move game.MoveType) (*game.Match, bool, error) {
	m, err := s.repo.GetMatchByCode(matchCode)
	if err != nil || m == nil {
		return nil, false, ErrMatchNotFound
	}
	if m.Status != game.StatusInProgress {
		return nil, false, ErrMatchNotInProgress
	}
	if m.Phase != game.PhasePlanning {
		return nil, false, ErrMovesLocked
	}
	side := m.SideOf(address)
	if side == nil {
		return nil, false, ErrNotAParticipant
	}
	if side.HasSubmitted {
		return nil, false, ErrMoveAlreadySubmitted
	}

	if side.Stunned {
		// The stun overrides whatever was submitted.
		move = game.MoveStunned
	} else {
		if !game.IsPlayerMove(move) {
			return nil, false, ErrInvalidMove
		}
		if side.Energy < s.bal.MoveCost(move) {
			return nil, false, ErrInsufficientEnergy
		}
	}
	side.PendingMove = move
	side.HasSubmitted = true

	if m.VsBot && !m.Player2.HasSubmitted {
		s.submitBotMove(m)
	}

	resolved := false
	if m.Player1.HasSubmitted && m.Player2.HasSubmitted {
		s.resolveTurn(m)
		if m.Status == game.StatusFinished {
			s.finishMatch(ctx, m, "")
		} else {
			m.MoveDeadline = time.Now().Add(s.moveTimeout)
		}
		resolved = true
	}

	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, resolved, err
	}
	logging.Info("move submitted", logging.Fields{
		constants.LogFieldMatchCode: m.MatchCode,
		constants.LogFieldAddress:   address,
		constants.LogFieldMove:      string(move),
		constants.LogFieldTurn:      m.TurnNumber,
	})
	return m, resolved, nil
}

// submitBotMove rebuilds the bot engine from the persisted match state
// and records its decision as player2's pending move.
func (s *Service) submitBotMove(m *game.Match) {
	engine := bot.NewEngine(s.bal, s.newBotRand())
	engine.SetContext(s.botContextFrom(m))

	d := engine.Decide()
	move := d.Move
	if m.Player2.Stunned {
		move = game.MoveStunned
	}
	m.Player2.PendingMove = move
	m.Player2.HasSubmitted = true
	logging.Info("bot move decided", logging.Fields{
		constants.LogFieldMatchCode: m.MatchCode,
		constants.LogFieldMove:      string(d.Move),
		"confidence":                d.Confidence,
		"reasoning":                 d.Reasoning,
	})
}

// botContextFrom maps match columns onto the bot's decision context. The
// bot always sits in the player2 seat.
func (s *Service) botContextFrom(m *game.Match) bot.Context {
	b := &m.Player2
	opp := &m.Player1
	return bot.Context{
		BotHealth:      b.Health,
		OpponentHealth: opp.Health,
		BotEnergy:      b.Energy,
		OpponentEnergy: opp.Energy,
		BotGuard:       b.Guard,
		OpponentGuard:  opp.Guard,

		BotStunned:        b.Stunned,
		OpponentStunned:   opp.Stunned,
		BotStaggered:      b.Staggered,
		OpponentStaggered: opp.Staggered,

		RoundNumber: m.RoundNumber,
		TurnNumber:  m.TurnNumber,

		BotRoundsWon:      b.RoundsWon,
		OpponentRoundsWon: opp.RoundsWon,

		OpponentConsecutiveBlocks:  opp.ConsecutiveBlocks,
		OpponentConsecutiveAttacks: opp.ConsecutiveAttacks,

		LastOpponentMove: opp.LastMove,
		LastBotMove:      b.LastMove,
	}
}
