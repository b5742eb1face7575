package service

import (
	"context"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
)

// HandleTimedOutMatch applies timeout resolution to a match whose move
// deadline has passed: every side that has not submitted is given an
// automatic punch (or its forced stunned move), then the turn resolves
// normally. Persistent idlers lose by knockout eventually rather than
// stalling the match forever.
func (s *Service) HandleTimedOutMatch(ctx context.Context, m *game.Match) error {
	if m.Status != game.StatusInProgress || m.Phase != game.PhasePlanning {
		return nil
	}

	if m.VsBot && !m.Player2.HasSubmitted {
		s.submitBotMove(m)
	}
	for _, side := range []*game.Combatant{&m.Player1, &m.Player2} {
		if side.HasSubmitted {
			continue
		}
		mv := game.MovePunch
		if side.Stunned {
			mv = game.MoveStunned
		}
		side.PendingMove = mv
		side.HasSubmitted = true
		logging.Info("auto-submitting move for idle player", logging.Fields{
			constants.LogFieldMatchCode: m.MatchCode,
			constants.LogFieldAddress:   side.Address,
			constants.LogFieldMove:      string(mv),
		})
	}

	s.resolveTurn(m)
	if m.Status == game.StatusFinished {
		s.finishMatch(ctx, m, "")
	} else {
		m.MoveDeadline = time.Now().Add(s.moveTimeout)
	}
	return s.repo.UpdateMatch(m)
}

// ExpireWaitingMatch closes a lobby nobody joined.
func (s *Service) ExpireWaitingMatch(m *game.Match) error {
	if m.Status != game.StatusWaitingForOpponent {
		return nil
	}
	m.Status = game.StatusFinished
	m.Phase = game.PhaseResolved
	m.RatingsCounted = true
	m.Message = "Match expired: no opponent joined."
	logging.Info("expiring unjoined match", logging.Fields{
		constants.LogFieldMatchCode: m.MatchCode,
	})
	return s.repo.UpdateMatch(m)
}
