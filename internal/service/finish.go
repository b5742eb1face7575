package service

import (
	"context"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/dedupe"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
	"github.com/zaikaman/KaspaClash-sub007/internal/rating"
)

// Resign ends the match immediately: the resigner takes the loss and the
// opponent the win.
func (s *Service) Resign(ctx context.Context, matchCode, address string) (*game.Match, error) {
	m, err := s.repo.GetMatchByCode(matchCode)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Status != game.StatusInProgress {
		return nil, ErrMatchNotInProgress
	}
	side := m.SideOf(address)
	if side == nil {
		return nil, ErrNotAParticipant
	}

	m.Status = game.StatusFinished
	m.Phase = game.PhaseResolved
	m.MoveDeadline = time.Time{}
	if side == &m.Player1 {
		m.Winner = game.WinnerPlayer2
	} else {
		m.Winner = game.WinnerPlayer1
	}
	m.Message = side.DisplayName + " resigned."

	s.finishMatch(ctx, m, address)
	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// finishMatch runs the post-match rating update exactly once per match.
// RatingsCounted guards re-entry (resign handler and deadline scanner can
// both reach match end); the singleflight group serializes concurrent
// callers racing on the same match code.
func (s *Service) finishMatch(ctx context.Context, m *game.Match, resignedAddress string) {
	if m.Status != game.StatusFinished || m.RatingsCounted {
		return
	}
	m.RatingsCounted = true

	if m.VsBot || m.Winner == "" {
		return
	}
	winner, loser := &m.Player1, &m.Player2
	if m.Winner == game.WinnerPlayer2 {
		winner, loser = loser, winner
	}

	v, err, _ := dedupe.RatingsGroup.Do(m.MatchCode, func() (interface{}, error) {
		return s.updater.UpdateMatchRatings(ctx, winner.Address, loser.Address), nil
	})
	if err != nil {
		logging.Error("rating update failed", err, logging.Fields{
			constants.LogFieldMatchCode: m.MatchCode,
		})
		return
	}
	res := v.(rating.Result)
	fields := logging.Fields{
		constants.LogFieldMatchCode: m.MatchCode,
		constants.LogFieldWinner:    winner.Address,
		constants.LogFieldStatus:    string(res.Status),
		"winner_delta":              res.Winner.Delta,
		"loser_delta":               res.Loser.Delta,
	}
	if resignedAddress != "" {
		fields["resigned"] = resignedAddress
	}
	if res.Status != rating.StatusApplied {
		logging.Error("rating update incomplete", res.Err, fields)
		return
	}
	logging.Info("ratings applied", fields)
}
