package service

import (
	"context"
	"strings"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/bot"
	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
)

// CreateMatchRequest carries everything needed to open a match.
type CreateMatchRequest struct {
	MatchCode    string
	Address      string
	DisplayName  string
	CharacterKey string
	VsBot        bool
}

// CreateMatch opens a new match for the creator. Bot matches start
// immediately; human matches wait for an opponent to join.
func (s *Service) CreateMatch(ctx context.Context, req CreateMatchRequest) (*game.Match, error) {
	if _, ok := s.characters[normalizeKey(req.CharacterKey)]; !ok {
		return nil, ErrUnknownCharacter
	}
	if _, err := s.repo.UpsertFighter(ctx, req.Address, req.DisplayName); err != nil {
		return nil, err
	}

	m := &game.Match{
		MatchCode: req.MatchCode,
		Status:    game.StatusWaitingForOpponent,
		Phase:     game.PhasePlanning,
		VsBot:     req.VsBot,
		Player1:   s.initCombatant(req.Address, req.DisplayName, req.CharacterKey),
	}

	if req.VsBot {
		m.Player2 = s.initCombatant(BotAddress, bot.GenerateBotName(), s.pickBotCharacter())
		s.beginMatch(m)
	} else {
		m.Message = "Waiting for an opponent."
	}

	if err := s.repo.CreateMatch(m); err != nil {
		return nil, err
	}
	logging.Info("match created", logging.Fields{
		constants.LogFieldMatchCode: m.MatchCode,
		constants.LogFieldAddress:   req.Address,
		"vs_bot":                    req.VsBot,
	})
	return m, nil
}

// JoinMatch seats the second player and starts the match.
func (s *Service) JoinMatch(ctx context.Context, matchCode, address, displayName, characterKey string) (*game.Match, error) {
	m, err := s.repo.GetMatchByCode(matchCode)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Status != game.StatusWaitingForOpponent {
		return nil, ErrMatchFull
	}
	if m.Player1.Address == address {
		return nil, ErrCannotJoinOwnMatch
	}
	if _, ok := s.characters[normalizeKey(characterKey)]; !ok {
		return nil, ErrUnknownCharacter
	}
	if _, err := s.repo.UpsertFighter(ctx, address, displayName); err != nil {
		return nil, err
	}

	m.Player2 = s.initCombatant(address, displayName, characterKey)
	s.beginMatch(m)

	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	logging.Info("match joined", logging.Fields{
		constants.LogFieldMatchCode: m.MatchCode,
		constants.LogFieldAddress:   address,
	})
	return m, nil
}

// initCombatant builds a round-one combatant from its character sheet.
func (s *Service) initCombatant(address, displayName, characterKey string) game.Combatant {
	c := s.characterFor(characterKey)
	energy := s.bal.StartingEnergy
	if energy > c.MaxEnergy {
		energy = c.MaxEnergy
	}
	return game.Combatant{
		Address:      address,
		DisplayName:  displayName,
		CharacterKey: c.Key,
		Health:       c.MaxHealth,
		Energy:       energy,
	}
}

// beginMatch flips a fully seated match into the first planning phase.
func (s *Service) beginMatch(m *game.Match) {
	m.Status = game.StatusInProgress
	m.Phase = game.PhasePlanning
	m.RoundNumber = 1
	m.TurnNumber = 1
	m.Message = "The match has started. Choose your moves."
	m.MoveDeadline = time.Now().Add(s.moveTimeout)
}

// pickBotCharacter chooses a roster character for the house bot.
func (s *Service) pickBotCharacter() string {
	keys := s.rosterKeys()
	if len(keys) == 0 {
		return ""
	}
	return keys[int(s.newBotRand().Float64()*float64(len(keys)))%len(keys)]
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
