package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/bot"
	"github.com/zaikaman/KaspaClash-sub007/internal/combat"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/rating"
)

// MatchRepo is the minimal repository interface required by the combat
// service. Using a small interface simplifies testing.
type MatchRepo interface {
	CreateMatch(m *game.Match) error
	GetMatchByCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	GetCharacterByKey(key string) (*game.Character, error)

	GetFighterByAddress(ctx context.Context, address string) (*game.Fighter, error)
	SaveFighter(ctx context.Context, f *game.Fighter) error
	UpsertFighter(ctx context.Context, address, displayName string) (*game.Fighter, error)
}

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchNotInProgress   = errors.New("match is not in progress")
	ErrMatchFull            = errors.New("match is full")
	ErrMovesLocked          = errors.New("moves are locked; resolving current turn")
	ErrNotAParticipant      = errors.New("player not in this match")
	ErrMoveAlreadySubmitted = errors.New("move already submitted this turn")
	ErrInvalidMove          = errors.New("invalid move")
	ErrInsufficientEnergy   = errors.New("not enough energy for that move")
	ErrUnknownCharacter     = errors.New("unknown character")
	ErrCannotJoinOwnMatch   = errors.New("cannot join your own match")
)

// BotAddress is the placeholder wallet of the house bot. Bot matches are
// never rated, so the address never reaches the fighter table.
const BotAddress = "bot"

// Service owns the combat loop: match lifecycle, move intake, turn
// resolution and the post-match rating update.
type Service struct {
	repo        MatchRepo
	bal         *game.Balance
	characters  map[string]game.Character
	resolver    *combat.Resolver
	updater     *rating.Updater
	moveTimeout time.Duration

	// newBotRand builds the randomness source for one bot decision.
	// Tests swap in scripted sources.
	newBotRand func() bot.Rand
}

// New wires a service over the repository, the resolved balance table and
// the configured character roster.
func New(repo MatchRepo, bal *game.Balance, roster []game.Character, moveTimeout time.Duration) *Service {
	chars := make(map[string]game.Character, len(roster))
	for _, c := range roster {
		chars[strings.ToLower(c.Key)] = c
	}
	return &Service{
		repo:        repo,
		bal:         bal,
		characters:  chars,
		resolver:    combat.NewResolver(bal),
		updater:     rating.NewUpdater(bal, repo),
		moveTimeout: moveTimeout,
		newBotRand: func() bot.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// characterFor returns the configured character for key, falling back to
// the balance defaults when the key is unknown (defensive; submissions
// validate the key up front).
func (s *Service) characterFor(key string) game.Character {
	if c, ok := s.characters[strings.ToLower(key)]; ok {
		return c
	}
	return game.Character{
		Key:         key,
		MaxHealth:   s.bal.StartingHealth,
		MaxEnergy:   s.bal.MaxEnergy,
		EnergyRegen: s.bal.EnergyRegen,
	}
}

// rosterKeys returns the configured character keys in map order.
func (s *Service) rosterKeys() []string {
	keys := make([]string, 0, len(s.characters))
	for k := range s.characters {
		keys = append(keys, k)
	}
	return keys
}
