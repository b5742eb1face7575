package storage

import (
	"context"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

type Repository interface {
	// Character roster. Combat stats come from the config file, not the
	// database rows.
	GetCharacters() ([]game.Character, error)
	GetCharacterByKey(key string) (*game.Character, error)

	CreateMatch(m *game.Match) error
	GetMatchByCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	// GetOpenMatches returns recent matches still waiting for an opponent.
	GetOpenMatches() ([]game.Match, error)
	// FindTimedOutMatches returns matches that are in progress, in the
	// planning phase and whose move deadline is at or before the provided
	// time. The caller decides how to resolve them (for example, forcing
	// the slow side's move).
	FindTimedOutMatches(now time.Time) ([]game.Match, error)
	// FindStaleWaitingMatches returns lobbies still waiting for an
	// opponent that were created at or before the cutoff.
	FindStaleWaitingMatches(cutoff time.Time) ([]game.Match, error)

	// Fighter profiles. These satisfy rating.PlayerStore.
	GetFighterByAddress(ctx context.Context, address string) (*game.Fighter, error)
	SaveFighter(ctx context.Context, f *game.Fighter) error
	// UpsertFighter returns the existing profile for the address, creating
	// one at the default rating when none exists.
	UpsertFighter(ctx context.Context, address, displayName string) (*game.Fighter, error)
	// Leaderboard
	GetTopFighters(limit int) ([]game.Fighter, error)
}
