package rating

import (
	"context"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

// PlayerStore is the persistence surface the rating update needs. The
// sqlite repository satisfies it; tests plug in mocks.
type PlayerStore interface {
	GetFighterByAddress(ctx context.Context, address string) (*game.Fighter, error)
	SaveFighter(ctx context.Context, f *game.Fighter) error
}

// Status reports how far a rating update got. The two writes are not a
// transaction: the winner is written first, and a loser-side failure
// leaves the winner's change in place.
type Status string

const (
	StatusApplied        Status = "applied"
	StatusPartialFailure Status = "partial_failure"
	StatusFailed         Status = "failed"
)

// Change describes one side's rating movement. Applied is false when the
// write never happened.
type Change struct {
	Address   string `json:"address"`
	OldRating int    `json:"old_rating"`
	NewRating int    `json:"new_rating"`
	Delta     int    `json:"delta"`
	Applied   bool   `json:"applied"`
}

// Result is the typed outcome of UpdateMatchRatings. Callers must treat
// anything but StatusApplied as "may have partially applied" and avoid
// blind retries that double-count.
type Result struct {
	Status Status `json:"status"`
	Winner Change `json:"winner"`
	Loser  Change `json:"loser"`
	Err    error  `json:"-"`
}

// Updater applies post-match ELO changes through a PlayerStore.
type Updater struct {
	elo   *Elo
	bal   *game.Balance
	store PlayerStore
}

// NewUpdater returns an updater over the given balance table and store.
func NewUpdater(bal *game.Balance, store PlayerStore) *Updater {
	return &Updater{elo: NewElo(bal), bal: bal, store: store}
}

// UpdateMatchRatings loads both fighters, computes both deltas from the
// pre-match ratings (each side's K-factor from its own game count),
// writes the winner, then the loser. Serialization of concurrent calls
// for the same pair is the caller's job.
func (u *Updater) UpdateMatchRatings(ctx context.Context, winnerAddr, loserAddr string) Result {
	winner, err := u.store.GetFighterByAddress(ctx, winnerAddr)
	if err != nil {
		return u.failed(winnerAddr, loserAddr, err)
	}
	loser, err := u.store.GetFighterByAddress(ctx, loserAddr)
	if err != nil {
		return u.failed(winnerAddr, loserAddr, err)
	}

	winnerDelta := u.elo.RatingChange(winner.Rating, loser.Rating, winner.GamesPlayed(), true)
	loserDelta := u.elo.RatingChange(loser.Rating, winner.Rating, loser.GamesPlayed(), false)

	winnerChange := Change{
		Address:   winnerAddr,
		OldRating: winner.Rating,
		NewRating: u.elo.ClampRating(winner.Rating + winnerDelta),
		Delta:     winnerDelta,
	}
	loserChange := Change{
		Address:   loserAddr,
		OldRating: loser.Rating,
		NewRating: u.elo.ClampRating(loser.Rating + loserDelta),
		Delta:     loserDelta,
	}

	winner.Rating = winnerChange.NewRating
	winner.Wins++
	if err := u.store.SaveFighter(ctx, winner); err != nil {
		return Result{Status: StatusFailed, Winner: winnerChange, Loser: loserChange, Err: err}
	}
	winnerChange.Applied = true

	loser.Rating = loserChange.NewRating
	loser.Losses++
	if err := u.store.SaveFighter(ctx, loser); err != nil {
		return Result{Status: StatusPartialFailure, Winner: winnerChange, Loser: loserChange, Err: err}
	}
	loserChange.Applied = true

	return Result{Status: StatusApplied, Winner: winnerChange, Loser: loserChange}
}

// failed builds the default-rating stub result used when the fighters
// cannot even be loaded.
func (u *Updater) failed(winnerAddr, loserAddr string, err error) Result {
	stub := func(addr string) Change {
		return Change{Address: addr, OldRating: u.bal.DefaultRating, NewRating: u.bal.DefaultRating}
	}
	return Result{Status: StatusFailed, Winner: stub(winnerAddr), Loser: stub(loserAddr), Err: err}
}
