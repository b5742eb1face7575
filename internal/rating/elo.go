package rating

import (
	"math"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

// Elo carries the rating math over an injected balance table.
type Elo struct {
	bal *game.Balance
}

// NewElo returns the calculator bound to the given balance table.
func NewElo(bal *game.Balance) *Elo {
	return &Elo{bal: bal}
}

// ExpectedScore returns the probability of player A beating player B
// under the standard logistic curve.
func (e *Elo) ExpectedScore(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
}

// KFactor returns the K-factor for a player with the given game count.
// New players move faster through the ladder.
func (e *Elo) KFactor(gamesPlayed int) int {
	if gamesPlayed < e.bal.NewPlayerGames {
		return e.bal.KFactorNew
	}
	return e.bal.KFactorStandard
}

// RatingChange returns the signed rating delta for one side of a match.
func (e *Elo) RatingChange(playerRating, opponentRating, gamesPlayed int, won bool) int {
	actual := 0.0
	if won {
		actual = 1.0
	}
	expected := e.ExpectedScore(playerRating, opponentRating)
	k := float64(e.KFactor(gamesPlayed))
	return int(math.Round(k * (actual - expected)))
}

// ClampRating bounds r to the configured rating window.
func (e *Elo) ClampRating(r int) int {
	if r < e.bal.MinRating {
		return e.bal.MinRating
	}
	if r > e.bal.MaxRating {
		return e.bal.MaxRating
	}
	return r
}
