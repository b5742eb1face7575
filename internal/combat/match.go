package combat

import "github.com/zaikaman/KaspaClash-sub007/internal/game"

// IsMatchOver reports whether either side reached the required round wins.
func IsMatchOver(p1RoundsWon, p2RoundsWon, roundsToWin int) bool {
	return p1RoundsWon >= roundsToWin || p2RoundsWon >= roundsToWin
}

// MatchWinner returns the side that reached the threshold, or "" when the
// match is still open.
func MatchWinner(p1RoundsWon, p2RoundsWon, roundsToWin int) string {
	if p1RoundsWon >= roundsToWin {
		return game.WinnerPlayer1
	}
	if p2RoundsWon >= roundsToWin {
		return game.WinnerPlayer2
	}
	return ""
}

// NextRoundHealth floors the carried-over health for the next round so a
// knocked-out fighter never starts a round at zero.
func NextRoundHealth(currentHealth, minHealth int) int {
	if currentHealth < minHealth {
		return minHealth
	}
	return currentHealth
}
