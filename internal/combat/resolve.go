package combat

import "github.com/zaikaman/KaspaClash-sub007/internal/game"

// MoveOutcome describes one side of a resolved exchange.
type MoveOutcome struct {
	Move        game.MoveType `json:"move"`
	DamageDealt int           `json:"damage_dealt"`
	DamageTaken int           `json:"damage_taken"`
	// MoveSuccess is true when the move beat the opponent's move.
	MoveSuccess bool `json:"move_success"`
}

// RoundResolutionResult is the immutable outcome of one exchange of
// simultaneous moves. It is created once per exchange and persisted by the
// caller.
type RoundResolutionResult struct {
	Player1 MoveOutcome `json:"player1"`
	Player2 MoveOutcome `json:"player2"`

	// Winner is player1, player2 or draw. Draw happens only when both
	// sides are knocked out with equal damage dealt, or neither is knocked
	// out and damage dealt is equal.
	Winner     string `json:"winner"`
	IsKnockout bool   `json:"is_knockout"`

	Player1HealthAfter int `json:"player1_health_after"`
	Player2HealthAfter int `json:"player2_health_after"`
}

// ResolveRound adjudicates one exchange. Both damages are computed from
// the pre-round moves and healths, never sequentially, and health is
// clamped at zero.
func (r *Resolver) ResolveRound(p1Move, p2Move game.MoveType, p1Health, p2Health int) RoundResolutionResult {
	p1Damage := r.damageFor(p1Move, p2Move, p2Health)
	p2Damage := r.damageFor(p2Move, p1Move, p1Health)

	p1After := p1Health - p2Damage
	if p1After < 0 {
		p1After = 0
	}
	p2After := p2Health - p1Damage
	if p2After < 0 {
		p2After = 0
	}

	p1KO := p2After <= 0
	p2KO := p1After <= 0
	knockout := p1KO || p2KO

	var winner string
	switch {
	case p1KO && p2KO, !p1KO && !p2KO:
		// Double knockout or no knockout: higher damage dealt wins.
		switch {
		case p1Damage > p2Damage:
			winner = game.WinnerPlayer1
		case p2Damage > p1Damage:
			winner = game.WinnerPlayer2
		default:
			winner = game.WinnerDraw
		}
	case p1KO:
		winner = game.WinnerPlayer1
	default:
		winner = game.WinnerPlayer2
	}

	return RoundResolutionResult{
		Player1: MoveOutcome{
			Move:        p1Move,
			DamageDealt: p1Damage,
			DamageTaken: p2Damage,
			MoveSuccess: r.DoesMoveBeat(p1Move, p2Move),
		},
		Player2: MoveOutcome{
			Move:        p2Move,
			DamageDealt: p2Damage,
			DamageTaken: p1Damage,
			MoveSuccess: r.DoesMoveBeat(p2Move, p1Move),
		},
		Winner:             winner,
		IsKnockout:         knockout,
		Player1HealthAfter: p1After,
		Player2HealthAfter: p2After,
	}
}
