package bot

import "github.com/zaikaman/KaspaClash-sub007/internal/game"

// Context is the explicit, caller-visible state one engine instance
// reasons over. The external combat loop owns the source of truth and
// pushes snapshots in via UpdateContext/SetContext before each decision,
// which keeps the state serializable across process restarts.
type Context struct {
	BotHealth      int `json:"bot_health"`
	OpponentHealth int `json:"opponent_health"`
	BotEnergy      int `json:"bot_energy"`
	OpponentEnergy int `json:"opponent_energy"`
	BotGuard       int `json:"bot_guard"`
	OpponentGuard  int `json:"opponent_guard"`

	BotStunned        bool `json:"bot_stunned"`
	OpponentStunned   bool `json:"opponent_stunned"`
	BotStaggered      bool `json:"bot_staggered"`
	OpponentStaggered bool `json:"opponent_staggered"`

	RoundNumber int `json:"round_number"`
	TurnNumber  int `json:"turn_number"`

	BotRoundsWon      int `json:"bot_rounds_won"`
	OpponentRoundsWon int `json:"opponent_rounds_won"`

	OpponentConsecutiveBlocks  int `json:"opponent_consecutive_blocks"`
	OpponentConsecutiveAttacks int `json:"opponent_consecutive_attacks"`

	LastOpponentMove game.MoveType `json:"last_opponent_move"`
	LastBotMove      game.MoveType `json:"last_bot_move"`
}

// ContextUpdate shallow-merges into the engine context: nil fields leave
// the current value untouched.
type ContextUpdate struct {
	BotHealth      *int
	OpponentHealth *int
	BotEnergy      *int
	OpponentEnergy *int
	BotGuard       *int
	OpponentGuard  *int

	BotStunned        *bool
	OpponentStunned   *bool
	BotStaggered      *bool
	OpponentStaggered *bool

	RoundNumber *int
	TurnNumber  *int

	BotRoundsWon      *int
	OpponentRoundsWon *int

	OpponentConsecutiveBlocks  *int
	OpponentConsecutiveAttacks *int
}

func (c *Context) apply(u ContextUpdate) {
	if u.BotHealth != nil {
		c.BotHealth = *u.BotHealth
	}
	if u.OpponentHealth != nil {
		c.OpponentHealth = *u.OpponentHealth
	}
	if u.BotEnergy != nil {
		c.BotEnergy = *u.BotEnergy
	}
	if u.OpponentEnergy != nil {
		c.OpponentEnergy = *u.OpponentEnergy
	}
	if u.BotGuard != nil {
		c.BotGuard = *u.BotGuard
	}
	if u.OpponentGuard != nil {
		c.OpponentGuard = *u.OpponentGuard
	}
	if u.BotStunned != nil {
		c.BotStunned = *u.BotStunned
	}
	if u.OpponentStunned != nil {
		c.OpponentStunned = *u.OpponentStunned
	}
	if u.BotStaggered != nil {
		c.BotStaggered = *u.BotStaggered
	}
	if u.OpponentStaggered != nil {
		c.OpponentStaggered = *u.OpponentStaggered
	}
	if u.RoundNumber != nil {
		c.RoundNumber = *u.RoundNumber
	}
	if u.TurnNumber != nil {
		c.TurnNumber = *u.TurnNumber
	}
	if u.BotRoundsWon != nil {
		c.BotRoundsWon = *u.BotRoundsWon
	}
	if u.OpponentRoundsWon != nil {
		c.OpponentRoundsWon = *u.OpponentRoundsWon
	}
	if u.OpponentConsecutiveBlocks != nil {
		c.OpponentConsecutiveBlocks = *u.OpponentConsecutiveBlocks
	}
	if u.OpponentConsecutiveAttacks != nil {
		c.OpponentConsecutiveAttacks = *u.OpponentConsecutiveAttacks
	}
}
