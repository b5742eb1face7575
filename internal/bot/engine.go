package bot

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

// Rand is the randomness source the engine draws from. *math/rand.Rand
// satisfies it; tests inject a scripted sequence.
type Rand interface {
	Float64() float64
}

// Decision-rule tuning. These govern how the bot plays, not how combat
// resolves, so they live here rather than in the balance table.
const (
	highEnergyThreshold = 70

	blockStreakTrigger  = 2
	attackStreakTrigger = 2

	defensiveBlockChance       = 0.40
	opportunisticSpecialChance = 0.30

	predictPunchBlockChance   = 0.40
	predictKickBlockChance    = 0.35
	predictBlockSpecialChance = 0.40
	predictSpecialPunchChance = 0.35

	weightPunch   = 30
	weightKick    = 25
	weightBlock   = 25
	weightSpecial = 20
	// Weight shifted onto punch when kick is unaffordable, and the
	// repeat-move penalty with its floor.
	kickFallbackBonus = 15
	repeatPenalty     = 10
	repeatFloor       = 5
)

// Decision is the engine's output for one turn.
type Decision struct {
	Move       game.MoveType `json:"move"`
	Confidence float64       `json:"confidence"`
	Reasoning  string        `json:"reasoning"`
}

// Engine picks the bot's move through a fixed priority cascade over its
// context. One engine instance serves one bot in one match; it is not
// safe for concurrent use.
type Engine struct {
	bal *game.Balance
	rng Rand

	ctx     Context
	history []HistoryEntry
}

// HistoryEntry records one observed move for post-match analysis.
type HistoryEntry struct {
	Turn    int           `json:"turn"`
	Round   int           `json:"round"`
	BotMove bool          `json:"bot_move"`
	Move    game.MoveType `json:"move"`
}

// NewEngine returns an engine over the given balance table. A nil rng
// gets a time-seeded source.
func NewEngine(bal *game.Balance, rng Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{bal: bal, rng: rng}
	e.Reset()
	return e
}

// Reset restores the full match-start state.
func (e *Engine) Reset() {
	e.ctx = Context{
		BotHealth:      e.bal.StartingHealth,
		OpponentHealth: e.bal.StartingHealth,
		BotEnergy:      e.bal.StartingEnergy,
		OpponentEnergy: e.bal.StartingEnergy,
		RoundNumber:    1,
		TurnNumber:     1,
	}
	e.history = nil
}

// ResetRound restores per-round state for the next round while keeping
// rounds-won tallies and the prediction memory of last moves.
func (e *Engine) ResetRound() {
	e.ctx.BotHealth = e.bal.StartingHealth
	e.ctx.OpponentHealth = e.bal.StartingHealth
	e.ctx.BotEnergy = e.bal.StartingEnergy
	e.ctx.OpponentEnergy = e.bal.StartingEnergy
	e.ctx.BotGuard = 0
	e.ctx.OpponentGuard = 0
	e.ctx.BotStunned = false
	e.ctx.OpponentStunned = false
	e.ctx.BotStaggered = false
	e.ctx.OpponentStaggered = false
	e.ctx.OpponentConsecutiveBlocks = 0
	e.ctx.OpponentConsecutiveAttacks = 0
	e.ctx.RoundNumber++
	e.ctx.TurnNumber = 1
}

// Context returns a copy of the current decision context.
func (e *Engine) Context() Context {
	return e.ctx
}

// SetContext replaces the decision context wholesale. Used when the
// engine is rebuilt from persisted match state.
func (e *Engine) SetContext(ctx Context) {
	e.ctx = ctx
}

// UpdateContext merges the non-nil fields of u into the context.
func (e *Engine) UpdateContext(u ContextUpdate) {
	e.ctx.apply(u)
}

// RecordOpponentMove feeds an observed opponent move into the streak
// counters and prediction memory.
func (e *Engine) RecordOpponentMove(m game.MoveType) {
	e.ctx.LastOpponentMove = m
	switch {
	case m == game.MoveBlock:
		e.ctx.OpponentConsecutiveBlocks++
		e.ctx.OpponentConsecutiveAttacks = 0
	case isAttack(m):
		e.ctx.OpponentConsecutiveAttacks++
		e.ctx.OpponentConsecutiveBlocks = 0
	default:
		e.ctx.OpponentConsecutiveBlocks = 0
		e.ctx.OpponentConsecutiveAttacks = 0
	}
	e.history = append(e.history, HistoryEntry{
		Turn: e.ctx.TurnNumber, Round: e.ctx.RoundNumber, Move: m,
	})
}

// RecordBotMove feeds the bot's own executed move back into the context.
func (e *Engine) RecordBotMove(m game.MoveType) {
	e.ctx.LastBotMove = m
	e.history = append(e.history, HistoryEntry{
		Turn: e.ctx.TurnNumber, Round: e.ctx.RoundNumber, BotMove: true, Move: m,
	})
}

// History returns the recorded move log.
func (e *Engine) History() []HistoryEntry {
	return e.history
}

func isAttack(m game.MoveType) bool {
	return m == game.MovePunch || m == game.MoveKick || m == game.MoveSpecial
}

func (e *Engine) canAfford(m game.MoveType) bool {
	return e.ctx.BotEnergy >= e.bal.MoveCost(m)
}

// blockingSafe reports whether the bot can block without risking a guard
// break this turn, assuming worst-case buildup from both sources.
func (e *Engine) blockingSafe() bool {
	return e.ctx.BotGuard+e.bal.GuardBuildupOnBlock+e.bal.GuardBuildupOnHit < e.bal.GuardBreakThreshold
}

func (e *Engine) lowHealth(health int) bool {
	return float64(health) <= float64(e.bal.StartingHealth)*e.bal.LowHealthThreshold
}

// Decide runs the priority cascade and returns the chosen move. The
// first matching rule wins; only the weighted fallback at the bottom is
// guaranteed to match.
func (e *Engine) Decide() Decision {
	// 1. A stunned bot cannot act.
	if e.ctx.BotStunned {
		return Decision{
			Move:       game.MoveStunned,
			Confidence: 0,
			Reasoning:  "Bot is stunned and cannot act",
		}
	}

	// 2. Defensive fallback when nothing is affordable.
	if !e.anyAffordable() {
		return Decision{
			Move:       game.MovePunch,
			Confidence: 0.5,
			Reasoning:  "No affordable move - falling back to punch",
		}
	}

	// 3. Punish a stunned opponent with the heaviest affordable attack.
	if e.ctx.OpponentStunned {
		switch {
		case e.canAfford(game.MoveSpecial):
			return Decision{game.MoveSpecial, 1.0, "Opponent is stunned - punishing with special"}
		case e.canAfford(game.MoveKick):
			return Decision{game.MoveKick, 0.95, "Opponent is stunned - punishing with kick"}
		default:
			return Decision{game.MovePunch, 0.9, "Opponent is stunned - punishing with punch"}
		}
	}

	// 4. Press a staggered opponent.
	if e.ctx.OpponentStaggered {
		if e.canAfford(game.MoveSpecial) {
			return Decision{game.MoveSpecial, 0.85, "Opponent is staggered - pressing with special"}
		}
		if e.canAfford(game.MoveKick) {
			return Decision{game.MoveKick, 0.8, "Opponent is staggered - pressing with kick"}
		}
	}

	// 5. Go for the finish against a low-health opponent.
	if e.lowHealth(e.ctx.OpponentHealth) {
		switch {
		case e.canAfford(game.MoveSpecial):
			return Decision{game.MoveSpecial, 0.9, "Opponent at low health - going for the finish with special"}
		case e.canAfford(game.MoveKick):
			return Decision{game.MoveKick, 0.85, "Opponent at low health - going for the finish with kick"}
		default:
			return Decision{game.MovePunch, 0.8, "Opponent at low health - going for the finish with punch"}
		}
	}

	// 6. Break a blocking streak. Kick is never worth it into a wall of
	// blocks, so the fallback is the free punch.
	if e.ctx.OpponentConsecutiveBlocks >= blockStreakTrigger {
		if e.canAfford(game.MoveSpecial) {
			return Decision{game.MoveSpecial, 0.85, "Opponent keeps blocking - breaking guard with special"}
		}
		return Decision{game.MovePunch, 0.75, "Opponent keeps blocking - chipping with punch"}
	}

	// 7. Block an attacking streak, but only when guard can take it.
	if e.ctx.OpponentConsecutiveAttacks >= attackStreakTrigger && e.blockingSafe() {
		return Decision{game.MoveBlock, 0.8, "Opponent keeps attacking - blocking the streak"}
	}

	// 8. Defensive block at low health.
	if e.lowHealth(e.ctx.BotHealth) && e.blockingSafe() {
		if e.rng.Float64() < defensiveBlockChance {
			return Decision{game.MoveBlock, 0.7, "Low health - blocking defensively"}
		}
	}

	// 9. Opportunistic special when energy is flush.
	if e.ctx.BotEnergy >= highEnergyThreshold && e.canAfford(game.MoveSpecial) {
		if e.rng.Float64() < opportunisticSpecialChance {
			return Decision{game.MoveSpecial, 0.7, "High energy - spending it on special"}
		}
	}

	// 10. Prediction from the opponent's last move.
	switch e.ctx.LastOpponentMove {
	case game.MovePunch:
		if e.blockingSafe() && e.rng.Float64() < predictPunchBlockChance {
			return Decision{game.MoveBlock, 0.65, "Predicting punch - block beats punch"}
		}
	case game.MoveKick:
		if e.blockingSafe() && e.rng.Float64() < predictKickBlockChance {
			return Decision{game.MoveBlock, 0.65, "Predicting kick - block beats kick"}
		}
	case game.MoveBlock:
		if e.rng.Float64() < predictBlockSpecialChance && e.canAfford(game.MoveSpecial) {
			return Decision{game.MoveSpecial, 0.7, "Predicting block - special breaks guard"}
		}
	case game.MoveSpecial:
		if e.rng.Float64() < predictSpecialPunchChance {
			return Decision{game.MovePunch, 0.65, "Predicting special - punch beats special"}
		}
	}

	// 11. Weighted random fallback.
	return e.weightedRandom()
}

func (e *Engine) anyAffordable() bool {
	for _, m := range game.PlayerMoves {
		if e.canAfford(m) {
			return true
		}
	}
	return false
}

// weightedRandom draws from the base weight table after zeroing out the
// unaffordable and unsafe options and penalizing a repeat of the bot's
// own last move.
func (e *Engine) weightedRandom() Decision {
	weights := map[game.MoveType]int{
		game.MovePunch:   weightPunch,
		game.MoveKick:    weightKick,
		game.MoveBlock:   weightBlock,
		game.MoveSpecial: weightSpecial,
	}
	if !e.canAfford(game.MoveSpecial) {
		weights[game.MoveSpecial] = 0
	}
	if !e.blockingSafe() {
		weights[game.MoveBlock] = 0
	}
	if !e.canAfford(game.MoveKick) {
		weights[game.MoveKick] = 0
		weights[game.MovePunch] += kickFallbackBonus
	}
	if w := weights[e.ctx.LastBotMove]; w > 0 {
		weights[e.ctx.LastBotMove] = int(math.Max(float64(w-repeatPenalty), repeatFloor))
	}

	total := 0
	for _, m := range game.PlayerMoves {
		total += weights[m]
	}

	pick := game.MovePunch
	draw := e.rng.Float64() * float64(total)
	for _, m := range game.PlayerMoves {
		if weights[m] == 0 {
			continue
		}
		pick = m
		draw -= float64(weights[m])
		if draw < 0 {
			break
		}
		// Floating-point residue can walk past the last bucket; pick
		// then holds the last eligible move.
	}
	return Decision{
		Move:       pick,
		Confidence: 0.5 + float64(weights[pick])/float64(total)*0.3,
		Reasoning:  fmt.Sprintf("Weighted random selection: %s", pick),
	}
}
