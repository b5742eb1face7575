package game

// MoveType is a string alias for a combat move. Using a dedicated type
// instead of plain string makes code safer and self-documenting.
type MoveType string

const (
	MovePunch   MoveType = "punch"
	MoveKick    MoveType = "kick"
	MoveBlock   MoveType = "block"
	MoveSpecial MoveType = "special"
	// MoveStunned is a forced state, never a player choice: the actor
	// cannot act this turn.
	MoveStunned MoveType = "stunned"
)

// PlayerMoves lists the moves a player (or the bot) may select, in the
// canonical order used by weighted selection.
var PlayerMoves = []MoveType{MovePunch, MoveKick, MoveBlock, MoveSpecial}

// IsPlayerMove reports whether m is a selectable move.
func IsPlayerMove(m MoveType) bool {
	for _, pm := range PlayerMoves {
		if pm == m {
			return true
		}
	}
	return false
}

// MoveStats holds the static properties of a single move: base damage,
// energy cost and the set of moves it beats.
type MoveStats struct {
	Damage     int        `json:"damage"`
	EnergyCost int        `json:"energy_cost"`
	Beats      []MoveType `json:"beats"`
}

// Balance carries every numeric game-balance constant. It is built once
// (defaults, optionally overridden by the config file) and injected into
// the resolver, the bot engine and the combat service so the functions
// stay testable with alternate balance tables.
type Balance struct {
	Moves map[MoveType]MoveStats `json:"moves"`

	// Damage multipliers. Each application is floored in sequence.
	CounterBonus       float64 `json:"counter_bonus"`
	SameMoveMultiplier float64 `json:"same_move_multiplier"`
	LowHealthBonus     float64 `json:"low_health_bonus"`
	// LowHealthThreshold is the fraction of starting health at or below
	// which LowHealthBonus applies to special damage.
	LowHealthThreshold float64 `json:"low_health_threshold"`

	StartingHealth      int `json:"starting_health"`
	MinRoundStartHealth int `json:"min_round_start_health"`
	RoundsToWin         int `json:"rounds_to_win"`

	// Guard meter.
	GuardBuildupOnBlock int `json:"guard_buildup_on_block"`
	GuardBuildupOnHit   int `json:"guard_buildup_on_hit"`
	GuardBreakThreshold int `json:"guard_break_threshold"`
	GuardDecay          int `json:"guard_decay"`

	// Energy economy (per-character max/regen may override the defaults).
	StartingEnergy int `json:"starting_energy"`
	MaxEnergy      int `json:"max_energy"`
	EnergyRegen    int `json:"energy_regen"`

	// ELO rating.
	DefaultRating   int `json:"default_rating"`
	MinRating       int `json:"min_rating"`
	MaxRating       int `json:"max_rating"`
	KFactorStandard int `json:"k_factor_standard"`
	KFactorNew      int `json:"k_factor_new"`
	// NewPlayerGames is the games-played count below which the elevated
	// new-player K-factor applies.
	NewPlayerGames int `json:"new_player_games"`
}

// DefaultBalance returns the tuned balance table. These are fixed contract
// values: changing them changes game balance, not the algorithms.
func DefaultBalance() *Balance {
	return &Balance{
		Moves: map[MoveType]MoveStats{
			MovePunch:   {Damage: 10, EnergyCost: 0, Beats: []MoveType{MoveSpecial}},
			MoveKick:    {Damage: 15, EnergyCost: 25, Beats: []MoveType{MovePunch}},
			MoveBlock:   {Damage: 5, EnergyCost: 0, Beats: []MoveType{MovePunch, MoveKick, MoveSpecial}},
			MoveSpecial: {Damage: 25, EnergyCost: 50, Beats: []MoveType{MoveKick}},
			MoveStunned: {Damage: 0, EnergyCost: 0, Beats: nil},
		},
		CounterBonus:       1.5,
		SameMoveMultiplier: 0.5,
		LowHealthBonus:     1.5,
		LowHealthThreshold: 0.25,

		StartingHealth:      100,
		MinRoundStartHealth: 1,
		RoundsToWin:         2,

		GuardBuildupOnBlock: 25,
		GuardBuildupOnHit:   15,
		GuardBreakThreshold: 100,
		GuardDecay:          10,

		StartingEnergy: 50,
		MaxEnergy:      100,
		EnergyRegen:    20,

		DefaultRating:   1000,
		MinRating:       100,
		MaxRating:       3000,
		KFactorStandard: 20,
		KFactorNew:      40,
		NewPlayerGames:  10,
	}
}

// MoveDamage returns the base damage of m, 0 for unknown moves.
func (b *Balance) MoveDamage(m MoveType) int {
	return b.Moves[m].Damage
}

// MoveCost returns the energy cost of m, 0 for unknown moves.
func (b *Balance) MoveCost(m MoveType) int {
	return b.Moves[m].EnergyCost
}
