package game

import (
	"time"

	"gorm.io/gorm"
)

// Character is a playable fighter archetype. Identity (key, name, tier)
// is persisted; the combat-relevant stats are configured via the server
// config (arena_config.json) and should NOT be persisted in the database.
// Mark them with `gorm:"-"` so GORM ignores them for schema/migration
// purposes while keeping the fields available in-memory and in JSON
// responses.
type Character struct {
	gorm.Model
	Key         string `json:"key" gorm:"uniqueIndex"`
	DisplayName string `json:"display_name"`
	Rarity      string `json:"rarity"`
	Price       int    `json:"price"`

	MaxHealth   int `json:"max_health" gorm:"-"`
	MaxEnergy   int `json:"max_energy" gorm:"-"`
	EnergyRegen int `json:"energy_regen" gorm:"-"`
}

// TableName overrides the default GORM table name so the persisted table
// is `character_roster` instead of the default `characters`.
func (Character) TableName() string { return "character_roster" }

// Combatant is one side of a match. It is embedded twice into Match with
// p1_/p2_ column prefixes.
type Combatant struct {
	Address      string `json:"address"`
	DisplayName  string `json:"display_name"`
	CharacterKey string `json:"character_key"`

	Health    int  `json:"health"`
	Energy    int  `json:"energy"`
	Guard     int  `json:"guard"`
	Stunned   bool `json:"stunned"`
	Staggered bool `json:"staggered"`

	HasSubmitted bool     `json:"has_submitted"`
	PendingMove  MoveType `json:"-"`
	LastMove     MoveType `json:"last_move"`

	RoundsWon int `json:"rounds_won"`

	// Streak counters used for bot prediction: how many consecutive turns
	// this side blocked, and how many consecutive turns it attacked.
	ConsecutiveBlocks  int `json:"consecutive_blocks"`
	ConsecutiveAttacks int `json:"consecutive_attacks"`
}

// Match statuses and phases.
const (
	StatusWaitingForOpponent = "waiting_for_opponent"
	StatusInProgress         = "in_progress"
	StatusFinished           = "finished"

	PhasePlanning  = "planning"
	PhaseResolving = "resolving"
	PhaseResolved  = "resolved"
)

// Match winners as reported per resolved exchange and at match end.
const (
	WinnerPlayer1 = "player1"
	WinnerPlayer2 = "player2"
	WinnerDraw    = "draw"
)

type Match struct {
	gorm.Model
	MatchCode string `json:"match_code" gorm:"uniqueIndex"`
	Status    string `json:"status"`
	Phase     string `json:"phase"`
	Message   string `json:"message"`

	VsBot bool `json:"vs_bot"`

	Player1 Combatant `json:"player1" gorm:"embedded;embeddedPrefix:p1_"`
	Player2 Combatant `json:"player2" gorm:"embedded;embeddedPrefix:p2_"`

	RoundNumber int `json:"round_number"`
	TurnNumber  int `json:"turn_number"`

	// Winner is WinnerPlayer1/WinnerPlayer2 once the match finishes, empty
	// while in progress or when the match expires with no result.
	Winner          string `json:"winner"`
	LastTurnSummary string `json:"last_turn_summary"`

	// RatingsCounted guards the ELO update so a finished match is rated at
	// most once (resign + deadline scanner may both reach match end).
	RatingsCounted bool      `json:"-"`
	MoveDeadline   time.Time `json:"move_deadline"`
}

// Opponent returns the other side of the match.
func (m *Match) Opponent(c *Combatant) *Combatant {
	if c == &m.Player1 {
		return &m.Player2
	}
	return &m.Player1
}

// SideOf returns the combatant with the given wallet address, nil when the
// address is not a participant.
func (m *Match) SideOf(address string) *Combatant {
	if m.Player1.Address == address {
		return &m.Player1
	}
	if m.Player2.Address == address {
		return &m.Player2
	}
	return nil
}

// Fighter stores a wallet's identity and aggregate ladder stats. Ratings
// are mutated only by the rating update, once per completed match.
type Fighter struct {
	gorm.Model
	Address     string `json:"address" gorm:"uniqueIndex"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

// GamesPlayed is the fighter's total rated match count.
func (f *Fighter) GamesPlayed() int { return f.Wins + f.Losses }

// TableName unifies the global fighters table name as "fighter_profiles".
func (Fighter) TableName() string { return "fighter_profiles" }
