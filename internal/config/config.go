package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/keys"
)

type characterEntry struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Rarity      string `json:"rarity"`
	Price       int    `json:"price"`
	MaxHealth   int    `json:"max_health"`
	MaxEnergy   int    `json:"max_energy"`
	EnergyRegen int    `json:"energy_regen"`
}

type rawConfig struct {
	CharacterList []characterEntry `json:"character_list"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional balance overrides merged over the built-in defaults. Only
	// the numeric knobs are overridable; the beats-table is fixed.
	Balance *balanceOverrides `json:"balance"`
	// Move submission deadline in seconds; 0 keeps the default.
	MoveTimeoutSeconds int `json:"move_timeout_seconds"`
}

type balanceOverrides struct {
	CounterBonus       *float64 `json:"counter_bonus"`
	SameMoveMultiplier *float64 `json:"same_move_multiplier"`
	LowHealthBonus     *float64 `json:"low_health_bonus"`
	LowHealthThreshold *float64 `json:"low_health_threshold"`

	StartingHealth      *int `json:"starting_health"`
	MinRoundStartHealth *int `json:"min_round_start_health"`
	RoundsToWin         *int `json:"rounds_to_win"`

	GuardBuildupOnBlock *int `json:"guard_buildup_on_block"`
	GuardBuildupOnHit   *int `json:"guard_buildup_on_hit"`
	GuardBreakThreshold *int `json:"guard_break_threshold"`
	GuardDecay          *int `json:"guard_decay"`

	StartingEnergy *int `json:"starting_energy"`
	MaxEnergy      *int `json:"max_energy"`
	EnergyRegen    *int `json:"energy_regen"`

	DefaultRating   *int `json:"default_rating"`
	MinRating       *int `json:"min_rating"`
	MaxRating       *int `json:"max_rating"`
	KFactorStandard *int `json:"k_factor_standard"`
	KFactorNew      *int `json:"k_factor_new"`
	NewPlayerGames  *int `json:"new_player_games"`
}

// LoadedConfig contains the character roster to seed, the resolved
// balance table and the server address to bind to.
type LoadedConfig struct {
	Characters         []game.Character
	Balance            *game.Balance
	ServerAddress      string
	MoveTimeoutSeconds int
}

const defaultMoveTimeoutSeconds = 30

// LoadConfig reads the configuration file at path. It requires the key
// `character_list` (snake_case) to be a non-empty array.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.CharacterList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: character_list is empty (provide 'character_list' array)", path)
	}

	bal := game.DefaultBalance()
	if rc.Balance != nil {
		applyOverrides(bal, rc.Balance)
	}
	if bal.RoundsToWin < 1 {
		return nil, fmt.Errorf("config file %s: rounds_to_win must be at least 1", path)
	}
	if bal.StartingHealth < 1 {
		return nil, fmt.Errorf("config file %s: starting_health must be at least 1", path)
	}

	out := make([]game.Character, 0, len(entries))
	keySet := make(map[string]struct{}, len(entries))
	for _, c := range entries {
		key := strings.TrimSpace(c.Key)
		if key == "" {
			// Derive a stable key from the display name when omitted.
			key = keys.CharacterKeyFromName(c.DisplayName)
		}
		if key == "" {
			return nil, fmt.Errorf("config file %s: character entry missing 'key'", path)
		}
		if _, exists := keySet[strings.ToLower(key)]; exists {
			return nil, fmt.Errorf("config file %s: duplicate character key '%s'", path, key)
		}
		keySet[strings.ToLower(key)] = struct{}{}
		if c.DisplayName == "" {
			return nil, fmt.Errorf("config file %s: character '%s' missing 'display_name'", path, key)
		}
		ch := game.Character{
			Key:         key,
			DisplayName: c.DisplayName,
			Rarity:      c.Rarity,
			Price:       c.Price,
			MaxHealth:   c.MaxHealth,
			MaxEnergy:   c.MaxEnergy,
			EnergyRegen: c.EnergyRegen,
		}
		if ch.MaxHealth == 0 {
			ch.MaxHealth = bal.StartingHealth
		}
		if ch.MaxEnergy == 0 {
			ch.MaxEnergy = bal.MaxEnergy
		}
		if ch.EnergyRegen == 0 {
			ch.EnergyRegen = bal.EnergyRegen
		}
		out = append(out, ch)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	timeout := rc.MoveTimeoutSeconds
	if timeout <= 0 {
		timeout = defaultMoveTimeoutSeconds
	}

	return &LoadedConfig{
		Characters:         out,
		Balance:            bal,
		ServerAddress:      addr,
		MoveTimeoutSeconds: timeout,
	}, nil
}

func applyOverrides(bal *game.Balance, o *balanceOverrides) {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&bal.CounterBonus, o.CounterBonus)
	setF(&bal.SameMoveMultiplier, o.SameMoveMultiplier)
	setF(&bal.LowHealthBonus, o.LowHealthBonus)
	setF(&bal.LowHealthThreshold, o.LowHealthThreshold)
	setI(&bal.StartingHealth, o.StartingHealth)
	setI(&bal.MinRoundStartHealth, o.MinRoundStartHealth)
	setI(&bal.RoundsToWin, o.RoundsToWin)
	setI(&bal.GuardBuildupOnBlock, o.GuardBuildupOnBlock)
	setI(&bal.GuardBuildupOnHit, o.GuardBuildupOnHit)
	setI(&bal.GuardBreakThreshold, o.GuardBreakThreshold)
	setI(&bal.GuardDecay, o.GuardDecay)
	setI(&bal.StartingEnergy, o.StartingEnergy)
	setI(&bal.MaxEnergy, o.MaxEnergy)
	setI(&bal.EnergyRegen, o.EnergyRegen)
	setI(&bal.DefaultRating, o.DefaultRating)
	setI(&bal.MinRating, o.MinRating)
	setI(&bal.MaxRating, o.MaxRating)
	setI(&bal.KFactorStandard, o.KFactorStandard)
	setI(&bal.KFactorNew, o.KFactorNew)
	setI(&bal.NewPlayerGames, o.NewPlayerGames)
}
