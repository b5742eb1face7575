package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/bot"
	"github.com/zaikaman/KaspaClash-sub007/internal/config"
	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/service"
)

// balance-report pits the decision engine against itself for every roster
// pairing and reports win rates and match lengths. It runs entirely
// offline against an in-memory repository, so a designer can tune the
// balance knobs in arena_config.json and re-run.

const (
	simAddr1 = "0x00000000000000000000000000000000000000a1"
	simAddr2 = "0x00000000000000000000000000000000000000b2"

	// Safety cap: repeated double-knockout draws could stall a match.
	maxExchanges = 500
)

func main() {
	configPath := flag.String("config", "", "path to arena_config.json (defaults to $ARENA_CONFIG or ./arena_config.json)")
	perPair := flag.Int("n", 200, "matches to simulate per roster pairing")
	seed := flag.Int64("seed", time.Now().UnixNano(), "randomness seed")
	outPath := flag.String("out", "balance_report.txt", "report output file")
	flag.Parse()

	// The service logs every move; that is noise here.
	log.SetOutput(io.Discard)

	path := *configPath
	if path == "" {
		path = os.Getenv(constants.EnvConfigPath)
	}
	if path == "" {
		path = "./arena_config.json"
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid arena configuration %s: %v\n", path, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	var b strings.Builder
	fmt.Fprintf(&b, "Balance report: %d matches per pairing, seed %d\n\n", *perPair, *seed)
	for i := range cfg.Characters {
		for j := i; j < len(cfg.Characters); j++ {
			p1 := cfg.Characters[i].Key
			p2 := cfg.Characters[j].Key
			r := simulatePairing(cfg, p1, p2, *perPair, rng)
			fmt.Fprintf(&b, "%-12s vs %-12s  p1 %5.1f%%  p2 %5.1f%%  draw %4.1f%%  avg exchanges %.1f\n",
				p1, p2,
				100*float64(r.p1Wins)/float64(*perPair),
				100*float64(r.p2Wins)/float64(*perPair),
				100*float64(r.draws)/float64(*perPair),
				float64(r.exchanges)/float64(*perPair))
		}
	}

	report := b.String()
	fmt.Print(report)
	if err := os.WriteFile(*outPath, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
}

type pairingResult struct {
	p1Wins    int
	p2Wins    int
	draws     int
	exchanges int
}

func simulatePairing(cfg *config.LoadedConfig, p1Key, p2Key string, n int, rng *rand.Rand) pairingResult {
	var res pairingResult
	for i := 0; i < n; i++ {
		winner, exchanges := simulateMatch(cfg, p1Key, p2Key, rng)
		switch winner {
		case game.WinnerPlayer1:
			res.p1Wins++
		case game.WinnerPlayer2:
			res.p2Wins++
		default:
			res.draws++
		}
		res.exchanges += exchanges
	}
	return res
}

// simulateMatch drives one full match through the real service with the
// decision engine choosing for both seats.
func simulateMatch(cfg *config.LoadedConfig, p1Key, p2Key string, rng *rand.Rand) (winner string, exchanges int) {
	ctx := context.Background()
	repo := newMemRepo(cfg)
	svc := service.New(repo, cfg.Balance, cfg.Characters, time.Minute)

	m, err := svc.CreateMatch(ctx, service.CreateMatchRequest{
		MatchCode:    "SIMULATE",
		Address:      simAddr1,
		DisplayName:  "P1",
		CharacterKey: p1Key,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create match: %v\n", err)
		os.Exit(1)
	}
	m, err = svc.JoinMatch(ctx, m.MatchCode, simAddr2, "P2", p2Key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "join match: %v\n", err)
		os.Exit(1)
	}

	for m.Status == game.StatusInProgress && exchanges < maxExchanges {
		for _, side := range []*game.Combatant{&m.Player1, &m.Player2} {
			if side.HasSubmitted {
				continue
			}
			engine := bot.NewEngine(cfg.Balance, rng)
			engine.SetContext(decisionContext(m, side))

			d := engine.Decide()
			var resolved bool
			m, resolved, err = svc.SubmitMove(ctx, m.MatchCode, side.Address, d.Move)
			if err != nil {
				fmt.Fprintf(os.Stderr, "submit move: %v\n", err)
				os.Exit(1)
			}
			if resolved {
				exchanges++
				break
			}
		}
	}
	return m.Winner, exchanges
}

// decisionContext views the match from one seat, the same mapping the
// service uses when the house bot sits in player2.
func decisionContext(m *game.Match, side *game.Combatant) bot.Context {
	opp := m.Opponent(side)
	return bot.Context{
		BotHealth:      side.Health,
		OpponentHealth: opp.Health,
		BotEnergy:      side.Energy,
		OpponentEnergy: opp.Energy,
		BotGuard:       side.Guard,
		OpponentGuard:  opp.Guard,

		BotStunned:        side.Stunned,
		OpponentStunned:   opp.Stunned,
		BotStaggered:      side.Staggered,
		OpponentStaggered: opp.Staggered,

		RoundNumber: m.RoundNumber,
		TurnNumber:  m.TurnNumber,

		BotRoundsWon:      side.RoundsWon,
		OpponentRoundsWon: opp.RoundsWon,

		OpponentConsecutiveBlocks:  opp.ConsecutiveBlocks,
		OpponentConsecutiveAttacks: opp.ConsecutiveAttacks,

		LastOpponentMove: opp.LastMove,
		LastBotMove:      side.LastMove,
	}
}

// memRepo is an in-memory service.MatchRepo so simulations never touch a
// database.
type memRepo struct {
	characters map[string]game.Character
	matches    map[string]*game.Match
	fighters   map[string]*game.Fighter
	rating     int
}

func newMemRepo(cfg *config.LoadedConfig) *memRepo {
	chars := make(map[string]game.Character, len(cfg.Characters))
	for _, c := range cfg.Characters {
		chars[strings.ToLower(c.Key)] = c
	}
	return &memRepo{
		characters: chars,
		matches:    make(map[string]*game.Match),
		fighters:   make(map[string]*game.Fighter),
		rating:     cfg.Balance.DefaultRating,
	}
}

func (r *memRepo) CreateMatch(m *game.Match) error {
	r.matches[m.MatchCode] = m
	return nil
}

func (r *memRepo) GetMatchByCode(code string) (*game.Match, error) {
	m, ok := r.matches[code]
	if !ok {
		return nil, fmt.Errorf("match %s not found", code)
	}
	return m, nil
}

func (r *memRepo) UpdateMatch(m *game.Match) error {
	r.matches[m.MatchCode] = m
	return nil
}

func (r *memRepo) GetCharacterByKey(key string) (*game.Character, error) {
	c, ok := r.characters[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("character %s not found", key)
	}
	return &c, nil
}

func (r *memRepo) GetFighterByAddress(_ context.Context, address string) (*game.Fighter, error) {
	f, ok := r.fighters[address]
	if !ok {
		return nil, fmt.Errorf("fighter %s not found", address)
	}
	return f, nil
}

func (r *memRepo) SaveFighter(_ context.Context, f *game.Fighter) error {
	r.fighters[f.Address] = f
	return nil
}

func (r *memRepo) UpsertFighter(_ context.Context, address, displayName string) (*game.Fighter, error) {
	f, ok := r.fighters[address]
	if !ok {
		f = &game.Fighter{Address: address, Rating: r.rating}
		r.fighters[address] = f
	}
	if displayName != "" {
		f.DisplayName = displayName
	}
	return f, nil
}
