package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/bot"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

type mockRepo struct {
	matches  map[string]*game.Match
	fighters map[string]*game.Fighter
	updates  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		matches: map[string]*game.Match{},
		fighters: map[string]*game.Fighter{
			"0xaaa": {Address: "0xaaa", Rating: 1000, Wins: 10, Losses: 10},
			"0xbbb": {Address: "0xbbb", Rating: 1000, Wins: 10, Losses: 10},
		},
	}
}

func (m *mockRepo) CreateMatch(g *game.Match) error {
	m.matches[g.MatchCode] = g
	return nil
}

func (m *mockRepo) GetMatchByCode(code string) (*game.Match, error) {
	if g, ok := m.matches[code]; ok {
		return g, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockRepo) UpdateMatch(g *game.Match) error {
	m.matches[g.MatchCode] = g
	m.updates++
	return nil
}

func (m *mockRepo) GetCharacterByKey(key string) (*game.Character, error) {
	if key == "brawler" {
		return &game.Character{Key: "brawler", DisplayName: "Brawler", MaxHealth: 100, MaxEnergy: 100, EnergyRegen: 20}, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockRepo) GetFighterByAddress(_ context.Context, address string) (*game.Fighter, error) {
	if f, ok := m.fighters[address]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockRepo) SaveFighter(_ context.Context, f *game.Fighter) error {
	m.fighters[f.Address] = f
	return nil
}

func (m *mockRepo) UpsertFighter(_ context.Context, address, displayName string) (*game.Fighter, error) {
	if f, ok := m.fighters[address]; ok {
		return f, nil
	}
	f := &game.Fighter{Address: address, Rating: 1000, DisplayName: displayName}
	m.fighters[address] = f
	return f, nil
}

// scriptedRand replays fixed rolls for deterministic bot decisions.
type scriptedRand struct {
	vals []float64
	i    int
}

func (s *scriptedRand) Float64() float64 {
	if s.i >= len(s.vals) {
		return 0.99
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func newTestService(repo *mockRepo) *Service {
	roster := []game.Character{{Key: "brawler", DisplayName: "Brawler", MaxHealth: 100, MaxEnergy: 100, EnergyRegen: 20}}
	svc := New(repo, game.DefaultBalance(), roster, 30*time.Second)
	svc.newBotRand = func() bot.Rand { return &scriptedRand{} }
	return svc
}

func seedMatch(repo *mockRepo, svc *Service, vsBot bool) *game.Match {
	p2 := svc.initCombatant("0xbbb", "P2", "brawler")
	if vsBot {
		p2 = svc.initCombatant(BotAddress, "Fighter_test01", "brawler")
	}
	m := &game.Match{
		MatchCode:   "ABCD1234",
		Status:      game.StatusInProgress,
		Phase:       game.PhasePlanning,
		VsBot:       vsBot,
		RoundNumber: 1,
		TurnNumber:  1,
		Player1:     svc.initCombatant("0xaaa", "P1", "brawler"),
		Player2:     p2,
	}
	repo.matches[m.MatchCode] = m
	return m
}

func TestSubmitMove_ResolvesTurn(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	seedMatch(repo, svc, false)

	_, resolved, err := svc.SubmitMove(context.Background(), "ABCD1234", "0xaaa", game.MovePunch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatalf("turn should not resolve after one submission")
	}

	m, resolved, err := svc.SubmitMove(context.Background(), "ABCD1234", "0xbbb", game.MoveKick)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatalf("expected the turn to resolve")
	}
	// Kick beats punch: floor(15*1.5)=22 lands on player1.
	if m.Player1.Health != 78 || m.Player2.Health != 100 {
		t.Fatalf("healths = %d/%d, want 78/100", m.Player1.Health, m.Player2.Health)
	}
	// Energy: punch is free, kick costs 25; both regen 20 capped at 100.
	if m.Player1.Energy != 70 || m.Player2.Energy != 45 {
		t.Fatalf("energies = %d/%d, want 70/45", m.Player1.Energy, m.Player2.Energy)
	}
	if m.TurnNumber != 2 || m.RoundNumber != 1 {
		t.Fatalf("turn/round = %d/%d, want 2/1", m.TurnNumber, m.RoundNumber)
	}
	if m.Player1.LastMove != game.MovePunch || m.Player1.ConsecutiveAttacks != 1 {
		t.Fatalf("player1 streaks not recorded: %+v", m.Player1)
	}
	if m.Player1.HasSubmitted || m.Player2.HasSubmitted {
		t.Fatalf("submissions not reset")
	}
	if m.MoveDeadline.IsZero() {
		t.Fatalf("move deadline not reset")
	}
}

func TestSubmitMove_Validation(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	m := seedMatch(repo, svc, false)
	ctx := context.Background()

	if _, _, err := svc.SubmitMove(ctx, "NOPE", "0xaaa", game.MovePunch); err != ErrMatchNotFound {
		t.Fatalf("err = %v, want ErrMatchNotFound", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xzzz", game.MovePunch); err != ErrNotAParticipant {
		t.Fatalf("err = %v, want ErrNotAParticipant", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MoveType("uppercut")); err != ErrInvalidMove {
		t.Fatalf("err = %v, want ErrInvalidMove", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MoveStunned); err != ErrInvalidMove {
		t.Fatalf("stunned is not submittable, err = %v", err)
	}

	m.Player1.Energy = 30
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MoveSpecial); err != ErrInsufficientEnergy {
		t.Fatalf("err = %v, want ErrInsufficientEnergy", err)
	}

	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MovePunch); err != ErrMoveAlreadySubmitted {
		t.Fatalf("err = %v, want ErrMoveAlreadySubmitted", err)
	}

	m.Status = game.StatusFinished
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xbbb", game.MovePunch); err != ErrMatchNotInProgress {
		t.Fatalf("err = %v, want ErrMatchNotInProgress", err)
	}
}

func TestSubmitMove_BotRespondsImmediately(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	// Roll 0.0 lands the weighted fallback on punch.
	svc.newBotRand = func() bot.Rand { return &scriptedRand{vals: []float64{0.0}} }
	seedMatch(repo, svc, true)

	m, resolved, err := svc.SubmitMove(context.Background(), "ABCD1234", "0xaaa", game.MoveBlock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatalf("bot match should resolve on the human submission")
	}
	if m.Player2.LastMove != game.MovePunch {
		t.Fatalf("bot move = %s, want punch", m.Player2.LastMove)
	}
	// Block counters punch: floor(5*1.5)=7 chips the bot.
	if m.Player2.Health != 93 || m.Player1.Health != 100 {
		t.Fatalf("healths = %d/%d, want 100/93", m.Player1.Health, m.Player2.Health)
	}
}

func TestResolveTurn_GuardBreakStunsNextTurn(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	m := seedMatch(repo, svc, false)
	m.Player1.Guard = 70
	ctx := context.Background()

	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MoveBlock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xbbb", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 70 + 25 (block) + 15 (absorbed hit) crosses 100: guard breaks.
	if !m.Player1.Stunned || m.Player1.Guard != 0 {
		t.Fatalf("guard break missed: stunned=%v guard=%d", m.Player1.Stunned, m.Player1.Guard)
	}

	// Next turn the stunned side is forced into the stunned move and the
	// opponent lands at full base damage.
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xbbb", game.MoveKick); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Player1.LastMove != game.MoveStunned {
		t.Fatalf("stunned side acted: %s", m.Player1.LastMove)
	}
	if m.Player1.Health != 85 {
		t.Fatalf("player1 health = %d, want 85 (full kick damage while stunned)", m.Player1.Health)
	}
	if m.Player1.Stunned {
		t.Fatalf("stun must clear after the lost turn")
	}
}

func TestResolveTurn_StaggerSkipsRegen(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	m := seedMatch(repo, svc, false)
	ctx := context.Background()

	// Special beats kick and lands, staggering player2.
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MoveSpecial); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xbbb", game.MoveKick); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Player2.Staggered {
		t.Fatalf("landed special did not stagger")
	}
	if m.Player1.Energy != 20 || m.Player2.Energy != 45 {
		t.Fatalf("energies = %d/%d, want 20/45", m.Player1.Energy, m.Player2.Energy)
	}

	// The staggered side gets no regen this turn, then recovers.
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xbbb", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Player1.Energy != 40 || m.Player2.Energy != 45 {
		t.Fatalf("energies = %d/%d, want 40/45", m.Player1.Energy, m.Player2.Energy)
	}
	if m.Player2.Staggered {
		t.Fatalf("stagger must clear after the skipped regen")
	}
}

func TestResolveTurn_KnockoutAdvancesRound(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	m := seedMatch(repo, svc, false)
	m.Player1.Health = 5
	m.Player1.Guard = 40
	m.Player1.ConsecutiveAttacks = 2
	ctx := context.Background()

	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xbbb", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Player2.RoundsWon != 1 || m.Player1.RoundsWon != 0 {
		t.Fatalf("rounds won = %d/%d, want 0/1", m.Player1.RoundsWon, m.Player2.RoundsWon)
	}
	if m.RoundNumber != 2 || m.TurnNumber != 1 {
		t.Fatalf("round/turn = %d/%d, want 2/1", m.RoundNumber, m.TurnNumber)
	}
	// Knocked-out side starts the next round at the health floor.
	if m.Player1.Health != 1 || m.Player2.Health != 95 {
		t.Fatalf("healths = %d/%d, want 1/95", m.Player1.Health, m.Player2.Health)
	}
	if m.Player1.Guard != 0 || m.Player1.ConsecutiveAttacks != 0 {
		t.Fatalf("per-round state not cleared: %+v", m.Player1)
	}
	if m.Status != game.StatusInProgress {
		t.Fatalf("match ended early: %s", m.Status)
	}
}

func TestSubmitMove_MatchEndAppliesRatings(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	m := seedMatch(repo, svc, false)
	m.Player1.Health = 5
	m.Player2.RoundsWon = 1
	ctx := context.Background()

	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xbbb", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Status != game.StatusFinished || m.Winner != game.WinnerPlayer2 {
		t.Fatalf("status/winner = %s/%s, want finished/player2", m.Status, m.Winner)
	}
	if !m.RatingsCounted {
		t.Fatalf("ratings not counted")
	}
	if repo.fighters["0xbbb"].Rating != 1010 || repo.fighters["0xaaa"].Rating != 990 {
		t.Fatalf("ratings = %d/%d, want 990/1010",
			repo.fighters["0xaaa"].Rating, repo.fighters["0xbbb"].Rating)
	}
	if repo.fighters["0xbbb"].Wins != 11 || repo.fighters["0xaaa"].Losses != 11 {
		t.Fatalf("win/loss counters not updated")
	}

	if _, _, err := svc.SubmitMove(ctx, "ABCD1234", "0xaaa", game.MovePunch); err != ErrMatchNotInProgress {
		t.Fatalf("err = %v, want ErrMatchNotInProgress", err)
	}
}

func TestResign(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	seedMatch(repo, svc, false)

	m, err := svc.Resign(context.Background(), "ABCD1234", "0xbbb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != game.StatusFinished || m.Winner != game.WinnerPlayer1 {
		t.Fatalf("status/winner = %s/%s, want finished/player1", m.Status, m.Winner)
	}
	if repo.fighters["0xaaa"].Rating != 1010 || repo.fighters["0xbbb"].Rating != 990 {
		t.Fatalf("resignation not rated: %d/%d",
			repo.fighters["0xaaa"].Rating, repo.fighters["0xbbb"].Rating)
	}

	if _, err := svc.Resign(context.Background(), "ABCD1234", "0xaaa"); err != ErrMatchNotInProgress {
		t.Fatalf("err = %v, want ErrMatchNotInProgress", err)
	}
}

func TestSubmitMove_BotMatchIsNeverRated(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	m := seedMatch(repo, svc, true)
	m.Player1.Health = 5
	m.Player2.RoundsWon = 1
	// Bot rolls into the weighted fallback and punches.
	svc.newBotRand = func() bot.Rand { return &scriptedRand{vals: []float64{0.0}} }

	if _, _, err := svc.SubmitMove(context.Background(), "ABCD1234", "0xaaa", game.MovePunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != game.StatusFinished {
		t.Fatalf("status = %s, want finished", m.Status)
	}
	if !m.RatingsCounted {
		t.Fatalf("bot matches still mark ratings counted")
	}
	if repo.fighters["0xaaa"].Rating != 1000 {
		t.Fatalf("bot match changed a rating: %d", repo.fighters["0xaaa"].Rating)
	}
}
