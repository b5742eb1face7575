package bot

import (
	"math/rand"
	"testing"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

// seqRand replays a scripted sequence of rolls, then repeats 0.99.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	if s.i >= len(s.vals) {
		return 0.99
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func newTestEngine(rolls ...float64) *Engine {
	return NewEngine(game.DefaultBalance(), &seqRand{vals: rolls})
}

func TestDecide_StunnedBotCannotAct(t *testing.T) {
	e := newTestEngine()
	stunned := true
	e.UpdateContext(ContextUpdate{BotStunned: &stunned})

	d := e.Decide()
	if d.Move != game.MoveStunned {
		t.Fatalf("move = %s, want stunned", d.Move)
	}
	if d.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0", d.Confidence)
	}
}

func TestDecide_NoAffordableMoveFallsBackToPunch(t *testing.T) {
	bal := game.DefaultBalance()
	for m, stats := range bal.Moves {
		stats.EnergyCost = 10
		bal.Moves[m] = stats
	}
	e := NewEngine(bal, &seqRand{})
	energy := 5
	e.UpdateContext(ContextUpdate{BotEnergy: &energy})

	d := e.Decide()
	if d.Move != game.MovePunch {
		t.Fatalf("move = %s, want punch", d.Move)
	}
	if d.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", d.Confidence)
	}
}

func TestDecide_PunishesStunnedOpponent(t *testing.T) {
	cases := []struct {
		energy     int
		want       game.MoveType
		confidence float64
	}{
		{100, game.MoveSpecial, 1.0},
		{30, game.MoveKick, 0.95},
		{0, game.MovePunch, 0.9},
	}
	for _, c := range cases {
		e := newTestEngine()
		stunned := true
		e.UpdateContext(ContextUpdate{OpponentStunned: &stunned, BotEnergy: &c.energy})
		d := e.Decide()
		if d.Move != c.want || d.Confidence != c.confidence {
			t.Fatalf("energy %d: got %s/%v, want %s/%v",
				c.energy, d.Move, d.Confidence, c.want, c.confidence)
		}
	}
}

func TestDecide_StunnedOpponentPunishIsDeterministic(t *testing.T) {
	// With a stunned opponent and full energy the punish rule fires on
	// every trial regardless of the random stream.
	e := NewEngine(game.DefaultBalance(), rand.New(rand.NewSource(1)))
	stunned := true
	energy := 100
	e.UpdateContext(ContextUpdate{OpponentStunned: &stunned, BotEnergy: &energy})

	for i := 0; i < 10000; i++ {
		d := e.Decide()
		if d.Move != game.MoveSpecial || d.Confidence != 1.0 {
			t.Fatalf("trial %d: got %s/%v, want special/1.0", i, d.Move, d.Confidence)
		}
	}
}

func TestDecide_PressesStaggeredOpponent(t *testing.T) {
	e := newTestEngine()
	staggered := true
	e.UpdateContext(ContextUpdate{OpponentStaggered: &staggered})
	if d := e.Decide(); d.Move != game.MoveSpecial || d.Confidence != 0.85 {
		t.Fatalf("got %s/%v, want special/0.85", d.Move, d.Confidence)
	}

	energy := 30
	e.UpdateContext(ContextUpdate{BotEnergy: &energy})
	if d := e.Decide(); d.Move != game.MoveKick || d.Confidence != 0.8 {
		t.Fatalf("got %s/%v, want kick/0.8", d.Move, d.Confidence)
	}
}

func TestDecide_FinishesLowHealthOpponent(t *testing.T) {
	cases := []struct {
		energy     int
		want       game.MoveType
		confidence float64
	}{
		{50, game.MoveSpecial, 0.9},
		{30, game.MoveKick, 0.85},
		{10, game.MovePunch, 0.8},
	}
	for _, c := range cases {
		e := newTestEngine()
		oppHealth := 25
		e.UpdateContext(ContextUpdate{OpponentHealth: &oppHealth, BotEnergy: &c.energy})
		d := e.Decide()
		if d.Move != c.want || d.Confidence != c.confidence {
			t.Fatalf("energy %d: got %s/%v, want %s/%v",
				c.energy, d.Move, d.Confidence, c.want, c.confidence)
		}
	}

	// One point above the threshold the finisher rule stays quiet.
	e := newTestEngine(0.99)
	oppHealth := 26
	e.UpdateContext(ContextUpdate{OpponentHealth: &oppHealth})
	if d := e.Decide(); d.Confidence == 0.9 && d.Move == game.MoveSpecial {
		t.Fatalf("finisher fired above the low-health threshold")
	}
}

func TestDecide_BreaksBlockStreak(t *testing.T) {
	e := newTestEngine()
	blocks := 2
	e.UpdateContext(ContextUpdate{OpponentConsecutiveBlocks: &blocks})
	if d := e.Decide(); d.Move != game.MoveSpecial || d.Confidence != 0.85 {
		t.Fatalf("got %s/%v, want special/0.85", d.Move, d.Confidence)
	}

	energy := 20
	e.UpdateContext(ContextUpdate{BotEnergy: &energy})
	if d := e.Decide(); d.Move != game.MovePunch || d.Confidence != 0.75 {
		t.Fatalf("got %s/%v, want punch/0.75", d.Move, d.Confidence)
	}
}

func TestDecide_BlocksAttackStreakWhenGuardAllows(t *testing.T) {
	e := newTestEngine()
	attacks := 2
	e.UpdateContext(ContextUpdate{OpponentConsecutiveAttacks: &attacks})
	if d := e.Decide(); d.Move != game.MoveBlock || d.Confidence != 0.8 {
		t.Fatalf("got %s/%v, want block/0.8", d.Move, d.Confidence)
	}

	// Guard 70 + worst-case buildup 40 reaches the break threshold, so
	// the rule must not fire and block must drop out of the fallback.
	guard := 70
	e.UpdateContext(ContextUpdate{BotGuard: &guard})
	d := e.Decide()
	if d.Move == game.MoveBlock {
		t.Fatalf("blocked into a guard break")
	}
}

func TestDecide_DefensiveBlockAtLowHealth(t *testing.T) {
	e := newTestEngine(0.39)
	health := 25
	e.UpdateContext(ContextUpdate{BotHealth: &health})
	if d := e.Decide(); d.Move != game.MoveBlock || d.Confidence != 0.7 {
		t.Fatalf("got %s/%v, want block/0.7", d.Move, d.Confidence)
	}

	// Roll at the boundary misses the 40% window.
	e = newTestEngine(0.40, 0.0)
	e.UpdateContext(ContextUpdate{BotHealth: &health})
	if d := e.Decide(); d.Move == game.MoveBlock && d.Confidence == 0.7 {
		t.Fatalf("defensive block fired on a failed roll")
	}
}

func TestDecide_OpportunisticSpecial(t *testing.T) {
	e := newTestEngine(0.29)
	energy := 70
	e.UpdateContext(ContextUpdate{BotEnergy: &energy})
	if d := e.Decide(); d.Move != game.MoveSpecial || d.Confidence != 0.7 {
		t.Fatalf("got %s/%v, want special/0.7", d.Move, d.Confidence)
	}
}

func TestDecide_PredictsFromLastOpponentMove(t *testing.T) {
	cases := []struct {
		last       game.MoveType
		roll       float64
		want       game.MoveType
		confidence float64
	}{
		{game.MovePunch, 0.39, game.MoveBlock, 0.65},
		{game.MoveKick, 0.34, game.MoveBlock, 0.65},
		{game.MoveBlock, 0.39, game.MoveSpecial, 0.7},
		{game.MoveSpecial, 0.34, game.MovePunch, 0.65},
	}
	for _, c := range cases {
		e := newTestEngine(c.roll)
		e.RecordOpponentMove(c.last)
		d := e.Decide()
		if d.Move != c.want || d.Confidence != c.confidence {
			t.Fatalf("last %s: got %s/%v, want %s/%v",
				c.last, d.Move, d.Confidence, c.want, c.confidence)
		}
	}
}

func TestDecide_WeightedRandomFallback(t *testing.T) {
	// Neutral context, all moves affordable: weights 30/25/25/20.
	cases := []struct {
		roll       float64
		want       game.MoveType
		confidence float64
	}{
		{0.00, game.MovePunch, 0.5 + 30.0/100*0.3},
		{0.299, game.MovePunch, 0.5 + 30.0/100*0.3},
		{0.30, game.MoveKick, 0.5 + 25.0/100*0.3},
		{0.55, game.MoveBlock, 0.5 + 25.0/100*0.3},
		{0.80, game.MoveSpecial, 0.5 + 20.0/100*0.3},
		{0.999, game.MoveSpecial, 0.5 + 20.0/100*0.3},
	}
	for _, c := range cases {
		e := newTestEngine(c.roll)
		d := e.Decide()
		if d.Move != c.want {
			t.Fatalf("roll %v: move = %s, want %s", c.roll, d.Move, c.want)
		}
		if d.Confidence != c.confidence {
			t.Fatalf("roll %v: confidence = %v, want %v", c.roll, d.Confidence, c.confidence)
		}
	}
}

func TestDecide_WeightedRandomKickUnaffordable(t *testing.T) {
	// Energy 20: kick and special drop out, punch absorbs the kick
	// weight. Weights become punch 45, block 25, total 70.
	e := newTestEngine(0.0)
	energy := 20
	e.UpdateContext(ContextUpdate{BotEnergy: &energy})
	d := e.Decide()
	if d.Move != game.MovePunch {
		t.Fatalf("move = %s, want punch", d.Move)
	}
	if want := 0.5 + 45.0/70*0.3; d.Confidence != want {
		t.Fatalf("confidence = %v, want %v", d.Confidence, want)
	}

	// A roll past the punch bucket lands on block, the only other
	// eligible move.
	e = newTestEngine(0.9)
	e.UpdateContext(ContextUpdate{BotEnergy: &energy})
	if d := e.Decide(); d.Move != game.MoveBlock {
		t.Fatalf("move = %s, want block", d.Move)
	}
}

func TestDecide_WeightedRandomRepeatPenalty(t *testing.T) {
	// Last bot move punch: weights 20/25/25/20, total 90. A draw of
	// 22.5 lands in the kick bucket only because punch dropped to 20.
	e := newTestEngine(0.25)
	e.RecordBotMove(game.MovePunch)
	d := e.Decide()
	if d.Move != game.MoveKick {
		t.Fatalf("move = %s, want kick (punch weight reduced)", d.Move)
	}
	if want := 0.5 + 25.0/90*0.3; d.Confidence != want {
		t.Fatalf("confidence = %v, want %v", d.Confidence, want)
	}
}
