package service

import (
	"context"
	"strings"
	"testing"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
)

func TestCreateAndJoinMatch(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, CreateMatchRequest{
		MatchCode:    "JOINME01",
		Address:      "0xaaa",
		DisplayName:  "P1",
		CharacterKey: "brawler",
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if m.Status != game.StatusWaitingForOpponent {
		t.Fatalf("status = %s, want waiting", m.Status)
	}
	if m.Player1.Health != 100 || m.Player1.Energy != 50 {
		t.Fatalf("player1 init = %d/%d, want 100/50", m.Player1.Health, m.Player1.Energy)
	}

	if _, err := svc.JoinMatch(ctx, "JOINME01", "0xaaa", "P1", "brawler"); err != ErrCannotJoinOwnMatch {
		t.Fatalf("err = %v, want ErrCannotJoinOwnMatch", err)
	}
	if _, err := svc.JoinMatch(ctx, "JOINME01", "0xbbb", "P2", "unknown"); err != ErrUnknownCharacter {
		t.Fatalf("err = %v, want ErrUnknownCharacter", err)
	}

	m, err = svc.JoinMatch(ctx, "JOINME01", "0xbbb", "P2", "brawler")
	if err != nil {
		t.Fatalf("JoinMatch: %v", err)
	}
	if m.Status != game.StatusInProgress || m.RoundNumber != 1 || m.TurnNumber != 1 {
		t.Fatalf("match not started: %s round %d turn %d", m.Status, m.RoundNumber, m.TurnNumber)
	}
	if m.MoveDeadline.IsZero() {
		t.Fatalf("no move deadline set")
	}

	if _, err := svc.JoinMatch(ctx, "JOINME01", "0xccc", "P3", "brawler"); err != ErrMatchFull {
		t.Fatalf("err = %v, want ErrMatchFull", err)
	}
}

func TestCreateMatch_VsBotStartsImmediately(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	m, err := svc.CreateMatch(context.Background(), CreateMatchRequest{
		MatchCode:    "BOTGAME1",
		Address:      "0xaaa",
		DisplayName:  "P1",
		CharacterKey: "brawler",
		VsBot:        true,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if m.Status != game.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", m.Status)
	}
	if m.Player2.Address != BotAddress {
		t.Fatalf("player2 address = %q, want %q", m.Player2.Address, BotAddress)
	}
	if !strings.HasPrefix(m.Player2.DisplayName, "Fighter_") {
		t.Fatalf("bot name = %q", m.Player2.DisplayName)
	}
	if m.Player2.Health != 100 || m.Player2.Energy != 50 {
		t.Fatalf("bot init = %d/%d, want 100/50", m.Player2.Health, m.Player2.Energy)
	}
}

func TestCreateMatch_UnknownCharacter(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	_, err := svc.CreateMatch(context.Background(), CreateMatchRequest{
		MatchCode:    "BADCHAR1",
		Address:      "0xaaa",
		CharacterKey: "dragon",
	})
	if err != ErrUnknownCharacter {
		t.Fatalf("err = %v, want ErrUnknownCharacter", err)
	}
}
