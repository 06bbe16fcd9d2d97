package bot

import (
	"math/rand"
	"testing"

	"bigtwo/internal/domain"
)

func cards(t *testing.T, ids ...string) []domain.Card {
	t.Helper()
	out, err := domain.ParseCardIDs(ids)
	if err != nil {
		t.Fatalf("parse cards %v: %v", ids, err)
	}
	return out
}

func botGame(t *testing.T, hands map[int][]string) *domain.Game {
	t.Helper()
	g := &domain.Game{
		Phase:   domain.PhasePlaying,
		Players: make(map[string]*domain.Player),
	}
	names := [4]string{"p0", "p1", "p2", "p3"}
	for seat, ids := range hands {
		uid := names[seat]
		g.Seats[seat] = uid
		g.Players[uid] = &domain.Player{UserID: uid, Seat: seat, Hand: cards(t, ids...)}
	}
	return g
}

func sameCards(a, b []domain.Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalBotPlaysWeakestBeatingMove(t *testing.T) {
	g := botGame(t, map[int][]string{
		0: {"5D", "9H", "KS"},
		1: {"6D", "7C", "8H"},
	})
	g.CurrentTurn = 0
	g.LastPlay = domain.NewLastPlay(cards(t, "8C"), 1)

	var brain NormalBot
	move, err := brain.CalculateMove(g, g.Players["p0"])
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if move.Pass {
		t.Fatal("bot passed with a beating single in hand")
	}
	if !sameCards(move.Cards, cards(t, "9H")) {
		t.Fatalf("move = %v, want the weakest beating single 9H", domain.CardIDs(move.Cards))
	}
}

func TestNormalBotPassesWhenNothingBeats(t *testing.T) {
	g := botGame(t, map[int][]string{
		0: {"5D", "6C", "7H"},
		1: {"8D", "9C", "10H"},
	})
	g.CurrentTurn = 0
	g.LastPlay = domain.NewLastPlay(cards(t, "2S"), 1)

	var brain NormalBot
	move, err := brain.CalculateMove(g, g.Players["p0"])
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if !move.Pass {
		t.Fatalf("move = %v, want pass against the 2 of spades", domain.CardIDs(move.Cards))
	}
}

func TestNormalBotOpensWithThreeOfDiamonds(t *testing.T) {
	g := botGame(t, map[int][]string{
		0: {"3D", "8C", "KS"},
		1: {"5D", "6C", "7H"},
	})
	g.CurrentTurn = 0
	g.FirstPlay = true

	var brain NormalBot
	move, err := brain.CalculateMove(g, g.Players["p0"])
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if !sameCards(move.Cards, cards(t, "3D")) {
		t.Fatalf("opening move = %v, want 3D", domain.CardIDs(move.Cards))
	}
}

func TestBotsBlockWhenNextPlayerHasOneCard(t *testing.T) {
	g := botGame(t, map[int][]string{
		0: {"5H", "7D", "3H"},
		1: {"2C"},
		2: {"8D", "9D", "10D"},
	})
	g.CurrentTurn = 0
	g.LastPlay = domain.NewLastPlay(cards(t, "4S"), 2)

	for _, brain := range []Brain{&NormalBot{}, &HardBot{}, &EasyBot{Rng: rand.New(rand.NewSource(1))}} {
		move, err := brain.CalculateMove(g, g.Players["p0"])
		if err != nil {
			t.Fatalf("CalculateMove: %v", err)
		}
		if move.Pass {
			t.Fatal("bot may not pass while holding a blocking single")
		}
		if !sameCards(move.Cards, cards(t, "7D")) {
			t.Fatalf("move = %v, want the forced highest single 7D", domain.CardIDs(move.Cards))
		}
	}
}

func TestHardBotSeizesLeadWithUnbeatableSingle(t *testing.T) {
	g := botGame(t, map[int][]string{
		0: {"JD", "2S"},
		1: {"6D", "7C", "8H"},
	})
	g.CurrentTurn = 0
	g.LastPlay = domain.NewLastPlay(cards(t, "9C"), 1)

	var brain HardBot
	move, err := brain.CalculateMove(g, g.Players["p0"])
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if !sameCards(move.Cards, cards(t, "2S")) {
		t.Fatalf("endgame move = %v, want the unbeatable 2S", domain.CardIDs(move.Cards))
	}
}

func TestEasyBotNeverPassesWhileLeading(t *testing.T) {
	g := botGame(t, map[int][]string{
		0: {"5D", "9H"},
		1: {"6D", "7C"},
	})
	g.CurrentTurn = 0

	brain := &EasyBot{Rng: rand.New(rand.NewSource(3))}
	for i := 0; i < 50; i++ {
		move, err := brain.CalculateMove(g, g.Players["p0"])
		if err != nil {
			t.Fatalf("CalculateMove: %v", err)
		}
		if move.Pass {
			t.Fatal("easy bot passed while leading")
		}
	}
}

func TestNewBrainByLevel(t *testing.T) {
	for _, level := range []BotLevel{BotLevelEasy, BotLevelNormal, BotLevelHard} {
		if _, err := NewBrain(level); err != nil {
			t.Fatalf("NewBrain(%d): %v", level, err)
		}
	}
	if _, err := NewBrain(BotLevel(99)); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFromDifficulty(t *testing.T) {
	cases := map[string]BotLevel{
		"easy":   BotLevelEasy,
		"normal": BotLevelNormal,
		"hard":   BotLevelHard,
		"":       BotLevelNormal,
		"bogus":  BotLevelNormal,
	}
	for difficulty, want := range cases {
		if got := LevelFromDifficulty(difficulty); got != want {
			t.Errorf("LevelFromDifficulty(%q) = %d, want %d", difficulty, got, want)
		}
	}
}

func TestAgentPlayUnknownGame(t *testing.T) {
	g := botGame(t, map[int][]string{0: {"5D"}})
	agent := &Agent{ID: "stranger", Strategy: &NormalBot{}}
	move, err := agent.Play(g)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !move.Pass {
		t.Fatal("agent outside the game must pass")
	}
}
