package game

import (
	"io"
	"math/rand"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/config"
	"cluedo-manor/internal/player"
)

func nullLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGameDeal(t *testing.T) {
	// GIVEN a standard game configuration
	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	seededRand := rand.New(rand.NewSource(1))

	// WHEN we build a new game (which deals automatically)
	g, err := NewBuilder(cfg, nullLogger(), seededRand).WithPassiveSeats(1).WithAISeats(3).Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}

	// THEN the resulting game state must be valid
	t.Run("solution has one card of each category", func(t *testing.T) {
		if cfg.CardToType[g.solution.Suspect] != config.CategorySuspect {
			t.Errorf("Solution suspect %q is not a suspect", g.solution.Suspect)
		}
		if cfg.CardToType[g.solution.Weapon] != config.CategoryWeapon {
			t.Errorf("Solution weapon %q is not a weapon", g.solution.Weapon)
		}
		if cfg.CardToType[g.solution.Room] != config.CategoryRoom {
			t.Errorf("Solution room %q is not a room", g.solution.Room)
		}
	})

	t.Run("all cards are accounted for", func(t *testing.T) {
		total := 3
		for _, seat := range g.Seats {
			total += len(seat.Hand)
		}
		if total != len(cfg.AllCards) {
			t.Errorf("Card count mismatch. Expected %d total cards, but accounted for %d", len(cfg.AllCards), total)
		}
	})

	t.Run("no seat was dealt a solution card", func(t *testing.T) {
		for _, seat := range g.Seats {
			for _, card := range g.solution.Cards() {
				if seat.holds(card) {
					t.Errorf("Seat %s was dealt the solution card %s", seat.Name, card)
				}
			}
		}
	})

	t.Run("seats, statuses, and board tokens line up", func(t *testing.T) {
		if len(g.Seats) != 4 {
			t.Fatalf("Expected 4 seats, got %d", len(g.Seats))
		}
		inactive := 0
		for i, seat := range g.Seats {
			if seat.ID != i {
				t.Errorf("Seat %d has id %d", i, seat.ID)
			}
			if seat.Status == player.StatusInactive {
				inactive++
			}
			if _, ok := g.Board.PositionOf(seat.ID); !ok {
				t.Errorf("Seat %s has no board token", seat.Name)
			}
		}
		if inactive != 1 {
			t.Errorf("Expected exactly 1 inactive seat, got %d", inactive)
		}
	})

	t.Run("every agent was dealt its seat's hand", func(t *testing.T) {
		for _, seat := range g.Seats {
			want := append([]string(nil), seat.Hand...)
			sort.Strings(want)
			got := seat.Agent.Hand()
			if len(got) != len(want) {
				t.Fatalf("Seat %s: agent hand %v does not match dealt %v", seat.Name, got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("Seat %s: agent hand %v does not match dealt %v", seat.Name, got, want)
					break
				}
			}
		}
	})
}

func TestBuilderPinnedSolution(t *testing.T) {
	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	pinned := config.Suggestion{Suspect: "Mrs. White", Weapon: "Lead Pipe", Room: "Kitchen"}

	g, err := NewBuilder(cfg, nullLogger(), rand.New(rand.NewSource(7))).
		WithAISeats(3).
		WithSolution(pinned).
		Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}

	if g.solution != pinned {
		t.Errorf("Expected the pinned solution %v, got %v", pinned, g.solution)
	}
	for _, seat := range g.Seats {
		for _, card := range pinned.Cards() {
			if seat.holds(card) {
				t.Errorf("Seat %s holds the pinned solution card %s", seat.Name, card)
			}
		}
	}
}

func TestBuilderRejectsBadSeatCounts(t *testing.T) {
	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if _, err := NewBuilder(cfg, nullLogger(), rand.New(rand.NewSource(1))).WithAISeats(1).Build(); err == nil {
		t.Error("Expected a single-seat game to be rejected")
	}
	if _, err := NewBuilder(cfg, nullLogger(), rand.New(rand.NewSource(1))).WithPassiveSeats(3).WithAISeats(4).Build(); err == nil {
		t.Error("Expected more seats than suspects to be rejected")
	}
}
