package game

import (
	"math/rand"
	"testing"

	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/events"
	"cluedo-manor/internal/path"
	"cluedo-manor/internal/player"
)

// setupArbiterGame builds a three-seat game with fully known hands so the
// refutation and accusation protocol can be exercised without dice or AI.
func setupArbiterGame(t *testing.T) *Game {
	t.Helper()

	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	log := nullLogger()
	b := board.NewClassic(log)

	g := &Game{
		Config:       cfg,
		Board:        b,
		EventManager: events.NewManager(),
		solution:     config.Suggestion{Suspect: "Mrs. White", Weapon: "Lead Pipe", Room: "Lounge"},
		finder:       path.NewFinder(b),
		log:          log,
		rand:         rand.New(rand.NewSource(1)),
	}

	hands := map[string][]string{
		"Alice": {"Miss Scarlett", "Rope"},
		"Bob":   {"Candlestick", "Library"},
		"Carol": {"Mrs. Peacock", "Revolver", "Kitchen"},
	}
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		agent := player.NewPassiveAgent(name)
		agent.ReceiveHand(hands[name])
		g.Seats = append(g.Seats, &Seat{ID: i, Name: name, Status: player.StatusActive, Hand: hands[name], Agent: agent})
		if err := b.AddPlayer(i, board.HallwayPosition(5, 4+i)); err != nil {
			t.Fatalf("Failed to place seat %s: %v", name, err)
		}
	}
	return g
}

func TestRefutationTraversal(t *testing.T) {
	g := setupArbiterGame(t)
	alice, bob := g.Seats[0], g.Seats[1]

	t.Run("it asks every seat until the first holder reveals", func(t *testing.T) {
		s := config.Suggestion{Suspect: "Mrs. Peacock", Weapon: "Revolver", Room: "Kitchen"}
		asked, revealer, shown := g.resolveRefutation(alice, s)

		if len(asked) != 2 || asked[0] != "Bob" || asked[1] != "Carol" {
			t.Errorf("Expected asked order [Bob Carol], got %v", asked)
		}
		if revealer != "Carol" {
			t.Errorf("Expected Carol to reveal, got %q", revealer)
		}
		if shown != "Kitchen" {
			t.Errorf("Expected the first sorted match Kitchen, got %q", shown)
		}
	})

	t.Run("it stops at the first holder", func(t *testing.T) {
		s := config.Suggestion{Suspect: "Mrs. Peacock", Weapon: "Candlestick", Room: "Study"}
		asked, revealer, shown := g.resolveRefutation(alice, s)

		if len(asked) != 1 || asked[0] != "Bob" {
			t.Errorf("Expected the traversal to stop at Bob, got %v", asked)
		}
		if revealer != "Bob" || shown != "Candlestick" {
			t.Errorf("Expected Bob to show the Candlestick, got %q / %q", revealer, shown)
		}
	})

	t.Run("it wraps around the table from a middle seat", func(t *testing.T) {
		s := config.Suggestion{Suspect: "Miss Scarlett", Weapon: "Rope", Room: "Study"}
		asked, revealer, shown := g.resolveRefutation(bob, s)

		if len(asked) != 2 || asked[0] != "Carol" || asked[1] != "Alice" {
			t.Errorf("Expected asked order [Carol Alice], got %v", asked)
		}
		if revealer != "Alice" || shown != "Miss Scarlett" {
			t.Errorf("Expected Alice to show Miss Scarlett, got %q / %q", revealer, shown)
		}
	})

	t.Run("an eliminated seat is still asked and still reveals", func(t *testing.T) {
		g.Seats[2].Status = player.StatusEliminated
		defer func() { g.Seats[2].Status = player.StatusActive }()

		s := config.Suggestion{Suspect: "Mrs. Peacock", Weapon: "Wrench", Room: "Hall"}
		asked, revealer, shown := g.resolveRefutation(alice, s)

		if len(asked) != 2 || asked[1] != "Carol" {
			t.Errorf("Expected Carol to still be asked, got %v", asked)
		}
		if revealer != "Carol" || shown != "Mrs. Peacock" {
			t.Errorf("Expected the eliminated Carol to reveal Mrs. Peacock, got %q / %q", revealer, shown)
		}
	})

	t.Run("a suggestion nobody can refute records everyone as asked", func(t *testing.T) {
		s := config.Suggestion{Suspect: "Mrs. White", Weapon: "Lead Pipe", Room: "Lounge"}
		asked, revealer, shown := g.resolveRefutation(alice, s)

		if len(asked) != 2 {
			t.Errorf("Expected both other seats asked, got %v", asked)
		}
		if revealer != "" || shown != "" {
			t.Errorf("Expected no revealer, got %q / %q", revealer, shown)
		}
	})
}

// spyAgent records the observations the arbiter delivers to it.
type spyAgent struct {
	*player.PassiveAgent
	observed []belief.Observation
}

func (s *spyAgent) ObserveRefutation(obs belief.Observation) {
	s.observed = append(s.observed, obs)
}

func TestBroadcastPrivacy(t *testing.T) {
	// GIVEN an arbiter game where every seat records what it is told
	g := setupArbiterGame(t)
	spies := make(map[string]*spyAgent, len(g.Seats))
	for _, seat := range g.Seats {
		spy := &spyAgent{PassiveAgent: seat.Agent.(*player.PassiveAgent)}
		seat.Agent = spy
		spies[seat.Name] = spy
	}

	// WHEN a refutation outcome is broadcast
	s := config.Suggestion{Suspect: "Mrs. Peacock", Weapon: "Revolver", Room: "Kitchen"}
	g.broadcast("Alice", s, []string{"Bob", "Carol"}, "Carol", "Kitchen")

	// THEN the shown card travels only to suggester and revealer
	if got := spies["Alice"].observed[0].Shown; got != "Kitchen" {
		t.Errorf("The suggester should learn the shown card, got %q", got)
	}
	if got := spies["Carol"].observed[0].Shown; got != "Kitchen" {
		t.Errorf("The revealer should see its own card, got %q", got)
	}
	if got := spies["Bob"].observed[0].Shown; got != "" {
		t.Errorf("A bystander must not learn the shown card, got %q", got)
	}

	// AND the public part is identical for everyone
	for name, spy := range spies {
		obs := spy.observed[0]
		if obs.Suggester != "Alice" || obs.Revealer != "Carol" || len(obs.Asked) != 2 {
			t.Errorf("Seat %s got a malformed public observation: %+v", name, obs)
		}
	}
}

func TestAccusationResolution(t *testing.T) {
	g := setupArbiterGame(t)
	alice, bob := g.Seats[0], g.Seats[1]

	t.Run("a wrong accusation eliminates and parks the accuser", func(t *testing.T) {
		over := g.resolveAccusation(alice, config.Suggestion{Suspect: "Mrs. Peacock", Weapon: "Rope", Room: "Hall"})

		if over || g.Over() {
			t.Error("The game should continue while other seats are active")
		}
		if alice.Status != player.StatusEliminated {
			t.Errorf("Expected Alice eliminated, got %s", alice.Status)
		}
		pos, _ := g.Board.PositionOf(alice.ID)
		if !pos.InRoom || pos.Room != "Ballroom" {
			t.Errorf("Expected the eliminated token parked in the Ballroom, got %v", pos)
		}
	})

	t.Run("a correct accusation ends the game", func(t *testing.T) {
		over := g.resolveAccusation(bob, config.Suggestion{Suspect: "Mrs. White", Weapon: "Lead Pipe", Room: "Lounge"})

		if !over || !g.Over() {
			t.Error("Expected the game to be over")
		}
		if g.Winner() != "Bob" {
			t.Errorf("Expected Bob to win, got %q", g.Winner())
		}
	})
}

func TestLastActiveSeatEliminatedIsStalemate(t *testing.T) {
	g := setupArbiterGame(t)
	g.Seats[1].Status = player.StatusInactive
	g.Seats[2].Status = player.StatusInactive

	over := g.resolveAccusation(g.Seats[0], config.Suggestion{Suspect: "Mrs. Peacock", Weapon: "Rope", Room: "Hall"})

	if !over || !g.Over() {
		t.Error("Expected the stalemate to end the game")
	}
	if g.Winner() != "" {
		t.Errorf("A stalemate has no winner, got %q", g.Winner())
	}
}

func TestPlayTurnSkipsNonActiveSeats(t *testing.T) {
	g := setupArbiterGame(t)
	g.Seats[0].Status = player.StatusInactive

	// WHEN the inactive seat's turn comes up
	over := g.PlayTurn()

	// THEN the turn is consumed without any action
	if over {
		t.Error("Skipping a seat must not end the game")
	}
	if g.turn != 1 {
		t.Errorf("Expected the turn counter to advance, got %d", g.turn)
	}
	if len(g.History()) != 0 {
		t.Error("A skipped seat must not produce suggestions")
	}
}

func TestFullSimulationInvariants(t *testing.T) {
	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	for _, seed := range []int64{1, 2, 3} {
		g, err := NewBuilder(cfg, nullLogger(), rand.New(rand.NewSource(seed))).WithAISeats(3).Build()
		if err != nil {
			t.Fatalf("seed %d: failed to build game: %v", seed, err)
		}

		winner, correct := g.RunSimulation()

		if !g.Over() {
			t.Errorf("seed %d: simulation finished but the game is not over", seed)
		}
		if winner != "" && !correct {
			t.Errorf("seed %d: a named winner implies a correct accusation", seed)
		}
		if winner != "" && g.SeatByName(winner) == nil {
			t.Errorf("seed %d: winner %q is not a seat", seed, winner)
		}
		if len(g.History()) == 0 {
			t.Errorf("seed %d: expected at least one suggestion over a full game", seed)
		}

		for i, entry := range g.History() {
			if entry.Revealer == "" {
				continue
			}
			seat := g.SeatByName(entry.Revealer)
			if seat == nil {
				t.Fatalf("seed %d: history entry %d names unknown revealer %q", seed, i, entry.Revealer)
			}
			if !seat.holds(entry.Shown) {
				t.Errorf("seed %d: %s revealed %q without holding it", seed, entry.Revealer, entry.Shown)
			}
			if !contains(entry.Suggestion.Cards(), entry.Shown) {
				t.Errorf("seed %d: revealed card %q is not part of the suggestion", seed, entry.Shown)
			}
			if entry.Asked[len(entry.Asked)-1] != entry.Revealer {
				t.Errorf("seed %d: the revealer must be the last seat asked, got %v", seed, entry.Asked)
			}
		}
	}
}
