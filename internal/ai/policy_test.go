package ai

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/path"
)

// setupTestPolicy builds a policy plus a fresh knowledge base for the
// viewpoint of "Alice", who holds Green and the Knife.
func setupTestPolicy() (*Policy, *belief.Store, *config.GameConfig) {
	cfg := config.New(
		[]string{"Green", "Plum", "Scarlett"},
		[]string{"Knife", "Rope", "Wrench"},
		[]string{"Hall", "Kitchen", "Study"},
	)
	log := logrus.New()
	log.SetOutput(io.Discard)

	quota := map[string]int{"Alice": 2, "Bob": 2, "Carol": 2}
	store := belief.NewStore(cfg, "Alice", []string{"Alice", "Bob", "Carol"}, []string{"Green", "Knife"}, quota, log)
	return NewPolicy(cfg, &DeterministicChooser{}, log), store, cfg
}

func nullLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPickCardPrefersCandidate(t *testing.T) {
	// GIVEN a knowledge base where Scarlett and the Rope are pinned as
	// solution candidates
	p, store, _ := setupTestPolicy()
	suggestion := config.Suggestion{Suspect: "Scarlett", Weapon: "Rope", Room: "Study"}
	store.Observe(belief.Observation{Suggester: "Bob", Suggestion: suggestion, Asked: []string{"Carol", "Alice"}})
	store.Observe(belief.Observation{Suggester: "Carol", Suggestion: suggestion, Asked: []string{"Alice", "Bob"}})

	// THEN the policy names the candidates unconditionally
	if got := p.PickCard(store, config.CategorySuspect); got != "Scarlett" {
		t.Errorf("Expected the candidate suspect Scarlett, got %q", got)
	}
	if got := p.PickCard(store, config.CategoryWeapon); got != "Rope" {
		t.Errorf("Expected the candidate weapon Rope, got %q", got)
	}
}

func TestPickCardMinimumHolders(t *testing.T) {
	// GIVEN that Bob passed on a suggestion naming Scarlett, so only Carol
	// can still hold her
	p, store, _ := setupTestPolicy()
	store.Observe(belief.Observation{
		Suggester:  "Alice",
		Suggestion: config.Suggestion{Suspect: "Scarlett", Weapon: "Wrench", Room: "Study"},
		Asked:      []string{"Bob", "Carol"},
		Revealer:   "Carol",
		Shown:      "Wrench",
	})

	// THEN the suspect with the smallest holder set is named
	if got := p.PickCard(store, config.CategorySuspect); got != "Scarlett" {
		t.Errorf("Expected Scarlett (1 possible holder), got %q", got)
	}
}

func TestPickCardFallbackWhenCategoryResolved(t *testing.T) {
	// GIVEN every suspect is resolved to an owner
	p, store, _ := setupTestPolicy()
	store.MarkOwned("Plum", "Bob")
	store.MarkOwned("Scarlett", "Carol")

	// THEN the policy still names something rather than stalling
	if got := p.PickCard(store, config.CategorySuspect); got != "Green" {
		t.Errorf("Expected the chooser's pick over the full list, got %q", got)
	}
}

func TestChooseCardToShow(t *testing.T) {
	p, _, _ := setupTestPolicy()
	hand := map[string]struct{}{"Green": {}, "Knife": {}}
	suggestion := config.Suggestion{Suspect: "Green", Weapon: "Knife", Room: "Hall"}

	t.Run("it repeats an already-shown card", func(t *testing.T) {
		shown := map[string]struct{}{"Knife": {}}
		if got := p.ChooseCardToShow(suggestion, hand, shown); got != "Knife" {
			t.Errorf("Expected the already-shown Knife, got %q", got)
		}
	})

	t.Run("it picks among matches when nothing was shown before", func(t *testing.T) {
		if got := p.ChooseCardToShow(suggestion, hand, nil); got != "Green" {
			t.Errorf("Expected the deterministic first match, got %q", got)
		}
	})

	t.Run("it returns nothing when the hand has no match", func(t *testing.T) {
		other := config.Suggestion{Suspect: "Plum", Weapon: "Rope", Room: "Study"}
		if got := p.ChooseCardToShow(other, hand, nil); got != "" {
			t.Errorf("Expected no card, got %q", got)
		}
	})
}

func TestPickTargetRoomPrefersCandidate(t *testing.T) {
	// GIVEN the Study is pinned as the solution room
	p, store, _ := setupTestPolicy()
	suggestion := config.Suggestion{Suspect: "Scarlett", Weapon: "Rope", Room: "Study"}
	store.Observe(belief.Observation{Suggester: "Bob", Suggestion: suggestion, Asked: []string{"Carol", "Alice"}})
	store.Observe(belief.Observation{Suggester: "Carol", Suggestion: suggestion, Asked: []string{"Alice", "Bob"}})

	finder := path.NewFinder(board.NewClassic(nullLogger()))

	// WHEN planning from the Kitchen
	room, actions := p.PickTargetRoom(store, finder, board.RoomPosition("Kitchen"))

	// THEN the candidate room wins, via the secret passage
	if room != "Study" {
		t.Fatalf("Expected the candidate room Study, got %q", room)
	}
	if len(actions) != 1 || actions[0].Kind != path.ActionSecretPassage {
		t.Errorf("Expected the one-action passage, got %v", actions)
	}
}

func TestPickTargetRoomNearestAmongTied(t *testing.T) {
	// GIVEN a fresh knowledge base where every room is equally unknown
	p, store, _ := setupTestPolicy()
	finder := path.NewFinder(board.NewClassic(nullLogger()))

	// WHEN planning from the Lounge
	room, actions := p.PickTargetRoom(store, finder, board.RoomPosition("Lounge"))

	// THEN the nearest tied room wins
	if room != "Hall" {
		t.Errorf("Expected the adjacent Hall, got %q", room)
	}
	if actions == nil {
		t.Error("Expected a concrete path to the chosen room")
	}
}

func TestPickTargetRoomUnreachableFallback(t *testing.T) {
	// GIVEN a board where no configured room can be entered at all
	p, store, _ := setupTestPolicy()
	layouts := map[string]board.RoomLayout{
		"Hall": {
			Origin: board.Cell{Row: 0, Col: 0},
			Rows:   []string{"###", "#H#", "###"},
		},
	}
	b, err := board.New(5, 5, layouts, nil, nullLogger())
	if err != nil {
		t.Fatalf("Failed to build test board: %v", err)
	}
	finder := path.NewFinder(b)

	room, actions := p.PickTargetRoom(store, finder, board.HallwayPosition(4, 4))

	// THEN the lexicographically first tied room is returned with no path,
	// which the turn protocol reads as "stay put this turn"
	if room != "Hall" {
		t.Errorf("Expected the fallback room Hall, got %q", room)
	}
	if actions != nil {
		t.Errorf("Expected no path, got %v", actions)
	}
}
