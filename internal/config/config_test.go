package config

import (
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// GIVEN the default configuration file
	cfg, err := Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	t.Run("it loads the full card taxonomy", func(t *testing.T) {
		if len(cfg.Suspects) != 6 {
			t.Errorf("Expected 6 suspects, got %d", len(cfg.Suspects))
		}
		if len(cfg.Weapons) != 6 {
			t.Errorf("Expected 6 weapons, got %d", len(cfg.Weapons))
		}
		if len(cfg.Rooms) != 9 {
			t.Errorf("Expected 9 rooms, got %d", len(cfg.Rooms))
		}
		if len(cfg.AllCards) != 21 {
			t.Errorf("Expected 21 cards in total, got %d", len(cfg.AllCards))
		}
	})

	t.Run("it indexes every card by category", func(t *testing.T) {
		if cfg.CardToType["Miss Scarlett"] != CategorySuspect {
			t.Error("Miss Scarlett should be a suspect")
		}
		if cfg.CardToType["Rope"] != CategoryWeapon {
			t.Error("Rope should be a weapon")
		}
		if cfg.CardToType["Kitchen"] != CategoryRoom {
			t.Error("Kitchen should be a room")
		}
		if cfg.IsCard("Colonel Ketchup") {
			t.Error("Unknown card should not be indexed")
		}
	})

	t.Run("it keeps card lists sorted", func(t *testing.T) {
		for i := 1; i < len(cfg.Suspects); i++ {
			if cfg.Suspects[i-1] > cfg.Suspects[i] {
				t.Fatalf("Suspects not sorted: %q before %q", cfg.Suspects[i-1], cfg.Suspects[i])
			}
		}
	})

	t.Run("it carries a start position for every suspect", func(t *testing.T) {
		for _, name := range cfg.Suspects {
			if _, ok := cfg.StartPositions[name]; !ok {
				t.Errorf("No start position for %s", name)
			}
		}
	})
}

func TestDeepCopyIsolation(t *testing.T) {
	// GIVEN a config and its deep copy
	cfg := New([]string{"Green", "Plum"}, []string{"Rope"}, []string{"Hall"})
	cp := cfg.DeepCopy()

	// WHEN the copy is mutated
	cp.Suspects[0] = "Mutated"
	cp.CardToType["Rope"] = CategoryRoom

	// THEN the original is untouched
	if cfg.Suspects[0] != "Green" {
		t.Error("DeepCopy shares the suspects slice")
	}
	if cfg.CardToType["Rope"] != CategoryWeapon {
		t.Error("DeepCopy shares the CardToType map")
	}
}

func TestSuggestionCanonicalOrder(t *testing.T) {
	s := Suggestion{Suspect: "Plum", Weapon: "Rope", Room: "Hall"}

	cards := s.Cards()
	if len(cards) != 3 || cards[0] != "Plum" || cards[1] != "Rope" || cards[2] != "Hall" {
		t.Errorf("Cards() out of canonical order: %v", cards)
	}
	if got := s.String(); got != "Plum with the Rope in the Hall" {
		t.Errorf("Unexpected suggestion string: %q", got)
	}
}
