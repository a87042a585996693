package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// CardCategory defines the type of a card using a typed enum.
type CardCategory int

const (
	CategorySuspect CardCategory = iota
	CategoryWeapon
	CategoryRoom
)

func (cc CardCategory) String() string {
	return []string{"suspects", "weapons", "rooms"}[cc]
}

// Categories lists the card categories in canonical order.
func Categories() []CardCategory {
	return []CardCategory{CategorySuspect, CategoryWeapon, CategoryRoom}
}

// Suggestion names one card per category. The room is fixed to the
// suggester's current room at creation time; an accusation reuses the same
// shape and is checked field-wise against the hidden solution.
type Suggestion struct {
	Suspect string
	Weapon  string
	Room    string
}

// Cards returns the suggestion's cards in canonical category order.
func (s Suggestion) Cards() []string {
	return []string{s.Suspect, s.Weapon, s.Room}
}

func (s Suggestion) String() string {
	return fmt.Sprintf("%s with the %s in the %s", s.Suspect, s.Weapon, s.Room)
}

// GameConfig holds the static card taxonomy and board seating for a game.
type GameConfig struct {
	Suspects       []string                `json:"suspects"`
	Weapons        []string                `json:"weapons"`
	Rooms          []string                `json:"rooms"`
	StartPositions map[string][2]int       `json:"start_positions"`
	AllCards       []string                `json:"-"`
	CardToType     map[string]CardCategory `json:"-"`
}

// Load reads, parses, and prepares the game configuration from a file.
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.prepare()
	return &cfg, nil
}

// New builds a config directly from card lists. Used by tests and synthetic
// boards that do not want to touch the filesystem.
func New(suspects, weapons, rooms []string) *GameConfig {
	cfg := &GameConfig{Suspects: suspects, Weapons: weapons, Rooms: rooms}
	cfg.prepare()
	return cfg
}

func (c *GameConfig) prepare() {
	c.CardToType = make(map[string]CardCategory)
	sort.Strings(c.Suspects)
	sort.Strings(c.Weapons)
	sort.Strings(c.Rooms)

	c.AllCards = nil
	for _, card := range c.Suspects {
		c.AllCards = append(c.AllCards, card)
		c.CardToType[card] = CategorySuspect
	}
	for _, card := range c.Weapons {
		c.AllCards = append(c.AllCards, card)
		c.CardToType[card] = CategoryWeapon
	}
	for _, card := range c.Rooms {
		c.AllCards = append(c.AllCards, card)
		c.CardToType[card] = CategoryRoom
	}
}

// DeepCopy creates a new GameConfig with all slices copied to prevent shared state.
func (c *GameConfig) DeepCopy() *GameConfig {
	newCfg := &GameConfig{
		CardToType:     make(map[string]CardCategory, len(c.CardToType)),
		StartPositions: make(map[string][2]int, len(c.StartPositions)),
	}
	newCfg.Suspects = append([]string(nil), c.Suspects...)
	newCfg.Weapons = append([]string(nil), c.Weapons...)
	newCfg.Rooms = append([]string(nil), c.Rooms...)
	newCfg.AllCards = append([]string(nil), c.AllCards...)
	for k, v := range c.CardToType {
		newCfg.CardToType[k] = v
	}
	for k, v := range c.StartPositions {
		newCfg.StartPositions[k] = v
	}
	return newCfg
}

// CardListForCategory is a helper to get the correct card list from the config.
func (c *GameConfig) CardListForCategory(cat CardCategory) []string {
	switch cat {
	case CategorySuspect:
		return c.Suspects
	case CategoryWeapon:
		return c.Weapons
	case CategoryRoom:
		return c.Rooms
	default:
		return nil
	}
}

// IsCard reports whether name is a known card of any category.
func (c *GameConfig) IsCard(name string) bool {
	_, ok := c.CardToType[name]
	return ok
}
