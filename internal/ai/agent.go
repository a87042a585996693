// Package ai implements the automated player: a belief store fed by the
// turn protocol, a decision policy over it, and pathfinding to act on the
// resulting knowledge.
package ai

import (
	"sort"

	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/path"
)

// Agent is the reasoning player. All mutation happens through the turn
// protocol; the agent only answers questions from its own knowledge.
type Agent struct {
	name    string
	cfg     *config.GameConfig
	store   *belief.Store
	policy  *Policy
	finder  *path.Finder
	log     logrus.FieldLogger
	players []string
	quota   map[string]int
	hand    map[string]struct{}
	shown   map[string]struct{}
}

// NewAgent constructs an automated player. The chooser isolates every
// intentional random tie-break; inject DeterministicChooser for reproducible
// runs.
func NewAgent(name string, cfg *config.GameConfig, finder *path.Finder, chooser Chooser, log logrus.FieldLogger) *Agent {
	l := log.WithField("player", name)
	return &Agent{
		name:   name,
		cfg:    cfg,
		policy: NewPolicy(cfg, chooser, l),
		finder: finder,
		log:    l,
		hand:   make(map[string]struct{}),
		shown:  make(map[string]struct{}),
	}
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) Hand() []string {
	cards := make([]string, 0, len(a.hand))
	for card := range a.hand {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

// Setup records the public table facts. Must precede ReceiveHand.
func (a *Agent) Setup(playerNames []string, handSizes map[string]int) {
	a.players = append([]string(nil), playerNames...)
	a.quota = make(map[string]int, len(handSizes))
	for name, n := range handSizes {
		a.quota[name] = n
	}
}

// ReceiveHand deals the hand and initializes the knowledge base. Own cards
// are marked known through the same path runtime updates use.
func (a *Agent) ReceiveHand(cards []string) {
	for _, card := range cards {
		a.hand[card] = struct{}{}
	}
	a.store = belief.NewStore(a.cfg, a.name, a.players, cards, a.quota, a.log)
	a.log.Debugf("knowledge base initialized, %d cards in hand", len(cards))
}

// Store exposes the knowledge base for rendering detective notes.
func (a *Agent) Store() *belief.Store { return a.store }

// Players returns the seating order recorded at setup.
func (a *Agent) Players() []string {
	return append([]string(nil), a.players...)
}

// Config exposes the agent's card configuration for rendering.
func (a *Agent) Config() *config.GameConfig { return a.cfg }

// PlanTurn picks the travel target for this turn.
func (a *Agent) PlanTurn(pos board.Position) (string, []path.Action) {
	target, actions := a.policy.PickTargetRoom(a.store, a.finder, pos)
	a.log.Debugf("targeting %s (%d actions)", target, len(actions))
	return target, actions
}

// Suggest names a suspect and weapon by the minimum-holder rule; the room is
// fixed to the current room.
func (a *Agent) Suggest(room string) config.Suggestion {
	return config.Suggestion{
		Suspect: a.policy.PickCard(a.store, config.CategorySuspect),
		Weapon:  a.policy.PickCard(a.store, config.CategoryWeapon),
		Room:    room,
	}
}

func (a *Agent) ShouldAccuse() bool {
	return a.store != nil && a.store.ShouldAccuse()
}

// Accuse returns the solved triple. Calling it without ShouldAccuse having
// returned true is a caller contract violation.
func (a *Agent) Accuse() config.Suggestion {
	acc, ok := a.store.Accusation()
	if !ok {
		panic("ai: Accuse called while the solution candidates do not form a valid triple")
	}
	return acc
}

// ChooseCardToShow answers a refutation request. The shown card is recorded
// so later refutations can repeat it instead of leaking a fresh card.
func (a *Agent) ChooseCardToShow(s config.Suggestion) string {
	card := a.policy.ChooseCardToShow(s, a.hand, a.shown)
	if card != "" {
		a.shown[card] = struct{}{}
	}
	return card
}

func (a *Agent) ObserveSuggestion(suggester string, s config.Suggestion) {
	a.log.Debugf("observed %s suggesting %s", suggester, s)
}

func (a *Agent) ObserveRefutation(obs belief.Observation) {
	a.store.Observe(obs)
}
