package player

import (
	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/path"
)

// Status is the lifecycle state of a seat.
//
//	Active --(wrong accusation)--> Eliminated   (terminal)
//	Active --(correct accusation)--> game over, seat wins
//	Inactive is assigned at setup and never changes.
//
// Eliminated and Inactive seats no longer take turns but keep their hands
// and keep refuting.
type Status int

const (
	StatusActive Status = iota
	StatusInactive
	StatusEliminated
)

func (s Status) String() string {
	return []string{"active", "inactive", "eliminated"}[s]
}

// CanTakeTurn reports whether a seat with this status acts on its turn.
func (s Status) CanTakeTurn() bool {
	return s == StatusActive
}

// Agent is the decision-making side of a seat. The turn protocol owns all
// board mutation and event ordering; agents only answer questions. Every
// agent sees every public suggestion/refutation through the Observe methods
// so all knowledge bases stay synchronized.
type Agent interface {
	Name() string
	Hand() []string
	// Setup provides the public table facts: seating names and per-player
	// dealt hand sizes. Called once, before ReceiveHand.
	Setup(playerNames []string, handSizes map[string]int)
	ReceiveHand(cards []string)
	// PlanTurn picks a travel target and the path toward it from the given
	// position. A nil path with a non-empty target means the target is
	// currently unreachable; the agent stays put.
	PlanTurn(pos board.Position) (targetRoom string, actions []path.Action)
	// Suggest builds a suggestion whose room is the agent's current room.
	Suggest(room string) config.Suggestion
	ShouldAccuse() bool
	// Accuse returns the accusation triple. Calling it when ShouldAccuse is
	// false is a contract violation and panics.
	Accuse() config.Suggestion
	// ChooseCardToShow picks one held card matching the suggestion, or ""
	// when none match.
	ChooseCardToShow(s config.Suggestion) string
	ObserveSuggestion(suggester string, s config.Suggestion)
	ObserveRefutation(obs belief.Observation)
}
