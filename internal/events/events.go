package events

import (
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
)

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to events.
type Listener interface {
	HandleEvent(e Event)
}

// Manager dispatches events to subscribed listeners, in subscription order.
// The bus carries presentation events only; agent knowledge synchronization
// goes through the turn protocol directly so event ordering toward the
// reasoning cores is never at the mercy of listener registration.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}

func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// GameReadyEvent is published once the game is built and cards are dealt.
type GameReadyEvent struct {
	PlayerNames []string
}

type TurnStartEvent struct {
	TurnNumber int
	PlayerName string
}

type DiceRolledEvent struct {
	PlayerName string
	Roll       int
}

// MoveCommittedEvent fires after each movement primitive the protocol
// commits to the board.
type MoveCommittedEvent struct {
	PlayerName string
	Position   board.Position
}

type SuggestionMadeEvent struct {
	PlayerName string
	Suggestion config.Suggestion
}

// RefutationResolvedEvent carries the full public outcome of a suggestion.
// RevealedCard is ground truth for debug rendering; agents never see it
// through the bus.
type RefutationResolvedEvent struct {
	SuggesterName string
	Suggestion    config.Suggestion
	Asked         []string
	RevealerName  string // empty when the suggestion stood unrefuted
	RevealedCard  string
}

type AccusationEvent struct {
	PlayerName string
	Accusation config.Suggestion
	Correct    bool
}

type EliminationEvent struct {
	PlayerName string
}

type GameOverEvent struct {
	Winner    string // empty on stalemate or turn-limit exhaustion
	Solution  config.Suggestion
	Stalemate bool
}
