package cli

import (
	"fmt"
	"strings"

	"cluedo-manor/internal/ai"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/events"
	"cluedo-manor/internal/game"
)

// SimulationRenderer implements the events.Listener interface to print game state to the console.
type SimulationRenderer struct {
	// ShowMoves enables per-step movement lines; off by default because a
	// full simulation commits hundreds of them.
	ShowMoves bool
}

// HandleEvent is the central dispatcher for rendering events.
func (r *SimulationRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		var parts []string
		for _, name := range event.PlayerNames {
			parts = append(parts, ColorizeCard(name))
		}
		C.Header.Println("--- Starting Game: Initial State ---")
		C.Info.Printf("Seating order: %s\n", strings.Join(parts, ", "))
	case events.TurnStartEvent:
		C.Header.Printf("\n--- Turn %d: %s ---\n", event.TurnNumber, ColorizeCard(event.PlayerName))
	case events.DiceRolledEvent:
		C.Info.Printf("%s rolls a %d.\n", ColorizeCard(event.PlayerName), event.Roll)
	case events.MoveCommittedEvent:
		if !r.ShowMoves {
			return
		}
		if event.Position.InRoom {
			C.Info.Printf("%s enters the %s.\n", ColorizeCard(event.PlayerName), event.Position.Room)
		} else {
			cell := event.Position.Cell
			C.Info.Printf("%s moves to (%d,%d).\n", ColorizeCard(event.PlayerName), cell.Row, cell.Col)
		}
	case events.SuggestionMadeEvent:
		C.Info.Printf("%s suggests: %s\n", ColorizeCard(event.PlayerName), colorizeSuggestionCards(event.Suggestion.Cards()))
	case events.RefutationResolvedEvent:
		if event.RevealerName == "" {
			C.Warn.Println("-> No player could show a card.")
			return
		}
		C.Info.Printf("-> %s shows a card to %s.\n", ColorizeCard(event.RevealerName), ColorizeCard(event.SuggesterName))
	case events.AccusationEvent:
		C.Header.Printf("%s ACCUSES: %s\n", ColorizeCard(event.PlayerName), colorizeSuggestionCards(event.Accusation.Cards()))
	case events.EliminationEvent:
		C.No.Printf("%s accused wrongly and is out of the game.\n", ColorizeCard(event.PlayerName))
	case events.GameOverEvent:
		r.renderGameResult(event)
	}
}

func (r *SimulationRenderer) renderGameResult(event events.GameOverEvent) {
	C.Header.Println("\n--- GAME OVER ---")
	switch {
	case event.Winner != "":
		C.Yes.Printf("The accusation is CORRECT! %s wins!\n", ColorizeCard(event.Winner))
	case event.Stalemate:
		C.Warn.Println("Every seat is eliminated. The mystery stands unsolved.")
	default:
		C.Warn.Println("Game ended without a correct accusation.")
	}
	C.Info.Printf("The correct solution was: %s\n", colorizeSuggestionCards(event.Solution.Cards()))
}

func colorizeSuggestionCards(cards []string) string {
	var parts []string
	for _, card := range cards {
		parts = append(parts, ColorizeCard(card))
	}
	return strings.Join(parts, ", ")
}

// RenderBoard prints the mansion grid with player tokens overlaid. Tokens
// render as the seat's index so up to ten seats stay distinguishable.
func RenderBoard(b *board.Board, names []string) {
	rows, cols := b.Dimensions()
	for row := 0; row < rows; row++ {
		var sb strings.Builder
		for col := 0; col < cols; col++ {
			cell := board.Cell{Row: row, Col: col}
			if id, ok := b.PlayerAt(cell); ok {
				token := fmt.Sprintf("%d", id)
				if id < len(names) {
					if c, ok := SuspectColors[names[id]]; ok {
						token = c.Sprint(token)
					}
				}
				sb.WriteString(token)
				continue
			}
			sb.WriteByte(b.Symbol(cell))
		}
		fmt.Println(sb.String())
	}
}

// DisplayAINotes renders the final knowledge base of a reasoning seat.
func DisplayAINotes(seat *game.Seat) {
	agent, ok := seat.Agent.(*ai.Agent)
	if !ok || agent.Store() == nil {
		return
	}
	fmt.Println()
	C.Header.Printf("--- Notes for %s ---\n", ColorizeCard(agent.Name()))
	RenderNotes(agent.Name(), agent.Config(), agent.Players(), agent.Store())
}
