package game

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/events"
	"cluedo-manor/internal/path"
	"cluedo-manor/internal/player"
)

// maxTurns bounds a simulation; movement costs turns, so this is generous.
const maxTurns = 300

// Seat is one player record in the arena: stable id, status, hand, and the
// agent answering for it. Board occupancy references seats by id only.
type Seat struct {
	ID     int
	Name   string
	Status player.Status
	Hand   []string
	Agent  player.Agent
}

func (s *Seat) holds(card string) bool {
	for _, c := range s.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// LogEntry is one permanently logged suggestion/refutation. Shown is
// arbiter ground truth; it is never broadcast beyond suggester and revealer.
type LogEntry struct {
	Turn       int
	Suggester  string
	Suggestion config.Suggestion
	Asked      []string
	Revealer   string
	Shown      string
}

// Game is the arbiter: it owns the solution and the board occupancy, runs
// the turn protocol, resolves refutations and accusations, and keeps every
// agent's knowledge synchronized with public information. Strictly
// single-threaded and turn-sequential.
type Game struct {
	Config       *config.GameConfig
	Board        *board.Board
	Seats        []*Seat
	EventManager *events.Manager

	solution config.Suggestion
	finder   *path.Finder
	log      *logrus.Logger
	rand     *rand.Rand
	turn     int
	history  []LogEntry
	over     bool
	winner   string
}

// History returns the permanent suggestion log.
func (g *Game) History() []LogEntry {
	return append([]LogEntry(nil), g.history...)
}

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Winner returns the winning seat name, empty if none.
func (g *Game) Winner() string { return g.winner }

// SeatByName returns the seat with the given name.
func (g *Game) SeatByName(name string) *Seat {
	for _, s := range g.Seats {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (g *Game) activeCount() int {
	n := 0
	for _, s := range g.Seats {
		if s.Status == player.StatusActive {
			n++
		}
	}
	return n
}

// PlayTurn advances the protocol by one seat and reports whether the game
// is over. Seats whose status disallows turn-taking are passed over without
// acting; if no seat can act at all the game terminates as a stalemate.
func (g *Game) PlayTurn() bool {
	if g.over {
		return true
	}
	if g.activeCount() == 0 {
		g.endStalemate()
		return true
	}

	seat := g.Seats[g.turn%len(g.Seats)]
	g.turn++
	if !seat.Status.CanTakeTurn() {
		return false
	}

	g.EventManager.Publish(events.TurnStartEvent{TurnNumber: g.turn, PlayerName: seat.Name})

	if !seat.Agent.ShouldAccuse() {
		g.moveSeat(seat)
		pos, _ := g.Board.PositionOf(seat.ID)
		if pos.InRoom {
			if err := g.runSuggestion(seat, pos.Room); err != nil {
				// The protocol only suggests from inside a room, so this is
				// a bug in the caller's board bookkeeping; surface it.
				g.log.Errorf("suggestion by %s failed: %v", seat.Name, err)
			}
		} else {
			g.log.Debugf("%s ends turn in the hallway at %s", seat.Name, pos.Cell)
		}
	}

	if seat.Agent.ShouldAccuse() {
		return g.resolveAccusation(seat, seat.Agent.Accuse())
	}
	return false
}

// moveSeat rolls the die and commits the agent's planned path action by
// action through the board mutators. Hallway steps spend movement; entering
// an adjacent room is allowed on the last step, and a secret passage ends
// movement outright.
func (g *Game) moveSeat(seat *Seat) {
	pos, ok := g.Board.PositionOf(seat.ID)
	if !ok {
		g.log.Errorf("seat %s has no board position", seat.Name)
		return
	}
	target, actions := seat.Agent.PlanTurn(pos)
	if target == "" || (pos.InRoom && pos.Room == target) {
		return
	}
	if actions == nil {
		g.log.Debugf("%s cannot reach %s this turn", seat.Name, target)
		return
	}

	roll := g.rand.Intn(6) + 1
	g.EventManager.Publish(events.DiceRolledEvent{PlayerName: seat.Name, Roll: roll})

	for _, act := range actions {
		if roll <= 0 && act.Kind != path.ActionEnterRoom {
			break
		}
		var err error
		stop := false
		switch act.Kind {
		case path.ActionSecretPassage:
			err = g.Board.PlacePlayerInRoom(seat.ID, act.Room)
			stop = true
		case path.ActionExitRoom:
			err = g.Board.MovePlayerToHallway(seat.ID, act.To)
		case path.ActionStep:
			err = g.Board.MovePlayerToHallway(seat.ID, act.To)
			roll--
		case path.ActionEnterRoom:
			err = g.Board.PlacePlayerInRoom(seat.ID, act.Room)
			stop = true
		}
		if err != nil {
			// Planned against a stale snapshot; stop here and re-plan next turn.
			g.log.Debugf("%s movement interrupted: %v", seat.Name, err)
			return
		}
		cur, _ := g.Board.PositionOf(seat.ID)
		g.EventManager.Publish(events.MoveCommittedEvent{PlayerName: seat.Name, Position: cur})
		if stop {
			return
		}
	}
}

// runSuggestion makes the seat's suggestion from the given room and runs
// the full refutation and observation protocol.
func (g *Game) runSuggestion(seat *Seat, room string) error {
	suggestion := seat.Agent.Suggest(room)
	if suggestion.Room != room {
		return &InvalidActionError{Reason: "suggestion room must be the suggester's current room"}
	}
	if !g.Config.IsCard(suggestion.Suspect) || !g.Config.IsCard(suggestion.Weapon) || !g.Config.IsCard(suggestion.Room) {
		return &InvalidActionError{Reason: "suggestion names an unknown card"}
	}

	g.EventManager.Publish(events.SuggestionMadeEvent{PlayerName: seat.Name, Suggestion: suggestion})

	// The named suspect's token and the weapon are dragged into the room.
	if accused := g.SeatByName(suggestion.Suspect); accused != nil && accused.ID != seat.ID {
		if err := g.Board.PlacePlayerInRoom(accused.ID, room); err != nil {
			return err
		}
	}
	g.Board.PlaceWeaponInRoom(suggestion.Weapon, room)

	asked, revealer, shown := g.resolveRefutation(seat, suggestion)

	g.history = append(g.history, LogEntry{
		Turn:       g.turn,
		Suggester:  seat.Name,
		Suggestion: suggestion,
		Asked:      append([]string(nil), asked...),
		Revealer:   revealer,
		Shown:      shown,
	})
	g.EventManager.Publish(events.RefutationResolvedEvent{
		SuggesterName: seat.Name,
		Suggestion:    suggestion,
		Asked:         asked,
		RevealerName:  revealer,
		RevealedCard:  shown,
	})

	g.broadcast(seat.Name, suggestion, asked, revealer, shown)
	return nil
}

// resolveRefutation traverses every other seat once, starting immediately
// after the suggester in seating order. The first seat holding any suggested
// card must reveal exactly one card of its choice and the traversal stops;
// everyone asked, matching or not, is recorded. Eliminated and inactive
// seats keep their hands and are asked like anyone else.
func (g *Game) resolveRefutation(suggester *Seat, s config.Suggestion) (asked []string, revealer, shown string) {
	start := -1
	for i, seat := range g.Seats {
		if seat.ID == suggester.ID {
			start = i
			break
		}
	}
	for i := 1; i < len(g.Seats); i++ {
		seat := g.Seats[(start+i)%len(g.Seats)]
		asked = append(asked, seat.Name)

		var matches []string
		for _, card := range s.Cards() {
			if seat.holds(card) {
				matches = append(matches, card)
			}
		}
		if len(matches) == 0 {
			continue
		}

		shown = seat.Agent.ChooseCardToShow(s)
		if !contains(matches, shown) {
			// A holding seat must show; an agent that misbehaves forfeits the
			// choice and shows its first match.
			g.log.Warnf("%s returned %q for a suggestion it can refute, forcing a reveal", seat.Name, shown)
			shown = matches[0]
		}
		revealer = seat.Name
		return asked, revealer, shown
	}
	return asked, "", ""
}

// broadcast synchronizes every seat's knowledge base with the public part of
// the event, in seating order. The shown card's identity travels only to
// the suggester and the revealer.
func (g *Game) broadcast(suggester string, s config.Suggestion, asked []string, revealer, shown string) {
	for _, seat := range g.Seats {
		obs := belief.Observation{
			Suggester:  suggester,
			Suggestion: s,
			Asked:      append([]string(nil), asked...),
			Revealer:   revealer,
		}
		if seat.Name == suggester || seat.Name == revealer {
			obs.Shown = shown
		}
		seat.Agent.ObserveSuggestion(suggester, s)
		seat.Agent.ObserveRefutation(obs)
	}
}

// resolveAccusation arbitrates by exact field-wise equality against the
// hidden solution. Correct ends the game with the accuser as winner; wrong
// eliminates the accuser, and if that leaves nobody able to act the game
// terminates as a stalemate instead of looping forever.
func (g *Game) resolveAccusation(seat *Seat, acc config.Suggestion) bool {
	correct := acc == g.solution
	g.EventManager.Publish(events.AccusationEvent{PlayerName: seat.Name, Accusation: acc, Correct: correct})

	if correct {
		g.over = true
		g.winner = seat.Name
		g.EventManager.Publish(events.GameOverEvent{Winner: seat.Name, Solution: g.solution})
		return true
	}

	seat.Status = player.StatusEliminated
	g.parkEliminated(seat)
	g.EventManager.Publish(events.EliminationEvent{PlayerName: seat.Name})
	g.log.Infof("%s accused wrongly and is eliminated", seat.Name)

	if g.activeCount() == 0 {
		g.endStalemate()
		return true
	}
	return false
}

// parkEliminated moves an eliminated token off the hallways so it cannot
// block paths for the rest of the game.
func (g *Game) parkEliminated(seat *Seat) {
	pos, ok := g.Board.PositionOf(seat.ID)
	if !ok || pos.InRoom {
		return
	}
	room := "Ballroom"
	if !g.Board.HasRoom(room) {
		rooms := g.Board.Rooms()
		if len(rooms) == 0 {
			return
		}
		room = rooms[0]
	}
	if err := g.Board.PlacePlayerInRoom(seat.ID, room); err != nil {
		g.log.Errorf("parking eliminated seat %s: %v", seat.Name, err)
	}
}

func (g *Game) endStalemate() {
	g.over = true
	g.EventManager.Publish(events.GameOverEvent{Solution: g.solution, Stalemate: true})
	g.log.Info("no players left able to act, game ends in stalemate")
}

// RunSimulation executes the turn protocol until a correct accusation, a
// stalemate, or the turn limit. Returns the winner's name (empty if none)
// and whether a winning accusation was made.
func (g *Game) RunSimulation() (string, bool) {
	for g.turn < maxTurns {
		if g.PlayTurn() {
			return g.winner, g.winner != ""
		}
	}
	g.EventManager.Publish(events.GameOverEvent{Solution: g.solution})
	g.over = true
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
