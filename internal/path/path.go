// Package path finds shortest action sequences between board locations.
//
// The search runs over the composite (room, hallway-cell) state space and is
// a plain breadth-first search, so the returned path always has the minimum
// action count. Successors are generated in a fixed order — secret passage,
// then room exits in door-index order, then hallway steps in compass order
// N, S, W, E — so among equal-length paths the first one discovered by that
// enumeration is always the one returned. Repeated calls against an
// unchanged board return identical results.
package path

import (
	"cluedo-manor/internal/board"
)

// ActionKind discriminates the four movement primitives.
type ActionKind int

const (
	// ActionSecretPassage transfers between linked rooms at no hallway cost.
	ActionSecretPassage ActionKind = iota
	// ActionExitRoom leaves a room onto the exit cell of a specific door.
	ActionExitRoom
	// ActionStep moves one hallway cell N/S/W/E.
	ActionStep
	// ActionEnterRoom steps from a hallway cell through an adjacent door.
	ActionEnterRoom
)

func (k ActionKind) String() string {
	return []string{"secret", "exit", "move", "enter"}[k]
}

// Action is one committed movement primitive.
type Action struct {
	Kind ActionKind
	// Room is the destination room for SecretPassage and EnterRoom, and the
	// room being left for ExitRoom.
	Room string
	// To is the target hallway cell for ExitRoom and Step.
	To board.Cell
}

// Finder runs searches against a board snapshot. Occupied cells are excluded
// from expansion, so a path is only as good as the instant it was computed;
// callers re-plan when the board moves under them.
type Finder struct {
	b *board.Board
}

func NewFinder(b *board.Board) *Finder {
	return &Finder{b: b}
}

type node struct {
	pos    board.Position
	parent *node
	action Action
	hasAct bool
}

// compass order: N, S, W, E
var steps = [4]board.Cell{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

// FindPath returns the minimum-length action sequence from start to the
// target room, or nil if the room is unreachable from the current snapshot.
// An unreachable target is a normal result, not a failure. If start is
// already inside the target room the returned path is empty.
func (f *Finder) FindPath(start board.Position, targetRoom string) []Action {
	if !f.b.HasRoom(targetRoom) {
		return nil
	}

	visited := map[board.Position]struct{}{start: {}}
	queue := []*node{{pos: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.pos.InRoom && cur.pos.Room == targetRoom {
			return unwind(cur)
		}

		for _, succ := range f.successors(cur.pos) {
			if _, seen := visited[succ.pos]; seen {
				continue
			}
			visited[succ.pos] = struct{}{}
			queue = append(queue, &node{pos: succ.pos, parent: cur, action: succ.action, hasAct: true})
		}
	}
	return nil
}

type successor struct {
	pos    board.Position
	action Action
}

func (f *Finder) successors(pos board.Position) []successor {
	var out []successor

	if pos.InRoom {
		if dest, ok := f.b.SecretPassage(pos.Room); ok {
			out = append(out, successor{
				pos:    board.RoomPosition(dest),
				action: Action{Kind: ActionSecretPassage, Room: dest},
			})
		}
		for _, exit := range f.b.RoomExitCells(pos.Room) {
			if f.b.ValidateHallwayCell(exit, nil) != nil {
				continue
			}
			out = append(out, successor{
				pos:    board.HallwayPosition(exit.Row, exit.Col),
				action: Action{Kind: ActionExitRoom, Room: pos.Room, To: exit},
			})
		}
		return out
	}

	for _, d := range steps {
		next := board.Cell{Row: pos.Cell.Row + d.Row, Col: pos.Cell.Col + d.Col}
		if room, ok := f.b.RoomForDoor(next); ok {
			out = append(out, successor{
				pos:    board.RoomPosition(room),
				action: Action{Kind: ActionEnterRoom, Room: room},
			})
			continue
		}
		if f.b.ValidateHallwayCell(next, nil) != nil {
			continue
		}
		out = append(out, successor{
			pos:    board.HallwayPosition(next.Row, next.Col),
			action: Action{Kind: ActionStep, To: next},
		})
	}
	return out
}

func unwind(n *node) []Action {
	actions := []Action{}
	for ; n != nil; n = n.parent {
		if n.hasAct {
			actions = append(actions, n.action)
		}
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}
