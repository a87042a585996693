package board

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Board cell symbols:
//   - '.' = hallway (walkable)
//   - '#' = wall (not walkable)
//   - 'd' = doorway (entry point to a room)
//   - any other byte = room interior
const (
	symbolHallway = '.'
	symbolWall    = '#'
	symbolDoor    = 'd'
)

// Cell is a (row, col) coordinate on the board grid.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Position is a composite location descriptor: either a room name or a
// hallway cell, never both. The zero value is "in hallway at (0,0)"; use the
// constructors to avoid ambiguity.
type Position struct {
	Room   string
	Cell   Cell
	InRoom bool
}

// RoomPosition returns a Position inside the named room.
func RoomPosition(room string) Position {
	return Position{Room: room, InRoom: true}
}

// HallwayPosition returns a Position on a hallway cell.
func HallwayPosition(row, col int) Position {
	return Position{Cell: Cell{Row: row, Col: col}}
}

func (p Position) String() string {
	if p.InRoom {
		return p.Room
	}
	return p.Cell.String()
}

// RoomLayout describes one room's footprint on the grid. Doors and Exits are
// offsets relative to Origin and are index-aligned: exiting through door i
// lands the player on Exits[i]. The order of Doors defines the door index.
type RoomLayout struct {
	Origin Cell
	Rows   []string
	Doors  []Cell
	Exits  []Cell
}

// InvalidMoveError reports an illegal movement target. It is recoverable: the
// caller re-prompts or re-plans, the board state is untouched.
type InvalidMoveError struct {
	Cell   Cell
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move to %s: %s", e.Cell, e.Reason)
}

// Board is the static topology plus the dynamic occupancy arena. Player
// tokens are addressed by stable integer ids; occupancy is an id-indexed
// position map, so status changes elsewhere never alias board state. Only
// hallway cells are marked occupied; rooms hold any number of tokens.
type Board struct {
	rows, cols  int
	grid        [][]byte
	rooms       map[string]RoomLayout
	roomNames   []string
	secret      map[string]string
	doorRoom    map[Cell]string
	positions   map[int]Position
	occupied    map[Cell]int
	weaponRooms map[string]string
	log         logrus.FieldLogger
}

// New builds a board from room layouts and secret passage links. The grid
// starts as all-hallway and each room layout is painted onto it.
func New(rows, cols int, layouts map[string]RoomLayout, secret map[string]string, log logrus.FieldLogger) (*Board, error) {
	b := &Board{
		rows:        rows,
		cols:        cols,
		rooms:       make(map[string]RoomLayout, len(layouts)),
		secret:      make(map[string]string, len(secret)),
		doorRoom:    make(map[Cell]string),
		positions:   make(map[int]Position),
		occupied:    make(map[Cell]int),
		weaponRooms: make(map[string]string),
		log:         log,
	}
	b.grid = make([][]byte, rows)
	for i := range b.grid {
		b.grid[i] = make([]byte, cols)
		for j := range b.grid[i] {
			b.grid[i][j] = symbolHallway
		}
	}

	for name, layout := range layouts {
		if len(layout.Doors) != len(layout.Exits) {
			return nil, fmt.Errorf("room %s: %d doors but %d exits", name, len(layout.Doors), len(layout.Exits))
		}
		b.rooms[name] = layout
		b.roomNames = append(b.roomNames, name)
		for i, row := range layout.Rows {
			for j := 0; j < len(row); j++ {
				r, c := layout.Origin.Row+i, layout.Origin.Col+j
				if r >= 0 && r < rows && c >= 0 && c < cols {
					b.grid[r][c] = row[j]
				}
			}
		}
		for _, d := range layout.Doors {
			b.doorRoom[Cell{layout.Origin.Row + d.Row, layout.Origin.Col + d.Col}] = name
		}
	}
	sort.Strings(b.roomNames)

	for from, to := range secret {
		if _, ok := b.rooms[from]; !ok {
			return nil, fmt.Errorf("secret passage from unknown room %s", from)
		}
		if _, ok := b.rooms[to]; !ok {
			return nil, fmt.Errorf("secret passage to unknown room %s", to)
		}
		b.secret[from] = to
	}
	return b, nil
}

// NewClassic builds the standard 22x22 manor board.
func NewClassic(log logrus.FieldLogger) *Board {
	b, err := New(classicRows, classicCols, classicLayouts(), classicPassages(), log)
	if err != nil {
		// The classic layout is static data; a failure here is a programming error.
		panic(err)
	}
	return b
}

// --- Read-only topology queries ---

func (b *Board) Dimensions() (rows, cols int) { return b.rows, b.cols }

func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

func (b *Board) IsWall(c Cell) bool {
	return !b.InBounds(c) || b.grid[c.Row][c.Col] == symbolWall
}

// IsWalkable reports whether c is an open hallway cell.
func (b *Board) IsWalkable(c Cell) bool {
	return b.InBounds(c) && b.grid[c.Row][c.Col] == symbolHallway
}

func (b *Board) IsDoor(c Cell) bool {
	return b.InBounds(c) && b.grid[c.Row][c.Col] == symbolDoor
}

func (b *Board) IsOccupied(c Cell) bool {
	_, ok := b.occupied[c]
	return ok
}

// Rooms returns all room names in sorted order.
func (b *Board) Rooms() []string {
	return append([]string(nil), b.roomNames...)
}

func (b *Board) HasRoom(name string) bool {
	_, ok := b.rooms[name]
	return ok
}

// RoomForDoor returns the room a door cell belongs to.
func (b *Board) RoomForDoor(c Cell) (string, bool) {
	room, ok := b.doorRoom[c]
	return room, ok
}

// RoomExitCells returns the absolute hallway cells a player lands on when
// exiting the room, one per door, in door-index order.
func (b *Board) RoomExitCells(room string) []Cell {
	layout, ok := b.rooms[room]
	if !ok {
		return nil
	}
	cells := make([]Cell, 0, len(layout.Exits))
	for _, off := range layout.Exits {
		cells = append(cells, Cell{layout.Origin.Row + off.Row, layout.Origin.Col + off.Col})
	}
	return cells
}

// RoomDoorCells returns the absolute door cells of the room in door-index order.
func (b *Board) RoomDoorCells(room string) []Cell {
	layout, ok := b.rooms[room]
	if !ok {
		return nil
	}
	cells := make([]Cell, 0, len(layout.Doors))
	for _, off := range layout.Doors {
		cells = append(cells, Cell{layout.Origin.Row + off.Row, layout.Origin.Col + off.Col})
	}
	return cells
}

// SecretPassage returns the room linked to the given room, if any.
func (b *Board) SecretPassage(room string) (string, bool) {
	to, ok := b.secret[room]
	return to, ok
}

// Symbol returns the raw grid byte at c. Used by renderers.
func (b *Board) Symbol(c Cell) byte {
	if !b.InBounds(c) {
		return symbolWall
	}
	return b.grid[c.Row][c.Col]
}

// --- Occupancy arena ---

// PositionOf returns the current position of a player token.
func (b *Board) PositionOf(id int) (Position, bool) {
	pos, ok := b.positions[id]
	return pos, ok
}

// PlayerAt returns the id of the token occupying a hallway cell.
func (b *Board) PlayerAt(c Cell) (int, bool) {
	id, ok := b.occupied[c]
	return id, ok
}

// AddPlayer registers a token at its starting position.
func (b *Board) AddPlayer(id int, pos Position) error {
	if _, exists := b.positions[id]; exists {
		return fmt.Errorf("player %d already on board", id)
	}
	if pos.InRoom {
		if !b.HasRoom(pos.Room) {
			return fmt.Errorf("unknown room %s", pos.Room)
		}
		b.positions[id] = pos
		return nil
	}
	if err := b.ValidateHallwayCell(pos.Cell, nil); err != nil {
		return err
	}
	b.positions[id] = pos
	b.occupied[pos.Cell] = id
	return nil
}

// PlacePlayerInRoom commits a room entry (or a secret-passage transfer, or
// the forced relocation of a suggested suspect). Frees any hallway cell the
// token held.
func (b *Board) PlacePlayerInRoom(id int, room string) error {
	if !b.HasRoom(room) {
		return fmt.Errorf("unknown room %s", room)
	}
	b.vacate(id)
	b.positions[id] = RoomPosition(room)
	b.log.Debugf("player %d placed in %s", id, room)
	return nil
}

// MovePlayerToHallway commits a room exit or a hallway step.
func (b *Board) MovePlayerToHallway(id int, c Cell) error {
	if err := b.ValidateHallwayCell(c, nil); err != nil {
		return err
	}
	b.vacate(id)
	b.positions[id] = HallwayPosition(c.Row, c.Col)
	b.occupied[c] = id
	b.log.Debugf("player %d moved to %s", id, c)
	return nil
}

// ValidateHallwayCell checks a prospective hallway target. visited holds the
// cells already stepped on this turn; re-visiting one is an invalid move.
func (b *Board) ValidateHallwayCell(c Cell, visited []Cell) error {
	if !b.InBounds(c) {
		return &InvalidMoveError{Cell: c, Reason: "out of board boundaries"}
	}
	if b.IsWall(c) {
		return &InvalidMoveError{Cell: c, Reason: "cell is a wall"}
	}
	if b.IsDoor(c) {
		return &InvalidMoveError{Cell: c, Reason: "doorways cannot be stood on"}
	}
	if !b.IsWalkable(c) {
		return &InvalidMoveError{Cell: c, Reason: "cell is inside a room"}
	}
	if b.IsOccupied(c) {
		return &InvalidMoveError{Cell: c, Reason: "cell is occupied by another player"}
	}
	for _, v := range visited {
		if v == c {
			return &InvalidMoveError{Cell: c, Reason: "cell already visited this turn"}
		}
	}
	return nil
}

func (b *Board) vacate(id int) {
	if pos, ok := b.positions[id]; ok && !pos.InRoom {
		delete(b.occupied, pos.Cell)
	}
}

// --- Weapon tokens ---

// PlaceWeaponInRoom records a weapon token's room. Purely cosmetic state for
// renderers; suggestions drag the named weapon into the named room.
func (b *Board) PlaceWeaponInRoom(weapon, room string) {
	b.weaponRooms[weapon] = room
}

// WeaponRooms returns the weapon token locations.
func (b *Board) WeaponRooms() map[string]string {
	out := make(map[string]string, len(b.weaponRooms))
	for w, r := range b.weaponRooms {
		out[w] = r
	}
	return out
}
