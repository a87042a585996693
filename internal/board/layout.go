package board

// Classic manor topology. Room interiors use the room's letter (Billiard
// Room uses 'I' because 'B' belongs to the Ballroom); 'd' marks doorways and
// '#' walls. Exits are index-aligned with Doors: a door may land the player
// on a cell outside the room's own footprint, hence the negative offsets.

const (
	classicRows = 22
	classicCols = 22
)

func classicLayouts() map[string]RoomLayout {
	return map[string]RoomLayout{
		"Kitchen": {
			Origin: Cell{0, 0},
			Rows: []string{
				"######",
				"#KKKK#",
				"#KKKK#",
				"#KKKK#",
				"####d#",
			},
			Doors: []Cell{{4, 4}},
			Exits: []Cell{{5, 4}},
		},
		"Ballroom": {
			Origin: Cell{0, 8},
			Rows: []string{
				"..###..",
				"##BBB##",
				"#BBBBB#",
				"#BBBBB#",
				"#BBBBB#",
				"dBBBBBd",
				"#d##d##",
			},
			Doors: []Cell{{5, 0}, {6, 1}, {6, 4}, {5, 6}},
			Exits: []Cell{{5, -1}, {7, 1}, {7, 4}, {5, 7}},
		},
		"Conservatory": {
			Origin: Cell{0, 16},
			Rows: []string{
				"######",
				"#CCCC#",
				"dCCCC#",
				".####.",
			},
			Doors: []Cell{{2, 0}},
			Exits: []Cell{{2, -1}},
		},
		"Dining Room": {
			Origin: Cell{7, 0},
			Rows: []string{
				"#####...",
				"#DDDD###",
				"#DDDDDD#",
				"#DDDDDD#",
				"#DDDDDDd",
				"#DDDDDD#",
				"####d###",
			},
			Doors: []Cell{{4, 7}, {6, 4}},
			Exits: []Cell{{4, 8}, {7, 4}},
		},
		"Lounge": {
			Origin: Cell{17, 0},
			Rows: []string{
				"######d",
				"#OOOOO#",
				"#OOOOO#",
				"#OOOOO#",
				"#######",
			},
			Doors: []Cell{{0, 6}},
			Exits: []Cell{{0, 7}},
		},
		"Hall": {
			Origin: Cell{16, 9},
			Rows: []string{
				"##dd##",
				"#HHHH#",
				"#HHHH#",
				"#HHHHd",
				"#HHHH#",
				"######",
			},
			Doors: []Cell{{0, 2}, {0, 3}, {3, 5}},
			Exits: []Cell{{-1, 2}, {-1, 3}, {3, 6}},
		},
		"Study": {
			Origin: Cell{19, 16},
			Rows: []string{
				"#d####",
				"#SSSS#",
				"######",
			},
			Doors: []Cell{{0, 1}},
			Exits: []Cell{{-1, 1}},
		},
		"Library": {
			Origin: Cell{12, 16},
			Rows: []string{
				".###d#",
				"#LLLL#",
				"dLLLL#",
				"#LLLL#",
				".#####",
			},
			Doors: []Cell{{2, 0}, {0, 4}},
			Exits: []Cell{{2, -1}, {-1, 4}},
		},
		"Billiard Room": {
			Origin: Cell{6, 17},
			Rows: []string{
				"###d#",
				"dIII#",
				"#III#",
				"#III#",
				"#####",
			},
			Doors: []Cell{{1, 0}, {0, 3}},
			Exits: []Cell{{1, -1}, {-1, 3}},
		},
	}
}

func classicPassages() map[string]string {
	return map[string]string{
		"Kitchen":      "Study",
		"Study":        "Kitchen",
		"Lounge":       "Conservatory",
		"Conservatory": "Lounge",
	}
}
