package worldmap

// Grid is the occupancy grid the robot navigates. It is owned by the
// controller goroutine: all mutation happens there, so no locking is needed.
// Dynamic obstacles are tracked separately for reporting and are never
// removed once discovered.
type Grid struct {
	cells  [][]int
	width  int
	height int

	dynamic    []Coord
	dynamicSet map[Coord]bool
}

// Dimensions returns the grid width and height.
func (g *Grid) Dimensions() (width, height int) {
	return g.width, g.height
}

// IsOpen reports whether (x, y) is inside the grid and not blocked.
// Out-of-bounds coordinates are simply "not open", never an error.
func (g *Grid) IsOpen(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.cells[y][x] == CellOpen
}

// MarkObstacle blocks the cell at (x, y) and records it in the dynamic
// obstacle set. Idempotent; out-of-bounds coordinates are ignored.
func (g *Grid) MarkObstacle(x, y int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y][x] = CellBlocked
	c := Coord{X: x, Y: y}
	if g.dynamicSet == nil {
		g.dynamicSet = make(map[Coord]bool)
	}
	if g.dynamicSet[c] {
		return
	}
	g.dynamicSet[c] = true
	g.dynamic = append(g.dynamic, c)
}

// DynamicObstacles returns a copy of the discovered obstacles in the order
// they were found.
func (g *Grid) DynamicObstacles() []Coord {
	out := make([]Coord, len(g.dynamic))
	copy(out, g.dynamic)
	return out
}
