package nav

import (
	"reflect"
	"testing"

	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// gridFrom builds a Grid from rows of 0/1 cells.
func gridFrom(t *testing.T, rows [][]int) *worldmap.Grid {
	t.Helper()
	doc := &worldmap.Document{}
	doc.Map.Metadata.GridUnitCm = 50
	doc.Map.Grid = rows
	return doc.NewGrid()
}

// checkPath verifies the structural invariants every returned route must
// hold: correct endpoints, 4-adjacent consecutive cells, all cells open.
func checkPath(t *testing.T, w World, path []worldmap.Coord, start, goal worldmap.Coord) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("expected a path, got none")
	}
	if path[0] != start {
		t.Errorf("path starts at %v, want %v", path[0], start)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path ends at %v, want %v", path[len(path)-1], goal)
	}
	for i, c := range path {
		if !w.IsOpen(c.X, c.Y) {
			t.Errorf("path cell %d = %v is not open", i, c)
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		dx, dy := c.X-prev.X, c.Y-prev.Y
		if abs(dx)+abs(dy) != 1 {
			t.Errorf("path cells %d->%d not 4-adjacent: %v -> %v", i-1, i, prev, c)
		}
	}
}

func countTurns(path []worldmap.Coord) int {
	turns := 0
	for i := 2; i < len(path); i++ {
		inDX := path[i-1].X - path[i-2].X
		inDY := path[i-1].Y - path[i-2].Y
		outDX := path[i].X - path[i-1].X
		outDY := path[i].Y - path[i-1].Y
		if inDX != outDX || inDY != outDY {
			turns++
		}
	}
	return turns
}

func TestFindPath_OpenGrid(t *testing.T) {
	grid := gridFrom(t, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	start := worldmap.Coord{X: 0, Y: 0}
	goal := worldmap.Coord{X: 3, Y: 3}

	path := New().FindPath(grid, start, goal)
	checkPath(t, grid, path, start, goal)

	if len(path) != 7 {
		t.Errorf("path length: got %d, want 7", len(path))
	}
	// With the turn penalty an L-shaped route beats any staircase.
	if got := countTurns(path); got != 1 {
		t.Errorf("turns: got %d, want 1 (path %v)", got, path)
	}
}

func TestFindPath_AvoidsBlockedCells(t *testing.T) {
	grid := gridFrom(t, [][]int{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	start := worldmap.Coord{X: 0, Y: 0}
	goal := worldmap.Coord{X: 2, Y: 2}

	path := New().FindPath(grid, start, goal)
	checkPath(t, grid, path, start, goal)

	if len(path) != 5 {
		t.Errorf("path length: got %d, want 5", len(path))
	}
	if got := countTurns(path); got != 1 {
		t.Errorf("turns: got %d, want 1 (path %v)", got, path)
	}
	for _, c := range path {
		if c == (worldmap.Coord{X: 1, Y: 1}) {
			t.Error("path crosses blocked cell (1,1)")
		}
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	grid := gridFrom(t, [][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	})
	start := worldmap.Coord{X: 0, Y: 0}
	goal := worldmap.Coord{X: 4, Y: 4}

	p := New()
	first := p.FindPath(grid, start, goal)
	checkPath(t, grid, first, start, goal)

	for i := 0; i < 10; i++ {
		if again := p.FindPath(grid, start, goal); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced a different path:\n%v\nvs\n%v", i, first, again)
		}
	}
}

func TestFindPath_NoRoute(t *testing.T) {
	// Goal walled off in the corner.
	grid := gridFrom(t, [][]int{
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
		{0, 0, 0, 0, 0},
	})
	start := worldmap.Coord{X: 0, Y: 0}
	goal := worldmap.Coord{X: 4, Y: 0}

	p := New()
	if path := p.FindPath(grid, start, goal); path != nil {
		t.Errorf("expected no path, got %v", path)
	}
	// "No route" must be a stable answer, not a fluke of iteration order.
	if path := p.FindPath(grid, start, goal); path != nil {
		t.Errorf("second attempt found a path: %v", path)
	}
}

func TestFindPath_DegenerateInputs(t *testing.T) {
	grid := gridFrom(t, [][]int{
		{0, 1},
		{0, 0},
	})
	p := New()

	tests := []struct {
		name        string
		start, goal worldmap.Coord
	}{
		{"start out of bounds", worldmap.Coord{X: -1, Y: 0}, worldmap.Coord{X: 0, Y: 0}},
		{"goal out of bounds", worldmap.Coord{X: 0, Y: 0}, worldmap.Coord{X: 5, Y: 5}},
		{"goal blocked", worldmap.Coord{X: 0, Y: 0}, worldmap.Coord{X: 1, Y: 0}},
		{"start blocked", worldmap.Coord{X: 1, Y: 0}, worldmap.Coord{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if path := p.FindPath(grid, tt.start, tt.goal); path != nil {
				t.Errorf("expected nil, got %v", path)
			}
		})
	}
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	grid := gridFrom(t, [][]int{{0, 0}})
	c := worldmap.Coord{X: 1, Y: 0}

	path := New().FindPath(grid, c, c)
	if len(path) != 1 || path[0] != c {
		t.Errorf("got %v, want single-cell path [%v]", path, c)
	}
}

func TestFindPath_ReplansAroundMarkedObstacle(t *testing.T) {
	grid := gridFrom(t, [][]int{
		{0, 0, 0},
		{0, 0, 0},
	})
	start := worldmap.Coord{X: 0, Y: 0}
	goal := worldmap.Coord{X: 2, Y: 0}

	p := New()
	before := p.FindPath(grid, start, goal)
	checkPath(t, grid, before, start, goal)
	if len(before) != 3 {
		t.Fatalf("direct path length: got %d, want 3", len(before))
	}

	grid.MarkObstacle(1, 0)

	after := p.FindPath(grid, start, goal)
	checkPath(t, grid, after, start, goal)
	for _, c := range after {
		if c == (worldmap.Coord{X: 1, Y: 0}) {
			t.Error("replanned path still crosses the marked obstacle")
		}
	}
	if len(after) != 5 {
		t.Errorf("detour length: got %d, want 5", len(after))
	}
}

func TestFindPath_TurnPenaltyChangesRoute(t *testing.T) {
	// Without a turn penalty a staircase route costs the same as an L; with
	// the penalty the planner must commit to straight runs.
	grid := gridFrom(t, [][]int{
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
	})
	start := worldmap.Coord{X: 0, Y: 0}
	goal := worldmap.Coord{X: 5, Y: 2}

	path := New().FindPath(grid, start, goal)
	checkPath(t, grid, path, start, goal)
	if got := countTurns(path); got != 1 {
		t.Errorf("turns: got %d, want 1 (path %v)", got, path)
	}
}
