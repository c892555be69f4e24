package worldmap

import "testing"

func testGrid(t *testing.T) *Grid {
	t.Helper()
	doc, err := Parse(sampleDoc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc.NewGrid()
}

func TestGrid_IsOpen(t *testing.T) {
	grid := testGrid(t)

	if w, h := grid.Dimensions(); w != 4 || h != 3 {
		t.Fatalf("Dimensions: got %dx%d, want 4x3", w, h)
	}

	if !grid.IsOpen(0, 0) {
		t.Error("(0,0) should be open")
	}
	if grid.IsOpen(2, 0) {
		t.Error("(2,0) is statically blocked")
	}
	for _, c := range []Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 4, Y: 0}, {X: 0, Y: 3}} {
		if grid.IsOpen(c.X, c.Y) {
			t.Errorf("out-of-bounds cell %v reported open", c)
		}
	}
}

func TestGrid_MarkObstacle(t *testing.T) {
	grid := testGrid(t)

	grid.MarkObstacle(1, 1)
	grid.MarkObstacle(3, 2)
	grid.MarkObstacle(1, 1) // repeat must not duplicate

	if grid.IsOpen(1, 1) || grid.IsOpen(3, 2) {
		t.Error("marked cells still open")
	}

	obstacles := grid.DynamicObstacles()
	want := []Coord{{X: 1, Y: 1}, {X: 3, Y: 2}}
	if len(obstacles) != len(want) {
		t.Fatalf("dynamic obstacles: got %v, want %v", obstacles, want)
	}
	for i := range want {
		if obstacles[i] != want[i] {
			t.Errorf("obstacle %d: got %v, want %v (discovery order)", i, obstacles[i], want[i])
		}
	}

	// The returned slice is a copy.
	obstacles[0] = Coord{X: 9, Y: 9}
	if grid.DynamicObstacles()[0] != (Coord{X: 1, Y: 1}) {
		t.Error("DynamicObstacles exposed internal state")
	}
}

func TestGrid_MarkObstacleOutOfBounds(t *testing.T) {
	grid := testGrid(t)

	grid.MarkObstacle(-1, 0)
	grid.MarkObstacle(99, 99)

	if got := grid.DynamicObstacles(); len(got) != 0 {
		t.Errorf("out-of-bounds marks recorded: %v", got)
	}
}
