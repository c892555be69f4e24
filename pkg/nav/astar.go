// Package nav implements grid path planning for the museum robot.
//
// The planner is a 4-directional A* search with a turn penalty: a move that
// changes direction relative to the previous move on the same path costs
// extra, which biases routes toward long straight runs. Straight runs matter
// on a differential-drive robot because every turn is a stop-rotate-go cycle.
package nav

import (
	"container/heap"

	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// DefaultTurnPenalty is the extra cost of a direction change.
// Higher values produce routes with fewer turns.
const DefaultTurnPenalty = 2.0

// moveCost is the cost of one straight step. Diagonal moves are not allowed.
const moveCost = 1.0

// World is the read-only grid view the planner searches over.
// *worldmap.Grid satisfies it.
type World interface {
	IsOpen(x, y int) bool
	Dimensions() (width, height int)
}

// Neighbor expansion order. Kept stable so identical inputs always produce
// identical paths.
var directions = [4]worldmap.Coord{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
}

// Planner is a stateless A* path planner. The zero value is not usable;
// construct with New.
type Planner struct {
	// TurnPenalty is added to a move's cost whenever its direction differs
	// from the preceding move's direction.
	TurnPenalty float64
}

// New returns a planner with the default turn penalty.
func New() *Planner {
	return &Planner{TurnPenalty: DefaultTurnPenalty}
}

// node is the per-coordinate search record. Nodes live in a table keyed by
// coordinate for the duration of one FindPath call; identity is the
// coordinate, never the cost fields.
type node struct {
	g         float64
	parent    worldmap.Coord
	hasParent bool
}

// entry is one open-set heap element. A coordinate may appear multiple times
// with different f values; only the cheapest pop is acted on.
type entry struct {
	c   worldmap.Coord
	f   float64
	seq int
}

type openHeap []entry

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)   { *h = append(*h, x.(entry)) }
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// FindPath returns the cheapest route from start to goal, both inclusive,
// as a sequence of 4-adjacent open cells. It returns nil when no route
// exists or when the inputs are unusable (empty grid, start or goal out of
// bounds or blocked). An empty result means "no path", never a fault.
func (p *Planner) FindPath(w World, start, goal worldmap.Coord) []worldmap.Coord {
	width, height := w.Dimensions()
	if width <= 0 || height <= 0 {
		return nil
	}
	if !w.IsOpen(start.X, start.Y) || !w.IsOpen(goal.X, goal.Y) {
		return nil
	}

	nodes := map[worldmap.Coord]*node{
		start: {g: 0},
	}
	closed := make(map[worldmap.Coord]bool)

	open := openHeap{{c: start, f: manhattan(start, goal)}}
	heap.Init(&open)
	seq := 1

	for open.Len() > 0 {
		cur := heap.Pop(&open).(entry).c
		if closed[cur] {
			// Stale duplicate of an already-finalized cell.
			continue
		}
		// Closed-set membership is recorded at pop time. A cell finalized
		// here is never revisited, even if a cheaper duplicate is still
		// queued. Accepted approximation; do not "fix" without evidence of
		// an actual suboptimal route.
		closed[cur] = true

		if cur == goal {
			return reconstruct(nodes, goal)
		}

		curNode := nodes[cur]
		for _, d := range directions {
			next := worldmap.Coord{X: cur.X + d.X, Y: cur.Y + d.Y}
			if closed[next] || !w.IsOpen(next.X, next.Y) {
				continue
			}

			tentative := curNode.g + moveCost + p.turnPenalty(curNode, cur, next)
			if existing, ok := nodes[next]; ok && tentative >= existing.g {
				continue
			}

			nodes[next] = &node{g: tentative, parent: cur, hasParent: true}
			heap.Push(&open, entry{
				c:   next,
				f:   tentative + manhattan(next, goal),
				seq: seq,
			})
			seq++
		}
	}

	return nil
}

// turnPenalty returns the extra cost of stepping from cur to next, given the
// direction cur was reached from. The very first move off the start has no
// preceding direction and costs nothing extra.
func (p *Planner) turnPenalty(curNode *node, cur, next worldmap.Coord) float64 {
	if !curNode.hasParent {
		return 0
	}
	inDX := cur.X - curNode.parent.X
	inDY := cur.Y - curNode.parent.Y
	outDX := next.X - cur.X
	outDY := next.Y - cur.Y
	if inDX != outDX || inDY != outDY {
		return p.TurnPenalty
	}
	return 0
}

// manhattan is the heuristic: admissible because it ignores the non-negative
// turn penalty and so never overestimates the true remaining cost.
func manhattan(a, b worldmap.Coord) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// reconstruct walks parent references from goal back to start and reverses.
func reconstruct(nodes map[worldmap.Coord]*node, goal worldmap.Coord) []worldmap.Coord {
	var path []worldmap.Coord
	c := goal
	for {
		path = append(path, c)
		n := nodes[c]
		if !n.hasParent {
			break
		}
		c = n.parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
