package astar

import (
	"container/heap"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/rovermap/gridmap"
)

// neighborOffsets lists the 4-connected moves in expansion order: up, down, left, right.
var neighborOffsets = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Search finds a route from start to goal on grid.
//
// Returns:
//
//   - Result with StatusFound and Path start → goal, StatusNoRoute, or
//     StatusCancelled (Cause = ctx.Err()).
//   - err only for caller mistakes or a failing OnExpand hook.
//
// Preconditions and validation (in order):
//  1. grid must be non-nil (ErrNilGrid).
//  2. start must be inside the grid (gridmap.ErrOutOfBounds).
//  3. goal must be inside the grid (gridmap.ErrOutOfBounds).
//
// start == goal yields a single-node path with zero cost. Otherwise the goal
// is accepted only if its cell holds the empty mark; the start cell is never
// tested. A cost of +Inf makes a cell impassable.
//
// Complexity:
//
//   - Time:  O(N log N), N = W×H
//   - Space: O(N)
func Search(grid *gridmap.GridMap, start, goal gridmap.Coord, opts ...Option) (Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if grid == nil {
		return Result{}, ErrNilGrid
	}
	if !grid.InBounds(start.X, start.Y) {
		return Result{}, fmt.Errorf("%w: start %v outside %dx%d", gridmap.ErrOutOfBounds, start, grid.Width(), grid.Height())
	}
	if !grid.InBounds(goal.X, goal.Y) {
		return Result{}, fmt.Errorf("%w: goal %v outside %dx%d", gridmap.ErrOutOfBounds, goal, grid.Width(), grid.Height())
	}

	began := time.Now()
	r := newRunner(grid.Snapshot(), start, goal, cfg)
	res, err := r.run()
	if err == nil && cfg.Observer != nil {
		cfg.Observer.SearchFinished(res, time.Since(began))
	}

	return res, err
}

// runner holds the mutable state for a single search.
type runner struct {
	snap    gridmap.Snapshot
	start   gridmap.Coord
	goal    gridmap.Coord
	options Options

	nodes []Node  // arena; capacity is fixed at W×H so addresses never move
	slot  []int32 // cell offset → arena index, -1 if undiscovered
	open  *openSet
	seq   int
}

func newRunner(snap gridmap.Snapshot, start, goal gridmap.Coord, cfg Options) *runner {
	r := &runner{
		snap:    snap,
		start:   start,
		goal:    goal,
		options: cfg,
		nodes:   make([]Node, 0, snap.Len()),
		slot:    make([]int32, snap.Len()),
	}
	for i := range r.slot {
		r.slot[i] = -1
	}
	r.open = &openSet{arena: &r.nodes}

	return r
}

// discover appends a node for c to the arena and queues it.
func (r *runner) discover(c gridmap.Coord, cost, g float64, parent int) {
	id := len(r.nodes)
	r.nodes = append(r.nodes, Node{
		Pos:         c,
		CostToEnter: cost,
		G:           g,
		F:           g + r.options.Heuristic(c, r.goal),
		parent:      parent,
		seq:         r.seq,
		heapAt:      -1,
	})
	r.seq++
	r.slot[r.snap.Index(c.X, c.Y)] = int32(id)
	heap.Push(r.open, id)
}

// run is the main loop: extract the minimum-F node, stop at the goal,
// otherwise relax its neighbors.
func (r *runner) run() (Result, error) {
	if r.start == r.goal {
		return Result{
			Status: StatusFound,
			Path:   []Node{{Pos: r.start, CostToEnter: 0, parent: -1, heapAt: -1}},
		}, nil
	}

	r.discover(r.start, 0, 0, -1)
	expanded := 0
	for r.open.Len() > 0 {
		if err := r.options.Ctx.Err(); err != nil {
			return Result{Status: StatusCancelled, Expanded: expanded, Cause: err}, nil
		}

		id := heap.Pop(r.open).(int)
		r.nodes[id].closed = true
		expanded++
		current := r.nodes[id]

		if r.options.OnExpand != nil {
			if err := r.options.OnExpand(current); err != nil {
				return Result{}, err
			}
		}

		if current.Pos == r.goal {
			return Result{
				Status:   StatusFound,
				Path:     r.path(id),
				Cost:     current.G,
				Expanded: expanded,
			}, nil
		}

		if err := r.relax(id, current); err != nil {
			return Result{}, err
		}
	}

	return Result{Status: StatusNoRoute, Expanded: expanded}, nil
}

// relax examines the four neighbors of the closed node cur (arena index id).
// Unseen empty cells are discovered; open cells reached more cheaply are
// updated in place and their heap position fixed.
func (r *runner) relax(id int, cur Node) error {
	for _, d := range neighborOffsets {
		c := gridmap.Coord{X: cur.Pos.X + d[0], Y: cur.Pos.Y + d[1]}
		if !r.snap.InBounds(c.X, c.Y) {
			continue
		}
		cell := r.snap.At(c.X, c.Y)
		if cell != r.snap.Empty {
			continue
		}
		known := r.slot[r.snap.Index(c.X, c.Y)]
		if known >= 0 && r.nodes[known].closed {
			continue
		}

		cost := r.options.Cost(c, cell)
		if cost < 0 || math.IsNaN(cost) {
			return fmt.Errorf("%w: %v costs %v", ErrBadCost, c, cost)
		}
		if math.IsInf(cost, 1) {
			continue
		}
		g := cur.G + cost

		if known < 0 {
			r.discover(c, cost, g, id)
			continue
		}
		n := &r.nodes[known]
		if g >= n.G {
			continue
		}
		n.G = g
		n.F = g + r.options.Heuristic(c, r.goal)
		n.CostToEnter = cost
		n.parent = id
		heap.Fix(r.open, n.heapAt)
	}

	return nil
}

// path follows parent links from arena index id back to the start and
// returns the chain start first.
func (r *runner) path(id int) []Node {
	var chain []Node
	for at := id; at >= 0; at = r.nodes[at].parent {
		chain = append(chain, r.nodes[at])
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}
