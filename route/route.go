package route

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/rovermap/astar"
	"github.com/katalvlaran/rovermap/gridmap"
)

// ErrNilGrid indicates that Build was given a nil map.
var ErrNilGrid = errors.New("route: grid is nil")

// Vector is a 2D displacement in cell units.
type Vector struct {
	DX, DY float64
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{DX: v.DX + o.DX, DY: v.DY + o.DY}
}

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	return math.Hypot(v.DX, v.DY)
}

// Report is the geometric summary of a route. It is immutable after Build.
type Report struct {
	nodes        []astar.Node
	segments     []Vector
	distance     float64
	displacement float64
	marked       *gridmap.GridMap
}

// Build copies grid, writes routeMark into every cell of path and computes
// the route metrics.
// Returns ErrNilGrid, gridmap.ErrOutOfBounds if a node lies outside grid, or
// gridmap.ErrInvalidCell if routeMark is the row separator.
// Complexity: O(W×H + len(path)).
func Build(grid *gridmap.GridMap, path []astar.Node, routeMark byte) (*Report, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if routeMark == gridmap.Separator {
		return nil, gridmap.ErrInvalidCell
	}
	for i, n := range path {
		if !grid.InBounds(n.Pos.X, n.Pos.Y) {
			return nil, fmt.Errorf("%w: node %d at %v", gridmap.ErrOutOfBounds, i, n.Pos)
		}
	}

	marked := grid.Clone()
	for _, n := range path {
		if err := marked.SetPoint(n.Pos.X, n.Pos.Y, routeMark); err != nil {
			return nil, err
		}
	}

	r := &Report{
		nodes:  append([]astar.Node(nil), path...),
		marked: marked,
	}
	if len(path) > 1 {
		r.segments = make([]Vector, len(path)-1)
	}
	var net Vector
	for i := range r.segments {
		a, b := path[i].Pos, path[i+1].Pos
		v := Vector{DX: float64(a.X - b.X), DY: float64(a.Y - b.Y)}
		r.segments[i] = v
		r.distance += v.Magnitude()
		net = net.Add(v)
	}
	r.displacement = net.Magnitude()

	return r, nil
}

// FromResult builds a Report from a found search result.
// A result without a route yields a Report with no nodes.
func FromResult(grid *gridmap.GridMap, res astar.Result, routeMark byte) (*Report, error) {
	return Build(grid, res.Path, routeMark)
}

// Nodes returns a copy of the node chain, start first.
func (r *Report) Nodes() []astar.Node {
	return append([]astar.Node(nil), r.nodes...)
}

// Coords returns the positions of the node chain, start first.
func (r *Report) Coords() []gridmap.Coord {
	out := make([]gridmap.Coord, len(r.nodes))
	for i, n := range r.nodes {
		out[i] = n.Pos
	}

	return out
}

// Len returns the number of nodes.
func (r *Report) Len() int { return len(r.nodes) }

// Segments returns a copy of the per-segment vectors; len is Len()-1, or 0.
func (r *Report) Segments() []Vector {
	return append([]Vector(nil), r.segments...)
}

// Distance returns the sum of segment lengths.
func (r *Report) Distance() float64 { return r.distance }

// Displacement returns the length of the vector sum of all segments.
func (r *Report) Displacement() float64 { return r.displacement }

// Map returns a copy of the annotated map.
func (r *Report) Map() *gridmap.GridMap { return r.marked.Clone() }

// Preview returns the annotated map reduced by factor (see GridMap.Simplify).
func (r *Report) Preview(factor int) (*gridmap.GridMap, error) {
	return r.marked.Simplify(factor)
}

// String summarises the report for status text.
func (r *Report) String() string {
	if len(r.nodes) == 0 {
		return "empty route"
	}

	return fmt.Sprintf("%d nodes %v→%v distance %.2f displacement %.2f",
		len(r.nodes), r.nodes[0].Pos, r.nodes[len(r.nodes)-1].Pos, r.distance, r.displacement)
}
