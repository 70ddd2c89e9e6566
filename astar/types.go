package astar

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/rovermap/gridmap"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGrid indicates that a nil *gridmap.GridMap was passed to Search.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrBadCost indicates that the cost function returned a negative or NaN value.
	ErrBadCost = errors.New("astar: cost to enter must be a non-negative number")
)

// Status is the outcome of a search that ran without caller error.
type Status int

const (
	// StatusFound means a route from start to goal was found.
	StatusFound Status = iota
	// StatusNoRoute means every reachable cell was expanded without meeting the goal.
	StatusNoRoute
	// StatusCancelled means the context ended before the search finished.
	StatusCancelled
)

// String returns the status text shown to the operator.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "route found"
	case StatusNoRoute:
		return "no route"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Node is a grid position with its A* bookkeeping.
// Two nodes denote the same search state iff their Pos values are equal.
// CostToEnter is the cost function's value for Pos (1 under UnitCost); the
// start node is never entered, so its CostToEnter and G are 0.
type Node struct {
	Pos         gridmap.Coord // 1-based cell
	CostToEnter float64       // cost paid to step into Pos
	G           float64       // accumulated cost from start
	F           float64       // G plus heuristic estimate to goal

	parent int // arena index of the predecessor, -1 for the start
	seq    int // discovery order, breaks F ties
	heapAt int // position in the open heap, -1 when not queued
	closed bool
}

// Result is the outcome of one Search call.
type Result struct {
	Status   Status
	Path     []Node  // start first; nil unless Status == StatusFound
	Cost     float64 // G of the goal node
	Expanded int     // number of nodes taken from the open set
	Cause    error   // ctx.Err() when Status == StatusCancelled
}

// Found reports whether a route was found.
func (r Result) Found() bool { return r.Status == StatusFound }

// Coords returns the positions of Path in order.
func (r Result) Coords() []gridmap.Coord {
	if len(r.Path) == 0 {
		return nil
	}
	out := make([]gridmap.Coord, len(r.Path))
	for i, n := range r.Path {
		out[i] = n.Pos
	}

	return out
}

// CostFunc returns the cost of entering cell c whose current value is cell.
type CostFunc func(c gridmap.Coord, cell byte) float64

// Heuristic estimates the remaining cost from a to b.
type Heuristic func(a, b gridmap.Coord) float64

// Observer is told about every finished search, whatever its status.
type Observer interface {
	SearchFinished(res Result, elapsed time.Duration)
}

// Manhattan is the default heuristic: |dx| + |dy|.
func Manhattan(a, b gridmap.Coord) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// UnitCost charges 1 for every cell.
func UnitCost(gridmap.Coord, byte) float64 { return 1 }

// Options configures Search.
type Options struct {
	Ctx       context.Context // cancellation; Background by default
	Cost      CostFunc        // cost to enter a cell; UnitCost by default
	Heuristic Heuristic       // estimate to goal; Manhattan by default
	OnExpand  func(n Node) error
	Observer  Observer
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// DefaultOptions returns Options with a background context, unit costs and
// the Manhattan heuristic.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Cost:      UnitCost,
		Heuristic: Manhattan,
	}
}

// WithContext sets the context checked once per expansion.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithCost installs fn as the cost to enter each cell. A nil fn keeps UnitCost.
func WithCost(fn CostFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Cost = fn
		}
	}
}

// WithHeuristic replaces the Manhattan estimate. A nil fn keeps Manhattan.
func WithHeuristic(fn Heuristic) Option {
	return func(o *Options) {
		if fn != nil {
			o.Heuristic = fn
		}
	}
}

// WithOnExpand installs a hook called with each node as it is closed.
// Returning an error aborts the search with that error.
func WithOnExpand(fn func(n Node) error) Option {
	return func(o *Options) {
		o.OnExpand = fn
	}
}

// WithObserver reports each finished search to obs.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}
