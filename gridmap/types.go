// Package gridmap defines the GridMap type, coordinates and sentinel errors.
package gridmap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Sentinel errors for gridmap operations.
var (
	// ErrInvalidSize indicates a width or height below 1.
	ErrInvalidSize = errors.New("gridmap: width and height must be at least 1")
	// ErrInvalidMarks indicates equal obstacle/empty marks or a newline mark.
	ErrInvalidMarks = errors.New("gridmap: obstacle and empty marks must differ and not be newline")
	// ErrInvalidCell indicates an attempt to store the reserved row separator.
	ErrInvalidCell = errors.New("gridmap: cell value must not be newline")
	// ErrOutOfBounds indicates a coordinate outside [1,Width]×[1,Height].
	ErrOutOfBounds = errors.New("gridmap: coordinate out of bounds")
	// ErrMalformedMapFile indicates the persisted encoding could not be parsed.
	ErrMalformedMapFile = errors.New("gridmap: malformed map file")
	// ErrInvalidFactor indicates a Simplify factor below 1.
	ErrInvalidFactor = errors.New("gridmap: simplify factor must be at least 1")
	// ErrBadCoord indicates operator input that is not of the form "x,y".
	ErrBadCoord = errors.New("gridmap: coordinate must be of the form x,y")
)

// Separator is the row separator of the persisted encoding.
const Separator = '\n'

// Coord is a 1-based grid position.
type Coord struct {
	X, Y int
}

// String formats c as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ParseCoord parses operator input of the form "x,y" (spaces allowed).
// It does not check bounds; that is the job of the map the coordinate is used on.
func ParseCoord(s string) (Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}

	return Coord{X: x, Y: y}, nil
}

// GridMap is a W×H occupancy grid of byte cells.
// cells holds row-major storage: cell (x,y) lives at (y-1)*width + (x-1).
// All methods are safe for concurrent use; writers take mu exclusively.
type GridMap struct {
	mu       sync.RWMutex
	width    int
	height   int
	obstacle byte
	empty    byte
	cells    []byte
}

// validateMarks checks that the reserved marks are usable.
func validateMarks(obstacle, empty byte) error {
	if obstacle == empty || obstacle == Separator || empty == Separator {
		return fmt.Errorf("%w: obstacle=%q empty=%q", ErrInvalidMarks, obstacle, empty)
	}

	return nil
}
