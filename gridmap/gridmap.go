package gridmap

import (
	"bytes"
	"fmt"
)

// New constructs a width×height GridMap with every cell set to empty.
// Returns ErrInvalidSize if width or height < 1,
// ErrInvalidMarks if the marks are equal or either is '\n'.
// Complexity: O(W×H) time and memory.
func New(width, height int, obstacle, empty byte) (*GridMap, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if err := validateMarks(obstacle, empty); err != nil {
		return nil, err
	}

	return &GridMap{
		width:    width,
		height:   height,
		obstacle: obstacle,
		empty:    empty,
		cells:    bytes.Repeat([]byte{empty}, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *GridMap) Width() int { return g.width }

// Height returns the number of rows.
func (g *GridMap) Height() int { return g.height }

// Obstacle returns the obstacle mark.
func (g *GridMap) Obstacle() byte { return g.obstacle }

// Empty returns the empty mark.
func (g *GridMap) Empty() byte { return g.empty }

// InBounds reports whether the 1-based (x,y) lies within the grid.
// Complexity: O(1).
func (g *GridMap) InBounds(x, y int) bool {
	return x >= 1 && x <= g.width && y >= 1 && y <= g.height
}

// index maps the 1-based (x,y) to a row-major offset. Callers check bounds.
func (g *GridMap) index(x, y int) int {
	return (y-1)*g.width + (x - 1)
}

func (g *GridMap) checkPoint(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}

	return nil
}

// checkRect validates the full rectangle [x, x+w) × [y, y+h).
func (g *GridMap) checkRect(x, y, w, h int) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("%w: rectangle %dx%d", ErrInvalidSize, w, h)
	}
	if !g.InBounds(x, y) || !g.InBounds(x+w-1, y+h-1) {
		return fmt.Errorf("%w: rectangle (%d,%d) %dx%d outside %dx%d",
			ErrOutOfBounds, x, y, w, h, g.width, g.height)
	}

	return nil
}

// Point returns the cell at (x,y).
// Returns ErrOutOfBounds if (x,y) is outside the grid.
func (g *GridMap) Point(x, y int) (byte, error) {
	if err := g.checkPoint(x, y); err != nil {
		return 0, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.cells[g.index(x, y)], nil
}

// SetPoint stores v at (x,y).
// Returns ErrOutOfBounds or ErrInvalidCell without modifying the grid.
func (g *GridMap) SetPoint(x, y int, v byte) error {
	if err := g.checkPoint(x, y); err != nil {
		return err
	}
	if v == Separator {
		return ErrInvalidCell
	}
	g.mu.Lock()
	g.cells[g.index(x, y)] = v
	g.mu.Unlock()

	return nil
}

// SetRectangle fills the w×h rectangle whose top-left corner is (x,y) with v.
// The whole rectangle is validated before any cell is written.
// Complexity: O(w×h).
func (g *GridMap) SetRectangle(x, y, w, h int, v byte) error {
	if err := g.checkRect(x, y, w, h); err != nil {
		return err
	}
	if v == Separator {
		return ErrInvalidCell
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for row := y; row < y+h; row++ {
		start := g.index(x, row)
		fill := g.cells[start : start+w]
		for i := range fill {
			fill[i] = v
		}
	}

	return nil
}

// SubGrid extracts the w×h rectangle at (x,y) into a new GridMap with the same marks.
func (g *GridMap) SubGrid(x, y, w, h int) (*GridMap, error) {
	if err := g.checkRect(x, y, w, h); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	cells := make([]byte, 0, w*h)
	for row := y; row < y+h; row++ {
		start := g.index(x, row)
		cells = append(cells, g.cells[start:start+w]...)
	}

	return &GridMap{
		width:    w,
		height:   h,
		obstacle: g.obstacle,
		empty:    g.empty,
		cells:    cells,
	}, nil
}

// ReplaceAll rewrites every cell equal to from with to and reports how many changed.
// Typical use is clearing a previous route mark back to the empty mark.
func (g *GridMap) ReplaceAll(from, to byte) (int, error) {
	if to == Separator {
		return 0, ErrInvalidCell
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for i, c := range g.cells {
		if c == from {
			g.cells[i] = to
			n++
		}
	}

	return n, nil
}

// Count returns the number of cells equal to v.
func (g *GridMap) Count(v byte) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return bytes.Count(g.cells, []byte{v})
}

// Row returns a copy of row y.
func (g *GridMap) Row(y int) ([]byte, error) {
	if err := g.checkPoint(1, y); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	start := g.index(1, y)

	return bytes.Clone(g.cells[start : start+g.width]), nil
}

// Clone returns a deep copy of g.
// Complexity: O(W×H).
func (g *GridMap) Clone() *GridMap {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return &GridMap{
		width:    g.width,
		height:   g.height,
		obstacle: g.obstacle,
		empty:    g.empty,
		cells:    bytes.Clone(g.cells),
	}
}

// Snapshot returns a lock-free, read-only copy of the current cells.
func (g *GridMap) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return Snapshot{
		Width:    g.width,
		Height:   g.height,
		Obstacle: g.obstacle,
		Empty:    g.empty,
		cells:    bytes.Clone(g.cells),
	}
}

// Equal reports whether g and other have the same dimensions, marks and cells.
func (g *GridMap) Equal(other *GridMap) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g == other {
		return true
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	return g.width == other.width &&
		g.height == other.height &&
		g.obstacle == other.obstacle &&
		g.empty == other.empty &&
		bytes.Equal(g.cells, other.cells)
}

// String renders the grid body, one row per line, without the header.
func (g *GridMap) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var b bytes.Buffer
	g.writeRows(&b)

	return b.String()
}

// writeRows writes the rows joined by Separator. Callers hold mu.
func (g *GridMap) writeRows(b *bytes.Buffer) {
	b.Grow(g.height * (g.width + 1))
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte(Separator)
		}
		b.Write(g.cells[y*g.width : (y+1)*g.width])
	}
}

// Snapshot is an immutable view of a GridMap taken at one instant.
// It carries no lock and is safe to read from any goroutine.
type Snapshot struct {
	Width, Height   int
	Obstacle, Empty byte
	cells           []byte
}

// InBounds reports whether the 1-based (x,y) lies within the snapshot.
func (s Snapshot) InBounds(x, y int) bool {
	return x >= 1 && x <= s.Width && y >= 1 && y <= s.Height
}

// At returns the cell at the 1-based (x,y). It panics outside the bounds.
func (s Snapshot) At(x, y int) byte {
	return s.cells[(y-1)*s.Width+(x-1)]
}

// Index maps the 1-based (x,y) to its row-major offset.
func (s Snapshot) Index(x, y int) int {
	return (y-1)*s.Width + (x - 1)
}

// Coordinate converts a row-major offset back to a 1-based Coord.
func (s Snapshot) Coordinate(idx int) Coord {
	return Coord{X: idx%s.Width + 1, Y: idx/s.Width + 1}
}

// Len returns the number of cells.
func (s Snapshot) Len() int { return len(s.cells) }
