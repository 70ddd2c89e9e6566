package gridmap

import (
	"bytes"
	"fmt"
)

// Simplify downsamples g by factor×factor blocks.
// The result is floor(W/factor) × floor(H/factor); trailing rows and columns
// that do not fill a whole block are dropped. An output cell is the obstacle
// mark iff its block holds at least one obstacle cell, otherwise the empty mark.
// Returns ErrInvalidFactor if factor < 1 and ErrInvalidSize if the result
// would have no rows or columns.
// Complexity: O(W×H), Memory: O(W×H/factor²).
func (g *GridMap) Simplify(factor int) (*GridMap, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}
	w, h := g.width/factor, g.height/factor
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d by factor %d leaves %dx%d", ErrInvalidSize, g.width, g.height, factor, w, h)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	out := bytes.Repeat([]byte{g.empty}, w*h)
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			if g.blockHasObstacle(bx*factor, by*factor, factor) {
				out[by*w+bx] = g.obstacle
			}
		}
	}

	return &GridMap{
		width:    w,
		height:   h,
		obstacle: g.obstacle,
		empty:    g.empty,
		cells:    out,
	}, nil
}

// blockHasObstacle scans the factor×factor block at 0-based (x0,y0). Callers hold mu.
func (g *GridMap) blockHasObstacle(x0, y0, factor int) bool {
	for y := y0; y < y0+factor; y++ {
		row := g.cells[y*g.width+x0 : y*g.width+x0+factor]
		if bytes.IndexByte(row, g.obstacle) >= 0 {
			return true
		}
	}

	return false
}
