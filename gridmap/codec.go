package gridmap

import (
	"bytes"
	"fmt"
	"io"
)

// headerLen is obstacle, separator, empty, separator.
const headerLen = 4

// Load parses the persisted map encoding.
// Returns ErrMalformedMapFile if the header is incomplete, the body is empty,
// a row is empty or any row differs in width from the first one.
// Header marks that are equal or '\n' are reported as ErrInvalidMarks wrapped
// in ErrMalformedMapFile.
// Complexity: O(len(data)).
func Load(data []byte) (*GridMap, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", ErrMalformedMapFile, headerLen, len(data))
	}
	obstacle, empty := data[0], data[2]
	if err := validateMarks(obstacle, empty); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMapFile, err)
	}

	body := data[headerLen:]
	// One trailing separator after the last row is tolerated.
	if n := len(body); n > 0 && body[n-1] == Separator {
		body = body[:n-1]
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedMapFile)
	}

	rows := bytes.Split(body, []byte{Separator})
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: row 1 is empty", ErrMalformedMapFile)
	}
	cells := make([]byte, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedMapFile, i+1, len(row), width)
		}
		cells = append(cells, row...)
	}

	return &GridMap{
		width:    width,
		height:   len(rows),
		obstacle: obstacle,
		empty:    empty,
		cells:    cells,
	}, nil
}

// Decode reads the whole of r and parses it with Load.
func Decode(r io.Reader) (*GridMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gridmap: read map: %w", err)
	}

	return Load(data)
}

// Save serializes g in the persisted encoding. No separator follows the last row.
// Load(g.Save()) is Equal to g.
// Complexity: O(W×H).
func (g *GridMap) Save() []byte {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var b bytes.Buffer
	b.Grow(headerLen + g.height*(g.width+1))
	b.WriteByte(g.obstacle)
	b.WriteByte(Separator)
	b.WriteByte(g.empty)
	b.WriteByte(Separator)
	g.writeRows(&b)

	return b.Bytes()
}

// Encode writes g.Save() to w.
func (g *GridMap) Encode(w io.Writer) error {
	if _, err := w.Write(g.Save()); err != nil {
		return fmt.Errorf("gridmap: write map: %w", err)
	}

	return nil
}
