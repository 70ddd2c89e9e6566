// Package gridmap implements the rover occupancy grid: a dense W×H buffer of
// single-byte cells with two reserved marks (obstacle and empty), edits,
// a byte-exact persisted encoding and block downsampling.
//
// What:
//
//   - GridMap holds a row-major []byte buffer guarded by a sync.RWMutex.
//   - Public coordinates are 1-based: x ∈ [1, Width], y ∈ [1, Height].
//   - Point/SetPoint/SetRectangle edit cells; SubGrid extracts a rectangle.
//   - Load/Save (and Decode/Encode over io) read and write the map file format.
//   - Simplify reduces a map by factor×factor blocks for coarse previews.
//
// Why:
//
//   - The operator console annotates cells in place (obstacles, route marks)
//     while the search engine reads a consistent snapshot.
//   - The file format lets a workspace round-trip maps byte for byte.
//
// File format:
//
//	byte[0]   obstacle mark
//	byte[1]   separator (ignored, normally '\n')
//	byte[2]   empty mark
//	byte[3]   separator (ignored, normally '\n')
//	byte[4..] Height rows of Width cells joined by '\n'
//
// Row width is taken from the first row; a trailing '\n' after the last row
// is accepted on load and never written on save.
//
// Complexity:
//
//   - Point, SetPoint:      O(1).
//   - SetRectangle:         O(w×h).
//   - Clone, Save, Load:    O(W×H), Memory: O(W×H).
//   - Simplify(f):          O(W×H), Memory: O(W×H/f²).
//
// Errors:
//
//   - ErrInvalidSize:       width or height below 1.
//   - ErrInvalidMarks:      obstacle and empty marks equal, or a mark is '\n'.
//   - ErrInvalidCell:       attempt to store '\n', which the format reserves.
//   - ErrOutOfBounds:       coordinate or rectangle outside the grid.
//   - ErrMalformedMapFile:  header, empty body, or ragged rows while parsing.
//   - ErrInvalidFactor:     Simplify factor below 1.
package gridmap
