package gridmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rovermap/gridmap"
)

// mustNew builds a grid with the '1'/'0' marks used throughout these tests.
func mustNew(t *testing.T, w, h int) *gridmap.GridMap {
	t.Helper()
	g, err := gridmap.New(w, h, '1', '0')
	require.NoError(t, err)

	return g
}

//----------------------------------------------------------------------------//
// New and bounds
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects bad sizes and bad marks.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name     string
		w, h     int
		obs, emp byte
		err      error
	}{
		{"ZeroWidth", 0, 3, '1', '0', gridmap.ErrInvalidSize},
		{"NegativeHeight", 3, -1, '1', '0', gridmap.ErrInvalidSize},
		{"EqualMarks", 3, 3, 'x', 'x', gridmap.ErrInvalidMarks},
		{"NewlineObstacle", 3, 3, '\n', '0', gridmap.ErrInvalidMarks},
		{"NewlineEmpty", 3, 3, '1', '\n', gridmap.ErrInvalidMarks},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := gridmap.New(tc.w, tc.h, tc.obs, tc.emp)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestNew_AllEmpty checks dimensions, marks and initial contents.
func TestNew_AllEmpty(t *testing.T) {
	g := mustNew(t, 4, 3)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, byte('1'), g.Obstacle())
	assert.Equal(t, byte('0'), g.Empty())
	assert.Equal(t, 12, g.Count('0'))
	assert.Equal(t, "0000\n0000\n0000", g.String())
}

// TestInBounds checks the 1-based extents on both axes.
func TestInBounds(t *testing.T) {
	g := mustNew(t, 3, 2)
	for _, c := range []gridmap.Coord{{1, 1}, {3, 2}, {2, 1}} {
		assert.True(t, g.InBounds(c.X, c.Y), "InBounds%v", c)
	}
	for _, c := range []gridmap.Coord{{0, 1}, {4, 1}, {1, 0}, {1, 3}, {-1, -1}} {
		assert.False(t, g.InBounds(c.X, c.Y), "InBounds%v", c)
	}
}

//----------------------------------------------------------------------------//
// Point edits
//----------------------------------------------------------------------------//

func TestPoint_SetAndGet(t *testing.T) {
	g := mustNew(t, 3, 3)
	require.NoError(t, g.SetPoint(1, 1, '1'))
	require.NoError(t, g.SetPoint(3, 2, '*'))

	v, err := g.Point(1, 1)
	require.NoError(t, err)
	assert.Equal(t, byte('1'), v)
	v, err = g.Point(3, 2)
	require.NoError(t, err)
	assert.Equal(t, byte('*'), v)
	assert.Equal(t, "100\n00*\n000", g.String())
}

func TestPoint_OutOfBounds(t *testing.T) {
	g := mustNew(t, 2, 2)
	_, err := g.Point(0, 1)
	assert.ErrorIs(t, err, gridmap.ErrOutOfBounds)
	_, err = g.Point(1, 3)
	assert.ErrorIs(t, err, gridmap.ErrOutOfBounds)
	assert.ErrorIs(t, g.SetPoint(3, 1, '1'), gridmap.ErrOutOfBounds)
	assert.Equal(t, 4, g.Count('0'), "grid must be untouched")
}

func TestSetPoint_RejectsSeparator(t *testing.T) {
	g := mustNew(t, 2, 2)
	assert.ErrorIs(t, g.SetPoint(1, 1, '\n'), gridmap.ErrInvalidCell)
	assert.Equal(t, 4, g.Count('0'))
}

//----------------------------------------------------------------------------//
// Rectangles and sub-grids
//----------------------------------------------------------------------------//

func TestSetRectangle(t *testing.T) {
	g := mustNew(t, 5, 4)
	require.NoError(t, g.SetRectangle(2, 2, 3, 2, '1'))
	assert.Equal(t, "00000\n01110\n01110\n00000", g.String())
}

// TestSetRectangle_NoPartialWrite verifies that a rectangle crossing the edge
// is rejected before any cell changes.
func TestSetRectangle_NoPartialWrite(t *testing.T) {
	g := mustNew(t, 4, 4)
	err := g.SetRectangle(3, 3, 3, 1, '1')
	assert.ErrorIs(t, err, gridmap.ErrOutOfBounds)
	assert.Equal(t, 16, g.Count('0'))

	assert.ErrorIs(t, g.SetRectangle(1, 1, 0, 2, '1'), gridmap.ErrInvalidSize)
	assert.ErrorIs(t, g.SetRectangle(0, 1, 1, 1, '1'), gridmap.ErrOutOfBounds)
	assert.ErrorIs(t, g.SetRectangle(1, 1, 2, 2, '\n'), gridmap.ErrInvalidCell)
	assert.Equal(t, 16, g.Count('0'))
}

func TestSubGrid(t *testing.T) {
	g := mustNew(t, 4, 3)
	require.NoError(t, g.SetPoint(2, 2, '1'))
	require.NoError(t, g.SetPoint(3, 3, '*'))

	sub, err := g.SubGrid(2, 2, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Width())
	assert.Equal(t, 2, sub.Height())
	assert.Equal(t, "100\n0*0", sub.String())

	// The extraction is a copy.
	require.NoError(t, sub.SetPoint(1, 1, '0'))
	v, _ := g.Point(2, 2)
	assert.Equal(t, byte('1'), v)

	_, err = g.SubGrid(3, 1, 3, 1)
	assert.ErrorIs(t, err, gridmap.ErrOutOfBounds)
}

func TestReplaceAll(t *testing.T) {
	g := mustNew(t, 3, 1)
	require.NoError(t, g.SetPoint(1, 1, '*'))
	require.NoError(t, g.SetPoint(3, 1, '*'))

	n, err := g.ReplaceAll('*', g.Empty())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "000", g.String())

	_, err = g.ReplaceAll('0', '\n')
	assert.ErrorIs(t, err, gridmap.ErrInvalidCell)
}

func TestRow(t *testing.T) {
	g := mustNew(t, 3, 2)
	require.NoError(t, g.SetPoint(2, 2, '1'))
	row, err := g.Row(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("010"), row)

	_, err = g.Row(3)
	assert.ErrorIs(t, err, gridmap.ErrOutOfBounds)
}

//----------------------------------------------------------------------------//
// Clone, Snapshot, Equal
//----------------------------------------------------------------------------//

func TestClone_Independent(t *testing.T) {
	g := mustNew(t, 3, 3)
	require.NoError(t, g.SetPoint(2, 2, '1'))
	c := g.Clone()
	assert.True(t, g.Equal(c))

	require.NoError(t, c.SetPoint(1, 1, '*'))
	assert.False(t, g.Equal(c))
	v, _ := g.Point(1, 1)
	assert.Equal(t, byte('0'), v)
}

func TestSnapshot(t *testing.T) {
	g := mustNew(t, 3, 2)
	require.NoError(t, g.SetPoint(3, 2, '1'))
	s := g.Snapshot()
	require.NoError(t, g.SetPoint(3, 2, '0'))

	assert.Equal(t, 3, s.Width)
	assert.Equal(t, 2, s.Height)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, byte('1'), s.At(3, 2), "snapshot must not see later edits")
	assert.Equal(t, 5, s.Index(3, 2))
	assert.Equal(t, gridmap.Coord{X: 3, Y: 2}, s.Coordinate(5))
	assert.True(t, s.InBounds(1, 1))
	assert.False(t, s.InBounds(4, 1))
}

func TestEqual(t *testing.T) {
	a := mustNew(t, 2, 2)
	b := mustNew(t, 2, 2)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a))

	c, err := gridmap.New(2, 2, '#', '0')
	require.NoError(t, err)
	assert.False(t, a.Equal(c), "marks differ")

	d := mustNew(t, 4, 1)
	assert.False(t, a.Equal(d), "shape differs")
	assert.False(t, a.Equal(nil))
}

//----------------------------------------------------------------------------//
// ParseCoord
//----------------------------------------------------------------------------//

func TestParseCoord(t *testing.T) {
	c, err := gridmap.ParseCoord("3,4")
	require.NoError(t, err)
	assert.Equal(t, gridmap.Coord{X: 3, Y: 4}, c)

	c, err = gridmap.ParseCoord(" 10 , 2 ")
	require.NoError(t, err)
	assert.Equal(t, gridmap.Coord{X: 10, Y: 2}, c)
	assert.Equal(t, "(10,2)", c.String())

	for _, bad := range []string{"", "3", "a,1", "1,b", "1;2"} {
		_, err := gridmap.ParseCoord(bad)
		assert.ErrorIs(t, err, gridmap.ErrBadCoord, "input %q", bad)
	}
}
