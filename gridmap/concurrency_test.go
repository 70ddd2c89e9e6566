// Package gridmap_test verifies thread-safety of GridMap under concurrent edits and reads.
package gridmap_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConcurrentEditAndSave runs writers on disjoint rows while readers
// save and snapshot the grid, then checks every write landed.
func TestConcurrentEditAndSave(t *testing.T) {
	const n = 64
	g := mustNew(t, n, n)
	var wg sync.WaitGroup
	wg.Add(2 * n)

	for y := 1; y <= n; y++ {
		go func(row int) {
			defer wg.Done()
			for x := 1; x <= n; x++ {
				require.NoError(t, g.SetPoint(x, row, '1'))
			}
		}(y)
		go func() {
			defer wg.Done()
			_ = g.Save()
			_ = g.Snapshot()
			_, _ = g.Simplify(4)
		}()
	}
	wg.Wait()

	require.Equal(t, n*n, g.Count('1'))
}
