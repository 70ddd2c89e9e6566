package gridmap_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/rovermap/gridmap"
)

// randomGrid returns an n×n grid with roughly 20% obstacles.
func randomGrid(b *testing.B, n int) *gridmap.GridMap {
	rng := rand.New(rand.NewSource(42))
	g, err := gridmap.New(n, n, '1', '0')
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	for y := 1; y <= n; y++ {
		for x := 1; x <= n; x++ {
			if rng.Intn(5) == 0 {
				_ = g.SetPoint(x, y, '1')
			}
		}
	}

	return g
}

// BenchmarkSaveLoad measures a full encode/decode cycle on a 500×500 grid.
// Complexity: O(W×H)
func BenchmarkSaveLoad(b *testing.B) {
	g := randomGrid(b, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gridmap.Load(g.Save()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSimplify measures 4×4 block reduction on a 1000×1000 grid.
// Complexity: O(W×H)
func BenchmarkSimplify(b *testing.B) {
	g := randomGrid(b, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Simplify(4)
	}
}
