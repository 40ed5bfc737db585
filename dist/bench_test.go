package dist_test

import (
	"math/rand"
	"testing"

	"github.com/xtal-go/xtal/dist"
	"github.com/xtal-go/xtal/lattice"
	"github.com/xtal-go/xtal/symmetry"
)

func benchInput(n int) ([]dist.Position, *symmetry.Group, *lattice.Cell) {
	rng := rand.New(rand.NewSource(1))
	pos := make([]dist.Position, n)
	for i := range pos {
		pos[i] = dist.Position{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
	}
	cell, err := lattice.Cubic(12)
	if err != nil {
		panic(err)
	}
	inv := symmetry.Op{Rot: [3][3]float64{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}}
	g, err := symmetry.NewGroup([]symmetry.Op{symmetry.Identity(), inv})
	if err != nil {
		panic(err)
	}

	return pos, g, cell
}

func BenchmarkBuildTable_Exact(b *testing.B) {
	pos, g, cell := benchInput(64)
	opts := dist.DefaultOptions()
	opts.Quantize = false

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dist.BuildTable(pos, g, cell, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildTable_Quantized(b *testing.B) {
	pos, g, cell := benchInput(64)
	opts := dist.DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dist.BuildTable(pos, g, cell, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildTable_Parallel(b *testing.B) {
	pos, g, cell := benchInput(64)
	opts := dist.DefaultOptions()
	opts.Workers = 4

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dist.BuildTable(pos, g, cell, opts); err != nil {
			b.Fatal(err)
		}
	}
}
