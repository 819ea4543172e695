package spatial_test

import (
	"sort"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/velkyn/neuromesh/spatial"
)

// bruteRegion is the exhaustive reference for InRegion.
func bruteRegion(v spatial.View, ref, lo, hi spatial.Position) []int {
	ext := v.Extent()
	var out []int
	for i := 0; i < v.Len(); i++ {
		d := spatial.Displacement(ref, v.At(i), ext)
		inside := true
		for k := 0; k < ext.Dim; k++ {
			if d[k] < lo[k] || d[k] > hi[k] {
				inside = false
				break
			}
		}
		if inside {
			out = append(out, i)
		}
	}
	return out
}

// checkIndex compares index queries against brute force for every node
// as reference, for a handful of regions.
func checkIndex(t *testing.T, layer *spatial.Layer) {
	t.Helper()
	ix := spatial.NewIndex(layer)
	regions := []struct{ lo, hi spatial.Position }{
		{spatial.XY(-2.5, -2.5), spatial.XY(0, 0)},
		{spatial.XY(-1, -1), spatial.XY(1, 1)},
		{spatial.XY(0, -5), spatial.XY(5, 5)},
		{spatial.XY(-20, -20), spatial.XY(20, 20)}, // covers everything
	}
	for ri, r := range regions {
		for i := 0; i < layer.Len(); i++ {
			ref := layer.At(i)
			got := ix.InRegion(ref, r.lo, r.hi, nil)
			sort.Ints(got)
			want := bruteRegion(layer, ref, r.lo, r.hi)
			if len(got) != len(want) {
				t.Fatalf("region %d ref %d: got %d candidates, want %d", ri, i, len(got), len(want))
			}
			for k := range want {
				if got[k] != want[k] {
					t.Fatalf("region %d ref %d: candidate sets differ at %d: %d vs %d",
						ri, i, k, got[k], want[k])
				}
			}
		}
	}
}

// TestIndexMatchesBruteForceGrid checks index pruning on grid layers.
func TestIndexMatchesBruteForceGrid(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		ext := mustExtent(t, []float64{10, 10}, wrap)
		l, err := spatial.NewGrid(1, []int{8, 8}, ext)
		if err != nil {
			t.Fatalf("NewGrid error: %v", err)
		}
		checkIndex(t, l)
	}
}

// TestIndexMatchesBruteForceFree checks index pruning on free layers
// with random positions.
func TestIndexMatchesBruteForceFree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, wrap := range []bool{false, true} {
		ext := mustExtent(t, []float64{10, 10}, wrap)
		pos := make([]spatial.Position, 60)
		for i := range pos {
			pos[i] = spatial.XY(rng.Float64()*10-5, rng.Float64()*10-5)
		}
		l, err := spatial.NewFree(1, pos, &ext)
		if err != nil {
			t.Fatalf("NewFree error: %v", err)
		}
		checkIndex(t, l)
	}
}

// TestIndexOnSlicedView ensures views index only their own nodes.
func TestIndexOnSlicedView(t *testing.T) {
	ext := mustExtent(t, []float64{10, 10}, true)
	l, err := spatial.NewGrid(1, []int{8, 8}, ext)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	view, err := l.Slice(0, l.Len(), 3)
	if err != nil {
		t.Fatalf("Slice error: %v", err)
	}
	checkIndex(t, view)
}

// TestIndexSingleNode covers the degenerate one-node layer with an
// oversized query region (wrap): the node must appear exactly once.
func TestIndexSingleNode(t *testing.T) {
	ext := mustExtent(t, []float64{1, 1}, true)
	l, err := spatial.NewFree(1, []spatial.Position{spatial.XY(0, 0)}, &ext)
	if err != nil {
		t.Fatalf("NewFree error: %v", err)
	}
	ix := spatial.NewIndex(l)
	got := ix.InRegion(spatial.XY(0, 0), spatial.XY(-2, -2), spatial.XY(2, 2), nil)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("InRegion = %v; want exactly [0]", got)
	}
}
