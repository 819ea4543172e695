package spatial

import "math"

// View is any indexed sequence of positioned nodes. *Layer and its
// slices satisfy it, as do higher-level population wrappers.
type View interface {
	Len() int
	At(i int) Position
	Extent() Extent
}

// Index is a cell-grid over a view's positions, supporting
// bounding-region queries so masked rules avoid all-pairs scans. Cells
// partition the extent; a query visits only the cells overlapping the
// region, honoring periodic wrap.
type Index struct {
	view  View
	ext   Extent
	ncell [MaxDim]int
	csize [MaxDim]float64
	cells [][]int // flat cell -> view indices
}

// targetPerCell sizes the grid for a handful of nodes per cell.
const targetPerCell = 8

// NewIndex builds a cell-grid index over v. Nodes outside the extent
// (possible for derived free extents at the boundary) are clamped into
// the edge cells, so queries never lose them.
func NewIndex(v View) *Index {
	ext := v.Extent()
	n := v.Len()
	perDim := int(math.Ceil(math.Pow(float64(n)/targetPerCell, 1/float64(ext.Dim))))
	if perDim < 1 {
		perDim = 1
	}
	ix := &Index{view: v, ext: ext}
	total := 1
	for d := 0; d < MaxDim; d++ {
		if d < ext.Dim {
			ix.ncell[d] = perDim
			ix.csize[d] = ext.Span[d] / float64(perDim)
		} else {
			ix.ncell[d] = 1
			ix.csize[d] = 1
		}
		total *= ix.ncell[d]
	}
	ix.cells = make([][]int, total)
	for i := 0; i < n; i++ {
		c := ix.cellOf(v.At(i))
		ix.cells[c] = append(ix.cells[c], i)
	}
	return ix
}

// cellOf maps a position to its flat cell index, clamping to the grid.
func (ix *Index) cellOf(p Position) int {
	flat := 0
	stride := 1
	for d := 0; d < MaxDim; d++ {
		c := 0
		if d < ix.ext.Dim {
			c = int((p[d] - ix.ext.Lower(d)) / ix.csize[d])
			if c < 0 {
				c = 0
			} else if c >= ix.ncell[d] {
				c = ix.ncell[d] - 1
			}
		}
		flat += c * stride
		stride *= ix.ncell[d]
	}
	return flat
}

// InRegion appends to dst the view indices of all nodes whose
// wrap-adjusted displacement from ref lies within [lo, hi] per
// dimension, and returns the extended slice. The result is the exact
// bounding-region candidate set; callers apply the precise mask test on
// top of it.
func (ix *Index) InRegion(ref Position, lo, hi Position, dst []int) []int {
	// Per-dimension cell ranges covering [ref+lo, ref+hi].
	var first, span [MaxDim]int
	for d := 0; d < MaxDim; d++ {
		if d >= ix.ext.Dim {
			first[d], span[d] = 0, 1
			continue
		}
		a := int(math.Floor((ref[d] + lo[d] - ix.ext.Lower(d)) / ix.csize[d]))
		b := int(math.Floor((ref[d] + hi[d] - ix.ext.Lower(d)) / ix.csize[d]))
		cnt := b - a + 1
		if cnt >= ix.ncell[d] {
			// Region covers the whole dimension: visit each cell once.
			first[d], span[d] = 0, ix.ncell[d]
		} else {
			first[d], span[d] = a, cnt
		}
	}

	var visit func(d, flat, stride int)
	visit = func(d, flat, stride int) {
		if d == MaxDim {
			for _, i := range ix.cells[flat] {
				disp := Displacement(ref, ix.view.At(i), ix.ext)
				inside := true
				for k := 0; k < ix.ext.Dim; k++ {
					if disp[k] < lo[k] || disp[k] > hi[k] {
						inside = false
						break
					}
				}
				if inside {
					dst = append(dst, i)
				}
			}
			return
		}
		for j := 0; j < span[d]; j++ {
			c := first[d] + j
			if ix.ext.Wrap {
				c = ((c % ix.ncell[d]) + ix.ncell[d]) % ix.ncell[d]
			} else if c < 0 || c >= ix.ncell[d] {
				continue
			}
			visit(d+1, flat+c*stride, stride*ix.ncell[d])
		}
	}
	visit(0, 0, 1)
	return dst
}
