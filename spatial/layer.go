package spatial

import (
	"fmt"
	"math"
)

// LayoutKind tags how a layer's positions were produced.
type LayoutKind int

const (
	// GridLayout places nodes on a regular lattice inside the extent.
	GridLayout LayoutKind = iota
	// FreeLayout takes caller-supplied coordinates verbatim.
	FreeLayout
)

// String implements fmt.Stringer.
func (k LayoutKind) String() string {
	switch k {
	case GridLayout:
		return "grid"
	case FreeLayout:
		return "free"
	default:
		return fmt.Sprintf("LayoutKind(%d)", int(k))
	}
}

// Layer is an ordered population of nodes with positions and an extent.
// It is immutable after construction; Slice returns zero-copy views.
type Layer struct {
	kind LayoutKind
	ext  Extent
	ids  []int64
	pos  []Position

	// View window over ids/pos: element i maps to start + i*step.
	start, step, count int
}

// NewGrid builds a layer of shape[0]×shape[1]×… nodes on a regular
// lattice inside ext, with cell centers evenly spaced and centered
// within the extent. Node IDs are assigned sequentially from firstID in
// row-major order with the first dimension varying fastest.
func NewGrid(firstID int64, shape []int, ext Extent) (*Layer, error) {
	if len(shape) != ext.Dim {
		return nil, fmt.Errorf("spatial: shape has %d dimensions, extent has %d: %w",
			len(shape), ext.Dim, ErrBadShape)
	}
	n := 1
	for _, c := range shape {
		if c < 1 {
			return nil, ErrBadShape
		}
		n *= c
	}
	ids := make([]int64, n)
	pos := make([]Position, n)
	for flat := 0; flat < n; flat++ {
		ids[flat] = firstID + int64(flat)
		rem := flat
		for d := 0; d < ext.Dim; d++ {
			idx := rem % shape[d]
			rem /= shape[d]
			cell := ext.Span[d] / float64(shape[d])
			pos[flat][d] = ext.Lower(d) + (float64(idx)+0.5)*cell
		}
	}
	return &Layer{kind: GridLayout, ext: ext, ids: ids, pos: pos,
		start: 0, step: 1, count: n}, nil
}

// NewFree builds a layer from caller-supplied positions. When ext is
// non-nil every position must lie inside it (unless it wraps); when nil
// the extent is derived as the bounding box of the positions, unwrapped
// and centered on their midpoint. Node IDs are sequential from firstID.
func NewFree(firstID int64, positions []Position, ext *Extent) (*Layer, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyLayer
	}
	var e Extent
	if ext != nil {
		e = *ext
		for i, p := range positions {
			if !e.contains(p) {
				return nil, fmt.Errorf("spatial: node %d at %v: %w", i, p, ErrOutOfExtent)
			}
		}
	} else {
		e = boundingExtent(positions)
	}
	ids := make([]int64, len(positions))
	pos := make([]Position, len(positions))
	for i := range positions {
		ids[i] = firstID + int64(i)
		pos[i] = positions[i]
	}
	return &Layer{kind: FreeLayout, ext: e, ids: ids, pos: pos,
		start: 0, step: 1, count: len(positions)}, nil
}

// boundingExtent derives a 3-D unwrapped extent covering all positions.
// Degenerate spans are floored to keep the extent usable for indexing.
func boundingExtent(positions []Position) Extent {
	var lo, hi Position
	lo = positions[0]
	hi = positions[0]
	for _, p := range positions[1:] {
		for d := 0; d < MaxDim; d++ {
			lo[d] = math.Min(lo[d], p[d])
			hi[d] = math.Max(hi[d], p[d])
		}
	}
	dim := MaxDim
	if allZero(positions, 2) {
		dim = 2
		if allZero(positions, 1) {
			dim = 1
		}
	}
	e := Extent{Dim: dim}
	for d := 0; d < dim; d++ {
		span := hi[d] - lo[d]
		if span <= 0 {
			span = 1
		}
		e.Span[d] = span
		e.Center[d] = (lo[d] + hi[d]) / 2
	}
	return e
}

// allZero reports whether coordinate d is zero across all positions.
func allZero(positions []Position, d int) bool {
	for _, p := range positions {
		if p[d] != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of nodes visible through this layer or view.
func (l *Layer) Len() int { return l.count }

// ID returns the node identifier at view index i.
func (l *Layer) ID(i int) int64 { return l.ids[l.start+i*l.step] }

// At returns the position of the node at view index i.
func (l *Layer) At(i int) Position { return l.pos[l.start+i*l.step] }

// Extent returns the layer's extent. Views inherit the parent extent.
func (l *Layer) Extent() Extent { return l.ext }

// Kind returns the layout kind (grid or free).
func (l *Layer) Kind() LayoutKind { return l.kind }

// Slice returns a view over [start, stop) with the given step. The view
// shares position storage with the parent; no data is copied. Slicing a
// view composes the windows.
func (l *Layer) Slice(start, stop, step int) (*Layer, error) {
	if step < 1 || start < 0 || stop > l.count || start >= stop {
		return nil, fmt.Errorf("spatial: Slice(%d, %d, %d): %w", start, stop, step, ErrBadSlice)
	}
	count := (stop - start + step - 1) / step
	return &Layer{
		kind:  l.kind,
		ext:   l.ext,
		ids:   l.ids,
		pos:   l.pos,
		start: l.start + start*l.step,
		step:  l.step * step,
		count: count,
	}, nil
}

// Node returns a single-node view at index i.
func (l *Layer) Node(i int) (*Layer, error) { return l.Slice(i, i+1, 1) }

// IDs returns the node identifiers visible through this view, in order.
func (l *Layer) IDs() []int64 {
	out := make([]int64, l.count)
	for i := range out {
		out[i] = l.ID(i)
	}
	return out
}

// PositionOf returns the position of the node with identifier id, or
// false when the view does not contain it.
func (l *Layer) PositionOf(id int64) (Position, bool) {
	for i := 0; i < l.count; i++ {
		if l.ID(i) == id {
			return l.At(i), true
		}
	}
	return Position{}, false
}
