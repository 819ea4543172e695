package spatial

import "errors"

// Sentinel errors for layer construction and slicing.
var (
	// ErrBadDimension indicates an extent dimension outside {1,2,3}.
	ErrBadDimension = errors.New("spatial: dimension must be 1, 2 or 3")
	// ErrBadExtent indicates a non-positive extent span.
	ErrBadExtent = errors.New("spatial: extent spans must be positive")
	// ErrBadShape indicates a grid shape that is empty, non-positive,
	// or whose dimensionality disagrees with the extent.
	ErrBadShape = errors.New("spatial: invalid grid shape")
	// ErrEmptyLayer indicates a layer constructed with no nodes.
	ErrEmptyLayer = errors.New("spatial: layer must contain at least one node")
	// ErrOutOfExtent indicates a free position outside the declared extent.
	ErrOutOfExtent = errors.New("spatial: position outside declared extent")
	// ErrBadSlice indicates invalid slice bounds or a non-positive step.
	ErrBadSlice = errors.New("spatial: invalid slice bounds or step")
)

// MaxDim is the highest supported spatial dimensionality.
const MaxDim = 3

// Position is a point in up to three dimensions. Dimensions beyond the
// owning extent's Dim are zero and ignored by all geometry.
type Position [MaxDim]float64

// X builds a 1-D position.
func X(x float64) Position { return Position{x, 0, 0} }

// XY builds a 2-D position.
func XY(x, y float64) Position { return Position{x, y, 0} }

// XYZ builds a 3-D position.
func XYZ(x, y, z float64) Position { return Position{x, y, z} }

// Extent is a layer's bounding box: a per-dimension span around Center.
// When Wrap is true, every dimension is periodic with period Span[d].
type Extent struct {
	Dim    int
	Span   [MaxDim]float64
	Center Position
	Wrap   bool
}

// NewExtent builds an extent centered at the origin from per-dimension
// spans. Spans must be positive and number 1 to 3.
func NewExtent(span []float64, wrap bool) (Extent, error) {
	if len(span) < 1 || len(span) > MaxDim {
		return Extent{}, ErrBadDimension
	}
	e := Extent{Dim: len(span), Wrap: wrap}
	for d, s := range span {
		if s <= 0 {
			return Extent{}, ErrBadExtent
		}
		e.Span[d] = s
	}
	return e, nil
}

// Lower returns the extent's lower corner in dimension d.
func (e Extent) Lower(d int) float64 { return e.Center[d] - e.Span[d]/2 }

// Upper returns the extent's upper corner in dimension d.
func (e Extent) Upper(d int) float64 { return e.Center[d] + e.Span[d]/2 }

// contains reports whether p lies inside the box (wrap folds everything
// inside by definition, so wrapped extents contain every position).
func (e Extent) contains(p Position) bool {
	if e.Wrap {
		return true
	}
	const eps = 1e-12
	for d := 0; d < e.Dim; d++ {
		if p[d] < e.Lower(d)-eps || p[d] > e.Upper(d)+eps {
			return false
		}
	}
	return true
}
