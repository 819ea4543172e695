package mask

import (
	"errors"
	"math"

	"github.com/velkyn/neuromesh/spatial"
)

// Sentinel errors for mask validation.
var (
	// ErrOversized indicates a mask wider than a wrapped extent span;
	// connecting with it risks selecting the same candidate twice.
	ErrOversized = errors.New("mask: mask wider than the wrapped extent")
	// ErrBadBounds indicates rectangular bounds with lower > upper.
	ErrBadBounds = errors.New("mask: lower bound exceeds upper bound")
	// ErrBadRadius indicates a non-positive or inverted radius.
	ErrBadRadius = errors.New("mask: invalid radius")
)

// Mask is the closed set of region shapes. All offsets are relative to
// a reference position; implementations receive wrap-adjusted
// displacements only.
type Mask interface {
	// Bounds returns the lower and upper corner offsets of the mask's
	// bounding box relative to the reference position.
	Bounds() (lo, hi spatial.Position)

	contains(d spatial.Position) bool
	validate() error
}

// Rectangular selects candidates whose wrap-adjusted offset from the
// reference lies within [LowerLeft, UpperRight] per dimension.
type Rectangular struct {
	LowerLeft  spatial.Position
	UpperRight spatial.Position
}

// Bounds implements Mask.
func (m Rectangular) Bounds() (spatial.Position, spatial.Position) {
	return m.LowerLeft, m.UpperRight
}

func (m Rectangular) contains(d spatial.Position) bool {
	for k := 0; k < spatial.MaxDim; k++ {
		if d[k] < m.LowerLeft[k] || d[k] > m.UpperRight[k] {
			return false
		}
	}
	return true
}

func (m Rectangular) validate() error {
	for k := 0; k < spatial.MaxDim; k++ {
		if m.LowerLeft[k] > m.UpperRight[k] {
			return ErrBadBounds
		}
	}
	return nil
}

// Circular selects candidates within Radius of the reference.
type Circular struct {
	Radius float64
}

// Bounds implements Mask.
func (m Circular) Bounds() (spatial.Position, spatial.Position) {
	r := m.Radius
	return spatial.Position{-r, -r, -r}, spatial.Position{r, r, r}
}

func (m Circular) contains(d spatial.Position) bool {
	return math.Sqrt(d[0]*d[0]+d[1]*d[1]+d[2]*d[2]) <= m.Radius
}

func (m Circular) validate() error {
	if m.Radius <= 0 {
		return ErrBadRadius
	}
	return nil
}

// Doughnut selects candidates at a distance within [Inner, Outer] of
// the reference (an annulus; a spherical shell in 3-D).
type Doughnut struct {
	Inner float64
	Outer float64
}

// Bounds implements Mask.
func (m Doughnut) Bounds() (spatial.Position, spatial.Position) {
	r := m.Outer
	return spatial.Position{-r, -r, -r}, spatial.Position{r, r, r}
}

func (m Doughnut) contains(d spatial.Position) bool {
	dist := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	return dist >= m.Inner && dist <= m.Outer
}

func (m Doughnut) validate() error {
	if m.Inner < 0 || m.Outer <= 0 || m.Inner >= m.Outer {
		return ErrBadRadius
	}
	return nil
}

// Contains reports whether cand lies inside m relative to ref, folding
// the offset through ext's periodic boundaries when it wraps.
func Contains(m Mask, ref, cand spatial.Position, ext spatial.Extent) bool {
	return m.contains(spatial.Displacement(ref, cand, ext))
}

// Validate checks the mask's own parameters (bounds ordering, radii).
func Validate(m Mask) error { return m.validate() }

// Oversized reports whether m is too wide for ext: any bounding-box
// width exceeding the span of a wrapped dimension. Unwrapped extents
// are never oversized.
func Oversized(m Mask, ext spatial.Extent) bool {
	if !ext.Wrap {
		return false
	}
	lo, hi := m.Bounds()
	for d := 0; d < ext.Dim; d++ {
		if hi[d]-lo[d] > ext.Span[d] {
			return true
		}
	}
	return false
}
