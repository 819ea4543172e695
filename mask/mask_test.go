package mask_test

import (
	"errors"
	"testing"

	"github.com/velkyn/neuromesh/mask"
	"github.com/velkyn/neuromesh/spatial"
)

func ext2(t *testing.T, wrap bool) spatial.Extent {
	t.Helper()
	e, err := spatial.NewExtent([]float64{10, 10}, wrap)
	if err != nil {
		t.Fatalf("NewExtent error: %v", err)
	}
	return e
}

// TestRectangularContains exercises offset containment, including wrap.
func TestRectangularContains(t *testing.T) {
	m := mask.Rectangular{
		LowerLeft:  spatial.XY(-5, -5),
		UpperRight: spatial.XY(0, 0),
	}
	flat := ext2(t, false)
	wrap := ext2(t, true)

	cases := []struct {
		name      string
		ext       spatial.Extent
		ref, cand spatial.Position
		want      bool
	}{
		{"itself", flat, spatial.XY(1, 1), spatial.XY(1, 1), true},
		{"lower-left quadrant", flat, spatial.XY(1, 1), spatial.XY(-2, -3), true},
		{"corner inclusive", flat, spatial.XY(1, 1), spatial.XY(-4, -4), true},
		{"above", flat, spatial.XY(1, 1), spatial.XY(1, 2), false},
		{"too far left", flat, spatial.XY(1, 1), spatial.XY(-4.5, 1), false},
		{"wraps inside", wrap, spatial.XY(-4, 0), spatial.XY(4, 0), true},
		{"no wrap stays outside", flat, spatial.XY(-4, 0), spatial.XY(4, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mask.Contains(m, tc.ref, tc.cand, tc.ext); got != tc.want {
				t.Errorf("Contains(ref %v, cand %v) = %v; want %v", tc.ref, tc.cand, got, tc.want)
			}
		})
	}
}

// TestCircularContains checks the radius test and the bounding-box
// corner that a circle's box includes but the circle does not.
func TestCircularContains(t *testing.T) {
	m := mask.Circular{Radius: 2}
	flat := ext2(t, false)

	if !mask.Contains(m, spatial.XY(0, 0), spatial.XY(0, 2), flat) {
		t.Error("boundary candidate should be inside")
	}
	// (1.9, 1.9) is within the bounding box but outside the circle.
	if mask.Contains(m, spatial.XY(0, 0), spatial.XY(1.9, 1.9), flat) {
		t.Error("box corner must be outside the circle")
	}

	wrap := ext2(t, true)
	if !mask.Contains(m, spatial.XY(-4.5, 0), spatial.XY(4.5, 0), wrap) {
		t.Error("wrapped neighbor should be inside")
	}
}

// TestDoughnutContains checks the annulus bounds.
func TestDoughnutContains(t *testing.T) {
	m := mask.Doughnut{Inner: 1, Outer: 3}
	flat := ext2(t, false)
	ref := spatial.XY(0, 0)

	if mask.Contains(m, ref, spatial.XY(0.5, 0), flat) {
		t.Error("hole candidate must be outside")
	}
	if !mask.Contains(m, ref, spatial.XY(2, 0), flat) {
		t.Error("ring candidate must be inside")
	}
	if mask.Contains(m, ref, spatial.XY(3.5, 0), flat) {
		t.Error("far candidate must be outside")
	}
}

// TestValidate rejects malformed shapes.
func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		m    mask.Mask
		err  error
	}{
		{"inverted rect", mask.Rectangular{LowerLeft: spatial.XY(1, 0), UpperRight: spatial.XY(0, 1)}, mask.ErrBadBounds},
		{"zero radius", mask.Circular{Radius: 0}, mask.ErrBadRadius},
		{"inverted doughnut", mask.Doughnut{Inner: 3, Outer: 1}, mask.ErrBadRadius},
		{"ok rect", mask.Rectangular{LowerLeft: spatial.XY(-1, -1), UpperRight: spatial.XY(1, 1)}, nil},
		{"ok circle", mask.Circular{Radius: 1}, nil},
		{"ok doughnut", mask.Doughnut{Inner: 1, Outer: 2}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := mask.Validate(tc.m); !errors.Is(err, tc.err) {
				t.Errorf("Validate error = %v; want %v", err, tc.err)
			}
		})
	}
}

// TestOversized: a mask is oversized only against wrapped extents, and
// only when wider than the span.
func TestOversized(t *testing.T) {
	small, err := spatial.NewExtent([]float64{1, 1}, true)
	if err != nil {
		t.Fatalf("NewExtent error: %v", err)
	}
	big := mask.Circular{Radius: 2}
	if !mask.Oversized(big, small) {
		t.Error("radius 2 on wrapped 1×1 extent must be oversized")
	}

	smallFlat, err := spatial.NewExtent([]float64{1, 1}, false)
	if err != nil {
		t.Fatalf("NewExtent error: %v", err)
	}
	if mask.Oversized(big, smallFlat) {
		t.Error("unwrapped extents are never oversized")
	}

	fits := mask.Circular{Radius: 0.5}
	if mask.Oversized(fits, small) {
		t.Error("radius 0.5 on wrapped 1×1 extent fits exactly")
	}

	rect := mask.Rectangular{LowerLeft: spatial.XY(-0.6, 0), UpperRight: spatial.XY(0.6, 0.4)}
	if !mask.Oversized(rect, small) {
		t.Error("1.2-wide rectangle on wrapped 1×1 extent must be oversized")
	}
}
