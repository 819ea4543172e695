package spatial

import "math"

// Displacement returns the per-dimension delta from a to b under ext.
// When the extent wraps, each delta is folded to the shorter of the
// direct and the wrapped-around way, so the result always lies within
// [-Span/2, Span/2] per dimension.
func Displacement(a, b Position, ext Extent) Position {
	var d Position
	for i := 0; i < ext.Dim; i++ {
		dv := b[i] - a[i]
		if ext.Wrap {
			span := ext.Span[i]
			for dv > span/2 {
				dv -= span
			}
			for dv < -span/2 {
				dv += span
			}
		}
		d[i] = dv
	}
	return d
}

// Distance returns the Euclidean distance from a to b under ext,
// respecting periodic boundaries when the extent wraps.
func Distance(a, b Position, ext Extent) float64 {
	d := Displacement(a, b, ext)
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
}
