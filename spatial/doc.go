// Package spatial provides the geometric substrate of the connectivity
// engine: D-dimensional positions (D ∈ {1,2,3}), layer extents with
// optional periodic boundaries, grid and free layer layouts, zero-copy
// slicing views, wrap-aware displacement and distance, and a cell-grid
// index for bounding-region queries.
//
// Layers are immutable after construction. A Slice is a view over a
// subsequence of a parent layer (single node, contiguous range, or
// strided step) and shares the parent's position storage.
//
// Distance respects periodic boundaries: when an extent wraps, each
// per-dimension delta is folded to the shorter of the direct and the
// wrapped-around span.
//
// Error handling follows sentinel errors checked with errors.Is:
//
//	ErrBadDimension — extent dimension outside {1,2,3}
//	ErrBadExtent    — non-positive extent span
//	ErrBadShape     — grid shape/extent mismatch or non-positive count
//	ErrEmptyLayer   — no nodes supplied
//	ErrOutOfExtent  — free position outside the declared extent
//	ErrBadSlice     — invalid slice bounds or step
package spatial
