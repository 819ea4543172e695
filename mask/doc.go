// Package mask defines the geometric regions used to restrict candidate
// partners during connection generation. A mask is always interpreted
// relative to a reference node's position; containment folds the
// candidate's offset through the layer extent's periodic boundaries
// before testing.
//
// The shape set is a closed variant: Rectangular, Circular and Doughnut.
// Every shape exposes a bounding box (Bounds) used by the spatial index
// to prune candidates, and an exact containment test (Contains) that
// drops bounding-box false positives.
//
// A mask is oversized with respect to a wrapped extent when its width
// in any dimension exceeds that dimension's span: the region would then
// reach a candidate from both sides of the wrap and could select it
// twice. Oversize is a hard configuration error unless the caller
// explicitly opts in, accepting the double-count risk as-is.
package mask
