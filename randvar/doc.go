// Package randvar provides the closed set of random-variable
// descriptors used for per-connection parameter sampling (weight,
// delay). Each variant wraps a gonum distuv distribution and draws a
// fresh, independent value per call from the caller's random source,
// so generation stays reproducible under a fixed seed.
//
// Constructors validate bounds up front and return ErrBadBounds for
// inverted ranges or non-positive scales.
package randvar
