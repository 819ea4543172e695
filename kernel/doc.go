// Package kernel evaluates connection probabilities from the geometric
// relationship between a reference node and a candidate. The variant
// set is closed: Constant, Linear, Exponential and Gaussian. Distances
// fold through periodic boundaries via the spatial package.
//
// Probability never clamps: a kernel evaluating outside [0,1] is an
// authoring bug and surfaces as ErrProbabilityRange, aborting the whole
// generation pass rather than silently skipping the offending pair.
package kernel
