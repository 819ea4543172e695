// Package connect implements the connection rule dispatcher: given two
// populations, a declarative Spec and an optional SynapseSpec, Generate
// produces directed edges and commits them to a caller-supplied Sink.
//
// Overview:
//
//   - Rules form a closed variant set: AllToAll, FixedInDegree,
//     FixedOutDegree and PairwiseBernoulli, dispatched through a table
//     built at package init. Adding a rule means adding a variant and a
//     handler, never runtime string branching.
//   - Masks restrict candidates geometrically (exact containment on top
//     of a cell-grid bounding-region query); kernels supply per-pair
//     probabilities (Bernoulli) or per-candidate selection weights
//     (fixed-degree rules).
//   - Autapses (self-loops) and multapses (duplicate ordered pairs) are
//     controlled per Spec. Without multapses, fixed-degree selection
//     samples without replacement and fails up front when the distinct
//     candidate pool is smaller than the requested degree.
//   - Per-connection parameters (weight, delay) come from literals or
//     randvar distributions, drawn independently per edge.
//
// Determinism and parallelism:
//
//   - Every stochastic decision draws from a sub-stream derived from
//     (seed, anchor node id) via splitmix64, so results are identical
//     for any parallelism level. Generation may fan anchors out across
//     workers; edges are committed to the sink single-threaded, in
//     anchor order.
//
// Error handling (sentinel errors, errors.Is):
//
//   - ErrNilSink, ErrEmptyPopulation, ErrUnknownRule — call structure.
//   - ErrBadDegree, ErrInsufficientCandidates — degree configuration.
//   - ErrRuleMaskConflict, ErrRuleKernelConflict — AllToAll does not
//     define mask/kernel semantics and rejects both.
//   - ErrNotSpatial — mask or kernel supplied for populations without
//     positions.
//   - ErrDimensionMismatch — pre and post extents disagree on
//     dimensionality while geometry is in play.
//   - mask.ErrOversized — mask wider than a wrapped extent span,
//     unless Spec.AllowOversizedMask accepts the double-count risk.
//   - kernel.ErrProbabilityRange — a kernel evaluated outside [0,1];
//     the whole pass aborts rather than skipping the pair.
//
// All structural validation happens before the first edge is emitted:
// a failed call commits nothing.
package connect
