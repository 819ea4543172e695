// Package neuromesh generates concrete synaptic connectivity between
// spatially positioned populations of network nodes.
//
// Given two layers (grid lattices or free coordinate clouds, optionally
// with periodic boundaries), a declarative connection rule, an optional
// geometric mask, an optional probability kernel and per-connection
// parameter distributions, the engine produces a deterministic, seeded
// set of directed edges and commits them to a caller-supplied sink.
//
// Everything is organized under per-concern subpackages:
//
//	spatial/  — positions, extents, grid/free layers, slicing views,
//	            wrap-aware geometry and the cell-grid range index
//	mask/     — rectangular, circular and doughnut masks with bounding
//	            boxes and oversize detection
//	kernel/   — constant and distance-dependent probability kernels
//	randvar/  — seedable parameter distributions (uniform, normal,
//	            lognormal, exponential)
//	connect/  — connection rules (all-to-all, fixed in-/out-degree,
//	            pairwise Bernoulli), validation, sampling and the Sink
//	            contract
//	registry/ — reference in-memory sink with queries and CSV export
//	specfile/ — YAML documents describing connection and synapse specs
//
// Quick sketch:
//
//	ext, _ := spatial.NewExtent([]float64{10, 10}, false)
//	layer, _ := spatial.NewGrid(1, []int{4, 5}, ext)
//	store := registry.New()
//	spec := connect.DefaultSpec(connect.FixedInDegree)
//	spec.Degree = 2
//	err := connect.Generate(layer, layer, spec, nil, store,
//	    connect.WithSeed(123))
//
// Generation is all-or-nothing with respect to validation: every
// structural check (rule/mask compatibility, oversized masks, degree
// feasibility) runs before the first edge reaches the sink.
package neuromesh
