package connect

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/velkyn/neuromesh/spatial"
)

// Generate connects pre to post according to spec, sampling per-edge
// parameters from syn (nil means engine defaults), and commits every
// edge to sink. All structural validation runs before the first edge
// is emitted; on a validation error the sink receives nothing.
func Generate(pre, post Population, spec Spec, syn *SynapseSpec, sink Sink, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g, err := newGeneration(pre, post, spec, syn, sink, cfg)
	if err != nil {
		return err
	}
	return handlers[spec.Rule](g)
}

// generation holds the per-call state shared by rule handlers.
type generation struct {
	cfg  config
	spec Spec
	syn  SynapseSpec
	sink Sink

	pre, post Population

	// Rule orientation. Anchors are the nodes the rule iterates over
	// (targets for in-degree, sources for out-degree); pool holds the
	// candidate partners.
	anchors           Population
	pool              Population
	anchorsAreTargets bool

	// Geometry, populated only when a mask or kernel is in play.
	anchorSpatial SpatialPopulation
	poolSpatial   SpatialPopulation
	ext           spatial.Extent
	index         *spatial.Index
}

// newGeneration validates the call and prepares orientation, geometry
// and the spatial index.
func newGeneration(pre, post Population, spec Spec, syn *SynapseSpec, sink Sink, cfg config) (*generation, error) {
	g := &generation{cfg: cfg, spec: spec, sink: sink, pre: pre, post: post}
	if syn != nil {
		g.syn = *syn
		if g.syn.Model == "" {
			g.syn.Model = defaultModel
		}
	} else {
		g.syn = DefaultSynapse()
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	g.orient()
	if err := g.validateGeometry(); err != nil {
		return nil, err
	}
	if g.spec.Mask != nil {
		g.index = spatial.NewIndex(g.poolSpatial)
	}
	return g, nil
}

// orient fixes which side the rule iterates over and which side
// supplies candidates.
func (g *generation) orient() {
	switch g.spec.Rule {
	case FixedInDegree:
		g.anchors, g.pool, g.anchorsAreTargets = g.post, g.pre, true
	case FixedOutDegree:
		g.anchors, g.pool, g.anchorsAreTargets = g.pre, g.post, false
	case PairwiseBernoulli:
		if g.spec.UseOnSource {
			g.anchors, g.pool, g.anchorsAreTargets = g.pre, g.post, false
		} else {
			g.anchors, g.pool, g.anchorsAreTargets = g.post, g.pre, true
		}
	default: // AllToAll
		g.anchors, g.pool, g.anchorsAreTargets = g.pre, g.post, false
	}
}

// edge assembles a directed edge for (anchor, partner) with parameters
// drawn from the anchor's sub-stream.
func (g *generation) edge(anchorIdx, poolIdx int, src rand.Source) Edge {
	from, to := g.anchors.ID(anchorIdx), g.pool.ID(poolIdx)
	if g.anchorsAreTargets {
		from, to = to, from
	}
	return Edge{
		Source: from,
		Target: to,
		Model:  g.syn.Model,
		Weight: g.syn.Weight.sample(src),
		Delay:  g.syn.Delay.sample(src),
	}
}

// substream returns an independent random source for one anchor,
// derived from (seed, node id) so results do not depend on worker
// scheduling.
func (g *generation) substream(anchorID int64) rand.Source {
	return rand.NewSource(splitmix64(g.cfg.seed ^ splitmix64(uint64(anchorID))))
}

// splitmix64 is the SplitMix64 finalizer, used as a cheap seed mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// parallelThreshold is the minimum anchor count worth fanning out;
// below it goroutine overhead dominates.
const parallelThreshold = 64

// run executes pick for every anchor (possibly in parallel), then
// commits the resulting edges to the sink single-threaded, in anchor
// order. pick must be pure given its sub-stream.
func (g *generation) run(pick func(anchorIdx int, src rand.Source) []int) error {
	n := g.anchors.Len()
	out := make([][]Edge, n)

	process := func(i int) {
		src := g.substream(g.anchors.ID(i))
		partners := pick(i, src)
		edges := make([]Edge, len(partners))
		for k, pi := range partners {
			edges[k] = g.edge(i, pi, src)
		}
		out[i] = edges
	}

	workers := g.cfg.workers
	if n < parallelThreshold || workers < 2 {
		for i := 0; i < n; i++ {
			process(i)
		}
	} else {
		chunk := (n + workers - 1) / workers
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			start, end := w*chunk, (w+1)*chunk
			if end > n {
				end = n
			}
			if start >= end {
				continue
			}
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				for i := start; i < end; i++ {
					process(i)
				}
			}(start, end)
		}
		wg.Wait()
	}

	for i := range out {
		for _, e := range out[i] {
			if err := g.sink.Insert(e); err != nil {
				return fmt.Errorf("connect: sink rejected edge %d→%d: %w", e.Source, e.Target, err)
			}
		}
	}
	return nil
}
