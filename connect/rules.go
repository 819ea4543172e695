package connect

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/velkyn/neuromesh/kernel"
	"github.com/velkyn/neuromesh/mask"
)

// handler runs one rule over a prepared generation.
type handler func(*generation) error

// handlers is the closed dispatch table, one entry per Rule variant.
var handlers [numRules]handler

func init() {
	handlers[AllToAll] = runAllToAll
	handlers[FixedInDegree] = runFixedDegree
	handlers[FixedOutDegree] = runFixedDegree
	handlers[PairwiseBernoulli] = runBernoulli
}

// plan is one anchor's candidate set: pool indices plus, when a kernel
// is declared, the kernel value per candidate (a Bernoulli probability
// or a fixed-degree selection weight).
type plan struct {
	cand []int
	prob []float64
}

// buildPlans assembles every anchor's candidate set before anything is
// emitted. Mask filtering goes through the spatial index (bounding
// region, then exact containment); kernel evaluation errors abort the
// whole pass here, ahead of the first edge. When excludeSelf is set,
// the anchor's own node is dropped from its candidate pool.
func (g *generation) buildPlans(excludeSelf bool) ([]plan, error) {
	plans := make([]plan, g.anchors.Len())
	var scratch []int
	for i := range plans {
		var cand []int
		if g.spec.Mask != nil {
			ref := g.anchorSpatial.At(i)
			lo, hi := g.spec.Mask.Bounds()
			scratch = g.index.InRegion(ref, lo, hi, scratch[:0])
			for _, j := range scratch {
				if mask.Contains(g.spec.Mask, ref, g.poolSpatial.At(j), g.ext) {
					cand = append(cand, j)
				}
			}
			// Index order depends on cell layout; candidate order must not.
			sort.Ints(cand)
		} else {
			cand = make([]int, g.pool.Len())
			for j := range cand {
				cand[j] = j
			}
		}
		if excludeSelf {
			kept := cand[:0]
			for _, j := range cand {
				if g.pool.ID(j) != g.anchors.ID(i) {
					kept = append(kept, j)
				}
			}
			cand = kept
		}
		var prob []float64
		if g.spec.Kernel != nil {
			ref := g.anchorSpatial.At(i)
			prob = make([]float64, len(cand))
			for k, j := range cand {
				p, err := kernel.Probability(g.spec.Kernel, ref, g.poolSpatial.At(j), g.ext)
				if err != nil {
					return nil, err
				}
				prob[k] = p
			}
		}
		plans[i] = plan{cand: cand, prob: prob}
	}
	return plans, nil
}

// runAllToAll connects every source to every target, skipping
// self-loops when autapses are disallowed. Mask and kernel are rejected
// for this rule during validation, so no filtering happens here.
func runAllToAll(g *generation) error {
	return g.run(func(i int, _ rand.Source) []int {
		partners := make([]int, 0, g.pool.Len())
		for j := 0; j < g.pool.Len(); j++ {
			if !g.spec.AllowAutapses && g.pool.ID(j) == g.anchors.ID(i) {
				continue
			}
			partners = append(partners, j)
		}
		return partners
	})
}

// runBernoulli runs exactly one accept/reject trial per candidate pair.
// Without a kernel every candidate connects (p = 1); trials with p = 1
// or p = 0 consume no randomness, keeping sub-streams stable.
func runBernoulli(g *generation) error {
	plans, err := g.buildPlans(false)
	if err != nil {
		return err
	}
	return g.run(func(i int, src rand.Source) []int {
		rng := rand.New(src)
		p := plans[i]
		var partners []int
		for k, j := range p.cand {
			if !g.spec.AllowAutapses && g.pool.ID(j) == g.anchors.ID(i) {
				continue
			}
			pr := 1.0
			if p.prob != nil {
				pr = p.prob[k]
			}
			switch {
			case pr >= 1:
				partners = append(partners, j)
			case pr <= 0:
				// never connects
			case rng.Float64() < pr:
				partners = append(partners, j)
			}
		}
		return partners
	})
}

// runFixedDegree draws Spec.Degree partners per anchor. Multapses
// switch between sampling with and without replacement; a declared
// kernel turns into per-candidate selection weights. Feasibility is
// checked for every anchor before the first edge is emitted.
func runFixedDegree(g *generation) error {
	plans, err := g.buildPlans(!g.spec.AllowAutapses)
	if err != nil {
		return err
	}
	degree := g.spec.Degree
	for i := range plans {
		if err := checkFeasible(plans[i], degree, g.spec.AllowMultapses); err != nil {
			return fmt.Errorf("connect: anchor %d: %w", g.anchors.ID(i), err)
		}
	}
	return g.run(func(i int, src rand.Source) []int {
		return pickFixed(plans[i], degree, g.spec.AllowMultapses, src)
	})
}

// checkFeasible verifies one anchor's pool can supply the degree.
func checkFeasible(p plan, degree int, multapses bool) error {
	usable := len(p.cand)
	if p.prob != nil {
		usable = 0
		for _, w := range p.prob {
			if w > 0 {
				usable++
			}
		}
	}
	if usable == 0 {
		return ErrInsufficientCandidates
	}
	if !multapses && usable < degree {
		return ErrInsufficientCandidates
	}
	return nil
}

// pickFixed draws degree partners from the anchor's plan.
func pickFixed(p plan, degree int, multapses bool, src rand.Source) []int {
	out := make([]int, 0, degree)
	switch {
	case p.prob == nil && multapses:
		rng := rand.New(src)
		for k := 0; k < degree; k++ {
			out = append(out, p.cand[rng.Intn(len(p.cand))])
		}
	case p.prob == nil:
		// Uniform without replacement: partial Fisher–Yates over a copy.
		rng := rand.New(src)
		idx := append([]int(nil), p.cand...)
		for k := 0; k < degree; k++ {
			j := k + rng.Intn(len(idx)-k)
			idx[k], idx[j] = idx[j], idx[k]
			out = append(out, idx[k])
		}
	default:
		// Kernel-weighted selection: candidates drawn proportionally to
		// their kernel value, with or without replacement.
		w := sampleuv.NewWeighted(append([]float64(nil), p.prob...), src)
		for k := 0; k < degree; k++ {
			i, ok := w.Take()
			if !ok {
				// Ruled out by checkFeasible.
				break
			}
			if multapses {
				w.Reweight(i, p.prob[i])
			}
			out = append(out, p.cand[i])
		}
	}
	return out
}
