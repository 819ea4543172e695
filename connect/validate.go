package connect

import (
	"fmt"

	"github.com/velkyn/neuromesh/kernel"
	"github.com/velkyn/neuromesh/mask"
)

// validate checks call structure and spec consistency. Ordering follows
// the error priority documented in doc.go: call structure first, then
// degree, then rule/mask/kernel compatibility, then spatial typing.
func (g *generation) validate() error {
	if g.sink == nil {
		return ErrNilSink
	}
	if g.pre == nil || g.pre.Len() == 0 {
		return fmt.Errorf("connect: pre: %w", ErrEmptyPopulation)
	}
	if g.post == nil || g.post.Len() == 0 {
		return fmt.Errorf("connect: post: %w", ErrEmptyPopulation)
	}
	if g.spec.Rule < 0 || g.spec.Rule >= numRules {
		return fmt.Errorf("connect: rule %d: %w", int(g.spec.Rule), ErrUnknownRule)
	}

	switch g.spec.Rule {
	case FixedInDegree, FixedOutDegree:
		if g.spec.Degree < 1 {
			return fmt.Errorf("connect: %s degree %d: %w", g.spec.Rule, g.spec.Degree, ErrBadDegree)
		}
	case AllToAll:
		if g.spec.Mask != nil {
			return fmt.Errorf("connect: %s: %w", g.spec.Rule, ErrRuleMaskConflict)
		}
		if g.spec.Kernel != nil {
			return fmt.Errorf("connect: %s: %w", g.spec.Rule, ErrRuleKernelConflict)
		}
	}

	if g.spec.Mask == nil && g.spec.Kernel == nil {
		return nil
	}

	preSp, preOK := g.pre.(SpatialPopulation)
	postSp, postOK := g.post.(SpatialPopulation)
	if !preOK || !postOK {
		return ErrNotSpatial
	}
	if preSp.Extent().Dim != postSp.Extent().Dim {
		return fmt.Errorf("connect: pre dim %d vs post dim %d: %w",
			preSp.Extent().Dim, postSp.Extent().Dim, ErrDimensionMismatch)
	}
	return nil
}

// validateGeometry runs after orientation: mask parameters, oversize
// against the candidate side's extent, and kernel parameters.
func (g *generation) validateGeometry() error {
	if g.spec.Mask == nil && g.spec.Kernel == nil {
		return nil
	}
	// validate() guaranteed both sides are spatial.
	g.anchorSpatial = g.anchors.(SpatialPopulation)
	g.poolSpatial = g.pool.(SpatialPopulation)
	g.ext = g.poolSpatial.Extent()

	if m := g.spec.Mask; m != nil {
		if err := mask.Validate(m); err != nil {
			return err
		}
		if mask.Oversized(m, g.ext) && !g.spec.AllowOversizedMask {
			return fmt.Errorf("connect: %w (set AllowOversizedMask to accept the wrap double-count risk)",
				mask.ErrOversized)
		}
	}
	if k := g.spec.Kernel; k != nil {
		if err := kernel.Validate(k); err != nil {
			return err
		}
	}
	return nil
}
