package connect

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/exp/rand"

	"github.com/velkyn/neuromesh/kernel"
	"github.com/velkyn/neuromesh/mask"
	"github.com/velkyn/neuromesh/randvar"
	"github.com/velkyn/neuromesh/spatial"
)

// Sentinel errors for connection generation.
var (
	// ErrNilSink indicates Generate was called without a sink.
	ErrNilSink = errors.New("connect: sink is required")
	// ErrEmptyPopulation indicates a nil or empty pre/post population.
	ErrEmptyPopulation = errors.New("connect: population must not be empty")
	// ErrUnknownRule indicates a Rule value outside the closed set.
	ErrUnknownRule = errors.New("connect: unknown connection rule")
	// ErrBadDegree indicates a non-positive degree for a fixed-degree rule.
	ErrBadDegree = errors.New("connect: degree must be positive")
	// ErrInsufficientCandidates indicates a fixed-degree draw without
	// multapses where an anchor's distinct candidate pool is smaller
	// than the requested degree (or carries no selection weight).
	ErrInsufficientCandidates = errors.New("connect: fewer usable candidates than requested degree")
	// ErrRuleMaskConflict indicates a mask combined with a rule that
	// does not define mask semantics (AllToAll).
	ErrRuleMaskConflict = errors.New("connect: rule does not accept a mask")
	// ErrRuleKernelConflict indicates a kernel combined with a rule
	// that does not define kernel semantics (AllToAll).
	ErrRuleKernelConflict = errors.New("connect: rule does not accept a kernel")
	// ErrNotSpatial indicates a mask or kernel applied to populations
	// without spatial positions.
	ErrNotSpatial = errors.New("connect: mask or kernel requires positioned populations")
	// ErrDimensionMismatch indicates pre and post extents of different
	// dimensionality while a mask or kernel is in play.
	ErrDimensionMismatch = errors.New("connect: pre and post dimensionality differ")
)

// Population is an ordered sequence of node identifiers. It may or may
// not carry positions; geometry-dependent specs additionally require
// SpatialPopulation.
type Population interface {
	Len() int
	ID(i int) int64
}

// SpatialPopulation is a population whose nodes have positions inside
// an extent. *spatial.Layer and its slices satisfy it.
type SpatialPopulation interface {
	Population
	At(i int) spatial.Position
	Extent() spatial.Extent
}

// NodeSet is a position-less population, used where connectivity is
// purely combinatorial. Masked or kernelled specs reject it.
type NodeSet []int64

// Len implements Population.
func (s NodeSet) Len() int { return len(s) }

// ID implements Population.
func (s NodeSet) ID(i int) int64 { return s[i] }

// Nodes builds a NodeSet of n sequential IDs starting at firstID.
func Nodes(firstID int64, n int) NodeSet {
	s := make(NodeSet, n)
	for i := range s {
		s[i] = firstID + int64(i)
	}
	return s
}

// Rule is the closed set of connection rules.
type Rule int

const (
	// AllToAll connects every source to every candidate target.
	AllToAll Rule = iota
	// FixedInDegree draws a fixed number of sources per target.
	FixedInDegree
	// FixedOutDegree draws a fixed number of targets per source.
	FixedOutDegree
	// PairwiseBernoulli runs one accept/reject trial per pair.
	PairwiseBernoulli

	numRules
)

// String implements fmt.Stringer.
func (r Rule) String() string {
	switch r {
	case AllToAll:
		return "all_to_all"
	case FixedInDegree:
		return "fixed_indegree"
	case FixedOutDegree:
		return "fixed_outdegree"
	case PairwiseBernoulli:
		return "pairwise_bernoulli"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// Spec declares how to connect two populations. The zero value is not
// usable; start from DefaultSpec.
type Spec struct {
	Rule   Rule
	Degree int           // partner count for fixed-degree rules
	Mask   mask.Mask     // optional geometric restriction
	Kernel kernel.Kernel // optional probability / selection weight

	// UseOnSource anchors mask and kernel at the source instead of the
	// target for PairwiseBernoulli.
	UseOnSource bool

	AllowAutapses      bool
	AllowMultapses     bool
	AllowOversizedMask bool
}

// DefaultSpec returns a Spec for rule r with autapses and multapses
// allowed, matching the conventional defaults of the source ecosystem.
func DefaultSpec(r Rule) Spec {
	return Spec{Rule: r, AllowAutapses: true, AllowMultapses: true}
}

// Param is a synapse parameter: either a literal value or a random
// variable drawn independently per connection. The zero value means
// "use the engine default" (1.0).
type Param struct {
	set   bool
	value float64
	dist  randvar.Var
}

// Literal builds a Param that always resolves to v.
func Literal(v float64) Param { return Param{set: true, value: v} }

// Random builds a Param drawing a fresh value per connection from v.
func Random(v randvar.Var) Param { return Param{dist: v} }

// defaultParamValue is used for weight and delay when unset.
const defaultParamValue = 1.0

// sample resolves the parameter for one edge.
func (p Param) sample(src rand.Source) float64 {
	if p.dist != nil {
		return p.dist.Sample(src)
	}
	if p.set {
		return p.value
	}
	return defaultParamValue
}

// SynapseSpec maps synapse parameters to literals or distributions.
type SynapseSpec struct {
	Model  string // synapse-type tag carried onto every edge
	Weight Param
	Delay  Param
}

// defaultModel tags edges generated without an explicit synapse model.
const defaultModel = "static"

// DefaultSynapse returns the engine defaults: static model, weight 1,
// delay 1.
func DefaultSynapse() SynapseSpec {
	return SynapseSpec{Model: defaultModel, Weight: Literal(1), Delay: Literal(1)}
}

// Edge is one committed connection with resolved parameters.
type Edge struct {
	Source int64   `csv:"source"`
	Target int64   `csv:"target"`
	Model  string  `csv:"model"`
	Weight float64 `csv:"weight"`
	Delay  float64 `csv:"delay"`
}

// Sink receives committed edges. Ownership of each Edge transfers on
// Insert; the engine keeps no edge state beyond the generation pass.
type Sink interface {
	Insert(Edge) error
}

// config aggregates per-call knobs.
type config struct {
	seed    uint64
	workers int
}

func defaultConfig() config {
	return config{seed: 0, workers: runtime.GOMAXPROCS(0)}
}

// Option customizes a single Generate call.
type Option func(*config)

// WithSeed fixes the random seed; identical seeds reproduce identical
// edge sets regardless of parallelism.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithParallelism caps the number of worker goroutines. Panics on
// n < 1 to surface programmer error at the call site.
func WithParallelism(n int) Option {
	if n < 1 {
		panic("connect: WithParallelism requires n >= 1")
	}
	return func(c *config) { c.workers = n }
}
