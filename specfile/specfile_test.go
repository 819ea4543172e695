package specfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velkyn/neuromesh/connect"
	"github.com/velkyn/neuromesh/kernel"
	"github.com/velkyn/neuromesh/mask"
	"github.com/velkyn/neuromesh/randvar"
	"github.com/velkyn/neuromesh/spatial"
	"github.com/velkyn/neuromesh/specfile"
)

// TestFullDocument decodes a document exercising every block.
func TestFullDocument(t *testing.T) {
	doc := `
rule: fixed_indegree
indegree: 4
allow_autapses: false
allow_multapses: false
allow_oversized_mask: true
mask:
  rectangular:
    lower_left: [-2.0, -1.0]
    upper_right: [2.0, 1.0]
kernel:
  gaussian:
    p_center: 0.8
    sigma: 1.5
synapse:
  model: stdp
  weight:
    uniform:
      min: 0.5
  delay: 1.5
`
	spec, syn, err := specfile.Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, connect.FixedInDegree, spec.Rule)
	assert.Equal(t, 4, spec.Degree)
	assert.False(t, spec.AllowAutapses)
	assert.False(t, spec.AllowMultapses)
	assert.True(t, spec.AllowOversizedMask)
	assert.False(t, spec.UseOnSource)
	assert.Equal(t, mask.Rectangular{
		LowerLeft:  spatial.XY(-2, -1),
		UpperRight: spatial.XY(2, 1),
	}, spec.Mask)
	assert.Equal(t, kernel.Gaussian{P0: 0.8, Sigma: 1.5}, spec.Kernel)

	require.NotNil(t, syn)
	assert.Equal(t, "stdp", syn.Model)
	u, err := randvar.NewUniform(0.5, 1.0)
	require.NoError(t, err)
	assert.Equal(t, connect.Random(u), syn.Weight)
	assert.Equal(t, connect.Literal(1.5), syn.Delay)
}

// TestDefaults: a minimal document leaves the rule defaults in place
// and no synapse spec.
func TestDefaults(t *testing.T) {
	spec, syn, err := specfile.Parse([]byte("rule: all_to_all\n"))
	require.NoError(t, err)
	assert.Equal(t, connect.DefaultSpec(connect.AllToAll), spec)
	assert.Nil(t, syn)
}

// TestRuleVariants maps every rule name, with the degree taken from
// the matching field.
func TestRuleVariants(t *testing.T) {
	cases := []struct {
		doc    string
		rule   connect.Rule
		degree int
	}{
		{"rule: all_to_all", connect.AllToAll, 0},
		{"rule: fixed_indegree\nindegree: 3", connect.FixedInDegree, 3},
		{"rule: fixed_outdegree\noutdegree: 7", connect.FixedOutDegree, 7},
		{"rule: pairwise_bernoulli\np: 0.25", connect.PairwiseBernoulli, 0},
	}
	for _, tc := range cases {
		spec, _, err := specfile.Parse([]byte(tc.doc))
		require.NoError(t, err, tc.doc)
		assert.Equal(t, tc.rule, spec.Rule)
		assert.Equal(t, tc.degree, spec.Degree)
	}
}

// TestShorthandP becomes a constant kernel.
func TestShorthandP(t *testing.T) {
	spec, _, err := specfile.Parse([]byte("rule: pairwise_bernoulli\np: 0.25\n"))
	require.NoError(t, err)
	assert.Equal(t, kernel.Constant{P: 0.25}, spec.Kernel)
}

// TestMaskShapes decodes each supported shape.
func TestMaskShapes(t *testing.T) {
	spec, _, err := specfile.Parse([]byte(`
rule: pairwise_bernoulli
mask:
  circular:
    radius: 2.5
`))
	require.NoError(t, err)
	assert.Equal(t, mask.Circular{Radius: 2.5}, spec.Mask)

	spec, _, err = specfile.Parse([]byte(`
rule: pairwise_bernoulli
mask:
  doughnut:
    inner_radius: 1
    outer_radius: 3
`))
	require.NoError(t, err)
	assert.Equal(t, mask.Doughnut{Inner: 1, Outer: 3}, spec.Mask)
}

// TestKernelVariants decodes linear and exponential kernels.
func TestKernelVariants(t *testing.T) {
	spec, _, err := specfile.Parse([]byte(`
rule: pairwise_bernoulli
kernel:
  linear:
    a: -0.1
    c: 0.9
`))
	require.NoError(t, err)
	assert.Equal(t, kernel.Linear{A: -0.1, C: 0.9}, spec.Kernel)

	spec, _, err = specfile.Parse([]byte(`
rule: pairwise_bernoulli
kernel:
  exponential:
    a: 1
    tau: 2
`))
	require.NoError(t, err)
	assert.Equal(t, kernel.Exponential{A: 1, Tau: 2}, spec.Kernel)
}

// TestDistributions decodes each parameter distribution, with beta
// mapped to an exponential rate.
func TestDistributions(t *testing.T) {
	parse := func(t *testing.T, dist string) connect.Param {
		t.Helper()
		_, syn, err := specfile.Parse([]byte("rule: all_to_all\nsynapse:\n  weight:\n" + dist))
		require.NoError(t, err)
		require.NotNil(t, syn)
		return syn.Weight
	}

	n, err := randvar.NewNormal(1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, connect.Random(n), parse(t, "    normal: {mean: 1, std: 0.5}\n"))

	ln, err := randvar.NewLogNormal(0, 1)
	require.NoError(t, err)
	assert.Equal(t, connect.Random(ln), parse(t, "    lognormal: {mean: 0, std: 1}\n"))

	ex, err := randvar.NewExponential(0.5)
	require.NoError(t, err)
	assert.Equal(t, connect.Random(ex), parse(t, "    exponential: {beta: 2}\n"))
}

// TestDocumentErrors covers the rejection paths.
func TestDocumentErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		err  error
	}{
		{"unknown rule", "rule: one_to_one\n", specfile.ErrUnknownRule},
		{"not yaml", "rule: [unclosed\n", specfile.ErrBadDocument},
		{"p and kernel", "rule: pairwise_bernoulli\np: 0.5\nkernel:\n  constant:\n    p: 0.5\n", specfile.ErrBadDocument},
		{"unknown mask", "rule: pairwise_bernoulli\nmask:\n  ellipse:\n    radius: 1\n", specfile.ErrUnknownMask},
		{"unknown kernel", "rule: pairwise_bernoulli\nkernel:\n  cauchy:\n    p: 1\n", specfile.ErrUnknownKernel},
		{"unknown distribution", "rule: all_to_all\nsynapse:\n  weight:\n    poisson: {lambda: 1}\n", specfile.ErrUnknownDistribution},
		{"bad uniform bounds", "rule: all_to_all\nsynapse:\n  weight:\n    uniform: {min: 2, max: 1}\n", randvar.ErrBadBounds},
		{"bad delay bounds", "rule: all_to_all\nsynapse:\n  delay:\n    uniform: {min: 2, max: 1}\n", randvar.ErrBadBounds},
		{"bad beta", "rule: all_to_all\nsynapse:\n  weight:\n    exponential: {beta: 0}\n", randvar.ErrBadBounds},
		{"too many coordinates", "rule: pairwise_bernoulli\nmask:\n  rectangular:\n    lower_left: [0, 0, 0, 0]\n    upper_right: [1, 1, 1, 1]\n", specfile.ErrBadDocument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := specfile.Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
