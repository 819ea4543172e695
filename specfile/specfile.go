package specfile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/velkyn/neuromesh/connect"
	"github.com/velkyn/neuromesh/kernel"
	"github.com/velkyn/neuromesh/mask"
	"github.com/velkyn/neuromesh/randvar"
	"github.com/velkyn/neuromesh/spatial"
)

// Sentinel errors for spec documents.
var (
	// ErrBadDocument indicates YAML that does not decode, an ambiguous
	// variant mapping, or inconsistent fields (e.g. both p and kernel).
	ErrBadDocument = errors.New("specfile: malformed spec document")
	// ErrUnknownRule indicates an unrecognized rule name.
	ErrUnknownRule = errors.New("specfile: unknown rule")
	// ErrUnknownMask indicates a mask mapping without exactly one
	// recognized shape.
	ErrUnknownMask = errors.New("specfile: unknown mask shape")
	// ErrUnknownKernel indicates a kernel mapping without exactly one
	// recognized kernel.
	ErrUnknownKernel = errors.New("specfile: unknown kernel")
	// ErrUnknownDistribution indicates a parameter mapping without
	// exactly one recognized distribution.
	ErrUnknownDistribution = errors.New("specfile: unknown distribution")
)

type document struct {
	Rule           string      `yaml:"rule"`
	InDegree       int         `yaml:"indegree"`
	OutDegree      int         `yaml:"outdegree"`
	P              *float64    `yaml:"p"`
	Kernel         *kernelDoc  `yaml:"kernel"`
	Mask           *maskDoc    `yaml:"mask"`
	AllowAutapses  *bool       `yaml:"allow_autapses"`
	AllowMultapses *bool       `yaml:"allow_multapses"`
	AllowOversized bool        `yaml:"allow_oversized_mask"`
	UseOnSource    bool        `yaml:"use_on_source"`
	Synapse        *synapseDoc `yaml:"synapse"`
}

type maskDoc struct {
	Rectangular *struct {
		LowerLeft  []float64 `yaml:"lower_left"`
		UpperRight []float64 `yaml:"upper_right"`
	} `yaml:"rectangular"`
	Circular *struct {
		Radius float64 `yaml:"radius"`
	} `yaml:"circular"`
	Doughnut *struct {
		Inner float64 `yaml:"inner_radius"`
		Outer float64 `yaml:"outer_radius"`
	} `yaml:"doughnut"`
}

type kernelDoc struct {
	Constant *struct {
		P float64 `yaml:"p"`
	} `yaml:"constant"`
	Linear *struct {
		A float64 `yaml:"a"`
		C float64 `yaml:"c"`
	} `yaml:"linear"`
	Exponential *struct {
		A   float64 `yaml:"a"`
		C   float64 `yaml:"c"`
		Tau float64 `yaml:"tau"`
	} `yaml:"exponential"`
	Gaussian *struct {
		P0    float64 `yaml:"p_center"`
		Mean  float64 `yaml:"mean"`
		Sigma float64 `yaml:"sigma"`
		C     float64 `yaml:"c"`
	} `yaml:"gaussian"`
}

type synapseDoc struct {
	Model  string    `yaml:"model"`
	Weight *paramDoc `yaml:"weight"`
	Delay  *paramDoc `yaml:"delay"`
}

// paramDoc is either a scalar literal or a one-key distribution map.
// UnmarshalYAML only captures the raw shape; validation runs later from
// Parse, outside the yaml decoder, so sentinel errors survive intact
// (yaml.v3 aggregates decode-time errors and severs their chains).
type paramDoc struct {
	literal *float64
	dist    *distDoc
}

type distDoc struct {
	Uniform *struct {
		Min float64  `yaml:"min"`
		Max *float64 `yaml:"max"`
	} `yaml:"uniform"`
	Normal *struct {
		Mean float64 `yaml:"mean"`
		Std  float64 `yaml:"std"`
	} `yaml:"normal"`
	Lognormal *struct {
		Mean float64 `yaml:"mean"`
		Std  float64 `yaml:"std"`
	} `yaml:"lognormal"`
	Exponential *struct {
		Beta float64 `yaml:"beta"`
	} `yaml:"exponential"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *paramDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("specfile: parameter literal: %w", ErrBadDocument)
		}
		p.literal = &v
		return nil
	}
	var d distDoc
	if err := node.Decode(&d); err != nil {
		return fmt.Errorf("specfile: parameter distribution: %w", ErrBadDocument)
	}
	p.dist = &d
	return nil
}

// toParam resolves the captured shape into a connect.Param.
func (p *paramDoc) toParam() (connect.Param, error) {
	if p.dist != nil {
		v, err := p.dist.toVar()
		if err != nil {
			return connect.Param{}, err
		}
		return connect.Random(v), nil
	}
	if p.literal != nil {
		return connect.Literal(*p.literal), nil
	}
	return connect.Param{}, fmt.Errorf("specfile: empty parameter: %w", ErrBadDocument)
}

func (d distDoc) toVar() (randvar.Var, error) {
	switch {
	case d.Uniform != nil:
		max := 1.0
		if d.Uniform.Max != nil {
			max = *d.Uniform.Max
		}
		return randvar.NewUniform(d.Uniform.Min, max)
	case d.Normal != nil:
		return randvar.NewNormal(d.Normal.Mean, d.Normal.Std)
	case d.Lognormal != nil:
		return randvar.NewLogNormal(d.Lognormal.Mean, d.Lognormal.Std)
	case d.Exponential != nil:
		if d.Exponential.Beta <= 0 {
			return nil, fmt.Errorf("specfile: exponential beta=%g: %w",
				d.Exponential.Beta, randvar.ErrBadBounds)
		}
		return randvar.NewExponential(1 / d.Exponential.Beta)
	default:
		return nil, ErrUnknownDistribution
	}
}

// Parse decodes one YAML spec document. The returned SynapseSpec is nil
// when the document declares no synapse block.
func Parse(data []byte) (connect.Spec, *connect.SynapseSpec, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return connect.Spec{}, nil, fmt.Errorf("specfile: %v: %w", err, ErrBadDocument)
	}

	rule, err := parseRule(doc.Rule)
	if err != nil {
		return connect.Spec{}, nil, err
	}
	spec := connect.DefaultSpec(rule)
	spec.UseOnSource = doc.UseOnSource
	spec.AllowOversizedMask = doc.AllowOversized
	if doc.AllowAutapses != nil {
		spec.AllowAutapses = *doc.AllowAutapses
	}
	if doc.AllowMultapses != nil {
		spec.AllowMultapses = *doc.AllowMultapses
	}
	switch rule {
	case connect.FixedInDegree:
		spec.Degree = doc.InDegree
	case connect.FixedOutDegree:
		spec.Degree = doc.OutDegree
	}

	if doc.Mask != nil {
		m, err := doc.Mask.toMask()
		if err != nil {
			return connect.Spec{}, nil, err
		}
		spec.Mask = m
	}
	if doc.P != nil && doc.Kernel != nil {
		return connect.Spec{}, nil, fmt.Errorf("specfile: both p and kernel declared: %w", ErrBadDocument)
	}
	if doc.P != nil {
		spec.Kernel = kernel.Constant{P: *doc.P}
	}
	if doc.Kernel != nil {
		k, err := doc.Kernel.toKernel()
		if err != nil {
			return connect.Spec{}, nil, err
		}
		spec.Kernel = k
	}

	var syn *connect.SynapseSpec
	if doc.Synapse != nil {
		s := connect.DefaultSynapse()
		if doc.Synapse.Model != "" {
			s.Model = doc.Synapse.Model
		}
		if doc.Synapse.Weight != nil {
			w, err := doc.Synapse.Weight.toParam()
			if err != nil {
				return connect.Spec{}, nil, err
			}
			s.Weight = w
		}
		if doc.Synapse.Delay != nil {
			d, err := doc.Synapse.Delay.toParam()
			if err != nil {
				return connect.Spec{}, nil, err
			}
			s.Delay = d
		}
		syn = &s
	}
	return spec, syn, nil
}

// Load reads one YAML spec document from r.
func Load(r io.Reader) (connect.Spec, *connect.SynapseSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return connect.Spec{}, nil, fmt.Errorf("specfile: %v: %w", err, ErrBadDocument)
	}
	return Parse(data)
}

func parseRule(name string) (connect.Rule, error) {
	switch name {
	case "all_to_all":
		return connect.AllToAll, nil
	case "fixed_indegree":
		return connect.FixedInDegree, nil
	case "fixed_outdegree":
		return connect.FixedOutDegree, nil
	case "pairwise_bernoulli":
		return connect.PairwiseBernoulli, nil
	default:
		return 0, fmt.Errorf("specfile: rule %q: %w", name, ErrUnknownRule)
	}
}

func (d maskDoc) toMask() (mask.Mask, error) {
	switch {
	case d.Rectangular != nil:
		lo, err := toPosition(d.Rectangular.LowerLeft)
		if err != nil {
			return nil, err
		}
		hi, err := toPosition(d.Rectangular.UpperRight)
		if err != nil {
			return nil, err
		}
		return mask.Rectangular{LowerLeft: lo, UpperRight: hi}, nil
	case d.Circular != nil:
		return mask.Circular{Radius: d.Circular.Radius}, nil
	case d.Doughnut != nil:
		return mask.Doughnut{Inner: d.Doughnut.Inner, Outer: d.Doughnut.Outer}, nil
	default:
		return nil, ErrUnknownMask
	}
}

func (d kernelDoc) toKernel() (kernel.Kernel, error) {
	switch {
	case d.Constant != nil:
		return kernel.Constant{P: d.Constant.P}, nil
	case d.Linear != nil:
		return kernel.Linear{A: d.Linear.A, C: d.Linear.C}, nil
	case d.Exponential != nil:
		return kernel.Exponential{A: d.Exponential.A, C: d.Exponential.C, Tau: d.Exponential.Tau}, nil
	case d.Gaussian != nil:
		return kernel.Gaussian{P0: d.Gaussian.P0, Mean: d.Gaussian.Mean,
			Sigma: d.Gaussian.Sigma, C: d.Gaussian.C}, nil
	default:
		return nil, ErrUnknownKernel
	}
}

func toPosition(coords []float64) (spatial.Position, error) {
	if len(coords) < 1 || len(coords) > spatial.MaxDim {
		return spatial.Position{}, fmt.Errorf("specfile: %d coordinates: %w",
			len(coords), ErrBadDocument)
	}
	var p spatial.Position
	copy(p[:], coords)
	return p, nil
}
