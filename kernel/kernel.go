package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/velkyn/neuromesh/spatial"
)

// Sentinel errors for kernel configuration and evaluation.
var (
	// ErrProbabilityRange indicates a kernel evaluated outside [0,1].
	ErrProbabilityRange = errors.New("kernel: probability outside [0,1]")
	// ErrBadParameter indicates an invalid kernel parameter (negative
	// scale, zero width, constant outside [0,1]).
	ErrBadParameter = errors.New("kernel: invalid kernel parameter")
)

// Kernel is the closed set of probability kernels. Distance-dependent
// variants receive the wrap-adjusted Euclidean distance.
type Kernel interface {
	value(d float64) float64
	validate() error
}

// Constant always evaluates to P, independent of geometry.
type Constant struct {
	P float64
}

func (k Constant) value(float64) float64 { return k.P }

func (k Constant) validate() error {
	if k.P < 0 || k.P > 1 {
		return fmt.Errorf("kernel: constant p=%g: %w", k.P, ErrBadParameter)
	}
	return nil
}

// Linear evaluates C + A·d. The slope may be negative; the result must
// still land in [0,1] for every evaluated pair.
type Linear struct {
	A float64
	C float64
}

func (k Linear) value(d float64) float64 { return k.C + k.A*d }

func (k Linear) validate() error { return nil }

// Exponential evaluates C + A·exp(−d/Tau).
type Exponential struct {
	A   float64
	C   float64
	Tau float64
}

func (k Exponential) value(d float64) float64 { return k.C + k.A*math.Exp(-d/k.Tau) }

func (k Exponential) validate() error {
	if k.Tau <= 0 {
		return fmt.Errorf("kernel: exponential tau=%g: %w", k.Tau, ErrBadParameter)
	}
	return nil
}

// Gaussian evaluates C + P0·exp(−(d−Mean)²/(2·Sigma²)).
type Gaussian struct {
	P0    float64
	Mean  float64
	Sigma float64
	C     float64
}

func (k Gaussian) value(d float64) float64 {
	x := (d - k.Mean) / k.Sigma
	return k.C + k.P0*math.Exp(-x*x/2)
}

func (k Gaussian) validate() error {
	if k.Sigma <= 0 {
		return fmt.Errorf("kernel: gaussian sigma=%g: %w", k.Sigma, ErrBadParameter)
	}
	return nil
}

// Validate checks a kernel's own parameters before generation starts.
func Validate(k Kernel) error { return k.validate() }

// Probability evaluates k for the pair (ref, cand) under ext. The
// result must lie in [0,1]; anything else is ErrProbabilityRange.
func Probability(k Kernel, ref, cand spatial.Position, ext spatial.Extent) (float64, error) {
	p := k.value(spatial.Distance(ref, cand, ext))
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("kernel: value %g for pair at distance %g: %w",
			p, spatial.Distance(ref, cand, ext), ErrProbabilityRange)
	}
	return p, nil
}
