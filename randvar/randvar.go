package randvar

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrBadBounds indicates an inverted range or a non-positive scale
// parameter in a distribution descriptor.
var ErrBadBounds = errors.New("randvar: invalid distribution bounds")

// Var is the closed set of parameter distributions. Sample draws one
// independent value from src.
type Var interface {
	Sample(src rand.Source) float64
	sealed()
}

// Uniform draws from the half-open interval [Min, Max).
type Uniform struct {
	Min float64
	Max float64
}

// NewUniform builds a uniform distribution over [min, max).
func NewUniform(min, max float64) (Uniform, error) {
	if min >= max {
		return Uniform{}, fmt.Errorf("randvar: uniform min=%g max=%g: %w", min, max, ErrBadBounds)
	}
	return Uniform{Min: min, Max: max}, nil
}

// NewUniformMin builds a uniform distribution over [min, 1), the
// conventional default upper bound for synapse parameters.
func NewUniformMin(min float64) (Uniform, error) { return NewUniform(min, 1.0) }

// Sample implements Var.
func (u Uniform) Sample(src rand.Source) float64 {
	return distuv.Uniform{Min: u.Min, Max: u.Max, Src: src}.Rand()
}

func (Uniform) sealed() {}

// Normal draws from a Gaussian with mean Mu and stddev Sigma.
type Normal struct {
	Mu    float64
	Sigma float64
}

// NewNormal builds a normal distribution; sigma must be positive.
func NewNormal(mu, sigma float64) (Normal, error) {
	if sigma <= 0 {
		return Normal{}, fmt.Errorf("randvar: normal sigma=%g: %w", sigma, ErrBadBounds)
	}
	return Normal{Mu: mu, Sigma: sigma}, nil
}

// Sample implements Var.
func (n Normal) Sample(src rand.Source) float64 {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma, Src: src}.Rand()
}

func (Normal) sealed() {}

// LogNormal draws values whose logarithm is Normal(Mu, Sigma).
type LogNormal struct {
	Mu    float64
	Sigma float64
}

// NewLogNormal builds a lognormal distribution; sigma must be positive.
func NewLogNormal(mu, sigma float64) (LogNormal, error) {
	if sigma <= 0 {
		return LogNormal{}, fmt.Errorf("randvar: lognormal sigma=%g: %w", sigma, ErrBadBounds)
	}
	return LogNormal{Mu: mu, Sigma: sigma}, nil
}

// Sample implements Var.
func (l LogNormal) Sample(src rand.Source) float64 {
	return distuv.LogNormal{Mu: l.Mu, Sigma: l.Sigma, Src: src}.Rand()
}

func (LogNormal) sealed() {}

// Exponential draws from an exponential distribution with the given
// rate (1/mean).
type Exponential struct {
	Rate float64
}

// NewExponential builds an exponential distribution; rate must be
// positive.
func NewExponential(rate float64) (Exponential, error) {
	if rate <= 0 {
		return Exponential{}, fmt.Errorf("randvar: exponential rate=%g: %w", rate, ErrBadBounds)
	}
	return Exponential{Rate: rate}, nil
}

// Sample implements Var.
func (e Exponential) Sample(src rand.Source) float64 {
	return distuv.Exponential{Rate: e.Rate, Src: src}.Rand()
}

func (Exponential) sealed() {}
