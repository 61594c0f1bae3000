// Package model evaluates the basic reproduction number of an SEIR model
// coupled with an environmental pathogen reservoir, where every
// epidemiological rate carries statistical uncertainty.
//
// The model follows Mwalili et al., "SEIR model for COVID-19 dynamics
// incorporating the environment and social distancing" (BMC Research Notes,
// 2020, https://www.ncbi.nlm.nih.gov/pmc/articles/PMC7376536/). Rates are per day.
package model

import (
	"fmt"

	"github.com/iand/r0unc/uncertain"
)

// DaysPerYear converts life expectancies given in years to days.
const DaysPerYear = 365

// A Dist describes the distribution of one parameter.
type Dist struct {
	Mean      float64 `json:"mean" yaml:"mean"`
	Deviation float64 `json:"deviation" yaml:"deviation"`
}

// Distributions holds the distribution of every model input. Ga, Hs and Ha
// are fixed rates: only their means are used.
type Distributions struct {
	B              Dist // birth rate of the human population
	Mp             Dist // natural death rate of pathogens in the environment
	B1             Dist // S to E transmission through contact with the environment
	B2             Dist // S to E transmission through contact with infectious people
	Delta          Dist // proportion of infectious people who are symptomatic
	Psi            Dist // progression from E back to S due to a robust immune system
	Omega          Dist // progression from E to Is or Ia
	Sigma          Dist // death rate due to the disease
	Gs             Dist // recovery rate of symptomatic people
	Ga             Dist // recovery rate of asymptomatic people
	Hs             Dist // shedding into the environment by symptomatic people
	Ha             Dist // shedding into the environment by asymptomatic people
	LifeExpectancy Dist // human life expectancy in days, used when no life table is supplied
}

// Defaults returns the published parameter means with the deviations used
// by the reference analysis.
func Defaults() Distributions {
	return Distributions{
		B:              Dist{Mean: 0.00018, Deviation: 0.000001},
		Mp:             Dist{Mean: 0.1724, Deviation: 0.001},
		B1:             Dist{Mean: 0.00414, Deviation: 0.00001},
		B2:             Dist{Mean: 0.0115, Deviation: 0.0001},
		Delta:          Dist{Mean: 0.7, Deviation: 0.001},
		Psi:            Dist{Mean: 0.0051, Deviation: 0.001},
		Omega:          Dist{Mean: 0.09, Deviation: 0.001},
		Sigma:          Dist{Mean: 0.0018, Deviation: 0.0001},
		Gs:             Dist{Mean: 0.06, Deviation: 0.001},
		Ga:             Dist{Mean: 0.0714},
		Hs:             Dist{Mean: 0.1},
		Ha:             Dist{Mean: 0.05},
		LifeExpectancy: Dist{Mean: 65 * DaysPerYear, Deviation: 40},
	}
}

// A Field names one entry of Distributions.
type Field struct {
	Name  string
	Usage string
	Fixed bool // the rate is a deterministic constant
	get   func(*Distributions) *Dist
}

// Fields lists the entries of Distributions in construction order.
var Fields = []Field{
	{Name: "lifeExpectancy", Usage: "human life expectancy (days)", get: func(d *Distributions) *Dist { return &d.LifeExpectancy }},
	{Name: "b", Usage: "human birth rate", get: func(d *Distributions) *Dist { return &d.B }},
	{Name: "mp", Usage: "natural death rate of pathogens", get: func(d *Distributions) *Dist { return &d.Mp }},
	{Name: "b1", Usage: "transmission from the environment", get: func(d *Distributions) *Dist { return &d.B1 }},
	{Name: "b2", Usage: "transmission from infectious people", get: func(d *Distributions) *Dist { return &d.B2 }},
	{Name: "delta", Usage: "proportion symptomatic", get: func(d *Distributions) *Dist { return &d.Delta }},
	{Name: "psi", Usage: "progression from exposed back to susceptible", get: func(d *Distributions) *Dist { return &d.Psi }},
	{Name: "omega", Usage: "progression from exposed to infectious", get: func(d *Distributions) *Dist { return &d.Omega }},
	{Name: "sigma", Usage: "disease death rate", get: func(d *Distributions) *Dist { return &d.Sigma }},
	{Name: "gs", Usage: "symptomatic recovery rate", get: func(d *Distributions) *Dist { return &d.Gs }},
	{Name: "ga", Usage: "asymptomatic recovery rate", Fixed: true, get: func(d *Distributions) *Dist { return &d.Ga }},
	{Name: "hs", Usage: "symptomatic shedding rate", Fixed: true, get: func(d *Distributions) *Dist { return &d.Hs }},
	{Name: "ha", Usage: "asymptomatic shedding rate", Fixed: true, get: func(d *Distributions) *Dist { return &d.Ha }},
}

// Get returns the distribution of the named field.
func (d *Distributions) Get(name string) (Dist, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return *f.get(d), true
		}
	}
	return Dist{}, false
}

// Validate checks that every deviation is usable and that fixed rates carry
// no deviation.
func (d *Distributions) Validate() error {
	for _, f := range Fields {
		dist := f.get(d)
		if f.Fixed && dist.Deviation != 0 {
			return &uncertain.InvalidParameterError{Op: f.Name, Reason: "fixed rate cannot have a deviation"}
		}
		if dist.Deviation < 0 {
			return &uncertain.InvalidParameterError{Op: f.Name, Reason: fmt.Sprintf("negative deviation %g", dist.Deviation)}
		}
	}
	return nil
}

// Parameters holds the uncertain inputs of the R0 formula.
type Parameters struct {
	LifeExpectancy uncertain.Value
	B              uncertain.Value
	Mu             uncertain.Value // natural human death rate, 1/LifeExpectancy
	Mp             uncertain.Value
	B1             uncertain.Value
	B2             uncertain.Value
	Delta          uncertain.Value
	Psi            uncertain.Value
	Omega          uncertain.Value
	Sigma          uncertain.Value
	Gs             uncertain.Value
	Ga             uncertain.Value
	Hs             uncertain.Value
	Ha             uncertain.Value
}

// LifeExpectancy returns the life expectancy distribution in days. When days
// is non-nil the distribution is estimated from those observations,
// otherwise it is Gaussian as described by fallback.
func LifeExpectancy(s *uncertain.Sampler, fallback Dist, days []float64) (uncertain.Value, error) {
	if days != nil {
		v, err := s.FromSamples(days)
		if err != nil {
			return uncertain.Value{}, fmt.Errorf("life expectancy: %w", err)
		}
		return v, nil
	}
	v, err := s.Gaussian(fallback.Mean, fallback.Deviation)
	if err != nil {
		return uncertain.Value{}, fmt.Errorf("life expectancy: %w", err)
	}
	return v, nil
}

// NewParameters draws the model parameters from s. The life expectancy must
// already have been drawn from s; the remaining parameters are drawn in the
// order b, mp, b1, b2, delta, psi, omega, sigma, gs, after which the fixed
// rates ga, hs and ha are set and mu is derived from life.
//
// A non-nil error wrapping *uncertain.DivisionByZeroRisk is advisory: the
// returned parameters are complete.
func NewParameters(s *uncertain.Sampler, d Distributions, life uncertain.Value) (*Parameters, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := &Parameters{LifeExpectancy: life}
	for _, f := range Fields {
		dist := f.get(&d)
		var v uncertain.Value
		switch {
		case f.Name == "lifeExpectancy":
			continue
		case f.Fixed:
			v = uncertain.Constant(dist.Mean)
		default:
			var err error
			v, err = s.Gaussian(dist.Mean, dist.Deviation)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name, err)
			}
		}
		*p.field(f.Name) = v
	}

	mu, err := uncertain.ScalarDiv(1, life)
	p.Mu = mu
	if err != nil {
		return p, fmt.Errorf("mu: %w", err)
	}
	return p, nil
}

func (p *Parameters) field(name string) *uncertain.Value {
	switch name {
	case "lifeExpectancy":
		return &p.LifeExpectancy
	case "b":
		return &p.B
	case "mp":
		return &p.Mp
	case "b1":
		return &p.B1
	case "b2":
		return &p.B2
	case "delta":
		return &p.Delta
	case "psi":
		return &p.Psi
	case "omega":
		return &p.Omega
	case "sigma":
		return &p.Sigma
	case "gs":
		return &p.Gs
	case "ga":
		return &p.Ga
	case "hs":
		return &p.Hs
	case "ha":
		return &p.Ha
	}
	panic("model: unknown parameter " + name)
}

// Value returns the named parameter, including the derived "mu".
func (p *Parameters) Value(name string) (uncertain.Value, bool) {
	if name == "mu" {
		return p.Mu, true
	}
	for _, f := range Fields {
		if f.Name == name {
			return *p.field(name), true
		}
	}
	return uncertain.Value{}, false
}
