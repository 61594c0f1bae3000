package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/iand/r0unc/uncertain"
)

// Components holds the intermediate terms of the R0 formula.
type Components struct {
	C1 uncertain.Value // psi + mu + omega
	C2 uncertain.Value // mu + sigma + gs
	C3 uncertain.Value // mu + sigma + ga
	RH uncertain.Value // reproduction through human to human contact
	RP uncertain.Value // reproduction through the environment
	R0 uncertain.Value
}

// Evaluate computes R0 and its intermediate terms from p:
//
//	c1 = psi + mu + omega
//	c2 = mu + sigma + gs
//	c3 = mu + sigma + ga
//	rh = (b2*b / (mu*c1)) * (delta*omega/c2 + (1-delta)*omega/c3)
//	rp = (b1*b / (mu*mp*c1)) * (hs*delta*omega/c2 + ha*(1-delta)*omega/c3)
//	r0 = (rh + sqrt(rh^2 + 4*rp)) / 2
//
// Every term is propagated as an uncertain value. A non-nil error joins
// the *uncertain.DivisionByZeroRisk advisories raised by the divisions;
// the components are complete regardless.
func Evaluate(p *Parameters) (Components, error) {
	var risks []error
	div := func(term string, a, b uncertain.Value) uncertain.Value {
		q, err := uncertain.Div(a, b)
		if err != nil {
			risks = append(risks, fmt.Errorf("%s: %w", term, err))
		}
		return q
	}
	add, mul := uncertain.Add, uncertain.Mul

	var c Components
	c.C1 = add(add(p.Psi, p.Mu), p.Omega)
	c.C2 = add(add(p.Mu, p.Sigma), p.Gs)
	c.C3 = add(add(p.Mu, p.Sigma), p.Ga)

	notDelta := uncertain.ScalarSub(1, p.Delta)

	c.RH = mul(
		div("b2*b/(mu*c1)", mul(p.B2, p.B), mul(p.Mu, c.C1)),
		add(
			div("delta*omega/c2", mul(p.Delta, p.Omega), c.C2),
			div("(1-delta)*omega/c3", mul(notDelta, p.Omega), c.C3),
		),
	)
	c.RP = mul(
		div("b1*b/(mu*mp*c1)", mul(p.B1, p.B), mul(mul(p.Mu, p.Mp), c.C1)),
		add(
			div("hs*delta*omega/c2", mul(mul(p.Hs, p.Delta), p.Omega), c.C2),
			div("ha*(1-delta)*omega/c3", mul(mul(p.Ha, notDelta), p.Omega), c.C3),
		),
	)

	disc := add(uncertain.PowScalar(c.RH, 2), uncertain.MulScalar(c.RP, 4))
	c.R0 = div("r0", add(c.RH, uncertain.Sqrt(disc)), uncertain.Constant(2))

	return c, errors.Join(risks...)
}

// R0 computes the basic reproduction number from p. See Evaluate.
func R0(p *Parameters) (uncertain.Value, error) {
	c, err := Evaluate(p)
	return c.R0, err
}

// PointR0 evaluates the R0 formula on the means of d, ignoring every
// deviation. The natural death rate is the reciprocal of the mean life
// expectancy.
func PointR0(d Distributions) float64 {
	mu := 1 / d.LifeExpectancy.Mean
	b, mp := d.B.Mean, d.Mp.Mean
	b1, b2 := d.B1.Mean, d.B2.Mean
	delta, psi, omega, sigma := d.Delta.Mean, d.Psi.Mean, d.Omega.Mean, d.Sigma.Mean
	gs, ga, hs, ha := d.Gs.Mean, d.Ga.Mean, d.Hs.Mean, d.Ha.Mean

	c1 := psi + mu + omega
	c2 := mu + sigma + gs
	c3 := mu + sigma + ga

	rh := (b2 * b / (mu * c1)) * (delta*omega/c2 + (1-delta)*omega/c3)
	rp := (b1 * b / (mu * mp * c1)) * (hs*delta*omega/c2 + ha*(1-delta)*omega/c3)

	return (rh + math.Sqrt(math.Pow(rh, 2)+4*rp)) / 2
}
