package uncertain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ZeroMassThreshold is the largest fraction of a denominator's draws that
// may lie at or across zero before Div reports a DivisionByZeroRisk.
const ZeroMassThreshold = 1e-3

func unary(a Value, f func(float64) float64) Value {
	if a.draws == nil {
		return Constant(f(a.c))
	}
	out := make([]float64, len(a.draws))
	for i, x := range a.draws {
		out[i] = f(x)
	}
	return Value{draws: out}
}

// binary applies f draw by draw, broadcasting constants. When both operands
// have draws and vec is non-nil, vec computes the result in one pass.
func binary(a, b Value, f func(x, y float64) float64, vec func(dst, s, t []float64) []float64) Value {
	switch {
	case a.draws == nil && b.draws == nil:
		return Constant(f(a.c, b.c))
	case a.draws == nil:
		return unary(b, func(y float64) float64 { return f(a.c, y) })
	case b.draws == nil:
		return unary(a, func(x float64) float64 { return f(x, b.c) })
	}

	if len(a.draws) != len(b.draws) {
		panic(fmt.Sprintf("uncertain: combining values with %d and %d draws", len(a.draws), len(b.draws)))
	}
	out := make([]float64, len(a.draws))
	if vec != nil {
		return Value{draws: vec(out, a.draws, b.draws)}
	}
	for i := range out {
		out[i] = f(a.draws[i], b.draws[i])
	}
	return Value{draws: out}
}

// Add returns a+b.
func Add(a, b Value) Value {
	return binary(a, b, func(x, y float64) float64 { return x + y }, floats.AddTo)
}

// Sub returns a-b.
func Sub(a, b Value) Value {
	return binary(a, b, func(x, y float64) float64 { return x - y }, floats.SubTo)
}

// Mul returns a*b.
func Mul(a, b Value) Value {
	return binary(a, b, func(x, y float64) float64 { return x * y }, floats.MulTo)
}

// Div returns a/b. When b has non-negligible mass at or across zero the
// quotient is returned together with a *DivisionByZeroRisk.
func Div(a, b Value) (Value, error) {
	q := binary(a, b, func(x, y float64) float64 { return x / y }, floats.DivTo)
	if f := zeroMass(b); f > ZeroMassThreshold {
		return q, &DivisionByZeroRisk{Fraction: f}
	}
	return q, nil
}

// Pow returns a raised to the power b.
func Pow(a, b Value) Value {
	return binary(a, b, math.Pow, nil)
}

// Sqrt returns the square root of a. Negative draws become NaN.
func Sqrt(a Value) Value {
	return unary(a, math.Sqrt)
}

// AddScalar returns a+x.
func AddScalar(a Value, x float64) Value { return Add(a, Constant(x)) }

// SubScalar returns a-x.
func SubScalar(a Value, x float64) Value { return Sub(a, Constant(x)) }

// ScalarSub returns x-a.
func ScalarSub(x float64, a Value) Value { return Sub(Constant(x), a) }

// MulScalar returns a*x.
func MulScalar(a Value, x float64) Value { return Mul(a, Constant(x)) }

// DivScalar returns a/x.
func DivScalar(a Value, x float64) (Value, error) { return Div(a, Constant(x)) }

// ScalarDiv returns x/a.
func ScalarDiv(x float64, a Value) (Value, error) { return Div(Constant(x), a) }

// PowScalar returns a raised to the exact power p.
func PowScalar(a Value, p float64) Value { return Pow(a, Constant(p)) }

// zeroMass returns the fraction of draws that are zero or whose sign
// differs from the sign of the mean.
func zeroMass(v Value) float64 {
	if v.draws == nil {
		if v.c == 0 {
			return 1
		}
		return 0
	}

	mean := v.Mean()
	var n int
	for _, x := range v.draws {
		if x == 0 || math.Signbit(x) != math.Signbit(mean) {
			n++
		}
	}
	return float64(n) / float64(len(v.draws))
}
