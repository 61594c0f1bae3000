// Package uncertain represents scalars carrying statistical uncertainty and
// propagates that uncertainty through arithmetic.
//
// A Value is backed by a fixed number of Monte Carlo draws. Arithmetic is
// applied draw by draw, so draw i of every value created by the same Sampler
// belongs to one joint realisation of all the inputs. Reusing a value in
// several places of a formula therefore keeps the correlation that reuse
// implies, while values drawn separately are independent.
//
// Values are immutable. Every operation returns a new Value and never
// modifies its operands.
package uncertain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/exp/rand"
)

// A Value is an uncertain scalar. The zero Value is the exact constant 0.
type Value struct {
	draws []float64 // nil for an exact constant
	c     float64   // the constant when draws is nil
}

// Constant returns an exact value with no uncertainty.
func Constant(x float64) Value {
	return Value{c: x}
}

// Gaussian returns a value distributed as Normal(mean, stddev). A zero
// stddev yields an exact constant.
func (s *Sampler) Gaussian(mean, stddev float64) (Value, error) {
	if !finite(mean) {
		return Value{}, &InvalidParameterError{Op: "gaussian", Reason: fmt.Sprintf("mean %v is not finite", mean)}
	}
	if !finite(stddev) || stddev < 0 {
		return Value{}, &InvalidParameterError{Op: "gaussian", Reason: fmt.Sprintf("standard deviation %v must be a finite non-negative number", stddev)}
	}
	if stddev == 0 {
		return Constant(mean), nil
	}

	draws := s.generate(func(src rand.Source, _ int, dst []float64) {
		d := distuv.Normal{Mu: mean, Sigma: stddev, Src: src}
		for i := range dst {
			dst[i] = d.Rand()
		}
	})
	return Value{draws: draws}, nil
}

// FromSamples returns a value whose distribution is a Gaussian kernel
// density estimate of xs. Draw i resamples xs[i mod len(xs)] and perturbs
// it by kernel noise using Silverman's bandwidth. The draws are then
// shifted so their mean equals the mean of xs. A sample without spread
// yields an exact constant.
func (s *Sampler) FromSamples(xs []float64) (Value, error) {
	if len(xs) == 0 {
		return Value{}, &InvalidParameterError{Op: "samples", Reason: "sample set is empty"}
	}
	for i, x := range xs {
		if !finite(x) {
			return Value{}, &InvalidParameterError{Op: "samples", Reason: fmt.Sprintf("sample %d is not finite: %v", i, x)}
		}
	}

	sample := stats.Sample{Xs: append([]float64(nil), xs...)}
	mean := sample.Mean()
	if len(xs) == 1 || floats.Min(sample.Xs) == floats.Max(sample.Xs) {
		return Constant(mean), nil
	}

	bw := stats.BandwidthSilverman(&sample)
	draws := s.generate(func(src rand.Source, offset int, dst []float64) {
		kernel := distuv.Normal{Mu: 0, Sigma: bw, Src: src}
		for i := range dst {
			dst[i] = sample.Xs[(offset+i)%len(sample.Xs)] + kernel.Rand()
		}
	})
	floats.AddConst(mean-stat.Mean(draws, nil), draws)
	return Value{draws: draws}, nil
}

// IsConstant reports whether v is an exact value without uncertainty.
func (v Value) IsConstant() bool { return v.draws == nil }

// Len reports the number of draws backing v, or zero for a constant.
func (v Value) Len() int { return len(v.draws) }

// Mean returns the expected value of v.
func (v Value) Mean() float64 {
	if v.draws == nil {
		return v.c
	}
	return stat.Mean(v.draws, nil)
}

// StdDev returns the sample standard deviation of v, zero for a constant.
func (v Value) StdDev() float64 {
	if v.draws == nil {
		return 0
	}
	return stat.StdDev(v.draws, nil)
}

// Draws returns a copy of the draws backing v. A constant has a single draw.
func (v Value) Draws() []float64 {
	if v.draws == nil {
		return []float64{v.c}
	}
	return append([]float64(nil), v.draws...)
}

// Quantile returns the empirical p-quantile of v, ignoring NaN draws. It
// returns NaN when every draw is NaN or p is outside [0, 1].
func (v Value) Quantile(p float64) float64 {
	if !(p >= 0 && p <= 1) {
		return math.NaN()
	}
	if v.draws == nil {
		return v.c
	}
	sorted := sortedDraws(v.draws)
	if len(sorted) == 0 {
		return math.NaN()
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func (v Value) String() string {
	if v.draws == nil {
		return fmt.Sprintf("%g", v.c)
	}
	return fmt.Sprintf("%g±%g", v.Mean(), v.StdDev())
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
