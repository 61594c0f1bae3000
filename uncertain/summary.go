package uncertain

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryQuantiles are the probabilities reported by Summarize.
var SummaryQuantiles = []float64{0.025, 0.25, 0.5, 0.75, 0.975}

// densityPoints is the number of grid points at which Summarize evaluates
// the kernel density estimate.
const densityPoints = 21

// A Summary describes the distribution of a value.
type Summary struct {
	N         int // number of draws, 1 for a constant
	NaN       int // draws that were NaN and excluded from the statistics
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	Quantiles []Point // X is the probability, Y the quantile
	Density   []Point // X is the value, Y the estimated density; empty for constants
}

// A Point is a pair of coordinates in a summary.
type Point struct {
	X float64
	Y float64
}

// Summarize describes the distribution of v.
func (v Value) Summarize() Summary {
	if v.draws == nil {
		s := Summary{N: 1, Mean: v.c, Min: v.c, Max: v.c}
		if math.IsNaN(v.c) {
			s.NaN = 1
		}
		for _, p := range SummaryQuantiles {
			s.Quantiles = append(s.Quantiles, Point{X: p, Y: v.c})
		}
		return s
	}

	sorted := sortedDraws(v.draws)
	s := Summary{
		N:   len(v.draws),
		NaN: len(v.draws) - len(sorted),
	}
	if len(sorted) == 0 {
		s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	for _, p := range SummaryQuantiles {
		s.Quantiles = append(s.Quantiles, Point{X: p, Y: stat.Quantile(p, stat.Empirical, sorted, nil)})
	}

	if s.Max > s.Min && finite(s.Min) && finite(s.Max) {
		kde := &stats.KDE{Sample: stats.Sample{Xs: sorted, Sorted: true}}
		grid := make([]float64, densityPoints)
		floats.Span(grid, s.Min, s.Max)
		// Span can overshoot the end by an ulp.
		grid[0], grid[len(grid)-1] = s.Min, s.Max
		for _, x := range grid {
			s.Density = append(s.Density, Point{X: x, Y: kde.PDF(x)})
		}
	}
	return s
}

// sortedDraws returns the non-NaN draws of xs in increasing order.
func sortedDraws(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	sort.Float64s(out)
	return out
}
