// Package stats implements the small statistical toolkit shared by the
// FinSight analyzers: central moments, quartiles, and ordinary
// least-squares trend fitting over evenly spaced series.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values, or 0 when
// fewer than two values are present.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Percentile returns the p-th percentile (p in [0,1]) of values using
// linear interpolation between closest ranks. The input does not need to
// be sorted. Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Quartiles returns the first and third quartiles of values.
func Quartiles(values []float64) (q1, q3 float64) {
	return Percentile(values, 0.25), Percentile(values, 0.75)
}

// LinearFit is an ordinary least-squares line over an evenly spaced series.
type LinearFit struct {
	Slope     float64
	Intercept float64
}

// FitLine fits a least-squares line to ys against x = 0..len(ys)-1.
// A degenerate denominator (fewer than two points) yields a flat line at
// the series mean, never a division by zero.
func FitLine(ys []float64) LinearFit {
	n := len(ys)
	if n < 2 {
		return LinearFit{Slope: 0, Intercept: Mean(ys)}
	}

	xMean := float64(n-1) / 2
	yMean := Mean(ys)

	var num, den float64
	for i, y := range ys {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if den == 0 {
		return LinearFit{Slope: 0, Intercept: yMean}
	}

	slope := num / den
	return LinearFit{Slope: slope, Intercept: yMean - slope*xMean}
}

// At evaluates the fitted line at x.
func (f LinearFit) At(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// CoefficientOfVariation returns the population standard deviation
// relative to the absolute mean, or 0 when the mean is zero.
func CoefficientOfVariation(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 {
		return 0
	}
	return StdDev(values) / math.Abs(mean)
}
