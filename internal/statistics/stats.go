// Package statistics provides the NaN-aware column statistics behind
// metric standardization. NaN marks a missing observation; every
// function skips missing entries rather than propagating them.
package statistics

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean, skipping NaN entries.
// Returns NaN when no observations are present.
func Mean(values []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// StdDev computes the sample standard deviation (Bessel's correction),
// skipping NaN entries. Returns NaN with fewer than two observations.
func StdDev(values []float64) float64 {
	m := Mean(values)
	if math.IsNaN(m) {
		return math.NaN()
	}
	sumSq := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		d := v - m
		sumSq += d * d
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// ZScores standardizes a column to zero mean and unit sample deviation.
// NaN entries stay NaN. When the deviation is zero or undefined the
// whole column collapses to zeros, NaN entries included, so constant
// metrics contribute nothing to any composite score.
func ZScores(values []float64) []float64 {
	out := make([]float64, len(values))
	std := StdDev(values)
	if std == 0 || math.IsNaN(std) {
		return out
	}
	m := Mean(values)
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - m) / std
	}
	return out
}

// Percentile returns the q-quantile (0 <= q <= 1) using linear
// interpolation between closest ranks. Returns NaN for empty input.
func Percentile(values []float64, q float64) float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	sort.Float64s(finite)

	pos := q * float64(len(finite)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return finite[lo]
	}
	frac := pos - float64(lo)
	return finite[lo] + frac*(finite[hi]-finite[lo])
}
