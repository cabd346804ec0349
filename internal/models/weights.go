package models

import (
	"fmt"
	"math"
	"sort"
)

// WeightVector maps metric keys to signed scoring weights. Weights do
// not have to sum to 1, and a negative weight turns a metric into a
// penalty (drawdown carries one by default).
type WeightVector map[string]float64

// DefaultWeights returns the built-in scoring weights.
func DefaultWeights() WeightVector {
	return WeightVector{
		MetricProfit:         0.30,
		MetricDrawdown:       -0.25,
		MetricSharpeRatio:    0.20,
		MetricProfitFactor:   0.10,
		MetricRecoveryFactor: 0.10,
		MetricExpectedPayoff: 0.05,
	}
}

// Clone returns an independent copy of the vector.
func (w WeightVector) Clone() WeightVector {
	c := make(WeightVector, len(w))
	for k, v := range w {
		c[k] = v
	}
	return c
}

// Validate rejects weights for metrics the engine does not know about
// and non-finite weight values.
func (w WeightVector) Validate() error {
	known := make(map[string]bool, len(MetricCatalog))
	for _, m := range MetricCatalog {
		known[m.Key] = true
	}

	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !known[k] {
			return fmt.Errorf("unknown metric %q in weights", k)
		}
		if v := w[k]; math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight for %q must be a finite number", k)
		}
	}
	return nil
}
