// Package scoring holds the weighted composite score. Both scoring
// passes go through it: the initial default-weight pass during analysis
// and every later re-weighting over the persisted standardized columns.
package scoring

import "github.com/optilens/optilens/internal/models"

// Composite computes the weighted composite score for one row from its
// standardized metric columns: the sum of weight times z over the given
// metrics. A metric without a usable z value contributes nothing, as
// does a metric the weight vector carries no entry for.
func Composite(row models.Row, metrics []models.MetricDef, weights models.WeightVector) float64 {
	score := 0.0
	for _, m := range metrics {
		z, ok := row[m.ZColumn].Numeric()
		if !ok {
			continue
		}
		score += weights[m.Key] * z
	}
	return score
}

// Apply recomputes the composite score for every row under the given
// weights, in row order.
func Apply(rows []models.Row, metrics []models.MetricDef, weights models.WeightVector) []float64 {
	scores := make([]float64, len(rows))
	for i, r := range rows {
		scores[i] = Composite(r, metrics, weights)
	}
	return scores
}
