// Package params summarizes what values each optimizer input swept:
// minimum, maximum, and the grid step between the smallest values.
package params

import (
	"math"
	"sort"

	"github.com/optilens/optilens/internal/models"
	"github.com/shopspring/decimal"
)

// stepTolerance is how far a rounded step may sit from the raw
// difference and still count as the intended grid step.
const stepTolerance = 1e-10

// Ranges builds one summary per parameter column over the filtered
// table. Min and Max come from the sorted distinct numeric values; the
// step is the gap between the two smallest, snapped to cancel float
// noise. Fewer than two distinct values means step 0.
func Ranges(tbl models.Table) []models.ParamRange {
	ranges := make([]models.ParamRange, 0, len(tbl.Schema.Parameters))
	for _, p := range tbl.Schema.Parameters {
		vals := distinctNumeric(tbl.Column(p))

		r := models.ParamRange{
			Name: models.DisplayName(p),
			Min:  models.Missing(),
			Max:  models.Missing(),
			Step: models.Number(0),
		}
		if len(vals) > 0 {
			r.Min = models.Number(vals[0])
			r.Max = models.Number(vals[len(vals)-1])
		}
		if len(vals) >= 2 {
			r.Step = models.Number(FormatStep(vals[1] - vals[0]))
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// FormatStep cancels the float noise in a raw step value: the first
// decimal rounding (0 to 8 digits) within tolerance of the input wins,
// e.g. 0.020000000000000018 becomes 0.02. Values that never snap are
// rounded to six digits.
func FormatStep(v float64) float64 {
	d := decimal.NewFromFloat(v)
	for digits := int32(0); digits <= 8; digits++ {
		rounded, _ := d.Round(digits).Float64()
		if math.Abs(rounded-v) < stepTolerance {
			return rounded
		}
	}
	rounded, _ := d.Round(6).Float64()
	return rounded
}

// distinctNumeric collects the sorted distinct numeric values of a
// column, dropping cells with no numeric interpretation.
func distinctNumeric(cells []models.Value) []float64 {
	seen := make(map[float64]bool)
	var vals []float64
	for _, c := range cells {
		f, ok := c.Numeric()
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		vals = append(vals, f)
	}
	sort.Float64s(vals)
	return vals
}
