// Package pareto flags the efficient rows of a run table under the
// three standing objectives: higher profit, higher sharpe ratio, lower
// drawdown.
package pareto

// Point carries one row's objective values. Rows without a numeric
// objective value enter the scan as 0.
type Point struct {
	Profit   float64
	Sharpe   float64
	Drawdown float64
}

// Flags marks the Pareto-efficient points. A point is efficient when no
// other point dominates it; points tied on all three objectives do not
// dominate each other, so duplicates stay flagged together. The O(n^2)
// dominance scan is fine for the hundreds to low thousands of rows an
// optimizer export holds.
func Flags(points []Point) []bool {
	flags := make([]bool, len(points))
	for i := range flags {
		flags[i] = true
	}

	for i := range points {
		if !flags[i] {
			continue
		}
		for j := range points {
			if i == j {
				continue
			}
			if dominates(points[j], points[i]) {
				flags[i] = false
				break
			}
		}
	}
	return flags
}

// dominates returns true if a dominates b: at least as good on every
// objective and strictly better on one. Profit and sharpe count up,
// drawdown counts down.
func dominates(a, b Point) bool {
	if a.Profit < b.Profit || a.Sharpe < b.Sharpe || a.Drawdown > b.Drawdown {
		return false
	}
	return a.Profit > b.Profit || a.Sharpe > b.Sharpe || a.Drawdown < b.Drawdown
}
