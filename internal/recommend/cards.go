// Package recommend derives the strategy suggestion cards from a
// filtered, scored run table. Every card names a concrete parameter
// assignment (or range) a trader could copy into the next optimization.
package recommend

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/optilens/optilens/internal/models"
	"github.com/optilens/optilens/internal/statistics"
)

// minTrades is the trade-count floor for the aggressive pick; runs below
// it are too thin to trust a profit figure.
const minTrades = 10

// stableTopFloor is the minimum pool size for the stable-range card.
const stableTopFloor = 10

// BuildCards produces the four suggestion cards: aggressive, balanced,
// conservative, and stable parameter ranges. Card bodies are markdown.
// An empty table yields a single placeholder card.
func BuildCards(tbl models.Table) []models.Card {
	if len(tbl.Rows) == 0 {
		return []models.Card{{
			Title: "No data",
			Body:  "The filtered table has no rows, so no recommendation can be made.",
		}}
	}

	profit := tbl.NumericColumnOrZero(models.ColumnProfit)
	sharpe := tbl.NumericColumnOrZero(models.ColumnSharpe)
	drawdown := tbl.NumericColumnOrZero(models.ColumnDrawdown)
	trades := tbl.NumericColumnOrZero(models.ColumnTrades)
	scores := tbl.NumericColumnOrZero(models.ScoreColumn)

	return []models.Card{
		aggressiveCard(tbl, profit, trades),
		balancedCard(tbl, scores),
		conservativeCard(tbl, profit, sharpe, drawdown),
		stableRangeCard(tbl, scores),
	}
}

// aggressiveCard picks the highest profit among runs with enough trades,
// falling back to the whole table when none qualify.
func aggressiveCard(tbl models.Table, profit, trades []float64) models.Card {
	pool := indexesWhere(len(tbl.Rows), func(i int) bool { return trades[i] >= minTrades })
	if len(pool) == 0 {
		pool = allIndexes(len(tbl.Rows))
	}

	best := pool[0]
	for _, i := range pool[1:] {
		if profit[i] > profit[best] {
			best = i
		}
	}

	return pickCard(
		"1. Aggressive (highest profit)",
		tbl, best,
		"Profit comes first here, so deeper drawdowns ride along. Suited to risk-tolerant accounts.",
	)
}

// balancedCard picks the highest composite score under the default
// weights.
func balancedCard(tbl models.Table, scores []float64) models.Card {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	return pickCard(
		"2. Balanced (best weighted score)",
		tbl, best,
		"The highest composite score under the default weights. A reasonable pick for most accounts.",
	)
}

// conservativeCard picks the lowest drawdown among runs that made money
// with a positive sharpe, falling back to the whole table.
func conservativeCard(tbl models.Table, profit, sharpe, drawdown []float64) models.Card {
	pool := indexesWhere(len(tbl.Rows), func(i int) bool { return profit[i] > 0 && sharpe[i] > 0 })
	if len(pool) == 0 {
		pool = allIndexes(len(tbl.Rows))
	}

	best := pool[0]
	for _, i := range pool[1:] {
		if drawdown[i] < drawdown[best] {
			best = i
		}
	}

	return pickCard(
		"3. Conservative (lowest drawdown)",
		tbl, best,
		"Picked for capital safety among profitable runs. Suited to steady accounts.",
	)
}

// stableRangeCard reports the interquartile range of each parameter over
// the top fifth of the table by score (at least stableTopFloor rows).
func stableRangeCard(tbl models.Table, scores []float64) models.Card {
	n := len(tbl.Rows)
	topN := max(stableTopFloor, n/5)
	if topN > n {
		topN = n
	}

	order := allIndexes(n)
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	top := order[:topN]

	var lines []string
	for _, p := range tbl.Schema.Parameters {
		var vals []float64
		for _, i := range top {
			if f, ok := tbl.Rows[i][p].Numeric(); ok {
				vals = append(vals, f)
			}
		}
		if len(vals) == 0 {
			continue
		}
		q1 := statistics.Percentile(vals, 0.25)
		q3 := statistics.Percentile(vals, 0.75)
		lines = append(lines, fmt.Sprintf("- %s: %s - %s",
			models.DisplayName(p), formatFloat(q1), formatFloat(q3)))
	}

	body := "No stable parameter range stood out. Widening the optimization or adding more passes may help."
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") +
			"\n\nFine-tuning inside these ranges tends to hold up better than chasing a single best pass."
	}

	return models.Card{Title: "4. Stable parameter ranges", Body: body}
}

// pickCard renders a single-row recommendation: the parameter
// assignment, the row's headline metrics, and a closing note.
func pickCard(title string, tbl models.Table, row int, note string) models.Card {
	r := tbl.Rows[row]
	body := fmt.Sprintf(
		"Recommended parameters: `%s`\n\nExpected: profit %s, sharpe %s, drawdown %s%%\n\n%s",
		paramAssignment(r, tbl.Schema.Parameters),
		cellOrNA(r[models.ColumnProfit]),
		cellOrNA(r[models.ColumnSharpe]),
		cellOrNA(r[models.ColumnDrawdown]),
		note,
	)
	return models.Card{Title: title, Body: body}
}

// paramAssignment renders "Period=30, Threshold=0.54" for a row.
func paramAssignment(r models.Row, params []string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%s=%s", models.DisplayName(p), r[p].Display()))
	}
	return strings.Join(parts, ", ")
}

func cellOrNA(v models.Value) string {
	if v.IsMissing() {
		return "N/A"
	}
	return v.Display()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func indexesWhere(n int, keep func(int) bool) []int {
	var idx []int
	for i := 0; i < n; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return idx
}
