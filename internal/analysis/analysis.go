// Package analysis runs the full scoring pipeline over one ingested
// table: the trade-count filter, metric standardization, the
// default-weight composite score, Pareto flags, suggestion cards, and
// parameter range summaries, assembled into a renderable payload.
package analysis

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"time"

	"github.com/optilens/optilens/internal/models"
	"github.com/optilens/optilens/internal/params"
	"github.com/optilens/optilens/internal/pareto"
	"github.com/optilens/optilens/internal/recommend"
	"github.com/optilens/optilens/internal/scoring"
	"github.com/optilens/optilens/internal/statistics"
)

// DefaultRankSize is how many rows the ranking view shows by default.
const DefaultRankSize = 30

// Runner executes the pipeline. It holds no per-table state, so one
// Runner can serve any number of tables, concurrently if needed.
type Runner struct {
	weights  models.WeightVector
	rankSize int
	now      func() time.Time
}

// Option adjusts a Runner.
type Option func(*Runner)

// WithWeights overrides the default scoring weights.
func WithWeights(w models.WeightVector) Option {
	return func(r *Runner) {
		if len(w) > 0 {
			r.weights = w.Clone()
		}
	}
}

// WithRankSize overrides the default ranking page size. 0 means show
// everything.
func WithRankSize(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.rankSize = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner builds a Runner with the default weights and page size.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		weights:  models.DefaultWeights(),
		rankSize: DefaultRankSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run analyzes one table. The input table is not modified; the returned
// payload owns extended copies of the surviving rows.
func (r *Runner) Run(tbl models.Table, sourceName string) (*models.Analysis, error) {
	if err := r.weights.Validate(); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	filtered := filterTrades(tbl)
	slog.Debug("filtered run table", "source", sourceName,
		"rows_in", len(tbl.Rows), "rows_kept", len(filtered.Rows))

	active := models.ActiveMetrics(filtered)
	extended := extend(filtered, active, r.weights)

	profit := extended.NumericColumnOrZero(models.ColumnProfit)
	profitable := 0
	for _, p := range profit {
		if p > 0 {
			profitable++
		}
	}

	paretoCount := 0
	for _, row := range extended.Rows {
		if row[models.ParetoColumn].True() {
			paretoCount++
		}
	}

	metricsByKey := make(map[string]models.MetricDef, len(active))
	order := make([]string, 0, len(active))
	for _, m := range active {
		metricsByKey[m.Key] = m
		order = append(order, m.Key)
	}

	return &models.Analysis{
		SourceFile: sourceName,
		AnalyzedAt: r.now().Format("2006-01-02 15:04:05"),
		Summary: models.Summary{
			ParamCount:     len(tbl.Schema.Parameters),
			TotalRuns:      len(extended.Rows),
			ProfitableRuns: profitable,
			ParetoCount:    paretoCount,
		},
		Columns:        extended.Columns,
		ParamColumns:   tbl.Schema.Parameters,
		Rows:           extended.Rows,
		Metrics:        metricsByKey,
		MetricOrder:    order,
		DefaultWeights: r.weights.Clone(),
		DisplayNames:   models.DisplayNames(),
		TableColumns:   models.RankingColumns(extended),
		RankTopN:       r.rankSize,
		Cards:          recommend.BuildCards(extended),
		ParamRanges:    params.Ranges(extended),
	}, nil
}

// filterTrades drops rows whose trade count is not positive. Tables
// without a trade column pass through untouched. This runs exactly once,
// before standardization, so every downstream statistic sees the same
// population.
func filterTrades(tbl models.Table) models.Table {
	if !tbl.HasColumn(models.ColumnTrades) {
		return tbl
	}
	trades := tbl.NumericColumnOrZero(models.ColumnTrades)
	rows := make([]models.Row, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		if trades[i] > 0 {
			rows = append(rows, row)
		}
	}
	return models.Table{Columns: tbl.Columns, Rows: rows, Schema: tbl.Schema}
}

// extend appends the standardized column for every active metric, the
// default-weight composite score, and the Pareto flag. Rows are cloned;
// the classification from ingestion is carried over as-is.
func extend(tbl models.Table, active []models.MetricDef, weights models.WeightVector) models.Table {
	rows := make([]models.Row, len(tbl.Rows))
	for i, row := range tbl.Rows {
		rows[i] = maps.Clone(row)
	}

	columns := append([]string{}, tbl.Columns...)
	for _, m := range active {
		z := statistics.ZScores(tbl.NumericColumn(m.Column))
		for i := range rows {
			if math.IsNaN(z[i]) {
				rows[i][m.ZColumn] = models.Missing()
			} else {
				rows[i][m.ZColumn] = models.Number(z[i])
			}
		}
		columns = append(columns, m.ZColumn)
	}

	scores := scoring.Apply(rows, active, weights)
	for i := range rows {
		rows[i][models.ScoreColumn] = models.Number(scores[i])
	}
	columns = append(columns, models.ScoreColumn)

	flags := pareto.Flags(objectivePoints(tbl))
	for i := range rows {
		rows[i][models.ParetoColumn] = models.Bool(flags[i])
	}
	columns = append(columns, models.ParetoColumn)

	return models.Table{Columns: columns, Rows: rows, Schema: tbl.Schema}
}

// objectivePoints projects the rows onto the three Pareto objectives,
// with 0 standing in for missing values and absent columns.
func objectivePoints(tbl models.Table) []pareto.Point {
	profit := tbl.NumericColumnOrZero(models.ColumnProfit)
	sharpe := tbl.NumericColumnOrZero(models.ColumnSharpe)
	drawdown := tbl.NumericColumnOrZero(models.ColumnDrawdown)

	points := make([]pareto.Point, len(tbl.Rows))
	for i := range points {
		points[i] = pareto.Point{Profit: profit[i], Sharpe: sharpe[i], Drawdown: drawdown[i]}
	}
	return points
}
