package models

// Metric keys understood by the scorer.
const (
	MetricProfit         = "profit"
	MetricDrawdown       = "drawdown"
	MetricSharpeRatio    = "sharpe_ratio"
	MetricProfitFactor   = "profit_factor"
	MetricRecoveryFactor = "recovery_factor"
	MetricExpectedPayoff = "expected_payoff"
)

// MetricDef binds a metric key to its source column in the export, the
// standardized column derived from it, and a display label.
type MetricDef struct {
	Key     string `json:"-"`
	Column  string `json:"col"`
	ZColumn string `json:"zcol"`
	Label   string `json:"label"`
}

// MetricCatalog lists every metric the engine understands, in scoring
// order. A metric participates in a given analysis only when its source
// column is present in the ingested table.
var MetricCatalog = []MetricDef{
	{Key: MetricProfit, Column: "Profit", ZColumn: "z_profit", Label: "Profit"},
	{Key: MetricDrawdown, Column: "Equity DD %", ZColumn: "z_drawdown", Label: "Drawdown"},
	{Key: MetricSharpeRatio, Column: "Sharpe Ratio", ZColumn: "z_sharpe_ratio", Label: "Sharpe Ratio"},
	{Key: MetricProfitFactor, Column: "Profit Factor", ZColumn: "z_profit_factor", Label: "Profit Factor"},
	{Key: MetricRecoveryFactor, Column: "Recovery Factor", ZColumn: "z_recovery_factor", Label: "Recovery Factor"},
	{Key: MetricExpectedPayoff, Column: "Expected Payoff", ZColumn: "z_expected_payoff", Label: "Expected Payoff"},
}

// ActiveMetrics filters the catalog down to metrics whose source column
// exists in the table.
func ActiveMetrics(t Table) []MetricDef {
	var active []MetricDef
	for _, m := range MetricCatalog {
		if t.HasColumn(m.Column) {
			active = append(active, m)
		}
	}
	return active
}

// rankingMetricColumns is the column order of the ranking table, after
// the optimizer inputs and before the composite score.
var rankingMetricColumns = []string{
	"Profit",
	"Equity DD %",
	"Sharpe Ratio",
	"Profit Factor",
	"Recovery Factor",
	"Expected Payoff",
	"Trades",
}

// RankingColumns returns the display order of the ranking table for a
// table: its parameters, the well-known metric columns it actually has,
// then the composite score.
func RankingColumns(t Table) []string {
	cols := make([]string, 0, len(t.Schema.Parameters)+len(rankingMetricColumns)+1)
	cols = append(cols, t.Schema.Parameters...)
	for _, c := range rankingMetricColumns {
		if t.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	return append(cols, ScoreColumn)
}
