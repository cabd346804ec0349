package models

import "strings"

// ParamPrefix marks optimizer input columns in exported run tables.
const ParamPrefix = "inp"

// Well-known export column names referenced by the analysis heuristics.
const (
	ColumnProfit   = "Profit"
	ColumnDrawdown = "Equity DD %"
	ColumnSharpe   = "Sharpe Ratio"
	ColumnTrades   = "Trades"
)

// Derived columns appended by the analysis pipeline.
const (
	ScoreColumn  = "Score_Weighted"
	ParetoColumn = "Is_Pareto"
)

// ColumnRole classifies how a column participates in the analysis.
type ColumnRole string

const (
	RoleParameter ColumnRole = "parameter"
	RoleMetric    ColumnRole = "metric"
	RoleExcluded  ColumnRole = "excluded"
)

// excludedColumns are bookkeeping columns that are neither optimizer
// inputs nor performance metrics.
var excludedColumns = map[string]bool{
	"Custom": true,
}

// Schema is the column classification for one ingested table. It is
// built once at ingestion time and handed along unchanged; nothing
// downstream re-derives roles from column names.
type Schema struct {
	Columns    []string
	Parameters []string
	Metrics    []string
	roles      map[string]ColumnRole
}

// ClassifySchema splits columns by role. Names carrying the ParamPrefix
// are optimizer inputs, reserved bookkeeping columns are excluded, and
// every other column is treated as a performance metric.
func ClassifySchema(columns []string) Schema {
	s := Schema{
		Columns: columns,
		roles:   make(map[string]ColumnRole, len(columns)),
	}
	for _, c := range columns {
		switch {
		case strings.HasPrefix(c, ParamPrefix):
			s.roles[c] = RoleParameter
			s.Parameters = append(s.Parameters, c)
		case excludedColumns[c]:
			s.roles[c] = RoleExcluded
		default:
			s.roles[c] = RoleMetric
			s.Metrics = append(s.Metrics, c)
		}
	}
	return s
}

// Role returns the classification of a column. Columns the schema has
// never seen are excluded.
func (s Schema) Role(column string) ColumnRole {
	if r, ok := s.roles[column]; ok {
		return r
	}
	return RoleExcluded
}

// displayNames maps well-known export columns to report labels.
var displayNames = map[string]string{
	"Pass":            "Pass",
	"Result":          "Balance",
	"Profit":          "Profit",
	"Expected Payoff": "Expected Payoff",
	"Profit Factor":   "Profit Factor",
	"Recovery Factor": "Recovery Factor",
	"Sharpe Ratio":    "Sharpe Ratio",
	"Equity DD %":     "Drawdown %",
	"Trades":          "Trades",
}

// DisplayNames returns the label lookup embedded in the report payload.
func DisplayNames() map[string]string {
	m := make(map[string]string, len(displayNames))
	for k, v := range displayNames {
		m[k] = v
	}
	return m
}

// DisplayName renders a column header for reports and terminal tables:
// the derived score column gets a friendly label, optimizer inputs lose
// their prefix, and well-known metrics use their mapped label.
func DisplayName(column string) string {
	switch {
	case column == ScoreColumn:
		return "Score"
	case strings.HasPrefix(column, ParamPrefix):
		return strings.TrimPrefix(column, ParamPrefix)
	}
	if label, ok := displayNames[column]; ok {
		return label
	}
	return column
}
