package models

import "math"

// Row maps column names to cell values.
type Row map[string]Value

// Table is an ingested optimization run table: the ordered column list,
// one Row per parameter combination, and the column classification.
type Table struct {
	Columns []string
	Rows    []Row
	Schema  Schema
}

// NewTable builds a table and classifies its columns.
func NewTable(columns []string, rows []Row) Table {
	return Table{
		Columns: columns,
		Rows:    rows,
		Schema:  ClassifySchema(columns),
	}
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the cells of one column in row order. Rows without the
// column yield missing cells.
func (t Table) Column(name string) []Value {
	vals := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		vals[i] = r[name]
	}
	return vals
}

// NumericColumn coerces a column to float64 with NaN standing in for
// cells that have no numeric interpretation.
func (t Table) NumericColumn(name string) []float64 {
	vals := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		if f, ok := r[name].Numeric(); ok {
			vals[i] = f
		} else {
			vals[i] = math.NaN()
		}
	}
	return vals
}

// NumericColumnOrZero coerces a column to float64 with 0 standing in for
// non-numeric cells. An absent column yields all zeros, so heuristics
// can treat every objective as present.
func (t Table) NumericColumnOrZero(name string) []float64 {
	vals := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		if f, ok := r[name].Numeric(); ok {
			vals[i] = f
		}
	}
	return vals
}
