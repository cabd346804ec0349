package models

// Card is one strategy recommendation. Body is markdown; renderers
// decide how to display it.
type Card struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ParamRange summarizes the values one optimizer input took across the
// analyzed runs. Min and Max are missing when the input never held a
// numeric value; Step is 0 when fewer than two distinct values exist.
type ParamRange struct {
	Name string `json:"name"`
	Min  Value  `json:"min"`
	Max  Value  `json:"max"`
	Step Value  `json:"step"`
}

// Summary holds the headline counters shown at the top of a report.
type Summary struct {
	ParamCount     int `json:"param_count"`
	TotalRuns      int `json:"total_runs"`
	ProfitableRuns int `json:"profitable_runs"`
	ParetoCount    int `json:"pareto_count"`
}

// Analysis is the complete result payload for one input table: the
// filtered rows extended with standardized columns, the default
// composite score and the Pareto flag, plus everything a renderer needs
// to present and re-weigh them. The HTML report embeds it verbatim as a
// JSON data island, and the rank and reweigh commands read it back, so
// re-weighting never re-ingests or re-normalizes.
type Analysis struct {
	SourceFile string  `json:"source_file"`
	AnalyzedAt string  `json:"analyzed_at"`
	Summary    Summary `json:"summary"`

	Columns      []string `json:"columns"`
	ParamColumns []string `json:"param_columns"`
	Rows         []Row    `json:"rows"`

	Metrics        map[string]MetricDef `json:"metrics"`
	MetricOrder    []string             `json:"metric_order"`
	DefaultWeights WeightVector         `json:"default_weights"`

	DisplayNames map[string]string `json:"display_names"`
	TableColumns []string          `json:"table_columns"`
	RankTopN     int               `json:"rank_top_n"`

	Cards       []Card       `json:"cards"`
	ParamRanges []ParamRange `json:"param_ranges"`
}

// ActiveMetrics reconstructs the ordered metric definitions from the
// payload. MetricDef keys are not serialized, so this is the way to get
// usable definitions back out of a loaded artifact.
func (a *Analysis) ActiveMetrics() []MetricDef {
	defs := make([]MetricDef, 0, len(a.MetricOrder))
	for _, key := range a.MetricOrder {
		def, ok := a.Metrics[key]
		if !ok {
			continue
		}
		def.Key = key
		defs = append(defs, def)
	}
	return defs
}
