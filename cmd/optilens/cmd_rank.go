package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optilens/optilens/internal/models"
	"github.com/optilens/optilens/internal/report"
)

var (
	rankTop    int
	rankAll    bool
	rankFormat string
)

func newRankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <report.html>",
		Short: "Print the run ranking stored in a report",
		Long: `Rank reads the analysis data embedded in a previously generated HTML report
and prints its run ranking, best composite score first. The source export is
not needed anymore; everything comes from the report itself.`,
		Args: cobra.ExactArgs(1),
		RunE: rankCommandE,
	}

	cmd.Flags().IntVar(&rankTop, "top", 0, "Number of runs to show (default: the report's page size)")
	cmd.Flags().BoolVar(&rankAll, "all", false, "Show every run")
	cmd.Flags().StringVarP(&rankFormat, "format", "f", "table", "Output format: table or json")

	return cmd
}

func rankCommandE(_ *cobra.Command, args []string) error {
	if rankFormat != "table" && rankFormat != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", rankFormat)
	}

	a, err := report.LoadArtifact(args[0])
	if err != nil {
		return err
	}

	limit := a.RankTopN
	if rankTop > 0 {
		limit = rankTop
	}
	if rankAll {
		limit = 0
	}

	ranked := rankedRows(a)
	shown := limitRows(ranked, limit)

	if rankFormat == "json" {
		return printRankingJSON(a, shown)
	}

	printRankingTable(os.Stdout, a, shown, len(ranked))
	return nil
}

// rankingPayload is the machine-readable shape of `rank --format json`.
type rankingPayload struct {
	SourceFile string       `json:"source_file"`
	AnalyzedAt string       `json:"analyzed_at"`
	Columns    []string     `json:"columns"`
	TotalRuns  int          `json:"total_runs"`
	Rows       []models.Row `json:"rows"`
}

func printRankingJSON(a *models.Analysis, rows []models.Row) error {
	payload := rankingPayload{
		SourceFile: a.SourceFile,
		AnalyzedAt: a.AnalyzedAt,
		Columns:    a.TableColumns,
		TotalRuns:  len(a.Rows),
		Rows:       rows,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ranking: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
