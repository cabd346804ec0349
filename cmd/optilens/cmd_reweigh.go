package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optilens/optilens/internal/models"
	"github.com/optilens/optilens/internal/report"
	"github.com/optilens/optilens/internal/scoring"
	"github.com/optilens/optilens/internal/wizard"
)

var (
	reweighSets []string
	reweighTop  int
)

func newReweighCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reweigh <report.html>",
		Short: "Re-rank a report's runs under different weights",
		Long: `Reweigh loads the standardized metrics frozen in an existing HTML report and
recomputes the composite ranking under new weights. Scores are rebuilt from
the stored standardized columns, so the result matches the report's in-page
weight controls exactly. The report file itself is never modified.

With --set flags the new ranking prints once. Without them an interactive
session opens, pre-filled with the report's default weights.`,
		Args: cobra.ExactArgs(1),
		RunE: reweighCommandE,
	}

	cmd.Flags().StringArrayVar(&reweighSets, "set", nil, "Weight override as key=value, repeatable (e.g. --set profit=0.5)")
	cmd.Flags().IntVar(&reweighTop, "top", 0, "Number of runs to show per ranking (default: the report's page size)")

	return cmd
}

func reweighCommandE(_ *cobra.Command, args []string) error {
	a, err := report.LoadArtifact(args[0])
	if err != nil {
		return err
	}

	metrics := a.ActiveMetrics()
	if len(metrics) == 0 {
		return fmt.Errorf("report %s has no scored metrics to reweigh", args[0])
	}

	limit := a.RankTopN
	if reweighTop > 0 {
		limit = reweighTop
	}

	weights := a.DefaultWeights.Clone()

	if len(reweighSets) > 0 {
		if err := applyWeightOverrides(weights, reweighSets); err != nil {
			return err
		}
		rescoreRows(a, metrics, weights)
		printWeights(os.Stdout, metrics, weights)
		printRankingTable(os.Stdout, a, limitRows(rankedRows(a), limit), len(a.Rows))
		return nil
	}

	for {
		weights, err = wizard.RunWeightsForm(os.Stdin, os.Stdout, metrics, weights)
		if err != nil {
			return err
		}

		rescoreRows(a, metrics, weights)
		printWeights(os.Stdout, metrics, weights)
		printRankingTable(os.Stdout, a, limitRows(rankedRows(a), limit), len(a.Rows))

		again, err := wizard.ConfirmAnotherRound(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// applyWeightOverrides parses repeated key=value flags into the weight
// vector. Keys must name known metrics.
func applyWeightOverrides(weights models.WeightVector, sets []string) error {
	for _, s := range sets {
		key, val, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("invalid weight override %q: want key=value", s)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fmt.Errorf("invalid weight override %q: %q is not a number", s, val)
		}
		weights[strings.TrimSpace(key)] = f
	}
	return weights.Validate()
}

// rescoreRows recomputes the stored composite column under new weights.
// Only the in-memory copy changes; the artifact on disk stays as written.
func rescoreRows(a *models.Analysis, metrics []models.MetricDef, weights models.WeightVector) {
	scores := scoring.Apply(a.Rows, metrics, weights)
	for i, row := range a.Rows {
		row[models.ScoreColumn] = models.Number(scores[i])
	}
}

// printWeights echoes the weights a ranking was computed under.
func printWeights(w io.Writer, metrics []models.MetricDef, weights models.WeightVector) {
	parts := make([]string, len(metrics))
	for i, m := range metrics {
		parts[i] = m.Key + "=" + strconv.FormatFloat(weights[m.Key], 'g', -1, 64)
	}
	fmt.Fprintf(w, "Weights: %s\n", strings.Join(parts, "  ")) //nolint:errcheck
}
