package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/optilens/optilens/internal/analysis"
	"github.com/optilens/optilens/internal/batch"
	"github.com/optilens/optilens/internal/config"
)

var (
	analyzeConfigPath string
	analyzeInputDir   string
	analyzeOutputDir  string
	analyzeWorkers    int
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [export ...]",
		Short: "Turn optimizer exports into HTML reports",
		Long: `Analyze MetaTrader 5 optimization exports and write one interactive HTML
report per input.

With file arguments only those exports are analyzed. Without arguments the
input directory is scanned for supported exports (.xml, .csv, .xlsx, and
gzipped .xml.gz/.csv.gz). Inputs whose report already exists are skipped, so
re-running after a new optimization only processes the new exports.`,
		RunE: analyzeCommandE,
	}

	cmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "", "Settings file (default "+config.DefaultPath+" when present)")
	cmd.Flags().StringVar(&analyzeInputDir, "input-dir", "", "Directory scanned for exports (overrides settings)")
	cmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "", "Directory reports are written into (overrides settings)")
	cmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Number of exports processed in parallel (overrides settings)")

	return cmd
}

func analyzeCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(analyzeConfigPath)
	if err != nil {
		return err
	}
	if analyzeInputDir != "" {
		cfg.InputDir = analyzeInputDir
	}
	if analyzeOutputDir != "" {
		cfg.OutputDir = analyzeOutputDir
	}
	if analyzeWorkers > 0 {
		cfg.Workers = analyzeWorkers
	}

	inputs := args
	if len(inputs) == 0 {
		inputs, err = batch.Discover(cfg.InputDir)
		if err != nil {
			// A missing input directory is a setup hint, not a failure.
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Printf("Input directory %q does not exist. Create it and drop optimizer exports inside, or pass --input-dir.\n", cfg.InputDir)
				return nil
			}
			return err
		}
		if len(inputs) == 0 {
			fmt.Printf("No optimizer exports found in %q.\n", cfg.InputDir)
			return nil
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	runner := analysis.NewRunner(
		analysis.WithWeights(cfg.WeightVector()),
		analysis.WithRankSize(cfg.RankTopN),
	)
	driver := batch.NewDriver(runner, cfg.OutputDir, batch.WithWorkers(cfg.Workers))

	var stopSpinner func()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		stopSpinner = startSpinner(os.Stdout, fmt.Sprintf("analyzing %d export(s)...", len(inputs)))
	}
	results := driver.Run(cmd.Context(), inputs)
	if stopSpinner != nil {
		stopSpinner()
	}

	written, skipped, failed := 0, 0, 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Printf("✗ %s: %v\n", res.Input, res.Err)
		case res.Skipped:
			skipped++
			fmt.Printf("- %s (report exists, skipped)\n", res.Input)
		default:
			written++
			fmt.Printf("✓ %s -> %s\n", res.Input, res.Output)
		}
	}
	fmt.Printf("Done: %d written, %d skipped, %d failed.\n", written, skipped, failed)

	if failed > 0 {
		return &BatchFailureError{
			Message: fmt.Sprintf("analysis completed with %d of %d export(s) failed", failed, len(results)),
		}
	}

	return nil
}

// loadSettings reads the named settings file, or the default one when it
// exists. Running without any settings file is fine; built-in defaults
// apply.
func loadSettings(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.Load(config.DefaultPath)
	}
	return config.Default(), nil
}
