package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optilens",
		Short: "Optilens - CLI tool for analyzing MetaTrader optimizer runs",
		Long: `Optilens is a command-line tool for analyzing MetaTrader 5 optimizer runs.

It turns optimization exports into standalone HTML reports with standardized
metric scores, Pareto-efficient runs and suggested parameter sets, and can
re-rank the runs of an existing report under different weights.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newRankCommand())
	cmd.AddCommand(newReweighCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
