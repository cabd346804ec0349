// Package batch drives the analysis pipeline over a set of export
// files, one report artifact per input.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/optilens/optilens/internal/analysis"
	"github.com/optilens/optilens/internal/ingest"
	"github.com/optilens/optilens/internal/report"
)

// Result is the outcome of processing one input file. Skipped results
// point at a report that already existed and was left untouched.
type Result struct {
	Input   string
	Output  string
	Skipped bool
	Err     error
}

// Driver maps export files to report artifacts named after the input's
// stem. Existing artifacts are never recomputed or overwritten.
type Driver struct {
	runner  *analysis.Runner
	outDir  string
	workers int
}

// Option configures a Driver.
type Option func(*Driver)

// WithWorkers caps how many files are processed at once. Values below
// one keep the default of a single file at a time.
func WithWorkers(n int) Option {
	return func(d *Driver) {
		if n >= 1 {
			d.workers = n
		}
	}
}

// NewDriver creates a driver that writes reports into outDir.
func NewDriver(runner *analysis.Runner, outDir string, opts ...Option) *Driver {
	d := &Driver{
		runner:  runner,
		outDir:  outDir,
		workers: 1,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Discover lists the supported export files directly inside dir.
// os.ReadDir sorts by name, so batch order is stable across runs.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read input dir %s: %w", dir, err)
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() || !ingest.Supported(e.Name()) {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, e.Name()))
	}
	return inputs, nil
}

// Run processes every input with at most the configured number of
// files in flight. Results are positionally aligned with inputs, and a
// failing file never stops the rest of the batch.
func (d *Driver) Run(ctx context.Context, inputs []string) []Result {
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, input := range inputs {
		g.Go(func() error {
			results[i] = d.processOne(ctx, input)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return results
}

func (d *Driver) processOne(ctx context.Context, input string) Result {
	res := Result{
		Input:  input,
		Output: filepath.Join(d.outDir, ingest.Stem(input)+".html"),
	}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	if _, err := os.Stat(res.Output); err == nil {
		slog.Debug("report exists, skipping", "input", input, "output", res.Output)
		res.Skipped = true
		return res
	}

	start := time.Now()
	tbl, err := ingest.Load(input)
	if err != nil {
		res.Err = err
		return res
	}

	a, err := d.runner.Run(tbl, filepath.Base(input))
	if err != nil {
		res.Err = err
		return res
	}

	f, err := os.Create(res.Output)
	if err != nil {
		res.Err = fmt.Errorf("batch: create %s: %w", res.Output, err)
		return res
	}
	if err := report.Render(f, a); err != nil {
		f.Close() //nolint:errcheck
		res.Err = err
		return res
	}
	if err := f.Close(); err != nil {
		res.Err = fmt.Errorf("batch: close %s: %w", res.Output, err)
		return res
	}

	slog.Debug("report written", "input", input, "output", res.Output, "elapsed", time.Since(start))
	return res
}
