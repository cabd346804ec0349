package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilens/optilens/internal/config"
	"github.com/optilens/optilens/internal/report"
)

func resetAnalyzeGlobals() {
	analyzeConfigPath = ""
	analyzeInputDir = ""
	analyzeOutputDir = ""
	analyzeWorkers = 0
}

const exportXML = `<?xml version="1.0"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet>
  <Table>
   <Row>
    <Cell><Data>Pass</Data></Cell>
    <Cell><Data>inpPeriod</Data></Cell>
    <Cell><Data>Profit</Data></Cell>
    <Cell><Data>Sharpe Ratio</Data></Cell>
    <Cell><Data>Equity DD %</Data></Cell>
    <Cell><Data>Trades</Data></Cell>
   </Row>
   <Row>
    <Cell><Data>1</Data></Cell>
    <Cell><Data>10</Data></Cell>
    <Cell><Data>120.5</Data></Cell>
    <Cell><Data>1.1</Data></Cell>
    <Cell><Data>12</Data></Cell>
    <Cell><Data>40</Data></Cell>
   </Row>
   <Row>
    <Cell><Data>2</Data></Cell>
    <Cell><Data>20</Data></Cell>
    <Cell><Data>80</Data></Cell>
    <Cell><Data>0.7</Data></Cell>
    <Cell><Data>9</Data></Cell>
    <Cell><Data>33</Data></Cell>
   </Row>
  </Table>
 </Worksheet>
</Workbook>`

// writeExport drops an optimizer export into dir.
func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// ---------------------------------------------------------------------------
// Batch mode
// ---------------------------------------------------------------------------

func TestAnalyzeCommand_WritesReports(t *testing.T) {
	resetAnalyzeGlobals()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeExport(t, inDir, "alpha.xml", exportXML)
	writeExport(t, inDir, "beta.xml", exportXML)

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--input-dir", inDir, "--output-dir", outDir})
	require.NoError(t, cmd.Execute())

	a, err := report.LoadArtifact(filepath.Join(outDir, "alpha.html"))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Summary.TotalRuns)
	assert.FileExists(t, filepath.Join(outDir, "beta.html"))
}

func TestAnalyzeCommand_SkipsExistingReports(t *testing.T) {
	resetAnalyzeGlobals()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeExport(t, inDir, "alpha.xml", exportXML)

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--input-dir", inDir, "--output-dir", outDir})
	require.NoError(t, cmd.Execute())

	out := filepath.Join(outDir, "alpha.html")
	before, err := os.ReadFile(out)
	require.NoError(t, err)

	resetAnalyzeGlobals()
	again := newAnalyzeCommand()
	again.SetArgs([]string{"--input-dir", inDir, "--output-dir", outDir})
	require.NoError(t, again.Execute())

	after, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, before, after, "existing report must not be rewritten")
}

func TestAnalyzeCommand_MissingInputDirIsNotAnError(t *testing.T) {
	resetAnalyzeGlobals()

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--input-dir", filepath.Join(t.TempDir(), "nope"), "--output-dir", t.TempDir()})
	assert.NoError(t, cmd.Execute())
}

func TestAnalyzeCommand_EmptyInputDirIsNotAnError(t *testing.T) {
	resetAnalyzeGlobals()

	outDir := t.TempDir()
	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--input-dir", t.TempDir(), "--output-dir", outDir})
	assert.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ---------------------------------------------------------------------------
// Explicit file arguments
// ---------------------------------------------------------------------------

func TestAnalyzeCommand_ExplicitFiles(t *testing.T) {
	resetAnalyzeGlobals()

	inDir, outDir := t.TempDir(), t.TempDir()
	input := writeExport(t, inDir, "eurusd-h1.xml", exportXML)

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--output-dir", outDir, input})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "eurusd-h1.html"))
}

// ---------------------------------------------------------------------------
// Failure handling
// ---------------------------------------------------------------------------

func TestAnalyzeCommand_FailedExportReturnsBatchFailure(t *testing.T) {
	resetAnalyzeGlobals()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeExport(t, inDir, "bad.xml", "not an export at all")
	writeExport(t, inDir, "good.xml", exportXML)

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--input-dir", inDir, "--output-dir", outDir})
	err := cmd.Execute()
	require.Error(t, err)

	var batchErr *BatchFailureError
	assert.True(t, errors.As(err, &batchErr), "expected a BatchFailureError, got %T", err)

	// The good export must still produce its report.
	assert.FileExists(t, filepath.Join(outDir, "good.html"))
	assert.NoFileExists(t, filepath.Join(outDir, "bad.html"))
}

// ---------------------------------------------------------------------------
// Settings file
// ---------------------------------------------------------------------------

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	resetAnalyzeGlobals()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeExport(t, inDir, "alpha.xml", exportXML)

	cfgPath := filepath.Join(t.TempDir(), "optilens.yaml")
	cfgYAML := fmt.Sprintf("input_dir: %s\noutput_dir: %s\nworkers: 2\n", inDir, outDir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--config", cfgPath})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "alpha.html"))
}

func TestAnalyzeCommand_FlagsOverrideConfig(t *testing.T) {
	resetAnalyzeGlobals()

	inDir := t.TempDir()
	writeExport(t, inDir, "alpha.xml", exportXML)
	cfgOut, flagOut := t.TempDir(), t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "optilens.yaml")
	cfgYAML := fmt.Sprintf("input_dir: %s\noutput_dir: %s\n", inDir, cfgOut)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--config", cfgPath, "--output-dir", flagOut})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(flagOut, "alpha.html"))
	assert.NoFileExists(t, filepath.Join(cfgOut, "alpha.html"))
}

func TestAnalyzeCommand_BrokenConfigFile(t *testing.T) {
	resetAnalyzeGlobals()

	cfgPath := filepath.Join(t.TempDir(), "optilens.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workers: 0\n"), 0o644))

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--config", cfgPath})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

// ---------------------------------------------------------------------------
// Settings loading
// ---------------------------------------------------------------------------

func TestLoadSettings_DefaultsWithoutFile(t *testing.T) {
	cfg, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Root command wiring
// ---------------------------------------------------------------------------

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"analyze", "rank", "reweigh"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "root command should have %q subcommand", name)
	}
}
