package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilens/optilens/internal/models"
)

func resetReweighGlobals() {
	reweighSets = nil
	reweighTop = 0
}

// ---------------------------------------------------------------------------
// One-shot mode (--set)
// ---------------------------------------------------------------------------

func TestReweighCommand_SetFlagRanksOnce(t *testing.T) {
	resetReweighGlobals()

	p := writeReport(t, t.TempDir())
	before, err := os.ReadFile(p)
	require.NoError(t, err)

	cmd := newReweighCommand()
	cmd.SetArgs([]string{p, "--set", "profit=1", "--set", "drawdown=0", "--top", "2"})
	require.NoError(t, cmd.Execute())

	after, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, before, after, "reweigh must never modify the report artifact")
}

func TestReweighCommand_InvalidSetFormat(t *testing.T) {
	resetReweighGlobals()

	p := writeReport(t, t.TempDir())

	cmd := newReweighCommand()
	cmd.SetArgs([]string{p, "--set", "profit"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want key=value")
}

func TestReweighCommand_SetValueNotANumber(t *testing.T) {
	resetReweighGlobals()

	p := writeReport(t, t.TempDir())

	cmd := newReweighCommand()
	cmd.SetArgs([]string{p, "--set", "profit=lots"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a number")
}

func TestReweighCommand_UnknownMetric(t *testing.T) {
	resetReweighGlobals()

	p := writeReport(t, t.TempDir())

	cmd := newReweighCommand()
	cmd.SetArgs([]string{p, "--set", "momentum=1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown metric")
}

// ---------------------------------------------------------------------------
// Error handling
// ---------------------------------------------------------------------------

func TestReweighCommand_MissingFile(t *testing.T) {
	resetReweighGlobals()

	cmd := newReweighCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.html"), "--set", "profit=1"})
	assert.Error(t, cmd.Execute())
}

func TestReweighCommand_NotAReport(t *testing.T) {
	resetReweighGlobals()

	p := filepath.Join(t.TempDir(), "plain.html")
	require.NoError(t, os.WriteFile(p, []byte("<html><body>hi</body></html>"), 0o644))

	cmd := newReweighCommand()
	cmd.SetArgs([]string{p, "--set", "profit=1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analysis data island")
}

// ---------------------------------------------------------------------------
// Weight overrides
// ---------------------------------------------------------------------------

func TestApplyWeightOverrides(t *testing.T) {
	weights := models.DefaultWeights()

	err := applyWeightOverrides(weights, []string{"profit=0.5", " drawdown = -0.1 "})
	require.NoError(t, err)
	assert.Equal(t, 0.5, weights["profit"])
	assert.Equal(t, -0.1, weights["drawdown"])
	assert.Equal(t, 0.20, weights["sharpe_ratio"], "untouched weights keep their defaults")
}

func TestApplyWeightOverrides_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		set     string
		wantErr string
	}{
		{"missing equals", "profit", "want key=value"},
		{"not a number", "profit=much", "is not a number"},
		{"unknown metric", "momentum=1", "unknown metric"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := applyWeightOverrides(models.DefaultWeights(), []string{tt.set})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Rescoring
// ---------------------------------------------------------------------------

func TestRescoreRows(t *testing.T) {
	a := &models.Analysis{
		MetricOrder: []string{"profit"},
		Metrics: map[string]models.MetricDef{
			"profit": {Column: "Profit", ZColumn: "z_profit", Label: "Profit"},
		},
		Rows: []models.Row{
			{"z_profit": models.Number(1.5)},
			{"z_profit": models.Number(-0.5)},
			{},
		},
	}

	rescoreRows(a, a.ActiveMetrics(), models.WeightVector{"profit": 2})

	score := func(i int) float64 {
		f, ok := a.Rows[i][models.ScoreColumn].Numeric()
		require.True(t, ok)
		return f
	}
	assert.InDelta(t, 3.0, score(0), 1e-9)
	assert.InDelta(t, -1.0, score(1), 1e-9)
	assert.InDelta(t, 0.0, score(2), 1e-9, "rows without standardized values score zero")
}
