package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/optilens/optilens/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, "optimizations", cfg.InputDir)
	require.Equal(t, "reports", cfg.OutputDir)
	require.Equal(t, 1, cfg.Workers)
	require.Equal(t, 30, cfg.RankTopN)
	require.Empty(t, cfg.Weights)
}

func TestParse_Overrides(t *testing.T) {
	raw := []byte(`
input_dir: exports
output_dir: out
workers: 4
rank_top_n: 50
weights:
  profit: 0.5
  drawdown: -0.1
`)

	cfg, err := Parse(raw)
	require.NoError(t, err)

	require.Equal(t, "exports", cfg.InputDir)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 50, cfg.RankTopN)
	require.Equal(t, map[string]float64{"profit": 0.5, "drawdown": -0.1}, cfg.Weights)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("workers: 8\n"))
	require.NoError(t, err)

	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, "optimizations", cfg.InputDir)
	require.Equal(t, "reports", cfg.OutputDir)
	require.Equal(t, 30, cfg.RankTopN)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown_key", "inputs: exports\n"},
		{"unknown_weight", "weights:\n  momentum: 1\n"},
		{"workers_zero", "workers: 0\n"},
		{"workers_not_a_number", "workers: many\n"},
		{"rank_top_n_zero", "rank_top_n: 0\n"},
		{"empty_input_dir", "input_dir: \"\"\n"},
		{"not_yaml", "weights: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestWeightVector_MergesOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte("weights:\n  profit: 0.5\n"))
	require.NoError(t, err)

	w := cfg.WeightVector()
	require.NoError(t, w.Validate())
	require.Equal(t, 0.5, w["profit"])
	require.Equal(t, models.DefaultWeights()["drawdown"], w["drawdown"])
	require.Len(t, w, len(models.DefaultWeights()))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "optilens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Workers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
