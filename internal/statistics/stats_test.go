package statistics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"multiple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"all_same", []float64{7, 7, 7}, 7.0},
		{"negative", []float64{-2, 0, 2}, 0},
		{"skips_nan", []float64{5, math.NaN(), 7}, 6.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Mean(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestMean_Empty(t *testing.T) {
	if got := Mean(nil); !math.IsNaN(got) {
		t.Errorf("Mean(nil) = %f, want NaN", got)
	}
	if got := Mean([]float64{math.NaN()}); !math.IsNaN(got) {
		t.Errorf("Mean([NaN]) = %f, want NaN", got)
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		// sample deviation: sqrt(sum((v-mean)^2)/(n-1))
		{"two_values", []float64{4, 6}, math.Sqrt(2)},
		{"simple", []float64{2, 4, 4, 4, 5, 5, 7, 9}, math.Sqrt(32.0 / 7.0)},
		{"skips_nan", []float64{5, math.NaN(), 7}, math.Sqrt(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StdDev(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("StdDev(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestStdDev_Undefined(t *testing.T) {
	if got := StdDev([]float64{5}); !math.IsNaN(got) {
		t.Errorf("StdDev of a single value = %f, want NaN", got)
	}
	if got := StdDev(nil); !math.IsNaN(got) {
		t.Errorf("StdDev(nil) = %f, want NaN", got)
	}
}

func TestZScores_MeanZeroUnitDeviation(t *testing.T) {
	input := []float64{10, 20, 30, 40, 50}
	z := ZScores(input)

	if !approxEqual(Mean(z), 0) {
		t.Errorf("standardized mean = %f, want 0", Mean(z))
	}
	if !approxEqual(StdDev(z), 1) {
		t.Errorf("standardized deviation = %f, want 1", StdDev(z))
	}
}

func TestZScores_ConstantColumn(t *testing.T) {
	z := ZScores([]float64{3, 3, 3, 3})
	for i, v := range z {
		if v != 0 {
			t.Errorf("z[%d] = %f, want 0 for a constant column", i, v)
		}
	}
}

func TestZScores_ZeroDeviationZeroesMissingToo(t *testing.T) {
	z := ZScores([]float64{3, math.NaN(), 3})
	for i, v := range z {
		if v != 0 {
			t.Errorf("z[%d] = %f, want 0 when deviation is zero", i, v)
		}
	}
}

func TestZScores_MissingStaysMissing(t *testing.T) {
	z := ZScores([]float64{5, math.NaN(), 7})
	if !math.IsNaN(z[1]) {
		t.Errorf("z[1] = %f, want NaN for a missing observation", z[1])
	}
	if !approxEqual(z[0], -math.Sqrt(2)/2) {
		t.Errorf("z[0] = %f, want %f", z[0], -math.Sqrt(2)/2)
	}
	if !approxEqual(z[2], math.Sqrt(2)/2) {
		t.Errorf("z[2] = %f, want %f", z[2], math.Sqrt(2)/2)
	}
}

func TestZScores_LengthPreserved(t *testing.T) {
	input := []float64{1, math.NaN(), 2, math.NaN()}
	if got := len(ZScores(input)); got != len(input) {
		t.Errorf("len(ZScores) = %d, want %d", got, len(input))
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		q      float64
		expect float64
	}{
		{"median", []float64{1, 2, 3, 4, 5}, 0.5, 3},
		{"q25_interpolated", []float64{10, 20, 30}, 0.25, 15},
		{"q75_interpolated", []float64{10, 20, 30}, 0.75, 25},
		{"min", []float64{10, 20, 30}, 0, 10},
		{"max", []float64{10, 20, 30}, 1, 30},
		{"single", []float64{42}, 0.25, 42},
		{"unsorted_input", []float64{30, 10, 20}, 0.5, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.input, tt.q)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Percentile(%v, %v) = %f, want %f", tt.input, tt.q, got, tt.expect)
			}
		})
	}
}

func TestPercentile_Empty(t *testing.T) {
	if got := Percentile(nil, 0.5); !math.IsNaN(got) {
		t.Errorf("Percentile(nil) = %f, want NaN", got)
	}
}
