package analysis

import (
	"math"
	"testing"

	"github.com/discochess/ponder/benchmark/simulation"
)

func TestWelchT_DistinctSamples(t *testing.T) {
	sample1 := []float64{10, 11, 9, 10.5, 9.5, 10.2, 9.8, 10.1}
	sample2 := []float64{20, 21, 19, 20.5, 19.5, 20.2, 19.8, 20.1}

	result := WelchT(sample1, sample2)
	if !result.Significant {
		t.Errorf("WelchT() significant = false for clearly distinct samples, p=%v", result.PValue)
	}
	if result.T >= 0 {
		t.Errorf("WelchT() T = %v, want negative (sample1 mean is lower)", result.T)
	}
}

func TestWelchT_IdenticalSamples(t *testing.T) {
	sample := []float64{10, 12, 11, 9, 10, 11.5, 10.5, 9.5}
	result := WelchT(sample, sample)
	if result.Significant {
		t.Errorf("WelchT() significant = true for identical samples, p=%v", result.PValue)
	}
	if result.T != 0 {
		t.Errorf("WelchT() T = %v, want 0", result.T)
	}
}

func TestWelchT_TooSmall(t *testing.T) {
	result := WelchT([]float64{1}, []float64{2})
	if result.Significant {
		t.Error("WelchT() significant = true for single-element samples")
	}
}

func TestComputeEffectSize(t *testing.T) {
	tests := []struct {
		name    string
		sample1 []float64
		sample2 []float64
		want    string
	}{
		{
			name:    "identical samples",
			sample1: []float64{10, 11, 9, 10},
			sample2: []float64{10, 11, 9, 10},
			want:    "negligible",
		},
		{
			name:    "well separated samples",
			sample1: []float64{10, 11, 9, 10},
			sample2: []float64{20, 21, 19, 20},
			want:    "large",
		},
		{
			name:    "too small",
			sample1: []float64{1},
			sample2: []float64{2},
			want:    "undefined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEffectSize(tt.sample1, tt.sample2)
			if got.Interpretation != tt.want {
				t.Errorf("Interpretation = %q (d=%v), want %q", got.Interpretation, got.CohensD, tt.want)
			}
		})
	}
}

func TestBootstrapConfidenceInterval(t *testing.T) {
	sample1 := []float64{10, 11, 9, 10.5, 9.5, 10.2, 9.8, 10.1}
	sample2 := []float64{20, 21, 19, 20.5, 19.5, 20.2, 19.8, 20.1}

	result := BootstrapConfidenceInterval(sample1, sample2, 1000, 0.95, 1)
	if result.MeanDiff >= 0 {
		t.Errorf("MeanDiff = %v, want negative", result.MeanDiff)
	}
	if result.LowerBound > result.UpperBound {
		t.Errorf("bounds inverted: [%v, %v]", result.LowerBound, result.UpperBound)
	}
	// The interval should exclude zero for samples this far apart.
	if result.UpperBound >= 0 {
		t.Errorf("UpperBound = %v, want negative", result.UpperBound)
	}

	// Same seed, same interval.
	again := BootstrapConfidenceInterval(sample1, sample2, 1000, 0.95, 1)
	if result.LowerBound != again.LowerBound || result.UpperBound != again.UpperBound {
		t.Error("bootstrap not reproducible with the same seed")
	}
}

func TestDescribe(t *testing.T) {
	sample := []float64{4, 1, 3, 2, 5}
	d := Describe(sample)
	if d.N != 5 {
		t.Errorf("N = %d, want 5", d.N)
	}
	if d.Mean != 3 {
		t.Errorf("Mean = %v, want 3", d.Mean)
	}
	if d.Min != 1 || d.Max != 5 {
		t.Errorf("Min/Max = %v/%v, want 1/5", d.Min, d.Max)
	}
	if d.Median != 3 {
		t.Errorf("Median = %v, want 3", d.Median)
	}
	if math.Abs(d.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", d.StdDev, math.Sqrt(2.5))
	}
}

func TestDescribe_Empty(t *testing.T) {
	d := Describe(nil)
	if d.N != 0 || d.Mean != 0 {
		t.Errorf("Describe(nil) = %+v, want zero values", d)
	}
}

func TestCompareConfigs(t *testing.T) {
	fast := &simulation.AggregateResult{
		Config:     "fast",
		MoveMillis: []float64{1, 1.2, 0.9, 1.1, 1.0, 0.95, 1.05, 1.15},
	}
	slow := &simulation.AggregateResult{
		Config:     "slow",
		MoveMillis: []float64{5, 5.2, 4.9, 5.1, 5.0, 4.95, 5.05, 5.15},
	}

	comp := CompareConfigs(fast, slow, 200, 0.95, 1)
	if comp.Winner != "fast" {
		t.Errorf("Winner = %q, want fast", comp.Winner)
	}
	if !comp.WinnerConfident {
		t.Error("WinnerConfident = false for clearly separated latencies")
	}
	if comp.Summary() == "" {
		t.Error("Summary() is empty")
	}
}
