// Package analysis provides statistical analysis for benchmark results.
package analysis

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTResult contains the result of Welch's unequal-variance t-test.
type WelchTResult struct {
	T           float64 // t statistic.
	DF          float64 // Welch-Satterthwaite degrees of freedom.
	PValue      float64 // Two-tailed p-value.
	Significant bool    // True if p < 0.05.
}

// WelchT tests whether two samples have different means without assuming
// equal variances.
func WelchT(sample1, sample2 []float64) *WelchTResult {
	n1 := float64(len(sample1))
	n2 := float64(len(sample2))
	if n1 < 2 || n2 < 2 {
		return &WelchTResult{PValue: 1}
	}

	mean1 := stat.Mean(sample1, nil)
	mean2 := stat.Mean(sample2, nil)
	var1 := stat.Variance(sample1, nil)
	var2 := stat.Variance(sample2, nil)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return &WelchTResult{PValue: 1}
	}

	t := (mean1 - mean2) / se

	// Welch-Satterthwaite approximation of the degrees of freedom.
	num := math.Pow(var1/n1+var2/n2, 2)
	den := math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1)
	df := num / den

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	return &WelchTResult{
		T:           t,
		DF:          df,
		PValue:      p,
		Significant: p < 0.05,
	}
}

// EffectSize contains effect size metrics.
type EffectSize struct {
	CohensD        float64 // Cohen's d: (mean1 - mean2) / pooled_std.
	Interpretation string  // "negligible", "small", "medium", "large".
}

// ComputeEffectSize computes Cohen's d effect size.
func ComputeEffectSize(sample1, sample2 []float64) *EffectSize {
	n1 := float64(len(sample1))
	n2 := float64(len(sample2))
	if n1 < 2 || n2 < 2 {
		return &EffectSize{Interpretation: "undefined"}
	}

	mean1 := stat.Mean(sample1, nil)
	mean2 := stat.Mean(sample2, nil)
	var1 := stat.Variance(sample1, nil)
	var2 := stat.Variance(sample2, nil)

	pooled := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))

	var d float64
	if pooled > 0 {
		d = (mean1 - mean2) / pooled
	}

	return &EffectSize{
		CohensD:        d,
		Interpretation: interpretCohensD(math.Abs(d)),
	}
}

func interpretCohensD(d float64) string {
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// BootstrapResult contains a bootstrap confidence interval for the
// difference of means.
type BootstrapResult struct {
	MeanDiff   float64
	LowerBound float64
	UpperBound float64
	Confidence float64 // e.g. 0.95 for a 95% CI.
}

// BootstrapConfidenceInterval estimates a confidence interval for the mean
// difference by resampling with replacement. The seed makes runs
// reproducible.
func BootstrapConfidenceInterval(sample1, sample2 []float64, iterations int, confidence float64, seed int64) *BootstrapResult {
	if len(sample1) == 0 || len(sample2) == 0 || iterations <= 0 {
		return &BootstrapResult{Confidence: confidence}
	}

	rnd := rand.New(rand.NewSource(seed))
	actualDiff := stat.Mean(sample1, nil) - stat.Mean(sample2, nil)

	diffs := make([]float64, iterations)
	for i := range diffs {
		diffs[i] = resampleMean(rnd, sample1) - resampleMean(rnd, sample2)
	}
	sort.Float64s(diffs)

	alpha := 1 - confidence
	lower := int(alpha / 2 * float64(iterations))
	upper := int((1 - alpha/2) * float64(iterations))
	if upper >= iterations {
		upper = iterations - 1
	}

	return &BootstrapResult{
		MeanDiff:   actualDiff,
		LowerBound: diffs[lower],
		UpperBound: diffs[upper],
		Confidence: confidence,
	}
}

func resampleMean(rnd *rand.Rand, sample []float64) float64 {
	var sum float64
	for range sample {
		sum += sample[rnd.Intn(len(sample))]
	}
	return sum / float64(len(sample))
}

// DescriptiveStats contains basic descriptive statistics.
type DescriptiveStats struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
}

// Describe computes descriptive statistics for a sample.
func Describe(sample []float64) *DescriptiveStats {
	if len(sample) == 0 {
		return &DescriptiveStats{}
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	d := &DescriptiveStats{
		N:      len(sample),
		Mean:   stat.Mean(sample, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(sample) > 1 {
		d.StdDev = stat.StdDev(sample, nil)
	}
	return d
}
