package analysis

import (
	"fmt"

	"github.com/discochess/ponder/benchmark/simulation"
)

// ConfigComparison contains a full statistical comparison of the per-move
// search latency of two engine configurations.
type ConfigComparison struct {
	Config1         string
	Config2         string
	Stats1          *DescriptiveStats
	Stats2          *DescriptiveStats
	Welch           *WelchTResult
	EffectSize      *EffectSize
	Bootstrap       *BootstrapResult
	Winner          string // Configuration with the lower mean latency, or "tie".
	WinnerConfident bool   // True if the difference is statistically significant.
}

// CompareConfigs statistically compares two configurations' move latencies.
func CompareConfigs(
	result1, result2 *simulation.AggregateResult,
	bootstrapIterations int,
	confidence float64,
	seed int64,
) *ConfigComparison {
	sample1 := result1.MoveMillis
	sample2 := result2.MoveMillis

	welch := WelchT(sample1, sample2)
	stats1 := Describe(sample1)
	stats2 := Describe(sample2)

	var winner string
	var confident bool
	switch {
	case stats1.Mean < stats2.Mean:
		winner = result1.Config
		confident = welch.Significant
	case stats2.Mean < stats1.Mean:
		winner = result2.Config
		confident = welch.Significant
	default:
		winner = "tie"
	}

	return &ConfigComparison{
		Config1:         result1.Config,
		Config2:         result2.Config,
		Stats1:          stats1,
		Stats2:          stats2,
		Welch:           welch,
		EffectSize:      ComputeEffectSize(sample1, sample2),
		Bootstrap:       BootstrapConfidenceInterval(sample1, sample2, bootstrapIterations, confidence, seed),
		Winner:          winner,
		WinnerConfident: confident,
	}
}

// Summary returns a human-readable summary of the comparison.
func (c *ConfigComparison) Summary() string {
	sig := "not statistically significant"
	if c.Welch.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.Welch.PValue)
	}

	return fmt.Sprintf(
		"%s vs %s:\n"+
			"  %s: mean=%.2fms, median=%.2fms, std=%.2f\n"+
			"  %s: mean=%.2fms, median=%.2fms, std=%.2f\n"+
			"  Difference: %.2fms (%.1f%%)\n"+
			"  Effect size: %.2f (%s)\n"+
			"  Result: %s, %s",
		c.Config1, c.Config2,
		c.Config1, c.Stats1.Mean, c.Stats1.Median, c.Stats1.StdDev,
		c.Config2, c.Stats2.Mean, c.Stats2.Median, c.Stats2.StdDev,
		c.Stats1.Mean-c.Stats2.Mean,
		safePctDiff(c.Stats1.Mean, c.Stats2.Mean),
		c.EffectSize.CohensD, c.EffectSize.Interpretation,
		c.Winner, sig,
	)
}

func safePctDiff(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}
