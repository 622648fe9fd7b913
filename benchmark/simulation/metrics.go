package simulation

import (
	"sort"
)

// Metrics contains computed metrics from simulation results.
type Metrics struct {
	// Game-length metrics.
	Games       int
	AvgPlies    float64
	MedianPlies float64
	P90Plies    float64
	MinPlies    float64
	MaxPlies    float64

	// Share of games that ended in checkmate.
	DecisiveRate float64

	// Per-move search latency in milliseconds.
	AvgMoveMillis    float64
	MedianMoveMillis float64
	P99MoveMillis    float64
}

// ComputeMetrics computes detailed metrics from an aggregate result.
func ComputeMetrics(result *AggregateResult) *Metrics {
	m := &Metrics{Games: result.Games}

	if len(result.PliesPerGame) > 0 {
		sorted := make([]float64, len(result.PliesPerGame))
		copy(sorted, result.PliesPerGame)
		sort.Float64s(sorted)

		m.AvgPlies = mean(sorted)
		m.MedianPlies = percentile(sorted, 50)
		m.P90Plies = percentile(sorted, 90)
		m.MinPlies = sorted[0]
		m.MaxPlies = sorted[len(sorted)-1]
	}

	if result.Games > 0 {
		m.DecisiveRate = float64(result.Outcomes[OutcomeCheckmate]) / float64(result.Games) * 100
	}

	if len(result.MoveMillis) > 0 {
		sorted := make([]float64, len(result.MoveMillis))
		copy(sorted, result.MoveMillis)
		sort.Float64s(sorted)

		m.AvgMoveMillis = mean(sorted)
		m.MedianMoveMillis = percentile(sorted, 50)
		m.P99MoveMillis = percentile(sorted, 99)
	}

	return m
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
