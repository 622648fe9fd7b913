// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Search metrics.
	MetricSearches      = "ponder_searches_total"
	MetricNodes         = "ponder_nodes_total"
	MetricEvals         = "ponder_evals_total"
	MetricCutoffs       = "ponder_cutoffs_total"
	MetricMateShortcuts = "ponder_mate_shortcuts_total"
	MetricSearchSeconds = "ponder_search_seconds"

	// Evaluation cache metrics.
	MetricEvalCacheHits   = "ponder_eval_cache_hits_total"
	MetricEvalCacheMisses = "ponder_eval_cache_misses_total"
	MetricEvalCacheSize   = "ponder_eval_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
