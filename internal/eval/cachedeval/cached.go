// Package cachedeval wraps an Evaluator with an LRU cache keyed by FEN.
//
// Caching is only sound for path-independent scoring, so any call carrying a
// non-empty repetition path bypasses the cache. Analysis workloads, which
// re-score every position of a game with an empty path, are the intended
// consumer. Wrapping a jittered evaluator freezes the jitter per position;
// pair the cache with a deterministic evaluator.
package cachedeval

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/rules"
	"github.com/discochess/ponder/internal/stats"
)

// Compile-time check that Evaluator implements eval.Evaluator.
var _ eval.Evaluator = (*Evaluator)(nil)

// Evaluator caches scores from an underlying evaluator.
type Evaluator struct {
	inner eval.Evaluator
	cache *lru.Cache[string, float64]
	stats stats.Collector
}

// New creates a caching evaluator with the given capacity.
// A nil collector disables metrics.
func New(inner eval.Evaluator, capacity int, collector stats.Collector) (*Evaluator, error) {
	cache, err := lru.New[string, float64](capacity)
	if err != nil {
		return nil, err
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Evaluator{inner: inner, cache: cache, stats: collector}, nil
}

// Evaluate returns the cached score for the position, computing and caching
// it on a miss. Calls with a non-empty path go straight to the inner
// evaluator.
func (e *Evaluator) Evaluate(pos rules.Position, path eval.Path) (float64, error) {
	if path.Len() > 0 {
		return e.inner.Evaluate(pos, path)
	}

	key := pos.FEN()
	if score, ok := e.cache.Get(key); ok {
		e.stats.IncCounter(stats.MetricEvalCacheHits, 1)
		return score, nil
	}

	score, err := e.inner.Evaluate(pos, path)
	if err != nil {
		return 0, err
	}

	e.stats.IncCounter(stats.MetricEvalCacheMisses, 1)
	e.cache.Add(key, score)
	e.stats.SetGauge(stats.MetricEvalCacheSize, int64(e.cache.Len()))
	return score, nil
}

// Len returns the number of cached positions.
func (e *Evaluator) Len() int { return e.cache.Len() }
