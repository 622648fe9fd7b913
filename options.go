package ponder

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/eval/richeval"
	"github.com/discochess/ponder/internal/rules"
	"github.com/discochess/ponder/internal/rules/notnilrules"
	"github.com/discochess/ponder/internal/search"
	"github.com/discochess/ponder/internal/stats"
)

// Option configures an Engine.
type Option interface {
	apply(*options)
}

// options holds the engine configuration.
type options struct {
	rules     rules.Provider
	evaluator eval.Evaluator
	depth     int
	stats     stats.Collector
	logger    *zap.Logger
	rnd       *rand.Rand
	rndSet    bool
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		rules:  notnilrules.New(),
		depth:  search.DepthStandard,
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
}

// defaultEvaluator builds the rich evaluator used when none is injected.
// Unless a random source was set explicitly, jitter is seeded from the clock.
func defaultEvaluator(cfg options) eval.Evaluator {
	rnd := cfg.rnd
	if !cfg.rndSet {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return richeval.New(cfg.rules, rnd)
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithRules sets the rules provider to use.
// If not set, the notnil/chess-backed provider is used.
func WithRules(p rules.Provider) Option {
	return optionFunc(func(o *options) {
		o.rules = p
	})
}

// WithEvaluator sets the static evaluator to use.
// If not set, the rich evaluator (material, piece-square tables, repetition
// avoidance, jitter) is used.
func WithEvaluator(e eval.Evaluator) Option {
	return optionFunc(func(o *options) {
		o.evaluator = e
	})
}

// WithDepth sets the default search depth for BestMove.
// Default is DepthStandard.
func WithDepth(depth int) Option {
	return optionFunc(func(o *options) {
		o.depth = depth
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithRandom sets the random source feeding the default evaluator's
// tie-breaking jitter. Passing nil disables jitter, making the engine fully
// deterministic. Ignored when WithEvaluator is also set.
func WithRandom(rnd *rand.Rand) Option {
	return optionFunc(func(o *options) {
		o.rnd = rnd
		o.rndSet = true
	})
}
