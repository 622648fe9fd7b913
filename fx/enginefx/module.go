// Package enginefx provides an fx module for a ready-to-use ponder engine.
package enginefx

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/ponder"
	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/eval/cachedeval"
	"github.com/discochess/ponder/internal/eval/richeval"
	"github.com/discochess/ponder/internal/eval/simpleeval"
	"github.com/discochess/ponder/internal/rules"
	"github.com/discochess/ponder/internal/rules/notnilrules"
	"github.com/discochess/ponder/internal/stats"
	"github.com/discochess/ponder/internal/stats/logger"
)

// Config holds configuration for the engine.
type Config struct {
	// Depth is the default search depth. Zero selects the standard preset.
	Depth int

	// Evaluator selects the static evaluator: "rich" (default) or "simple".
	Evaluator string

	// CacheSize is the number of static evaluations to cache in memory.
	// Zero disables the cache.
	CacheSize int

	// Seed seeds the evaluator's tie-breaking jitter. Zero keeps the
	// clock-seeded default; set DisableJitter for determinism instead.
	Seed int64

	// DisableJitter makes the engine fully deterministic.
	DisableJitter bool
}

// Module provides a *ponder.Engine.
// Requires a *zap.Logger and a Config to be provided.
var Module = fx.Module("ponderengine",
	fx.Provide(
		newStatsCollector,
		newEngine,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("ponder.stats"))
}

// Params holds dependencies for creating the engine.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided engine.
type Result struct {
	fx.Out

	Engine *ponder.Engine
}

func newEngine(p Params) (Result, error) {
	provider := notnilrules.New()

	evaluator, err := buildEvaluator(p.Config, provider)
	if err != nil {
		return Result{}, err
	}
	if p.Config.CacheSize > 0 {
		evaluator, err = cachedeval.New(evaluator, p.Config.CacheSize, p.Collector)
		if err != nil {
			return Result{}, err
		}
	}

	depth := p.Config.Depth
	if depth <= 0 {
		depth = ponder.DepthStandard
	}

	engine, err := ponder.New(
		ponder.WithRules(provider),
		ponder.WithEvaluator(evaluator),
		ponder.WithDepth(depth),
		ponder.WithStats(p.Collector),
		ponder.WithLogger(p.Logger.Named("ponder")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return engine.Close()
		},
	})

	return Result{Engine: engine}, nil
}

func buildEvaluator(cfg Config, provider rules.Provider) (eval.Evaluator, error) {
	switch cfg.Evaluator {
	case "simple":
		return simpleeval.New(provider), nil
	case "rich", "":
		var rnd *rand.Rand
		if !cfg.DisableJitter {
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rnd = rand.New(rand.NewSource(seed))
		}
		return richeval.New(provider, rnd), nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", cfg.Evaluator)
	}
}
