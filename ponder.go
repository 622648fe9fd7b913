// Package ponder provides a fixed-depth chess move-search engine and a
// post-game move-quality analyzer.
//
// Example usage:
//
//	engine, err := ponder.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	move, err := engine.BestMove(ctx, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Best move: %s\n", move.SAN)
package ponder

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/ponder/internal/rules"
	"github.com/discochess/ponder/internal/search"
	"github.com/discochess/ponder/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the engine has been closed.
	ErrClosed = errors.New("ponder: engine closed")

	// ErrNoRules indicates no rules provider was configured.
	ErrNoRules = errors.New("ponder: no rules provider")
)

// Search depth presets. Quick trades strength for latency; Strong is the
// deepest preset that stays interactive without iterative deepening.
const (
	DepthQuick    = search.DepthQuick
	DepthStandard = search.DepthStandard
	DepthStrong   = search.DepthStrong
)

// Engine selects moves by bounded adversarial search over a rules provider.
// An Engine is safe for concurrent use by multiple goroutines; every search
// owns its own repetition history.
type Engine struct {
	rules    rules.Provider
	searcher *search.Searcher
	depth    int
	stats    stats.Collector
	logger   *zap.Logger
	closed   atomic.Bool
}

// New creates a new Engine with the given options.
// If no options are provided, sensible defaults are used: notnil/chess
// rules, the rich evaluator with time-seeded jitter, and standard depth.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.rules == nil {
		return nil, ErrNoRules
	}
	evaluator := cfg.evaluator
	if evaluator == nil {
		evaluator = defaultEvaluator(cfg)
	}

	e := &Engine{
		rules:    cfg.rules,
		searcher: search.New(cfg.rules, evaluator, cfg.stats, cfg.logger.Named("search")),
		depth:    cfg.depth,
		stats:    cfg.stats,
		logger:   cfg.logger,
	}

	e.logger.Debug("engine initialized",
		zap.Int("depth", e.depth),
		zap.Bool("jitter", cfg.evaluator == nil && cfg.rnd != nil),
	)

	return e, nil
}

// BestMove returns the best move for the side to move in the FEN position,
// searching at the engine's configured depth. It returns (nil, nil) when
// the position has no legal moves.
func (e *Engine) BestMove(ctx context.Context, fen string) (*Move, error) {
	return e.BestMoveAtDepth(ctx, fen, e.depth)
}

// QuickMove searches at the shallow preset depth.
func (e *Engine) QuickMove(ctx context.Context, fen string) (*Move, error) {
	return e.BestMoveAtDepth(ctx, fen, DepthQuick)
}

// StrongMove searches at the deep preset depth.
func (e *Engine) StrongMove(ctx context.Context, fen string) (*Move, error) {
	return e.BestMoveAtDepth(ctx, fen, DepthStrong)
}

// BestMoveAtDepth searches the position to an explicit depth.
func (e *Engine) BestMoveAtDepth(ctx context.Context, fen string, depth int) (*Move, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	pos, err := e.rules.FromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parsing position: %w", err)
	}

	move, score, err := e.searcher.BestMove(ctx, pos, depth)
	if err != nil {
		return nil, fmt.Errorf("searching at depth %d: %w", depth, err)
	}
	if move == nil {
		// Terminal position: an empty result, not a failure.
		return nil, nil
	}

	return e.publicMove(pos, *move, score)
}

// Evaluate statically scores the FEN position with the engine's evaluator.
// Positive favors Black, negative favors White.
func (e *Engine) Evaluate(ctx context.Context, fen string) (float64, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pos, err := e.rules.FromFEN(fen)
	if err != nil {
		return 0, fmt.Errorf("parsing position: %w", err)
	}
	score, err := e.searcher.Evaluate(pos)
	if err != nil {
		return 0, fmt.Errorf("evaluating position: %w", err)
	}
	return score, nil
}

// Close releases the engine. After Close, the engine should not be used.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return nil
}

// Rules returns the rules provider used by this engine.
func (e *Engine) Rules() rules.Provider {
	return e.rules
}

// publicMove converts an internal rules.Move into the public Move type.
func (e *Engine) publicMove(pos rules.Position, m rules.Move, score float64) (*Move, error) {
	san, err := e.rules.SAN(pos, m)
	if err != nil {
		return nil, fmt.Errorf("notating %s: %w", m.UCI(), err)
	}

	promo := ""
	if m.Promotion != rules.NoKind {
		uci := m.UCI()
		promo = uci[len(uci)-1:]
	}

	return &Move{
		From:      m.From,
		To:        m.To,
		Promotion: promo,
		UCI:       m.UCI(),
		SAN:       san,
		Score:     score,
	}, nil
}
