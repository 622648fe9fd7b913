// Package search implements depth-bounded adversarial move search: minimax
// with alpha-beta pruning over positions supplied by a rules.Provider,
// scored at the leaves by an eval.Evaluator.
package search

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/fen"
	"github.com/discochess/ponder/internal/rules"
	"github.com/discochess/ponder/internal/stats"
)

// Depth presets. These are configuration, not separate algorithms.
const (
	DepthQuick    = 2
	DepthStandard = 3
	DepthStrong   = 4
)

// Searcher runs fixed-depth searches. It is stateless across calls; each
// BestMove invocation owns its repetition path, so a Searcher is safe for
// concurrent use as long as its provider and evaluator are.
type Searcher struct {
	rules  rules.Provider
	eval   eval.Evaluator
	stats  stats.Collector
	logger *zap.Logger
}

// New creates a Searcher. A nil collector or logger is replaced with a no-op.
func New(p rules.Provider, e eval.Evaluator, collector stats.Collector, logger *zap.Logger) *Searcher {
	if collector == nil {
		collector = stats.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{rules: p, eval: e, stats: collector, logger: logger}
}

// BestMove returns the best move for the side to move, searching the game
// tree to the given depth, along with its score from the mover's
// perspective. It returns (nil, 0, nil) when the position has no legal
// moves. The context aborts the search when cancelled.
//
// If any legal move mates immediately, the first such move in generation
// order is returned without deeper search. Otherwise every root move is
// searched in full; score ties are broken in favor of earlier moves.
func (s *Searcher) BestMove(ctx context.Context, pos rules.Position, depth int) (*rules.Move, float64, error) {
	s.stats.IncCounter(stats.MetricSearches, 1)
	start := time.Now()
	defer func() {
		s.stats.ObserveHistogram(stats.MetricSearchSeconds, time.Since(start).Seconds())
	}()

	moves, err := s.rules.LegalMoves(pos)
	if err != nil {
		return nil, 0, fmt.Errorf("enumerating moves: %w", err)
	}
	if len(moves) == 0 {
		return nil, 0, nil
	}

	// Apply every root move once; the children double as the
	// immediate-mate scan and the root search frontier.
	children := make([]rules.Position, len(moves))
	for i, m := range moves {
		child, err := s.rules.Apply(pos, m)
		if err != nil {
			return nil, 0, fmt.Errorf("applying %s: %w", m.UCI(), err)
		}
		if s.rules.IsCheckmate(child) {
			s.stats.IncCounter(stats.MetricMateShortcuts, 1)
			s.logger.Debug("immediate mate found",
				zap.String("move", m.UCI()),
				zap.Int("candidate", i),
			)
			return &moves[i], eval.MateScore - 1, nil
		}
		children[i] = child
	}

	r := &run{s: s, ctx: ctx, rootSign: sign(s.rules.Turn(pos))}
	path := eval.Path{}.Push(fen.PlacementKey(pos.FEN()))

	var best *rules.Move
	bestScore := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)

	for i := range moves {
		childPath := path.Push(fen.PlacementKey(children[i].FEN()))
		score, err := r.search(children[i], depth-1, alpha, beta, false, 1, childPath)
		if err != nil {
			return nil, 0, err
		}
		// Strictly greater: the first move in generation order wins ties.
		if score > bestScore {
			bestScore = score
			best = &moves[i]
		}
		// Alpha tightens after every child, but the root never prunes.
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	s.logger.Debug("search complete",
		zap.String("move", best.UCI()),
		zap.Float64("score", bestScore),
		zap.Int("depth", depth),
		zap.Duration("elapsed", time.Since(start)),
	)
	return best, bestScore, nil
}

// Evaluate statically scores a position with the configured evaluator and
// an empty repetition path.
func (s *Searcher) Evaluate(pos rules.Position) (float64, error) {
	s.stats.IncCounter(stats.MetricEvals, 1)
	return s.eval.Evaluate(pos, eval.Path{})
}

// run holds state for one BestMove invocation.
type run struct {
	s        *Searcher
	ctx      context.Context
	rootSign float64
}

// search is the recursive minimax step. Scores are from the root mover's
// perspective: the maximizing flag alternates with ply parity, and leaf
// evaluations are reoriented by rootSign.
func (r *run) search(pos rules.Position, depthRemaining int, alpha, beta float64, maximizing bool, ply int, path eval.Path) (float64, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	r.s.stats.IncCounter(stats.MetricNodes, 1)

	if r.s.rules.IsCheckmate(pos) {
		// Mates nearer the root score strictly higher in magnitude,
		// so the engine prefers the fastest mate.
		if maximizing {
			return -(eval.MateScore - float64(ply)), nil
		}
		return eval.MateScore - float64(ply), nil
	}

	if depthRemaining <= 0 || r.s.rules.IsGameOver(pos) {
		return r.evaluate(pos, path)
	}

	moves, err := r.s.rules.LegalMoves(pos)
	if err != nil {
		return 0, fmt.Errorf("enumerating moves: %w", err)
	}
	if len(moves) == 0 {
		return r.evaluate(pos, path)
	}

	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}

	for _, m := range moves {
		child, err := r.s.rules.Apply(pos, m)
		if err != nil {
			return 0, fmt.Errorf("applying %s: %w", m.UCI(), err)
		}
		childPath := path.Push(fen.PlacementKey(child.FEN()))
		score, err := r.search(child, depthRemaining-1, alpha, beta, !maximizing, ply+1, childPath)
		if err != nil {
			return 0, err
		}

		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			r.s.stats.IncCounter(stats.MetricCutoffs, 1)
			break
		}
	}
	return best, nil
}

func (r *run) evaluate(pos rules.Position, path eval.Path) (float64, error) {
	r.s.stats.IncCounter(stats.MetricEvals, 1)
	score, err := r.s.eval.Evaluate(pos, path)
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", pos.FEN(), err)
	}
	return r.rootSign * score, nil
}

// sign maps the root mover to the evaluator's fixed perspective: the
// evaluator favors Black positively, so a White root negates.
func sign(turn rules.Color) float64 {
	if turn == rules.Black {
		return 1
	}
	return -1
}
