// Package richeval implements the full-fidelity static evaluator: material,
// piece-square tables, repetition avoidance and optional tie-breaking jitter.
package richeval

import (
	"fmt"
	"math/rand"

	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/fen"
	"github.com/discochess/ponder/internal/rules"
)

// Compile-time check that Evaluator implements eval.Evaluator.
var _ eval.Evaluator = (*Evaluator)(nil)

// jitterAmplitude bounds the symmetric random tie-break term.
const jitterAmplitude = 0.05

// Evaluator scores positions from Black's perspective: positive favors
// Black, negative favors White.
//
// The evaluation is intentionally shallow. Material and square tables are
// the only positional terms; there is no king safety or mobility model.
type Evaluator struct {
	rules rules.Provider
	rnd   *rand.Rand
}

// New creates a rich evaluator. rnd feeds the tie-breaking jitter; a nil rnd
// disables jitter and makes the evaluator fully deterministic.
func New(p rules.Provider, rnd *rand.Rand) *Evaluator {
	return &Evaluator{rules: p, rnd: rnd}
}

// Evaluate scores the position. Terminal positions score ±MateScore (side to
// move is the loser) or 0 for draws. A piece placement recurring twice or
// more on the path scores ±RepetitionPenalty before any material is counted.
func (e *Evaluator) Evaluate(pos rules.Position, path eval.Path) (float64, error) {
	turn := e.rules.Turn(pos)

	if e.rules.IsCheckmate(pos) {
		return mated(turn), nil
	}
	if e.rules.IsStalemate(pos) || e.rules.IsDraw(pos) {
		return 0, nil
	}

	fenStr := pos.FEN()
	if path.Count(fen.PlacementKey(fenStr)) >= 2 {
		if turn == rules.White {
			return eval.RepetitionPenalty, nil
		}
		return -eval.RepetitionPenalty, nil
	}

	pieces, err := fen.Pieces(fenStr)
	if err != nil {
		return 0, fmt.Errorf("reading position %q: %w", fenStr, err)
	}

	var score float64
	for _, p := range pieces {
		worth := materialValue(p.Kind) + bonus(p)
		if p.White {
			score -= worth
		} else {
			score += worth
		}
	}

	if e.rnd != nil {
		score += e.rnd.Float64()*2*jitterAmplitude - jitterAmplitude
	}
	return score, nil
}

// bonus looks up the positional table value for a placed piece. The tables
// are White-oriented; Black mirrors the rank index.
func bonus(p fen.Piece) float64 {
	t := table(p.Kind)
	if t == nil {
		return 0
	}
	if p.White {
		return t[7-p.Rank][p.File]
	}
	return t[p.Rank][p.File]
}

// mated returns the terminal score when the side to move is checkmated.
// White mated favors Black (positive) and vice versa.
func mated(turn rules.Color) float64 {
	if turn == rules.White {
		return eval.MateScore
	}
	return -eval.MateScore
}
