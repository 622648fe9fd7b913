// Package simpleeval implements the low-fidelity static evaluator: bare
// material counts, no positional tables, no repetition term, no jitter.
// It is fully deterministic, which makes it the natural choice for
// re-scoring finished games.
package simpleeval

import (
	"fmt"

	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/fen"
	"github.com/discochess/ponder/internal/rules"
)

// Compile-time check that Evaluator implements eval.Evaluator.
var _ eval.Evaluator = (*Evaluator)(nil)

// Evaluator scores positions from Black's perspective by material alone.
type Evaluator struct {
	rules rules.Provider
}

// New creates a material-only evaluator.
func New(p rules.Provider) *Evaluator {
	return &Evaluator{rules: p}
}

// Evaluate returns the material balance in centipawns. Terminal positions
// still score ±MateScore and 0 so the evaluator stays usable as a search
// leaf heuristic. The repetition path is ignored.
func (e *Evaluator) Evaluate(pos rules.Position, _ eval.Path) (float64, error) {
	if e.rules.IsCheckmate(pos) {
		if e.rules.Turn(pos) == rules.White {
			return eval.MateScore, nil
		}
		return -eval.MateScore, nil
	}
	if e.rules.IsStalemate(pos) || e.rules.IsDraw(pos) {
		return 0, nil
	}

	fenStr := pos.FEN()
	m, err := fen.ParseMaterial(fenStr)
	if err != nil {
		return 0, fmt.Errorf("reading position %q: %w", fenStr, err)
	}

	white := m.WhitePawns*rules.Pawn.Value() +
		m.WhiteKnights*rules.Knight.Value() +
		m.WhiteBishops*rules.Bishop.Value() +
		m.WhiteRooks*rules.Rook.Value() +
		m.WhiteQueens*rules.Queen.Value()
	black := m.BlackPawns*rules.Pawn.Value() +
		m.BlackKnights*rules.Knight.Value() +
		m.BlackBishops*rules.Bishop.Value() +
		m.BlackRooks*rules.Rook.Value() +
		m.BlackQueens*rules.Queen.Value()

	return float64((black - white) * 100), nil
}
