// Package notnilrules adapts github.com/notnil/chess to the rules.Provider
// capability. It is the default rules engine for the module.
package notnilrules

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/discochess/ponder/internal/fen"
	"github.com/discochess/ponder/internal/rules"
)

// Compile-time check that Provider implements rules.Provider.
var _ rules.Provider = (*Provider)(nil)

// Provider implements rules.Provider on top of notnil/chess.
// It is stateless and safe for concurrent use.
type Provider struct{}

// New creates a new notnil/chess-backed provider.
func New() *Provider {
	return &Provider{}
}

// position wraps a *chess.Position. chess.Position values are immutable;
// Update returns a fresh copy, which is exactly the ownership model the
// search recursion depends on.
type position struct {
	pos *chess.Position
}

func (p *position) FEN() string { return p.pos.String() }

// FromFEN parses a FEN string into a Position.
func (p *Provider) FromFEN(fenStr string) (rules.Position, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(fenStr)); err != nil {
		return nil, fmt.Errorf("parsing FEN %q: %w", fenStr, err)
	}
	return &position{pos: pos}, nil
}

// LegalMoves returns the legal moves in notnil/chess generation order.
func (p *Provider) LegalMoves(pos rules.Position) ([]rules.Move, error) {
	np, err := unwrap(pos)
	if err != nil {
		return nil, err
	}
	valid := np.ValidMoves()
	moves := make([]rules.Move, len(valid))
	for i, m := range valid {
		moves[i] = fromChessMove(m)
	}
	return moves, nil
}

// Apply plays a move and returns the resulting position.
func (p *Provider) Apply(pos rules.Position, move rules.Move) (rules.Position, error) {
	np, err := unwrap(pos)
	if err != nil {
		return nil, err
	}
	cm, ok := matchMove(np, move)
	if !ok {
		return nil, fmt.Errorf("%w: %s", rules.ErrIllegalMove, move.UCI())
	}
	return &position{pos: np.Update(cm)}, nil
}

// SAN renders a legal move in standard algebraic notation.
func (p *Provider) SAN(pos rules.Position, move rules.Move) (string, error) {
	np, err := unwrap(pos)
	if err != nil {
		return "", err
	}
	cm, ok := matchMove(np, move)
	if !ok {
		return "", fmt.Errorf("%w: %s", rules.ErrIllegalMove, move.UCI())
	}
	return chess.AlgebraicNotation{}.Encode(np, cm), nil
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Provider) IsCheckmate(pos rules.Position) bool {
	return mustUnwrap(pos).Status() == chess.Checkmate
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Provider) IsStalemate(pos rules.Position) bool {
	return mustUnwrap(pos).Status() == chess.Stalemate
}

// IsDraw reports position-level draws: the fifty-move rule and dead
// material. Repetition draws are a game property, not a position property,
// and are out of reach here.
func (p *Provider) IsDraw(pos rules.Position) bool {
	np := mustUnwrap(pos)
	if np.Status() == chess.Stalemate {
		return true
	}
	fenStr := np.String()
	if fen.HalfMoveClock(fenStr) >= 100 {
		return true
	}
	return insufficientMaterial(fenStr)
}

// IsGameOver reports whether the position is terminal.
func (p *Provider) IsGameOver(pos rules.Position) bool {
	np := mustUnwrap(pos)
	if np.Status() != chess.NoMethod {
		return true
	}
	return p.IsDraw(pos)
}

// InCheck reports whether the side to move is in check.
// notnil/chess only answers this indirectly, so the check test hands the
// move to the opponent and asks whether any reply captures our king.
func (p *Provider) InCheck(pos rules.Position) bool {
	np := mustUnwrap(pos)
	if np.Status() == chess.Checkmate {
		return true
	}

	kingSq := chess.NoSquare
	us := np.Turn()
	for sq, piece := range np.Board().SquareMap() {
		if piece.Type() == chess.King && piece.Color() == us {
			kingSq = sq
			break
		}
	}
	if kingSq == chess.NoSquare {
		return false
	}

	flipped, err := p.FromFEN(flipTurn(np.String()))
	if err != nil {
		return false
	}
	for _, m := range mustUnwrap(flipped).ValidMoves() {
		if m.S2() == kingSq {
			return true
		}
	}
	return false
}

// Turn returns the side to move.
func (p *Provider) Turn(pos rules.Position) rules.Color {
	if mustUnwrap(pos).Turn() == chess.White {
		return rules.White
	}
	return rules.Black
}

func unwrap(pos rules.Position) (*chess.Position, error) {
	np, ok := pos.(*position)
	if !ok {
		return nil, rules.ErrForeignPosition
	}
	return np.pos, nil
}

// mustUnwrap is for the predicate methods, where a foreign position is a
// caller contract violation rather than a recoverable condition.
func mustUnwrap(pos rules.Position) *chess.Position {
	np, ok := pos.(*position)
	if !ok {
		panic(rules.ErrForeignPosition)
	}
	return np.pos
}

// matchMove finds the generated move matching the request. The generated
// move carries check and capture tags that Position.Status and SAN encoding
// depend on, so callers must hand that move, not a freshly decoded one, to
// Update and Encode.
func matchMove(pos *chess.Position, move rules.Move) (*chess.Move, bool) {
	for _, m := range pos.ValidMoves() {
		if m.S1().String() == move.From && m.S2().String() == move.To &&
			fromChessPieceType(m.Promo()) == move.Promotion {
			return m, true
		}
	}
	return nil, false
}

func fromChessMove(m *chess.Move) rules.Move {
	return rules.Move{
		From:      m.S1().String(),
		To:        m.S2().String(),
		Promotion: fromChessPieceType(m.Promo()),
	}
}

func fromChessPieceType(t chess.PieceType) rules.PieceKind {
	switch t {
	case chess.Pawn:
		return rules.Pawn
	case chess.Knight:
		return rules.Knight
	case chess.Bishop:
		return rules.Bishop
	case chess.Rook:
		return rules.Rook
	case chess.Queen:
		return rules.Queen
	case chess.King:
		return rules.King
	default:
		return rules.NoKind
	}
}

// flipTurn hands the move to the other side and clears the en passant
// square, which is only meaningful for the original mover.
func flipTurn(fenStr string) string {
	norm, err := fen.Normalize(fenStr)
	if err != nil {
		return fenStr
	}
	parts := []byte(norm)
	// Normalize guarantees "<placement> <w|b> <castling> <ep>".
	i := len(fen.PlacementKey(norm)) + 1
	if parts[i] == 'w' {
		parts[i] = 'b'
	} else {
		parts[i] = 'w'
	}
	flipped := string(parts)
	// Drop the en passant field (last of the four) and reattach counters.
	fields := splitFields(flipped)
	return fields[0] + " " + fields[1] + " " + fields[2] + " - 0 1"
}

func splitFields(s string) []string {
	fields := make([]string, 0, 4)
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}
	return fields
}

// insufficientMaterial reports dead positions: both sides reduced to a bare
// king or king plus a single minor piece.
func insufficientMaterial(fenStr string) bool {
	m, err := fen.ParseMaterial(fenStr)
	if err != nil {
		return false
	}
	if m.WhitePawns+m.BlackPawns+m.WhiteRooks+m.BlackRooks+m.WhiteQueens+m.BlackQueens > 0 {
		return false
	}
	return m.WhiteKnights+m.WhiteBishops <= 1 && m.BlackKnights+m.BlackBishops <= 1
}
