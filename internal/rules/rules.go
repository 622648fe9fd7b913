// Package rules defines the rules-engine capability the search core consumes.
// The core never implements chess legality itself; it depends on a Provider
// for move generation, move application and terminal-state detection.
package rules

import "errors"

// ErrIllegalMove is returned by Apply when the move is not legal for the position.
var ErrIllegalMove = errors.New("rules: illegal move for position")

// ErrForeignPosition is returned when a Position was not created by this provider.
var ErrForeignPosition = errors.New("rules: position not created by this provider")

// Color identifies a side.
type Color int8

const (
	White Color = iota
	Black
)

// Other returns the opposing side.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind enumerates the chess piece kinds.
type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Value returns the base material value of the kind in pawns.
// Kings carry no material value; they are never exchanged.
func (k PieceKind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// uciChar is the promotion suffix used in UCI move notation.
func (k PieceKind) uciChar() string {
	switch k {
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	default:
		return ""
	}
}

// Move is a single half-move: origin and destination squares in algebraic
// coordinates ("e2", "e4"), plus an optional promotion kind. A Move is
// meaningful only relative to the Position it was generated from.
type Move struct {
	From      string
	To        string
	Promotion PieceKind
}

// UCI returns the move in UCI notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	return m.From + m.To + m.Promotion.uciChar()
}

func (m Move) String() string { return m.UCI() }

// Position is an opaque, immutable board snapshot owned by a Provider.
// The core only ever inspects its FEN serialization; all other questions
// go through the Provider that created it.
type Position interface {
	// FEN returns the full Forsyth-Edwards serialization of the position.
	FEN() string
}

// Provider supplies chess rules as an abstract capability: legal move
// enumeration, move application and terminal-state predicates.
//
// LegalMoves order is significant: the search breaks score ties in favor of
// earlier moves, and the immediate-mate short-circuit returns the first
// mating move in this order.
//
// Apply must produce a fresh Position sharing no mutable state with its
// input, so sibling lines explored by the search never observe each other.
//
// The predicate methods assume the Position was created by the same
// provider; handing them a foreign Position is a contract violation.
type Provider interface {
	// FromFEN parses a FEN string into a Position.
	FromFEN(fen string) (Position, error)

	// LegalMoves returns every legal move for the position, in the
	// provider's generation order. An empty slice means the position
	// is terminal.
	LegalMoves(pos Position) ([]Move, error)

	// Apply plays a move and returns the resulting position.
	// Returns ErrIllegalMove if the move is not legal.
	Apply(pos Position, move Move) (Position, error)

	// SAN renders a legal move in standard algebraic notation.
	SAN(pos Position, move Move) (string, error)

	IsCheckmate(pos Position) bool
	IsStalemate(pos Position) bool
	IsDraw(pos Position) bool
	IsGameOver(pos Position) bool
	InCheck(pos Position) bool
	Turn(pos Position) Color
}
