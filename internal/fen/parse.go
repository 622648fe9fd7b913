// Package fen provides FEN (Forsyth-Edwards Notation) parsing utilities.
package fen

import (
	"errors"
	"strings"
)

// ErrInvalidFEN indicates the FEN string is malformed.
var ErrInvalidFEN = errors.New("invalid FEN notation")

// Material represents the piece counts for both sides.
type Material struct {
	WhitePawns   int
	WhiteKnights int
	WhiteBishops int
	WhiteRooks   int
	WhiteQueens  int

	BlackPawns   int
	BlackKnights int
	BlackBishops int
	BlackRooks   int
	BlackQueens  int
}

// Piece is a single occupied square extracted from the piece placement field.
// Kind is the lowercase FEN letter ('p', 'n', 'b', 'r', 'q' or 'k').
// File and Rank are zero-based: File 0 is the a-file, Rank 0 is rank 1.
type Piece struct {
	Kind  byte
	White bool
	File  int
	Rank  int
}

// Normalize returns a normalized FEN string suitable for position identity.
// It extracts only the position, side to move, castling rights, and en passant square,
// ignoring the halfmove clock and fullmove number.
func Normalize(fen string) (string, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return "", ErrInvalidFEN
	}

	// Validate piece placement
	if !isValidPiecePlacement(parts[0]) {
		return "", ErrInvalidFEN
	}

	// Validate side to move
	if parts[1] != "w" && parts[1] != "b" {
		return "", ErrInvalidFEN
	}

	// Return normalized FEN (first 4 fields)
	return strings.Join(parts[:4], " "), nil
}

// PlacementKey returns the piece-placement field of a FEN string.
// This is the repetition-detection key: castling rights, en passant square
// and move counters are deliberately excluded.
func PlacementKey(fen string) string {
	if i := strings.IndexByte(fen, ' '); i >= 0 {
		return fen[:i]
	}
	return fen
}

// Pieces extracts every occupied square from the piece placement field of a FEN.
// Squares are visited rank 8 down to rank 1, file a to h, matching FEN order.
func Pieces(fen string) ([]Piece, error) {
	placement := PlacementKey(fen)
	if !isValidPiecePlacement(placement) {
		return nil, ErrInvalidFEN
	}

	pieces := make([]Piece, 0, 32)
	ranks := strings.Split(placement, "/")
	for i, rank := range ranks {
		file := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			white := ch >= 'A' && ch <= 'Z'
			kind := byte(ch)
			if white {
				kind = byte(ch) - 'A' + 'a'
			}
			pieces = append(pieces, Piece{
				Kind:  kind,
				White: white,
				File:  file,
				Rank:  7 - i, // FEN lists rank 8 first
			})
			file++
		}
	}
	return pieces, nil
}

// ParseMaterial extracts material counts from a FEN string.
func ParseMaterial(fen string) (Material, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return Material{}, ErrInvalidFEN
	}

	var m Material
	for _, ch := range parts[0] {
		switch ch {
		case 'P':
			m.WhitePawns++
		case 'N':
			m.WhiteKnights++
		case 'B':
			m.WhiteBishops++
		case 'R':
			m.WhiteRooks++
		case 'Q':
			m.WhiteQueens++
		case 'p':
			m.BlackPawns++
		case 'n':
			m.BlackKnights++
		case 'b':
			m.BlackBishops++
		case 'r':
			m.BlackRooks++
		case 'q':
			m.BlackQueens++
		case 'K', 'k':
			// Kings are always present, don't count
		case '/', '1', '2', '3', '4', '5', '6', '7', '8':
			// Valid FEN characters, ignore
		default:
			return Material{}, ErrInvalidFEN
		}
	}

	return m, nil
}

// HalfMoveClock returns the halfmove clock field of a FEN string,
// or 0 if the field is absent or malformed.
func HalfMoveClock(fen string) int {
	parts := strings.Fields(fen)
	if len(parts) < 5 {
		return 0
	}
	n := 0
	for _, ch := range parts[4] {
		if ch < '0' || ch > '9' {
			return 0
		}
		n = n*10 + int(ch-'0')
	}
	return n
}

// isValidPiecePlacement validates the piece placement part of a FEN.
func isValidPiecePlacement(placement string) bool {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return false
	}

	for _, rank := range ranks {
		squares := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				squares += int(ch - '0')
			case ch == 'P', ch == 'N', ch == 'B', ch == 'R', ch == 'Q', ch == 'K',
				ch == 'p', ch == 'n', ch == 'b', ch == 'r', ch == 'q', ch == 'k':
				squares++
			default:
				return false
			}
		}
		if squares != 8 {
			return false
		}
	}

	return true
}
