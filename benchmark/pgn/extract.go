// Package pgn provides utilities for extracting FEN positions from PGN
// files, used to build realistic evaluation workloads.
package pgn

import (
	"fmt"
	"io"

	"github.com/notnil/chess"
)

// ExtractFENs extracts all unique FEN positions from a PGN stream, in the
// order they first appear across all games.
func ExtractFENs(r io.Reader) ([]string, error) {
	games, err := chess.GamesFromPGN(r)
	if err != nil {
		return nil, fmt.Errorf("parsing PGN: %w", err)
	}

	var fens []string
	seen := make(map[string]struct{})
	for _, game := range games {
		for _, pos := range game.Positions() {
			fen := pos.String()
			if _, ok := seen[fen]; ok {
				continue
			}
			seen[fen] = struct{}{}
			fens = append(fens, fen)
		}
	}
	return fens, nil
}

// ExtractGames extracts the FEN sequence of each game separately,
// preserving duplicates and game boundaries.
func ExtractGames(r io.Reader) ([][]string, error) {
	games, err := chess.GamesFromPGN(r)
	if err != nil {
		return nil, fmt.Errorf("parsing PGN: %w", err)
	}

	sequences := make([][]string, 0, len(games))
	for _, game := range games {
		positions := game.Positions()
		fens := make([]string, 0, len(positions))
		for _, pos := range positions {
			fens = append(fens, pos.String())
		}
		sequences = append(sequences, fens)
	}
	return sequences, nil
}
