package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var selfplayCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Let the engine play against itself",
	Long: `Play both sides of a game from the starting position (or a given FEN)
and print the moves as they are chosen. The game stops at checkmate, a
draw, or the ply limit.`,
	Args: cobra.NoArgs,
	RunE: runSelfplay,
}

var (
	selfplayFEN      string
	selfplayMaxPlies int
)

func init() {
	selfplayCmd.Flags().StringVar(&selfplayFEN, "fen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "position to start from")
	selfplayCmd.Flags().IntVar(&selfplayMaxPlies, "max-plies", 200, "stop after this many half-moves")
	rootCmd.AddCommand(selfplayCmd)
}

func runSelfplay(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	provider := engine.Rules()
	pos, err := provider.FromFEN(selfplayFEN)
	if err != nil {
		return fmt.Errorf("parsing position: %w", err)
	}

	ctx := context.Background()
	for ply := 1; ply <= selfplayMaxPlies; ply++ {
		move, err := engine.BestMove(ctx, pos.FEN())
		if err != nil {
			return fmt.Errorf("searching ply %d: %w", ply, err)
		}
		if move == nil {
			break
		}

		// Match the chosen move against the legal set to apply it.
		legal, err := provider.LegalMoves(pos)
		if err != nil {
			return fmt.Errorf("enumerating ply %d: %w", ply, err)
		}
		applied := false
		for _, m := range legal {
			if m.UCI() != move.UCI {
				continue
			}
			pos, err = provider.Apply(pos, m)
			if err != nil {
				return fmt.Errorf("applying %s: %w", move.UCI, err)
			}
			applied = true
			break
		}
		if !applied {
			return fmt.Errorf("engine chose illegal move %s", move.UCI)
		}

		moveNo := fmt.Sprintf("%d.", (ply+1)/2)
		if ply%2 == 0 {
			moveNo += ".."
		}
		fmt.Printf("%-6s %-8s %s\n", moveNo, move.SAN, move.ScoreString())

		if provider.IsGameOver(pos) {
			break
		}
	}

	switch {
	case provider.IsCheckmate(pos):
		fmt.Printf("Checkmate. %s wins.\n", provider.Turn(pos).Other())
	case provider.IsStalemate(pos):
		fmt.Println("Stalemate.")
	case provider.IsDraw(pos):
		fmt.Println("Draw.")
	default:
		fmt.Println("Ply limit reached.")
	}
	fmt.Printf("Final position: %s\n", pos.FEN())
	return nil
}
