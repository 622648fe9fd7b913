package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var bestmoveCmd = &cobra.Command{
	Use:   "bestmove [FEN]",
	Short: "Find the best move in a position",
	Long: `Search the position to the configured depth and print the best move
for the side to move.

Examples:
  # Starting position
  ponder bestmove "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

  # Deterministic, deeper search
  ponder bestmove --no-jitter --depth 4 "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1"`,
	Args: cobra.ExactArgs(1),
	RunE: runBestmove,
}

var (
	bestmoveJSON   bool
	bestmoveTiming bool
)

func init() {
	bestmoveCmd.Flags().BoolVar(&bestmoveJSON, "json", false, "output result as JSON")
	bestmoveCmd.Flags().BoolVar(&bestmoveTiming, "timing", false, "show search timing")
	rootCmd.AddCommand(bestmoveCmd)
}

func runBestmove(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	start := time.Now()
	move, err := engine.BestMove(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	elapsed := time.Since(start)

	if move == nil {
		if bestmoveJSON {
			fmt.Println(`{"move":null}`)
		} else {
			fmt.Println("No legal moves: the game is over.")
		}
		return nil
	}

	if bestmoveJSON {
		fmt.Printf(`{"san":%q,"uci":%q,"score":%q`, move.SAN, move.UCI, move.ScoreString())
		if bestmoveTiming {
			fmt.Printf(`,"elapsed_ms":%d`, elapsed.Milliseconds())
		}
		fmt.Println("}")
		return nil
	}

	fmt.Printf("Move:  %s (%s)\n", move.SAN, move.UCI)
	fmt.Printf("Score: %s\n", move.ScoreString())
	if bestmoveTiming {
		fmt.Printf("Time:  %s\n", elapsed)
	}
	return nil
}
