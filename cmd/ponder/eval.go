package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [FEN]",
	Short: "Statically evaluate a position",
	Long: `Score the position with the configured evaluator, without searching.
Positive scores favor White, negative scores favor Black.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	score, err := engine.Evaluate(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}

	// The evaluator scores Black-positive; print White-positive.
	fmt.Printf("%+.2f\n", -score/100)
	return nil
}
