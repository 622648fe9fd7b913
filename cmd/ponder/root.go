package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/ponder"
	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/eval/cachedeval"
	"github.com/discochess/ponder/internal/eval/richeval"
	"github.com/discochess/ponder/internal/eval/simpleeval"
	"github.com/discochess/ponder/internal/rules/notnilrules"
	"github.com/discochess/ponder/internal/stats"
)

var (
	// Global flags.
	depth     int
	evaluator string
	seed      int64
	noJitter  bool
	cacheSize int
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "ponder",
	Short: "Fixed-depth chess move search and post-game analysis",
	Long: `Ponder searches chess positions with fixed-depth minimax and grades
the moves of finished games by the evaluation swing they caused.

Examples:
  # Find the best move in a position
  ponder bestmove "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

  # Statically evaluate a position
  ponder eval "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

  # Grade every move of a game
  ponder analyze game.pgn

  # Watch the engine play itself
  ponder selfplay --max-plies 60`,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&depth, "depth", "d", ponder.DepthStandard, "search depth in plies")
	rootCmd.PersistentFlags().StringVarP(&evaluator, "evaluator", "e", "rich", "static evaluator: rich or simple")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "seed for evaluation jitter (0 seeds from the clock)")
	rootCmd.PersistentFlags().BoolVar(&noJitter, "no-jitter", false, "disable evaluation jitter for deterministic output")
	rootCmd.PersistentFlags().IntVar(&cacheSize, "cache", 0, "static evaluation cache size (0 disables)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newEngine builds an engine from the global flags.
func newEngine() (*ponder.Engine, error) {
	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
	}

	provider := notnilrules.New()

	var ev eval.Evaluator
	switch evaluator {
	case "simple":
		ev = simpleeval.New(provider)
	case "rich":
		var rnd *rand.Rand
		if !noJitter {
			s := seed
			if s == 0 {
				s = time.Now().UnixNano()
			}
			rnd = rand.New(rand.NewSource(s))
		}
		ev = richeval.New(provider, rnd)
	default:
		return nil, fmt.Errorf("unknown evaluator %q (want rich or simple)", evaluator)
	}

	if cacheSize > 0 {
		cached, err := cachedeval.New(ev, cacheSize, stats.NewNoop())
		if err != nil {
			return nil, fmt.Errorf("creating evaluation cache: %w", err)
		}
		ev = cached
	}

	return ponder.New(
		ponder.WithRules(provider),
		ponder.WithEvaluator(ev),
		ponder.WithDepth(depth),
		ponder.WithLogger(logger),
	)
}
