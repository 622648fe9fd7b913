// Package simulation plays the engine against itself under different
// configurations and collects per-game statistics.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/discochess/ponder"
	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/eval/richeval"
	"github.com/discochess/ponder/internal/eval/simpleeval"
	"github.com/discochess/ponder/internal/rules/notnilrules"
)

// Outcome is how a simulated game ended.
type Outcome string

const (
	OutcomeCheckmate Outcome = "checkmate"
	OutcomeStalemate Outcome = "stalemate"
	OutcomeDraw      Outcome = "draw"
	OutcomePlyLimit  Outcome = "ply-limit"
)

// Config describes one engine configuration to simulate.
type Config struct {
	// Name labels the configuration in results.
	Name string

	// Depth is the search depth in plies.
	Depth int

	// Evaluator selects the static evaluator: "rich" (default) or "simple".
	Evaluator string

	// Seed seeds the rich evaluator's jitter; each game perturbs it so
	// repeated games diverge while the whole run stays reproducible.
	Seed int64
}

// Simulator plays self-play games for a set of configurations.
type Simulator struct {
	configs []Config
}

// NewSimulator creates a Simulator for the given configurations.
func NewSimulator(configs ...Config) *Simulator {
	return &Simulator{configs: configs}
}

// GameRecord contains the statistics of a single self-play game.
type GameRecord struct {
	Config     string
	Plies      int
	Outcome    Outcome
	MoveMillis []float64 // Per-move search latency in milliseconds.
}

// AggregateResult contains aggregated results across a configuration's games.
type AggregateResult struct {
	Config       string
	Games        int
	PliesPerGame []float64
	MoveMillis   []float64
	Outcomes     map[Outcome]int
}

// Run plays the given number of self-play games per configuration, each
// capped at maxPlies half-moves, and aggregates the results by
// configuration name.
func (s *Simulator) Run(ctx context.Context, games, maxPlies int) (map[string]*AggregateResult, error) {
	results := make(map[string]*AggregateResult, len(s.configs))

	for _, cfg := range s.configs {
		agg := &AggregateResult{
			Config:       cfg.Name,
			PliesPerGame: make([]float64, 0, games),
			Outcomes:     make(map[Outcome]int),
		}
		results[cfg.Name] = agg

		for g := 0; g < games; g++ {
			engine, err := buildEngine(cfg, int64(g))
			if err != nil {
				return nil, fmt.Errorf("building %s: %w", cfg.Name, err)
			}
			record, err := playGame(ctx, engine, maxPlies)
			closeErr := engine.Close()
			if err != nil {
				return nil, fmt.Errorf("playing %s game %d: %w", cfg.Name, g, err)
			}
			if closeErr != nil {
				return nil, closeErr
			}

			agg.Games++
			agg.PliesPerGame = append(agg.PliesPerGame, float64(record.Plies))
			agg.MoveMillis = append(agg.MoveMillis, record.MoveMillis...)
			agg.Outcomes[record.Outcome]++
		}
	}
	return results, nil
}

// buildEngine constructs an engine for one game of a configuration.
func buildEngine(cfg Config, game int64) (*ponder.Engine, error) {
	provider := notnilrules.New()

	var evaluator eval.Evaluator
	switch cfg.Evaluator {
	case "simple":
		evaluator = simpleeval.New(provider)
	case "rich", "":
		var rnd *rand.Rand
		if cfg.Seed != 0 {
			rnd = rand.New(rand.NewSource(cfg.Seed + game))
		}
		evaluator = richeval.New(provider, rnd)
	default:
		return nil, fmt.Errorf("unknown evaluator %q", cfg.Evaluator)
	}

	return ponder.New(
		ponder.WithRules(provider),
		ponder.WithEvaluator(evaluator),
		ponder.WithDepth(cfg.Depth),
	)
}

// playGame plays one self-play game from the starting position.
func playGame(ctx context.Context, engine *ponder.Engine, maxPlies int) (*GameRecord, error) {
	provider := engine.Rules()
	pos, err := provider.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		return nil, err
	}

	record := &GameRecord{Outcome: OutcomePlyLimit}
	for ply := 0; ply < maxPlies; ply++ {
		start := time.Now()
		move, err := engine.BestMove(ctx, pos.FEN())
		if err != nil {
			return nil, err
		}
		record.MoveMillis = append(record.MoveMillis, float64(time.Since(start).Microseconds())/1000)
		if move == nil {
			break
		}

		legal, err := provider.LegalMoves(pos)
		if err != nil {
			return nil, err
		}
		applied := false
		for _, m := range legal {
			if m.UCI() == move.UCI {
				if pos, err = provider.Apply(pos, m); err != nil {
					return nil, err
				}
				applied = true
				break
			}
		}
		if !applied {
			return nil, fmt.Errorf("engine chose illegal move %s", move.UCI)
		}
		record.Plies++

		switch {
		case provider.IsCheckmate(pos):
			record.Outcome = OutcomeCheckmate
			return record, nil
		case provider.IsStalemate(pos):
			record.Outcome = OutcomeStalemate
			return record, nil
		case provider.IsDraw(pos):
			record.Outcome = OutcomeDraw
			return record, nil
		}
	}
	return record, nil
}
