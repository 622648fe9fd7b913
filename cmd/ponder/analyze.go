package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"github.com/discochess/ponder"
	"github.com/discochess/ponder/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [PGN file]",
	Short: "Grade every move of a finished game",
	Long: `Evaluate each position of a game and grade every move by the
evaluation swing it caused. Reads PGN from the given file, or from
standard input when the file is "-".

Grades run from best to blunder. A move that improves the mover's
position always grades best; only swings against the mover count as
losses.

Examples:
  # Analyze a game and print the grades
  ponder analyze game.pgn

  # Write a compressed JSONL report
  ponder analyze game.pgn --out report.jsonl --compress zstd

  # Use absolute swings instead of per-side losses
  ponder analyze game.pgn --simple`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeOut      string
	analyzeCompress string
	analyzeSimple   bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "write a JSONL report to this file")
	analyzeCmd.Flags().StringVar(&analyzeCompress, "compress", "none", "report compression: zstd, gzip or none")
	analyzeCmd.Flags().BoolVar(&analyzeSimple, "simple", false, "grade by absolute swing instead of per-side loss")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	name := "stdin"
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening PGN: %w", err)
		}
		defer f.Close()
		in = f
		name = args[0]
	}

	games, err := chess.GamesFromPGN(in)
	if err != nil {
		return fmt.Errorf("parsing PGN: %w", err)
	}
	if len(games) == 0 {
		return fmt.Errorf("no games in %s", name)
	}

	engine, err := newEngine()
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	var writer *report.Writer
	if analyzeOut != "" {
		c, err := report.CodecForName(analyzeCompress)
		if err != nil {
			return err
		}
		path := analyzeOut
		if ext := c.Extension(); ext != "" && !strings.HasSuffix(path, "."+ext) {
			path += "." + ext
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating report: %w", err)
		}
		defer f.Close()
		writer, err = report.NewWriter(f, c)
		if err != nil {
			return err
		}
		defer writer.Close()
	}

	ctx := context.Background()
	for i, game := range games {
		tag := gameTag(game, name, i, len(games))
		if err := analyzeGame(ctx, engine, game, tag, writer); err != nil {
			return fmt.Errorf("analyzing %s: %w", tag, err)
		}
	}
	return nil
}

func analyzeGame(ctx context.Context, engine *ponder.Engine, game *chess.Game, tag string, writer *report.Writer) error {
	positions := game.Positions()
	moves := game.Moves()

	trace := make([]ponder.EvaluatedPosition, len(positions))
	for i, pos := range positions {
		fen := pos.String()
		score, err := engine.Evaluate(ctx, fen)
		if err != nil {
			return fmt.Errorf("evaluating ply %d: %w", i, err)
		}
		trace[i] = ponder.EvaluatedPosition{
			FEN: fen,
			// The evaluator scores Black-positive; traces are
			// White-positive.
			Eval: -score,
		}
		if i > 0 {
			trace[i].SAN = chess.AlgebraicNotation{}.Encode(positions[i-1], moves[i-1])
			trace[i].UCI = chess.UCINotation{}.Encode(positions[i-1], moves[i-1])
		}
	}

	graded := ponder.Classify(trace)
	if analyzeSimple {
		graded = ponder.ClassifySimple(trace)
	}

	fmt.Printf("%s\n", tag)
	for i := 1; i < len(graded); i++ {
		p := graded[i]
		moveNo := fmt.Sprintf("%d.", (i+1)/2)
		if i%2 == 0 {
			moveNo += ".."
		}
		fmt.Printf("  %-6s %-8s %+7.2f  %s\n", moveNo, p.SAN, p.Eval/100, p.Classification)
	}

	if writer == nil {
		return nil
	}
	for i, p := range graded {
		rec := report.Record{
			Game: tag,
			Ply:  i,
			SAN:  p.SAN,
			UCI:  p.UCI,
			FEN:  p.FEN,
			Eval: p.Eval,
		}
		if i > 0 {
			rec.Classification = p.Classification.String()
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// gameTag labels a game in output and reports, preferring PGN headers.
func gameTag(game *chess.Game, source string, index, total int) string {
	white := game.GetTagPair("White")
	black := game.GetTagPair("Black")
	if white != nil && black != nil {
		return fmt.Sprintf("%s - %s", white.Value, black.Value)
	}
	if total == 1 {
		return source
	}
	return fmt.Sprintf("%s#%d", source, index+1)
}
