package ponder

import (
	"github.com/discochess/ponder/internal/analyzer"
)

// Classification grades the quality of a played move.
type Classification = analyzer.Classification

// Move quality grades, from strongest to weakest.
const (
	ClassificationNone       = analyzer.None
	ClassificationBrilliant  = analyzer.Brilliant
	ClassificationGreat      = analyzer.Great
	ClassificationBest       = analyzer.Best
	ClassificationExcellent  = analyzer.Excellent
	ClassificationGood       = analyzer.Good
	ClassificationBook       = analyzer.Book
	ClassificationForced     = analyzer.Forced
	ClassificationInaccuracy = analyzer.Inaccuracy
	ClassificationMistake    = analyzer.Mistake
	ClassificationBlunder    = analyzer.Blunder
)

// EvaluatedPosition is one entry in a game's evaluation trace: the
// position after a move was played, the engine's score for it, and the
// grade assigned to the move that produced it.
//
// Eval is from White's perspective: positive favors White. The first
// element of a trace describes the starting position; it has no move and
// is never classified.
type EvaluatedPosition struct {
	// FEN is the position after the move.
	FEN string

	// SAN and UCI describe the move that produced this position. Both
	// are empty on the trace's first element.
	SAN string
	UCI string

	// Eval is the engine score for the position, White-positive.
	Eval float64

	// Classification grades the move that produced this position.
	Classification Classification
}

// Classify grades each move in an evaluation trace, scoring every move
// relative to the side that played it: a swing against the mover is a
// loss regardless of which color moved. The first element is left
// unclassified. The input is not modified.
func Classify(trace []EvaluatedPosition) []EvaluatedPosition {
	return classify(trace, analyzer.ClassifySigned)
}

// ClassifySimple grades each move by the absolute evaluation swing it
// caused, ignoring which side moved. It uses tighter bands than Classify
// and suits quick summaries where per-side accounting is overkill. The
// first element is left unclassified. The input is not modified.
func ClassifySimple(trace []EvaluatedPosition) []EvaluatedPosition {
	return classify(trace, analyzer.ClassifyAbsolute)
}

func classify(trace []EvaluatedPosition, fn func([]float64) []analyzer.Classification) []EvaluatedPosition {
	if len(trace) == 0 {
		return nil
	}

	evals := make([]float64, len(trace))
	for i, p := range trace {
		evals[i] = p.Eval
	}

	grades := fn(evals)

	out := make([]EvaluatedPosition, len(trace))
	copy(out, trace)
	for i := range out {
		out[i].Classification = grades[i]
	}
	return out
}
