// Package analyzer classifies move quality from the evaluation swing each
// move caused. It operates on the per-ply evaluation trace of a game; the
// first entry is the initial position and is never classified.
package analyzer

// Classification grades a single move, ordered best to worst.
// Brilliant, Great, Book and Forced are reserved grades: they exist in the
// scale but the swing-based classifier never assigns them.
type Classification int

const (
	None Classification = iota
	Brilliant
	Great
	Best
	Excellent
	Good
	Book
	Forced
	Inaccuracy
	Mistake
	Blunder
)

var classificationNames = map[Classification]string{
	None:       "",
	Brilliant:  "brilliant",
	Great:      "great",
	Best:       "best",
	Excellent:  "excellent",
	Good:       "good",
	Book:       "book",
	Forced:     "forced",
	Inaccuracy: "inaccuracy",
	Mistake:    "mistake",
	Blunder:    "blunder",
}

func (c Classification) String() string { return classificationNames[c] }

// ClassifySigned grades each ply of an evaluation trace by signed loss.
//
// The trace is oriented first-mover-positive: a rising evaluation is good
// for the side that moves on odd plies. Loss is always relative to the side
// that just moved, so the change is negated for odd plies and kept for even
// ones; a positive loss means the move made the mover's position worse.
//
// The returned slice matches the input length; index 0 is always None.
// An empty or single-entry trace yields no classifications.
func ClassifySigned(evals []float64) []Classification {
	grades := make([]Classification, len(evals))
	for i := 1; i < len(evals); i++ {
		change := evals[i] - evals[i-1]
		loss := change
		if i%2 == 1 {
			loss = -change
		}
		grades[i] = byLoss(loss)
	}
	return grades
}

// ClassifyAbsolute grades each ply by the unsigned evaluation swing, with
// coarser bands. This is the companion of the material-only evaluator, where
// any large swing is noteworthy regardless of direction.
func ClassifyAbsolute(evals []float64) []Classification {
	grades := make([]Classification, len(evals))
	for i := 1; i < len(evals); i++ {
		delta := evals[i] - evals[i-1]
		if delta < 0 {
			delta = -delta
		}
		grades[i] = byDelta(delta)
	}
	return grades
}

// byLoss maps a signed centipawn loss to a grade.
func byLoss(loss float64) Classification {
	switch {
	case loss <= 25:
		return Best
	case loss <= 50:
		return Excellent
	case loss <= 100:
		return Good
	case loss <= 200:
		return Inaccuracy
	case loss <= 400:
		return Mistake
	default:
		return Blunder
	}
}

// byDelta maps an unsigned centipawn swing to a grade.
func byDelta(delta float64) Classification {
	switch {
	case delta <= 10:
		return Best
	case delta <= 25:
		return Excellent
	case delta <= 50:
		return Good
	case delta <= 100:
		return Inaccuracy
	case delta <= 200:
		return Mistake
	default:
		return Blunder
	}
}
