// Package eval defines the static position evaluation capability used by the
// search engine, and the repetition path threaded through it.
//
// Scores are centipawn-scaled float64 values with a fixed perspective:
// positive favors Black, negative favors White.
package eval

import "github.com/discochess/ponder/internal/rules"

// Terminal score magnitudes.
const (
	// MateScore is the magnitude of a checkmate evaluation. The search
	// subtracts the ply distance so nearer mates score strictly higher.
	MateScore = 100000

	// RepetitionPenalty is the magnitude applied when a piece placement
	// recurs on the current search path. It dwarfs any material swing so
	// the search steers away from repetition regardless of the position.
	RepetitionPenalty = 5000
)

// Evaluator scores a position. The path carries the piece-placement keys of
// the root-to-parent line currently being explored; evaluators that do not
// model repetition ignore it.
type Evaluator interface {
	Evaluate(pos rules.Position, path Path) (float64, error)
}

// Path is an immutable sequence of piece-placement keys describing the
// search line leading to the position under evaluation. Push returns a new
// value, so sibling branches can never observe each other's history.
type Path struct {
	keys []string
}

// Push returns a new Path with key appended.
func (p Path) Push(key string) Path {
	keys := make([]string, len(p.keys)+1)
	copy(keys, p.keys)
	keys[len(p.keys)] = key
	return Path{keys: keys}
}

// Count returns how many times key occurs on the path.
func (p Path) Count(key string) int {
	n := 0
	for _, k := range p.keys {
		if k == key {
			n++
		}
	}
	return n
}

// Len returns the number of keys on the path.
func (p Path) Len() int { return len(p.keys) }
