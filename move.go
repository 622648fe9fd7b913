package ponder

import "strconv"

// Move is a move chosen by the engine, in both coordinate and algebraic form.
type Move struct {
	// From and To are algebraic square coordinates, e.g. "e2" and "e4".
	From string
	To   string

	// Promotion is the UCI promotion letter ("q", "r", "b" or "n"),
	// or empty when the move is not a promotion.
	Promotion string

	// UCI is the move in UCI notation, e.g. "e2e4" or "e7e8q".
	UCI string

	// SAN is the move in standard algebraic notation, e.g. "Nf3".
	SAN string

	// Score is the search score from the mover's perspective, in
	// centipawn-scaled units. Mate scores approach ±100000.
	Score float64
}

// IsMate reports whether the move's score is a forced-mate score.
func (m *Move) IsMate() bool {
	return m.Score > 90000 || m.Score < -90000
}

// ScoreString returns a human-readable score for the move.
// Examples: "+1.25", "-0.50", "#2"
func (m *Move) ScoreString() string {
	if m.IsMate() {
		// The mate distance in plies is encoded as 100000 - ply.
		plies := 100000 - int(m.Score)
		if m.Score < 0 {
			plies = 100000 + int(m.Score)
			return "#-" + strconv.Itoa((plies+1)/2)
		}
		return "#" + strconv.Itoa((plies+1)/2)
	}

	cp := int(m.Score)
	sign := "+"
	if cp < 0 {
		sign = "-"
		cp = -cp
	}
	whole := cp / 100
	frac := cp % 100
	if frac < 10 {
		return sign + strconv.Itoa(whole) + ".0" + strconv.Itoa(frac)
	}
	return sign + strconv.Itoa(whole) + "." + strconv.Itoa(frac)
}

func (m *Move) String() string { return m.UCI }
