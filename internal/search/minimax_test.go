package search

import (
	"context"
	"math"
	"testing"

	"github.com/discochess/ponder/internal/eval"
	"github.com/discochess/ponder/internal/rules"
)

// stubPos identifies a scripted position. Its FEN is its id, so the
// placement key equals the id.
type stubPos string

func (p stubPos) FEN() string { return string(p) }

// stubRules is a scripted rules.Provider over a hand-built game tree.
type stubRules struct {
	// moves maps a position id to its legal moves, in order.
	moves map[string][]rules.Move
	// children maps position id and move UCI to the resulting position id.
	children map[string]map[string]string
	mates    map[string]bool
	turns    map[string]rules.Color
}

func newStubRules() *stubRules {
	return &stubRules{
		moves:    make(map[string][]rules.Move),
		children: make(map[string]map[string]string),
		mates:    make(map[string]bool),
		turns:    make(map[string]rules.Color),
	}
}

// edge adds a move from one position to another.
func (r *stubRules) edge(from, uci, to string) {
	m := rules.Move{From: uci[:2], To: uci[2:4]}
	r.moves[from] = append(r.moves[from], m)
	if r.children[from] == nil {
		r.children[from] = make(map[string]string)
	}
	r.children[from][m.UCI()] = to
}

func (r *stubRules) FromFEN(fen string) (rules.Position, error) { return stubPos(fen), nil }

func (r *stubRules) LegalMoves(pos rules.Position) ([]rules.Move, error) {
	return r.moves[string(pos.(stubPos))], nil
}

func (r *stubRules) Apply(pos rules.Position, move rules.Move) (rules.Position, error) {
	child, ok := r.children[string(pos.(stubPos))][move.UCI()]
	if !ok {
		return nil, rules.ErrIllegalMove
	}
	return stubPos(child), nil
}

func (r *stubRules) SAN(pos rules.Position, move rules.Move) (string, error) {
	return move.UCI(), nil
}

func (r *stubRules) IsCheckmate(pos rules.Position) bool { return r.mates[string(pos.(stubPos))] }
func (r *stubRules) IsStalemate(pos rules.Position) bool { return false }
func (r *stubRules) IsDraw(pos rules.Position) bool      { return false }
func (r *stubRules) IsGameOver(pos rules.Position) bool {
	return r.mates[string(pos.(stubPos))] || len(r.moves[string(pos.(stubPos))]) == 0
}
func (r *stubRules) InCheck(pos rules.Position) bool { return false }
func (r *stubRules) Turn(pos rules.Position) rules.Color {
	return r.turns[string(pos.(stubPos))]
}

// stubEval serves scripted Black-positive scores and records which
// positions it was asked to evaluate, along with the paths it saw.
type stubEval struct {
	scores map[string]float64
	seen   []string
	paths  map[string]eval.Path
}

func newStubEval(scores map[string]float64) *stubEval {
	return &stubEval{scores: scores, paths: make(map[string]eval.Path)}
}

func (e *stubEval) Evaluate(pos rules.Position, path eval.Path) (float64, error) {
	id := string(pos.(stubPos))
	e.seen = append(e.seen, id)
	e.paths[id] = path
	return e.scores[id], nil
}

func TestBestMove_NoLegalMoves(t *testing.T) {
	r := newStubRules()
	s := New(r, newStubEval(nil), nil, nil)

	move, _, err := s.BestMove(context.Background(), stubPos("terminal"), DepthStandard)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move != nil {
		t.Errorf("BestMove() = %v, want nil for terminal position", move)
	}
}

func TestBestMove_MateShortCircuit(t *testing.T) {
	r := newStubRules()
	r.edge("root", "a1a2", "quiet")
	r.edge("root", "b1b2", "mate")
	r.mates["mate"] = true
	r.turns["root"] = rules.Black

	// The quiet branch scores far better than the mate branch would need
	// to; the short-circuit must still take the mate.
	e := newStubEval(map[string]float64{"quiet": 9999})
	s := New(r, e, nil, nil)

	move, score, err := s.BestMove(context.Background(), stubPos("root"), DepthStandard)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move == nil || move.UCI() != "b1b2" {
		t.Fatalf("BestMove() = %v, want the mating move b1b2", move)
	}
	if score != eval.MateScore-1 {
		t.Errorf("score = %v, want %v", score, float64(eval.MateScore-1))
	}
	if len(e.seen) != 0 {
		t.Errorf("evaluator consulted %v before the mate short-circuit", e.seen)
	}
}

func TestBestMove_MateShortCircuit_FirstInOrder(t *testing.T) {
	r := newStubRules()
	r.edge("root", "a1a2", "mate1")
	r.edge("root", "b1b2", "mate2")
	r.mates["mate1"] = true
	r.mates["mate2"] = true
	r.turns["root"] = rules.Black

	s := New(r, newStubEval(nil), nil, nil)
	move, _, err := s.BestMove(context.Background(), stubPos("root"), 1)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move.UCI() != "a1a2" {
		t.Errorf("BestMove() = %s, want the first mating move a1a2", move.UCI())
	}
}

// twoPlyTree builds root -> {A, B, C} -> three leaves each, Black to move at
// the root so scores pass through unnegated.
func twoPlyTree(leafScores map[string]float64) (*stubRules, *stubEval) {
	r := newStubRules()
	r.turns["root"] = rules.Black
	for _, branch := range []string{"a", "b", "c"} {
		r.edge("root", branch+"1"+branch+"2", branch)
		for _, leaf := range []string{"x", "y", "z"} {
			r.edge(branch, leaf+"1"+leaf+"2", branch+leaf)
		}
	}
	return r, newStubEval(leafScores)
}

func TestBestMove_PicksMinimaxOptimal(t *testing.T) {
	scores := map[string]float64{
		"ax": 30, "ay": -20, "az": 10, // min = -20
		"bx": 5, "by": 8, "bz": 40, // min = 5  <- best for the maximizer
		"cx": 100, "cy": -80, "cz": 0, // min = -80
	}
	r, e := twoPlyTree(scores)
	s := New(r, e, nil, nil)

	move, score, err := s.BestMove(context.Background(), stubPos("root"), 2)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move.UCI() != "b1b2" {
		t.Errorf("BestMove() = %s, want b1b2", move.UCI())
	}
	if score != 5 {
		t.Errorf("score = %v, want 5", score)
	}
}

func TestBestMove_TieBreaksFirstInOrder(t *testing.T) {
	scores := map[string]float64{
		"ax": 7, "ay": 7, "az": 7,
		"bx": 7, "by": 7, "bz": 7,
		"cx": 7, "cy": 7, "cz": 7,
	}
	r, e := twoPlyTree(scores)
	s := New(r, e, nil, nil)

	move, _, err := s.BestMove(context.Background(), stubPos("root"), 2)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move.UCI() != "a1a2" {
		t.Errorf("BestMove() = %s, want the first move a1a2 on a tie", move.UCI())
	}
}

func TestBestMove_PrunesDominatedBranches(t *testing.T) {
	// After branch a establishes alpha = 10, branch b's first leaf scoring
	// 3 caps b at ≤ 3 and the remaining leaves must be skipped.
	scores := map[string]float64{
		"ax": 10, "ay": 20, "az": 30,
		"bx": 3, "by": 99, "bz": 99,
		"cx": 50, "cy": 60, "cz": 70,
	}
	r, e := twoPlyTree(scores)
	s := New(r, e, nil, nil)

	move, _, err := s.BestMove(context.Background(), stubPos("root"), 2)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move.UCI() != "c1c2" {
		t.Errorf("BestMove() = %s, want c1c2", move.UCI())
	}

	for _, id := range e.seen {
		if id == "by" || id == "bz" {
			t.Errorf("leaf %s was evaluated; it should have been pruned", id)
		}
	}
}

// TestAlphaBeta_EquivalentToExhaustive checks that pruning never changes the
// chosen move, against a brute-force reference over generated trees.
func TestAlphaBeta_EquivalentToExhaustive(t *testing.T) {
	// Small deterministic PRNG so the trees are reproducible.
	seed := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		seed ^= seed << 13
		seed ^= seed >> 7
		seed ^= seed << 17
		return seed
	}

	for trial := 0; trial < 25; trial++ {
		r := newStubRules()
		r.turns["root"] = rules.Black
		e := newStubEval(map[string]float64{})

		// Depth-3 tree with branching factor 3.
		var build func(id string, depth int)
		build = func(id string, depth int) {
			if depth == 0 {
				e.scores[id] = float64(int64(next()%401)) - 200
				return
			}
			for c := 0; c < 3; c++ {
				child := id + string(rune('a'+c))
				r.edge(id, uci(len(id), c), child)
				build(child, depth-1)
			}
		}
		build("root", 3)

		s := New(r, e, nil, nil)
		got, gotScore, err := s.BestMove(context.Background(), stubPos("root"), 3)
		if err != nil {
			t.Fatalf("BestMove() error = %v", err)
		}

		wantUCI, wantScore := exhaustiveBest(r, e, "root", 3)
		if got.UCI() != wantUCI || gotScore != wantScore {
			t.Errorf("trial %d: pruned search chose %s (%v), exhaustive chose %s (%v)",
				trial, got.UCI(), gotScore, wantUCI, wantScore)
		}
	}
}

// uci fabricates a distinct legal-looking UCI string per (depth, index).
func uci(depth, index int) string {
	files := "abcdefgh"
	from := string(files[depth%8]) + "1"
	to := string(files[index%8]) + "2"
	return from + to
}

// exhaustiveBest is a reference minimax with no pruning.
func exhaustiveBest(r *stubRules, e *stubEval, root string, depth int) (string, float64) {
	var walk func(id string, depth int, maximizing bool) float64
	walk = func(id string, depth int, maximizing bool) float64 {
		moves := r.moves[id]
		if depth == 0 || len(moves) == 0 {
			return e.scores[id]
		}
		best := math.Inf(-1)
		if !maximizing {
			best = math.Inf(1)
		}
		for _, m := range moves {
			v := walk(r.children[id][m.UCI()], depth-1, !maximizing)
			if maximizing && v > best {
				best = v
			}
			if !maximizing && v < best {
				best = v
			}
		}
		return best
	}

	bestScore := math.Inf(-1)
	var bestUCI string
	for _, m := range r.moves[root] {
		v := walk(r.children[root][m.UCI()], depth-1, false)
		if v > bestScore {
			bestScore = v
			bestUCI = m.UCI()
		}
	}
	return bestUCI, bestScore
}

func TestSearch_PrefersFasterMate(t *testing.T) {
	r := newStubRules()
	r.turns["root"] = rules.Black

	// Branch a: forced mate at ply 3. Branch b: forced mate at ply 5.
	// Neither first child is an immediate mate, so the short-circuit
	// stays out of the way.
	r.edge("root", "a1a2", "a1")
	r.edge("a1", "a2a3", "a2")
	r.edge("a2", "a3a4", "a3")
	r.mates["a3"] = true

	r.edge("root", "b1b2", "b1")
	r.edge("b1", "b2b3", "b2")
	r.edge("b2", "b3b4", "b3")
	r.edge("b3", "b4b5", "b4")
	r.edge("b4", "b5b6", "b5")
	r.mates["b5"] = true

	s := New(r, newStubEval(map[string]float64{}), nil, nil)
	move, score, err := s.BestMove(context.Background(), stubPos("root"), 5)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move.UCI() != "a1a2" {
		t.Errorf("BestMove() = %s, want the faster mate a1a2", move.UCI())
	}
	if score != eval.MateScore-3 {
		t.Errorf("score = %v, want %v", score, float64(eval.MateScore-3))
	}
}

func TestSearch_MateScoreMonotonicity(t *testing.T) {
	if eval.MateScore-1 <= eval.MateScore-3 {
		t.Fatal("mate-in-1 must outscore mate-in-3")
	}
}

func TestSearch_PathTracksRootToLeaf(t *testing.T) {
	r := newStubRules()
	r.turns["root"] = rules.Black
	r.edge("root", "a1a2", "mid")
	r.edge("mid", "b1b2", "leaf")

	e := newStubEval(map[string]float64{"leaf": 1})
	s := New(r, e, nil, nil)

	if _, _, err := s.BestMove(context.Background(), stubPos("root"), 2); err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}

	path, ok := e.paths["leaf"]
	if !ok {
		t.Fatal("leaf was never evaluated")
	}
	if path.Len() != 3 {
		t.Fatalf("path length = %d, want 3 (root, mid, leaf)", path.Len())
	}
	for _, key := range []string{"root", "mid", "leaf"} {
		if path.Count(key) != 1 {
			t.Errorf("path.Count(%q) = %d, want 1", key, path.Count(key))
		}
	}
}

func TestSearch_WhiteRootNegatesEvaluator(t *testing.T) {
	r := newStubRules()
	r.turns["root"] = rules.White
	r.edge("root", "a1a2", "good") // Black-positive -50: good for White
	r.edge("root", "b1b2", "bad")  // Black-positive +50: bad for White

	e := newStubEval(map[string]float64{"good": -50, "bad": 50})
	s := New(r, e, nil, nil)

	move, score, err := s.BestMove(context.Background(), stubPos("root"), 1)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if move.UCI() != "a1a2" {
		t.Errorf("BestMove() = %s, want a1a2 for a White root", move.UCI())
	}
	if score != 50 {
		t.Errorf("score = %v, want 50 from the mover's perspective", score)
	}
}

func TestBestMove_ContextCancelled(t *testing.T) {
	scores := map[string]float64{"ax": 1, "ay": 1, "az": 1, "bx": 1, "by": 1, "bz": 1, "cx": 1, "cy": 1, "cz": 1}
	r, e := twoPlyTree(scores)
	s := New(r, e, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.BestMove(ctx, stubPos("root"), 2)
	if err == nil {
		t.Error("BestMove() error = nil, want context error")
	}
}
