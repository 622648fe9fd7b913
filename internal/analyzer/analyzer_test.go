package analyzer

import (
	"reflect"
	"testing"
)

func TestClassifySigned_WorkedExample(t *testing.T) {
	// The first side gains 30 on ply 1; the second side concedes it back.
	grades := ClassifySigned([]float64{0, 30, 30})

	if grades[0] != None {
		t.Errorf("grades[0] = %v, want None for the initial position", grades[0])
	}
	// Mover of ply 1: loss = -30, a gain, so Best.
	if grades[1] != Best {
		t.Errorf("grades[1] = %v, want Best", grades[1])
	}
	// Mover of ply 2: the evaluation did not move, loss 0, so Best.
	if grades[2] != Best {
		t.Errorf("grades[2] = %v, want Best for an unchanged evaluation", grades[2])
	}

	// With ply 2 conceding 30 to the first side, its mover is at +30 loss.
	grades = ClassifySigned([]float64{0, 30, 60})
	if grades[2] != Excellent {
		t.Errorf("grades[2] = %v, want Excellent for a 30-point loss", grades[2])
	}
}

func TestClassifySigned_Bands(t *testing.T) {
	tests := []struct {
		name string
		loss float64
		want Classification
	}{
		{"gain", -100, Best},
		{"zero", 0, Best},
		{"small", 25, Best},
		{"excellent boundary", 50, Excellent},
		{"good boundary", 100, Good},
		{"inaccuracy boundary", 200, Inaccuracy},
		{"mistake boundary", 400, Mistake},
		{"blunder", 401, Blunder},
		{"huge blunder", 9000, Blunder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Even ply: loss is the raw change.
			grades := ClassifySigned([]float64{0, 0, tt.loss})
			if grades[2] != tt.want {
				t.Errorf("loss %v graded %v, want %v", tt.loss, grades[2], tt.want)
			}
		})
	}
}

func TestClassifySigned_LossIsRelativeToMover(t *testing.T) {
	// The trace is first-mover-positive, so a 300-point drop on ply 1 is
	// the first mover's own loss.
	grades := ClassifySigned([]float64{0, -300})
	if grades[1] != Mistake {
		t.Errorf("grades[1] = %v, want Mistake for a 300-point loss", grades[1])
	}

	// The same drop on an even ply is the second mover's gain.
	grades = ClassifySigned([]float64{0, 0, -300})
	if grades[2] != Best {
		t.Errorf("grades[2] = %v, want Best for the even-ply mover's gain", grades[2])
	}
}

func TestClassifySigned_EmptyAndSingle(t *testing.T) {
	if got := ClassifySigned(nil); len(got) != 0 {
		t.Errorf("ClassifySigned(nil) = %v, want empty", got)
	}
	got := ClassifySigned([]float64{0})
	if len(got) != 1 || got[0] != None {
		t.Errorf("ClassifySigned([0]) = %v, want [None]", got)
	}
}

func TestClassifySigned_Idempotent(t *testing.T) {
	evals := []float64{0, 12, -80, 40, 40, -500}
	first := ClassifySigned(evals)
	second := ClassifySigned(evals)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ClassifySigned not idempotent: %v vs %v", first, second)
	}
}

func TestClassifyAbsolute_Bands(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  Classification
	}{
		{"unchanged", 0, Best},
		{"tiny", 10, Best},
		{"small", 25, Excellent},
		{"moderate", 50, Good},
		{"notable", 100, Inaccuracy},
		{"large", 200, Mistake},
		{"huge", 201, Blunder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := ClassifyAbsolute([]float64{0, tt.delta})
			down := ClassifyAbsolute([]float64{0, -tt.delta})
			if up[1] != tt.want {
				t.Errorf("delta +%v graded %v, want %v", tt.delta, up[1], tt.want)
			}
			if down[1] != tt.want {
				t.Errorf("delta -%v graded %v, want %v: bands are unsigned", tt.delta, down[1], tt.want)
			}
		})
	}
}

func TestClassification_String(t *testing.T) {
	if Blunder.String() != "blunder" {
		t.Errorf("Blunder.String() = %q, want \"blunder\"", Blunder.String())
	}
	if None.String() != "" {
		t.Errorf("None.String() = %q, want empty", None.String())
	}
}

func TestClassification_ReservedGradesExist(t *testing.T) {
	// Brilliant, Great, Book and Forced are part of the scale but never
	// assigned by the swing classifiers.
	for _, evals := range [][]float64{{0, 1, 2}, {0, -1000, 1000}, {0, 0, 0, 0}} {
		for _, c := range ClassifySigned(evals)[1:] {
			switch c {
			case Brilliant, Great, Book, Forced, None:
				t.Errorf("classifier assigned reserved grade %v", c)
			}
		}
	}
}
