package generator

import (
	"math"
	"testing"
)

func TestRoundPairSumsToTarget(t *testing.T) {
	g := NewSeeded(7)
	for i := 0; i < 200; i++ {
		r := g.Round()
		if len(r.Balls) < MinBalls || len(r.Balls) > MaxBalls {
			t.Fatalf("unexpected ball count %d", len(r.Balls))
		}
		if r.Pair[0] == r.Pair[1] {
			t.Fatalf("expected distinct pair, got %v", r.Pair)
		}
		sum := r.Balls[r.Pair[0]].Value + r.Balls[r.Pair[1]].Value
		if sum != r.Target {
			t.Fatalf("expected pair sum %d, got %d", r.Target, sum)
		}
		for _, b := range r.Balls {
			if b.Value < MinValue || b.Value > MaxValue {
				t.Fatalf("unexpected value %d", b.Value)
			}
		}
	}
}

func TestLayoutAvoidsCenterAndOverlap(t *testing.T) {
	g := NewSeeded(42)
	for i := 0; i < 50; i++ {
		points := g.Layout(MaxBalls)
		for a := range points {
			if InCenter(points[a]) {
				t.Fatalf("point inside centre: %+v", points[a])
			}
			for b := a + 1; b < len(points); b++ {
				d := math.Hypot(points[a].X-points[b].X, points[a].Y-points[b].Y)
				if d < minSep {
					t.Fatalf("points too close: %+v %+v", points[a], points[b])
				}
			}
		}
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeeded(3).Round()
	b := NewSeeded(3).Round()
	if a.Target != b.Target || len(a.Balls) != len(b.Balls) {
		t.Fatalf("expected identical rounds for equal seeds")
	}
}
