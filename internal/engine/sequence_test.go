package engine

import (
	"errors"
	"testing"

	"github.com/verte-zerg/playdeck/internal/model"
)

func squareTargets() []model.Target {
	shape := model.Shape{
		Name: "Square",
		Dots: []model.Dot{
			{Number: 1, X: 20, Y: 20},
			{Number: 2, X: 80, Y: 20},
			{Number: 3, X: 80, Y: 80},
			{Number: 4, X: 20, Y: 80},
		},
	}
	return shape.Targets()
}

func dot(targets []model.Target, order int) model.Target {
	for _, t := range targets {
		if t.Order == order {
			return t
		}
	}
	return model.Target{}
}

func TestSequenceClosesCycle(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)

	if err := seq.Start(1); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, order := range []int{2, 3, 4, 1} {
		if _, err := seq.Resolve(dot(targets, order)); err != nil {
			t.Fatalf("resolve %d: %v", order, err)
		}
	}
	if !seq.Completed() {
		t.Fatalf("expected completed sequence")
	}
	got := seq.Connected()
	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if len(seq.Links()) != 4 {
		t.Fatalf("expected 4 links, got %d", len(seq.Links()))
	}
	if done, total := seq.Progress(); done != total {
		t.Fatalf("expected full progress, got %d/%d", done, total)
	}
}

func TestSequenceWrongStartDoesNotMutate(t *testing.T) {
	seq := NewSequence(squareTargets())
	for _, order := range []int{2, 3, 4} {
		if err := seq.Start(order); !errors.Is(err, ErrWrongStart) {
			t.Fatalf("expected ErrWrongStart for %d, got %v", order, err)
		}
	}
	if seq.State() != SeqIdle {
		t.Fatalf("expected idle, got %s", seq.State())
	}
	if seq.NextExpected() != 1 || len(seq.Connected()) != 0 {
		t.Fatalf("expected untouched progress")
	}
}

func TestSequenceSkipIsRejected(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)
	if err := seq.Start(1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := seq.Release(dot(targets, 3), true); !errors.Is(err, ErrWrongConnection) {
		t.Fatalf("expected ErrWrongConnection, got %v", err)
	}
	if len(seq.Connected()) != 0 {
		t.Fatalf("expected no connected dots, got %v", seq.Connected())
	}
	if seq.State() != SeqIdle {
		t.Fatalf("expected idle after wrong release, got %s", seq.State())
	}
	if seq.NextExpected() != 1 {
		t.Fatalf("expected next dot 1, got %d", seq.NextExpected())
	}
}

func TestSequenceResolveMismatchKeepsDrawing(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)
	_ = seq.Start(1)
	if _, err := seq.Resolve(dot(targets, 4)); !errors.Is(err, ErrWrongConnection) {
		t.Fatalf("expected ErrWrongConnection, got %v", err)
	}
	if seq.State() != SeqDrawing || seq.Source() != 1 {
		t.Fatalf("expected drawing from 1, got %s from %d", seq.State(), seq.Source())
	}
}

func TestSequenceReleaseChainsFromHitDot(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)
	_ = seq.Start(1)
	if _, err := seq.Release(dot(targets, 2), true); err != nil {
		t.Fatalf("release: %v", err)
	}
	if seq.State() != SeqDrawing || seq.Source() != 2 {
		t.Fatalf("expected drawing from 2, got %s from %d", seq.State(), seq.Source())
	}
	if seq.NextExpected() != 2 || seq.ExpectedNext() != 3 {
		t.Fatalf("unexpected expectations %d -> %d", seq.NextExpected(), seq.ExpectedNext())
	}
}

func TestSequenceReleaseOnEmptySpaceAborts(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)
	_ = seq.Start(1)
	_, _ = seq.Resolve(dot(targets, 2))
	if _, err := seq.Release(model.Target{}, false); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if seq.State() != SeqIdle {
		t.Fatalf("expected idle, got %s", seq.State())
	}
	if seq.NextExpected() != 2 || len(seq.Connected()) != 1 {
		t.Fatalf("expected progress kept, next=%d connected=%v", seq.NextExpected(), seq.Connected())
	}
}

func TestSequenceHoverOnlyAcceptsNextDot(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)
	_ = seq.Start(1)

	if _, ok := seq.Hover(dot(targets, 3)); ok {
		t.Fatalf("expected wrong hover to be ignored")
	}
	if _, ok := seq.Hover(dot(targets, 1)); ok {
		t.Fatalf("expected hover over source to be ignored")
	}
	for _, order := range []int{2, 3, 4, 1} {
		if _, ok := seq.Hover(dot(targets, order)); !ok {
			t.Fatalf("expected hover %d to connect", order)
		}
	}
	if !seq.Completed() {
		t.Fatalf("expected completion through hover chain")
	}
}

func TestSequenceCompletedRejectsInput(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)
	_ = seq.Start(1)
	for _, order := range []int{2, 3, 4, 1} {
		_, _ = seq.Resolve(dot(targets, order))
	}
	if err := seq.Start(1); !errors.Is(err, ErrCompleted) {
		t.Fatalf("expected ErrCompleted, got %v", err)
	}
	seq.Reset()
	if seq.Completed() || seq.NextExpected() != 1 || len(seq.Connected()) != 0 {
		t.Fatalf("expected reset sequence")
	}
}

func TestSequenceSmallShapes(t *testing.T) {
	one := NewSequence([]model.Target{{ID: "1", Order: 1}})
	if err := one.Start(1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := one.Resolve(model.Target{ID: "1", Order: 1}); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget for single dot, got %v", err)
	}
	if one.Completed() {
		t.Fatalf("single dot shape should never complete")
	}

	pair := []model.Target{{ID: "1", Order: 1}, {ID: "2", Order: 2, Position: model.Point{X: 50}}}
	two := NewSequence(pair)
	_ = two.Start(1)
	if _, err := two.Resolve(pair[1]); err != nil {
		t.Fatalf("resolve 2: %v", err)
	}
	if _, err := two.Resolve(pair[0]); err != nil {
		t.Fatalf("resolve 1: %v", err)
	}
	if !two.Completed() {
		t.Fatalf("expected two-dot shape to complete")
	}
}

func TestSequenceEndToEndThroughMapper(t *testing.T) {
	targets := squareTargets()
	seq := NewSequence(targets)
	surface := model.Rect{Left: 0, Top: 0, Width: 400, Height: 200}

	press := func(x, y float64) (model.Target, bool) {
		return seq.Board().Hit(ToNormalized(model.Point{X: x, Y: y}, surface))
	}

	start, ok := press(80, 40)
	if !ok || start.Order != 1 {
		t.Fatalf("expected dot 1 under pointer, got %+v", start)
	}
	if err := seq.Start(start.Order); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, p := range []model.Point{{X: 320, Y: 40}, {X: 320, Y: 160}, {X: 80, Y: 160}, {X: 82, Y: 41}} {
		target, ok := press(p.X, p.Y)
		if _, err := seq.Release(target, ok); err != nil {
			t.Fatalf("release at %+v: %v", p, err)
		}
		if !seq.Completed() {
			_ = seq.Start(seq.NextExpected())
		}
	}
	if !seq.Completed() {
		t.Fatalf("expected square to complete")
	}
}
