package engine

import (
	"testing"

	"github.com/verte-zerg/playdeck/internal/model"
)

func TestFindTargetToleranceIsStrict(t *testing.T) {
	targets := []model.Target{{ID: "1", Position: model.Point{X: 50, Y: 50}, Order: 1}}

	if _, ok := FindTarget(model.Point{X: 50, Y: 58}, targets, DotTolerance); ok {
		t.Fatalf("expected no hit exactly at tolerance")
	}
	if _, ok := FindTarget(model.Point{X: 50, Y: 57.99}, targets, DotTolerance); !ok {
		t.Fatalf("expected hit just inside tolerance")
	}
}

func TestFindTargetPicksNearest(t *testing.T) {
	targets := []model.Target{
		{ID: "a", Position: model.Point{X: 10, Y: 10}},
		{ID: "b", Position: model.Point{X: 14, Y: 10}},
	}
	got, ok := FindTarget(model.Point{X: 13, Y: 10}, targets, LabelTolerance)
	if !ok || got.ID != "b" {
		t.Fatalf("expected b, got %+v ok=%v", got, ok)
	}
}

func TestFindTargetTieKeepsInputOrder(t *testing.T) {
	targets := []model.Target{
		{ID: "left", Position: model.Point{X: 40, Y: 50}},
		{ID: "right", Position: model.Point{X: 60, Y: 50}},
	}
	got, ok := FindTarget(model.Point{X: 50, Y: 50}, targets, LabelTolerance)
	if !ok || got.ID != "left" {
		t.Fatalf("expected first target on tie, got %+v", got)
	}
}

func TestFindTargetEmpty(t *testing.T) {
	if _, ok := FindTarget(model.Point{}, nil, DotTolerance); ok {
		t.Fatalf("expected no hit with no targets")
	}
}

func TestBoardCopiesTargets(t *testing.T) {
	targets := []model.Target{{ID: "1", Position: model.Point{X: 5, Y: 5}, Order: 1}}
	board := NewBoard(targets, DotTolerance)
	targets[0].Position.X = 90
	if _, ok := board.Hit(model.Point{X: 5, Y: 5}); !ok {
		t.Fatalf("expected board to keep its own copy")
	}
}
