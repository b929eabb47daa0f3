package stats

import (
	"testing"

	"github.com/verte-zerg/playdeck/internal/model"
)

func TestTopNamesByPlays(t *testing.T) {
	aggs := []model.NameAggregate{
		{Name: "b", Plays: 3},
		{Name: "a", Plays: 3},
		{Name: "c", Plays: 1},
	}
	top := TopNamesByPlays(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 names, got %d", len(top))
	}
	if top[0] != "a" || top[1] != "b" {
		t.Fatalf("unexpected order: %v", top)
	}
	if TopNamesByPlays(aggs, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestSelectHardest(t *testing.T) {
	aggs := []model.NameAggregate{
		{Game: "dots", Name: "Square", Plays: 4, Completed: 4, Mistakes: 1},
		{Game: "dots", Name: "Star", Plays: 4, Completed: 1, Mistakes: 9},
		{Game: "dots", Name: "House", Plays: 4, Completed: 1, Mistakes: 2},
	}
	got := SelectHardest(aggs, 2)
	if len(got) != 2 || got[0] != "Star" || got[1] != "House" {
		t.Fatalf("unexpected hardest: %v", got)
	}
	if all := SelectHardest(aggs, 0); len(all) != 3 {
		t.Fatalf("expected all names, got %v", all)
	}
}
