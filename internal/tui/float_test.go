package tui

import "testing"

func TestFloatRisesAndExpires(t *testing.T) {
	f := newFloat("+1")
	if f.update(floatDuration / 2) {
		t.Fatalf("float finished too early")
	}
	if f.rows() < 1 {
		t.Fatalf("expected the float to have risen, got %d rows", f.rows())
	}
	if !f.update(floatDuration) {
		t.Fatalf("float should finish after its duration")
	}
	if f.rows() != floatRise {
		t.Fatalf("expected final rise %d, got %d", floatRise, f.rows())
	}
}

func TestUpdateFloatsDropsFinished(t *testing.T) {
	old := newFloat("old")
	old.update(floatDuration)
	fresh := newFloat("new")
	kept := updateFloats([]*floatText{old, fresh}, 0.01)
	if len(kept) != 1 || kept[0].text != "new" {
		t.Fatalf("expected only the fresh float, got %d", len(kept))
	}
}
