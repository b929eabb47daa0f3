package hangman

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/playdeck/internal/model"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestGuessRevealsLetters(t *testing.T) {
	g := New(nil, nil)
	if g.Word() != "CAT" {
		t.Fatalf("expected CAT first, got %s", g.Word())
	}
	if err := g.Guess('a', t0); err != nil {
		t.Fatalf("guess: %v", err)
	}
	if g.Masked() != "_ A _" {
		t.Fatalf("unexpected mask %q", g.Masked())
	}
	if err := g.Guess('A', t0); !errors.Is(err, ErrAlreadyGuessed) {
		t.Fatalf("expected ErrAlreadyGuessed, got %v", err)
	}
	if err := g.Guess('7', t0); !errors.Is(err, ErrNotLetter) {
		t.Fatalf("expected ErrNotLetter, got %v", err)
	}
	if g.Hint() != "A small animal that says meow" {
		t.Fatalf("unexpected hint %q", g.Hint())
	}
}

func TestWinAutoAdvances(t *testing.T) {
	g := New(nil, nil)
	for _, r := range "CAT" {
		_ = g.Guess(r, t0)
	}
	if g.Status() != StatusWon {
		t.Fatalf("expected won, got %s", g.Status())
	}
	g.Tick(t0.Add(AdvanceDelay - time.Millisecond))
	if g.Word() != "CAT" {
		t.Fatalf("advanced too early")
	}
	g.Tick(t0.Add(AdvanceDelay))
	if g.Word() != "DOG" || g.Status() != StatusPlaying {
		t.Fatalf("expected DOG, got %s %s", g.Word(), g.Status())
	}
	records := g.Records()
	if len(records) != 1 || records[0].Outcome != model.OutcomeCompleted {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestSixWrongGuessesLose(t *testing.T) {
	g := New(nil, nil)
	for _, r := range "BDEFGH" {
		_ = g.Guess(r, t0)
	}
	if g.Status() != StatusLost || g.Wrong() != MaxWrong {
		t.Fatalf("expected lost after %d wrong guesses", MaxWrong)
	}
	if g.Masked() != "C A T" {
		t.Fatalf("expected word revealed on loss, got %q", g.Masked())
	}
	if err := g.Guess('C', t0); !errors.Is(err, ErrWordOver) {
		t.Fatalf("expected ErrWordOver, got %v", err)
	}
	g.Reset(t0)
	if g.Word() != "CAT" || g.Wrong() != 0 {
		t.Fatalf("expected CAT replayed")
	}
}

func TestNextWrapsLevels(t *testing.T) {
	g := New([]Level{{Name: "One", Words: []string{"A"}}, {Name: "Two", Words: []string{"B"}}, {Name: "Empty"}}, nil)
	g.Next(t0)
	if g.Level().Name != "Two" {
		t.Fatalf("expected level Two, got %s", g.Level().Name)
	}
	g.Next(t0)
	if g.Level().Name != "One" {
		t.Fatalf("expected wrap to One, got %s", g.Level().Name)
	}
	if g.Hint() != DefaultHint {
		t.Fatalf("expected default hint")
	}
}

func TestStaleAdvanceAfterSkip(t *testing.T) {
	g := New(nil, nil)
	for _, r := range "CAT" {
		_ = g.Guess(r, t0)
	}
	g.Skip(t0)
	g.Tick(t0.Add(AdvanceDelay))
	if g.Word() != "DOG" {
		t.Fatalf("expected skip to cancel the pending advance, got %s", g.Word())
	}
}
