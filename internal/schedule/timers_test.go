package schedule

import (
	"testing"
	"time"
)

func TestTimersDueInDeadlineOrder(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := New()
	tm.Start("late", 1, now, 300*time.Millisecond)
	tm.Start("early", 1, now, 100*time.Millisecond)

	if got := tm.Due(now.Add(50 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("expected nothing due, got %+v", got)
	}
	got := tm.Due(now.Add(time.Second))
	if len(got) != 2 || got[0].Key != "early" || got[1].Key != "late" {
		t.Fatalf("unexpected fired order %+v", got)
	}
	if tm.Pending("early") || tm.Pending("late") {
		t.Fatalf("expected fired timers to be removed")
	}
}

func TestTimersStartReplacesPending(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := New()
	tm.Start("advance", 1, now, time.Second)
	tm.Start("advance", 2, now, 2*time.Second)

	if got := tm.Due(now.Add(1500 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("expected replaced timer not to fire, got %+v", got)
	}
	got := tm.Due(now.Add(2 * time.Second))
	if len(got) != 1 || got[0].Gen != 2 {
		t.Fatalf("expected generation 2 to fire, got %+v", got)
	}
}

func TestTimersNextWake(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := New()
	if _, ok := tm.NextWake(); ok {
		t.Fatalf("expected no wake for empty set")
	}
	tm.Start("a", 0, now, 3*time.Second)
	tm.Start("b", 0, now, time.Second)
	next, ok := tm.NextWake()
	if !ok || !next.Equal(now.Add(time.Second)) {
		t.Fatalf("unexpected wake %v ok=%v", next, ok)
	}
}

func TestTimersPauseRestartAndPreserve(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := New()
	tm.SetPolicy("advance", Restart)
	tm.SetPolicy("countdown", Preserve)
	tm.Start("advance", 1, now, 3*time.Second)
	tm.Start("countdown", 1, now, 10*time.Second)
	tm.Start("message", 1, now, time.Second)

	tm.Pause(now.Add(2 * time.Second))
	got := tm.Due(now.Add(time.Minute))
	if len(got) != 1 || got[0].Key != "message" {
		t.Fatalf("expected only message to run while paused, got %+v", got)
	}

	resumeAt := now.Add(time.Minute)
	tm.Resume(resumeAt)
	if left, _ := tm.Remaining("advance", resumeAt); left != 3*time.Second {
		t.Fatalf("expected full restart, got %v", left)
	}
	if left, _ := tm.Remaining("countdown", resumeAt); left != 8*time.Second {
		t.Fatalf("expected preserved remainder, got %v", left)
	}
}

func TestTimersStartWhilePaused(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := New()
	tm.SetPolicy("turn", Restart)
	tm.Pause(now)
	tm.Start("turn", 4, now, 7*time.Second)
	if _, ok := tm.NextWake(); ok {
		t.Fatalf("expected suspended timer not to wake")
	}
	tm.Resume(now.Add(time.Hour))
	if got := tm.Due(now.Add(time.Hour + 7*time.Second)); len(got) != 1 || got[0].Gen != 4 {
		t.Fatalf("expected turn timer after resume, got %+v", got)
	}
}

func TestTimersCancelAllKeeps(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := New()
	tm.Start("message", 0, now, time.Second)
	tm.Start("advance", 0, now, time.Second)
	tm.CancelAll("message")
	if !tm.Pending("message") || tm.Pending("advance") {
		t.Fatalf("unexpected pending set after CancelAll")
	}
	tm.Cancel("message")
	if tm.Pending("message") {
		t.Fatalf("expected message cancelled")
	}
}
