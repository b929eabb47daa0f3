package pool

import (
	"testing"
	"time"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/generator"
	"github.com/verte-zerg/playdeck/internal/model"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedRound() generator.Round {
	return generator.Round{
		Balls: []generator.Ball{
			{ID: 0, Value: 3},
			{ID: 1, Value: 4},
			{ID: 2, Value: 9},
			{ID: 3, Value: 1},
			{ID: 4, Value: 6},
		},
		Target: 7,
		Pair:   [2]int{0, 1},
	}
}

func startFixed(winScore int) (*Game, *engine.RecordingAudio) {
	audio := &engine.RecordingAudio{}
	g := New(generator.NewSeeded(1), audio, winScore)
	g.Start(t0)
	g.round = fixedRound()
	return g, audio
}

func TestHumanScoresWithCorrectPair(t *testing.T) {
	g, audio := startFixed(0)
	g.Select(3, t0)
	g.Select(4, t0)
	if human, _ := g.Scores(); human != 1 {
		t.Fatalf("expected human point, got %d", human)
	}
	if audio.Count(engine.SoundSuccess) != 1 {
		t.Fatalf("expected success cue")
	}
	gen := g.Generation()
	g.Tick(t0.Add(HumanNextDelay))
	if g.Generation() == gen {
		t.Fatalf("expected new round after delay")
	}
	if g.Turn() != TurnHuman || len(g.Selected()) != 0 {
		t.Fatalf("expected fresh human turn")
	}
}

func TestSelectionToggleAndLimit(t *testing.T) {
	g, _ := startFixed(0)
	g.Select(2, t0)
	g.Select(2, t0)
	if len(g.Selected()) != 0 {
		t.Fatalf("expected toggle off, got %v", g.Selected())
	}
	g.Select(2, t0)
	g.Select(9, t0)
	if len(g.Selected()) != 1 {
		t.Fatalf("expected out of range id ignored")
	}
}

func TestWrongPairHandsTurnToOpponent(t *testing.T) {
	g, _ := startFixed(0)
	g.Select(2, t0)
	g.Select(4, t0)

	if g.Turn() != TurnOpponent {
		t.Fatalf("expected opponent turn")
	}
	if rev := g.Revealed(); len(rev) != 1 || rev[0] != 0 {
		t.Fatalf("expected first pair ball revealed, got %v", rev)
	}
	g.Select(0, t0)
	if len(g.Selected()) != 0 {
		t.Fatalf("expected human input ignored on opponent turn")
	}

	g.Tick(t0.Add(RevealDelay))
	if rev := g.Revealed(); len(rev) != 2 || rev[1] != 1 {
		t.Fatalf("expected pair revealed, got %v", rev)
	}
	if _, opp := g.Scores(); opp != 1 {
		t.Fatalf("expected opponent point, got %d", opp)
	}
	g.Tick(t0.Add(RevealDelay + OpponentNextDelay))
	if g.Turn() != TurnHuman {
		t.Fatalf("expected turn reset to human on new round")
	}
	records := g.Records()
	if len(records) != 1 || records[0].Outcome != model.OutcomeOpponent || records[0].Mistakes != 1 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestTurnTimeoutForcesReveal(t *testing.T) {
	g, _ := startFixed(0)
	g.Tick(t0.Add(TurnTimeout - time.Millisecond))
	if g.Turn() != TurnHuman {
		t.Fatalf("timed out too early")
	}
	g.Tick(t0.Add(TurnTimeout))
	if g.Turn() != TurnOpponent {
		t.Fatalf("expected opponent after timeout")
	}
}

func TestStaleTimerIsNoOp(t *testing.T) {
	g, _ := startFixed(0)
	g.Select(0, t0)
	g.Select(1, t0)
	g.Tick(t0.Add(HumanNextDelay))
	g.round = fixedRound()

	before := g.Generation()
	g.timers.Start(KeyReveal, before-1, t0.Add(HumanNextDelay), 0)
	g.Tick(t0.Add(HumanNextDelay))
	if _, opp := g.Scores(); opp != 0 {
		t.Fatalf("expected stale reveal ignored")
	}
	if g.Generation() != before {
		t.Fatalf("expected generation unchanged")
	}
}

func TestPauseSuspendsTurnTimer(t *testing.T) {
	g, _ := startFixed(0)
	g.Pause(t0.Add(5 * time.Second))
	g.Tick(t0.Add(time.Minute))
	if g.Turn() != TurnHuman {
		t.Fatalf("expected no timeout while paused")
	}
	g.Select(0, t0.Add(time.Minute))
	if len(g.Selected()) != 0 {
		t.Fatalf("expected selection ignored while paused")
	}
	resume := t0.Add(time.Minute)
	g.Resume(resume)
	g.Tick(resume.Add(TurnTimeout - time.Second))
	if g.Turn() != TurnHuman {
		t.Fatalf("expected full timeout after resume")
	}
	if got := g.Clock(resume); got != "00:05" {
		t.Fatalf("unexpected clock %q", got)
	}
}

func TestFirstToWinScoreEndsMatch(t *testing.T) {
	g, _ := startFixed(2)
	now := t0
	for i := 0; i < 2; i++ {
		g.round = fixedRound()
		g.Select(0, now)
		g.Select(1, now)
		now = now.Add(HumanNextDelay)
		g.Tick(now)
	}
	if !g.Over() || !g.Paused() {
		t.Fatalf("expected finished paused match")
	}
	if winner, ok := g.Winner(); !ok || winner != TurnHuman {
		t.Fatalf("expected human winner")
	}
	g.Resume(now)
	if !g.Paused() {
		t.Fatalf("expected match to stay paused until reset")
	}
	g.Reset(now)
	if human, opp := g.Scores(); human != 0 || opp != 0 || g.Over() {
		t.Fatalf("expected reset scores")
	}
}

func TestConcedeRevealsOpponentPair(t *testing.T) {
	g, _ := startFixed(0)
	g.Concede(t0)
	if g.Turn() != TurnOpponent {
		t.Fatalf("expected opponent turn after concede")
	}
	g.Tick(t0.Add(RevealDelay))
	if _, opponent := g.Scores(); opponent != 1 {
		t.Fatalf("expected opponent score 1, got %d", opponent)
	}
	g.Concede(t0.Add(RevealDelay))
	if _, opponent := g.Scores(); opponent != 1 {
		t.Fatalf("concede on a resolved round should be ignored")
	}
}
