package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/playdeck/internal/model"
)

func TestSummarizeOrdersByGame(t *testing.T) {
	end := time.Unix(100, 0)
	rounds := []model.RoundAggregate{
		{Game: model.GameHangman, Outcome: model.OutcomeLost, Mistakes: 6, DurationMs: 4000, EndedAt: end},
		{Game: model.GameDots, Outcome: model.OutcomeCompleted, Mistakes: 1, DurationMs: 3000, EndedAt: end},
		{Game: model.GameDots, Outcome: model.OutcomeSkipped, Mistakes: 3, DurationMs: 5000, EndedAt: end.Add(time.Second)},
	}
	got := Summarize(rounds)
	if len(got) != 2 || got[0].Game != model.GameDots || got[1].Game != model.GameHangman {
		t.Fatalf("unexpected summaries: %+v", got)
	}
	dots := got[0]
	if dots.Plays != 2 || dots.Completed != 1 {
		t.Fatalf("unexpected dots counts: %+v", dots)
	}
	if dots.CompletionRate() != 0.5 {
		t.Fatalf("expected 0.5 completion, got %v", dots.CompletionRate())
	}
	if dots.AvgMistakes() != 2 {
		t.Fatalf("expected 2 avg mistakes, got %v", dots.AvgMistakes())
	}
	if dots.AvgDuration() != 4*time.Second {
		t.Fatalf("expected 4s avg, got %v", dots.AvgDuration())
	}
	if dots.FastestMs != 3000 {
		t.Fatalf("expected fastest 3000, got %d", dots.FastestMs)
	}
	if !dots.LastPlayed.Equal(end.Add(time.Second)) {
		t.Fatalf("unexpected last played: %v", dots.LastPlayed)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); len(got) != 3 || strings.Trim(got, "+") != "" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got[0] != ' ' || got[1] != '@' {
		t.Fatalf("unexpected sparkline: %q", got)
	}
}

func TestRenderSummaryAndNames(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No rounds found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
	buf.Reset()
	rounds := []model.RoundAggregate{
		{Game: model.GamePool, Outcome: model.OutcomeCompleted, DurationMs: 65000},
	}
	if err := RenderSummary(&buf, rounds); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "pool") || !strings.Contains(out, "100.0%") || !strings.Contains(out, "1:05") {
		t.Fatalf("unexpected summary: %q", out)
	}
	buf.Reset()
	names := []model.NameAggregate{{Game: model.GameLabel, Name: "Plant", Plays: 2, Completed: 1, DurationMs: 10000}}
	if err := RenderNameTable(&buf, names); err != nil {
		t.Fatalf("render names: %v", err)
	}
	if !strings.Contains(buf.String(), "Plant") || !strings.Contains(buf.String(), "50.0%") {
		t.Fatalf("unexpected name table: %q", buf.String())
	}
}

func TestRenderNameCurvesSkipsUnplayedNames(t *testing.T) {
	rounds := []model.RoundAggregate{
		{Game: model.GameDots, Name: "Square", Outcome: model.OutcomeCompleted},
		{Game: model.GameDots, Name: "Star", Outcome: model.OutcomeSkipped},
		{Game: model.GameDots, Name: "Square", Outcome: model.OutcomeSkipped},
	}
	if got := NameCompletionSeries(rounds, "Square"); len(got) != 2 || got[0] != 100 || got[1] != 0 {
		t.Fatalf("unexpected series %v", got)
	}
	var buf bytes.Buffer
	if err := RenderNameCurvesWithSize(&buf, rounds, []string{"Square", "Moon"}, 1, 80, 2, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Square") || strings.Contains(out, "Moon") {
		t.Fatalf("unexpected curves output:\n%s", out)
	}
	buf.Reset()
	if err := RenderNameCurvesWithSize(&buf, rounds, []string{"Moon"}, 1, 80, 2, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No rounds") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}
}
