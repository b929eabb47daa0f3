package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []model.RoundRecord{
		{Game: model.GameDots, Name: "Square", Outcome: model.OutcomeCompleted, Mistakes: 1},
		{Game: model.GameDots, Name: "Star", Outcome: model.OutcomeSkipped, Mistakes: 4},
		{Game: model.GameHangman, Name: "CAT", Outcome: model.OutcomeLost, Mistakes: 6},
	}
	for i := range records {
		records[i].StartedAt = start.Add(time.Duration(i) * time.Minute)
		records[i].EndedAt = records[i].StartedAt.Add(20 * time.Second)
		records[i].DurationMs = 20000
	}
	if _, err := st.InsertRounds(context.Background(), records); err != nil {
		t.Fatalf("insert rounds: %v", err)
	}
	return st
}

func TestModelOverviewAndTabs(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 2}, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	if len(m.report.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(m.report.Rounds))
	}
	view := m.View()
	if !strings.Contains(view, "dots") || !strings.Contains(view, "hangman") {
		t.Fatalf("overview should list both games:\n%s", view)
	}
	if len(m.names) == 0 || m.names[0] != "CAT" {
		t.Fatalf("expected the hardest level first, got %v", m.names)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabLevelTable {
		t.Fatalf("expected the level table tab")
	}
	if !strings.Contains(m.View(), "Square") {
		t.Fatalf("level table should list Square")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabLevelCurves {
		t.Fatalf("tabs should wrap around")
	}
}

func TestModelGameFilterCycles(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.cfg.Game != model.GameDots || len(m.report.Rounds) != 2 {
		t.Fatalf("expected the dots filter with 2 rounds, got %q with %d", m.cfg.Game, len(m.report.Rounds))
	}
}

func TestApplyFilterValidates(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{}, nil)
	m.filterInputs[0].SetValue("chess")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected unknown game to fail")
	}
	m.filterInputs[0].SetValue("Hangman")
	m.filterInputs[1].SetValue("2025-02-30x")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected bad date to fail")
	}
	m.filterInputs[1].SetValue("2025-01-01")
	m.filterInputs[2].SetValue("5")
	m.filterInputs[3].SetValue("0")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected zero window to fail")
	}
	m.filterInputs[3].SetValue("3")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	if m.cfg.Game != model.GameHangman || m.cfg.Last != 5 || m.cfg.CurveWindow != 3 || m.cfg.Since == nil {
		t.Fatalf("unexpected config %+v", m.cfg)
	}
}

func TestNameSelection(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{}, []string{"Square"})
	if !m.namesCustom || m.names[0] != "Square" {
		t.Fatalf("expected preselected names, got %v", m.names)
	}
	m.nameInput.SetValue(" , ")
	m.applyNameInput()
	if m.namesCustom || len(m.names) == 0 {
		t.Fatalf("empty input should fall back to the hardest levels")
	}
	if got := parseNames("Star, Square,,Star"); len(got) != 2 || got[0] != "Star" || got[1] != "Square" {
		t.Fatalf("unexpected parse %v", got)
	}
}

func TestCycleHelpers(t *testing.T) {
	if nextGame("") != model.Games[0] || nextGame(model.Games[len(model.Games)-1]) != "" {
		t.Fatalf("unexpected game cycle")
	}
	if nextCurveWindow(0) != 5 || nextCurveWindow(7) != 10 || prevCurveWindow(7) != 5 || prevCurveWindow(5) != 1 {
		t.Fatalf("unexpected window steps")
	}
}
