package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/store"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// newTestModel hosts s in a 100x54 terminal, leaving a 100x50 surface
// starting at row 2.
func newTestModel(t *testing.T, s screen, st *store.Store) (*Model, *time.Time) {
	t.Helper()
	clock := t0
	m := newModel(s, st, NewBellAudio(io.Discard, false))
	m.now = func() time.Time { return clock }
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 54})
	return m, &clock
}

func openTestStore(t *testing.T) *store.Store {
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
	return st
}

func press(m *Model, col, row int) {
	m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func drag(m *Model, col, row int) {
	m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func release(m *Model, col, row int) {
	m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func enter(m *Model) {
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func typeRune(m *Model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func testSuite() model.Suite {
	return model.Suite{
		Shapes: []model.Shape{
			{
				Name:       "Square",
				Difficulty: model.Easy,
				Dots: []model.Dot{
					{Number: 1, X: 20, Y: 20},
					{Number: 2, X: 80, Y: 20},
					{Number: 3, X: 80, Y: 80},
					{Number: 4, X: 20, Y: 80},
				},
			},
			{
				Name:       "Triangle",
				Difficulty: model.Easy,
				Dots: []model.Dot{
					{Number: 1, X: 50, Y: 10},
					{Number: 2, X: 90, Y: 90},
					{Number: 3, X: 10, Y: 90},
				},
			},
		},
		Scenarios: []model.Scenario{
			{
				ID:         1,
				Name:       "Sky",
				Difficulty: model.Easy,
				Title:      "Label the sky",
				Image:      "sky.png",
				LabelPositions: []model.LabelPosition{
					{ID: "sun", X: 30, Y: 50, Label: "Sun", TargetX: 20, TargetY: 30},
					{ID: "moon", X: 70, Y: 50, Label: "Moon", TargetX: 80, TargetY: 30},
				},
				Labels: []string{"Sun", "Moon"},
			},
		},
	}
}

func TestModelDotsRoundIsSavedAndAdvances(t *testing.T) {
	st := openTestStore(t)
	s := newDotsScreen(testSuite(), model.All, nil)
	m, clock := newTestModel(t, s, st)
	enter(m)
	if !s.Started() {
		t.Fatalf("enter should start the game")
	}

	// Dot (x%, y%) sits at terminal cell (x, 2+y/2).
	press(m, 20, 12)
	drag(m, 80, 12)
	drag(m, 80, 42)
	release(m, 20, 42)
	press(m, 20, 42)
	release(m, 20, 12)

	if !s.game.Sequence().Completed() {
		t.Fatalf("expected square complete, connected=%v", s.game.Sequence().Connected())
	}
	rounds, err := st.ListRounds(context.Background(), model.StatsConfig{Game: model.GameDots})
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 1 || rounds[0].Name != "Square" || rounds[0].Outcome != model.OutcomeCompleted {
		t.Fatalf("unexpected saved rounds %+v", rounds)
	}
	if m.last == nil || m.last.ID == "" {
		t.Fatalf("footer should show the saved round")
	}
	if len(m.floats) == 0 {
		t.Fatalf("completion should start a floating message")
	}

	for i := 0; i < 5 && s.game.Shape().Name != "Triangle"; i++ {
		if m.wakeAt.IsZero() {
			t.Fatalf("no wake scheduled while waiting for the next shape")
		}
		*clock = m.wakeAt
		m.Update(wakeMsg{at: m.wakeAt})
	}
	if s.game.Shape().Name != "Triangle" {
		t.Fatalf("expected the next shape, got %q", s.game.Shape().Name)
	}
}

func TestModelIgnoresMouseWhilePaused(t *testing.T) {
	s := newDotsScreen(testSuite(), model.All, nil)
	m, _ := newTestModel(t, s, nil)
	enter(m)
	typeRune(m, 'p')
	if !s.Paused() {
		t.Fatalf("p should pause")
	}
	press(m, 20, 12)
	if s.game.Sequence().Source() != 0 {
		t.Fatalf("mouse input should be ignored while paused")
	}
	typeRune(m, 'p')
	press(m, 20, 12)
	if s.game.Sequence().Source() != 1 {
		t.Fatalf("expected drawing from dot 1 after resume")
	}
}

func TestModelViewShowsIntroBeforeStart(t *testing.T) {
	s := newDotsScreen(testSuite(), model.All, nil)
	m, _ := newTestModel(t, s, nil)
	view := m.View()
	if view == "" {
		t.Fatalf("expected a view after the window size is known")
	}
}

func TestNextDifficultyCycles(t *testing.T) {
	if nextDifficulty(model.Easy) != model.Medium || nextDifficulty(model.All) != model.Easy {
		t.Fatalf("unexpected difficulty cycle")
	}
	if nextDifficulty("bogus") != model.Easy {
		t.Fatalf("unknown difficulty should restart the cycle")
	}
}
