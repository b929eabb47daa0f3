// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/playdeck/internal/dots"
	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/round"
	"github.com/verte-zerg/playdeck/internal/store"
)

type dotsScreen struct {
	game  *dots.Game
	surf  surface
	intro string
}

// NewDots builds the connect-the-dots UI.
func NewDots(suite model.Suite, difficulty model.Difficulty, st *store.Store, audio *BellAudio) *Model {
	return newModel(newDotsScreen(suite, difficulty, audio), st, audio)
}

func newDotsScreen(suite model.Suite, difficulty model.Difficulty, audio engine.Audio) *dotsScreen {
	g := dots.New(suite.Shapes, audio)
	if difficulty != "" && difficulty != model.All {
		g.SetDifficulty(difficulty, time.Time{})
	}
	intro := suite.Instructions
	if intro == "" {
		intro = "Drag from dot to dot in number order to draw the shape."
	}
	return &dotsScreen{game: g, intro: intro}
}

func (s *dotsScreen) Game() string { return model.GameDots }
func (s *dotsScreen) Keys() keyMap { return defaultKeys() }
func (s *dotsScreen) Intro() string { return s.intro }
func (s *dotsScreen) Layout(v surface) { s.surf = v }

func (s *dotsScreen) Started() bool {
	return s.game.Controller().State() != round.StateStart
}

func (s *dotsScreen) Paused() bool {
	return s.game.Controller().State() == round.StatePaused
}

func (s *dotsScreen) Start(now time.Time) { s.game.Start(now) }
func (s *dotsScreen) Reset(now time.Time) { s.game.Reset(now) }
func (s *dotsScreen) Skip(now time.Time) { s.game.Skip(now) }
func (s *dotsScreen) Pause(now time.Time) { s.game.Pause(now) }
func (s *dotsScreen) Resume(now time.Time) { s.game.Resume(now) }
func (s *dotsScreen) Tick(now time.Time) { s.game.Tick(now) }
func (s *dotsScreen) NextWake() (time.Time, bool) { return s.game.NextWake() }
func (s *dotsScreen) Events() []engine.Event { return s.game.Events() }
func (s *dotsScreen) Records() []model.RoundRecord { return s.game.Records() }

func (s *dotsScreen) SetDifficulty(d model.Difficulty, now time.Time) {
	s.game.SetDifficulty(d, now)
}

func (s *dotsScreen) Difficulty() model.Difficulty {
	return s.game.Controller().Filter()
}

func (s *dotsScreen) Mouse(ev engine.PointerEvent, now time.Time) {
	s.game.Handle(ev, s.surf.Rect(), now)
}

func (s *dotsScreen) Key(tea.KeyMsg, time.Time) tea.Cmd { return nil }

func (s *dotsScreen) Title() string {
	name := s.game.Shape().Name
	if name == "" {
		return "Connect the Dots"
	}
	return "Connect the Dots · " + name
}

func (s *dotsScreen) HUD(time.Time) string {
	ctrl := s.game.Controller()
	done, total := s.game.Sequence().Progress()
	hud := fmt.Sprintf("Level %d/%d · %s · %d/%d dots", ctrl.Level(), ctrl.Total(), ctrl.Filter(), done, total)
	if ctrl.FellBack() {
		hud += " · no shapes for that difficulty"
	}
	return hud
}

func (s *dotsScreen) Message() string {
	if msg := s.game.Message(); msg != "" {
		return msg
	}
	return s.game.Prompt()
}

func (s *dotsScreen) Render(c *canvas, _ time.Time) {
	shape := s.game.Shape()
	seq := s.game.Sequence()
	rect := s.surf.Rect()
	cells := map[int][2]int{}
	for _, d := range shape.Dots {
		col, row := s.surf.cellOf(model.Point{X: d.X, Y: d.Y}, rect)
		cells[d.Number] = [2]int{col, row}
	}
	for _, link := range seq.Links() {
		from, to := cells[link.From], cells[link.To]
		c.line(from[0], from[1], to[0], to[1], '•', lineStyle)
	}
	if src := seq.Source(); src != 0 {
		from := cells[src]
		col, row := s.surf.cellOf(s.game.Pointer(), rect)
		c.line(from[0], from[1], col, row, '·', rubberStyle)
	}
	for _, d := range dots.VisibleDots(shape) {
		style := dotStyle
		switch {
		case seq.Completed() || seq.IsConnected(d.Number):
			style = doneDotStyle
		case d.Number == seq.NextExpected():
			style = nextDotStyle
		}
		pos := cells[d.Number]
		c.set(pos[0], pos[1], '●', style)
		c.text(pos[0]+1, pos[1], strconv.Itoa(d.Number), style)
	}
}
