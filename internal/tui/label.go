// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/label"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/round"
	"github.com/verte-zerg/playdeck/internal/scenario"
	"github.com/verte-zerg/playdeck/internal/store"
)

const trayRows = 3

// LabelOptions configures the labelling UI.
type LabelOptions struct {
	Difficulty model.Difficulty
	Timeout    time.Duration
	// SavePath is where the editor saves the suite.
	SavePath string
}

type trayToken struct {
	label string
	col   int
	row   int
	width int
}

type labelScreen struct {
	suite  model.Suite
	opts   LabelOptions
	audio  engine.Audio
	game   *label.Game
	surf   surface
	editor *Editor
}

// NewLabel builds the labelling UI.
func NewLabel(suite model.Suite, opts LabelOptions, st *store.Store, audio *BellAudio) *Model {
	return newModel(newLabelScreen(suite, opts, audio), st, audio)
}

func newLabelScreen(suite model.Suite, opts LabelOptions, audio engine.Audio) *labelScreen {
	s := &labelScreen{suite: suite, opts: opts, audio: audio}
	s.rebuild()
	return s
}

func (s *labelScreen) rebuild() {
	s.game = label.New(s.suite.Scenarios, s.audio, s.opts.Timeout)
	if d := s.opts.Difficulty; d != "" && d != model.All {
		s.game.SetDifficulty(d, time.Time{})
	}
	s.Layout(s.surf)
}

func (s *labelScreen) Game() string { return model.GameLabel }
func (s *labelScreen) Keys() keyMap { return defaultKeys() }

func (s *labelScreen) Intro() string {
	return "Drag each label from the tray onto its place in the picture before the time runs out."
}

func (s *labelScreen) Layout(v surface) {
	s.surf = v
	container := v
	container.height = v.height - trayRows
	if container.height < 1 {
		container.height = 1
	}
	s.game.SetSurface(container.Rect())
}

func (s *labelScreen) Started() bool {
	return s.game.Controller().State() != round.StateStart
}

func (s *labelScreen) Paused() bool {
	return s.game.Controller().State() == round.StatePaused
}

func (s *labelScreen) Start(now time.Time) { s.game.Start(now) }
func (s *labelScreen) Reset(now time.Time) { s.game.Reset(now) }
func (s *labelScreen) Skip(now time.Time) { s.game.Skip(now) }
func (s *labelScreen) Pause(now time.Time) { s.game.Pause(now) }
func (s *labelScreen) Resume(now time.Time) { s.game.Resume(now) }
func (s *labelScreen) Tick(now time.Time) { s.game.Tick(now) }
func (s *labelScreen) NextWake() (time.Time, bool) { return s.game.NextWake() }
func (s *labelScreen) Events() []engine.Event { return s.game.Events() }
func (s *labelScreen) Records() []model.RoundRecord { return s.game.Records() }

func (s *labelScreen) SetDifficulty(d model.Difficulty, now time.Time) {
	s.opts.Difficulty = d
	s.game.SetDifficulty(d, now)
}

func (s *labelScreen) Difficulty() model.Difficulty {
	return s.game.Controller().Filter()
}

func (s *labelScreen) Title() string {
	scn := s.game.Scenario()
	if scn.Title != "" {
		return scn.Title
	}
	return "Label the Picture · " + scn.Name
}

func (s *labelScreen) HUD(now time.Time) string {
	ctrl := s.game.Controller()
	done, total := s.game.Progress()
	left := int(s.game.TimeLeft(now).Round(time.Second) / time.Second)
	hud := fmt.Sprintf("Level %d/%d · %s · (%d/%d) · %d:%02d", ctrl.Level(), ctrl.Total(), ctrl.Filter(), done, total, left/60, left%60)
	if ctrl.FellBack() {
		hud += " · no scenarios for that difficulty"
	}
	return hud
}

func (s *labelScreen) Message() string {
	if msg := s.game.Message(); msg != "" {
		return msg
	}
	if s.game.Controller().State() == round.StateAllComplete {
		return "All scenarios complete!"
	}
	return "Drag each label onto the picture"
}

func (s *labelScreen) Key(msg tea.KeyMsg, now time.Time) tea.Cmd {
	if s.editor != nil {
		cmd := s.editor.key(msg)
		if s.editor.closed {
			s.closeEditor(now)
		}
		return cmd
	}
	if msg.String() == "e" && s.game.KeyE(now) {
		s.openEditor(now)
	}
	return nil
}

func (s *labelScreen) openEditor(now time.Time) {
	e, err := newEditor(s.suite, s.opts.SavePath)
	if err != nil {
		logErrf("failed to open editor: %v\n", err)
		return
	}
	s.game.Pause(now)
	s.editor = e
}

func (s *labelScreen) closeEditor(now time.Time) {
	committed := s.editor.committed
	suite := s.editor.Suite()
	s.editor = nil
	if !committed {
		s.game.Resume(now)
		return
	}
	s.suite = suite
	s.rebuild()
}

// OverlayActive implements overlayScreen.
func (s *labelScreen) OverlayActive() bool { return s.editor != nil }

// OverlayView implements overlayScreen.
func (s *labelScreen) OverlayView(width, height int) string {
	if s.editor.width != width || s.editor.height != height {
		s.editor.resize(width, height)
	}
	return s.editor.View()
}

// OverlayMouse implements overlayScreen.
func (s *labelScreen) OverlayMouse(ev engine.PointerEvent, _ time.Time) {
	s.editor.mouse(ev)
}

func (s *labelScreen) tray() []trayToken {
	var out []trayToken
	col, row := 1, s.surf.height-trayRows+1
	for _, l := range s.game.Placement().Remaining() {
		w := runewidth.StringWidth(l) + 2
		if col+w > s.surf.width && col > 1 {
			col = 1
			row++
		}
		out = append(out, trayToken{label: l, col: col, row: row, width: w})
		col += w + 2
	}
	return out
}

func (s *labelScreen) Mouse(ev engine.PointerEvent, now time.Time) {
	p, ok := ev.Point()
	switch ev.Kind {
	case engine.PointerDown:
		if !ok {
			return
		}
		col, row := s.surf.cellAt(p)
		for _, tok := range s.tray() {
			if row == tok.row && col >= tok.col && col < tok.col+tok.width {
				origin := model.Point{
					X: float64(s.surf.col + tok.col),
					Y: float64(s.surf.row+tok.row) * cellAspect,
				}
				s.game.Grab(tok.label, origin, p)
				return
			}
		}
	case engine.PointerMove:
		if ok {
			s.game.MoveDrag(p)
		}
	case engine.PointerUp:
		if !ok {
			d, dragging := s.game.Drag()
			if !dragging {
				return
			}
			p = d.Pointer
		}
		s.game.Release(p, now)
	}
}

func (s *labelScreen) Render(c *canvas, _ time.Time) {
	placement := s.game.Placement()
	placed := func(l string) bool {
		_, ok := placement.Placed(l)
		return ok
	}
	drawScenario(c, s.surf, s.game.ImageBounds(), s.game.Scenario(), placed, nil)
	drag, dragging := s.game.Drag()
	for _, tok := range s.tray() {
		if dragging && tok.label == drag.Label {
			continue
		}
		c.text(tok.col, tok.row, " "+tok.label+" ", tokenStyle)
	}
	if dragging {
		col, row := s.surf.cellAt(drag.Origin())
		c.text(col, row, " "+drag.Label+" ", tokenStyle)
	}
}

// drawScenario draws the image frame, the feature points and the drop
// zones. placed is nil in the editor, where every zone shows its label.
func drawScenario(c *canvas, s surface, bounds model.Rect, scn model.Scenario, placed func(string) bool, selected *point) {
	left, top := s.cellAt(model.Point{X: bounds.Left, Y: bounds.Top})
	right, bottom := s.cellAt(model.Point{X: bounds.Left + bounds.Width, Y: bounds.Top + bounds.Height})
	c.box(left, top, right-left, bottom-top, frameStyle)
	if scn.Image != "" {
		c.text(left+2, top, " "+scn.Image+" ", frameStyle)
	}
	for _, lp := range scn.LabelPositions {
		fc, fr := s.cellOf(model.Point{X: lp.TargetX, Y: lp.TargetY}, bounds)
		zc, zr := s.cellOf(model.Point{X: lp.X, Y: lp.Y}, bounds)
		c.line(zc, zr, fc, fr, '·', zoneStyle)
		featureStyle := accentStyle
		if selected != nil && selected.id == lp.ID && selected.kind == scenario.Feature {
			featureStyle = selectedStyle
		}
		c.set(fc, fr, '◆', featureStyle)

		text, style := "[?]", zoneStyle
		switch {
		case placed == nil:
			text = "[" + lp.Label + "]"
		case placed(lp.Label):
			text, style = " "+lp.Label+" ", placedStyle
		}
		if selected != nil && selected.id == lp.ID && selected.kind == scenario.Dropzone {
			style = selectedStyle
		}
		c.text(zc-runewidth.StringWidth(text)/2, zr, text, style)
	}
}
