// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
)

// cellAspect is the height of a terminal cell in screen units; a cell is
// one unit wide.
const cellAspect = 2.0

// surface is the block of terminal cells a game is drawn into, at col/row
// of the terminal.
type surface struct {
	col    int
	row    int
	width  int
	height int
}

// Rect returns the surface in screen units.
func (s surface) Rect() model.Rect {
	return model.Rect{
		Left:   float64(s.col),
		Top:    float64(s.row) * cellAspect,
		Width:  float64(s.width),
		Height: float64(s.height) * cellAspect,
	}
}

// screenPoint returns the centre of a terminal cell in screen units.
func screenPoint(col, row int) model.Point {
	return model.Point{X: float64(col) + 0.5, Y: (float64(row) + 0.5) * cellAspect}
}

// cellAt maps a screen point to a cell relative to the surface origin.
func (s surface) cellAt(p model.Point) (col, row int) {
	return int(math.Floor(p.X)) - s.col, int(math.Floor(p.Y/cellAspect)) - s.row
}

// cellOf maps a percentage point inside ref to a surface cell.
func (s surface) cellOf(p model.Point, ref model.Rect) (col, row int) {
	return s.cellAt(engine.FromNormalized(p, ref))
}

// pointerEvent converts a terminal mouse message. Only the left button
// starts a drag; wheel events are dropped.
func pointerEvent(msg tea.MouseMsg) (engine.PointerEvent, bool) {
	var kind engine.PointerKind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return engine.PointerEvent{}, false
		}
		kind = engine.PointerDown
	case tea.MouseActionMotion:
		kind = engine.PointerMove
	case tea.MouseActionRelease:
		kind = engine.PointerUp
	default:
		return engine.PointerEvent{}, false
	}
	p := screenPoint(msg.X, msg.Y)
	return engine.MouseEvent(kind, p.X, p.Y), true
}
