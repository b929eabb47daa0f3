// Package scenario loads, validates and exports game configuration suites.
package scenario

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
)

// PointKind selects which point of a label position is edited.
type PointKind int

const (
	// Dropzone is where the label is dropped.
	Dropzone PointKind = iota
	// Feature is the image feature the label points at.
	Feature
)

func (k PointKind) String() string {
	if k == Feature {
		return "target"
	}
	return "dropzone"
}

// MovePoint returns scn with the given point of position id moved to p,
// clamped to the image.
func MovePoint(scn model.Scenario, id string, kind PointKind, p model.Point) (model.Scenario, error) {
	p = engine.Clamp(p)
	positions := append([]model.LabelPosition(nil), scn.LabelPositions...)
	for i := range positions {
		if positions[i].ID != id {
			continue
		}
		if kind == Feature {
			positions[i].TargetX, positions[i].TargetY = p.X, p.Y
		} else {
			positions[i].X, positions[i].Y = p.X, p.Y
		}
		scn.LabelPositions = positions
		return scn, nil
	}
	return scn, fmt.Errorf("no label position %q", id)
}

// Coordinate is a label position rounded for copying.
type Coordinate struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	TargetX float64 `json:"targetX"`
	TargetY float64 `json:"targetY"`
}

// Coordinates returns the scenario's positions rounded to 0.1.
func Coordinates(scn model.Scenario) []Coordinate {
	out := make([]Coordinate, 0, len(scn.LabelPositions))
	for _, p := range scn.LabelPositions {
		out = append(out, Coordinate{
			ID:      p.ID,
			Label:   p.Label,
			X:       round1(p.X),
			Y:       round1(p.Y),
			TargetX: round1(p.TargetX),
			TargetY: round1(p.TargetY),
		})
	}
	return out
}

// CoordinatesJSON renders Coordinates as indented JSON.
func CoordinatesJSON(scn model.Scenario) (string, error) {
	data, err := json.MarshalIndent(Coordinates(scn), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode coordinates: %w", err)
	}
	return string(data), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Editor holds an editing session over one scenario of a suite.
type Editor struct {
	suite    model.Suite
	selected int
	current  model.Scenario
	dirty    bool
}

// NewEditor starts editing the first scenario.
func NewEditor(suite model.Suite) (*Editor, error) {
	if len(suite.Scenarios) == 0 {
		return nil, fmt.Errorf("suite has no scenarios")
	}
	return &Editor{suite: suite, current: suite.Scenarios[0]}, nil
}

// Select switches to scenario i, discarding unsaved edits.
func (e *Editor) Select(i int) error {
	if i < 0 || i >= len(e.suite.Scenarios) {
		return fmt.Errorf("scenario %d out of range [0,%d)", i, len(e.suite.Scenarios))
	}
	e.selected = i
	e.current = e.suite.Scenarios[i]
	e.dirty = false
	return nil
}

// Selected returns the index of the scenario being edited.
func (e *Editor) Selected() int { return e.selected }

// Current returns the scenario with unsaved edits applied.
func (e *Editor) Current() model.Scenario { return e.current }

// Suite returns the saved suite.
func (e *Editor) Suite() model.Suite { return e.suite }

// Dirty reports unsaved edits.
func (e *Editor) Dirty() bool { return e.dirty }

// Move drags a point of position id to p.
func (e *Editor) Move(id string, kind PointKind, p model.Point) error {
	scn, err := MovePoint(e.current, id, kind, p)
	if err != nil {
		return err
	}
	e.current = scn
	e.dirty = true
	return nil
}

// Revert drops unsaved edits.
func (e *Editor) Revert() {
	e.current = e.suite.Scenarios[e.selected]
	e.dirty = false
}

// Commit writes the edited scenario into the suite and returns it.
func (e *Editor) Commit() (model.Suite, error) {
	suite, err := ReplaceScenario(e.suite, e.selected, e.current)
	if err != nil {
		return e.suite, err
	}
	e.suite = suite
	e.dirty = false
	return suite, nil
}

// Import takes the selected scenario from an exported suite as unsaved
// edits.
func (e *Editor) Import(data []byte) error {
	suite, err := Parse(data)
	if err != nil {
		return err
	}
	if e.selected >= len(suite.Scenarios) {
		return fmt.Errorf("selected scenario not found in loaded configuration")
	}
	e.current = suite.Scenarios[e.selected]
	e.dirty = true
	return nil
}
