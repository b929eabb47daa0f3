// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/scenario"
)

const nudgeStep = 1.0

type editorMode int

const (
	editorNormal editorMode = iota
	editorSave
	editorImport
	editorCoords
)

type editorKeys struct {
	Prev   key.Binding
	Next   key.Binding
	Cycle  key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Revert key.Binding
	Coords key.Binding
	Save   key.Binding
	Import key.Binding
	Close  key.Binding
}

func defaultEditorKeys() editorKeys {
	return editorKeys{
		Prev:   key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "scenario")),
		Next:   key.NewBinding(key.WithKeys("]")),
		Cycle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next point")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("arrows", "nudge")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Revert: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "revert")),
		Coords: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "coordinates")),
		Save:   key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "save")),
		Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Close:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Cycle, k.Up, k.Revert, k.Coords, k.Save, k.Import, k.Close}
}

// FullHelp implements help.KeyMap.
func (k editorKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// point identifies one editable point of a label position.
type point struct {
	id   string
	kind scenario.PointKind
}

// Editor moves the drop zones and feature points of labelling scenarios
// with the mouse or the arrow keys.
type Editor struct {
	ed         *scenario.Editor
	savePath   string
	standalone bool

	keys   editorKeys
	help   help.Model
	input  textinput.Model
	coords viewport.Model

	width  int
	height int
	surf   surface

	mode      editorMode
	selected  *point
	dragging  bool
	status    string
	errMsg    string
	closed    bool
	committed bool
}

// NewEditor builds a standalone editor that saves to savePath.
func NewEditor(suite model.Suite, savePath string) (*Editor, error) {
	e, err := newEditor(suite, savePath)
	if err != nil {
		return nil, err
	}
	e.standalone = true
	return e, nil
}

func newEditor(suite model.Suite, savePath string) (*Editor, error) {
	ed, err := scenario.NewEditor(suite)
	if err != nil {
		return nil, err
	}
	input := textinput.New()
	input.CharLimit = 0
	return &Editor{
		ed:       ed,
		savePath: savePath,
		keys:     defaultEditorKeys(),
		help:     help.New(),
		input:    input,
		coords:   viewport.New(0, 0),
	}, nil
}

// Suite returns the saved suite.
func (e *Editor) Suite() model.Suite { return e.ed.Suite() }

// Init implements tea.Model.
func (e *Editor) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.resize(msg.Width, msg.Height)
		return e, nil
	case tea.MouseMsg:
		if ev, ok := pointerEvent(msg); ok {
			e.mouse(ev)
		}
		return e, nil
	case tea.KeyMsg:
		return e, e.key(msg)
	}
	return e, nil
}

func (e *Editor) resize(width, height int) {
	e.width = width
	e.height = height
	h := height - headerRows - footerRows
	if h < 1 {
		h = 1
	}
	e.surf = surface{col: 0, row: headerRows, width: width, height: h}
	e.help.Width = width
	e.input.Width = maxInt(10, width-lipgloss.Width(e.input.Prompt)-2)
	e.coords.Width = width
	e.coords.Height = h
}

func (e *Editor) bounds() model.Rect {
	return engine.AspectFit(e.ed.Current().NaturalSize(), e.surf.Rect())
}

func (e *Editor) key(msg tea.KeyMsg) tea.Cmd {
	switch e.mode {
	case editorSave, editorImport:
		return e.prompt(msg)
	case editorCoords:
		if key.Matches(msg, e.keys.Close) || key.Matches(msg, e.keys.Coords) {
			e.mode = editorNormal
			return nil
		}
		var cmd tea.Cmd
		e.coords, cmd = e.coords.Update(msg)
		return cmd
	}
	switch {
	case key.Matches(msg, e.keys.Close):
		e.closed = true
		if e.standalone {
			return tea.Quit
		}
	case key.Matches(msg, e.keys.Prev):
		e.selectScenario(e.ed.Selected() - 1)
	case key.Matches(msg, e.keys.Next):
		e.selectScenario(e.ed.Selected() + 1)
	case key.Matches(msg, e.keys.Cycle):
		e.cycle()
	case key.Matches(msg, e.keys.Up):
		e.nudge(0, -nudgeStep)
	case key.Matches(msg, e.keys.Down):
		e.nudge(0, nudgeStep)
	case key.Matches(msg, e.keys.Left):
		e.nudge(-nudgeStep, 0)
	case key.Matches(msg, e.keys.Right):
		e.nudge(nudgeStep, 0)
	case key.Matches(msg, e.keys.Revert):
		e.ed.Revert()
		e.status = "Reverted"
	case key.Matches(msg, e.keys.Coords):
		text, err := scenario.CoordinatesJSON(e.ed.Current())
		if err != nil {
			e.errMsg = err.Error()
			return nil
		}
		e.coords.SetContent(text)
		e.coords.GotoTop()
		e.mode = editorCoords
	case key.Matches(msg, e.keys.Save):
		return e.startPrompt(editorSave, "Save to: ", e.savePath)
	case key.Matches(msg, e.keys.Import):
		return e.startPrompt(editorImport, "Import from: ", "")
	}
	return nil
}

func (e *Editor) startPrompt(mode editorMode, prompt, value string) tea.Cmd {
	e.mode = mode
	e.errMsg = ""
	e.input.Prompt = prompt
	e.input.SetValue(value)
	e.input.CursorEnd()
	return e.input.Focus()
}

func (e *Editor) prompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		e.mode = editorNormal
		e.input.Blur()
		return nil
	case tea.KeyEnter:
		path := strings.TrimSpace(e.input.Value())
		mode := e.mode
		e.mode = editorNormal
		e.input.Blur()
		if path == "" {
			e.errMsg = "no path given"
			return nil
		}
		if mode == editorSave {
			e.save(path)
		} else {
			e.importFile(path)
		}
		return nil
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *Editor) save(path string) {
	suite, err := e.ed.Commit()
	if err != nil {
		e.errMsg = err.Error()
		return
	}
	if err := scenario.Save(path, suite); err != nil {
		e.errMsg = err.Error()
		return
	}
	e.savePath = path
	e.committed = true
	e.errMsg = ""
	e.status = "Saved to " + path
}

func (e *Editor) importFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.errMsg = fmt.Sprintf("failed to read %s: %v", path, err)
		return
	}
	if err := e.ed.Import(data); err != nil {
		e.errMsg = err.Error()
		return
	}
	e.errMsg = ""
	e.status = "Imported " + path
}

func (e *Editor) selectScenario(i int) {
	n := len(e.ed.Suite().Scenarios)
	if n == 0 {
		return
	}
	i = (i%n + n) % n
	if err := e.ed.Select(i); err != nil {
		e.errMsg = err.Error()
		return
	}
	e.selected = nil
	e.dragging = false
	e.status = ""
}

func (e *Editor) points() []point {
	scn := e.ed.Current()
	out := make([]point, 0, len(scn.LabelPositions)*2)
	for _, p := range scn.LabelPositions {
		out = append(out, point{id: p.ID, kind: scenario.Dropzone})
	}
	for _, p := range scn.LabelPositions {
		out = append(out, point{id: p.ID, kind: scenario.Feature})
	}
	return out
}

func (e *Editor) cycle() {
	pts := e.points()
	if len(pts) == 0 {
		return
	}
	next := 0
	if e.selected != nil {
		for i, p := range pts {
			if p == *e.selected {
				next = (i + 1) % len(pts)
				break
			}
		}
	}
	e.selected = &pts[next]
}

func (e *Editor) position(sel point) (model.Point, bool) {
	for _, p := range e.ed.Current().LabelPositions {
		if p.ID != sel.id {
			continue
		}
		if sel.kind == scenario.Feature {
			return model.Point{X: p.TargetX, Y: p.TargetY}, true
		}
		return model.Point{X: p.X, Y: p.Y}, true
	}
	return model.Point{}, false
}

func (e *Editor) nudge(dx, dy float64) {
	if e.selected == nil {
		return
	}
	pos, ok := e.position(*e.selected)
	if !ok {
		return
	}
	e.move(model.Point{X: pos.X + dx, Y: pos.Y + dy})
}

func (e *Editor) move(p model.Point) {
	if err := e.ed.Move(e.selected.id, e.selected.kind, p); err != nil {
		e.errMsg = err.Error()
	}
}

func (e *Editor) mouse(ev engine.PointerEvent) {
	if e.mode != editorNormal {
		return
	}
	screen, ok := ev.Point()
	if !ok {
		e.dragging = false
		return
	}
	p := engine.ToNormalized(screen, e.bounds())
	switch ev.Kind {
	case engine.PointerDown:
		sel, ok := e.hit(p)
		if !ok {
			e.selected = nil
			return
		}
		e.selected = &sel
		e.dragging = true
	case engine.PointerMove:
		if e.dragging && e.selected != nil {
			e.move(p)
		}
	case engine.PointerUp:
		if e.dragging && e.selected != nil {
			e.move(p)
		}
		e.dragging = false
	}
}

// hit finds the point under p, drop zones first.
func (e *Editor) hit(p model.Point) (point, bool) {
	scn := e.ed.Current()
	zones := make([]model.Target, 0, len(scn.LabelPositions))
	features := make([]model.Target, 0, len(scn.LabelPositions))
	for _, lp := range scn.LabelPositions {
		zones = append(zones, model.Target{ID: lp.ID, Position: model.Point{X: lp.X, Y: lp.Y}, Label: lp.Label})
		features = append(features, model.Target{ID: lp.ID, Position: model.Point{X: lp.TargetX, Y: lp.TargetY}, Label: lp.Label})
	}
	if t, ok := engine.NewBoard(zones, engine.LabelTolerance).Hit(p); ok {
		return point{id: t.ID, kind: scenario.Dropzone}, true
	}
	if t, ok := engine.NewBoard(features, engine.LabelTolerance).Hit(p); ok {
		return point{id: t.ID, kind: scenario.Feature}, true
	}
	return point{}, false
}

// View implements tea.Model.
func (e *Editor) View() string {
	if e.width == 0 || e.height == 0 {
		return ""
	}
	scn := e.ed.Current()
	dirty := ""
	if e.ed.Dirty() {
		dirty = " *"
	}
	title := titleStyle.Render(fmt.Sprintf("Editor · %s%s", scenarioName(scn), dirty))
	info := footerStyle.Render(fmt.Sprintf("scenario %d/%d · %s", e.ed.Selected()+1, len(e.ed.Suite().Scenarios), e.selectionText()))
	header := truncateLines(lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", info), e.width)

	status := footerStyle.Render(e.status)
	if e.errMsg != "" {
		status = incorrectStyle.Render(e.errMsg)
	}
	if e.mode == editorSave || e.mode == editorImport {
		status = e.input.View()
	}
	header += "\n" + truncateLines(status, e.width)

	var body string
	if e.mode == editorCoords {
		body = fitLines(e.coords.View(), e.width, e.surf.height)
	} else {
		c := newCanvas(e.surf.width, e.surf.height)
		drawScenario(c, e.surf, e.bounds(), scn, nil, e.selected)
		body = c.String()
	}
	footer := "\n" + e.help.View(e.keys)
	return header + "\n" + body + footer
}

func (e *Editor) selectionText() string {
	if e.selected == nil {
		return "no point selected"
	}
	pos, ok := e.position(*e.selected)
	if !ok {
		return "no point selected"
	}
	return fmt.Sprintf("%s %s (%.1f, %.1f)", e.selected.id, e.selected.kind, pos.X, pos.Y)
}

func scenarioName(scn model.Scenario) string {
	if scn.Name != "" {
		return scn.Name
	}
	return scn.Title
}

func fitLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
