// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
	statsPkg "github.com/verte-zerg/playdeck/internal/stats"
	"github.com/verte-zerg/playdeck/internal/store"
)

const (
	headerRows = 2
	footerRows = 2
	frameEvery = 50 * time.Millisecond
)

// screen is one game as driven by Model.
type screen interface {
	Game() string
	Keys() keyMap
	Started() bool
	Paused() bool
	Start(now time.Time)
	Reset(now time.Time)
	Skip(now time.Time)
	Pause(now time.Time)
	Resume(now time.Time)
	Tick(now time.Time)
	NextWake() (time.Time, bool)
	Events() []engine.Event
	Records() []model.RoundRecord
	Layout(s surface)
	Mouse(ev engine.PointerEvent, now time.Time)
	Key(msg tea.KeyMsg, now time.Time) tea.Cmd
	Title() string
	HUD(now time.Time) string
	Message() string
	Intro() string
	Render(c *canvas, now time.Time)
}

// difficultyScreen is implemented by games with a difficulty filter.
type difficultyScreen interface {
	SetDifficulty(d model.Difficulty, now time.Time)
	Difficulty() model.Difficulty
}

// overlayScreen takes over input and the whole view while OverlayActive
// reports true.
type overlayScreen interface {
	OverlayActive() bool
	OverlayView(width, height int) string
	OverlayMouse(ev engine.PointerEvent, now time.Time)
}

type wakeMsg struct{ at time.Time }

type frameMsg time.Time

type clockMsg time.Time

// Model hosts one game screen: it forwards input, fires timers at the
// game's next wake time, animates floating text and saves finished rounds.
type Model struct {
	screen screen
	store  *store.Store
	audio  *BellAudio
	keys   keyMap
	help   help.Model
	now    func() time.Time

	width   int
	height  int
	surface surface

	floats    []*floatText
	animating bool
	lastFrame time.Time
	wakeAt    time.Time

	history []model.RoundAggregate
	last    *model.RoundAggregate
}

func newModel(s screen, st *store.Store, audio *BellAudio) *Model {
	m := &Model{
		screen: s,
		store:  st,
		audio:  audio,
		keys:   s.Keys(),
		help:   help.New(),
		now:    time.Now,
	}
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return clockCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	now := m.now()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		return m, m.after(now, m.handleKey(msg, now))
	case tea.MouseMsg:
		ev, ok := pointerEvent(msg)
		if !ok {
			return m, nil
		}
		if ov, active := m.activeOverlay(); active {
			ov.OverlayMouse(ev, now)
			return m, nil
		}
		if !m.screen.Started() || m.screen.Paused() {
			return m, nil
		}
		m.screen.Mouse(ev, now)
		return m, m.after(now, nil)
	case wakeMsg:
		if msg.at.Equal(m.wakeAt) {
			m.wakeAt = time.Time{}
		}
		if now.Before(msg.at) {
			now = msg.at
		}
		m.screen.Tick(now)
		return m, m.after(now, nil)
	case frameMsg:
		dt := float32(now.Sub(m.lastFrame).Seconds())
		m.lastFrame = now
		m.floats = updateFloats(m.floats, dt)
		if len(m.floats) == 0 {
			m.animating = false
			return m, nil
		}
		return m, frameCmd()
	case clockMsg:
		return m, clockCmd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg, now time.Time) tea.Cmd {
	if _, active := m.activeOverlay(); active {
		return m.screen.Key(msg, now)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRecords(m.screen.Records())
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil
	case key.Matches(msg, m.keys.Mute):
		if m.audio != nil {
			m.audio.ToggleMute()
		}
		return nil
	case !m.screen.Started() && key.Matches(msg, m.keys.Start):
		m.screen.Start(now)
		return nil
	case key.Matches(msg, m.keys.Pause):
		if m.screen.Paused() {
			m.screen.Resume(now)
		} else {
			m.screen.Pause(now)
		}
		return nil
	case key.Matches(msg, m.keys.Reset):
		m.screen.Reset(now)
		return nil
	case key.Matches(msg, m.keys.Skip):
		m.screen.Skip(now)
		return nil
	case key.Matches(msg, m.keys.Difficulty):
		if ds, ok := m.screen.(difficultyScreen); ok {
			ds.SetDifficulty(nextDifficulty(ds.Difficulty()), now)
		}
		return nil
	}
	if m.screen.Paused() {
		return nil
	}
	return m.screen.Key(msg, now)
}

// after drains game output and schedules the next wake-up.
func (m *Model) after(now time.Time, cmd tea.Cmd) tea.Cmd {
	cmds := []tea.Cmd{cmd}
	for _, ev := range m.screen.Events() {
		if text := floatFor(ev); text != "" {
			m.floats = append(m.floats, newFloat(text))
		}
	}
	if len(m.floats) > 0 && !m.animating {
		m.animating = true
		m.lastFrame = now
		cmds = append(cmds, frameCmd())
	}
	m.saveRecords(m.screen.Records())
	cmds = append(cmds, m.scheduleWake(now))
	return tea.Batch(cmds...)
}

func (m *Model) scheduleWake(now time.Time) tea.Cmd {
	next, ok := m.screen.NextWake()
	if !ok {
		return nil
	}
	if !m.wakeAt.IsZero() && !next.Before(m.wakeAt) {
		return nil
	}
	m.wakeAt = next
	d := next.Sub(now)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return wakeMsg{at: next} })
}

func floatFor(ev engine.Event) string {
	switch ev.Kind {
	case engine.EventCompleted, engine.EventLevelStarted, engine.EventTimeUp:
		return ev.Text
	case engine.EventAllComplete:
		return "All done!"
	case engine.EventScored:
		if ev.Text == "human" {
			return "+1"
		}
		return "+1 opponent"
	case engine.EventGameOver:
		return "Game over"
	default:
		return ""
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func clockCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m *Model) activeOverlay() (overlayScreen, bool) {
	ov, ok := m.screen.(overlayScreen)
	if !ok || !ov.OverlayActive() {
		return nil, false
	}
	return ov, true
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	footer := footerRows
	if m.help.ShowAll {
		footer = 1 + lipgloss.Height(m.help.View(m.keys))
	}
	height := m.height - headerRows - footer
	if height < 1 {
		height = 1
	}
	m.help.Width = m.width
	m.surface = surface{col: 0, row: headerRows, width: m.width, height: height}
	m.screen.Layout(m.surface)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if ov, active := m.activeOverlay(); active {
		return ov.OverlayView(m.width, m.height)
	}
	now := m.now()
	header := m.renderHeader(now)
	c := newCanvas(m.surface.width, m.surface.height)
	switch {
	case !m.screen.Started():
		m.renderCentered(c, m.screen.Intro(), "Press enter to start")
	case m.screen.Paused():
		m.screen.Render(c, now)
		m.renderCentered(c, "Paused", "Press p to resume")
	default:
		m.screen.Render(c, now)
	}
	m.renderFloats(c)
	return strings.Join([]string{header, c.String(), m.renderFooter()}, "\n")
}

func (m *Model) renderHeader(now time.Time) string {
	title := titleStyle.Render(m.screen.Title())
	hud := footerStyle.Render(m.screen.HUD(now))
	if m.audio != nil && m.audio.Muted() {
		hud += footerStyle.Render("  muted")
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", hud)
	message := m.screen.Message()
	line := messageStyle.Render(message)
	return truncateLines(top, m.width) + "\n" + truncateLines(line, m.width)
}

func (m *Model) renderCentered(c *canvas, lines ...string) {
	var all []string
	for _, l := range lines {
		all = append(all, strings.Split(wrapText(l, lipgloss.NewStyle(), c.width-4), "\n")...)
	}
	top := (c.height - len(all)) / 2
	for i, l := range all {
		col := (c.width - runewidth.StringWidth(l)) / 2
		c.text(col, top+i, l, accentStyle)
	}
}

func (m *Model) renderFloats(c *canvas) {
	for i, f := range m.floats {
		row := c.height/2 - 2 - f.rows() - i
		col := (c.width - runewidth.StringWidth(f.text)) / 2
		c.text(col, row, f.text, f.style())
	}
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	rounds, err := m.store.ListRounds(context.Background(), model.StatsConfig{Game: m.screen.Game()})
	if err != nil {
		logErrf("failed to load round stats: %v\n", err)
		return
	}
	m.history = rounds
	if len(rounds) > 0 {
		last := rounds[len(rounds)-1]
		m.last = &last
	}
}

func (m *Model) saveRecords(records []model.RoundRecord) {
	if len(records) == 0 {
		return
	}
	if m.store != nil {
		ids, err := m.store.InsertRounds(context.Background(), records)
		if err != nil {
			logErrf("failed to save rounds: %v\n", err)
		}
		for i := range records {
			if i < len(ids) {
				records[i].ID = ids[i]
			}
		}
	}
	for _, rec := range records {
		agg := model.RoundAggregate{
			ID:         rec.ID,
			Game:       rec.Game,
			Name:       rec.Name,
			Outcome:    rec.Outcome,
			Mistakes:   rec.Mistakes,
			EndedAt:    rec.EndedAt,
			DurationMs: rec.DurationMs,
		}
		m.history = append(m.history, agg)
		m.last = &agg
	}
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.last != nil {
		segments = append(segments, fmt.Sprintf("Last %s %s", m.last.Name, m.last.Outcome))
	}
	if summaries := statsPkg.Summarize(m.history); len(summaries) > 0 {
		s := summaries[0]
		segments = append(segments, fmt.Sprintf("All-time %d rounds · %.1f%% completed · %.1f mistakes", s.Plays, s.CompletionRate()*100, s.AvgMistakes()))
	}
	stats := truncateLines(footerStyle.Render(strings.Join(segments, "  ")), m.width)
	return stats + "\n" + m.help.View(m.keys)
}

func nextDifficulty(d model.Difficulty) model.Difficulty {
	for i, v := range model.Difficulties {
		if v == d {
			return model.Difficulties[(i+1)%len(model.Difficulties)]
		}
	}
	return model.Difficulties[0]
}

func truncateLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
