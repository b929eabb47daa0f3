// Package label implements the image labelling game.
package label

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/round"
	"github.com/verte-zerg/playdeck/internal/schedule"
)

// Timer keys owned by the game.
const (
	KeyCountdown = "countdown"
	KeyTimeUp    = "timeup"
)

// Timing defaults.
const (
	DefaultTimeout        = 120 * time.Second
	WrongMessageDuration  = 1500 * time.Millisecond
	TimeUpDelay           = 2 * time.Second
	EditorShortcutPresses = 5
	EditorShortcutWindow  = 2 * time.Second
)

// Drag is a label token being moved. Offset is the pointer position
// relative to the token's origin when it was grabbed.
type Drag struct {
	Label   string
	Offset  model.Point
	Pointer model.Point
}

// Origin returns where the token should be drawn.
func (d Drag) Origin() model.Point {
	return model.Point{X: d.Pointer.X - d.Offset.X, Y: d.Pointer.Y - d.Offset.Y}
}

// Game is one labelling session over a list of scenarios.
type Game struct {
	ctrl      *round.Controller[model.Scenario]
	placement *engine.Placement
	scenario  model.Scenario
	audio     engine.Audio
	timeout   time.Duration
	container model.Rect
	drag      *Drag
	mistakes  int
	started   time.Time
	now       time.Time
	presses   []time.Time
	records   []model.RoundRecord
}

// New builds a game over scenarios. A zero timeout uses DefaultTimeout.
func New(scenarios []model.Scenario, audio engine.Audio, timeout time.Duration) *Game {
	if audio == nil {
		audio = engine.NopAudio{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	g := &Game{audio: audio, timeout: timeout, placement: engine.NewPlacement(nil, nil)}
	timers := schedule.New()
	timers.SetPolicy(KeyCountdown, schedule.Preserve)
	timers.SetPolicy(KeyTimeUp, schedule.Restart)
	g.ctrl = round.New(scenarios, timers, &engine.EventLog{}, g.load)
	return g
}

func (g *Game) load(s model.Scenario) {
	g.scenario = s
	g.placement = engine.NewPlacement(s.Targets(), s.Labels)
	g.drag = nil
	g.mistakes = 0
	g.started = g.now
	// A level loaded while paused gets a suspended countdown that starts on
	// resume.
	if g.ctrl != nil && (g.ctrl.Playing() || g.ctrl.State() == round.StatePaused) {
		g.ctrl.Timers().Start(KeyCountdown, g.ctrl.Generation(), g.now, g.timeout)
	}
}

// Controller exposes level state for rendering.
func (g *Game) Controller() *round.Controller[model.Scenario] { return g.ctrl }

// Placement exposes placed labels for rendering.
func (g *Game) Placement() *engine.Placement { return g.placement }

// Scenario returns the current scenario.
func (g *Game) Scenario() model.Scenario { return g.scenario }

// Message returns the visible transient message.
func (g *Game) Message() string { return g.ctrl.Message() }

// Events drains queued transitions.
func (g *Game) Events() []engine.Event { return g.ctrl.Events().Drain() }

// Records drains rounds finished since the last call.
func (g *Game) Records() []model.RoundRecord {
	out := g.records
	g.records = nil
	return out
}

// Drag returns the label being dragged.
func (g *Game) Drag() (Drag, bool) {
	if g.drag == nil {
		return Drag{}, false
	}
	return *g.drag, true
}

// SetSurface sets the screen rectangle the image is displayed in.
func (g *Game) SetSurface(container model.Rect) { g.container = container }

// ImageBounds returns the letterboxed image rectangle inside the surface.
func (g *Game) ImageBounds() model.Rect {
	return engine.AspectFit(g.scenario.NaturalSize(), g.container)
}

// Progress returns the "(placed/total)" HUD counts.
func (g *Game) Progress() (done, total int) { return g.placement.Progress() }

// TimeLeft returns the level countdown.
func (g *Game) TimeLeft(now time.Time) time.Duration {
	left, ok := g.ctrl.Timers().Remaining(KeyCountdown, now)
	if !ok {
		return 0
	}
	return left
}

// SetDifficulty filters the scenarios and restarts from the first match.
func (g *Game) SetDifficulty(d model.Difficulty, now time.Time) {
	g.now = now
	g.ctrl.SetFilter(d)
}

// Start leaves the start screen and starts the countdown.
func (g *Game) Start(now time.Time) {
	g.now = now
	g.started = now
	g.ctrl.Begin()
	g.ctrl.Timers().Start(KeyCountdown, g.ctrl.Generation(), now, g.timeout)
	g.audio.Play(engine.SoundStart)
	g.audio.Play(engine.SoundBackground)
}

// Reset returns to the first scenario and the start screen.
func (g *Game) Reset(now time.Time) {
	g.now = now
	g.ctrl.Reset()
	g.audio.Pause(engine.SoundBackground)
}

// Skip loads the next scenario, wrapping.
func (g *Game) Skip(now time.Time) {
	g.now = now
	if g.ctrl.Playing() && !g.placement.Completed() {
		g.record(model.OutcomeSkipped, now)
	}
	g.audio.Play(engine.SoundUIClick)
	g.ctrl.Next()
}

// Pause suspends the countdown and drops any drag in progress.
func (g *Game) Pause(now time.Time) {
	g.now = now
	g.drag = nil
	g.ctrl.Pause(now)
	g.audio.Pause(engine.SoundBackground)
}

// Resume continues after Pause.
func (g *Game) Resume(now time.Time) {
	g.now = now
	g.ctrl.Resume(now)
	g.audio.Play(engine.SoundBackground)
}

// Tick fires due timers.
func (g *Game) Tick(now time.Time) {
	g.now = now
	for _, f := range g.ctrl.Timers().Due(now) {
		if g.ctrl.Handle(f, now) {
			continue
		}
		if f.Gen != g.ctrl.Generation() {
			continue
		}
		switch f.Key {
		case KeyCountdown:
			g.timeUp(now)
		case KeyTimeUp:
			g.ctrl.Next()
		}
	}
}

// NextWake returns when Tick should next be called.
func (g *Game) NextWake() (time.Time, bool) { return g.ctrl.Timers().NextWake() }

func (g *Game) timeUp(now time.Time) {
	g.drag = nil
	g.audio.Play(engine.SoundIncorrect)
	g.record(model.OutcomeTimeUp, now)
	g.ctrl.Events().Emit(engine.Event{Kind: engine.EventTimeUp, Text: "Time's up!", Level: g.ctrl.Level()})
	g.ctrl.Flash("Time's up!", now, TimeUpDelay)
	g.ctrl.Timers().Start(KeyTimeUp, g.ctrl.Generation(), now, TimeUpDelay)
}

func (g *Game) interactive() bool {
	return g.ctrl.Playing() && !g.placement.Completed() && !g.ctrl.Timers().Pending(KeyTimeUp)
}

// Grab starts dragging label. origin is the token's top-left corner and
// pointer the press position, both in screen units.
func (g *Game) Grab(label string, origin, pointer model.Point) bool {
	if !g.interactive() {
		return false
	}
	if _, placed := g.placement.Placed(label); placed {
		return false
	}
	g.drag = &Drag{
		Label:   label,
		Offset:  model.Point{X: pointer.X - origin.X, Y: pointer.Y - origin.Y},
		Pointer: pointer,
	}
	return true
}

// MoveDrag follows the pointer.
func (g *Game) MoveDrag(pointer model.Point) {
	if g.drag != nil {
		g.drag.Pointer = pointer
	}
}

// Release drops the dragged label at pointer (screen units).
func (g *Game) Release(pointer model.Point, now time.Time) {
	if g.drag == nil {
		return
	}
	label := g.drag.Label
	g.drag = nil
	g.Drop(label, engine.ToNormalized(pointer, g.ImageBounds()), now)
}

// Drop places label at p, given in image percentage space.
func (g *Game) Drop(label string, p model.Point, now time.Time) {
	g.now = now
	if !g.interactive() {
		return
	}
	target, err := g.placement.Drop(label, p)
	switch {
	case err == nil:
		g.audio.Play(engine.SoundSuccess)
		g.ctrl.Events().Emit(engine.Event{Kind: engine.EventPlaced, Text: target.ID, Level: g.ctrl.Level()})
		if g.placement.Completed() {
			g.complete(now)
		}
	case errors.Is(err, engine.ErrWrongPlacement):
		g.mistakes++
		g.audio.Play(engine.SoundIncorrect)
		g.ctrl.Events().Emit(engine.Event{Kind: engine.EventRejected, Text: "Try again!", Level: g.ctrl.Level()})
		g.ctrl.Flash("Try again!", now, WrongMessageDuration)
	case errors.Is(err, engine.ErrNoTarget):
		g.audio.Play(engine.SoundIncorrect)
	}
}

func (g *Game) complete(now time.Time) {
	g.ctrl.Timers().Cancel(KeyCountdown)
	g.audio.Play(engine.SoundLevelWin)
	text := fmt.Sprintf("%s Complete!", g.displayName())
	g.ctrl.Events().Emit(engine.Event{Kind: engine.EventCompleted, Text: text, Level: g.ctrl.Level()})
	g.ctrl.Flash(text, now, round.LevelMessageDuration)
	g.ctrl.Complete(now)
	g.record(model.OutcomeCompleted, now)
}

func (g *Game) displayName() string {
	if g.scenario.Name != "" {
		return g.scenario.Name
	}
	return g.scenario.Title
}

// KeyE registers a press of the editor shortcut key and reports whether
// the editor should open.
func (g *Game) KeyE(now time.Time) bool {
	cutoff := now.Add(-EditorShortcutWindow)
	kept := g.presses[:0]
	for _, p := range g.presses {
		if p.After(cutoff) {
			kept = append(kept, p)
		}
	}
	g.presses = append(kept, now)
	if len(g.presses) >= EditorShortcutPresses {
		g.presses = nil
		return true
	}
	return false
}

func (g *Game) record(outcome string, now time.Time) {
	started := g.started
	if started.IsZero() {
		started = now
	}
	g.records = append(g.records, model.RoundRecord{
		Game:       model.GameLabel,
		Name:       g.displayName(),
		Difficulty: string(g.scenario.Difficulty),
		Level:      g.ctrl.Level(),
		Outcome:    outcome,
		Mistakes:   g.mistakes,
		StartedAt:  started,
		EndedAt:    now,
		DurationMs: now.Sub(started).Milliseconds(),
	})
	g.started = now
}
