// Package dots implements the connect-the-dots game.
package dots

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/round"
	"github.com/verte-zerg/playdeck/internal/schedule"
)

// Message durations.
const (
	RejectMessageDuration   = time.Second
	CompleteMessageDuration = 2 * time.Second
)

// Game is one connect-the-dots session over a list of shapes.
type Game struct {
	ctrl     *round.Controller[model.Shape]
	seq      *engine.Sequence
	shape    model.Shape
	audio    engine.Audio
	pointer  model.Point
	mistakes int
	started  time.Time
	now      time.Time
	records  []model.RoundRecord
}

// New builds a game over shapes. A nil audio discards cues.
func New(shapes []model.Shape, audio engine.Audio) *Game {
	if audio == nil {
		audio = engine.NopAudio{}
	}
	g := &Game{audio: audio, seq: engine.NewSequence(nil)}
	g.ctrl = round.New(shapes, schedule.New(), &engine.EventLog{}, g.load)
	return g
}

func (g *Game) load(shape model.Shape) {
	g.shape = shape
	g.seq = engine.NewSequence(shape.Targets())
	g.mistakes = 0
	g.started = g.now
}

// Controller exposes level state for rendering.
func (g *Game) Controller() *round.Controller[model.Shape] { return g.ctrl }

// Sequence exposes the connection state for rendering.
func (g *Game) Sequence() *engine.Sequence { return g.seq }

// Shape returns the current shape.
func (g *Game) Shape() model.Shape { return g.shape }

// Pointer returns the last pointer position in percentage space, used for
// the rubber-band line while drawing.
func (g *Game) Pointer() model.Point { return g.pointer }

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

// SetDifficulty filters the shapes and restarts from the first match.
func (g *Game) SetDifficulty(d model.Difficulty, now time.Time) {
	g.now = now
	g.ctrl.SetFilter(d)
}

// Start leaves the start screen.
func (g *Game) Start(now time.Time) {
	g.now = now
	g.started = now
	g.ctrl.Begin()
	g.audio.Play(engine.SoundStart)
	g.audio.Play(engine.SoundBackground)
}

// Reset returns to the first shape and the start screen.
func (g *Game) Reset(now time.Time) {
	g.now = now
	g.ctrl.Reset()
	g.audio.Pause(engine.SoundBackground)
}

// Skip abandons the current shape and loads the next one, wrapping.
func (g *Game) Skip(now time.Time) {
	g.now = now
	if g.ctrl.Playing() && !g.seq.Completed() {
		g.record(model.OutcomeSkipped, now)
	}
	g.audio.Play(engine.SoundUIClick)
	g.ctrl.Next()
}

// Pause suspends interaction and the auto-advance.
func (g *Game) Pause(now time.Time) {
	g.now = now
	g.seq.Cancel()
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
		g.ctrl.Handle(f, now)
	}
}

// NextWake returns when Tick should next be called.
func (g *Game) NextWake() (time.Time, bool) { return g.ctrl.Timers().NextWake() }

// Handle dispatches a pointer event given in screen units relative to the
// play surface.
func (g *Game) Handle(ev engine.PointerEvent, surface model.Rect, now time.Time) {
	screen, ok := ev.Point()
	if !ok {
		if ev.Kind == engine.PointerUp {
			g.seq.Cancel()
		}
		return
	}
	p := engine.ToNormalized(screen, surface)
	switch ev.Kind {
	case engine.PointerDown:
		g.Down(p, now)
	case engine.PointerMove:
		g.Move(p, now)
	case engine.PointerUp:
		g.Up(p, now)
	}
}

func (g *Game) interactive() bool {
	return g.ctrl.Playing() && !g.seq.Completed()
}

// Down starts a line when p is over the expected dot.
func (g *Game) Down(p model.Point, now time.Time) {
	g.now = now
	if !g.interactive() {
		return
	}
	g.pointer = p
	target, ok := g.seq.Board().Hit(p)
	if !ok {
		return
	}
	if err := g.seq.Start(target.Order); err != nil {
		if errors.Is(err, engine.ErrWrongStart) {
			g.reject(fmt.Sprintf("Start with dot %d!", g.seq.NextExpected()), now)
		}
		return
	}
	g.audio.Play(engine.SoundConnect)
}

// Move updates the rubber band and auto-connects the expected next dot.
func (g *Game) Move(p model.Point, now time.Time) {
	g.now = now
	g.pointer = p
	if !g.interactive() || g.seq.State() != engine.SeqDrawing {
		return
	}
	target, ok := g.seq.Board().Hit(p)
	if !ok {
		return
	}
	if link, ok := g.seq.Hover(target); ok {
		g.connected(link, now)
	}
}

// Up resolves the segment under the pointer or aborts the line.
func (g *Game) Up(p model.Point, now time.Time) {
	g.now = now
	g.pointer = p
	if !g.interactive() || g.seq.State() != engine.SeqDrawing {
		return
	}
	expected := g.seq.ExpectedNext()
	target, ok := g.seq.Board().Hit(p)
	link, err := g.seq.Release(target, ok)
	switch {
	case err == nil:
		g.connected(link, now)
	case errors.Is(err, engine.ErrWrongConnection):
		g.reject(fmt.Sprintf("Connect to dot %d!", expected), now)
	}
}

func (g *Game) connected(link engine.Link, now time.Time) {
	g.audio.Play(engine.SoundConnect)
	g.ctrl.Events().Emit(engine.Event{Kind: engine.EventConnected, Text: fmt.Sprintf("%d-%d", link.From, link.To), Level: g.ctrl.Level()})
	if !g.seq.Completed() {
		return
	}
	g.audio.Play(engine.SoundSuccess)
	g.audio.Play(engine.SoundLevelWin)
	text := fmt.Sprintf("%s Complete!", g.shape.Name)
	g.ctrl.Events().Emit(engine.Event{Kind: engine.EventCompleted, Text: text, Level: g.ctrl.Level()})
	g.ctrl.Flash(text, now, CompleteMessageDuration)
	g.ctrl.Complete(now)
	g.record(model.OutcomeCompleted, now)
}

func (g *Game) reject(text string, now time.Time) {
	g.mistakes++
	g.audio.Play(engine.SoundIncorrect)
	g.ctrl.Events().Emit(engine.Event{Kind: engine.EventRejected, Text: text, Level: g.ctrl.Level()})
	g.ctrl.Flash(text, now, RejectMessageDuration)
}

func (g *Game) record(outcome string, now time.Time) {
	started := g.started
	if started.IsZero() {
		started = now
	}
	g.records = append(g.records, model.RoundRecord{
		Game:       model.GameDots,
		Name:       g.shape.Name,
		Difficulty: string(g.shape.Difficulty),
		Level:      g.ctrl.Level(),
		Outcome:    outcome,
		Mistakes:   g.mistakes,
		StartedAt:  started,
		EndedAt:    now,
		DurationMs: now.Sub(started).Milliseconds(),
	})
	g.started = now
}

// Prompt returns the instruction line for the current state.
func (g *Game) Prompt() string {
	switch {
	case g.ctrl.State() == round.StateAllComplete:
		return "All shapes complete!"
	case g.seq.Completed():
		return ""
	case g.seq.State() == engine.SeqDrawing:
		return fmt.Sprintf("Drag to dot %d...", g.seq.ExpectedNext())
	default:
		return fmt.Sprintf("Drag from dot %d to %d", g.seq.NextExpected(), g.seq.ExpectedNext())
	}
}

// VisibleDots returns the dots to draw. A dot sharing its coordinates with
// an earlier one (a closing dot repeated by the shape author) is hidden.
func VisibleDots(shape model.Shape) []model.Dot {
	out := make([]model.Dot, 0, len(shape.Dots))
	for _, d := range shape.Dots {
		dup := false
		for _, v := range out {
			if v.X == d.X && v.Y == d.Y {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, d)
		}
	}
	return out
}
