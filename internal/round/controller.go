// Package round drives level progression: difficulty filtering, the current
// level, auto-advance after completion and transient messages.
package round

import (
	"fmt"
	"time"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/schedule"
)

// Timer keys owned by the controller.
const (
	KeyAdvance = "advance"
	KeyMessage = "message"
)

// Durations shared by the level based games.
const (
	AutoAdvanceDelay     = 3 * time.Second
	LevelMessageDuration = 2 * time.Second
)

// State is the controller lifecycle.
type State int

const (
	StateStart State = iota
	StatePlaying
	StatePaused
	StateAllComplete
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateAllComplete:
		return "all-complete"
	default:
		return "unknown"
	}
}

// Leveled is anything tagged with a difficulty.
type Leveled interface {
	Level() model.Difficulty
}

// Controller holds the active level list and the current level. Every load
// bumps the generation; timers armed under an older generation are ignored
// when they fire.
type Controller[T Leveled] struct {
	all      []T
	items    []T
	filter   model.Difficulty
	fellBack bool
	index    int
	gen      uint64
	state    State
	resumeTo State
	timers   *schedule.Timers
	onLoad   func(T)
	events   *engine.EventLog

	message    string
	messageGen uint64
}

// New builds a controller over items. onLoad is called with the level each
// time one becomes current so the owner can rebuild its progress state.
func New[T Leveled](items []T, timers *schedule.Timers, events *engine.EventLog, onLoad func(T)) *Controller[T] {
	if timers == nil {
		timers = schedule.New()
	}
	if events == nil {
		events = &engine.EventLog{}
	}
	timers.SetPolicy(KeyAdvance, schedule.Restart)
	c := &Controller[T]{
		all:    append([]T(nil), items...),
		filter: model.All,
		timers: timers,
		onLoad: onLoad,
		events: events,
	}
	c.items = c.all
	if len(c.items) > 0 {
		c.load(0)
	}
	return c
}

// Timers returns the timer set shared with the owning game.
func (c *Controller[T]) Timers() *schedule.Timers { return c.timers }

// Events returns the event log shared with the owning game.
func (c *Controller[T]) Events() *engine.EventLog { return c.events }

// SetFilter restricts the active list to difficulty d. When nothing matches
// the full list is used and FellBack reports true. The first level of the
// new list is loaded.
func (c *Controller[T]) SetFilter(d model.Difficulty) {
	c.filter = d
	c.fellBack = false
	if d == model.All || d == "" {
		c.items = c.all
	} else {
		filtered := make([]T, 0, len(c.all))
		for _, item := range c.all {
			if item.Level() == d {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) == 0 {
			filtered = c.all
			c.fellBack = true
		}
		c.items = filtered
	}
	if c.state == StateAllComplete {
		c.state = StatePlaying
	}
	if len(c.items) > 0 {
		c.load(0)
	}
}

// Filter returns the requested difficulty filter.
func (c *Controller[T]) Filter() model.Difficulty { return c.filter }

// FellBack reports whether the last filter matched nothing.
func (c *Controller[T]) FellBack() bool { return c.fellBack }

// Items returns the active list.
func (c *Controller[T]) Items() []T { return append([]T(nil), c.items...) }

// Load makes level i current.
func (c *Controller[T]) Load(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("level %d out of range [0,%d)", i, len(c.items))
	}
	c.load(i)
	return nil
}

func (c *Controller[T]) load(i int) {
	c.index = i
	c.gen++
	c.timers.CancelAll(KeyMessage)
	if c.onLoad != nil {
		c.onLoad(c.items[i])
	}
}

// Next moves to the following level, wrapping to the first.
func (c *Controller[T]) Next() {
	if len(c.items) == 0 {
		return
	}
	if c.state == StateAllComplete {
		c.state = StatePlaying
	}
	c.load((c.index + 1) % len(c.items))
}

// Reset returns to the first level and the start state.
func (c *Controller[T]) Reset() {
	c.timers.CancelAll()
	c.message = ""
	c.state = StateStart
	if c.timers.Paused() {
		c.timers.Resume(time.Time{})
	}
	if len(c.items) > 0 {
		c.load(0)
	}
}

// Begin leaves the start screen.
func (c *Controller[T]) Begin() {
	if c.state == StateStart {
		c.state = StatePlaying
	}
}

// Complete schedules the advance to the next level.
func (c *Controller[T]) Complete(now time.Time) {
	c.timers.Start(KeyAdvance, c.gen, now, AutoAdvanceDelay)
}

// Advancing reports whether an auto-advance is pending.
func (c *Controller[T]) Advancing() bool { return c.timers.Pending(KeyAdvance) }

// Handle consumes fired timers owned by the controller. It reports whether
// f was one of them, even when it was stale.
func (c *Controller[T]) Handle(f schedule.Fired, now time.Time) bool {
	switch f.Key {
	case KeyAdvance:
		if f.Gen == c.gen {
			c.advance(now)
		}
		return true
	case KeyMessage:
		if f.Gen == c.messageGen {
			c.message = ""
		}
		return true
	default:
		return false
	}
}

func (c *Controller[T]) advance(now time.Time) {
	if c.index+1 < len(c.items) {
		c.load(c.index + 1)
		c.state = StatePlaying
		text := fmt.Sprintf("Level %d!", c.Level())
		c.Flash(text, now, LevelMessageDuration)
		c.events.Emit(engine.Event{Kind: engine.EventLevelStarted, Text: text, Level: c.Level()})
		return
	}
	c.state = StateAllComplete
	c.events.Emit(engine.Event{Kind: engine.EventAllComplete, Level: c.Level()})
}

// Flash shows text until d has passed. A newer message replaces it.
func (c *Controller[T]) Flash(text string, now time.Time, d time.Duration) {
	c.message = text
	c.messageGen++
	c.timers.Start(KeyMessage, c.messageGen, now, d)
	c.events.Emit(engine.Event{Kind: engine.EventMessage, Text: text, Level: c.Level()})
}

// Message returns the visible transient message.
func (c *Controller[T]) Message() string { return c.message }

// Pause suspends the level timers.
func (c *Controller[T]) Pause(now time.Time) {
	if c.state != StatePlaying {
		return
	}
	c.resumeTo = c.state
	c.state = StatePaused
	c.timers.Pause(now)
}

// Resume continues after Pause.
func (c *Controller[T]) Resume(now time.Time) {
	if c.state != StatePaused {
		return
	}
	c.state = c.resumeTo
	c.timers.Resume(now)
}

// Current returns the current level.
func (c *Controller[T]) Current() (T, bool) {
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[c.index], true
}

// Index returns the position of the current level in the active list.
func (c *Controller[T]) Index() int { return c.index }

// Level returns the 1-based level number.
func (c *Controller[T]) Level() int { return c.index + 1 }

// Total returns the number of levels in the active list.
func (c *Controller[T]) Total() int { return len(c.items) }

// Generation returns the token of the current level.
func (c *Controller[T]) Generation() uint64 { return c.gen }

// State returns the lifecycle state.
func (c *Controller[T]) State() State { return c.state }

// Playing reports whether interactions should be accepted.
func (c *Controller[T]) Playing() bool { return c.state == StatePlaying }
