// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

// EventKind classifies transitions the presentation layer reacts to.
type EventKind int

const (
	EventConnected EventKind = iota
	EventRejected
	EventPlaced
	EventCompleted
	EventLevelStarted
	EventAllComplete
	EventTimeUp
	EventScored
	EventGameOver
	EventMessage
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventRejected:
		return "rejected"
	case EventPlaced:
		return "placed"
	case EventCompleted:
		return "completed"
	case EventLevelStarted:
		return "level"
	case EventAllComplete:
		return "all-complete"
	case EventTimeUp:
		return "time-up"
	case EventScored:
		return "scored"
	case EventGameOver:
		return "game-over"
	case EventMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Event is one transition emitted by a game.
type Event struct {
	Kind  EventKind
	Text  string
	Level int
}

// EventLog queues events until the host drains them.
type EventLog struct {
	events []Event
}

// Emit appends an event.
func (l *EventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

// Drain returns and clears the queued events.
func (l *EventLog) Drain() []Event {
	out := l.events
	l.events = nil
	return out
}
