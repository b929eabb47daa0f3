// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

import "github.com/verte-zerg/playdeck/internal/model"

// SeqState is the connect-the-dots interaction state.
type SeqState int

const (
	SeqIdle SeqState = iota
	SeqDrawing
	SeqComplete
)

func (s SeqState) String() string {
	switch s {
	case SeqIdle:
		return "idle"
	case SeqDrawing:
		return "drawing"
	case SeqComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Link is one validated segment between two consecutive dots.
type Link struct {
	From int
	To   int
}

// Sequence tracks an ordered connect-the-dots cycle over dots numbered
// 1..N. After dot N the expected next dot is 1; reaching it completes the
// shape.
type Sequence struct {
	board        Board
	n            int
	state        SeqState
	source       int
	nextExpected int
	connected    []int
	links        []Link
}

// NewSequence builds a sequence over targets whose Order values are 1..N.
func NewSequence(targets []model.Target) *Sequence {
	s := &Sequence{
		board: NewBoard(targets, DotTolerance),
		n:     len(targets),
	}
	s.Reset()
	return s
}

// Reset discards progress and returns to idle, expecting dot 1.
func (s *Sequence) Reset() {
	s.state = SeqIdle
	s.source = 0
	s.nextExpected = 1
	s.connected = nil
	s.links = nil
}

// Board exposes the dots for hit testing.
func (s *Sequence) Board() Board { return s.board }

// State returns the interaction state.
func (s *Sequence) State() SeqState { return s.state }

// Source returns the dot a line is currently drawn from, or 0 when idle.
func (s *Sequence) Source() int {
	if s.state != SeqDrawing {
		return 0
	}
	return s.source
}

// NextExpected returns the dot the next interaction must start from.
func (s *Sequence) NextExpected() int { return s.nextExpected }

// ExpectedNext returns the dot that follows NextExpected in the cycle.
func (s *Sequence) ExpectedNext() int {
	return s.after(s.nextExpected)
}

func (s *Sequence) after(order int) int {
	if order >= s.n {
		return 1
	}
	return order + 1
}

// Connected returns the dots whose outgoing segment has been validated, in
// the order they were connected.
func (s *Sequence) Connected() []int {
	out := make([]int, len(s.connected))
	copy(out, s.connected)
	return out
}

// IsConnected reports whether order is in the connected set.
func (s *Sequence) IsConnected(order int) bool {
	for _, c := range s.connected {
		if c == order {
			return true
		}
	}
	return false
}

// Links returns the validated segments.
func (s *Sequence) Links() []Link {
	out := make([]Link, len(s.links))
	copy(out, s.links)
	return out
}

// Completed reports whether the cycle has been closed.
func (s *Sequence) Completed() bool { return s.state == SeqComplete }

// Progress returns connected and total dot counts.
func (s *Sequence) Progress() (done, total int) {
	return len(s.connected), s.n
}

// Start begins drawing from order. Only the expected dot may start a line;
// any other dot is rejected with ErrWrongStart and nothing changes.
func (s *Sequence) Start(order int) error {
	if s.state == SeqComplete {
		return ErrCompleted
	}
	if order != s.nextExpected {
		return ErrWrongStart
	}
	s.state = SeqDrawing
	s.source = order
	return nil
}

// Resolve validates a segment from the current source to candidate. On a
// match the source is recorded as connected and drawing continues from the
// candidate, or the shape completes when the candidate closes the cycle.
// A candidate equal to the source is ignored with ErrNoTarget. Any other
// dot yields ErrWrongConnection and the line stays attached to the source.
func (s *Sequence) Resolve(candidate model.Target) (Link, error) {
	switch s.state {
	case SeqComplete:
		return Link{}, ErrCompleted
	case SeqIdle:
		return Link{}, ErrNotDrawing
	}
	if candidate.Order == s.source {
		return Link{}, ErrNoTarget
	}
	expected := s.after(s.source)
	if candidate.Order != expected {
		return Link{}, ErrWrongConnection
	}
	link := Link{From: s.source, To: candidate.Order}
	s.links = append(s.links, link)
	s.markConnected(s.source)
	if expected == 1 && s.source == s.n {
		s.markConnected(1)
		s.state = SeqComplete
		s.source = 0
		return link, nil
	}
	s.nextExpected = expected
	s.source = expected
	return link, nil
}

// Hover resolves candidate only when it is the expected next dot, so a
// drag can chain through several dots. Wrong dots under the pointer are
// ignored mid-drag.
func (s *Sequence) Hover(candidate model.Target) (Link, bool) {
	if s.state != SeqDrawing || candidate.Order != s.after(s.source) || candidate.Order == s.source {
		return Link{}, false
	}
	link, err := s.Resolve(candidate)
	return link, err == nil
}

// Release ends a drag. With a valid next dot the segment is resolved and
// drawing continues from it. Otherwise the line is dropped and the state
// returns to idle without touching progress: ErrWrongConnection for a wrong
// dot, ErrNoTarget when no dot (or the source itself) is under the pointer.
func (s *Sequence) Release(candidate model.Target, ok bool) (Link, error) {
	if s.state != SeqDrawing {
		return Link{}, ErrNotDrawing
	}
	if !ok {
		s.Cancel()
		return Link{}, ErrNoTarget
	}
	link, err := s.Resolve(candidate)
	if err != nil {
		s.Cancel()
		return Link{}, err
	}
	return link, nil
}

// Cancel abandons the current line without changing progress.
func (s *Sequence) Cancel() {
	if s.state == SeqDrawing {
		s.state = SeqIdle
		s.source = 0
	}
}

func (s *Sequence) markConnected(order int) {
	if s.IsConnected(order) {
		return
	}
	s.connected = append(s.connected, order)
}
