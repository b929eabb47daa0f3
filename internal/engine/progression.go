// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

// Progression is the completion rule of a round. Sequence implements the
// ordered-cycle rule and Placement the unordered-set rule; games and the
// UI only depend on this interface for completion and progress display.
type Progression interface {
	Completed() bool
	Progress() (done, total int)
	Reset()
}

var (
	_ Progression = (*Sequence)(nil)
	_ Progression = (*Placement)(nil)
)
