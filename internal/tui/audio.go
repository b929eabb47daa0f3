// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"io"
	"os"

	"github.com/verte-zerg/playdeck/internal/engine"
)

// BellAudio is the terminal sound sink: it rings the bell for incorrect
// moves and ignores every other cue.
type BellAudio struct {
	w     io.Writer
	muted bool
	rung  int
}

// NewBellAudio writes the bell to w, or stderr when w is nil.
func NewBellAudio(w io.Writer, muted bool) *BellAudio {
	if w == nil {
		w = os.Stderr
	}
	return &BellAudio{w: w, muted: muted}
}

// Play implements engine.Audio.
func (a *BellAudio) Play(name engine.Sound) {
	if a.muted || name != engine.SoundIncorrect {
		return
	}
	a.rung++
	if _, err := io.WriteString(a.w, "\a"); err != nil {
		// Best-effort bell.
		_ = err
	}
}

// Pause implements engine.Audio.
func (a *BellAudio) Pause(engine.Sound) {}

// Muted reports whether cues are silenced.
func (a *BellAudio) Muted() bool { return a.muted }

// ToggleMute flips the mute state and returns it.
func (a *BellAudio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}
