// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	floatDuration = 1.2
	floatRise     = 3
)

// fadeColors go from bright to the background grey.
var fadeColors = []lipgloss.Color{"#FFD666", "#C89A3A", "#8C6A28", "#5A4A2A", "#3A3A3A"}

// floatText is a message that drifts upwards and fades out.
type floatText struct {
	text   string
	rise   *gween.Tween
	fade   *gween.Tween
	offset float32
	level  float32
	done   bool
}

func newFloat(text string) *floatText {
	return &floatText{
		text: text,
		rise: gween.New(0, floatRise, floatDuration, ease.OutQuad),
		fade: gween.New(0, float32(len(fadeColors)-1), floatDuration, ease.InQuad),
	}
}

// update advances the animation by dt seconds and reports whether it ended.
func (f *floatText) update(dt float32) bool {
	if f.done {
		return true
	}
	var riseDone, fadeDone bool
	f.offset, riseDone = f.rise.Update(dt)
	f.level, fadeDone = f.fade.Update(dt)
	f.done = riseDone && fadeDone
	return f.done
}

// rows returns how many rows the text has risen.
func (f *floatText) rows() int { return int(f.offset + 0.5) }

func (f *floatText) style() lipgloss.Style {
	idx := int(f.level + 0.5)
	if idx >= len(fadeColors) {
		idx = len(fadeColors) - 1
	}
	return lipgloss.NewStyle().Foreground(fadeColors[idx]).Bold(true)
}

// updateFloats advances every float and drops the finished ones.
func updateFloats(floats []*floatText, dt float32) []*floatText {
	kept := floats[:0]
	for _, f := range floats {
		if !f.update(dt) {
			kept = append(kept, f)
		}
	}
	return kept
}
