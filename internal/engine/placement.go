// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

import "github.com/verte-zerg/playdeck/internal/model"

// Placement tracks an unordered labelling round: every label has exactly
// one target that accepts it, and labels may be placed in any order.
type Placement struct {
	board  Board
	labels []string
	placed map[string]model.Target
}

// NewPlacement builds a placement over targets. labels lists the draggable
// tokens; duplicates are collapsed. When labels is empty the distinct
// target labels are used.
func NewPlacement(targets []model.Target, labels []string) *Placement {
	if len(labels) == 0 {
		for _, t := range targets {
			labels = append(labels, t.Label)
		}
	}
	seen := make(map[string]struct{}, len(labels))
	distinct := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		distinct = append(distinct, l)
	}
	return &Placement{
		board:  NewBoard(targets, LabelTolerance),
		labels: distinct,
		placed: map[string]model.Target{},
	}
}

// Reset clears all placed labels.
func (p *Placement) Reset() {
	p.placed = map[string]model.Target{}
}

// Board exposes the drop zones for hit testing.
func (p *Placement) Board() Board { return p.board }

// Labels returns the distinct labels in tray order.
func (p *Placement) Labels() []string {
	out := make([]string, len(p.labels))
	copy(out, p.labels)
	return out
}

// Remaining returns the labels not yet placed, in tray order.
func (p *Placement) Remaining() []string {
	out := make([]string, 0, len(p.labels))
	for _, l := range p.labels {
		if _, ok := p.placed[l]; !ok {
			out = append(out, l)
		}
	}
	return out
}

// Placed returns the target a label was placed on.
func (p *Placement) Placed(label string) (model.Target, bool) {
	t, ok := p.placed[label]
	return t, ok
}

// PlacedCount returns the number of placed labels.
func (p *Placement) PlacedCount() int { return len(p.placed) }

// Completed reports whether every distinct label has been placed.
func (p *Placement) Completed() bool {
	return len(p.labels) > 0 && len(p.placed) == len(p.labels)
}

// Progress returns placed and total label counts.
func (p *Placement) Progress() (done, total int) {
	return len(p.placed), len(p.labels)
}

// Drop resolves a label released at point (percentage space). The nearest
// drop zone within LabelTolerance must be the label's own zone; otherwise
// the drop is rejected and nothing changes. Dropping a label that is
// already placed onto its zone again succeeds without changing the count.
func (p *Placement) Drop(label string, point model.Point) (model.Target, error) {
	if !p.known(label) {
		return model.Target{}, ErrUnknownLabel
	}
	target, ok := p.board.Hit(point)
	if !ok {
		return model.Target{}, ErrNoTarget
	}
	if target.Label != label {
		return target, ErrWrongPlacement
	}
	p.placed[label] = target
	return target, nil
}

func (p *Placement) known(label string) bool {
	for _, l := range p.labels {
		if l == label {
			return true
		}
	}
	return false
}
