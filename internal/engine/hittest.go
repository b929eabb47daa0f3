// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

import (
	"math"

	"github.com/verte-zerg/playdeck/internal/model"
)

// Hit tolerances in percentage units.
const (
	DotTolerance   = 8.0
	LabelTolerance = 15.0
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b model.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// FindTarget returns the target nearest to p (percentage space) if that
// distance is strictly less than tolerance. On equal distances the target
// that comes first in targets wins.
func FindTarget(p model.Point, targets []model.Target, tolerance float64) (model.Target, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, t := range targets {
		d := Distance(p, t.Position)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 || !(bestDist < tolerance) {
		return model.Target{}, false
	}
	return targets[best], true
}

// Board is a set of targets hit-tested with a fixed tolerance.
type Board struct {
	targets   []model.Target
	tolerance float64
}

// NewBoard copies targets into a board.
func NewBoard(targets []model.Target, tolerance float64) Board {
	cp := make([]model.Target, len(targets))
	copy(cp, targets)
	return Board{targets: cp, tolerance: tolerance}
}

// Targets returns the board's targets in input order.
func (b Board) Targets() []model.Target {
	return b.targets
}

// Tolerance returns the hit radius.
func (b Board) Tolerance() float64 {
	return b.tolerance
}

// Hit runs FindTarget against the board.
func (b Board) Hit(p model.Point) (model.Target, bool) {
	return FindTarget(p, b.targets, b.tolerance)
}
