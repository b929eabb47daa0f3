// Package generator builds randomized pool rounds.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/playdeck/internal/model"
)

// Layout bounds in percentage space.
const (
	MinBalls = 5
	MaxBalls = 9
	MinValue = 1
	MaxValue = 9

	marginX    = 8.0
	marginY    = 10.0
	ellipseRX  = 22.0
	ellipseRY  = 16.0
	startSep   = 20.0
	minSep     = 9.0
	relaxEvery = 80
	relaxBy    = 0.85
	maxTries   = 600
)

// anchors are fallback slots around the table, outside the central ellipse.
var anchors = []model.Point{
	{X: 12, Y: 15}, {X: 50, Y: 14}, {X: 88, Y: 15},
	{X: 12, Y: 50}, {X: 88, Y: 50},
	{X: 12, Y: 85}, {X: 50, Y: 86}, {X: 88, Y: 85},
	{X: 31, Y: 22}, {X: 69, Y: 22}, {X: 31, Y: 78}, {X: 69, Y: 78},
}

// Ball is a numbered ball on the table.
type Ball struct {
	ID       int
	Value    int
	Position model.Point
}

// Round is a generated table: the balls and the pair whose values sum to
// the target.
type Round struct {
	Balls  []Ball
	Target int
	Pair   [2]int
}

// Generator produces randomized rounds.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Round builds a table of MinBalls..MaxBalls balls and picks a random
// distinct pair as the answer.
func (g *Generator) Round() Round {
	count := MinBalls + g.rnd.Intn(MaxBalls-MinBalls+1)
	positions := g.Layout(count)
	balls := make([]Ball, count)
	for i := range balls {
		balls[i] = Ball{
			ID:       i,
			Value:    MinValue + g.rnd.Intn(MaxValue-MinValue+1),
			Position: positions[i],
		}
	}
	a := g.rnd.Intn(count)
	b := g.rnd.Intn(count - 1)
	if b >= a {
		b++
	}
	return Round{
		Balls:  balls,
		Target: balls[a].Value + balls[b].Value,
		Pair:   [2]int{a, b},
	}
}

// Layout places count points outside the central ellipse, keeping them
// apart. The separation relaxes as attempts fail; when random placement
// gives up the next free anchor is used.
func (g *Generator) Layout(count int) []model.Point {
	placed := make([]model.Point, 0, count)
	for len(placed) < count {
		p, ok := g.place(placed)
		if !ok {
			p = anchorFor(placed)
		}
		placed = append(placed, p)
	}
	return placed
}

func (g *Generator) place(placed []model.Point) (model.Point, bool) {
	sep := startSep
	for try := 1; try <= maxTries; try++ {
		p := model.Point{
			X: marginX + g.rnd.Float64()*(100-2*marginX),
			Y: marginY + g.rnd.Float64()*(100-2*marginY),
		}
		if !InCenter(p) && clear(p, placed, sep) {
			return p, true
		}
		if try%relaxEvery == 0 {
			sep = math.Max(minSep, sep*relaxBy)
		}
	}
	return model.Point{}, false
}

func anchorFor(placed []model.Point) model.Point {
	for _, a := range anchors {
		if clear(a, placed, minSep) {
			return a
		}
	}
	return anchors[len(placed)%len(anchors)]
}

// InCenter reports whether p lies inside the central ellipse reserved for
// the target number.
func InCenter(p model.Point) bool {
	dx := (p.X - 50) / ellipseRX
	dy := (p.Y - 50) / ellipseRY
	return dx*dx+dy*dy < 1
}

func clear(p model.Point, placed []model.Point, sep float64) bool {
	for _, q := range placed {
		if math.Hypot(p.X-q.X, p.Y-q.Y) < sep {
			return false
		}
	}
	return true
}

// Shuffle returns words in a random order.
func (g *Generator) Shuffle(words []string) []string {
	out := append([]string(nil), words...)
	g.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
