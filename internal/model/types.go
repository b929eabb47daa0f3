// Package model defines shared data structures.
package model

import (
	"strconv"
	"time"
)

// Point is a 2D coordinate. Whether it is in percentage space [0,100] or
// in screen units depends on the function consuming it.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in screen units.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Size holds natural (intrinsic) dimensions of an image.
type Size struct {
	Width  float64
	Height float64
}

// Difficulty tags a shape or scenario.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	// All is the filter value that keeps every difficulty.
	All Difficulty = "all"
)

// Difficulties lists the filter choices in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard, All}

// Valid reports whether d is a playable difficulty tag.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	default:
		return false
	}
}

// ParseDifficulty accepts a difficulty tag or "all". Empty means all.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(s)
	if s == "" || d == All {
		return All, true
	}
	return d, d.Valid()
}

// Target is a point on the play surface that must be visited or matched.
// Position is in percentage space. Order is set for dots (1-based), Label
// for labelling positions.
type Target struct {
	ID       string
	Position Point
	Order    int
	Label    string
}

// Dot is one numbered point of a connect-the-dots shape.
type Dot struct {
	Number int     `json:"number"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Shape is a connect-the-dots level.
type Shape struct {
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
	Image      string     `json:"image"`
	Dots       []Dot      `json:"dots"`
}

// Targets converts the shape's dots into engine targets.
func (s Shape) Targets() []Target {
	out := make([]Target, 0, len(s.Dots))
	for _, d := range s.Dots {
		out = append(out, Target{
			ID:       strconv.Itoa(d.Number),
			Position: Point{X: d.X, Y: d.Y},
			Order:    d.Number,
		})
	}
	return out
}

// Level returns the shape's difficulty tag.
func (s Shape) Level() Difficulty { return s.Difficulty }

// LabelPosition is a drop zone on a scenario image. X/Y is where the label
// must be dropped; TargetX/TargetY is the feature the label points at.
type LabelPosition struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Label   string  `json:"label"`
	TargetX float64 `json:"targetX"`
	TargetY float64 `json:"targetY"`
}

// Scenario is a labelling level.
type Scenario struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Difficulty     Difficulty      `json:"difficulty"`
	Title          string          `json:"title"`
	Image          string          `json:"image"`
	ImageWidth     float64         `json:"imageWidth,omitempty"`
	ImageHeight    float64         `json:"imageHeight,omitempty"`
	LabelPositions []LabelPosition `json:"labelPositions"`
	Labels         []string        `json:"labels"`
}

// Targets converts the scenario's drop zones into engine targets.
func (s Scenario) Targets() []Target {
	out := make([]Target, 0, len(s.LabelPositions))
	for _, p := range s.LabelPositions {
		out = append(out, Target{
			ID:       p.ID,
			Position: Point{X: p.X, Y: p.Y},
			Label:    p.Label,
		})
	}
	return out
}

// Level returns the scenario's difficulty tag.
func (s Scenario) Level() Difficulty { return s.Difficulty }

// NaturalSize returns the image's intrinsic size, or a zero Size when the
// scenario does not declare one.
func (s Scenario) NaturalSize() Size {
	return Size{Width: s.ImageWidth, Height: s.ImageHeight}
}

// SplashScreen holds splash display parameters.
type SplashScreen struct {
	Logo     string `json:"logo"`
	Duration int    `json:"duration"`
}

// Suite is the whole game configuration. Only shape and scenario geometry
// is consumed by the engine; the rest is passed through to the UI.
type Suite struct {
	GameTitle    string            `json:"gameTitle"`
	Instructions string            `json:"instructions"`
	SplashScreen SplashScreen      `json:"splashScreen"`
	Audio        map[string]string `json:"audio"`
	Shapes       []Shape           `json:"shapes"`
	Scenarios    []Scenario        `json:"scenarios"`
}

// Game names used for persistence and CLI.
const (
	GameDots    = "dots"
	GameLabel   = "label"
	GamePool    = "pool"
	GameHangman = "hangman"
)

// Games lists every game in display order.
var Games = []string{GameDots, GameLabel, GamePool, GameHangman}

// Round outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeTimeUp    = "timeup"
	OutcomeSkipped   = "skipped"
	OutcomeLost      = "lost"
	OutcomeOpponent  = "opponent"
)

// Settings defines play options shared by the games.
type Settings struct {
	Difficulty    Difficulty
	Muted         bool
	ScenariosPath string
	LabelTimeout  time.Duration
	PoolWinScore  int
}

// RoundRecord captures one finished round.
type RoundRecord struct {
	ID         string
	Game       string
	Name       string
	Difficulty string
	Level      int
	Outcome    string
	Mistakes   int
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Game        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RoundAggregate summarizes a stored round for reporting.
type RoundAggregate struct {
	ID         string
	Game       string
	Name       string
	Outcome    string
	Mistakes   int
	EndedAt    time.Time
	DurationMs int64
}

// NameAggregate aggregates rounds per shape, scenario or word.
type NameAggregate struct {
	Game       string
	Name       string
	Plays      int
	Completed  int
	Mistakes   int
	DurationMs int64
}
