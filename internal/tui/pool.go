// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/generator"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/pool"
	"github.com/verte-zerg/playdeck/internal/store"
)

type poolScreen struct {
	game     *pool.Game
	winScore int
	surf     surface
	cursor   int
}

// NewPool builds the pool addition UI. A nil generator is seeded from the
// clock.
func NewPool(gen *generator.Generator, winScore int, st *store.Store, audio *BellAudio) *Model {
	return newModel(newPoolScreen(gen, winScore, audio), st, audio)
}

func newPoolScreen(gen *generator.Generator, winScore int, audio engine.Audio) *poolScreen {
	if winScore <= 0 {
		winScore = pool.DefaultWinScore
	}
	return &poolScreen{game: pool.New(gen, audio, winScore), winScore: winScore}
}

func (s *poolScreen) Game() string { return model.GamePool }
func (s *poolScreen) Keys() keyMap { return defaultKeys() }

func (s *poolScreen) Intro() string {
	return fmt.Sprintf("Pick two balls that add up to the target before the opponent does. First to %d wins.", s.winScore)
}

func (s *poolScreen) Layout(v surface) { s.surf = v }
func (s *poolScreen) Started() bool { return s.game.Started() }
func (s *poolScreen) Paused() bool { return s.game.Paused() && !s.game.Over() }
func (s *poolScreen) Start(now time.Time) { s.game.Start(now) }
func (s *poolScreen) Pause(now time.Time) { s.game.Pause(now) }
func (s *poolScreen) Resume(now time.Time) { s.game.Resume(now) }
func (s *poolScreen) Tick(now time.Time) { s.game.Tick(now) }
func (s *poolScreen) NextWake() (time.Time, bool) { return s.game.NextWake() }
func (s *poolScreen) Events() []engine.Event { return s.game.Events() }
func (s *poolScreen) Records() []model.RoundRecord { return s.game.Records() }

func (s *poolScreen) Reset(now time.Time) {
	s.cursor = 0
	s.game.Reset(now)
}

// Skip hands the round to the opponent.
func (s *poolScreen) Skip(now time.Time) {
	s.game.Concede(now)
}

func (s *poolScreen) Title() string { return "Pool Addition" }

func (s *poolScreen) HUD(now time.Time) string {
	human, opponent := s.game.Scores()
	return fmt.Sprintf("You %d · Opponent %d · first to %d · %s", human, opponent, s.winScore, s.game.Clock(now))
}

func (s *poolScreen) Message() string {
	if winner, ok := s.game.Winner(); ok {
		if winner == pool.TurnHuman {
			return "You win! Press r to play again"
		}
		return "The opponent wins! Press r to play again"
	}
	if s.game.Turn() == pool.TurnOpponent {
		return "Opponent's turn..."
	}
	return fmt.Sprintf("Pick two balls that add up to %d", s.game.Target())
}

func (s *poolScreen) Key(msg tea.KeyMsg, now time.Time) tea.Cmd {
	balls := s.game.Balls()
	if len(balls) == 0 {
		return nil
	}
	switch msg.String() {
	case "left", "h", "up", "k":
		s.cursor = (s.cursor - 1 + len(balls)) % len(balls)
	case "right", "l", "down", "j":
		s.cursor = (s.cursor + 1) % len(balls)
	case " ", "enter", "x":
		if s.cursor < len(balls) {
			s.game.Select(balls[s.cursor].ID, now)
		}
	}
	return nil
}

func (s *poolScreen) ballCell(b generator.Ball) (int, int) {
	return s.surf.cellOf(b.Position, s.surf.Rect())
}

func (s *poolScreen) Mouse(ev engine.PointerEvent, now time.Time) {
	if ev.Kind != engine.PointerDown {
		return
	}
	p, ok := ev.Point()
	if !ok {
		return
	}
	col, row := s.surf.cellAt(p)
	for i, b := range s.game.Balls() {
		bc, br := s.ballCell(b)
		if row == br && col >= bc-1 && col <= bc+1 {
			s.cursor = i
			s.game.Select(b.ID, now)
			return
		}
	}
}

func (s *poolScreen) Render(c *canvas, _ time.Time) {
	c.box(0, 0, c.width, c.height, frameStyle)
	target := "Target " + strconv.Itoa(s.game.Target())
	cc, cr := s.surf.cellOf(model.Point{X: 50, Y: 50}, s.surf.Rect())
	c.text(cc-len(target)/2, cr, target, messageStyle)

	selected := map[int]bool{}
	for _, id := range s.game.Selected() {
		selected[id] = true
	}
	revealed := map[int]bool{}
	for _, id := range s.game.Revealed() {
		revealed[id] = true
	}
	for i, b := range s.game.Balls() {
		style := correctStyle
		switch {
		case revealed[b.ID]:
			style = revealedStyle
		case selected[b.ID]:
			style = selectedStyle
		case i == s.cursor:
			style = accentStyle
		}
		col, row := s.ballCell(b)
		c.text(col-1, row, "("+strconv.Itoa(b.Value)+")", style)
	}
}
