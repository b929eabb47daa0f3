// Package tui provides the Bubble Tea game interfaces.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/hangman"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/store"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// gallowsBase is the empty gallows; each wrong guess adds one body part.
var gallowsBase = []string{
	"  +---+",
	"  |   |",
	"      |",
	"      |",
	"      |",
	"      |",
	"=========",
}

type bodyPart struct {
	row, col int
	r        rune
}

var bodyParts = []bodyPart{
	{2, 2, 'O'},
	{3, 2, '|'},
	{3, 1, '/'},
	{3, 3, '\\'},
	{4, 1, '/'},
	{4, 3, '\\'},
}

type hangmanScreen struct {
	game *hangman.Game
	surf surface
}

// NewHangman builds the hangman UI. Letters are typed directly, so the
// control keys move to ctrl chords.
func NewHangman(levels []hangman.Level, st *store.Store, audio *BellAudio) *Model {
	return newModel(newHangmanScreen(levels, audio), st, audio)
}

func newHangmanScreen(levels []hangman.Level, audio engine.Audio) *hangmanScreen {
	return &hangmanScreen{game: hangman.New(levels, audio)}
}

func hangmanKeys() keyMap {
	k := defaultKeys()
	k.Start = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next word"))
	k.Skip = key.NewBinding(key.WithKeys("tab", "ctrl+n"), key.WithHelp("tab", "skip"))
	k.Reset = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry"))
	k.Mute = key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mute"))
	k.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit"))
	k.Pause.SetEnabled(false)
	k.Difficulty.SetEnabled(false)
	return k
}

func (s *hangmanScreen) Game() string { return model.GameHangman }
func (s *hangmanScreen) Keys() keyMap { return hangmanKeys() }
func (s *hangmanScreen) Intro() string { return "Guess the hidden word one letter at a time." }
func (s *hangmanScreen) Layout(v surface) { s.surf = v }

// Hangman has no start screen or pause; words are untimed.
func (s *hangmanScreen) Started() bool { return true }
func (s *hangmanScreen) Paused() bool { return false }
func (s *hangmanScreen) Start(time.Time) {}
func (s *hangmanScreen) Pause(time.Time) {}
func (s *hangmanScreen) Resume(time.Time) {}

func (s *hangmanScreen) Reset(now time.Time) { s.game.Reset(now) }
func (s *hangmanScreen) Skip(now time.Time) { s.game.Skip(now) }
func (s *hangmanScreen) Tick(now time.Time) { s.game.Tick(now) }
func (s *hangmanScreen) NextWake() (time.Time, bool) { return s.game.NextWake() }
func (s *hangmanScreen) Events() []engine.Event { return s.game.Events() }
func (s *hangmanScreen) Records() []model.RoundRecord { return s.game.Records() }

func (s *hangmanScreen) Title() string { return "Hangman" }

func (s *hangmanScreen) HUD(time.Time) string {
	word, total := s.game.Position()
	return fmt.Sprintf("Level: %s · word %d/%d · wrong %d/%d", s.game.Level().Name, word, total, s.game.Wrong(), hangman.MaxWrong)
}

func (s *hangmanScreen) Message() string {
	switch s.game.Status() {
	case hangman.StatusWon:
		return "Well done! The word was " + s.game.Word()
	case hangman.StatusLost:
		return "Out of guesses. The word was " + s.game.Word() + ". Press enter for the next one"
	default:
		return s.game.Hint()
	}
}

func (s *hangmanScreen) Key(msg tea.KeyMsg, now time.Time) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		if s.game.Status() != hangman.StatusPlaying {
			s.game.Next(now)
		}
		return nil
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return nil
	}
	if err := s.game.Guess(msg.Runes[0], now); err != nil {
		// Repeats and non-letters are ignored.
		_ = err
	}
	return nil
}

// alphabetOrigin returns where the letter row starts on the surface.
func (s *hangmanScreen) alphabetOrigin() (col, row int) {
	width := len(alphabet)*2 - 1
	return (s.surf.width - width) / 2, s.surf.height - 2
}

func (s *hangmanScreen) Mouse(ev engine.PointerEvent, now time.Time) {
	if ev.Kind != engine.PointerDown {
		return
	}
	p, ok := ev.Point()
	if !ok {
		return
	}
	col, row := s.surf.cellAt(p)
	startCol, startRow := s.alphabetOrigin()
	if row != startRow || col < startCol || (col-startCol)%2 != 0 {
		return
	}
	idx := (col - startCol) / 2
	if idx >= len(alphabet) {
		return
	}
	if err := s.game.Guess(rune(alphabet[idx]), now); err != nil {
		_ = err
	}
}

func (s *hangmanScreen) Render(c *canvas, _ time.Time) {
	left := (c.width - len(gallowsBase[len(gallowsBase)-1])) / 2
	top := 1
	for i, line := range gallowsBase {
		c.text(left, top+i, line, lineStyle)
	}
	for i := 0; i < s.game.Wrong() && i < len(bodyParts); i++ {
		part := bodyParts[i]
		c.set(left+part.col, top+part.row, part.r, incorrectStyle)
	}

	word := []rune(s.game.Word())
	reveal := s.game.Status() == hangman.StatusLost
	runes := buildWordRunes(word, s.game.IsGuessed, reveal)
	wordRow := top + len(gallowsBase) + 1
	c.put((c.width-len(runes))/2, wordRow, runes)

	col, row := s.alphabetOrigin()
	for i, r := range alphabet {
		style := pendingStyle
		if s.game.IsGuessed(r) {
			style = incorrectStyle
			if containsRune(word, r) {
				style = correctStyle
			}
		}
		c.set(col+i*2, row, r, style)
	}
}

func containsRune(word []rune, r rune) bool {
	for _, w := range word {
		if w == r {
			return true
		}
	}
	return false
}
