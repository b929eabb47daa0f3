// Package hangman implements the word guessing game.
package hangman

import (
	"errors"
	"strings"
	"time"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/schedule"
)

// MaxWrong is the number of wrong guesses that loses a word.
const MaxWrong = 6

// AdvanceDelay is the pause after a solved word before the next one.
const AdvanceDelay = time.Second

const keyAdvance = "advance"

// DefaultHint is shown for words without a hint.
const DefaultHint = "Try to guess the hidden word!"

var (
	ErrNotLetter      = errors.New("guess must be a letter A-Z")
	ErrAlreadyGuessed = errors.New("letter already guessed")
	ErrWordOver       = errors.New("word is already finished")
)

// Level is a named word list.
type Level struct {
	Name  string
	Words []string
}

// DefaultLevels are the built-in word lists.
var DefaultLevels = []Level{
	{Name: "Easy", Words: []string{"CAT", "DOG", "SUN", "BALL"}},
	{Name: "Medium", Words: []string{"BIRD", "FISH", "TREE", "MOON"}},
	{Name: "Hard", Words: []string{"APPLE", "HOUSE"}},
}

// Hints for the built-in words.
var Hints = map[string]string{
	"CAT":   "A small animal that says meow",
	"DOG":   "A friendly pet that barks",
	"BIRD":  "An animal that can fly",
	"FISH":  "An animal that swims",
	"APPLE": "A round red or green fruit",
	"BALL":  "A round toy you can throw",
	"HOUSE": "A place where people live",
	"TREE":  "A tall plant with leaves",
	"SUN":   "The bright star in the sky",
	"MOON":  "The big round rock in the night sky",
}

// Status is the state of the current word.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// Game is a hangman session.
type Game struct {
	levels  []Level
	level   int
	word    int
	guessed map[rune]bool
	order   []rune
	wrong   int
	status  Status
	token   uint64
	timers  *schedule.Timers
	audio   engine.Audio
	events  engine.EventLog
	started time.Time
	records []model.RoundRecord
}

// New builds a game over levels. Empty levels are dropped; with none left
// DefaultLevels are used.
func New(levels []Level, audio engine.Audio) *Game {
	kept := make([]Level, 0, len(levels))
	for _, l := range levels {
		if len(l.Words) > 0 {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		kept = DefaultLevels
	}
	if audio == nil {
		audio = engine.NopAudio{}
	}
	g := &Game{levels: kept, audio: audio, timers: schedule.New()}
	g.load(0, 0, time.Time{})
	return g
}

func (g *Game) load(level, word int, now time.Time) {
	g.level = level
	g.word = word
	g.guessed = map[rune]bool{}
	g.order = nil
	g.wrong = 0
	g.status = StatusPlaying
	g.token++
	g.timers.CancelAll()
	g.started = now
}

// Word returns the hidden word.
func (g *Game) Word() string {
	return strings.ToUpper(g.levels[g.level].Words[g.word])
}

// Level returns the current level.
func (g *Game) Level() Level { return g.levels[g.level] }

// Position returns the 1-based index of the word within its level and the
// level's word count.
func (g *Game) Position() (word, total int) {
	return g.word + 1, len(g.levels[g.level].Words)
}

// Hint returns the hint for the current word.
func (g *Game) Hint() string {
	if h, ok := Hints[g.Word()]; ok {
		return h
	}
	return DefaultHint
}

// Status returns the state of the current word.
func (g *Game) Status() Status { return g.status }

// Wrong returns the number of wrong guesses.
func (g *Game) Wrong() int { return g.wrong }

// Guessed returns guessed letters in guess order.
func (g *Game) Guessed() []rune { return append([]rune(nil), g.order...) }

// IsGuessed reports whether r was guessed.
func (g *Game) IsGuessed(r rune) bool { return g.guessed[r] }

// Events drains queued transitions.
func (g *Game) Events() []engine.Event { return g.events.Drain() }

// Records drains words finished since the last call.
func (g *Game) Records() []model.RoundRecord {
	out := g.records
	g.records = nil
	return out
}

// Masked returns the word with unguessed letters as underscores,
// separated by spaces.
func (g *Game) Masked() string {
	word := g.Word()
	parts := make([]string, 0, len(word))
	for _, r := range word {
		if g.guessed[r] || g.status == StatusLost {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

// Guess tries letter r.
func (g *Game) Guess(r rune, now time.Time) error {
	if g.status != StatusPlaying {
		return ErrWordOver
	}
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return ErrNotLetter
	}
	if g.guessed[r] {
		return ErrAlreadyGuessed
	}
	if g.started.IsZero() {
		g.started = now
	}
	g.guessed[r] = true
	g.order = append(g.order, r)
	word := g.Word()
	if !strings.ContainsRune(word, r) {
		g.wrong++
		g.audio.Play(engine.SoundIncorrect)
		g.events.Emit(engine.Event{Kind: engine.EventRejected, Text: string(r)})
		if g.wrong >= MaxWrong {
			g.status = StatusLost
			g.events.Emit(engine.Event{Kind: engine.EventGameOver, Text: word})
			g.record(model.OutcomeLost, now)
		}
		return nil
	}
	g.audio.Play(engine.SoundConnect)
	for _, c := range word {
		if !g.guessed[c] {
			return nil
		}
	}
	g.status = StatusWon
	g.audio.Play(engine.SoundSuccess)
	g.events.Emit(engine.Event{Kind: engine.EventCompleted, Text: word})
	g.record(model.OutcomeCompleted, now)
	g.timers.Start(keyAdvance, g.token, now, AdvanceDelay)
	return nil
}

// Tick fires the auto-advance after a solved word.
func (g *Game) Tick(now time.Time) {
	for _, f := range g.timers.Due(now) {
		if f.Key == keyAdvance && f.Gen == g.token {
			g.Next(now)
		}
	}
}

// NextWake returns when Tick should next be called.
func (g *Game) NextWake() (time.Time, bool) { return g.timers.NextWake() }

// Next moves to the next word, then the next level, wrapping to the first.
func (g *Game) Next(now time.Time) {
	level, word := g.level, g.word+1
	if word >= len(g.levels[level].Words) {
		word = 0
		level = (level + 1) % len(g.levels)
		g.events.Emit(engine.Event{Kind: engine.EventLevelStarted, Text: g.levels[level].Name, Level: level + 1})
	}
	g.load(level, word, now)
}

// Skip records the current word as skipped and moves on.
func (g *Game) Skip(now time.Time) {
	if g.status == StatusPlaying {
		g.record(model.OutcomeSkipped, now)
	}
	g.Next(now)
}

// Reset replays the current word.
func (g *Game) Reset(now time.Time) {
	g.load(g.level, g.word, now)
}

func (g *Game) record(outcome string, now time.Time) {
	started := g.started
	if started.IsZero() {
		started = now
	}
	g.records = append(g.records, model.RoundRecord{
		Game:       model.GameHangman,
		Name:       g.Word(),
		Difficulty: strings.ToLower(g.levels[g.level].Name),
		Level:      g.level + 1,
		Outcome:    outcome,
		Mistakes:   g.wrong,
		StartedAt:  started,
		EndedAt:    now,
		DurationMs: now.Sub(started).Milliseconds(),
	})
}
