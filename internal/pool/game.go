// Package pool implements the pool addition game: pick two balls whose
// values add up to the target before the opponent does.
package pool

import (
	"fmt"
	"time"

	"github.com/verte-zerg/playdeck/internal/engine"
	"github.com/verte-zerg/playdeck/internal/generator"
	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/schedule"
)

// Timer keys.
const (
	KeyTurn   = "turn"
	KeyReveal = "reveal"
	KeyNext   = "next"
)

// Timing and scoring defaults.
const (
	TurnTimeout       = 7 * time.Second
	RevealDelay       = 600 * time.Millisecond
	HumanNextDelay    = 700 * time.Millisecond
	OpponentNextDelay = 400 * time.Millisecond
	DefaultWinScore   = 10
)

// Turn says who may act.
type Turn int

const (
	TurnHuman Turn = iota
	TurnOpponent
)

func (t Turn) String() string {
	if t == TurnOpponent {
		return "opponent"
	}
	return "human"
}

// Game is a pool addition match.
type Game struct {
	gen      *generator.Generator
	audio    engine.Audio
	timers   *schedule.Timers
	events   engine.EventLog
	winScore int

	round    generator.Round
	token    uint64
	turn     Turn
	selected []int
	revealed []int
	resolved bool
	mistakes int

	human    int
	opponent int
	over     bool
	started  bool
	paused   bool

	clockStart  time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	roundStart  time.Time
	records     []model.RoundRecord
}

// New builds a match. A nil generator is seeded from the clock; winScore
// <= 0 uses DefaultWinScore.
func New(gen *generator.Generator, audio engine.Audio, winScore int) *Game {
	if gen == nil {
		gen = generator.New()
	}
	if audio == nil {
		audio = engine.NopAudio{}
	}
	if winScore <= 0 {
		winScore = DefaultWinScore
	}
	timers := schedule.New()
	timers.SetPolicy(KeyTurn, schedule.Restart)
	timers.SetPolicy(KeyReveal, schedule.Restart)
	timers.SetPolicy(KeyNext, schedule.Restart)
	return &Game{gen: gen, audio: audio, timers: timers, winScore: winScore}
}

// Start begins the match with a fresh round.
func (g *Game) Start(now time.Time) {
	g.started = true
	g.clockStart = now
	g.audio.Play(engine.SoundStart)
	g.audio.Play(engine.SoundBackground)
	g.newRound(now)
}

// Reset clears scores and starts over.
func (g *Game) Reset(now time.Time) {
	g.timers.CancelAll()
	if g.paused {
		g.timers.Resume(now)
	}
	g.human, g.opponent = 0, 0
	g.over = false
	g.paused = false
	g.pausedTotal = 0
	g.clockStart = now
	g.newRound(now)
}

func (g *Game) newRound(now time.Time) {
	g.token++
	g.timers.CancelAll()
	g.round = g.gen.Round()
	g.turn = TurnHuman
	g.selected = nil
	g.revealed = nil
	g.resolved = false
	g.mistakes = 0
	g.roundStart = now
	g.timers.Start(KeyTurn, g.token, now, TurnTimeout)
}

// Balls returns the balls on the table.
func (g *Game) Balls() []generator.Ball { return g.round.Balls }

// Target returns the sum to find.
func (g *Game) Target() int { return g.round.Target }

// Turn returns who may act.
func (g *Game) Turn() Turn { return g.turn }

// Selected returns the human's selected ball IDs.
func (g *Game) Selected() []int { return append([]int(nil), g.selected...) }

// Revealed returns the ball IDs shown by the opponent.
func (g *Game) Revealed() []int { return append([]int(nil), g.revealed...) }

// Scores returns human and opponent scores.
func (g *Game) Scores() (human, opponent int) { return g.human, g.opponent }

// Over reports whether someone reached the winning score.
func (g *Game) Over() bool { return g.over }

// Started reports whether Start was called.
func (g *Game) Started() bool { return g.started }

// Paused reports whether the match is paused.
func (g *Game) Paused() bool { return g.paused }

// Generation returns the current round token.
func (g *Game) Generation() uint64 { return g.token }

// Events drains queued transitions.
func (g *Game) Events() []engine.Event { return g.events.Drain() }

// Records drains rounds finished since the last call.
func (g *Game) Records() []model.RoundRecord {
	out := g.records
	g.records = nil
	return out
}

// Winner returns the side that reached the winning score.
func (g *Game) Winner() (Turn, bool) {
	switch {
	case g.human >= g.winScore:
		return TurnHuman, true
	case g.opponent >= g.winScore:
		return TurnOpponent, true
	default:
		return TurnHuman, false
	}
}

// Select toggles ball id. Selecting a second ball resolves the pair.
func (g *Game) Select(id int, now time.Time) {
	if !g.started || g.over || g.paused || g.resolved || g.turn != TurnHuman {
		return
	}
	if id < 0 || id >= len(g.round.Balls) {
		return
	}
	for i, s := range g.selected {
		if s == id {
			g.selected = append(g.selected[:i], g.selected[i+1:]...)
			g.audio.Play(engine.SoundUIClick)
			return
		}
	}
	if len(g.selected) >= 2 {
		return
	}
	g.selected = append(g.selected, id)
	g.audio.Play(engine.SoundUIClick)
	if len(g.selected) < 2 {
		return
	}
	sum := g.round.Balls[g.selected[0]].Value + g.round.Balls[g.selected[1]].Value
	if sum == g.round.Target {
		g.humanScores(now)
		return
	}
	g.mistakes++
	g.audio.Play(engine.SoundIncorrect)
	g.events.Emit(engine.Event{Kind: engine.EventRejected, Text: fmt.Sprintf("%d is not %d", sum, g.round.Target)})
	g.opponentTurn(now)
}

// Concede gives the current round to the opponent, as if the turn had
// timed out.
func (g *Game) Concede(now time.Time) {
	if !g.started || g.over || g.paused || g.resolved || g.turn != TurnHuman {
		return
	}
	g.opponentTurn(now)
}

func (g *Game) humanScores(now time.Time) {
	g.resolved = true
	g.timers.Cancel(KeyTurn)
	g.human++
	g.audio.Play(engine.SoundSuccess)
	g.events.Emit(engine.Event{Kind: engine.EventScored, Text: TurnHuman.String()})
	g.finishRound(model.OutcomeCompleted, now, HumanNextDelay)
}

func (g *Game) opponentTurn(now time.Time) {
	g.timers.Cancel(KeyTurn)
	g.turn = TurnOpponent
	g.selected = nil
	g.revealed = []int{g.round.Pair[0]}
	g.timers.Start(KeyReveal, g.token, now, RevealDelay)
}

func (g *Game) opponentScores(now time.Time) {
	g.revealed = append(g.revealed, g.round.Pair[1])
	g.resolved = true
	g.opponent++
	g.events.Emit(engine.Event{Kind: engine.EventScored, Text: TurnOpponent.String()})
	g.finishRound(model.OutcomeOpponent, now, OpponentNextDelay)
}

func (g *Game) finishRound(outcome string, now time.Time, next time.Duration) {
	g.records = append(g.records, model.RoundRecord{
		Game:       model.GamePool,
		Name:       fmt.Sprintf("target %d", g.round.Target),
		Level:      g.human + g.opponent,
		Outcome:    outcome,
		Mistakes:   g.mistakes,
		StartedAt:  g.roundStart,
		EndedAt:    now,
		DurationMs: now.Sub(g.roundStart).Milliseconds(),
	})
	if winner, ok := g.Winner(); ok {
		g.over = true
		g.timers.CancelAll()
		if winner == TurnHuman {
			g.audio.Play(engine.SoundLevelWin)
		}
		g.events.Emit(engine.Event{Kind: engine.EventGameOver, Text: winner.String()})
		g.pause(now)
		return
	}
	g.timers.Start(KeyNext, g.token, now, next)
}

// Tick fires due timers. Timers armed for an earlier round are ignored.
func (g *Game) Tick(now time.Time) {
	for _, f := range g.timers.Due(now) {
		if f.Gen != g.token || g.over {
			continue
		}
		switch f.Key {
		case KeyTurn:
			if !g.resolved && g.turn == TurnHuman {
				g.opponentTurn(now)
			}
		case KeyReveal:
			g.opponentScores(now)
		case KeyNext:
			g.newRound(now)
		}
	}
}

// NextWake returns when Tick should next be called.
func (g *Game) NextWake() (time.Time, bool) { return g.timers.NextWake() }

// Pause suspends the round timers and the clock.
func (g *Game) Pause(now time.Time) {
	if g.over {
		return
	}
	g.pause(now)
}

func (g *Game) pause(now time.Time) {
	if g.paused {
		return
	}
	g.paused = true
	g.pausedAt = now
	g.timers.Pause(now)
	g.audio.Pause(engine.SoundBackground)
}

// Resume continues after Pause. A finished match stays paused until Reset.
func (g *Game) Resume(now time.Time) {
	if !g.paused || g.over {
		return
	}
	g.paused = false
	g.pausedTotal += now.Sub(g.pausedAt)
	g.timers.Resume(now)
	g.audio.Play(engine.SoundBackground)
}

// Elapsed returns play time excluding pauses.
func (g *Game) Elapsed(now time.Time) time.Duration {
	if !g.started {
		return 0
	}
	end := now
	if g.paused {
		end = g.pausedAt
	}
	d := end.Sub(g.clockStart) - g.pausedTotal
	if d < 0 {
		return 0
	}
	return d
}

// Clock formats Elapsed as mm:ss.
func (g *Game) Clock(now time.Time) string {
	secs := int(g.Elapsed(now) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
