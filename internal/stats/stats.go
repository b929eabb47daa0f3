// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/playdeck/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates the rounds of one game.
type Summary struct {
	Game       string
	Plays      int
	Completed  int
	Mistakes   int
	DurationMs int64
	FastestMs  int64
	LastPlayed time.Time
}

// CompletionRate returns completed rounds over plays.
func (s Summary) CompletionRate() float64 {
	if s.Plays == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Plays)
}

// AvgMistakes returns mistakes per round.
func (s Summary) AvgMistakes() float64 {
	if s.Plays == 0 {
		return 0
	}
	return float64(s.Mistakes) / float64(s.Plays)
}

// AvgDuration returns the mean round length.
func (s Summary) AvgDuration() time.Duration {
	if s.Plays == 0 {
		return 0
	}
	return time.Duration(s.DurationMs/int64(s.Plays)) * time.Millisecond
}

// Summarize groups rounds per game, in model.Games order. Games without
// rounds are omitted.
func Summarize(rounds []model.RoundAggregate) []Summary {
	byGame := map[string]*Summary{}
	for _, r := range rounds {
		s, ok := byGame[r.Game]
		if !ok {
			s = &Summary{Game: r.Game}
			byGame[r.Game] = s
		}
		s.Plays++
		s.Mistakes += r.Mistakes
		s.DurationMs += r.DurationMs
		if r.Outcome == model.OutcomeCompleted {
			s.Completed++
			if s.FastestMs == 0 || r.DurationMs < s.FastestMs {
				s.FastestMs = r.DurationMs
			}
		}
		if r.EndedAt.After(s.LastPlayed) {
			s.LastPlayed = r.EndedAt
		}
	}
	out := make([]Summary, 0, len(byGame))
	for _, game := range model.Games {
		if s, ok := byGame[game]; ok {
			out = append(out, *s)
			delete(byGame, game)
		}
	}
	rest := make([]string, 0, len(byGame))
	for game := range byGame {
		rest = append(rest, game)
	}
	sort.Strings(rest)
	for _, game := range rest {
		out = append(out, *byGame[game])
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMaxSingle(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// CompletionSeries returns 100 for completed rounds and 0 otherwise.
func CompletionSeries(rounds []model.RoundAggregate) []float64 {
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		if r.Outcome == model.OutcomeCompleted {
			out[i] = 100
		}
	}
	return out
}

// MistakeSeries returns the mistakes of each round.
func MistakeSeries(rounds []model.RoundAggregate) []float64 {
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		out[i] = float64(r.Mistakes)
	}
	return out
}

// RenderSummary prints a per-game summary table.
func RenderSummary(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	headers := []string{"Game", "Rounds", "Completed", "Avg Mistakes", "Avg Time", "Fastest"}
	rows := make([][]string, 0, len(model.Games))
	for _, s := range Summarize(rounds) {
		rows = append(rows, []string{
			s.Game,
			fmt.Sprintf("%d", s.Plays),
			fmt.Sprintf("%.1f%%", s.CompletionRate()*100),
			fmt.Sprintf("%.2f", s.AvgMistakes()),
			formatDuration(s.AvgDuration()),
			formatDuration(time.Duration(s.FastestMs) * time.Millisecond),
		})
	}
	if err := writeLines(w, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints completion and mistake curves.
func RenderCurves(w io.Writer, rounds []model.RoundAggregate, window int) error {
	return RenderCurvesWithSize(w, rounds, window, 0, 8, false)
}

// RenderCurvesWithSize prints curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, rounds []model.RoundAggregate, window, totalWidth, height int, useColor bool) error {
	if len(rounds) == 0 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "Completed %", Values: MovingAverage(CompletionSeries(rounds), window)},
		{Name: "Mistakes", Values: MovingAverage(MistakeSeries(rounds), window)},
	}, width, height, useColor)
}

// NameCompletionSeries returns the completion series of the rounds played
// on one shape, scenario or word.
func NameCompletionSeries(rounds []model.RoundAggregate, name string) []float64 {
	var picked []model.RoundAggregate
	for _, r := range rounds {
		if r.Name == name {
			picked = append(picked, r)
		}
	}
	return CompletionSeries(picked)
}

// RenderNameCurvesWithSize prints one completion curve per level name.
// Names without rounds are skipped.
func RenderNameCurvesWithSize(w io.Writer, rounds []model.RoundAggregate, names []string, window, totalWidth, height int, useColor bool) error {
	series := make([]Series, 0, len(names))
	for _, name := range names {
		values := NameCompletionSeries(rounds, name)
		if len(values) == 0 {
			continue
		}
		series = append(series, Series{Name: name, Values: MovingAverage(values, window)})
	}
	if len(series) == 0 {
		_, err := fmt.Fprintln(w, "No rounds for the selected levels.")
		return err
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Level Completion %", series, width, height, useColor)
}

// RenderNameTable prints per shape, scenario or word aggregates, hardest
// first.
func RenderNameTable(w io.Writer, aggs []model.NameAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No level stats found.")
		return err
	}
	rows := SortHardest(aggs)
	if _, err := fmt.Fprintln(w, "Per-Level (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Game", "Level", "Plays", "Completed", "Mistakes", "Avg Time"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		avg := time.Duration(0)
		if r.Plays > 0 {
			avg = time.Duration(r.DurationMs/int64(r.Plays)) * time.Millisecond
		}
		tableRows = append(tableRows, []string{
			r.Game,
			r.Name,
			fmt.Sprintf("%d", r.Plays),
			fmt.Sprintf("%.1f%%", completion(r)*100),
			fmt.Sprintf("%d", r.Mistakes),
			formatDuration(avg),
		})
	}
	if err := writeLines(w, formatTable(headers, tableRows, map[int]bool{2: true, 3: true, 4: true, 5: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
