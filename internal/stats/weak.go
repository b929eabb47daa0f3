// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/playdeck/internal/model"
)

// SortHardest orders aggregates by lowest completion rate, then most
// mistakes per play.
func SortHardest(aggs []model.NameAggregate) []model.NameAggregate {
	out := make([]model.NameAggregate, len(aggs))
	copy(out, aggs)
	sort.Slice(out, func(i, j int) bool {
		ci, cj := completion(out[i]), completion(out[j])
		if ci != cj {
			return ci < cj
		}
		mi, mj := mistakeRate(out[i]), mistakeRate(out[j])
		if mi != mj {
			return mi > mj
		}
		if out[i].Game != out[j].Game {
			return out[i].Game < out[j].Game
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SelectHardest returns the names of the top hardest levels.
func SelectHardest(aggs []model.NameAggregate, top int) []string {
	sorted := SortHardest(aggs)
	if top <= 0 || top > len(sorted) {
		top = len(sorted)
	}
	out := make([]string, 0, top)
	for _, agg := range sorted[:top] {
		out = append(out, agg.Name)
	}
	return out
}

func completion(agg model.NameAggregate) float64 {
	if agg.Plays == 0 {
		return 1.0
	}
	return float64(agg.Completed) / float64(agg.Plays)
}

func mistakeRate(agg model.NameAggregate) float64 {
	if agg.Plays == 0 {
		return 0
	}
	return float64(agg.Mistakes) / float64(agg.Plays)
}
