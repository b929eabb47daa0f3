// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/playdeck/internal/model"
)

// TopNamesByPlays returns the N most played level names.
func TopNamesByPlays(aggs []model.NameAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.NameAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Plays == items[j].Plays {
			return items[i].Name < items[j].Name
		}
		return items[i].Plays > items[j].Plays
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].Name)
	}
	return out
}
