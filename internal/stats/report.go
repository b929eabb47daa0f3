// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/playdeck/internal/model"
	"github.com/verte-zerg/playdeck/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Rounds         []model.RoundAggregate
	WindowRoundIDs []string
	NamesAll       []model.NameAggregate
	NamesWindow    []model.NameAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}

	allIDs := roundIDs(rounds)
	windowIDs := lastRoundIDs(rounds, cfg.CurveWindow)
	namesAll, err := st.ListNameAggregates(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	namesWindow, err := st.ListNameAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Rounds:         rounds,
		WindowRoundIDs: windowIDs,
		NamesAll:       namesAll,
		NamesWindow:    namesWindow,
	}, nil
}

// ForGame returns the rounds of one game.
func (r Report) ForGame(game string) []model.RoundAggregate {
	var out []model.RoundAggregate
	for _, round := range r.Rounds {
		if round.Game == game {
			out = append(out, round)
		}
	}
	return out
}

func roundIDs(rounds []model.RoundAggregate) []string {
	ids := make([]string, len(rounds))
	for i, r := range rounds {
		ids[i] = r.ID
	}
	return ids
}

func lastRoundIDs(rounds []model.RoundAggregate, window int) []string {
	if window <= 0 || len(rounds) <= window {
		return roundIDs(rounds)
	}
	return roundIDs(rounds[len(rounds)-window:])
}
