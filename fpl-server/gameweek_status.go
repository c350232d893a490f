package main

import (
	"sort"

	"github.com/johnhowardroberts/fpl-live-table/internal/bonus"
	"github.com/johnhowardroberts/fpl-live-table/internal/model"
)

// FixtureProgress tracks how far the gameweek's fixtures have gone.
type FixtureProgress struct {
	Total               int `json:"total"`
	Started             int `json:"started"`
	Live                int `json:"live"`
	FinishedProvisional int `json:"finished_provisional"`
	Finished            int `json:"finished"`
}

// GameweekStatusResult is the output of the gameweek_status tool.
type GameweekStatusResult struct {
	Gameweek     int             `json:"gameweek"`
	Fixtures     FixtureProgress `json:"fixtures"`
	BonusPending []int           `json:"bonus_pending_fixtures"`
	AllSettled   bool            `json:"all_settled"`
}

func buildGameweekStatus(cfg ServerConfig) (*GameweekStatusResult, error) {
	loader := openLoader(cfg)
	gw, err := loader.CurrentGameweek()
	if err != nil {
		return nil, err
	}
	snap, err := loader.LoadGameweek(gw)
	if err != nil {
		return nil, err
	}

	stats := make([]model.LiveStat, 0, len(snap.Stats))
	for _, s := range snap.Stats {
		stats = append(stats, s)
	}
	allocations := bonus.AllocateAll(stats)

	out := &GameweekStatusResult{Gameweek: gw, BonusPending: []int{}, AllSettled: true}
	for _, fx := range snap.Fixtures {
		out.Fixtures.Total++
		switch fx.Status {
		case model.FixtureLive:
			out.Fixtures.Started++
			out.Fixtures.Live++
		case model.FixtureFinishedProvisional:
			out.Fixtures.Started++
			out.Fixtures.FinishedProvisional++
		case model.FixtureFinished:
			out.Fixtures.Started++
			out.Fixtures.Finished++
		}
		if !fx.Status.Settled() {
			out.AllSettled = false
		}
		// Finished on the pitch but bonus still provisional.
		if fx.Status == model.FixtureFinishedProvisional {
			if alloc, ok := allocations[fx.ID]; ok && !alloc.Official {
				out.BonusPending = append(out.BonusPending, fx.ID)
			}
		}
	}
	sort.Ints(out.BonusPending)

	return out, nil
}
