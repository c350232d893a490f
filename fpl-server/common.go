package main

import (
	"fmt"

	"github.com/johnhowardroberts/fpl-live-table/internal/config"
	"github.com/johnhowardroberts/fpl-live-table/internal/engine"
	"github.com/johnhowardroberts/fpl-live-table/internal/rank"
	"github.com/johnhowardroberts/fpl-live-table/internal/snapshot"
	"github.com/johnhowardroberts/fpl-live-table/internal/store"
)

func openLoader(cfg ServerConfig) *snapshot.Loader {
	return snapshot.NewLoader(store.NewJSONStore(cfg.RawRoot))
}

// resolveGW maps gw==0 to the current gameweek from the stored bootstrap.
func resolveGW(cfg ServerConfig, gw int) (int, error) {
	if gw > 0 {
		return gw, nil
	}
	return openLoader(cfg).CurrentGameweek()
}

// resolveLeague maps league==0 to the configured default.
func resolveLeague(cfg ServerConfig, leagueID int) (int, error) {
	if leagueID > 0 {
		return leagueID, nil
	}
	if cfg.LeagueID > 0 {
		return cfg.LeagueID, nil
	}
	return 0, fmt.Errorf("league_id is required (no default configured)")
}

// periodFor picks the period gameweek set: an explicit name wins, then
// the period containing the gameweek, then the gameweek alone.
func periodFor(cfg ServerConfig, gw int, name string) (string, []int, error) {
	periods, err := config.LoadPeriods(cfg.PeriodsPath)
	if err != nil {
		return "", []int{gw}, nil
	}
	if name != "" {
		gws, ok := periods.Gameweeks(name)
		if !ok {
			return "", nil, fmt.Errorf("unknown period %q", name)
		}
		return name, gws, nil
	}
	if pname, gws, ok := periods.Containing(gw); ok {
		return pname, gws, nil
	}
	return "", []int{gw}, nil
}

// runLive assembles the snapshot and runs the engine once.
func runLive(cfg ServerConfig, leagueID, gw int, view rank.View, periodName string) (engine.Result, string, error) {
	name, periodGWs, err := periodFor(cfg, gw, periodName)
	if err != nil {
		return engine.Result{}, "", err
	}

	snap, err := openLoader(cfg).Load(leagueID, gw, periodGWs, view)
	if err != nil {
		return engine.Result{}, "", err
	}
	return engine.Run(snap), name, nil
}
