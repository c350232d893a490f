package main

import (
	"github.com/johnhowardroberts/fpl-live-table/internal/rank"
)

// LiveTableResult is the output of the live_table tool.
type LiveTableResult struct {
	LeagueID int        `json:"league_id"`
	Gameweek int        `json:"gameweek"`
	Period   string     `json:"period,omitempty"`
	View     string     `json:"view"`
	Rows     []rank.Row `json:"rows"`
}

func buildLiveTable(cfg ServerConfig, args LiveTableArgs) (*LiveTableResult, error) {
	leagueID, err := resolveLeague(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}
	gw, err := resolveGW(cfg, args.GW)
	if err != nil {
		return nil, err
	}

	view := rank.ViewPeriod
	if args.View == string(rank.ViewGameweek) {
		view = rank.ViewGameweek
	}

	res, period, err := runLive(cfg, leagueID, gw, view, args.Period)
	if err != nil {
		return nil, err
	}

	return &LiveTableResult{
		LeagueID: leagueID,
		Gameweek: gw,
		Period:   period,
		View:     string(view),
		Rows:     res.Table,
	}, nil
}
