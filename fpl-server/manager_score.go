package main

import (
	"fmt"

	"github.com/johnhowardroberts/fpl-live-table/internal/rank"
	"github.com/johnhowardroberts/fpl-live-table/internal/score"
	"github.com/johnhowardroberts/fpl-live-table/internal/subs"
)

// ManagerScoreResult is the output of the manager_score tool: one
// manager's scored roster plus the substitution picture behind it.
type ManagerScoreResult struct {
	LeagueID      int          `json:"league_id"`
	Gameweek      int          `json:"gameweek"`
	Roster        score.Scored `json:"roster"`
	Substitutions subs.Outcome `json:"substitutions"`
}

func buildManagerScore(cfg ServerConfig, args ManagerScoreArgs) (*ManagerScoreResult, error) {
	leagueID, err := resolveLeague(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}
	gw, err := resolveGW(cfg, args.GW)
	if err != nil {
		return nil, err
	}

	res, _, err := runLive(cfg, leagueID, gw, rank.ViewPeriod, "")
	if err != nil {
		return nil, err
	}

	roster, ok := res.Rosters[args.EntryID]
	if !ok {
		return nil, fmt.Errorf("entry %d not in league %d", args.EntryID, leagueID)
	}

	return &ManagerScoreResult{
		LeagueID:      leagueID,
		Gameweek:      gw,
		Roster:        roster,
		Substitutions: res.Outcomes[args.EntryID],
	}, nil
}
