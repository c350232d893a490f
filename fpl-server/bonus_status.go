package main

import (
	"sort"

	"github.com/johnhowardroberts/fpl-live-table/internal/bonus"
	"github.com/johnhowardroberts/fpl-live-table/internal/model"
)

// BonusAward is one player's bonus line within a fixture.
type BonusAward struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	BPS      int    `json:"bps"`
	Bonus    int    `json:"bonus"`
}

// FixtureBonus is the bonus picture for one fixture.
type FixtureBonus struct {
	FixtureID int          `json:"fixture_id"`
	Home      string       `json:"home"`
	Away      string       `json:"away"`
	Status    string       `json:"status"`
	Official  bool         `json:"official"`
	Awards    []BonusAward `json:"awards"`
}

// BonusStatusResult is the output of the bonus_status tool.
type BonusStatusResult struct {
	Gameweek int            `json:"gameweek"`
	Fixtures []FixtureBonus `json:"fixtures"`
}

func buildBonusStatus(cfg ServerConfig, args BonusStatusArgs) (*BonusStatusResult, error) {
	gw, err := resolveGW(cfg, args.GW)
	if err != nil {
		return nil, err
	}

	snap, err := openLoader(cfg).LoadGameweek(gw)
	if err != nil {
		return nil, err
	}

	stats := make([]model.LiveStat, 0, len(snap.Stats))
	for _, s := range snap.Stats {
		stats = append(stats, s)
	}
	allocations := bonus.AllocateAll(stats)

	out := &BonusStatusResult{Gameweek: gw, Fixtures: []FixtureBonus{}}
	for fixtureID, alloc := range allocations {
		fx := snap.Fixtures[fixtureID]
		fb := FixtureBonus{
			FixtureID: fixtureID,
			Home:      snap.Teams[fx.TeamH].ShortName,
			Away:      snap.Teams[fx.TeamA].ShortName,
			Status:    fx.Status.String(),
			Official:  alloc.Official,
			Awards:    []BonusAward{},
		}
		for playerID, pts := range alloc.Points {
			fb.Awards = append(fb.Awards, BonusAward{
				PlayerID: playerID,
				Name:     snap.Players[playerID].Name,
				BPS:      snap.Stats[playerID].BPS,
				Bonus:    pts,
			})
		}
		// Highest award first, BPS then id as deterministic tie-break.
		sort.Slice(fb.Awards, func(i, j int) bool {
			if fb.Awards[i].Bonus != fb.Awards[j].Bonus {
				return fb.Awards[i].Bonus > fb.Awards[j].Bonus
			}
			if fb.Awards[i].BPS != fb.Awards[j].BPS {
				return fb.Awards[i].BPS > fb.Awards[j].BPS
			}
			return fb.Awards[i].PlayerID < fb.Awards[j].PlayerID
		})
		out.Fixtures = append(out.Fixtures, fb)
	}

	sort.Slice(out.Fixtures, func(i, j int) bool {
		return out.Fixtures[i].FixtureID < out.Fixtures[j].FixtureID
	})
	return out, nil
}
