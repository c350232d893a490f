// Package engine runs the full live-scoring pipeline over one
// consistent snapshot: bonus allocation, substitution resolution,
// per-roster scoring, then period aggregation and ranking. It is pure
// and holds no state between runs; re-running on an unchanged snapshot
// produces identical output.
package engine

import (
	"github.com/johnhowardroberts/fpl-live-table/internal/bonus"
	"github.com/johnhowardroberts/fpl-live-table/internal/model"
	"github.com/johnhowardroberts/fpl-live-table/internal/rank"
	"github.com/johnhowardroberts/fpl-live-table/internal/score"
	"github.com/johnhowardroberts/fpl-live-table/internal/subs"
)

// Manager is one participant's input to a run. A nil Roster marks a
// manager whose picks were absent from the snapshot; they degrade to a
// zeroed row instead of failing the run.
type Manager struct {
	EntryID      int
	EntryName    string
	Roster       *model.RosterSnapshot
	History      map[int]int
	CareerPoints int
}

// Snapshot is the immutable input assembled by the collaborating fetch
// layer before a run. The engine never observes a partial snapshot.
type Snapshot struct {
	Gameweek        int
	Players         map[int]model.Player
	Teams           map[int]model.Team
	Fixtures        map[int]model.Fixture
	Stats           map[int]model.LiveStat
	Managers        []Manager
	PeriodGameweeks []int
	View            rank.View
}

// Result is one run's complete output.
type Result struct {
	Gameweek    int                      `json:"gameweek"`
	Allocations map[int]bonus.Allocation `json:"allocations"`
	Rosters     map[int]score.Scored     `json:"rosters"`
	Outcomes    map[int]subs.Outcome     `json:"outcomes"`
	Table       []rank.Row               `json:"table"`
}

// Run executes the pipeline for every manager in the snapshot.
func Run(snap Snapshot) Result {
	stats := make([]model.LiveStat, 0, len(snap.Stats))
	for _, s := range snap.Stats {
		stats = append(stats, s)
	}
	allocations := bonus.AllocateAll(stats)

	res := Result{
		Gameweek:    snap.Gameweek,
		Allocations: allocations,
		Rosters:     make(map[int]score.Scored, len(snap.Managers)),
		Outcomes:    make(map[int]subs.Outcome, len(snap.Managers)),
		Table:       []rank.Row{},
	}

	rows := make([]rank.Row, 0, len(snap.Managers))
	for _, m := range snap.Managers {
		var scored score.Scored
		var outcome subs.Outcome
		if m.Roster == nil {
			scored = score.Zeroed(m.EntryID, m.EntryName, snap.Gameweek)
			outcome = subs.Outcome{
				Confirmed:     []subs.Substitution{},
				Pending:       []subs.PendingSubstitution{},
				NoReplacement: []int{},
			}
		} else {
			outcome = subs.Resolve(*m.Roster, snap.Players, snap.Stats, snap.Fixtures)
			scored = score.Score(*m.Roster, snap.Players, snap.Stats, allocations, outcome)
		}
		res.Rosters[m.EntryID] = scored
		res.Outcomes[m.EntryID] = outcome

		rows = append(rows, rank.Row{
			EntryID:      m.EntryID,
			EntryName:    m.EntryName,
			PriorPoints:  rank.PeriodTotal(m.History, snap.PeriodGameweeks, snap.Gameweek, 0),
			LivePoints:   scored.TotalPoints,
			PeriodPoints: rank.PeriodTotal(m.History, snap.PeriodGameweeks, snap.Gameweek, scored.TotalPoints),
			CareerPoints: m.CareerPoints,
		})
	}

	res.Table = rank.Rank(rows, snap.View)
	return res
}
