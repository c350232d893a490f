package engine

import (
	"reflect"
	"testing"

	"github.com/johnhowardroberts/fpl-live-table/internal/model"
	"github.com/johnhowardroberts/fpl-live-table/internal/rank"
)

// twoManagerSnapshot builds a small but complete snapshot: two finished
// fixtures, a handful of players, one manager with a normal roster and
// one whose roster is missing.
func twoManagerSnapshot() Snapshot {
	players := map[int]model.Player{
		1: {ID: 1, Name: "Keeper", Position: model.GK},
		2: {ID: 2, Name: "Back", Position: model.DEF},
		3: {ID: 3, Name: "Wing", Position: model.MID},
		4: {ID: 4, Name: "Nine", Position: model.FWD},
	}
	fixtures := map[int]model.Fixture{
		1: {ID: 1, Gameweek: 22, Status: model.FixtureFinished},
	}
	stats := map[int]model.LiveStat{
		1: {PlayerID: 1, FixtureID: 1, Minutes: 90, BasePoints: 2, BPS: 12},
		2: {PlayerID: 2, FixtureID: 1, Minutes: 90, BasePoints: 6, BPS: 30},
		3: {PlayerID: 3, FixtureID: 1, Minutes: 90, BasePoints: 5, BPS: 25},
		4: {PlayerID: 4, FixtureID: 1, Minutes: 90, BasePoints: 9, BPS: 40},
	}
	roster := &model.RosterSnapshot{
		EntryID: 100, EntryName: "Alpha", Gameweek: 22, Chip: model.ChipNone,
		Slots: []model.RosterSlot{
			{PlayerID: 1, SlotIndex: 1, Multiplier: 1},
			{PlayerID: 2, SlotIndex: 2, Multiplier: 1},
			{PlayerID: 3, SlotIndex: 3, Multiplier: 1},
			{PlayerID: 4, SlotIndex: 4, Multiplier: 2, IsCaptain: true},
		},
	}
	return Snapshot{
		Gameweek: 22,
		Players:  players,
		Fixtures: fixtures,
		Stats:    stats,
		Managers: []Manager{
			{EntryID: 100, EntryName: "Alpha", Roster: roster, History: map[int]int{21: 50}, CareerPoints: 900},
			{EntryID: 200, EntryName: "Ghost", Roster: nil, History: map[int]int{21: 60}, CareerPoints: 800},
		},
		PeriodGameweeks: []int{21, 22},
		View:            rank.ViewPeriod,
	}
}

func TestRun_Deterministic(t *testing.T) {
	snap := twoManagerSnapshot()

	first := Run(snap)
	second := Run(snap)

	if !reflect.DeepEqual(first, second) {
		t.Error("re-running the engine on an unchanged snapshot changed the output")
	}
}

func TestRun_PeriodTotals(t *testing.T) {
	res := Run(twoManagerSnapshot())

	// Alpha: BPS ranking awards 4->3, 2->2, 3->1; captain 4 doubles.
	// Live = 2 + (6+2) + (5+1) + (9+3)*2 = 40; period = 50 + 40 = 90.
	alpha := res.Rosters[100]
	if alpha.TotalPoints != 40 {
		t.Errorf("Alpha live total = %d, want 40", alpha.TotalPoints)
	}

	for _, row := range res.Table {
		if row.EntryID == 100 && row.PeriodPoints != 90 {
			t.Errorf("Alpha period total = %d, want 90", row.PeriodPoints)
		}
	}
}

func TestRun_MissingRosterDegrades(t *testing.T) {
	res := Run(twoManagerSnapshot())

	ghost := res.Rosters[200]
	if ghost.TotalPoints != 0 || len(ghost.Slots) != 0 {
		t.Errorf("missing roster not zeroed: %+v", ghost)
	}

	// Ghost still ranks, on confirmed history alone.
	found := false
	for _, row := range res.Table {
		if row.EntryID == 200 {
			found = true
			if row.PeriodPoints != 60 {
				t.Errorf("Ghost period total = %d, want 60", row.PeriodPoints)
			}
		}
	}
	if !found {
		t.Error("manager with missing roster dropped from the table")
	}
}

func TestRun_EmptyManagerSet(t *testing.T) {
	snap := twoManagerSnapshot()
	snap.Managers = nil

	res := Run(snap)

	if len(res.Table) != 0 {
		t.Errorf("empty manager set produced %d table rows", len(res.Table))
	}
}
