package score

import (
	"github.com/johnhowardroberts/fpl-live-table/internal/bonus"
	"github.com/johnhowardroberts/fpl-live-table/internal/model"
	"github.com/johnhowardroberts/fpl-live-table/internal/subs"
)

// SlotScore is the scored view of one roster slot.
type SlotScore struct {
	PlayerID         int    `json:"player_id"`
	Name             string `json:"name"`
	SlotIndex        int    `json:"slot_index"`
	Position         string `json:"position"`
	Minutes          int    `json:"minutes"`
	BasePoints       int    `json:"base_points"`
	Bonus            int    `json:"bonus"`
	ProvisionalBonus bool   `json:"provisional_bonus"`
	Multiplier       int    `json:"multiplier"`
	Counts           bool   `json:"counts"`
	EffectivePoints  int    `json:"effective_points"`
	IsCaptain        bool   `json:"is_captain"`
	IsViceCaptain    bool   `json:"is_vice_captain"`
}

// Scored is a manager's fully scored roster for one gameweek.
type Scored struct {
	EntryID       int         `json:"entry_id"`
	EntryName     string      `json:"entry_name"`
	Gameweek      int         `json:"gameweek"`
	Chip          model.Chip  `json:"chip"`
	Slots         []SlotScore `json:"slots"`
	TotalPoints   int         `json:"total_points"`
	PlayedCount   int         `json:"played_count"`
	MaxCountable  int         `json:"max_countable"`
	CaptainName   string      `json:"captain_name"`
	CaptainPlayed bool        `json:"captain_played"`
}

// Zeroed is the degraded result for a manager whose roster is missing
// from the snapshot. It keeps aggregation going instead of failing the
// whole computation.
func Zeroed(entryID int, entryName string, gw int) Scored {
	return Scored{
		EntryID:      entryID,
		EntryName:    entryName,
		Gameweek:     gw,
		Chip:         model.ChipNone,
		Slots:        []SlotScore{},
		MaxCountable: model.StartingSlots,
	}
}

// Score combines a roster, live stats, per-fixture bonus allocations
// and the substitution outcome into effective points per slot and the
// roster aggregate.
//
// A slot counts toward the total when it is a starter not subbed out by
// a confirmed substitution, a bench player subbed in by one, or any
// bench slot under bench-boost. Pending substitutions contribute
// nothing until confirmed, so points are never double counted.
func Score(snap model.RosterSnapshot, players map[int]model.Player, stats map[int]model.LiveStat, allocations map[int]bonus.Allocation, outcome subs.Outcome) Scored {
	benchBoost := snap.Chip == model.ChipBenchBoost

	subbedOut := make(map[int]bool, len(outcome.Confirmed))
	subbedIn := make(map[int]bool, len(outcome.Confirmed))
	for _, s := range outcome.Confirmed {
		subbedOut[s.PlayerOut] = true
		subbedIn[s.PlayerIn] = true
	}

	out := Scored{
		EntryID:      snap.EntryID,
		EntryName:    snap.EntryName,
		Gameweek:     snap.Gameweek,
		Chip:         snap.Chip,
		Slots:        make([]SlotScore, 0, len(snap.Slots)),
		MaxCountable: model.StartingSlots,
	}
	if benchBoost {
		out.MaxCountable = model.SquadSize
	}

	for _, slot := range snap.Slots {
		stat := stats[slot.PlayerID]
		player := players[slot.PlayerID]

		counts := false
		if slot.Starting() {
			counts = !subbedOut[slot.PlayerID]
		} else {
			counts = benchBoost || subbedIn[slot.PlayerID]
		}

		bonusPts := 0
		provisional := false
		if alloc, ok := allocations[stat.FixtureID]; ok {
			bonusPts = alloc.Bonus(slot.PlayerID)
			provisional = bonusPts > 0 && !alloc.Official
		}

		mult := slot.Multiplier
		if counts && mult < 1 {
			// A bench player promoted by a sub (or bench-boost) scores
			// at the normal rate.
			mult = 1
		}

		ss := SlotScore{
			PlayerID:         slot.PlayerID,
			Name:             player.Name,
			SlotIndex:        slot.SlotIndex,
			Position:         player.Position.String(),
			Minutes:          stat.Minutes,
			BasePoints:       stat.BasePoints,
			Bonus:            bonusPts,
			ProvisionalBonus: provisional,
			Multiplier:       mult,
			Counts:           counts,
			IsCaptain:        slot.IsCaptain,
			IsViceCaptain:    slot.IsViceCaptain,
		}
		if counts {
			ss.EffectivePoints = (stat.BasePoints + bonusPts) * mult
		}
		out.Slots = append(out.Slots, ss)

		if counts && stat.Minutes > 0 {
			out.TotalPoints += ss.EffectivePoints
			out.PlayedCount++
		}
		if slot.IsCaptain {
			out.CaptainName = player.Name
			out.CaptainPlayed = stat.Minutes > 0
		}
	}

	return out
}
