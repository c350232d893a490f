// Package subs reconciles a manager's bench against the live gameweek:
// which starters with zero minutes in a finished fixture get replaced,
// by whom, and which replacements cannot be decided yet because a bench
// player's fixture is still to come.
package subs

import (
	"github.com/johnhowardroberts/fpl-live-table/internal/model"
)

// Substitution is a decided bench-for-starter replacement.
type Substitution struct {
	PlayerOut int `json:"player_out"`
	PlayerIn  int `json:"player_in"`
}

// PendingSubstitution is a replacement that cannot be decided until the
// candidate's fixture resolves. Candidates are in bench order; with the
// bench-priority rule there is exactly one determinant at a time.
type PendingSubstitution struct {
	PlayerOut  int   `json:"player_out"`
	Candidates []int `json:"candidates"`
}

// Outcome is the full substitution picture for one roster. All three
// states are normal results, never errors: a starter with no viable
// replacement simply stays on zero points.
type Outcome struct {
	Confirmed     []Substitution        `json:"confirmed"`
	Pending       []PendingSubstitution `json:"pending"`
	NoReplacement []int                 `json:"no_replacement"`
}

// minimum live formation: at least 3 DEF, 2 MID, 1 FWD.
var formationMin = map[model.Position]int{
	model.DEF: 3,
	model.MID: 2,
	model.FWD: 1,
}

// Resolve computes the substitution outcome for one roster snapshot.
//
// Two short-circuits come first: bench-boost means all 15 slots score
// directly so no substitutions apply, and a non-empty upstream
// substitution list is authoritative and returned verbatim. Otherwise
// the local reconciliation below runs against live stats and fixture
// states.
func Resolve(snap model.RosterSnapshot, players map[int]model.Player, stats map[int]model.LiveStat, fixtures map[int]model.Fixture) Outcome {
	out := Outcome{
		Confirmed:     []Substitution{},
		Pending:       []PendingSubstitution{},
		NoReplacement: []int{},
	}

	if snap.Chip == model.ChipBenchBoost {
		return out
	}
	if snap.Upstream.Authoritative {
		for _, s := range snap.Upstream.Subs {
			out.Confirmed = append(out.Confirmed, Substitution{PlayerOut: s.PlayerOut, PlayerIn: s.PlayerIn})
		}
		return out
	}

	r := resolver{
		players:  players,
		stats:    stats,
		fixtures: fixtures,
		safe:     make(map[model.Position]int),
		used:     make(map[int]bool),
	}
	for _, slot := range snap.Slots {
		if slot.Starting() {
			if r.needsSub(slot.PlayerID) {
				r.needing = append(r.needing, slot)
			} else {
				r.safe[r.role(slot.PlayerID)]++
			}
		} else if slot.SlotIndex == model.BenchGKSlot {
			r.benchGK = &slot
		} else {
			r.benchOutfield = append(r.benchOutfield, slot)
		}
	}

	// Needing slots resolve in pick order; bench candidates are always
	// tried in ascending bench-slot order.
	for _, slot := range r.needing {
		if r.role(slot.PlayerID) == model.GK {
			r.resolveGoalkeeper(slot, &out)
		} else {
			r.resolveOutfield(slot, &out)
		}
	}
	return out
}

type resolver struct {
	players  map[int]model.Player
	stats    map[int]model.LiveStat
	fixtures map[int]model.Fixture

	needing       []model.RosterSlot
	benchGK       *model.RosterSlot
	benchOutfield []model.RosterSlot

	// safe counts starters whose slot does not need a substitution,
	// including 0-minute players in unfinished fixtures.
	safe map[model.Position]int
	used map[int]bool
}

func (r *resolver) role(playerID int) model.Position {
	return r.players[playerID].Position
}

func (r *resolver) minutes(playerID int) int {
	return r.stats[playerID].Minutes
}

// settled reports whether a player's fixture can no longer change their
// minutes. A player with no known fixture is treated as not settled:
// they may still play, so they never trigger or confirm a substitution.
func (r *resolver) settled(playerID int) bool {
	stat, ok := r.stats[playerID]
	if !ok {
		return false
	}
	fx, ok := r.fixtures[stat.FixtureID]
	if !ok {
		return false
	}
	return fx.Status.Settled()
}

// needsSub: zero minutes in a finished fixture. An unfinished fixture
// never triggers a substitution even at 0 minutes.
func (r *resolver) needsSub(playerID int) bool {
	return r.minutes(playerID) == 0 && r.settled(playerID)
}

// resolveGoalkeeper handles a starting GK slot: the only eligible
// candidate is the reserve goalkeeper in bench slot 12.
func (r *resolver) resolveGoalkeeper(slot model.RosterSlot, out *Outcome) {
	if r.benchGK == nil {
		out.NoReplacement = append(out.NoReplacement, slot.PlayerID)
		return
	}
	cand := *r.benchGK
	switch {
	case r.minutes(cand.PlayerID) > 0:
		r.used[cand.PlayerID] = true
		out.Confirmed = append(out.Confirmed, Substitution{PlayerOut: slot.PlayerID, PlayerIn: cand.PlayerID})
	case r.settled(cand.PlayerID):
		// Reserve keeper also failed to play.
		out.NoReplacement = append(out.NoReplacement, slot.PlayerID)
	default:
		out.Pending = append(out.Pending, PendingSubstitution{
			PlayerOut:  slot.PlayerID,
			Candidates: []int{cand.PlayerID},
		})
	}
}

// resolveOutfield walks the outfield bench in order for a needing slot.
//
// A role constraint activates when the safe count for the outgoing
// player's role is at or below the formation minimum: the replacement
// must then share that role. A candidate that can never satisfy an
// active constraint is skipped permanently, even if their fixture is
// still unknown. A candidate that could satisfy the slot but whose
// fixture has not resolved halts the search: bench priority means no
// later candidate may be considered until that one is decided.
func (r *resolver) resolveOutfield(slot model.RosterSlot, out *Outcome) {
	role := r.role(slot.PlayerID)
	mustMatchRole := r.safe[role] <= formationMin[role]

	for _, cand := range r.benchOutfield {
		if r.used[cand.PlayerID] {
			continue
		}
		candRole := r.role(cand.PlayerID)
		if candRole == model.GK {
			continue
		}
		if mustMatchRole && candRole != role {
			continue
		}

		if r.minutes(cand.PlayerID) > 0 {
			r.used[cand.PlayerID] = true
			r.safe[candRole]++
			out.Confirmed = append(out.Confirmed, Substitution{PlayerOut: slot.PlayerID, PlayerIn: cand.PlayerID})
			return
		}
		if r.settled(cand.PlayerID) {
			// Finished with 0 minutes: did not play.
			continue
		}

		out.Pending = append(out.Pending, PendingSubstitution{
			PlayerOut:  slot.PlayerID,
			Candidates: []int{cand.PlayerID},
		})
		return
	}

	out.NoReplacement = append(out.NoReplacement, slot.PlayerID)
}
