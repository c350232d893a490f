package bonus

import (
	"sort"

	"github.com/johnhowardroberts/fpl-live-table/internal/model"
)

// Allocation maps player id to awarded bonus points for one fixture.
// Official means the points came from confirmed upstream bonus; a
// provisional allocation is derived from the BPS ranking and can still
// change until the fixture's bonus is confirmed.
type Allocation struct {
	FixtureID int         `json:"fixture_id"`
	Official  bool        `json:"official"`
	Points    map[int]int `json:"points"`
}

// Bonus returns the awarded bonus for a player, 0 if none.
func (a Allocation) Bonus(playerID int) int {
	return a.Points[playerID]
}

// bonusForRank is the 3/2/1 award by rank position (1-based).
var bonusForRank = map[int]int{1: 3, 2: 2, 3: 1}

// Allocate computes the bonus allocation for a single fixture from the
// live stats of the players who appeared in it. Stats with zero minutes
// are ignored. If any player already has confirmed bonus the whole
// fixture switches to official bonus and the BPS ranking is skipped:
// partial official bonus never mixes with provisional guesses.
func Allocate(fixtureID int, stats []model.LiveStat) Allocation {
	alloc := Allocation{FixtureID: fixtureID, Points: make(map[int]int)}

	eligible := make([]model.LiveStat, 0, len(stats))
	official := false
	for _, s := range stats {
		if s.Minutes <= 0 {
			continue
		}
		eligible = append(eligible, s)
		if s.Bonus > 0 {
			official = true
		}
	}

	if official {
		alloc.Official = true
		for _, s := range eligible {
			if s.Bonus > 0 {
				alloc.Points[s.PlayerID] = s.Bonus
			}
		}
		return alloc
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].BPS > eligible[j].BPS
	})

	// Walk tie groups: every member of a group gets the award for the
	// group's starting rank, and the next rank advances by group size.
	// Two tied for 1st -> both get 3, next rank is 3rd (1 point).
	for i := 0; i < len(eligible); {
		rank := i + 1
		award, ok := bonusForRank[rank]
		if !ok {
			break
		}
		j := i
		for j < len(eligible) && eligible[j].BPS == eligible[i].BPS {
			j++
		}
		for k := i; k < j; k++ {
			alloc.Points[eligible[k].PlayerID] = award
		}
		i = j
	}

	return alloc
}

// AllocateAll groups live stats by fixture and allocates bonus for each.
func AllocateAll(stats []model.LiveStat) map[int]Allocation {
	byFixture := make(map[int][]model.LiveStat)
	for _, s := range stats {
		if s.FixtureID == 0 {
			continue
		}
		byFixture[s.FixtureID] = append(byFixture[s.FixtureID], s)
	}

	out := make(map[int]Allocation, len(byFixture))
	for id, fixtureStats := range byFixture {
		out[id] = Allocate(id, fixtureStats)
	}
	return out
}
