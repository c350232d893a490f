package rank

import "sort"

// View selects the primary ranking field.
type View string

const (
	// ViewPeriod ranks by the period (e.g. calendar month) total.
	ViewPeriod View = "period"
	// ViewGameweek ranks by the current gameweek's live total alone.
	ViewGameweek View = "gameweek"
)

// Row is one manager's aggregate line in the live table.
type Row struct {
	EntryID      int    `json:"entry_id"`
	EntryName    string `json:"entry_name"`
	PriorPoints  int    `json:"prior_points"`
	LivePoints   int    `json:"live_points"`
	PeriodPoints int    `json:"period_points"`
	CareerPoints int    `json:"career_points"`
	Rank         int    `json:"rank"`
	PrevRank     int    `json:"prev_rank"`
	RankDelta    int    `json:"rank_delta"`
}

// PeriodTotal sums confirmed points for every period gameweek other
// than the current one, then adds the current gameweek's live total if
// the current gameweek belongs to the period.
func PeriodTotal(history map[int]int, periodGWs []int, currentGW, liveTotal int) int {
	total := 0
	for _, gw := range periodGWs {
		if gw == currentGW {
			total += liveTotal
			continue
		}
		total += history[gw]
	}
	return total
}

// Rank sorts rows by the view's primary field and fills Rank, PrevRank
// and RankDelta. Ties break on current gameweek live points, then on
// career total points; ties beyond that keep their original order. An
// empty input yields an empty ranking.
//
// PrevRank is the position the manager would hold on period points
// excluding the current gameweek's contribution, so a positive
// RankDelta means the manager moved up during the live gameweek.
func Rank(rows []Row, view View) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	prevRankByEntry := prevRanks(rows)

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := primary(out[i], view), primary(out[j], view)
		if pi != pj {
			return pi > pj
		}
		if out[i].LivePoints != out[j].LivePoints {
			return out[i].LivePoints > out[j].LivePoints
		}
		return out[i].CareerPoints > out[j].CareerPoints
	})

	for i := range out {
		out[i].Rank = i + 1
		out[i].PrevRank = prevRankByEntry[out[i].EntryID]
		out[i].RankDelta = out[i].PrevRank - out[i].Rank
	}
	return out
}

func primary(r Row, view View) int {
	if view == ViewGameweek {
		return r.LivePoints
	}
	return r.PeriodPoints
}

// prevRanks ranks on prior (pre-live) period points with the same
// career tie-break, keeping original order for full ties.
func prevRanks(rows []Row) map[int]int {
	prev := make([]Row, len(rows))
	copy(prev, rows)
	sort.SliceStable(prev, func(i, j int) bool {
		if prev[i].PriorPoints != prev[j].PriorPoints {
			return prev[i].PriorPoints > prev[j].PriorPoints
		}
		return prev[i].CareerPoints > prev[j].CareerPoints
	})

	out := make(map[int]int, len(prev))
	for i, r := range prev {
		out[r.EntryID] = i + 1
	}
	return out
}
