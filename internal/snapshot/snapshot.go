// Package snapshot assembles one consistent engine input from the raw
// JSON files a refresh wrote to the store. All upstream decoding and
// normalization lives here so the engine packages stay pure.
package snapshot

import (
	"fmt"
	"time"

	"github.com/johnhowardroberts/fpl-live-table/internal/engine"
	"github.com/johnhowardroberts/fpl-live-table/internal/model"
	"github.com/johnhowardroberts/fpl-live-table/internal/rank"
	"github.com/johnhowardroberts/fpl-live-table/internal/store"
)

// Loader reads raw snapshot files from a JSONStore.
type Loader struct {
	Store *store.JSONStore
}

func NewLoader(st *store.JSONStore) *Loader {
	return &Loader{Store: st}
}

// --- upstream payload shapes -------------------------------------------

type bootstrapRaw struct {
	Events []struct {
		ID        int  `json:"id"`
		IsCurrent bool `json:"is_current"`
		Finished  bool `json:"finished"`
	} `json:"events"`
	Teams []struct {
		ID        int    `json:"id"`
		ShortName string `json:"short_name"`
		Code      int    `json:"code"`
	} `json:"teams"`
	Elements []struct {
		ID          int    `json:"id"`
		WebName     string `json:"web_name"`
		Team        int    `json:"team"`
		ElementType int    `json:"element_type"`
	} `json:"elements"`
}

type fixtureRaw struct {
	ID                  int    `json:"id"`
	Event               int    `json:"event"`
	TeamH               int    `json:"team_h"`
	TeamA               int    `json:"team_a"`
	TeamHScore          *int   `json:"team_h_score"`
	TeamAScore          *int   `json:"team_a_score"`
	KickoffTime         string `json:"kickoff_time"`
	Started             bool   `json:"started"`
	Finished            bool   `json:"finished"`
	FinishedProvisional bool   `json:"finished_provisional"`
}

type liveRaw struct {
	Elements []struct {
		ID    int `json:"id"`
		Stats struct {
			Minutes     int `json:"minutes"`
			TotalPoints int `json:"total_points"`
			Bonus       int `json:"bonus"`
			BPS         int `json:"bps"`
		} `json:"stats"`
		Explain []struct {
			Fixture int `json:"fixture"`
		} `json:"explain"`
	} `json:"elements"`
}

type picksRaw struct {
	ActiveChip    *string `json:"active_chip"`
	AutomaticSubs []struct {
		ElementIn  int `json:"element_in"`
		ElementOut int `json:"element_out"`
	} `json:"automatic_subs"`
	Picks []struct {
		Element       int  `json:"element"`
		Position      int  `json:"position"`
		Multiplier    int  `json:"multiplier"`
		IsCaptain     bool `json:"is_captain"`
		IsViceCaptain bool `json:"is_vice_captain"`
	} `json:"picks"`
}

type historyRaw struct {
	Current []struct {
		Event       int `json:"event"`
		Points      int `json:"points"`
		TotalPoints int `json:"total_points"`
	} `json:"current"`
}

type standingsRaw struct {
	Standings struct {
		Results []struct {
			Entry     int    `json:"entry"`
			EntryName string `json:"entry_name"`
			Total     int    `json:"total"`
		} `json:"results"`
	} `json:"standings"`
}

// --- loading -----------------------------------------------------------

// CurrentGameweek reads the active gameweek from bootstrap events.
func (l *Loader) CurrentGameweek() (int, error) {
	var b bootstrapRaw
	if err := l.Store.ReadJSON("bootstrap/bootstrap-static.json", &b); err != nil {
		return 0, fmt.Errorf("bootstrap-static.json: %w", err)
	}
	for _, ev := range b.Events {
		if ev.IsCurrent {
			return ev.ID, nil
		}
	}
	return 0, fmt.Errorf("no current gameweek in bootstrap events")
}

// LeagueEntries lists the entry ids of a stored classic league.
func (l *Loader) LeagueEntries(leagueID int) ([]int, error) {
	var s standingsRaw
	rel := fmt.Sprintf("league/%d/standings.json", leagueID)
	if err := l.Store.ReadJSON(rel, &s); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(s.Standings.Results))
	for _, r := range s.Standings.Results {
		ids = append(ids, r.Entry)
	}
	return ids, nil
}

// LoadGameweek assembles the league-independent part of a snapshot:
// reference data, fixtures and live stats for one gameweek.
func (l *Loader) LoadGameweek(gw int) (engine.Snapshot, error) {
	snap := engine.Snapshot{
		Gameweek: gw,
		Players:  make(map[int]model.Player),
		Teams:    make(map[int]model.Team),
		Fixtures: make(map[int]model.Fixture),
		Stats:    make(map[int]model.LiveStat),
	}

	var b bootstrapRaw
	if err := l.Store.ReadJSON("bootstrap/bootstrap-static.json", &b); err != nil {
		return snap, fmt.Errorf("bootstrap-static.json: %w", err)
	}
	for _, t := range b.Teams {
		snap.Teams[t.ID] = model.Team{ID: t.ID, ShortName: t.ShortName, Code: t.Code}
	}
	for _, e := range b.Elements {
		snap.Players[e.ID] = model.Player{
			ID:       e.ID,
			Name:     e.WebName,
			TeamID:   e.Team,
			Position: model.Position(e.ElementType),
		}
	}

	var fixtures []fixtureRaw
	if err := l.Store.ReadJSON(fmt.Sprintf("gw/%d/fixtures.json", gw), &fixtures); err != nil {
		return snap, fmt.Errorf("gw %d fixtures: %w", gw, err)
	}
	for _, f := range fixtures {
		kickoff, _ := time.Parse(time.RFC3339, f.KickoffTime)
		fx := model.Fixture{
			ID:          f.ID,
			Gameweek:    f.Event,
			TeamH:       f.TeamH,
			TeamA:       f.TeamA,
			KickoffTime: kickoff,
			Status:      model.StatusFrom(f.Started, f.Finished, f.FinishedProvisional),
		}
		if f.TeamHScore != nil {
			fx.TeamHScore = *f.TeamHScore
		}
		if f.TeamAScore != nil {
			fx.TeamAScore = *f.TeamAScore
		}
		snap.Fixtures[f.ID] = fx
	}

	var live liveRaw
	if err := l.Store.ReadJSON(fmt.Sprintf("gw/%d/live.json", gw), &live); err != nil {
		return snap, fmt.Errorf("gw %d live: %w", gw, err)
	}
	for _, e := range live.Elements {
		stat := model.LiveStat{
			PlayerID: e.ID,
			Minutes:  e.Stats.Minutes,
			// Upstream total includes confirmed bonus; strip it so the
			// calculator adds exactly one of official or provisional.
			BasePoints: e.Stats.TotalPoints - e.Stats.Bonus,
			Bonus:      e.Stats.Bonus,
			BPS:        e.Stats.BPS,
		}
		if len(e.Explain) > 0 {
			stat.FixtureID = e.Explain[0].Fixture
		}
		snap.Stats[e.ID] = stat
	}

	return snap, nil
}

// Load assembles the full engine snapshot for one league and gameweek.
// A manager whose picks file is absent stays in the run with a nil
// roster; only wholly missing bootstrap/live data is an error.
func (l *Loader) Load(leagueID, gw int, periodGWs []int, view rank.View) (engine.Snapshot, error) {
	snap, err := l.LoadGameweek(gw)
	if err != nil {
		return snap, err
	}
	snap.PeriodGameweeks = periodGWs
	snap.View = view

	var standings standingsRaw
	if err := l.Store.ReadJSON(fmt.Sprintf("league/%d/standings.json", leagueID), &standings); err != nil {
		return snap, fmt.Errorf("league %d standings: %w", leagueID, err)
	}
	for _, r := range standings.Standings.Results {
		m := engine.Manager{
			EntryID:      r.Entry,
			EntryName:    r.EntryName,
			CareerPoints: r.Total,
			History:      make(map[int]int),
		}
		m.Roster = l.loadRoster(r.Entry, r.EntryName, gw)
		l.loadHistory(&m)
		snap.Managers = append(snap.Managers, m)
	}

	return snap, nil
}

// loadRoster reads a manager's picks; nil if absent or malformed so the
// manager degrades to a zeroed row.
func (l *Loader) loadRoster(entryID int, entryName string, gw int) *model.RosterSnapshot {
	var p picksRaw
	rel := fmt.Sprintf("entry/%d/gw/%d/picks.json", entryID, gw)
	if err := l.Store.ReadJSON(rel, &p); err != nil {
		return nil
	}
	if len(p.Picks) == 0 {
		return nil
	}

	chipCode := ""
	if p.ActiveChip != nil {
		chipCode = *p.ActiveChip
	}
	upstream := make([]model.UpstreamSub, 0, len(p.AutomaticSubs))
	for _, s := range p.AutomaticSubs {
		upstream = append(upstream, model.UpstreamSub{PlayerOut: s.ElementOut, PlayerIn: s.ElementIn})
	}

	roster := &model.RosterSnapshot{
		EntryID:   entryID,
		EntryName: entryName,
		Gameweek:  gw,
		Chip:      model.ChipFromCode(chipCode),
		Upstream:  model.AuthoritativeSubs(upstream),
		Slots:     make([]model.RosterSlot, 0, len(p.Picks)),
	}
	for _, pick := range p.Picks {
		roster.Slots = append(roster.Slots, model.RosterSlot{
			PlayerID:      pick.Element,
			SlotIndex:     pick.Position,
			Multiplier:    pick.Multiplier,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}
	return roster
}

// loadHistory fills confirmed per-gameweek points; missing history just
// leaves the map empty.
func (l *Loader) loadHistory(m *engine.Manager) {
	var h historyRaw
	rel := fmt.Sprintf("entry/%d/history.json", m.EntryID)
	if err := l.Store.ReadJSON(rel, &h); err != nil {
		return
	}
	for _, row := range h.Current {
		m.History[row.Event] = row.Points
	}
}
