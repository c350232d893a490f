package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/johnhowardroberts/fpl-live-table/internal/store"
)

// ----------------------------------------------------------------------
// fixtures
// ----------------------------------------------------------------------

// serverFixture seeds a raw store and periods file for league 99,
// gameweek 22. Entry 100 has a three-man roster; entry 200 has no picks
// and degrades to a zeroed row.
func serverFixture(t *testing.T) ServerConfig {
	t.Helper()
	dir := t.TempDir()
	st := store.NewJSONStore(filepath.Join(dir, "raw"))

	write := func(rel, body string) {
		t.Helper()
		if err := st.WriteRaw(rel, []byte(body), false); err != nil {
			t.Fatalf("seed %s: %v", rel, err)
		}
	}

	write("bootstrap/bootstrap-static.json", `{
		"events": [{"id": 22, "is_current": true, "finished": false}],
		"teams": [
			{"id": 1, "short_name": "ARS", "code": 3},
			{"id": 2, "short_name": "LIV", "code": 14}
		],
		"elements": [
			{"id": 10, "web_name": "Raya", "team": 1, "element_type": 1},
			{"id": 11, "web_name": "Gabriel", "team": 1, "element_type": 2},
			{"id": 12, "web_name": "Salah", "team": 2, "element_type": 3}
		]
	}`)

	write("gw/22/fixtures.json", `[
		{"id": 501, "event": 22, "team_h": 1, "team_a": 2,
		 "team_h_score": 1, "team_a_score": 1,
		 "kickoff_time": "2026-01-17T15:00:00Z",
		 "started": true, "finished": false, "finished_provisional": true}
	]`)

	write("gw/22/live.json", `{
		"elements": [
			{"id": 10, "stats": {"minutes": 90, "total_points": 2, "bonus": 0, "bps": 24},
			 "explain": [{"fixture": 501}]},
			{"id": 11, "stats": {"minutes": 90, "total_points": 6, "bonus": 0, "bps": 32},
			 "explain": [{"fixture": 501}]},
			{"id": 12, "stats": {"minutes": 90, "total_points": 5, "bonus": 0, "bps": 30},
			 "explain": [{"fixture": 501}]}
		]
	}`)

	write("league/99/standings.json", `{
		"standings": {"results": [
			{"entry": 100, "entry_name": "Alpha", "total": 1200},
			{"entry": 200, "entry_name": "Ghost", "total": 1100}
		]}
	}`)

	write("entry/100/gw/22/picks.json", `{
		"active_chip": null,
		"automatic_subs": [],
		"picks": [
			{"element": 10, "position": 1, "multiplier": 1, "is_captain": false, "is_vice_captain": false},
			{"element": 11, "position": 2, "multiplier": 2, "is_captain": true, "is_vice_captain": false},
			{"element": 12, "position": 3, "multiplier": 1, "is_captain": false, "is_vice_captain": true}
		]
	}`)

	write("entry/100/history.json", `{
		"current": [{"event": 21, "points": 50, "total_points": 1172}]
	}`)

	periods := filepath.Join(dir, "periods.yaml")
	if err := os.WriteFile(periods, []byte("periods:\n  january: [21, 22]\n"), 0o644); err != nil {
		t.Fatalf("seed periods.yaml: %v", err)
	}

	return ServerConfig{
		RawRoot:     st.Root,
		PeriodsPath: periods,
		LeagueID:    99,
	}
}

// ----------------------------------------------------------------------
// resolution helpers
// ----------------------------------------------------------------------

func TestResolveGW_DefaultsToCurrent(t *testing.T) {
	cfg := serverFixture(t)

	gw, err := resolveGW(cfg, 0)
	if err != nil {
		t.Fatalf("resolveGW: %v", err)
	}
	if gw != 22 {
		t.Errorf("gw = %d, want 22", gw)
	}

	gw, err = resolveGW(cfg, 7)
	if err != nil || gw != 7 {
		t.Errorf("explicit gw = %d (%v), want 7", gw, err)
	}
}

func TestResolveLeague(t *testing.T) {
	cfg := serverFixture(t)

	id, err := resolveLeague(cfg, 0)
	if err != nil || id != 99 {
		t.Errorf("default league = %d (%v), want 99", id, err)
	}

	id, err = resolveLeague(cfg, 314)
	if err != nil || id != 314 {
		t.Errorf("explicit league = %d (%v), want 314", id, err)
	}

	cfg.LeagueID = 0
	if _, err := resolveLeague(cfg, 0); err == nil {
		t.Error("no default configured should error")
	}
}

func TestPeriodFor(t *testing.T) {
	cfg := serverFixture(t)

	name, gws, err := periodFor(cfg, 22, "")
	if err != nil {
		t.Fatalf("periodFor: %v", err)
	}
	if name != "january" || len(gws) != 2 {
		t.Errorf("containing period = %q %v, want january [21 22]", name, gws)
	}

	name, gws, err = periodFor(cfg, 22, "january")
	if err != nil || name != "january" || len(gws) != 2 {
		t.Errorf("named period = %q %v (%v)", name, gws, err)
	}

	if _, _, err := periodFor(cfg, 22, "nonexistent"); err == nil {
		t.Error("unknown period name should error")
	}

	// Gameweek outside every period falls back to itself.
	name, gws, err = periodFor(cfg, 38, "")
	if err != nil || name != "" || len(gws) != 1 || gws[0] != 38 {
		t.Errorf("fallback period = %q %v (%v), want [38]", name, gws, err)
	}
}

// ----------------------------------------------------------------------
// live_table
// ----------------------------------------------------------------------

func TestBuildLiveTable(t *testing.T) {
	cfg := serverFixture(t)

	out, err := buildLiveTable(cfg, LiveTableArgs{})
	if err != nil {
		t.Fatalf("buildLiveTable: %v", err)
	}

	if out.LeagueID != 99 || out.Gameweek != 22 || out.Period != "january" {
		t.Errorf("header = %+v", out)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(out.Rows))
	}

	// Alpha: provisional bonus by BPS is 11->3, 12->2, 10->1.
	// Live = (2+1) + (6+3)*2 + (5+2) = 28; period = 50 + 28 = 78.
	top := out.Rows[0]
	if top.EntryID != 100 || top.Rank != 1 {
		t.Errorf("top row = %+v, want Alpha at rank 1", top)
	}
	if top.LivePoints != 28 {
		t.Errorf("Alpha live = %d, want 28", top.LivePoints)
	}
	if top.PeriodPoints != 78 {
		t.Errorf("Alpha period = %d, want 78", top.PeriodPoints)
	}
}

func TestBuildLiveTable_GameweekView(t *testing.T) {
	cfg := serverFixture(t)

	out, err := buildLiveTable(cfg, LiveTableArgs{View: "gameweek"})
	if err != nil {
		t.Fatalf("buildLiveTable: %v", err)
	}
	if out.View != "gameweek" {
		t.Errorf("view = %q, want gameweek", out.View)
	}
	if out.Rows[0].EntryID != 100 || out.Rows[0].LivePoints != 28 {
		t.Errorf("top row = %+v", out.Rows[0])
	}
}

// ----------------------------------------------------------------------
// manager_score
// ----------------------------------------------------------------------

func TestBuildManagerScore(t *testing.T) {
	cfg := serverFixture(t)

	out, err := buildManagerScore(cfg, ManagerScoreArgs{EntryID: 100})
	if err != nil {
		t.Fatalf("buildManagerScore: %v", err)
	}
	if out.Roster.TotalPoints != 28 {
		t.Errorf("roster total = %d, want 28", out.Roster.TotalPoints)
	}
	if out.Roster.CaptainName != "Gabriel" || !out.Roster.CaptainPlayed {
		t.Errorf("captain = %q played=%v", out.Roster.CaptainName, out.Roster.CaptainPlayed)
	}
}

func TestBuildManagerScore_UnknownEntry(t *testing.T) {
	cfg := serverFixture(t)

	if _, err := buildManagerScore(cfg, ManagerScoreArgs{EntryID: 555}); err == nil {
		t.Error("unknown entry should error")
	}
}

// ----------------------------------------------------------------------
// bonus_status / gameweek_status
// ----------------------------------------------------------------------

func TestBuildBonusStatus(t *testing.T) {
	cfg := serverFixture(t)

	out, err := buildBonusStatus(cfg, BonusStatusArgs{})
	if err != nil {
		t.Fatalf("buildBonusStatus: %v", err)
	}
	if len(out.Fixtures) != 1 {
		t.Fatalf("fixtures = %d, want 1", len(out.Fixtures))
	}

	fb := out.Fixtures[0]
	if fb.FixtureID != 501 || fb.Home != "ARS" || fb.Away != "LIV" {
		t.Errorf("fixture header = %+v", fb)
	}
	if fb.Official {
		t.Error("no official bonus upstream: allocation should be provisional")
	}
	if len(fb.Awards) != 3 {
		t.Fatalf("awards = %d, want 3", len(fb.Awards))
	}
	if fb.Awards[0].PlayerID != 11 || fb.Awards[0].Bonus != 3 {
		t.Errorf("top award = %+v, want Gabriel with 3", fb.Awards[0])
	}
	if fb.Awards[2].PlayerID != 10 || fb.Awards[2].Bonus != 1 {
		t.Errorf("last award = %+v, want Raya with 1", fb.Awards[2])
	}
}

func TestBuildGameweekStatus(t *testing.T) {
	cfg := serverFixture(t)

	out, err := buildGameweekStatus(cfg)
	if err != nil {
		t.Fatalf("buildGameweekStatus: %v", err)
	}
	if out.Gameweek != 22 {
		t.Errorf("gw = %d, want 22", out.Gameweek)
	}
	if out.Fixtures.Total != 1 || out.Fixtures.FinishedProvisional != 1 {
		t.Errorf("progress = %+v", out.Fixtures)
	}
	// Provisionally finished counts as settled, but bonus is still open.
	if !out.AllSettled {
		t.Error("finished-provisional fixture should count as settled")
	}
	if len(out.BonusPending) != 1 || out.BonusPending[0] != 501 {
		t.Errorf("bonus pending = %v, want [501]", out.BonusPending)
	}
}
