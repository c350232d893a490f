package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePeriods(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "periods.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write periods: %v", err)
	}
	return path
}

func TestLoadPeriods(t *testing.T) {
	path := writePeriods(t, `
periods:
  august: [1, 2, 3]
  september: [4, 5, 6, 7]
`)

	p, err := LoadPeriods(path)
	if err != nil {
		t.Fatalf("LoadPeriods: %v", err)
	}

	gws, ok := p.Gameweeks("september")
	if !ok {
		t.Fatal("september missing")
	}
	if !reflect.DeepEqual(gws, []int{4, 5, 6, 7}) {
		t.Errorf("september = %v", gws)
	}
}

func TestLoadPeriods_MissingFile(t *testing.T) {
	if _, err := LoadPeriods(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPeriodsContaining(t *testing.T) {
	path := writePeriods(t, `
periods:
  august: [1, 2, 3]
  september: [4, 5]
`)
	p, err := LoadPeriods(path)
	if err != nil {
		t.Fatalf("LoadPeriods: %v", err)
	}

	name, gws, ok := p.Containing(5)
	if !ok || name != "september" {
		t.Errorf("Containing(5) = %q %v %v, want september", name, gws, ok)
	}

	if _, _, ok := p.Containing(38); ok {
		t.Error("Containing(38) should miss")
	}
}

func TestLoadDefaults(t *testing.T) {
	// No env set: defaults come through.
	t.Setenv("FPL_LEAGUE_ID", "")
	t.Setenv("FPL_RAW_ROOT", "")

	cfg := Load()

	if cfg.RawRoot != "data/raw" {
		t.Errorf("RawRoot = %q, want data/raw", cfg.RawRoot)
	}
	if cfg.EntryConcurrency != 4 {
		t.Errorf("EntryConcurrency = %d, want 4", cfg.EntryConcurrency)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FPL_LEAGUE_ID", "314")
	t.Setenv("FPL_POLL_INTERVAL_SEC", "30")

	cfg := Load()

	if cfg.LeagueID != 314 {
		t.Errorf("LeagueID = %d, want 314", cfg.LeagueID)
	}
	if cfg.PollInterval.Seconds() != 30 {
		t.Errorf("PollInterval = %s, want 30s", cfg.PollInterval)
	}
}
