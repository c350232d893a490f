// Command refresh pulls one consistent raw snapshot of a classic
// league gameweek into the local store: bootstrap, fixtures, live
// stats, standings, and every entry's picks and history. With --loop it
// re-polls on an interval; the engine re-runs over whatever snapshot is
// on disk, so each refresh simply supersedes the last.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johnhowardroberts/fpl-live-table/internal/config"
	"github.com/johnhowardroberts/fpl-live-table/internal/fetch"
	"github.com/johnhowardroberts/fpl-live-table/internal/snapshot"
	"github.com/johnhowardroberts/fpl-live-table/internal/store"
	"github.com/johnhowardroberts/fpl-live-table/internal/telemetry"
)

func main() {
	defaults := config.Load()
	var (
		leagueID = flag.Int("league", defaults.LeagueID, "classic league id")
		gw       = flag.Int("gw", 0, "gameweek (0 = current)")
		rawRoot  = flag.String("raw-root", defaults.RawRoot, "root directory for raw JSON")
		loop     = flag.Bool("loop", false, "keep refreshing on an interval")
		interval = flag.Duration("interval", defaults.PollInterval, "refresh interval with --loop")
		workers  = flag.Int("workers", defaults.EntryConcurrency, "concurrent entry fetches")
		logLevel = flag.String("log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	)
	flag.Parse()

	telemetry.Init(telemetry.ParseLogLevel(*logLevel))

	if *leagueID == 0 {
		telemetry.Errorf("--league is required (or set FPL_LEAGUE_ID)")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.NewJSONStore(*rawRoot)
	client := fetch.NewClient(st)
	client.EntryConcurrency = *workers

	if err := refresh(ctx, client, st, *leagueID, *gw); err != nil {
		telemetry.Errorf("refresh: %v", err)
		os.Exit(1)
	}
	if !*loop {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			telemetry.Infof("stopping")
			return
		case <-ticker.C:
			if err := refresh(ctx, client, st, *leagueID, *gw); err != nil {
				telemetry.Warnf("refresh: %v", err)
			}
		}
	}
}

// refresh fetches every file the snapshot loader needs, live data
// always forced so a poll actually observes match progress.
func refresh(ctx context.Context, client *fetch.Client, st *store.JSONStore, leagueID, gw int) error {
	start := time.Now()

	if err := client.BootstrapStatic(ctx, true); err != nil {
		return err
	}

	loader := snapshot.NewLoader(st)
	if gw == 0 {
		current, err := loader.CurrentGameweek()
		if err != nil {
			return err
		}
		gw = current
	}

	if err := client.Fixtures(ctx, gw, true); err != nil {
		return err
	}
	if err := client.EventLive(ctx, gw, true); err != nil {
		return err
	}
	if err := client.LeagueStandings(ctx, leagueID, true); err != nil {
		return err
	}

	entryIDs, err := loader.LeagueEntries(leagueID)
	if err != nil {
		return err
	}
	if err := client.FetchEntries(ctx, entryIDs, gw, true); err != nil {
		return err
	}

	telemetry.Infof("refreshed league %d gw %d (%d entries) in %s", leagueID, gw, len(entryIDs), time.Since(start).Round(time.Millisecond))
	return nil
}
