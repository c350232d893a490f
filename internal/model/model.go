package model

import "time"

// Position is a player's formation role.
type Position int

const (
	GK Position = iota + 1
	DEF
	MID
	FWD
)

// String returns the short label used across the FPL API and our output.
func (p Position) String() string {
	switch p {
	case GK:
		return "GK"
	case DEF:
		return "DEF"
	case MID:
		return "MID"
	case FWD:
		return "FWD"
	}
	return "UNK"
}

// Player is immutable reference data for a season.
type Player struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	TeamID   int      `json:"team_id"`
	Position Position `json:"position"`
}

// Team is immutable reference data.
type Team struct {
	ID        int    `json:"id"`
	ShortName string `json:"short_name"`
	Code      int    `json:"code"`
}

// FixtureStatus describes how far along a fixture is.
type FixtureStatus int

const (
	FixtureNotStarted FixtureStatus = iota
	FixtureLive
	FixtureFinishedProvisional
	FixtureFinished
)

func (s FixtureStatus) String() string {
	switch s {
	case FixtureNotStarted:
		return "not-started"
	case FixtureLive:
		return "live"
	case FixtureFinishedProvisional:
		return "finished-provisional"
	case FixtureFinished:
		return "finished"
	}
	return "unknown"
}

// Settled reports whether the fixture can no longer change a player's
// minutes: finished or finished pending bonus confirmation.
func (s FixtureStatus) Settled() bool {
	return s == FixtureFinished || s == FixtureFinishedProvisional
}

// StatusFrom derives a FixtureStatus from the upstream boolean triple.
func StatusFrom(started, finished, finishedProvisional bool) FixtureStatus {
	switch {
	case finished:
		return FixtureFinished
	case finishedProvisional:
		return FixtureFinishedProvisional
	case started:
		return FixtureLive
	}
	return FixtureNotStarted
}

// Fixture is one match in a gameweek. The engine only reads it; the
// collaborating fetch layer refreshes it as matches progress.
type Fixture struct {
	ID          int           `json:"id"`
	Gameweek    int           `json:"gameweek"`
	TeamH       int           `json:"team_h"`
	TeamA       int           `json:"team_a"`
	TeamHScore  int           `json:"team_h_score"`
	TeamAScore  int           `json:"team_a_score"`
	KickoffTime time.Time     `json:"kickoff_time"`
	Status      FixtureStatus `json:"status"`
}

// LiveStat is one player's live numbers for a gameweek, a snapshot the
// engine never mutates. BasePoints excludes bonus: the snapshot layer
// subtracts confirmed bonus from the upstream total so the calculator
// always adds exactly one of official or provisional bonus.
type LiveStat struct {
	PlayerID   int `json:"player_id"`
	FixtureID  int `json:"fixture_id"`
	Minutes    int `json:"minutes"`
	BasePoints int `json:"base_points"`
	Bonus      int `json:"bonus"`
	BPS        int `json:"bps"`
}

// Chip is a one-time roster rule modifier.
type Chip string

const (
	ChipNone          Chip = "none"
	ChipBenchBoost    Chip = "bench-boost"
	ChipTripleCaptain Chip = "triple-captain"
	ChipFreeHit       Chip = "free-hit"
	ChipWildcard      Chip = "wildcard"
)

// ChipFromCode maps the upstream chip code to our vocabulary. Free hit
// and wildcard are ordinary rosters for scoring purposes; only
// bench-boost and triple-captain change the rules.
func ChipFromCode(code string) Chip {
	switch code {
	case "bboost":
		return ChipBenchBoost
	case "3xc":
		return ChipTripleCaptain
	case "freehit":
		return ChipFreeHit
	case "wildcard":
		return ChipWildcard
	}
	return ChipNone
}

// Roster slot layout constants. Slots 1-11 start, 12-15 are the bench,
// and slot 12 is always the reserve goalkeeper.
const (
	StartingSlots  = 11
	SquadSize      = 15
	BenchGKSlot    = 12
	FirstBenchSlot = 12
)

// RosterSlot is one of a manager's 15 ordered picks.
type RosterSlot struct {
	PlayerID      int  `json:"player_id"`
	SlotIndex     int  `json:"slot_index"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

// Starting reports whether the slot is in the starting eleven.
func (s RosterSlot) Starting() bool {
	return s.SlotIndex >= 1 && s.SlotIndex <= StartingSlots
}

// UpstreamSub is one substitution as reported by the upstream service.
type UpstreamSub struct {
	PlayerOut int `json:"player_out"`
	PlayerIn  int `json:"player_in"`
}

// UpstreamSubs makes the authoritative-if-present precedence explicit:
// an upstream list is authoritative only when it was non-empty. An
// empty or absent list means local resolution must run.
type UpstreamSubs struct {
	Authoritative bool          `json:"authoritative"`
	Subs          []UpstreamSub `json:"subs"`
}

// AuthoritativeSubs wraps a non-empty upstream list. An empty list
// yields the NeedsLocalResolution zero value.
func AuthoritativeSubs(subs []UpstreamSub) UpstreamSubs {
	if len(subs) == 0 {
		return UpstreamSubs{}
	}
	return UpstreamSubs{Authoritative: true, Subs: subs}
}

// RosterSnapshot is a manager's full pick set for one gameweek.
type RosterSnapshot struct {
	EntryID   int          `json:"entry_id"`
	EntryName string       `json:"entry_name"`
	Gameweek  int          `json:"gameweek"`
	Slots     []RosterSlot `json:"slots"`
	Chip      Chip         `json:"chip"`
	Upstream  UpstreamSubs `json:"upstream_subs"`
}
