package fetch

import (
	"context"
	"fmt"
)

// /bootstrap-static/
func (c *Client) BootstrapStatic(ctx context.Context, force bool) error {
	_, err := c.FetchRaw(ctx, "/bootstrap-static/", "bootstrap/bootstrap-static.json", force)
	return err
}

// /fixtures/?event={gw}
func (c *Client) Fixtures(ctx context.Context, gw int, force bool) error {
	_, err := c.FetchRaw(
		ctx,
		fmt.Sprintf("/fixtures/?event=%d", gw),
		fmt.Sprintf("gw/%d/fixtures.json", gw),
		force,
	)
	return err
}

// /event/{gw}/live/
func (c *Client) EventLive(ctx context.Context, gw int, force bool) error {
	_, err := c.FetchRaw(
		ctx,
		fmt.Sprintf("/event/%d/live/", gw),
		fmt.Sprintf("gw/%d/live.json", gw),
		force,
	)
	return err
}

// /leagues-classic/{league_id}/standings/
func (c *Client) LeagueStandings(ctx context.Context, leagueID int, force bool) error {
	_, err := c.FetchRaw(
		ctx,
		fmt.Sprintf("/leagues-classic/%d/standings/", leagueID),
		fmt.Sprintf("league/%d/standings.json", leagueID),
		force,
	)
	return err
}

// /entry/{entry_id}/event/{gw}/picks/
func (c *Client) EntryPicks(ctx context.Context, entryID int, gw int, force bool) error {
	_, err := c.FetchRaw(
		ctx,
		fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw),
		fmt.Sprintf("entry/%d/gw/%d/picks.json", entryID, gw),
		force,
	)
	return err
}

// /entry/{entry_id}/history/
func (c *Client) EntryHistory(ctx context.Context, entryID int, force bool) error {
	_, err := c.FetchRaw(
		ctx,
		fmt.Sprintf("/entry/%d/history/", entryID),
		fmt.Sprintf("entry/%d/history.json", entryID),
		force,
	)
	return err
}
