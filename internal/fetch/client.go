package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/johnhowardroberts/fpl-live-table/internal/store"
)

// Client pulls raw JSON from the FPL API into a JSONStore. It is the
// poll-cadence collaborator: the engine itself never fetches.
type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore
	BaseURL      string
	UserAgent    string
	Sleep        time.Duration
	PrettyWrite  bool
	UseCache     bool
	DisableWrite bool

	// EntryConcurrency bounds the per-manager pick/history fetches.
	EntryConcurrency int
}

func NewClient(st *store.JSONStore) *Client {
	return &Client{
		HTTP:             &http.Client{Timeout: 20 * time.Second},
		Store:            st,
		BaseURL:          "https://fantasy.premierleague.com/api",
		UserAgent:        "fpl-live-table/1.0",
		Sleep:            250 * time.Millisecond,
		PrettyWrite:      true,
		EntryConcurrency: 4,
	}
}

// FetchRaw downloads urlPath (like "/bootstrap-static/") and writes it
// to relPath in the store. Returns raw bytes (from cache or network).
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store.Exists(relPath) {
		return c.Store.ReadRaw(relPath)
	}

	if c.Sleep > 0 {
		time.Sleep(c.Sleep)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, string(body))
	}

	if !c.DisableWrite {
		if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// FetchEntries pulls picks and season history for every league entry
// with bounded concurrency. One failed entry fails the batch: the
// engine must only ever see a complete, consistent snapshot.
func (c *Client) FetchEntries(ctx context.Context, entryIDs []int, gw int, force bool) error {
	g, ctx := errgroup.WithContext(ctx)
	limit := c.EntryConcurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, id := range entryIDs {
		g.Go(func() error {
			if err := c.EntryPicks(ctx, id, gw, force); err != nil {
				return fmt.Errorf("entry %d picks: %w", id, err)
			}
			if err := c.EntryHistory(ctx, id, force); err != nil {
				return fmt.Errorf("entry %d history: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}
