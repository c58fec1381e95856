package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/karmascope/karmascope/metrics"

	"golang.org/x/sync/errgroup"
)

// Raw upstream data for one account: the inputs to metrics.Build.
type AccountData struct {
	Account  *metrics.AccountRecord   `json:"account"`
	Posts    []metrics.ActivityRecord `json:"posts"`
	Comments []metrics.ActivityRecord `json:"comments"`
}

// Fetches account metadata, recent posts and recent comments in parallel.
//
// A missing account returns ErrUserNotFound; a private or suspended one returns metrics.ErrInvalidAccountState.
func (c *Client) FetchAccount(ctx context.Context, username string) (*AccountData, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	base := "/user/" + url.PathEscape(username)
	data := AccountData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var about thing[metrics.AccountRecord]
		err := c.getJSON(gctx, base+"/about.json", &about)
		switch statusCode(err) {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrUserNotFound, username)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s is private or suspended", metrics.ErrInvalidAccountState, username)
		}
		if err != nil {
			return fmt.Errorf("fetching account %s: %w", username, err)
		}
		if about.Data == nil || about.Data.Name == "" {
			return fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		data.Account = about.Data
		return nil
	})
	g.Go(func() error {
		data.Posts = c.fetchActivity(gctx, fmt.Sprintf("%s/submitted.json?limit=%d", base, listingLimit))
		return nil
	})
	g.Go(func() error {
		data.Comments = c.fetchActivity(gctx, fmt.Sprintf("%s/comments.json?limit=%d", base, listingLimit))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.Logger.Debug("fetched account", "username", username, "posts", len(data.Posts), "comments", len(data.Comments))
	return &data, nil
}

// Fetches an account and reduces it to a metrics snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, username string) (*metrics.Snapshot, error) {
	data, err := c.FetchAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	return metrics.Build(data.Account, data.Posts, data.Comments)
}
