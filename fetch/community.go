package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/karmascope/karmascope/compliance"

	"golang.org/x/sync/errgroup"
)

// Fetches community metadata and its rules in parallel. Rules are optional: if they can't be fetched the profile has none.
func (c *Client) FetchCommunity(ctx context.Context, name string) (*compliance.CommunityProfile, error) {
	name = compliance.NormalizeCommunityName(name)
	if !communityNamePattern.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommunityName, name)
	}
	base := "/r/" + url.PathEscape(name)

	var (
		profile *compliance.CommunityProfile
		rules   []compliance.Rule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var about thing[compliance.CommunityProfile]
		err := c.getJSON(gctx, base+"/about.json", &about)
		switch statusCode(err) {
		case http.StatusNotFound, http.StatusForbidden:
			return fmt.Errorf("%w: %s", compliance.ErrCommunityNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("fetching community %s: %w", name, err)
		}
		// unknown names get redirected to a search listing, which has no display name
		if about.Data == nil || about.Data.Name == "" {
			return fmt.Errorf("%w: %s", compliance.ErrCommunityNotFound, name)
		}
		profile = about.Data
		return nil
	})
	g.Go(func() error {
		var resp rulesResponse
		if err := c.getJSON(gctx, base+"/about/rules.json", &resp); err != nil {
			c.Logger.Warn("could not fetch community rules, continuing without them", "community", name, "err", err)
			return nil
		}
		rules = resp.Rules
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile.Rules = rules
	if profile.Rules == nil {
		profile.Rules = []compliance.Rule{}
	}
	return profile, nil
}
