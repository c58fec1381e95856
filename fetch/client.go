package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/karmascope/karmascope/compliance"
	"github.com/karmascope/karmascope/metrics"
	"github.com/karmascope/karmascope/pkg/robusthttp"

	"golang.org/x/time/rate"
)

const (
	DefaultHost      = "https://www.reddit.com"
	DefaultUserAgent = "karmascope/1.0"
	// requests per second
	DefaultRateLimit = 1.0

	// upstream maximum page size for listings
	listingLimit    = 100
	maxResponseSize = 16 * 1024 * 1024
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidUsername      = errors.New("invalid username format")
	ErrInvalidCommunityName = errors.New("invalid community name")
	// any other failed or non-success response from upstream
	ErrUpstream = errors.New("upstream request failed")
)

var (
	usernamePattern      = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	communityNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{2,21}$`)
)

func ValidateUsername(name string) error {
	if !usernamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, name)
	}
	return nil
}

type Client struct {
	// URL method, hostname, and optional port; no path or trailing slash
	Host       string
	HTTPClient *http.Client
	// If not nil, every upstream request waits on this limiter
	Limiter *rate.Limiter
	Logger  *slog.Logger
}

func NewClient(host, userAgent string, rps float64) *Client {
	return &Client{
		Host:       host,
		HTTPClient: robusthttp.NewClient(robusthttp.WithUserAgent(userAgent)),
		Limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		Logger:     slog.Default().With("component", "fetch"),
	}
}

type statusError struct {
	Code int
	Path string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Code, e.Path)
}

func (e *statusError) Unwrap() error {
	return ErrUpstream
}

func statusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Host+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{Code: resp.StatusCode, Path: path}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("%w: parsing %s: %w", ErrUpstream, path, err)
	}
	return nil
}

// {"kind": "...", "data": {...}}
type thing[T any] struct {
	Data *T `json:"data"`
}

// {"data": {"children": [{"data": {...}}, ...]}}
type listing[T any] struct {
	Data struct {
		Children []thing[T] `json:"children"`
	} `json:"data"`
}

func (l *listing[T]) items() []T {
	out := make([]T, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Data != nil {
			out = append(out, *child.Data)
		}
	}
	return out
}

type rulesResponse struct {
	Rules []compliance.Rule `json:"rules"`
}

func (c *Client) fetchActivity(ctx context.Context, path string) []metrics.ActivityRecord {
	var l listing[metrics.ActivityRecord]
	if err := c.getJSON(ctx, path, &l); err != nil {
		c.Logger.Warn("could not fetch activity listing, continuing without it", "path", path, "err", err)
		return []metrics.ActivityRecord{}
	}
	return l.items()
}
