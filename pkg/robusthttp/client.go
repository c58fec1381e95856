package robusthttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 8 * time.Second
	defaultTimeout      = 30 * time.Second
)

// Adapts slog to the retryablehttp leveled logger interface. Failed attempts are logged at WARN, since most get retried.
type LeveledSlog struct {
	inner *slog.Logger
}

func (l LeveledSlog) Error(msg string, kv ...any) { l.inner.Warn(msg, kv...) }
func (l LeveledSlog) Warn(msg string, kv ...any)  { l.inner.Warn(msg, kv...) }
func (l LeveledSlog) Info(msg string, kv ...any)  { l.inner.Info(msg, kv...) }
func (l LeveledSlog) Debug(msg string, kv ...any) { l.inner.Debug(msg, kv...) }

type config struct {
	retry   *retryablehttp.Client
	timeout time.Duration
}

type Option func(*config)

func WithMaxRetries(n int) Option {
	return func(c *config) {
		c.retry.RetryMax = n
	}
}

// Bounds for the exponential backoff between attempts.
func WithRetryWait(waitMin, waitMax time.Duration) Option {
	return func(c *config) {
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// Overall time limit for a request, including all retries.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.retry.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: logger})
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.retry.HTTPClient.Transport = transport
	}
}

// Sets the User-Agent header on every attempt, unless the request already carries one.
func WithUserAgent(userAgent string) Option {
	return func(c *config) {
		c.retry.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", userAgent)
			}
		}
	}
}

// Returns a stdlib *http.Client which retries connection errors and 5xx responses (except 501) with backoff, using retryablehttp internally. Rate-limit responses (429) are returned to the caller as-is.
//
// Requests are traced with otelhttp on a pooled cleanhttp transport; nothing is shared with http.DefaultClient.
func NewClient(options ...Option) *http.Client {
	retry := retryablehttp.NewClient()
	retry.HTTPClient.Transport = otelhttp.NewTransport(cleanhttp.DefaultPooledTransport())
	retry.RetryMax = defaultRetryMax
	retry.RetryWaitMin = defaultRetryWaitMin
	retry.RetryWaitMax = defaultRetryWaitMax
	retry.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: slog.Default().With("subsystem", "robusthttp")})
	retry.CheckRetry = RetryPolicy

	c := &config{retry: retry, timeout: defaultTimeout}
	for _, opt := range options {
		opt(c)
	}

	client := retry.StandardClient()
	client.Timeout = c.timeout
	return client
}

// Wraps retryablehttp.DefaultRetryPolicy, but never retries 429 Too Many Requests: backing off from upstream rate limits is left to the caller.
func RetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}
