package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestClientLimiter(t *testing.T) {
	assert := assert.New(t)

	cl := NewClientLimiter(time.Minute, 2)
	assert.True(cl.Allow("10.0.0.1"))
	assert.True(cl.Allow("10.0.0.1"))
	assert.False(cl.Allow("10.0.0.1"))
	// separate budget per client
	assert.True(cl.Allow("10.0.0.2"))
}

func TestServerRequestLimit(t *testing.T) {
	assert := assert.New(t)

	srv := NewServer(Config{
		Fetcher:           &fakeFetcher{},
		RequestLimit:      NewClientLimiter(time.Minute, 1),
		MetricsRegisterer: prometheus.NewRegistry(),
	})
	body := `{"text": "hello there", "profile": {"display_name": "offline"}}`
	assert.Equal(http.StatusOK, doRequest(srv, http.MethodPost, "/v1/analyze", body).Code)

	rec := doRequest(srv, http.MethodPost, "/v1/analyze", body)
	assert.Equal(http.StatusTooManyRequests, rec.Code)
	assert.Equal("RateLimitExceeded", decodeBody[ErrorResponse](t, rec).Error)

	// health checks are not limited
	assert.Equal(http.StatusOK, doRequest(srv, http.MethodGet, "/_health", "").Code)
}
