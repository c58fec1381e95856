package robusthttp

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastClient(options ...Option) *http.Client {
	return NewClient(append([]Option{WithRetryWait(time.Millisecond, 5*time.Millisecond)}, options...)...)
}

func TestClientRetriesServerErrors(t *testing.T) {
	assert := assert.New(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := fastClient().Get(srv.URL)
	assert.NoError(err)
	defer resp.Body.Close()
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal(int32(3), hits.Load())
}

func TestClientDoesNotRetryRateLimit(t *testing.T) {
	assert := assert.New(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	resp, err := fastClient().Get(srv.URL)
	assert.NoError(err)
	defer resp.Body.Close()
	assert.Equal(http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(int32(1), hits.Load())
}

func TestClientUserAgent(t *testing.T) {
	assert := assert.New(t)

	agents := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := fastClient(WithUserAgent("karmascope-test/1.0"))
	resp, err := client.Get(srv.URL)
	assert.NoError(err)
	resp.Body.Close()
	assert.Equal("karmascope-test/1.0", <-agents)

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	assert.NoError(err)
	req.Header.Set("User-Agent", "custom")
	resp, err = client.Do(req)
	assert.NoError(err)
	resp.Body.Close()
	assert.Equal("custom", <-agents)
}

func TestClientTimeout(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := fastClient(WithMaxRetries(0), WithTimeout(20*time.Millisecond)).Get(srv.URL)
	assert.Error(err)
}
