package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/RussellLuo/slidingwindow"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
)

// max distinct clients tracked at once; idle clients age out
const maxTrackedClients = 100_000

// Per-client request limits for the API endpoints, keyed by remote IP.
type ClientLimiter struct {
	window time.Duration
	limit  int64

	mu       sync.Mutex
	limiters *expirable.LRU[string, *slidingwindow.Limiter]
}

func windowFunc() (slidingwindow.Window, slidingwindow.StopFunc) {
	return slidingwindow.NewLocalWindow()
}

func NewClientLimiter(window time.Duration, limit int64) *ClientLimiter {
	return &ClientLimiter{
		window:   window,
		limit:    limit,
		limiters: expirable.NewLRU[string, *slidingwindow.Limiter](maxTrackedClients, nil, 2*window),
	}
}

func (cl *ClientLimiter) Allow(client string) bool {
	cl.mu.Lock()
	lim, ok := cl.limiters.Get(client)
	if !ok {
		lim, _ = slidingwindow.NewLimiter(cl.window, cl.limit, windowFunc)
		cl.limiters.Add(client, lim)
	}
	cl.mu.Unlock()
	return lim.Allow()
}

func (cl *ClientLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cl.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "RateLimitExceeded", Message: "Too many requests, slow down"})
			}
			return next(c)
		}
	}
}
