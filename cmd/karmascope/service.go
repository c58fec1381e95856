package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karmascope/karmascope/authority"
	"github.com/karmascope/karmascope/cachestore"
	"github.com/karmascope/karmascope/compliance"
	"github.com/karmascope/karmascope/metrics"
	"github.com/karmascope/karmascope/setstore"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	slogecho "github.com/samber/slog-echo"
	cli "github.com/urfave/cli/v2"
)

// Upstream lookups used by the daemon. Implemented by *fetch.Client.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, username string) (*metrics.Snapshot, error)
	FetchCommunity(ctx context.Context, name string) (*compliance.CommunityProfile, error)
}

type Config struct {
	Logger          *slog.Logger
	Fetcher         Fetcher
	Cache           cachestore.CacheStore
	Sets            setstore.MemSetStore
	Scorer          authority.Scorer
	UpstreamTimeout time.Duration
	// registry for HTTP request metrics; the default registry if nil
	MetricsRegisterer prometheus.Registerer
	// if not nil, applied to the /v1 endpoints
	RequestLimit *ClientLimiter
}

type Server struct {
	echo            *echo.Echo
	httpd           *http.Server
	logger          *slog.Logger
	fetcher         Fetcher
	cache           cachestore.CacheStore
	analyzer        *compliance.Analyzer
	scorer          authority.Scorer
	upstreamTimeout time.Duration
}

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "run the HTTP API daemon",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "IP or address, and port, to listen on for HTTP APIs (and metrics)",
			Value:   ":3200",
			EnvVars: []string{"KARMASCOPE_BIND"},
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection URL for the lookup cache; in-process memory if not set",
			EnvVars: []string{"KARMASCOPE_REDIS_URL"},
		},
		&cli.DurationFlag{
			Name:    "cache-ttl",
			Usage:   "how long fetched profiles and communities are cached",
			Value:   10 * time.Minute,
			EnvVars: []string{"KARMASCOPE_CACHE_TTL"},
		},
		&cli.IntFlag{
			Name:    "cache-size",
			Usage:   "max entries in the in-process cache",
			Value:   50_000,
			EnvVars: []string{"KARMASCOPE_CACHE_SIZE"},
		},
		&cli.IntFlag{
			Name:    "request-limit",
			Usage:   "max API requests per client IP per minute (0 for no limit)",
			Value:   60,
			EnvVars: []string{"KARMASCOPE_REQUEST_LIMIT"},
		},
		&cli.DurationFlag{
			Name:    "upstream-timeout",
			Usage:   "time limit for each upstream lookup",
			Value:   20 * time.Second,
			EnvVars: []string{"KARMASCOPE_UPSTREAM_TIMEOUT"},
		},
	},
	Action: serve,
}

func serve(cctx *cli.Context) error {
	ctx := cctx.Context
	logger := slog.Default()

	shutdownOTEL, err := configOTEL(ctx, "karmascope")
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}
	defer shutdownOTEL()

	sets, err := configSets(cctx)
	if err != nil {
		return err
	}

	var cache cachestore.CacheStore
	if redisURL := cctx.String("redis-url"); redisURL != "" {
		rcache, err := cachestore.NewRedisCacheStore(ctx, redisURL, cctx.Duration("cache-ttl"))
		if err != nil {
			return err
		}
		cache = rcache
	} else {
		cache = cachestore.NewMemCacheStore(cctx.Int("cache-size"), cctx.Duration("cache-ttl"))
	}

	var limiter *ClientLimiter
	if n := cctx.Int("request-limit"); n > 0 {
		limiter = NewClientLimiter(time.Minute, int64(n))
	}

	srv := NewServer(Config{
		Logger:          logger,
		Fetcher:         configFetcher(cctx),
		Cache:           cache,
		Sets:            sets,
		Scorer:          configScorer(cctx),
		UpstreamTimeout: cctx.Duration("upstream-timeout"),
		RequestLimit:    limiter,
	})
	srv.httpd.Addr = cctx.String("bind")

	// Start the server
	logger.Info("starting server", "bind", srv.httpd.Addr)
	go func() {
		if err := srv.httpd.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server shutting down unexpectedly", "err", err)
			}
		}
	}()

	// Wait for a signal to exit.
	exitSignals := make(chan os.Signal, 1)
	signal.Notify(exitSignals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-exitSignals
	logger.Info("received OS exit signal", "signal", sig)

	if err := srv.Shutdown(); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
	}
	logger.Info("graceful shutdown complete")
	return nil
}

func NewServer(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()

	// httpd
	var (
		httpTimeout        = 1 * time.Minute
		httpMaxHeaderBytes = 1 * (1024 * 1024)
	)

	srv := &Server{
		echo:            e,
		logger:          logger,
		fetcher:         config.Fetcher,
		cache:           config.Cache,
		analyzer:        compliance.NewAnalyzer(config.Sets),
		scorer:          config.Scorer,
		upstreamTimeout: config.UpstreamTimeout,
	}
	srv.httpd = &http.Server{
		Handler:        srv,
		WriteTimeout:   httpTimeout,
		ReadTimeout:    httpTimeout,
		MaxHeaderBytes: httpMaxHeaderBytes,
	}

	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "karmascope",
		Registerer: config.MetricsRegisterer,
	}))
	e.Use(middleware.BodyLimit("1M"))
	e.HTTPErrorHandler = srv.errorHandler

	e.GET("/_health", srv.HandleHealthCheck)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/v1")
	if config.RequestLimit != nil {
		api.Use(config.RequestLimit.Middleware())
	}
	api.POST("/score", srv.HandleScore)
	api.POST("/analyze", srv.HandleAnalyze)
	api.GET("/profile/:username", srv.HandleProfile)

	return srv
}

func (srv *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	srv.echo.ServeHTTP(rw, req)
}

func (srv *Server) Shutdown() error {
	srv.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.httpd.Shutdown(ctx)
}
