package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/karmascope/karmascope/cachestore"
	"github.com/karmascope/karmascope/compliance"
	"github.com/karmascope/karmascope/fetch"
	"github.com/karmascope/karmascope/metrics"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
)

const (
	cacheNameProfile   = "profile"
	cacheNameCommunity = "community"
)

var errMissingCommunity = errors.New("community name or profile is required")

type GenericStatus struct {
	Daemon  string `json:"daemon"`
	Status  string `json:"status"`
	Message string `json:"msg,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ScoreRequest = fetch.AccountData

type AnalyzeRequest struct {
	Text string `json:"text"`
	// fetched from upstream unless a profile is supplied
	Community string                       `json:"community,omitempty"`
	Profile   *compliance.CommunityProfile `json:"profile,omitempty"`
	// extra rules, appended to the community's own
	Rules []compliance.Rule `json:"rules,omitempty"`
}

func (srv *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := "Internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= 500 {
		srv.logger.Warn("karmascope-http-internal-error", "err", err)
	}
	if !c.Response().Committed {
		c.JSON(code, ErrorResponse{Error: strings.ReplaceAll(http.StatusText(code), " ", ""), Message: msg})
	}
}

// Writes a domain error as a JSON error response.
func (srv *Server) errorResponse(c echo.Context, err error) error {
	code, name, msg := classifyError(err)
	if code >= 500 {
		srv.logger.Warn("request failed", "path", c.Path(), "err", err)
	} else {
		srv.logger.Debug("request rejected", "path", c.Path(), "err", err)
	}
	return c.JSON(code, ErrorResponse{Error: name, Message: msg})
}

func (srv *Server) HandleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, GenericStatus{Status: "ok", Daemon: "karmascope"})
}

func (srv *Server) HandleScore(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "BadRequest", Message: "Request body must be JSON with an account, posts, and comments"})
	}
	snap, err := metrics.Build(req.Account, req.Posts, req.Comments)
	if err != nil {
		return srv.errorResponse(c, err)
	}
	out, err := scoreSnapshot(srv.scorer, snap)
	if err != nil {
		return srv.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (srv *Server) HandleProfile(c echo.Context) error {
	username := c.Param("username")
	if err := fetch.ValidateUsername(username); err != nil {
		return srv.errorResponse(c, err)
	}
	snap, err := srv.lookupSnapshot(c.Request().Context(), username)
	if err != nil {
		upstreamFailures.WithLabelValues("profile", errorLabel(err)).Inc()
		return srv.errorResponse(c, err)
	}
	out, err := scoreSnapshot(srv.scorer, snap)
	if err != nil {
		return srv.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (srv *Server) HandleAnalyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "BadRequest", Message: "Request body must be JSON with text and a community"})
	}

	profile := req.Profile
	if profile == nil {
		if strings.TrimSpace(req.Community) == "" {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "BadRequest", Message: errMissingCommunity.Error()})
		}
		var err error
		profile, err = srv.lookupCommunity(c.Request().Context(), req.Community)
		if err != nil {
			upstreamFailures.WithLabelValues("community", errorLabel(err)).Inc()
			return srv.errorResponse(c, err)
		}
	}

	res, err := srv.analyzer.AnalyzeText(req.Text, profile, req.Rules...)
	if err != nil {
		return srv.errorResponse(c, err)
	}
	analysesCompleted.WithLabelValues(string(res.RiskLevel)).Inc()
	return c.JSON(http.StatusOK, res)
}

func errorLabel(err error) string {
	_, name, _ := classifyError(err)
	return name
}

// Fetches an account snapshot, going through the cache. Cache failures are logged and otherwise ignored.
func (srv *Server) lookupSnapshot(ctx context.Context, username string) (*metrics.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "lookupSnapshot")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	key := cachestore.Key(strings.ToLower(username))
	if snap, ok := cacheGet[metrics.Snapshot](ctx, srv, cacheNameProfile, key); ok {
		return snap, nil
	}

	ctx, cancel := srv.upstreamContext(ctx)
	defer cancel()
	snap, err := srv.fetcher.FetchSnapshot(ctx, username)
	if err != nil {
		return nil, err
	}
	srv.cacheSet(ctx, cacheNameProfile, key, snap)
	return snap, nil
}

func (srv *Server) lookupCommunity(ctx context.Context, name string) (*compliance.CommunityProfile, error) {
	ctx, span := tracer.Start(ctx, "lookupCommunity")
	defer span.End()
	span.SetAttributes(attribute.String("community", name))

	key := cachestore.Key(compliance.NormalizeCommunityName(name))
	if profile, ok := cacheGet[compliance.CommunityProfile](ctx, srv, cacheNameCommunity, key); ok {
		return profile, nil
	}

	ctx, cancel := srv.upstreamContext(ctx)
	defer cancel()
	profile, err := srv.fetcher.FetchCommunity(ctx, name)
	if err != nil {
		return nil, err
	}
	srv.cacheSet(ctx, cacheNameCommunity, key, profile)
	return profile, nil
}

func (srv *Server) upstreamContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if srv.upstreamTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, srv.upstreamTimeout)
}

func cacheGet[T any](ctx context.Context, srv *Server, name, key string) (*T, bool) {
	if srv.cache == nil {
		return nil, false
	}
	val, ok, err := cachestore.GetJSON[T](ctx, srv.cache, name, key)
	if err != nil {
		srv.logger.Warn("cache read failed", "cache", name, "err", err)
		return nil, false
	}
	if ok {
		cacheLookups.WithLabelValues(name, "hit").Inc()
	} else {
		cacheLookups.WithLabelValues(name, "miss").Inc()
	}
	return val, ok
}

func (srv *Server) cacheSet(ctx context.Context, name, key string, val any) {
	if srv.cache == nil {
		return
	}
	if err := cachestore.SetJSON(ctx, srv.cache, name, key, val); err != nil {
		srv.logger.Warn("cache write failed", "cache", name, "err", err)
	}
}
