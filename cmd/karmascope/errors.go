package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/karmascope/karmascope/authority"
	"github.com/karmascope/karmascope/compliance"
	"github.com/karmascope/karmascope/fetch"
	"github.com/karmascope/karmascope/metrics"
)

// Maps a domain or fetch error to an HTTP status, a short error name, and a user-facing message.
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, fetch.ErrInvalidUsername):
		return http.StatusBadRequest, "InvalidUsername", "Invalid username format"
	case errors.Is(err, fetch.ErrInvalidCommunityName):
		return http.StatusBadRequest, "InvalidCommunity", "Invalid community name"
	case errors.Is(err, authority.ErrInvalidMetrics):
		return http.StatusBadRequest, "InvalidMetrics", "Account metrics are malformed"
	case errors.Is(err, fetch.ErrUserNotFound):
		return http.StatusNotFound, "UserNotFound", "User not found"
	case errors.Is(err, compliance.ErrCommunityNotFound):
		return http.StatusNotFound, "CommunityNotFound", "Community not found"
	case errors.Is(err, metrics.ErrInvalidAccountState):
		return http.StatusForbidden, "AccountUnavailable", "User profile is private, suspended, or deleted"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, "UpstreamTimeout", "Upstream request timed out"
	case errors.Is(err, fetch.ErrUpstream):
		return http.StatusBadGateway, "UpstreamFailure", "Failed to fetch data from upstream"
	default:
		return http.StatusInternalServerError, "InternalError", "Internal error"
	}
}
