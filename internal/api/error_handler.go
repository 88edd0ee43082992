package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smd-system/console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all console errors. The
// retryable flag drives the inline retry affordance in the page shell.
type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain sentinels to their appropriate HTTP status codes.
//   - Flags upstream failures as retryable so pages render a retry action.
//   - Logs unexpected errors internally without leaking details to the client.
//
// domain.ErrUnauthorized never reaches here with a body of its own: the route
// guard and the auth middleware turn it into a login redirect first. Mapping
// it anyway keeps a stray 401 from masquerading as a 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, retryable := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Retryable: retryable})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, bool) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), false
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required", false
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", false
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found", false
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", false
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, err.Error(), false
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, "backend unavailable", true
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, "no active session", false
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", false
}
