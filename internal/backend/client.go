// Package backend is the only sanctioned path to the remote SMD REST API.
// Every outbound request goes through a shared resty client that attaches the
// session's bearer token and maps upstream failures onto domain sentinels, so
// token attachment and 401 handling hold uniformly across all page
// controllers.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/smd-system/console/internal/api/metrics"
	"github.com/smd-system/console/internal/core/domain"
)

// Client bundles the typed service slices of the SMD backend.
type Client struct {
	http *resty.Client
	log  zerolog.Logger

	Auth          *AuthService
	Syllabi       *SyllabusService
	Users         *UserService
	Notifications *NotificationService
}

// Options configures the backend client.
type Options struct {
	// BaseURL is the backend host, e.g. http://localhost:8080.
	BaseURL string
	// Timeout bounds every request end-to-end.
	Timeout time.Duration
}

// NewClient builds the shared resty client. There is deliberately no retry
// policy: failures surface to the issuing page controller, which renders an
// inline error with a manual retry affordance.
func NewClient(opts Options, log zerolog.Logger) *Client {
	httpc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{http: httpc, log: log}
	c.Auth = &AuthService{c: c}
	c.Syllabi = &SyllabusService{c: c}
	c.Users = &UserService{c: c}
	c.Notifications = &NotificationService{c: c}
	return c
}

// Ping reports whether the backend host answers at all. Any HTTP response,
// whatever its status, counts as reachable; only transport failures do not.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.http.R().SetContext(ctx).Get("/"); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return nil
}

// request starts a request carrying ctx and, when present, the bearer token.
// Requests proceed without the header if no token exists; the backend rejects
// them where required.
func (c *Client) request(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// check records metrics for the call and maps the response onto domain
// sentinels. A nil return means the caller may trust the decoded result.
func (c *Client) check(service string, resp *resty.Response, err error) error {
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "transport_error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	metrics.UpstreamRequestDuration.WithLabelValues(service).Observe(resp.Time().Seconds())

	switch {
	case resp.StatusCode() < 400:
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "ok").Inc()
		return nil
	case resp.StatusCode() == http.StatusUnauthorized:
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "unauthorized").Inc()
		return domain.ErrUnauthorized
	case resp.StatusCode() == http.StatusForbidden:
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "client_error").Inc()
		return domain.ErrForbidden
	case resp.StatusCode() == http.StatusNotFound:
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "client_error").Inc()
		return domain.ErrNotFound
	case resp.StatusCode() < 500:
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "client_error").Inc()
		return fmt.Errorf("%w: %s", domain.ErrBadRequest, upstreamMessage(resp))
	default:
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "server_error").Inc()
		c.log.Error().
			Str("service", service).
			Int("status", resp.StatusCode()).
			Str("url", resp.Request.URL).
			Msg("backend server error")
		return domain.ErrUpstream
	}
}

// upstreamMessage extracts the backend's error text. The Spring backend uses
// both {"error": …} and {"message": …} envelopes depending on the controller.
func upstreamMessage(resp *resty.Response) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return resp.Status()
}
