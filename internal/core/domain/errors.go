package domain

import "errors"

var (
	// ErrUnauthorized maps any upstream 401. Handled globally: the session's
	// persisted token is cleared and the browser is sent to the login page.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden maps an upstream 403: authenticated but not allowed.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound maps an upstream 404 for any entity.
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest wraps upstream validation failures (4xx with message body).
	ErrBadRequest = errors.New("invalid request")

	// ErrUpstream covers transport failures and 5xx responses from the
	// backend. Page controllers render it inline with a retry affordance.
	ErrUpstream = errors.New("backend unavailable")

	// ErrInvalidCredentials is returned by login when the backend rejects
	// the supplied username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession indicates a request carried no resolvable console session.
	ErrNoSession = errors.New("no active session")
)
