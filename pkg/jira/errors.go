package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the response taxonomy. APIError unwraps to one of these
// so callers can classify failures with errors.Is.
var (
	// ErrUnreachable means no status code was obtained from the server.
	ErrUnreachable = errors.New("server unreachable")

	// ErrInvalidCredentials means the server rejected a login with 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLoginDenied means the server answered 403: it requires an
	// interactive challenge (such as a captcha) this client cannot satisfy.
	ErrLoginDenied = errors.New("login denied")

	// ErrUnauthorized means an authenticated call answered 401 and the
	// single re-authentication retry did not recover it.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotFound means the server answered 404.
	ErrNotFound = errors.New("resource not found")

	// ErrClientError covers the remaining 4xx statuses.
	ErrClientError = errors.New("client error")

	// ErrServerError covers 5xx statuses, fatal for the call.
	ErrServerError = errors.New("server error")
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrUsernameRequired    = errors.New("username is required")
	ErrSecretRequired      = errors.New("secret is required")
	ErrNoCredentialSource  = errors.New("no credential provider configured")
	ErrMalformedSession    = errors.New("session response missing cookie name or value")
	ErrUnknownAuthMode     = errors.New("unknown auth mode")
	ErrPageLimitExceeded   = errors.New("pagination exceeded the configured page limit")
	ErrCacheKeyNotFound    = errors.New("key not found")
	ErrCacheEntryExpired   = errors.New("entry expired")
	ErrCacheDisabled       = errors.New("cache disabled")
	ErrUnsupportedCache    = errors.New("unsupported cache type")
	ErrNATSConfigRequired  = errors.New("NATS configuration required for NATS cache")
	ErrIssueKeyRequired    = errors.New("issue key is required")
	ErrProjectKeyRequired  = errors.New("project key is required")
	ErrJQLRequired         = errors.New("jql query is required")
	ErrTransitionNotFound  = errors.New("transition not found")
)

// ErrorBody is the error payload Jira attaches to 4xx responses.
type ErrorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// APIError represents a classified non-2xx response.
type APIError struct {
	StatusCode int
	Messages   []string
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("%s %d: %s", http.StatusText(e.StatusCode), e.StatusCode, strings.Join(e.Messages, "; "))
	}

	return fmt.Sprintf("%s %d", http.StatusText(e.StatusCode), e.StatusCode)
}

// Unwrap maps the status code onto the sentinel taxonomy.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrLoginDenied
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= 500:
		return ErrServerError
	case e.StatusCode >= 400:
		return ErrClientError
	default:
		return nil
	}
}

// NewAPIError classifies a non-2xx response. The body is retained verbatim
// for diagnosis; messages are extracted when the body is a Jira error payload.
func NewAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	var parsed ErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Messages = append(apiErr.Messages, parsed.ErrorMessages...)
		for field, msg := range parsed.Errors {
			apiErr.Messages = append(apiErr.Messages, fmt.Sprintf("%s: %s", field, msg))
		}
	}

	return apiErr
}

// IsUnreachable reports whether no status code was obtained.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsInvalidCredentials reports whether a login was rejected with 401.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsLoginDenied reports whether the server answered 403.
func IsLoginDenied(err error) bool {
	return errors.Is(err, ErrLoginDenied)
}

// IsUnauthorized reports whether an authenticated call stayed 401 after the
// re-authentication retry.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsServerError reports whether the server answered 5xx.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServerError)
}

// IsClientError reports whether the server answered any 4xx status.
func IsClientError(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
	}

	return errors.Is(err, ErrClientError)
}

// StatusCode extracts the HTTP status from a classified error, or 0 when the
// error did not carry one (for example ErrUnreachable).
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}
