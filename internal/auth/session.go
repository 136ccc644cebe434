// Package auth establishes and owns the client's session: it resolves
// credentials, performs mode-specific login, and signs nothing itself. The
// HTTP layer reads the live session through the Manager.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// Static errors for err113 compliance.
var (
	ErrNoUsername = errors.New("no username available: pass one, configure a default, or set a credential provider")
	ErrNoSecret   = errors.New("no secret available: pass one, configure a default token, or set a credential provider")
)

// sessionBody is the cookie-mode login request payload.
type sessionBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse is the cookie-mode login response payload.
type sessionResponse struct {
	Session struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"session"`
}

// Manager owns the single live session of one client instance. All state
// transitions happen under its lock so concurrent callers cannot race two
// logins.
type Manager struct {
	mu       sync.RWMutex
	baseURL  string
	mode     jira.AuthMode
	username string
	token    string
	provider jira.CredentialProvider
	hooks    []jira.PostLoginHook
	logger   jira.Logger

	// httpClient performs the unauthenticated session create/delete calls.
	httpClient *http.Client

	session *jira.Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithDefaultUsername sets the username used when a login passes none.
func WithDefaultUsername(username string) Option {
	return func(m *Manager) {
		m.username = username
	}
}

// WithDefaultToken sets the API token used when a token-mode login passes no
// secret. Other modes ignore it.
func WithDefaultToken(token string) Option {
	return func(m *Manager) {
		m.token = token
	}
}

// WithCredentialProvider sets the interactive credential source of last resort.
func WithCredentialProvider(provider jira.CredentialProvider) Option {
	return func(m *Manager) {
		m.provider = provider
	}
}

// WithPostLoginHooks registers hooks run after each successful login.
func WithPostLoginHooks(hooks ...jira.PostLoginHook) Option {
	return func(m *Manager) {
		m.hooks = append(m.hooks, hooks...)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger jira.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHTTPTimeout bounds the session create/delete round trips.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.httpClient.Timeout = timeout
	}
}

// NewManager creates a session manager for the given deployment and mode.
func NewManager(baseURL string, mode jira.AuthMode, opts ...Option) *Manager {
	if mode == "" {
		mode = jira.AuthModeCookie
	}

	manager := &Manager{
		baseURL: baseURL,
		mode:    mode,
		httpClient: &http.Client{
			Timeout: constants.ShortHTTPTimeout,
		},
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// Mode returns the configured auth mode.
func (m *Manager) Mode() jira.AuthMode {
	return m.mode
}

// Current returns the live session, or nil before the first successful login.
func (m *Manager) Current() *jira.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session
}

// Login establishes a session from configured and provided credentials.
func (m *Manager) Login(ctx context.Context) (*jira.Session, error) {
	return m.LoginAs(ctx, "", "")
}

// LoginAs establishes a session, preferring the explicit username and secret
// over configured defaults and the credential provider. On success the live
// session is replaced wholesale and every post-login hook runs in order
// before LoginAs returns. On failure the previous session is left untouched.
func (m *Manager) LoginAs(ctx context.Context, username, secret string) (*jira.Session, error) {
	session, err := m.establish(ctx, username, secret)
	if err != nil {
		return nil, err
	}

	// Hooks run outside the lock: a hook may dispatch requests through the
	// client, which reads the session it just installed.
	for _, hook := range m.hooks {
		if hookErr := hook(ctx, session); hookErr != nil && m.logger != nil {
			m.logger.Warn("post-login hook failed", map[string]interface{}{
				"error": hookErr.Error(),
			})
		}
	}

	return session, nil
}

// establish resolves credentials, performs the mode-specific login, and
// replaces the live session under the lock.
func (m *Manager) establish(ctx context.Context, username, secret string) (*jira.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	username, err := m.resolveUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	secret, err = m.resolveSecret(ctx, username, secret)
	if err != nil {
		return nil, err
	}

	var session *jira.Session

	switch m.mode {
	case jira.AuthModeBasic, jira.AuthModeToken:
		session = &jira.Session{
			Mode:  m.mode,
			Token: jira.BasicToken(username, secret),
		}

	case jira.AuthModeCookie:
		session, err = m.createCookieSession(ctx, username, secret)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %s", jira.ErrUnknownAuthMode, m.mode)
	}

	m.session = session

	return session, nil
}

// Logout clears the live session. In cookie mode the server-side session is
// deleted first, best-effort; basic and token credentials have nothing
// server-side to invalidate.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil && m.session.Mode == jira.AuthModeCookie {
		if err := m.deleteCookieSession(ctx, m.session); err != nil && m.logger != nil {
			m.logger.Warn("deleting server session failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	m.session = nil

	return nil
}

func (m *Manager) resolveUsername(ctx context.Context, username string) (string, error) {
	if username != "" {
		return username, nil
	}

	if m.username != "" {
		return m.username, nil
	}

	if m.provider == nil {
		return "", ErrNoUsername
	}

	username, err := m.provider.Username(ctx)
	if err != nil {
		return "", fmt.Errorf("prompting for username: %w", err)
	}

	if username == "" {
		return "", ErrNoUsername
	}

	return username, nil
}

func (m *Manager) resolveSecret(ctx context.Context, username, secret string) (string, error) {
	if secret != "" {
		return secret, nil
	}

	// The configured token is an API token. It only stands in for a missing
	// secret in token mode; cookie and basic logins need a real password, so
	// they fall through to the provider.
	if m.mode == jira.AuthModeToken && m.token != "" {
		return m.token, nil
	}

	if m.provider == nil {
		return "", ErrNoSecret
	}

	secret, err := m.provider.Secret(ctx, username)
	if err != nil {
		return "", fmt.Errorf("prompting for secret: %w", err)
	}

	if secret == "" {
		return "", ErrNoSecret
	}

	return secret, nil
}

// createCookieSession performs the one unauthenticated POST that trades
// credentials for a session cookie.
func (m *Manager) createCookieSession(ctx context.Context, username, password string) (*jira.Session, error) {
	payload, err := json.Marshal(sessionBody{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encoding session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+constants.SessionPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building session request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", jira.ErrUnreachable, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading session response: %w", err)
	}

	if err := classifyLoginStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	var parsed sessionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing session response: %w", err)
	}

	if parsed.Session.Name == "" || parsed.Session.Value == "" {
		return nil, jira.ErrMalformedSession
	}

	return &jira.Session{
		Mode:  jira.AuthModeCookie,
		Token: parsed.Session.Name + "=" + parsed.Session.Value,
	}, nil
}

// deleteCookieSession tears down the server-side session.
func (m *Manager) deleteCookieSession(ctx context.Context, session *jira.Session) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, m.baseURL+constants.SessionPath, nil)
	if err != nil {
		return fmt.Errorf("building session delete request: %w", err)
	}

	name, value := session.Header()
	req.Header.Set(name, value)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", jira.ErrUnreachable, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnauthorized {
		body, _ := io.ReadAll(resp.Body)

		return jira.NewAPIError(resp.StatusCode, body)
	}

	return nil
}

// classifyLoginStatus maps a login response onto the error taxonomy: 401 is
// a credential rejection, 403 an interactive challenge the client cannot
// satisfy, and everything else follows the shared classification.
func classifyLoginStatus(statusCode int, body []byte) error {
	switch {
	case statusCode < 400:
		return nil
	case statusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", jira.ErrInvalidCredentials, http.StatusText(statusCode))
	case statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: the server requires an interactive login", jira.ErrLoginDenied)
	default:
		return jira.NewAPIError(statusCode, body)
	}
}
