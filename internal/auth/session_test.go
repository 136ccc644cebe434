package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/issuetrack-io/jira-client/internal/auth"
	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAs_CookieMode(t *testing.T) {
	var received struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/auth/1/session", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"session":{"name":"JSESSIONID","value":"9F3A7EC2"},"loginInfo":{"loginCount":12}}`))
	}))
	defer server.Close()

	manager := auth.NewManager(server.URL, jira.AuthModeCookie)

	session, err := manager.LoginAs(context.Background(), "bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "bob", received.Username)
	assert.Equal(t, "hunter2", received.Password)
	assert.Equal(t, jira.AuthModeCookie, session.Mode)
	assert.Equal(t, "JSESSIONID=9F3A7EC2", session.Token)
	assert.Same(t, session, manager.Current())
}

func TestLoginAs_BasicMode(t *testing.T) {
	// No server: basic mode builds the session locally.
	manager := auth.NewManager("http://jira.invalid", jira.AuthModeBasic)

	session, err := manager.LoginAs(context.Background(), "bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, jira.AuthModeBasic, session.Mode)
	assert.Equal(t, jira.BasicToken("bob", "hunter2"), session.Token)
}

func TestLoginAs_TokenModeUsesDefaultToken(t *testing.T) {
	manager := auth.NewManager("http://jira.invalid", jira.AuthModeToken,
		auth.WithDefaultUsername("bob"),
		auth.WithDefaultToken("api-token"))

	session, err := manager.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jira.BasicToken("bob", "api-token"), session.Token)
}

func TestLogin_CookieModeIgnoresDefaultToken(t *testing.T) {
	var password string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		password = body.Password

		_, _ = w.Write([]byte(`{"session":{"name":"JSESSIONID","value":"ABC"}}`))
	}))
	defer server.Close()

	// The configured token is an API token, not a password. A cookie login
	// without an explicit secret must prompt rather than send it.
	manager := auth.NewManager(server.URL, jira.AuthModeCookie,
		auth.WithDefaultUsername("bob"),
		auth.WithDefaultToken("api-token"),
		auth.WithCredentialProvider(staticProvider{secret: "hunter2"}))

	_, err := manager.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)
}

func TestLogin_BasicModeIgnoresDefaultToken(t *testing.T) {
	manager := auth.NewManager("http://jira.invalid", jira.AuthModeBasic,
		auth.WithDefaultUsername("bob"),
		auth.WithDefaultToken("api-token"),
		auth.WithCredentialProvider(staticProvider{secret: "hunter2"}))

	session, err := manager.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jira.BasicToken("bob", "hunter2"), session.Token)
}

func TestLoginAs_RejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMessages":["Login failed"]}`))
	}))
	defer server.Close()

	manager := auth.NewManager(server.URL, jira.AuthModeCookie)

	_, err := manager.LoginAs(context.Background(), "bob", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, jira.ErrInvalidCredentials)

	// A failed login leaves no session behind.
	assert.Nil(t, manager.Current())
}

func TestLoginAs_CaptchaChallenge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Authentication-Denied-Reason", "CAPTCHA_CHALLENGE")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	manager := auth.NewManager(server.URL, jira.AuthModeCookie)

	_, err := manager.LoginAs(context.Background(), "bob", "hunter2")
	require.Error(t, err)
	assert.ErrorIs(t, err, jira.ErrLoginDenied)
}

func TestLoginAs_MalformedSessionResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"session":{}}`))
	}))
	defer server.Close()

	manager := auth.NewManager(server.URL, jira.AuthModeCookie)

	_, err := manager.LoginAs(context.Background(), "bob", "hunter2")
	assert.ErrorIs(t, err, jira.ErrMalformedSession)
}

func TestLoginAs_ServerUnreachable(t *testing.T) {
	manager := auth.NewManager("http://127.0.0.1:1", jira.AuthModeCookie)

	_, err := manager.LoginAs(context.Background(), "bob", "hunter2")
	assert.ErrorIs(t, err, jira.ErrUnreachable)
}

func TestLoginAs_MissingCredentials(t *testing.T) {
	manager := auth.NewManager("http://jira.invalid", jira.AuthModeBasic)

	_, err := manager.Login(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoUsername)

	manager = auth.NewManager("http://jira.invalid", jira.AuthModeBasic,
		auth.WithDefaultUsername("bob"))

	_, err = manager.Login(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoSecret)
}

// staticProvider satisfies credential lookups without a terminal.
type staticProvider struct {
	username string
	secret   string
}

func (p staticProvider) Username(context.Context) (string, error) { return p.username, nil }

func (p staticProvider) Secret(context.Context, string) (string, error) { return p.secret, nil }

func TestLoginAs_CredentialProviderFallback(t *testing.T) {
	manager := auth.NewManager("http://jira.invalid", jira.AuthModeBasic,
		auth.WithCredentialProvider(staticProvider{username: "carol", secret: "pw"}))

	session, err := manager.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jira.BasicToken("carol", "pw"), session.Token)
}

func TestLoginAs_HooksRunInOrder(t *testing.T) {
	var order []string

	manager := auth.NewManager("http://jira.invalid", jira.AuthModeBasic,
		auth.WithPostLoginHooks(
			func(_ context.Context, s *jira.Session) error {
				order = append(order, "first:"+string(s.Mode))

				return nil
			},
			func(_ context.Context, _ *jira.Session) error {
				order = append(order, "second")

				return nil
			},
		))

	_, err := manager.LoginAs(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, []string{"first:basic", "second"}, order)
}

func TestLoginAs_HookCanUseSession(t *testing.T) {
	// A hook reading back through the manager must not deadlock.
	manager := auth.NewManager("http://jira.invalid", jira.AuthModeBasic)

	done := make(chan struct{})

	managerHook := auth.WithPostLoginHooks(func(_ context.Context, s *jira.Session) error {
		assert.Same(t, s, manager.Current())
		close(done)

		return nil
	})
	managerHook(manager)

	_, err := manager.LoginAs(context.Background(), "bob", "pw")
	require.NoError(t, err)
	<-done
}

func TestLogout_CookieMode(t *testing.T) {
	var deleted bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"session":{"name":"JSESSIONID","value":"ABC"}}`))
		case http.MethodDelete:
			deleted = true

			assert.Equal(t, "JSESSIONID=ABC", r.Header.Get("Cookie"))
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	manager := auth.NewManager(server.URL, jira.AuthModeCookie)

	_, err := manager.LoginAs(context.Background(), "bob", "pw")
	require.NoError(t, err)

	require.NoError(t, manager.Logout(context.Background()))
	assert.True(t, deleted)
	assert.Nil(t, manager.Current())
}

func TestLogout_ServerFailureStillClears(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"session":{"name":"JSESSIONID","value":"ABC"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	manager := auth.NewManager(server.URL, jira.AuthModeCookie)

	_, err := manager.LoginAs(context.Background(), "bob", "pw")
	require.NoError(t, err)

	// Server-side teardown is best-effort.
	require.NoError(t, manager.Logout(context.Background()))
	assert.Nil(t, manager.Current())
}
