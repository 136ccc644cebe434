package jiraclient_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/issuetrack-io/jira-client/pkg/jiraclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := jiraclient.New(ctx, nil)
	assert.ErrorIs(t, err, jira.ErrConfigRequired)

	_, err = jiraclient.New(ctx, &jira.Config{})
	assert.ErrorIs(t, err, jira.ErrBaseURLRequired)
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A trailing slash in the config must not double up in paths.
		assert.Equal(t, "/rest/api/2/serverInfo", r.URL.Path)
		_, _ = w.Write([]byte(`{"version":"9.12.0"}`))
	}))
	defer server.Close()

	config := &jira.Config{
		BaseURL:  server.URL + "/",
		AuthMode: jira.AuthModeToken,
		Username: "bob",
		Token:    "api-token",
	}

	c, err := jiraclient.New(context.Background(), config)
	require.NoError(t, err)

	_, err = c.ServerInfo(context.Background())
	require.NoError(t, err)

	// The caller's config is left untouched.
	assert.Equal(t, server.URL+"/", config.BaseURL)
}

func TestNew_DoesNotMutateConfig(t *testing.T) {
	config := &jira.Config{BaseURL: "jira.example.com/"}

	_, err := jiraclient.New(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, "jira.example.com/", config.BaseURL)
}

func TestNewWithBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := jiraclient.NewWithBasicAuth(context.Background(), server.URL, "bob", "hunter2")
	require.NoError(t, err)

	session := c.Session()
	require.NotNil(t, session)
	assert.Equal(t, jira.AuthModeBasic, session.Mode)

	credentials := base64.StdEncoding.EncodeToString([]byte("bob:hunter2"))
	header, value := session.Header()
	assert.Equal(t, "Authorization", header)
	assert.Equal(t, "Basic "+credentials, value)
}

func TestNewWithPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/auth/1/session", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bob", body.Username)

		_, _ = w.Write([]byte(`{"session":{"name":"JSESSIONID","value":"ABC123"}}`))
	}))
	defer server.Close()

	c, err := jiraclient.NewWithPassword(context.Background(), server.URL, "bob", "hunter2")
	require.NoError(t, err)

	session := c.Session()
	require.NotNil(t, session)
	assert.Equal(t, jira.AuthModeCookie, session.Mode)
	assert.Equal(t, "JSESSIONID=ABC123", session.Token)
}

func TestNewWithPassword_RejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := jiraclient.NewWithPassword(context.Background(), server.URL, "bob", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, jira.ErrInvalidCredentials)
}

func TestNew_ConfigInterceptors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trace-1", r.Header.Get("X-Trace-ID"))
		_, _ = w.Write([]byte(`{"version":"9.12.0"}`))
	}))
	defer server.Close()

	var observed []string

	chain := jira.NewInterceptorChain()
	chain.AddRequestInterceptor(func(_ context.Context, req *jira.InterceptedRequest) error {
		req.Headers.Set("X-Trace-ID", "trace-1")
		return nil
	})
	chain.AddResponseInterceptor(func(_ context.Context, req *jira.InterceptedRequest, resp *jira.InterceptedResponse) error {
		observed = append(observed, fmt.Sprintf("%s %s %d", req.Method, req.Path, resp.StatusCode))
		return nil
	})

	c, err := jiraclient.New(context.Background(), &jira.Config{
		BaseURL:      server.URL,
		AuthMode:     jira.AuthModeToken,
		Username:     "bob",
		Token:        "api-token",
		Interceptors: chain,
	})
	require.NoError(t, err)

	_, err = c.ServerInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /rest/api/2/serverInfo 200"}, observed)
}

func TestNewWithToken(t *testing.T) {
	c, err := jiraclient.NewWithToken(context.Background(), "https://jira.example.com", "bob", "api-token")
	require.NoError(t, err)

	session := c.Session()
	require.NotNil(t, session)
	assert.Equal(t, jira.AuthModeToken, session.Mode)
}
