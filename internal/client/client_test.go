package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/issuetrack-io/jira-client/internal/client"
	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := client.New(ctx, nil)
	assert.ErrorIs(t, err, jira.ErrConfigRequired)

	_, err = client.New(ctx, &jira.Config{})
	assert.ErrorIs(t, err, client.ErrBaseURLRequired)
}

func TestServerInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/serverInfo", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"baseUrl": "https://jira.example.com",
			"version": "9.12.0",
			"deploymentType": "Server",
			"buildNumber": 9120000,
			"serverTitle": "Example Jira"
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	info, err := c.ServerInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9.12.0", info.Version)
	assert.Equal(t, 9120000, info.BuildNumber)
	assert.Equal(t, "Example Jira", info.ServerTitle)
}

func TestProjectList_CachedUntilLogout(t *testing.T) {
	var fetches int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/project", r.URL.Path)
		fetches++

		_, _ = w.Write([]byte(`[{"id":"10000","key":"PROJ","name":"Project"}]`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		projects, err := c.Projects().List(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "PROJ", projects[0].Key)
	}

	// Only the first call reaches the server.
	assert.Equal(t, 1, fetches)

	// Logout empties the cache, so the next call fetches again.
	require.NoError(t, c.Logout(ctx))

	_, err := c.Projects().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestIssueTypes_Cached(t *testing.T) {
	var fetches int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/issuetype", r.URL.Path)
		fetches++

		_, _ = w.Write([]byte(`[{"id":"1","name":"Bug","subtask":false}]`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		issueTypes, err := c.Projects().IssueTypes(ctx)
		require.NoError(t, err)
		require.Len(t, issueTypes, 1)
		assert.Equal(t, "Bug", issueTypes[0].Name)
	}

	assert.Equal(t, 1, fetches)
}

func TestLogin_PropagatesCredentialErrors(t *testing.T) {
	c := client.NewTestClient("http://jira.invalid")

	_, err := c.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging in")
}
