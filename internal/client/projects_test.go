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

func TestProjectsGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/project/PROJ", r.URL.Path)

		_, _ = w.Write([]byte(`{"id":"10000","key":"PROJ","name":"Project"}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	project, err := c.Projects().Get(context.Background(), "PROJ")
	require.NoError(t, err)
	assert.Equal(t, "Project", project.Name)
}

func TestProjectsGet_EmptyKey(t *testing.T) {
	c := client.NewTestClient("http://jira.invalid")

	_, err := c.Projects().Get(context.Background(), "")
	assert.ErrorIs(t, err, jira.ErrProjectKeyRequired)
}

func TestProjectsComponents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/project/PROJ/components", r.URL.Path)

		_, _ = w.Write([]byte(`[{"id":"100","name":"backend"},{"id":"101","name":"frontend"}]`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	components, err := c.Projects().Components(context.Background(), "PROJ")
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, "frontend", components[1].Name)
}

func TestProjectsVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/project/PROJ/versions", r.URL.Path)

		_, _ = w.Write([]byte(`[{"id":"200","name":"1.0","released":true},{"id":"201","name":"1.1","released":false}]`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	versions, err := c.Projects().Versions(context.Background(), "PROJ")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.True(t, versions[0].Released)
	assert.False(t, versions[1].Released)
}

func TestProjectsList_ServesStaleOnCacheWriteFailure(t *testing.T) {
	var fetches int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte(`[{"id":"10000","key":"PROJ","name":"Project"}]`))
	}))
	defer server.Close()

	// A disabled cache makes every Set fail, so the client degrades to
	// fetching through on each call.
	c := client.NewTestClientWithCache(server.URL, jira.NewNoOpCache())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		projects, err := c.Projects().List(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
	}

	assert.Equal(t, 2, fetches)
}
