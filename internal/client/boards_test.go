package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/issuetrack-io/jira-client/internal/client"
	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardsList_StopsOnIsLast(t *testing.T) {
	var offsets []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/agile/1.0/board", r.URL.Path)
		offsets = append(offsets, r.URL.Query().Get("startAt"))

		switch r.URL.Query().Get("startAt") {
		case "0":
			_, _ = w.Write([]byte(`{
				"startAt": 0, "maxResults": 2, "isLast": false,
				"values": [{"id":1,"name":"Alpha","type":"scrum"},{"id":2,"name":"Beta","type":"kanban"}]
			}`))
		case "2":
			// A full page, but the server marks it last.
			_, _ = w.Write([]byte(`{
				"startAt": 2, "maxResults": 2, "isLast": true,
				"values": [{"id":3,"name":"Gamma","type":"scrum"},{"id":4,"name":"Delta","type":"scrum"}]
			}`))
		default:
			t.Errorf("unexpected startAt %q", r.URL.Query().Get("startAt"))
		}
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	boards, err := c.Boards().List(context.Background(), &jira.PaginationOptions{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, boards, 4)
	assert.Equal(t, "Delta", boards[3].Name)
	assert.Equal(t, []string{"0", "2"}, offsets)
}

func TestBoardsList_Limit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"isLast": false,
			"values": [{"id":1,"name":"Alpha"},{"id":2,"name":"Beta"},{"id":3,"name":"Gamma"}]
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	boards, err := c.Boards().List(context.Background(), &jira.PaginationOptions{PageSize: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "Beta", boards[1].Name)
}

func TestBoardsList_MaxPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Full pages forever, never marked last.
		_, _ = w.Write([]byte(`{"isLast": false, "values": [{"id":1,"name":"Alpha"},{"id":2,"name":"Beta"}]}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	_, err := c.Boards().List(context.Background(), &jira.PaginationOptions{PageSize: 2, MaxPages: 4})
	assert.ErrorIs(t, err, jira.ErrPageLimitExceeded)
}

func TestBoardsSprints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/agile/1.0/board/7/sprint", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"isLast": true,
			"values": [{"id":42,"name":"Sprint 1","state":"active","startDate":"2026-08-01T00:00:00.000Z"}]
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	sprints, err := c.Boards().Sprints(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Len(t, sprints, 1)
	assert.Equal(t, "active", sprints[0].State)
}

func TestBoardsIssues(t *testing.T) {
	const total = 5

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/agile/1.0/board/7/issue", r.URL.Path)
		assert.Equal(t, "sprint in openSprints()", r.URL.Query().Get("jql"))

		startAt := 0
		fmt.Sscanf(r.URL.Query().Get("startAt"), "%d", &startAt)

		end := startAt + 3
		if end > total {
			end = total
		}

		issues := ""
		for i := startAt; i < end; i++ {
			if issues != "" {
				issues += ","
			}
			issues += fmt.Sprintf(`{"key":"PROJ-%d"}`, i+1)
		}

		fmt.Fprintf(w, `{"startAt":%d,"maxResults":3,"total":%d,"issues":[%s]}`, startAt, total, issues)
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	issues, err := c.Boards().Issues(context.Background(), 7, "sprint in openSprints()", &jira.PaginationOptions{
		PageSize: 3,
	})
	require.NoError(t, err)
	require.Len(t, issues, total)
	assert.Equal(t, "PROJ-5", issues[4].Key)
}
