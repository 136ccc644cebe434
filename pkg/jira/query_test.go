package jira_test

import (
	"testing"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/stretchr/testify/assert"
)

func TestSearchOptions_ToValues(t *testing.T) {
	opts := jira.NewSearchOptions("project = PROJ").
		WithFields("summary", "status").
		WithExpand("changelog").
		WithWindow(100, 50)

	values := opts.ToValues()
	assert.Equal(t, "project = PROJ", values.Get("jql"))
	assert.Equal(t, "100", values.Get("startAt"))
	assert.Equal(t, "50", values.Get("maxResults"))
	assert.Equal(t, "summary,status", values.Get("fields"))
	assert.Equal(t, "changelog", values.Get("expand"))
}

func TestSearchOptions_ZeroWindowOmitted(t *testing.T) {
	values := jira.NewSearchOptions("assignee = bob").ToValues()

	assert.Equal(t, "assignee = bob", values.Get("jql"))
	assert.False(t, values.Has("startAt"))
	assert.False(t, values.Has("maxResults"))
	assert.False(t, values.Has("fields"))
	assert.False(t, values.Has("expand"))
}

func TestSearchOptions_WithFieldsReplaces(t *testing.T) {
	opts := jira.NewSearchOptions("x").WithFields("summary").WithFields("status")
	assert.Equal(t, []string{"status"}, opts.Fields)
}

func TestSearchOptions_WithExpandAppends(t *testing.T) {
	opts := jira.NewSearchOptions("x").WithExpand("changelog").WithExpand("names")
	assert.Equal(t, []string{"changelog", "names"}, opts.Expand)
}

func TestPageValues(t *testing.T) {
	values := jira.PageValues(0, 1000)
	assert.Equal(t, "0", values.Get("startAt"))
	assert.Equal(t, "1000", values.Get("maxResults"))
}
