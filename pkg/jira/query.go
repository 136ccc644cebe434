package jira

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchOptions shapes a JQL search request: the query itself, the page
// window, an optional field projection, and optional expansions.
type SearchOptions struct {
	JQL        string
	StartAt    int
	MaxResults int
	Fields     []string
	Expand     []string
}

// NewSearchOptions creates empty search options.
func NewSearchOptions(jql string) *SearchOptions {
	return &SearchOptions{JQL: jql}
}

// WithFields sets the field projection, replacing any previous one.
func (o *SearchOptions) WithFields(fields ...string) *SearchOptions {
	o.Fields = fields

	return o
}

// WithExpand appends expansions.
func (o *SearchOptions) WithExpand(expand ...string) *SearchOptions {
	o.Expand = append(o.Expand, expand...)

	return o
}

// WithWindow sets the page window.
func (o *SearchOptions) WithWindow(startAt, maxResults int) *SearchOptions {
	o.StartAt = startAt
	o.MaxResults = maxResults

	return o
}

// ToValues converts the options to URL query values.
func (o *SearchOptions) ToValues() url.Values {
	values := url.Values{}

	if o.JQL != "" {
		values.Set("jql", o.JQL)
	}

	if o.StartAt > 0 {
		values.Set("startAt", strconv.Itoa(o.StartAt))
	}

	if o.MaxResults > 0 {
		values.Set("maxResults", strconv.Itoa(o.MaxResults))
	}

	if len(o.Fields) > 0 {
		values.Set("fields", strings.Join(o.Fields, ","))
	}

	if len(o.Expand) > 0 {
		values.Set("expand", strings.Join(o.Expand, ","))
	}

	return values
}

// PageValues builds the query values shared by windowed list endpoints.
func PageValues(startAt, maxResults int) url.Values {
	values := url.Values{}
	values.Set("startAt", strconv.Itoa(startAt))
	values.Set("maxResults", strconv.Itoa(maxResults))

	return values
}
