package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/internal/http"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// SearchClient implements jira.SearchClient.
type SearchClient struct {
	httpClient *http.Client
}

// NewSearchClient creates a new search client.
func NewSearchClient(httpClient *http.Client) *SearchClient {
	return &SearchClient{
		httpClient: httpClient,
	}
}

// Search implements jira.SearchClient.Search.
func (c *SearchClient) Search(ctx context.Context, opts *jira.SearchOptions) (*jira.SearchResult, error) {
	if opts == nil || opts.JQL == "" {
		return nil, jira.ErrJQLRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathPrefix+"/search", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}

	var result jira.SearchResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &result, nil
}

// SearchAll implements jira.SearchClient.SearchAll. Pages are aggregated with
// the total-driven rule: the next offset is the accumulated length, so a page
// thinned by permission filtering still advances correctly.
func (c *SearchClient) SearchAll(ctx context.Context, jql string, fields []string, opts *jira.PaginationOptions) ([]jira.Issue, error) {
	if jql == "" {
		return nil, jira.ErrJQLRequired
	}

	fetch := func(ctx context.Context, startAt, maxResults int) ([]jira.Issue, int, error) {
		searchOpts := jira.NewSearchOptions(jql).
			WithFields(fields...).
			WithWindow(startAt, maxResults)

		result, err := c.Search(ctx, searchOpts)
		if err != nil {
			return nil, 0, err
		}

		return result.Issues, result.Total, nil
	}

	issues, err := jira.CollectTotal(ctx, fetch, opts)
	if err != nil {
		return nil, fmt.Errorf("aggregating search results: %w", err)
	}

	return issues, nil
}
