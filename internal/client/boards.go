package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/internal/http"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// BoardsClient implements jira.BoardsClient against the agile API.
type BoardsClient struct {
	httpClient *http.Client
}

// NewBoardsClient creates a new boards client.
func NewBoardsClient(httpClient *http.Client) *BoardsClient {
	return &BoardsClient{
		httpClient: httpClient,
	}
}

// List implements jira.BoardsClient.List.
func (c *BoardsClient) List(ctx context.Context, opts *jira.PaginationOptions) ([]jira.Board, error) {
	boards, err := collectBoardPages[jira.Board](ctx, c, constants.AgilePathPrefix+"/board", nil, opts)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}

	return boards, nil
}

// Sprints implements jira.BoardsClient.Sprints.
func (c *BoardsClient) Sprints(ctx context.Context, boardID int, opts *jira.PaginationOptions) ([]jira.Sprint, error) {
	path := fmt.Sprintf("%s/board/%d/sprint", constants.AgilePathPrefix, boardID)

	sprints, err := collectBoardPages[jira.Sprint](ctx, c, path, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}

	return sprints, nil
}

// Issues implements jira.BoardsClient.Issues. The board issue listing pages
// the same way the JQL search does, with a reported total.
func (c *BoardsClient) Issues(ctx context.Context, boardID int, jql string, opts *jira.PaginationOptions) ([]jira.Issue, error) {
	path := fmt.Sprintf("%s/board/%d/issue", constants.AgilePathPrefix, boardID)

	fetch := func(ctx context.Context, startAt, maxResults int) ([]jira.Issue, int, error) {
		query := jira.PageValues(startAt, maxResults)
		if jql != "" {
			query.Set("jql", jql)
		}

		resp, err := c.httpClient.Get(ctx, path, query)
		if err != nil {
			return nil, 0, err
		}

		var result jira.SearchResult
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, 0, fmt.Errorf("parsing board issues response: %w", err)
		}

		return result.Issues, result.Total, nil
	}

	issues, err := jira.CollectTotal(ctx, fetch, opts)
	if err != nil {
		return nil, fmt.Errorf("listing board issues: %w", err)
	}

	return issues, nil
}

// collectBoardPages aggregates a values/isLast style agile listing: the
// server marks the last page explicitly, and a short page is treated the
// same way as a fallback.
func collectBoardPages[T any](ctx context.Context, c *BoardsClient, path string, extra map[string]string, opts *jira.PaginationOptions) ([]T, error) {
	pageSize := jira.DefaultPageSize
	if opts != nil && opts.PageSize > 0 {
		pageSize = opts.PageSize
	}

	var collected []T

	for startAt, pages := 0, 0; ; startAt += pageSize {
		query := jira.PageValues(startAt, pageSize)
		for key, value := range extra {
			query.Set(key, value)
		}

		resp, err := c.httpClient.Get(ctx, path, query)
		if err != nil {
			return nil, fmt.Errorf("fetching board page at offset %d: %w", startAt, err)
		}

		var page jira.BoardPage[T]
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, fmt.Errorf("parsing board page response: %w", err)
		}

		collected = append(collected, page.Values...)
		pages++

		if opts != nil && opts.Limit > 0 && len(collected) >= opts.Limit {
			return collected[:opts.Limit], nil
		}

		if page.IsLast || len(page.Values) < pageSize {
			return collected, nil
		}

		if opts != nil && opts.MaxPages > 0 && pages >= opts.MaxPages {
			return collected, fmt.Errorf("%w: %d pages", jira.ErrPageLimitExceeded, opts.MaxPages)
		}
	}
}
