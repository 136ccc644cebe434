package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/internal/http"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// UsersClient implements jira.UsersClient.
type UsersClient struct {
	httpClient *http.Client
	refs       *referenceCache
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, refs *referenceCache) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
		refs:       refs,
	}
}

// Get implements jira.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, username string) (*jira.User, error) {
	if username == "" {
		return nil, jira.ErrUsernameRequired
	}

	query := url.Values{}
	query.Set("username", username)

	resp, err := c.httpClient.Get(ctx, constants.APIPathPrefix+"/user", query)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user jira.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// AssignableToProject implements jira.UsersClient.AssignableToProject. The
// aggregated list is memoized per project until logout.
func (c *UsersClient) AssignableToProject(ctx context.Context, projectKey string, opts *jira.PaginationOptions) ([]jira.User, error) {
	if projectKey == "" {
		return nil, jira.ErrProjectKeyRequired
	}

	return cachedFetch(ctx, c.refs, refKeyAssignable+projectKey, func(ctx context.Context) ([]jira.User, error) {
		return c.assignable(ctx, "project", projectKey, opts)
	})
}

// AssignableToIssue implements jira.UsersClient.AssignableToIssue.
func (c *UsersClient) AssignableToIssue(ctx context.Context, issueKey string, opts *jira.PaginationOptions) ([]jira.User, error) {
	if issueKey == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	return c.assignable(ctx, "issueKey", issueKey, opts)
}

// assignable aggregates the assignable-user search. The endpoint reports no
// total, so pages are collected until the first short page.
func (c *UsersClient) assignable(ctx context.Context, param, key string, opts *jira.PaginationOptions) ([]jira.User, error) {
	fetch := func(ctx context.Context, startAt, maxResults int) ([]jira.User, int, error) {
		query := jira.PageValues(startAt, maxResults)
		query.Set(param, key)

		resp, err := c.httpClient.Get(ctx, constants.APIPathPrefix+"/user/assignable/search", query)
		if err != nil {
			return nil, 0, fmt.Errorf("searching assignable users: %w", err)
		}

		var users []jira.User
		if err := json.Unmarshal(resp.Body, &users); err != nil {
			return nil, 0, fmt.Errorf("parsing assignable users response: %w", err)
		}

		return users, 0, nil
	}

	users, err := jira.CollectUntilShortPage(ctx, fetch, opts)
	if err != nil {
		return nil, fmt.Errorf("aggregating assignable users: %w", err)
	}

	return users, nil
}
