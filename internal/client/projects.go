package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/internal/http"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// ProjectsClient implements jira.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
	refs       *referenceCache
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client, refs *referenceCache) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
		refs:       refs,
	}
}

// List implements jira.ProjectsClient.List. The result is memoized until
// logout.
func (c *ProjectsClient) List(ctx context.Context) ([]jira.Project, error) {
	return cachedFetch(ctx, c.refs, refKeyProjects, func(ctx context.Context) ([]jira.Project, error) {
		resp, err := c.httpClient.Get(ctx, constants.APIPathPrefix+"/project", nil)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}

		var projects []jira.Project
		if err := json.Unmarshal(resp.Body, &projects); err != nil {
			return nil, fmt.Errorf("parsing projects response: %w", err)
		}

		return projects, nil
	})
}

// Get implements jira.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, key string) (*jira.Project, error) {
	if key == "" {
		return nil, jira.ErrProjectKeyRequired
	}

	path := fmt.Sprintf("%s/project/%s", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	var project jira.Project
	if err := json.Unmarshal(resp.Body, &project); err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return &project, nil
}

// IssueTypes implements jira.ProjectsClient.IssueTypes. The result is
// memoized until logout.
func (c *ProjectsClient) IssueTypes(ctx context.Context) ([]jira.IssueType, error) {
	return cachedFetch(ctx, c.refs, refKeyIssueTypes, func(ctx context.Context) ([]jira.IssueType, error) {
		resp, err := c.httpClient.Get(ctx, constants.APIPathPrefix+"/issuetype", nil)
		if err != nil {
			return nil, fmt.Errorf("listing issue types: %w", err)
		}

		var issueTypes []jira.IssueType
		if err := json.Unmarshal(resp.Body, &issueTypes); err != nil {
			return nil, fmt.Errorf("parsing issue types response: %w", err)
		}

		return issueTypes, nil
	})
}

// Components implements jira.ProjectsClient.Components.
func (c *ProjectsClient) Components(ctx context.Context, key string) ([]jira.Component, error) {
	if key == "" {
		return nil, jira.ErrProjectKeyRequired
	}

	path := fmt.Sprintf("%s/project/%s/components", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}

	var components []jira.Component
	if err := json.Unmarshal(resp.Body, &components); err != nil {
		return nil, fmt.Errorf("parsing components response: %w", err)
	}

	return components, nil
}

// Versions implements jira.ProjectsClient.Versions.
func (c *ProjectsClient) Versions(ctx context.Context, key string) ([]jira.Version, error) {
	if key == "" {
		return nil, jira.ErrProjectKeyRequired
	}

	path := fmt.Sprintf("%s/project/%s/versions", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	var versions []jira.Version
	if err := json.Unmarshal(resp.Body, &versions); err != nil {
		return nil, fmt.Errorf("parsing versions response: %w", err)
	}

	return versions, nil
}
