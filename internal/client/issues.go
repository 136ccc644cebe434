package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/internal/http"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// IssuesClient implements jira.IssuesClient.
type IssuesClient struct {
	httpClient *http.Client
}

// NewIssuesClient creates a new issues client.
func NewIssuesClient(httpClient *http.Client) *IssuesClient {
	return &IssuesClient{
		httpClient: httpClient,
	}
}

// Get implements jira.IssuesClient.Get.
func (c *IssuesClient) Get(ctx context.Context, key string) (*jira.Issue, error) {
	if key == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting issue: %w", err)
	}

	var issue jira.Issue
	if err := json.Unmarshal(resp.Body, &issue); err != nil {
		return nil, fmt.Errorf("parsing issue response: %w", err)
	}

	return &issue, nil
}

// Create implements jira.IssuesClient.Create.
func (c *IssuesClient) Create(ctx context.Context, request *jira.IssueRequest) (*jira.CreatedIssue, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathPrefix+"/issue", request)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	var created jira.CreatedIssue
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, fmt.Errorf("parsing created issue response: %w", err)
	}

	return &created, nil
}

// Update implements jira.IssuesClient.Update.
func (c *IssuesClient) Update(ctx context.Context, key string, request *jira.IssueRequest) error {
	if key == "" {
		return jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s", constants.APIPathPrefix, key)

	if _, err := c.httpClient.Put(ctx, path, request); err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}

	return nil
}

// Delete implements jira.IssuesClient.Delete.
func (c *IssuesClient) Delete(ctx context.Context, key string) error {
	if key == "" {
		return jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s", constants.APIPathPrefix, key)

	if _, err := c.httpClient.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting issue: %w", err)
	}

	return nil
}

// Assign implements jira.IssuesClient.Assign.
func (c *IssuesClient) Assign(ctx context.Context, key, username string) error {
	if key == "" {
		return jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/assignee", constants.APIPathPrefix, key)
	body := map[string]string{"name": username}

	if _, err := c.httpClient.Put(ctx, path, body); err != nil {
		return fmt.Errorf("assigning issue: %w", err)
	}

	return nil
}

// Comments implements jira.IssuesClient.Comments.
func (c *IssuesClient) Comments(ctx context.Context, key string) (*jira.CommentList, error) {
	if key == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/comment", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	var comments jira.CommentList
	if err := json.Unmarshal(resp.Body, &comments); err != nil {
		return nil, fmt.Errorf("parsing comments response: %w", err)
	}

	return &comments, nil
}

// AddComment implements jira.IssuesClient.AddComment.
func (c *IssuesClient) AddComment(ctx context.Context, key, body string) (*jira.Comment, error) {
	if key == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/comment", constants.APIPathPrefix, key)
	payload := map[string]string{"body": body}

	resp, err := c.httpClient.Post(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	var comment jira.Comment
	if err := json.Unmarshal(resp.Body, &comment); err != nil {
		return nil, fmt.Errorf("parsing comment response: %w", err)
	}

	return &comment, nil
}

// UpdateComment implements jira.IssuesClient.UpdateComment.
func (c *IssuesClient) UpdateComment(ctx context.Context, key, commentID, body string) (*jira.Comment, error) {
	if key == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/comment/%s", constants.APIPathPrefix, key, commentID)
	payload := map[string]string{"body": body}

	resp, err := c.httpClient.Put(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}

	var comment jira.Comment
	if err := json.Unmarshal(resp.Body, &comment); err != nil {
		return nil, fmt.Errorf("parsing comment response: %w", err)
	}

	return &comment, nil
}

// DeleteComment implements jira.IssuesClient.DeleteComment.
func (c *IssuesClient) DeleteComment(ctx context.Context, key, commentID string) error {
	if key == "" {
		return jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/comment/%s", constants.APIPathPrefix, key, commentID)

	if _, err := c.httpClient.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	return nil
}

// Worklogs implements jira.IssuesClient.Worklogs.
func (c *IssuesClient) Worklogs(ctx context.Context, key string) (*jira.WorklogList, error) {
	if key == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/worklog", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing worklogs: %w", err)
	}

	var worklogs jira.WorklogList
	if err := json.Unmarshal(resp.Body, &worklogs); err != nil {
		return nil, fmt.Errorf("parsing worklogs response: %w", err)
	}

	return &worklogs, nil
}

// AddWorklog implements jira.IssuesClient.AddWorklog.
func (c *IssuesClient) AddWorklog(ctx context.Context, key string, worklog *jira.Worklog) (*jira.Worklog, error) {
	if key == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/worklog", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Post(ctx, path, worklog)
	if err != nil {
		return nil, fmt.Errorf("adding worklog: %w", err)
	}

	var created jira.Worklog
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, fmt.Errorf("parsing worklog response: %w", err)
	}

	return &created, nil
}

// Transitions implements jira.IssuesClient.Transitions.
func (c *IssuesClient) Transitions(ctx context.Context, key string) ([]jira.Transition, error) {
	if key == "" {
		return nil, jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/transitions", constants.APIPathPrefix, key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing transitions: %w", err)
	}

	var result struct {
		Transitions []jira.Transition `json:"transitions"`
	}

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing transitions response: %w", err)
	}

	return result.Transitions, nil
}

// Transition implements jira.IssuesClient.Transition.
func (c *IssuesClient) Transition(ctx context.Context, key, transitionID string) error {
	if key == "" {
		return jira.ErrIssueKeyRequired
	}

	path := fmt.Sprintf("%s/issue/%s/transitions", constants.APIPathPrefix, key)
	body := map[string]interface{}{
		"transition": map[string]string{"id": transitionID},
	}

	if _, err := c.httpClient.Post(ctx, path, body); err != nil {
		return fmt.Errorf("transitioning issue: %w", err)
	}

	return nil
}

// TransitionByName implements jira.IssuesClient.TransitionByName. The name
// match is case-insensitive.
func (c *IssuesClient) TransitionByName(ctx context.Context, key, name string) error {
	transitions, err := c.Transitions(ctx, key)
	if err != nil {
		return err
	}

	for _, transition := range transitions {
		if strings.EqualFold(transition.Name, name) {
			return c.Transition(ctx, key, transition.ID)
		}
	}

	return fmt.Errorf("%w: %q on issue %s", jira.ErrTransitionNotFound, name, key)
}
