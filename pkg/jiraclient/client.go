// Package jiraclient provides the main entry point for creating Jira API clients
package jiraclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/issuetrack-io/jira-client/internal/client"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// New creates a new Jira API client from a config.
func New(ctx context.Context, config *jira.Config) (jira.Client, error) {
	if config == nil {
		return nil, jira.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, jira.ErrBaseURLRequired
	}

	// Normalize base URL without touching the caller's config
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	normalized := *config
	normalized.BaseURL = baseURL

	// Use the internal client implementation
	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithPassword creates a client that logs in with username/password and
// holds a cookie session.
func NewWithPassword(ctx context.Context, baseURL, username, password string) (jira.Client, error) {
	c, err := New(ctx, &jira.Config{
		BaseURL:  baseURL,
		AuthMode: jira.AuthModeCookie,
		Username: username,
		Token:    password,
	})
	if err != nil {
		return nil, err
	}

	if _, err := c.LoginAs(ctx, username, password); err != nil {
		return nil, fmt.Errorf("logging in as %q: %w", username, err)
	}

	return c, nil
}

// NewWithBasicAuth creates a client that sends the username/password pair as
// a Basic Authorization header on every request.
func NewWithBasicAuth(ctx context.Context, baseURL, username, password string) (jira.Client, error) {
	c, err := New(ctx, &jira.Config{
		BaseURL:  baseURL,
		AuthMode: jira.AuthModeBasic,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	if _, err := c.LoginAs(ctx, username, password); err != nil {
		return nil, fmt.Errorf("logging in as %q: %w", username, err)
	}

	return c, nil
}

// NewWithToken creates a client that authenticates with a personal API token
// carried in a Basic Authorization header.
func NewWithToken(ctx context.Context, baseURL, username, token string) (jira.Client, error) {
	c, err := New(ctx, &jira.Config{
		BaseURL:  baseURL,
		AuthMode: jira.AuthModeToken,
		Username: username,
		Token:    token,
	})
	if err != nil {
		return nil, err
	}

	if _, err := c.Login(ctx); err != nil {
		return nil, fmt.Errorf("logging in as %q: %w", username, err)
	}

	return c, nil
}
