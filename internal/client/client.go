// Package client implements the jira.Client interface: it wires the session
// manager, the request dispatcher, the reference cache, and the per-resource
// clients into one instance-owned unit.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/issuetrack-io/jira-client/internal/auth"
	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/internal/http"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Client implements the jira.Client interface.
type Client struct {
	httpClient *http.Client
	sessions   *auth.Manager
	baseURL    string
	logger     jira.Logger
	refs       *referenceCache

	// Resource clients
	issues   jira.IssuesClient
	search   jira.SearchClient
	users    jira.UsersClient
	projects jira.ProjectsClient
	boards   jira.BoardsClient
}

// New creates a new Jira client from configuration.
func New(ctx context.Context, config *jira.Config) (*Client, error) {
	if config == nil {
		return nil, jira.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	sessions := createSessionManager(config)

	cache, err := jira.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating reference cache: %w", err)
	}

	httpClient := http.NewClient(config.BaseURL, sessions, createHTTPOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		sessions:   sessions,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
		refs:       newReferenceCache(cache),
	}

	client.initializeResourceClients()

	return client, nil
}

// createSessionManager builds the session manager from config.
func createSessionManager(config *jira.Config) *auth.Manager {
	opts := []auth.Option{
		auth.WithDefaultUsername(config.Username),
		auth.WithDefaultToken(config.Token),
	}

	if config.Credentials != nil {
		opts = append(opts, auth.WithCredentialProvider(config.Credentials))
	}

	if len(config.PostLogin) > 0 {
		opts = append(opts, auth.WithPostLoginHooks(config.PostLogin...))
	}

	if config.Logger != nil {
		opts = append(opts, auth.WithLogger(config.Logger))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, auth.WithHTTPTimeout(config.HTTPTimeout))
	}

	return auth.NewManager(config.BaseURL, config.AuthMode, opts...)
}

// createHTTPOptions builds dispatcher options from config.
func createHTTPOptions(config *jira.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.issues = NewIssuesClient(c.httpClient)
	c.search = NewSearchClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient, c.refs)
	c.projects = NewProjectsClient(c.httpClient, c.refs)
	c.boards = NewBoardsClient(c.httpClient)
}

// Issues implements jira.Client.Issues.
func (c *Client) Issues() jira.IssuesClient {
	return c.issues
}

// Search implements jira.Client.Search.
func (c *Client) Search() jira.SearchClient {
	return c.search
}

// Users implements jira.Client.Users.
func (c *Client) Users() jira.UsersClient {
	return c.users
}

// Projects implements jira.Client.Projects.
func (c *Client) Projects() jira.ProjectsClient {
	return c.projects
}

// Boards implements jira.Client.Boards.
func (c *Client) Boards() jira.BoardsClient {
	return c.boards
}

// Login implements jira.Client.Login.
func (c *Client) Login(ctx context.Context) (*jira.Session, error) {
	session, err := c.sessions.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return session, nil
}

// LoginAs establishes a session with explicit credentials, overriding the
// configured defaults for this login only.
func (c *Client) LoginAs(ctx context.Context, username, secret string) (*jira.Session, error) {
	session, err := c.sessions.LoginAs(ctx, username, secret)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return session, nil
}

// Logout implements jira.Client.Logout. The session and every reference
// cache slot are cleared together.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	if err := c.refs.clear(ctx); err != nil {
		return fmt.Errorf("clearing reference cache: %w", err)
	}

	return nil
}

// Session implements jira.Client.Session.
func (c *Client) Session() *jira.Session {
	return c.sessions.Current()
}

// ServerInfo implements jira.Client.ServerInfo.
func (c *Client) ServerInfo(ctx context.Context) (*jira.ServerInfo, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathPrefix+"/serverInfo", nil)
	if err != nil {
		return nil, fmt.Errorf("getting server info: %w", err)
	}

	var info jira.ServerInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("parsing server info response: %w", err)
	}

	return &info, nil
}
