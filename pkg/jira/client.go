package jira

import (
	"context"
	"time"
)

// Client is the programmatic surface of one authenticated Jira connection.
// A client owns exactly one live session and one reference cache; both are
// replaced or cleared only through Login and Logout.
type Client interface {
	// Issues returns the issue CRUD, comment, worklog and transition client.
	Issues() IssuesClient

	// Search returns the JQL search client.
	Search() SearchClient

	// Users returns the user lookup client.
	Users() UsersClient

	// Projects returns the project and issue-type client.
	Projects() ProjectsClient

	// Boards returns the agile board client.
	Boards() BoardsClient

	// Login establishes a session now instead of on first dispatch.
	Login(ctx context.Context) (*Session, error)

	// LoginAs establishes a session with explicit credentials, replacing
	// any session already held.
	LoginAs(ctx context.Context, username, secret string) (*Session, error)

	// Logout tears the session down and clears the reference cache. In
	// cookie mode the server-side session is deleted best-effort first.
	Logout(ctx context.Context) error

	// Session returns the live session, or nil before first login.
	Session() *Session

	// ServerInfo fetches the serverInfo resource.
	ServerInfo(ctx context.Context) (*ServerInfo, error)
}

// IssuesClient maps issue operations onto the dispatcher.
type IssuesClient interface {
	Get(ctx context.Context, key string) (*Issue, error)
	Create(ctx context.Context, request *IssueRequest) (*CreatedIssue, error)
	Update(ctx context.Context, key string, request *IssueRequest) error
	Delete(ctx context.Context, key string) error
	Assign(ctx context.Context, key, username string) error

	Comments(ctx context.Context, key string) (*CommentList, error)
	AddComment(ctx context.Context, key, body string) (*Comment, error)
	UpdateComment(ctx context.Context, key, commentID, body string) (*Comment, error)
	DeleteComment(ctx context.Context, key, commentID string) error

	Worklogs(ctx context.Context, key string) (*WorklogList, error)
	AddWorklog(ctx context.Context, key string, worklog *Worklog) (*Worklog, error)

	Transitions(ctx context.Context, key string) ([]Transition, error)
	Transition(ctx context.Context, key, transitionID string) error
	TransitionByName(ctx context.Context, key, name string) error
}

// SearchClient runs JQL queries.
type SearchClient interface {
	// Search fetches a single page.
	Search(ctx context.Context, opts *SearchOptions) (*SearchResult, error)

	// SearchAll aggregates every page into one sequence in server page order.
	SearchAll(ctx context.Context, jql string, fields []string, opts *PaginationOptions) ([]Issue, error)
}

// UsersClient looks up user accounts.
type UsersClient interface {
	Get(ctx context.Context, username string) (*User, error)

	// AssignableToProject aggregates every user assignable in the project.
	AssignableToProject(ctx context.Context, projectKey string, opts *PaginationOptions) ([]User, error)

	// AssignableToIssue aggregates every user assignable to the issue.
	AssignableToIssue(ctx context.Context, issueKey string, opts *PaginationOptions) ([]User, error)
}

// ProjectsClient looks up projects and their reference data. List, IssueTypes
// and the users client's AssignableToProject are memoized by the reference
// cache until logout.
type ProjectsClient interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, key string) (*Project, error)
	IssueTypes(ctx context.Context) ([]IssueType, error)
	Components(ctx context.Context, key string) ([]Component, error)
	Versions(ctx context.Context, key string) ([]Version, error)
}

// BoardsClient maps the agile API.
type BoardsClient interface {
	List(ctx context.Context, opts *PaginationOptions) ([]Board, error)
	Sprints(ctx context.Context, boardID int, opts *PaginationOptions) ([]Sprint, error)
	Issues(ctx context.Context, boardID int, jql string, opts *PaginationOptions) ([]Issue, error)
}

// Logger is the structured logging interface consumed by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// CredentialProvider supplies credentials that are not otherwise available.
// It is invoked only when a login cannot resolve a username or secret from
// arguments or configuration; the core never performs console I/O itself.
type CredentialProvider interface {
	Username(ctx context.Context) (string, error)
	Secret(ctx context.Context, username string) (string, error)
}

// PostLoginHook runs synchronously after each successful login, in
// registration order, before Login returns. Hook errors are logged, not
// propagated: the session is already established.
type PostLoginHook func(ctx context.Context, session *Session) error

// Config represents client configuration for building a jira.Client.
//
// # Credential resolution
//
// At login time the username is resolved from the login call's explicit
// argument, then Username, then the CredentialProvider. The secret is
// resolved from the explicit argument, then Token (token mode only), then
// the CredentialProvider.
//
// # Retries
//
// The dispatcher never retries on its own except for the single
// re-authentication pass after a 401. RetryMax opts into transport-level
// retries for transient failures (5xx, 429, connection resets) on top of
// that contract.
type Config struct {
	// BaseURL is the root of the Jira deployment, e.g. "https://jira.example.com".
	BaseURL string

	// AuthMode selects cookie, basic, or token authentication. Fixed for
	// the life of the client. Defaults to cookie.
	AuthMode AuthMode

	// Username is the default account name used when a login does not
	// pass one explicitly.
	Username string

	// Token is the default API token for token mode. Cookie and basic
	// logins never reuse it as a password; they prompt instead.
	Token string

	// Credentials supplies interactively-entered credentials when no
	// other source has them. Optional.
	Credentials CredentialProvider

	// PostLogin hooks run in order after each successful login.
	PostLogin []PostLoginHook

	// Cache configures the reference-cache backend. Nil means the
	// in-memory default.
	Cache *CacheConfig

	// HTTPTimeout bounds each HTTP round trip. Zero means the default.
	HTTPTimeout time.Duration

	// RetryMax enables transport retries for transient failures when > 0.
	RetryMax int

	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration

	// Interceptors observes every dispatch: request interceptors run
	// before signing, response interceptors after the round trip. Optional.
	Interceptors *InterceptorChain

	// Debug enables request/response logging when a Logger is set.
	Debug bool

	// Logger is the optional structured logger.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
