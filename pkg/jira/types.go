package jira

import "encoding/base64"

// AuthMode selects how a session is established and how requests are signed.
type AuthMode string

const (
	// AuthModeCookie authenticates once against the session resource and
	// signs subsequent requests with the returned session cookie.
	AuthModeCookie AuthMode = "cookie"

	// AuthModeBasic signs every request with HTTP basic authentication
	// built from username and password.
	AuthModeBasic AuthMode = "basic"

	// AuthModeToken signs every request with HTTP basic authentication
	// built from username and a pre-issued API token.
	AuthModeToken AuthMode = "token"
)

// Credentials holds a username and its secret. The secret is a password in
// cookie and basic mode, or an API token in token mode. Credentials are never
// persisted beyond process lifetime.
type Credentials struct {
	Username string
	Secret   string
}

// Session is the opaque, mode-specific signing material for one client
// instance. In cookie mode Token is the "name=value" session cookie returned
// by the server; in basic and token mode it is base64("username:secret").
// A Session is never mutated in place; re-authentication replaces it wholesale.
type Session struct {
	Mode  AuthMode
	Token string
}

// Header returns the header name and value used to sign a request with this
// session.
func (s *Session) Header() (name, value string) {
	if s.Mode == AuthModeCookie {
		return "Cookie", s.Token
	}

	return "Authorization", "Basic " + s.Token
}

// BasicToken encodes credentials the way basic and token mode sessions expect.
func BasicToken(username, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + secret))
}

// Project represents a Jira project.
type Project struct {
	ID   string `json:"id"   yaml:"id"`
	Key  string `json:"key"  yaml:"key"`
	Name string `json:"name" yaml:"name"`
	Self string `json:"self" yaml:"self"`
}

// IssueType represents an issue type such as Bug or Task.
type IssueType struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Subtask     bool   `json:"subtask"     yaml:"subtask"`
}

// User represents a Jira user account.
type User struct {
	Name         string `json:"name"         yaml:"name"`
	Key          string `json:"key"          yaml:"key"`
	EmailAddress string `json:"emailAddress" yaml:"emailAddress"`
	DisplayName  string `json:"displayName"  yaml:"displayName"`
	Active       bool   `json:"active"       yaml:"active"`
}

// Issue represents a Jira issue. Fields is deliberately opaque: the server
// defines the field schema and callers pass field payloads through unchanged.
type Issue struct {
	ID     string                 `json:"id"     yaml:"id"`
	Key    string                 `json:"key"    yaml:"key"`
	Self   string                 `json:"self"   yaml:"self"`
	Fields map[string]interface{} `json:"fields" yaml:"fields"`
}

// IssueRequest is the body for issue create and update calls. Fields is the
// same opaque pass-through payload the server returns on reads.
type IssueRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// CreatedIssue is the server's reference to a newly created issue.
type CreatedIssue struct {
	ID   string `json:"id"   yaml:"id"`
	Key  string `json:"key"  yaml:"key"`
	Self string `json:"self" yaml:"self"`
}

// Comment represents a comment on an issue.
type Comment struct {
	ID      string `json:"id"      yaml:"id"`
	Self    string `json:"self"    yaml:"self"`
	Body    string `json:"body"    yaml:"body"`
	Author  User   `json:"author"  yaml:"author"`
	Created string `json:"created" yaml:"created"`
	Updated string `json:"updated" yaml:"updated"`
}

// CommentList is the server's paged comment collection for one issue.
type CommentList struct {
	StartAt    int       `json:"startAt"    yaml:"startAt"`
	MaxResults int       `json:"maxResults" yaml:"maxResults"`
	Total      int       `json:"total"      yaml:"total"`
	Comments   []Comment `json:"comments"   yaml:"comments"`
}

// Worklog represents time logged against an issue.
type Worklog struct {
	ID               string `json:"id"               yaml:"id"`
	Self             string `json:"self"             yaml:"self"`
	Author           User   `json:"author"           yaml:"author"`
	Comment          string `json:"comment"          yaml:"comment"`
	Started          string `json:"started"          yaml:"started"`
	TimeSpent        string `json:"timeSpent"        yaml:"timeSpent"`
	TimeSpentSeconds int    `json:"timeSpentSeconds" yaml:"timeSpentSeconds"`
}

// WorklogList is the server's worklog collection for one issue.
type WorklogList struct {
	StartAt    int       `json:"startAt"    yaml:"startAt"`
	MaxResults int       `json:"maxResults" yaml:"maxResults"`
	Total      int       `json:"total"      yaml:"total"`
	Worklogs   []Worklog `json:"worklogs"   yaml:"worklogs"`
}

// Transition is a named state-machine move available on an issue.
type Transition struct {
	ID   string           `json:"id"   yaml:"id"`
	Name string           `json:"name" yaml:"name"`
	To   TransitionTarget `json:"to"   yaml:"to"`
}

// TransitionTarget is the status an issue lands in after a transition.
type TransitionTarget struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// SearchResult is one page of a JQL search response.
type SearchResult struct {
	StartAt    int     `json:"startAt"    yaml:"startAt"`
	MaxResults int     `json:"maxResults" yaml:"maxResults"`
	Total      int     `json:"total"      yaml:"total"`
	Issues     []Issue `json:"issues"     yaml:"issues"`
}

// Component represents a project component.
type Component struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Version represents a project version.
type Version struct {
	ID       string `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"`
	Released bool   `json:"released" yaml:"released"`
	Archived bool   `json:"archived" yaml:"archived"`
}

// Board represents an agile board.
type Board struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Sprint represents a sprint on a scrum board.
type Sprint struct {
	ID        int    `json:"id"        yaml:"id"`
	Name      string `json:"name"      yaml:"name"`
	State     string `json:"state"     yaml:"state"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate"   yaml:"endDate"`
}

// BoardPage is one page of an agile board-style listing. Agile endpoints page
// with values/isLast rather than the REST API's total-driven shape.
type BoardPage[T any] struct {
	StartAt    int  `json:"startAt"    yaml:"startAt"`
	MaxResults int  `json:"maxResults" yaml:"maxResults"`
	IsLast     bool `json:"isLast"     yaml:"isLast"`
	Values     []T  `json:"values"     yaml:"values"`
}

// ServerInfo represents the serverInfo resource.
type ServerInfo struct {
	BaseURL        string `json:"baseUrl"        yaml:"baseUrl"`
	Version        string `json:"version"        yaml:"version"`
	DeploymentType string `json:"deploymentType" yaml:"deploymentType"`
	BuildNumber    int    `json:"buildNumber"    yaml:"buildNumber"`
	ServerTitle    string `json:"serverTitle"    yaml:"serverTitle"`
}
