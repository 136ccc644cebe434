// Package http implements the authenticated request dispatcher: it signs
// each call from the live session, classifies responses, and recovers once
// from session expiry before propagating failures.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// SessionSource supplies the session a request is signed with and
// re-establishes it after expiry. A nil source dispatches unauthenticated.
type SessionSource interface {
	Current() *jira.Session
	Login(ctx context.Context) (*jira.Session, error)
}

// Request describes a single dispatch.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a completed round trip.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client dispatches authenticated calls against one base URL.
type Client struct {
	baseURL      string
	sessions     SessionSource
	httpClient   *retryablehttp.Client
	logger       jira.Logger
	debug        bool
	userAgent    string
	interceptors *jira.InterceptorChain
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger jira.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig opts into transport-level retries for transient failures
// (5xx, 429, connection errors). Without it the dispatcher performs no retry
// beyond the single re-authentication pass.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithTimeout bounds each HTTP round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs an interceptor chain around each dispatch.
func WithInterceptors(chain *jira.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a dispatcher for the given base URL. The session source
// may be nil for unauthenticated use (tests, the login call itself).
func NewClient(baseURL string, sessions SessionSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		sessions:   sessions,
		httpClient: retryClient,
		userAgent:  "jira-client/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request. A missing session triggers a synchronous login
// first; a 401 on the first attempt triggers exactly one re-login and one
// identical retry, after which any failure is classified and propagated.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.sessions != nil && c.sessions.Current() == nil {
		if _, err := c.sessions.Login(ctx); err != nil {
			return nil, fmt.Errorf("establishing session: %w", err)
		}
	}

	intercepted, err := c.runRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.dispatch(ctx, req)

	if err == nil && resp.StatusCode == http.StatusUnauthorized && c.sessions != nil {
		// Session expired mid-flight. Re-authenticate and retry the
		// identical call exactly once; a second 401 falls through to
		// classification below.
		if _, loginErr := c.sessions.Login(ctx); loginErr != nil {
			return nil, fmt.Errorf("renewing session: %w", loginErr)
		}

		resp, err = c.dispatch(ctx, req)
	}

	c.runResponseInterceptors(ctx, intercepted, resp, err)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return resp, jira.NewAPIError(resp.StatusCode, resp.Body)
	}

	return resp, nil
}

// dispatch performs one signed round trip without retry logic.
func (c *Client) dispatch(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", jira.ErrUnreachable, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         httpReq.URL.String(),
			"status_code": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// buildRequest assembles and signs the outgoing request.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var payload []byte

	if req.Body != nil {
		var err error

		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, payload)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.sessions != nil {
		if session := c.sessions.Current(); session != nil {
			name, value := session.Header()
			httpReq.Header.Set(name, value)
		}
	}

	return httpReq, nil
}

func (c *Client) runRequestInterceptors(ctx context.Context, req *Request) (*jira.InterceptedRequest, error) {
	if c.interceptors == nil {
		return nil, nil
	}

	intercepted := &jira.InterceptedRequest{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	if err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted); err != nil {
		return nil, err
	}

	if len(intercepted.Headers) > 0 {
		if req.Headers == nil {
			req.Headers = make(map[string]string)
		}

		for key := range intercepted.Headers {
			req.Headers[key] = intercepted.Headers.Get(key)
		}
	}

	return intercepted, nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *jira.InterceptedRequest, resp *Response, err error) {
	if c.interceptors == nil || req == nil {
		return
	}

	intercepted := &jira.InterceptedResponse{Err: err}
	if resp != nil {
		intercepted.StatusCode = resp.StatusCode
		intercepted.Headers = resp.Headers
	}

	if interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, req, intercepted); interceptErr != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"error": interceptErr.Error(),
		})
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}
