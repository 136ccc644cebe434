package client

import (
	"github.com/issuetrack-io/jira-client/internal/auth"
	internalhttp "github.com/issuetrack-io/jira-client/internal/http"
	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// NewTestClient creates a client for tests: requests dispatch without a
// session source, so nothing is signed and no login round trips happen, and
// the reference cache is an in-memory backend.
func NewTestClient(baseURL string) *Client {
	return NewTestClientWithCache(baseURL, jira.NewMemoryCache(0))
}

// NewTestClientWithCache is NewTestClient with an explicit reference cache
// backend, for tests exercising cache degradation.
func NewTestClientWithCache(baseURL string, cache jira.Cache) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		sessions:   auth.NewManager(baseURL, jira.AuthModeBasic),
		baseURL:    baseURL,
		refs:       newReferenceCache(cache),
	}

	client.initializeResourceClients()

	return client
}
