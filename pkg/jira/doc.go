// Package jira defines the public API surface of the Jira client: the Client
// interface and its per-resource sub-clients, configuration, the error
// taxonomy, pagination aggregation, and the reference cache.
//
// Create clients with the jiraclient package:
//
//	client, err := jiraclient.NewWithToken(ctx, "https://jira.example.com", "alice", token)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	issue, err := client.Issues().Get(ctx, "PROJ-42")
//
// # Sessions
//
// A client holds at most one live session. Cookie-mode sessions are created
// against the server's session resource; basic and token modes derive the
// session locally from credentials. The dispatcher recovers transparently
// from a single mid-call session expiry by re-authenticating and retrying the
// identical call exactly once.
//
// # Pagination
//
// Endpoints that report a total are aggregated with CollectTotal; endpoints
// that do not (assignable-user search) stop on the first short page via
// CollectUntilShortPage. Both materialize the full result set in server page
// order. PageIterator offers the same traversal lazily.
//
// # Errors
//
// Non-2xx responses surface as *APIError values that unwrap to the sentinel
// taxonomy (ErrInvalidCredentials, ErrLoginDenied, ErrNotFound,
// ErrServerError, ...), so callers classify with errors.Is or the Is*
// helpers.
package jira
