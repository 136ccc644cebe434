package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/issuetrack-io/jira-client/pkg/jira"
)

// Reference cache keys. Entries never expire; the whole cache is cleared on
// logout.
const (
	refKeyProjects   = "reference:projects"
	refKeyIssueTypes = "reference:issuetypes"
	refKeyAssignable = "reference:assignable:"
)

// referenceCache memoizes low-churn lookups on top of a cache backend. The
// lock covers the check-then-fill sequence so concurrent callers cannot
// trigger duplicate underlying fetches.
type referenceCache struct {
	mu      sync.Mutex
	backend jira.Cache
}

func newReferenceCache(backend jira.Cache) *referenceCache {
	return &referenceCache{backend: backend}
}

func (r *referenceCache) clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.backend.Clear(ctx)
}

// cachedFetch returns the stored value for key, fetching and storing it on
// first use. A backend write failure degrades to fetch-through rather than
// failing the lookup.
func cachedFetch[T any](ctx context.Context, refs *referenceCache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	refs.mu.Lock()
	defer refs.mu.Unlock()

	var zero T

	if entry, err := refs.backend.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal(entry.Data, &value); err == nil {
			return value, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	_ = refs.backend.Set(ctx, key, &jira.CacheEntry{Data: data})

	return value, nil
}
