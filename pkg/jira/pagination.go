package jira

import (
	"context"
	"fmt"
)

// DefaultPageSize is the page window both aggregation call sites request.
const DefaultPageSize = 1000

// PageFunc fetches one page of items starting at the given offset. The total
// return value is the server-reported result count where the endpoint supplies
// one; endpoints that never report a total return 0 and are aggregated with
// CollectUntilShortPage instead.
type PageFunc[T any] func(ctx context.Context, startAt, maxResults int) (items []T, total int, err error)

// PaginationOptions bounds an aggregation run.
type PaginationOptions struct {
	// PageSize is the page window requested from the server. Zero means
	// DefaultPageSize.
	PageSize int

	// Limit caps the number of accumulated items. Zero means no cap.
	Limit int

	// MaxPages caps the number of fetches. Zero means unbounded. This is
	// the only guard against a server that reports more results than it
	// returns: total-driven aggregation cannot otherwise terminate when a
	// page comes back empty while the accumulated count is below total.
	MaxPages int
}

func (o *PaginationOptions) pageSize() int {
	if o == nil || o.PageSize <= 0 {
		return DefaultPageSize
	}

	return o.PageSize
}

// CollectUntilShortPage aggregates an endpoint that does not report a total.
// A page shorter than the requested window signals the last page. The offset
// advances by the full window each iteration regardless of how many items the
// page actually carried.
func CollectUntilShortPage[T any](ctx context.Context, fetch PageFunc[T], opts *PaginationOptions) ([]T, error) {
	pageSize := opts.pageSize()

	var collected []T

	for startAt, pages := 0, 0; ; startAt += pageSize {
		items, _, err := fetch(ctx, startAt, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching page at offset %d: %w", startAt, err)
		}

		collected = append(collected, items...)
		pages++

		if opts != nil && opts.Limit > 0 && len(collected) >= opts.Limit {
			return collected[:opts.Limit], nil
		}

		if len(items) < pageSize {
			return collected, nil
		}

		if opts != nil && opts.MaxPages > 0 && pages >= opts.MaxPages {
			return collected, fmt.Errorf("%w: %d pages", ErrPageLimitExceeded, opts.MaxPages)
		}
	}
}

// CollectTotal aggregates an endpoint whose first page reports the total
// result count. The loop continues while fewer items have accumulated than
// the total, and the next offset is the accumulated length, so a page
// filtered down below the window still advances correctly.
func CollectTotal[T any](ctx context.Context, fetch PageFunc[T], opts *PaginationOptions) ([]T, error) {
	pageSize := opts.pageSize()

	items, total, err := fetch(ctx, 0, pageSize)
	if err != nil {
		return nil, fmt.Errorf("fetching first page: %w", err)
	}

	collected := items

	for pages := 1; len(collected) < total; pages++ {
		if opts != nil && opts.Limit > 0 && len(collected) >= opts.Limit {
			break
		}

		if opts != nil && opts.MaxPages > 0 && pages >= opts.MaxPages {
			return collected, fmt.Errorf("%w: %d pages", ErrPageLimitExceeded, opts.MaxPages)
		}

		items, _, err = fetch(ctx, len(collected), pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching page at offset %d: %w", len(collected), err)
		}

		collected = append(collected, items...)
	}

	if opts != nil && opts.Limit > 0 && len(collected) > opts.Limit {
		collected = collected[:opts.Limit]
	}

	return collected, nil
}

// PageIterator walks a total-reporting endpoint lazily, one item at a time.
// It observes the same page order and offsets as CollectTotal.
type PageIterator[T any] struct {
	ctx      context.Context
	fetch    PageFunc[T]
	pageSize int

	buffer    []T
	pos       int
	delivered int
	total     int
	started   bool
	err       error
}

// NewPageIterator creates an iterator over the given page function.
func NewPageIterator[T any](ctx context.Context, fetch PageFunc[T], opts *PaginationOptions) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:      ctx,
		fetch:    fetch,
		pageSize: opts.pageSize(),
	}
}

// HasNext reports whether another item is available. It fetches the next page
// when the buffer is exhausted.
func (it *PageIterator[T]) HasNext() bool {
	if it.err != nil {
		return false
	}

	if it.pos < len(it.buffer) {
		return true
	}

	if it.started && it.delivered >= it.total {
		return false
	}

	items, total, err := it.fetch(it.ctx, it.delivered, it.pageSize)
	if err != nil {
		it.err = err

		return false
	}

	if !it.started {
		it.started = true
		it.total = total
	}

	it.buffer = items
	it.pos = 0

	return len(it.buffer) > 0
}

// Next returns the next item. Calling Next after HasNext reported false
// returns the iterator's terminal error.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, fmt.Errorf("iterating pages: %w", ErrNotFound)
	}

	item := it.buffer[it.pos]
	it.pos++
	it.delivered++

	return item, nil
}

// All drains the iterator into a single slice in page order.
func (it *PageIterator[T]) All() ([]T, error) {
	var collected []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		collected = append(collected, item)
	}

	if it.err != nil {
		return nil, it.err
	}

	return collected, nil
}

// ForEach applies fn to every remaining item, stopping at the first error.
func (it *PageIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return it.err
}
