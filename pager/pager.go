// Package pager tracks the read cursor for a paginated stream and
// guarantees that at most one fetch per stream is in flight at a time.
// Callers own what happens to the fetched items; the pager only decides
// which page to ask for next.
package pager

import (
	"context"
	"log/slog"
	"sync"

	"github.com/velalabs/vela/domain"
)

// DefaultPageSize is used when the caller does not specify one.
const DefaultPageSize = 20

// FetchFunc loads one page of a stream. Pages are numbered from 1.
// It reports the items, whether more pages remain, and any error.
type FetchFunc func(ctx context.Context, page, size int) ([]domain.ContentItem, bool, error)

// Result describes the outcome of a load request.
type Result struct {
	Items   []domain.ContentItem
	HasMore bool
	// Skipped is true when the request was dropped without fetching:
	// either a fetch was already in flight or the stream is exhausted.
	Skipped bool
}

// Pager is safe for concurrent use.
type Pager struct {
	mu       sync.Mutex
	fetch    FetchFunc
	size     int
	nextPage int
	hasMore  bool
	busy     bool
	logger   *slog.Logger
}

// New returns a pager positioned at the first page.
func New(size int, fetch FetchFunc, logger *slog.Logger) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pager{
		fetch:    fetch,
		size:     size,
		nextPage: 1,
		hasMore:  true,
		logger:   logger,
	}
}

// LoadMore fetches the next unread page. The cursor only advances when
// the fetch succeeds, so a failed page is retried on the next call. If a
// fetch is already in flight or the stream is exhausted, the request is
// skipped.
func (p *Pager) LoadMore(ctx context.Context) (Result, error) {
	p.mu.Lock()
	if p.busy || !p.hasMore {
		p.mu.Unlock()
		return Result{Skipped: true}, nil
	}
	p.busy = true
	page, size := p.nextPage, p.size
	p.mu.Unlock()

	items, more, err := p.fetch(ctx, page, size)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if err != nil {
		p.logger.Debug("page fetch failed", "page", page, "error", err)
		return Result{}, err
	}
	p.nextPage = page + 1
	p.hasMore = more
	return Result{Items: items, HasMore: more}, nil
}

// Refresh refetches the stream from the first page. On success the
// cursor is repositioned past page one; on failure the previous cursor
// is kept so the stream keeps working from where it was. Refresh obeys
// the same single-flight rule as LoadMore.
func (p *Pager) Refresh(ctx context.Context) (Result, error) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return Result{Skipped: true}, nil
	}
	p.busy = true
	size := p.size
	p.mu.Unlock()

	items, more, err := p.fetch(ctx, 1, size)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if err != nil {
		p.logger.Debug("refresh failed", "error", err)
		return Result{}, err
	}
	p.nextPage = 2
	p.hasMore = more
	return Result{Items: items, HasMore: more}, nil
}

// Reset rewinds the cursor to the first page without fetching anything.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextPage = 1
	p.hasMore = true
}

// HasMore reports whether the stream believes more pages remain.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}
