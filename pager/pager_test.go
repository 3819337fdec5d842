package pager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/logging"
)

// pageFetcher serves deterministic pages and records every request.
type pageFetcher struct {
	mu       sync.Mutex
	requests []int
	pages    int // total pages available
	err      error
}

func (f *pageFetcher) fetch(_ context.Context, page, size int) ([]domain.ContentItem, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, page)
	if f.err != nil {
		return nil, false, f.err
	}
	items := make([]domain.ContentItem, size)
	for i := range items {
		items[i] = domain.ContentItem{ID: fmt.Sprintf("p%d-i%d", page, i)}
	}
	return items, page < f.pages, nil
}

func (f *pageFetcher) requested() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.requests...)
}

func TestLoadMoreAdvancesOnSuccess(t *testing.T) {
	f := &pageFetcher{pages: 3}
	p := New(2, f.fetch, logging.Null())

	res, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Len(t, res.Items, 2)
	assert.True(t, res.HasMore)

	res, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p2-i0", res.Items[0].ID)

	res, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, res.HasMore, "last page reports exhaustion")

	assert.Equal(t, []int{1, 2, 3}, f.requested())
}

func TestLoadMoreRetriesSamePageAfterFailure(t *testing.T) {
	f := &pageFetcher{pages: 2, err: errors.New("backend unreachable")}
	p := New(2, f.fetch, logging.Null())

	_, err := p.LoadMore(context.Background())
	require.Error(t, err)

	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()

	res, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1-i0", res.Items[0].ID, "failed page is refetched, not skipped")
	assert.Equal(t, []int{1, 1}, f.requested())
}

func TestLoadMoreSkipsWhenExhausted(t *testing.T) {
	f := &pageFetcher{pages: 1}
	p := New(2, f.fetch, logging.Null())

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, p.HasMore())

	res, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, []int{1}, f.requested(), "no fetch past the end")
}

func TestLoadMoreSingleFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(_ context.Context, page, size int) ([]domain.ContentItem, bool, error) {
		close(started)
		<-release
		return []domain.ContentItem{{ID: "a"}}, true, nil
	}
	p := New(2, fetch, logging.Null())

	done := make(chan Result, 1)
	go func() {
		res, _ := p.LoadMore(context.Background())
		done <- res
	}()

	<-started
	res, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Skipped, "second request while one is in flight is dropped")

	refreshed, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, refreshed.Skipped, "refresh also respects the in-flight fetch")

	close(release)
	first := <-done
	assert.False(t, first.Skipped)
	assert.Len(t, first.Items, 1)
}

func TestRefreshRestartsFromFirstPage(t *testing.T) {
	f := &pageFetcher{pages: 3}
	p := New(2, f.fetch, logging.Null())

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	_, err = p.LoadMore(context.Background())
	require.NoError(t, err)

	res, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1-i0", res.Items[0].ID)

	res, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p2-i0", res.Items[0].ID, "cursor sits past page one after refresh")
	assert.Equal(t, []int{1, 2, 1, 2}, f.requested())
}

func TestRefreshFailureKeepsCursor(t *testing.T) {
	f := &pageFetcher{pages: 3}
	p := New(2, f.fetch, logging.Null())

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)

	f.mu.Lock()
	f.err = errors.New("offline")
	f.mu.Unlock()
	_, err = p.Refresh(context.Background())
	require.Error(t, err)

	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()
	res, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p2-i0", res.Items[0].ID, "failed refresh does not move the cursor")
}

func TestResetRewindsWithoutFetching(t *testing.T) {
	f := &pageFetcher{pages: 1}
	p := New(2, f.fetch, logging.Null())

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, p.HasMore())

	p.Reset()
	assert.True(t, p.HasMore())

	res, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1-i0", res.Items[0].ID)
}

func TestZeroSizeUsesDefault(t *testing.T) {
	var gotSize int
	fetch := func(_ context.Context, page, size int) ([]domain.ContentItem, bool, error) {
		gotSize = size
		return nil, false, nil
	}
	p := New(0, fetch, nil)

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, gotSize)
}
