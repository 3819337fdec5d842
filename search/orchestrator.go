// Package search coordinates the query lifecycle: debounced
// suggestions while typing, explicit submission, pagination of results,
// and offline filtering of already-browsed content. All outcomes land
// in the store as actions; the orchestrator itself keeps only enough
// state to pair responses with the submission that asked for them.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/pager"
	"github.com/velalabs/vela/store"
)

// Defaults applied when Config fields are left zero.
const (
	DefaultMinQueryLen  = 2
	DefaultSuggestLimit = 8
)

// Config tunes the orchestrator.
type Config struct {
	Debounce     time.Duration
	MinQueryLen  int
	SuggestLimit int
	PageSize     int
}

// Orchestrator drives search against the backend and dispatches every
// outcome into the store. It is safe for concurrent use.
type Orchestrator struct {
	api    domain.SearchAPI
	store  *store.Store
	logger *slog.Logger

	cfg       Config
	debouncer *Debouncer

	mu      sync.Mutex
	current string       // latest typed query, staleness anchor for suggestions
	seq     uint64       // bumped on every submission; stale responses are dropped
	pager   *pager.Pager // owned by the latest submission
	primed  bool         // first page of the latest submission has landed
}

// New returns an orchestrator. Zero Config fields use the package
// defaults.
func New(api domain.SearchAPI, st *store.Store, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MinQueryLen <= 0 {
		cfg.MinQueryLen = DefaultMinQueryLen
	}
	if cfg.SuggestLimit <= 0 {
		cfg.SuggestLimit = DefaultSuggestLimit
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = pager.DefaultPageSize
	}
	return &Orchestrator{
		api:       api,
		store:     st,
		logger:    logger,
		cfg:       cfg,
		debouncer: NewDebouncer(cfg.Debounce),
	}
}

// SetQuery reacts to the user typing. An empty query leaves search
// mode, a query shorter than the minimum clears suggestions while the
// user keeps composing, and anything longer schedules a debounced
// suggestion fetch for the text as typed at this moment.
func (o *Orchestrator) SetQuery(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	o.mu.Lock()
	o.current = query
	if query == "" {
		o.seq++
		o.pager = nil
		o.primed = false
	}
	o.mu.Unlock()

	if query == "" {
		o.debouncer.Cancel()
		o.store.Dispatch(domain.ClearSearch{})
		return
	}

	if utf8.RuneCountInString(query) < o.cfg.MinQueryLen {
		o.debouncer.Cancel()
		o.store.Dispatch(domain.SetSuggestions{Query: query})
		return
	}

	o.debouncer.Debounce(func() {
		o.suggest(ctx, query)
	})
}

// suggest fetches suggestions for the query captured when the timer was
// armed and dispatches them only if that query is still what the user
// has typed.
func (o *Orchestrator) suggest(ctx context.Context, query string) {
	suggestions := o.fetchSuggestions(ctx, query)

	o.mu.Lock()
	stale := o.current != query
	o.mu.Unlock()
	if stale {
		o.logger.Debug("dropping stale suggestions", "query", query)
		return
	}

	o.store.Dispatch(domain.SetSuggestions{Query: query, Suggestions: suggestions})
}

// Submit runs the query against the backend with the filters active at
// this moment. Results land via SetSearchResults; non-empty queries are
// remembered in history. A submission that is superseded before its
// response arrives is discarded silently.
func (o *Orchestrator) Submit(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	o.debouncer.Cancel()

	o.mu.Lock()
	o.seq++
	seq := o.seq
	o.current = query
	o.primed = false
	filters := o.store.Filters()
	p := pager.New(o.cfg.PageSize, o.fetchFunc(query, filters), o.logger)
	o.pager = p
	o.mu.Unlock()

	o.logger.Debug("submitting search", "query", query)
	o.store.Dispatch(domain.SearchLoading{})

	res, err := p.Refresh(ctx)
	if err != nil {
		if o.isCurrent(seq) {
			o.store.Dispatch(domain.SearchFailed{Message: domain.UserMessage(err)})
			o.store.Dispatch(domain.PushNotice{Notice: domain.NewNotice(domain.NoticeError, domain.UserMessage(err))})
		}
		return err
	}

	o.mu.Lock()
	stale := o.seq != seq
	if !stale {
		o.primed = true
	}
	o.mu.Unlock()
	if stale {
		o.logger.Debug("dropping stale search results", "query", query)
		return nil
	}

	o.store.Dispatch(domain.SetSearchResults{Query: query, Items: res.Items, HasMore: res.HasMore})
	if query != "" {
		o.store.Dispatch(domain.AppendHistory{Query: query})
	}
	return nil
}

// LoadMore appends the next page of the last submitted query, keeping
// the filters that were active at submission time. It no-ops before the
// first submission lands or once the stream is exhausted.
func (o *Orchestrator) LoadMore(ctx context.Context) error {
	o.mu.Lock()
	p, seq, primed := o.pager, o.seq, o.primed
	o.mu.Unlock()

	if p == nil || !primed || !p.HasMore() {
		return nil
	}

	o.store.Dispatch(domain.SearchLoading{})

	res, err := p.LoadMore(ctx)
	if err != nil {
		if o.isCurrent(seq) {
			o.store.Dispatch(domain.SearchFailed{Message: domain.UserMessage(err)})
		}
		return err
	}
	if !o.isCurrent(seq) {
		o.logger.Debug("dropping stale search page")
		return nil
	}
	if res.Skipped {
		o.store.Dispatch(domain.AppendSearchResults{HasMore: p.HasMore()})
		return nil
	}

	o.store.Dispatch(domain.AppendSearchResults{Items: res.Items, HasMore: res.HasMore})
	return nil
}

// UpdateFilters merges the patch into the active filters. It never
// triggers a search on its own; the new filters apply from the next
// submission.
func (o *Orchestrator) UpdateFilters(patch domain.FilterPatch) {
	o.store.Dispatch(domain.UpdateFilters{Patch: patch})
}

// BrowseCategory narrows the active filters to the category and submits
// immediately. The empty query is allowed here so the category itself
// is the search.
func (o *Orchestrator) BrowseCategory(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil
	}
	categories := []string{slug}
	o.store.Dispatch(domain.UpdateFilters{Patch: domain.FilterPatch{Categories: &categories}})
	return o.Submit(ctx, "")
}

// FilterCached fuzzy-matches the query against everything currently in
// the content cache. It is synchronous and never touches the network,
// so it works offline.
func (o *Orchestrator) FilterCached(query string) []domain.ContentItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	ix := buildFilterIndex(o.store.CachedItems())
	return matchIndex(ix, query)
}

// fetchFunc binds a submission's query and filters into a page fetcher.
func (o *Orchestrator) fetchFunc(query string, filters domain.SearchFilters) pager.FetchFunc {
	return func(ctx context.Context, page, size int) ([]domain.ContentItem, bool, error) {
		result, err := o.api.SearchContent(ctx, domain.SearchRequest{
			Query:   query,
			Filters: filters.Clone(),
			Page:    page,
			Limit:   size,
		})
		if err != nil {
			return nil, false, err
		}
		return result.Items, result.HasMore, nil
	}
}

func (o *Orchestrator) isCurrent(seq uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.seq == seq
}
