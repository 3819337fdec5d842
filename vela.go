// Package vela is a client-side discovery engine for the Vela content
// platform. It keeps one store of truth for everything the UI renders,
// loads browse and search surfaces from the backend, applies engagement
// optimistically, and persists the user's local state across restarts.
//
// An Engine is explicitly constructed and torn down:
//
//	cfg, err := config.Load()
//	eng, err := vela.New(cfg)
//	defer eng.Close()
//	eng.Preload(ctx)
package vela

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/velalabs/vela/api"
	"github.com/velalabs/vela/config"
	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/engage"
	"github.com/velalabs/vela/feed"
	"github.com/velalabs/vela/persist"
	"github.com/velalabs/vela/search"
	"github.com/velalabs/vela/store"
)

// defaultRecommendationLimit bounds the creator and content rails
// loaded by Preload.
const defaultRecommendationLimit = 10

// Option customizes engine construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
	api    domain.API
	tokens api.TokenProvider
}

// WithLogger sets the logger for every engine component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithAPI replaces the HTTP backend entirely. Used by tests and by
// hosts that proxy requests themselves.
func WithAPI(backend domain.API) Option {
	return func(o *options) { o.api = backend }
}

// WithTokenProvider supplies session tokens dynamically instead of the
// static token from config.
func WithTokenProvider(tokens api.TokenProvider) Option {
	return func(o *options) { o.tokens = tokens }
}

// Engine wires the store, backend client, persistence, and the
// discovery services into one lifecycle.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	store   *store.Store
	gateway *persist.Gateway
	backend domain.API

	search *search.Orchestrator
	engage *engage.Coordinator
	feed   *feed.Service

	unsubscribe func()
	sweepCancel context.CancelFunc
	sweepDone   chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New builds an engine from config. Persisted state is restored into
// the store before the persistence reactor attaches, so a restart
// replays the user's history, follows, likes, filters, and preferences
// without rewriting them to disk.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	gateway, err := persist.Open(cfg.Storage.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	st := store.New(store.Config{
		CacheSize:       cfg.Cache.MaxSize,
		CacheTTL:        cfg.Cache.TTL,
		CacheEvictBatch: cfg.Cache.EvictBatch,
		HistoryLimit:    cfg.Search.HistoryLimit,
		ViewingLimit:    cfg.Store.ViewingLimit,
		NoticeLimit:     cfg.Store.NoticeLimit,
	}, logger)

	backend := o.api
	if backend == nil {
		tokens := o.tokens
		if tokens == nil {
			tokens = api.StaticToken(cfg.API.Token)
		}
		client := api.New(cfg.API.BaseURL, tokens, logger)
		client.SetTimeout(cfg.API.Timeout)
		backend = client
	}

	e := &Engine{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		gateway: gateway,
		backend: backend,
	}
	e.search = search.New(backend, st, search.Config{
		Debounce:     cfg.Search.Debounce,
		MinQueryLen:  cfg.Search.MinQueryLen,
		SuggestLimit: cfg.Search.SuggestLimit,
		PageSize:     cfg.Feed.PageSize,
	}, logger)
	e.engage = engage.New(backend, st, logger)
	e.feed = feed.New(backend, st, cfg.Feed.PageSize, logger)

	e.restore()
	e.unsubscribe = st.Subscribe(e.persistReactor)

	sweepCtx, cancel := context.WithCancel(context.Background())
	e.sweepCancel = cancel
	e.sweepDone = make(chan struct{})
	go e.sweepLoop(sweepCtx, cfg.Cache.TTL)

	logger.Info("engine ready", "storage_dir", cfg.Storage.Dir, "base_url", cfg.API.BaseURL)
	return e, nil
}

// Store exposes the discovery store for reads and subscriptions.
func (e *Engine) Store() *store.Store { return e.store }

// Search exposes the search orchestrator.
func (e *Engine) Search() *search.Orchestrator { return e.search }

// Engage exposes the engagement coordinator.
func (e *Engine) Engage() *engage.Coordinator { return e.engage }

// Feed exposes the feed service.
func (e *Engine) Feed() *feed.Service { return e.feed }

// Preload fans out the initial loads: home feed, trending, categories,
// and both recommendation rails. The first failure cancels the rest,
// but anything already dispatched stays in the store.
func (e *Engine) Preload(ctx context.Context) error {
	if e.closed.Load() {
		return domain.ErrClosed
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.feed.Refresh(ctx) })
	g.Go(func() error { return e.feed.Trending(ctx) })
	g.Go(func() error { return e.feed.Categories(ctx) })
	g.Go(func() error { return e.feed.RecommendedCreators(ctx, defaultRecommendationLimit) })
	g.Go(func() error { return e.feed.RecommendedContent(ctx, defaultRecommendationLimit) })
	return g.Wait()
}

// Close stops the sweeper, detaches the persistence reactor, and closes
// the storage gateway, flushing any queued writes. Close is idempotent.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		e.sweepCancel()
		<-e.sweepDone
		e.unsubscribe()
		e.closeErr = e.gateway.Close()
		e.logger.Info("engine closed")
	})
	return e.closeErr
}

// restore replays persisted records into the store using the same
// actions live code dispatches. List records are stored newest-first,
// so they replay in reverse to rebuild the original order.
func (e *Engine) restore() {
	if rec, ok := e.gateway.LoadPreferences(); ok {
		e.store.Dispatch(domain.SetPreferences{Preferences: rec.Prefs()})
	}
	if rec, ok := e.gateway.LoadFilters(); ok {
		e.store.Dispatch(domain.UpdateFilters{Patch: rec.ActiveFilters().AsPatch()})
	}
	if rec, ok := e.gateway.LoadFollowed(); ok {
		for _, id := range rec.CreatorIDs {
			e.store.Dispatch(domain.ToggleFollow{CreatorID: id})
		}
	}
	if rec, ok := e.gateway.LoadEngagement(); ok {
		for _, id := range rec.Liked {
			e.store.Dispatch(domain.ToggleLike{ContentID: id})
		}
		for _, id := range rec.Bookmarked {
			e.store.Dispatch(domain.ToggleBookmark{ContentID: id})
		}
	}
	if rec, ok := e.gateway.LoadHistory(); ok {
		for i := len(rec.Queries) - 1; i >= 0; i-- {
			e.store.Dispatch(domain.AppendHistory{Query: rec.Queries[i]})
		}
	}
	if rec, ok := e.gateway.LoadViewing(); ok {
		for i := len(rec.ContentIDs) - 1; i >= 0; i-- {
			e.store.Dispatch(domain.RecordView{ContentID: rec.ContentIDs[i]})
		}
	}
	e.logger.Debug("restored persisted state",
		"followed", len(e.store.FollowedIDs()),
		"history", len(e.store.History()))
}

// persistReactor mirrors state-changing actions into storage. It runs
// on the dispatching goroutine; the gateway queues the actual writes.
func (e *Engine) persistReactor(a domain.Action) {
	switch a.(type) {
	case domain.ToggleFollow:
		e.gateway.SaveFollowed(domain.FollowedRecord{
			Version:    domain.RecordVersion,
			CreatorIDs: e.store.FollowedIDs(),
		})
	case domain.ToggleLike, domain.ToggleBookmark:
		e.gateway.SaveEngagement(domain.EngagementRecord{
			Version:    domain.RecordVersion,
			Liked:      e.store.LikedIDs(),
			Bookmarked: e.store.BookmarkedIDs(),
		})
	case domain.AppendHistory, domain.ClearHistory:
		e.gateway.SaveHistory(domain.HistoryRecord{
			Version: domain.RecordVersion,
			Queries: e.store.History(),
		})
	case domain.RecordView:
		e.gateway.SaveViewing(domain.ViewingRecord{
			Version:    domain.RecordVersion,
			ContentIDs: e.store.RecentlyViewed(),
		})
	case domain.SetPreferences:
		e.gateway.SavePreferences(domain.NewPreferencesRecord(e.store.Preferences()))
	case domain.UpdateFilters:
		e.gateway.SaveFilters(domain.FiltersRecord{
			Version: domain.RecordVersion,
			Filters: e.store.Filters(),
		})
	}
}

// sweepLoop evicts expired cache entries on a fixed period so idle
// sessions do not accumulate dead entries between reads.
func (e *Engine) sweepLoop(ctx context.Context, period time.Duration) {
	defer close(e.sweepDone)
	if period <= 0 {
		period = 5 * time.Minute
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := e.store.Sweep(); removed > 0 {
				e.logger.Debug("swept expired cache entries", "removed", removed)
			}
		}
	}
}
