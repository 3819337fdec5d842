// Package store holds all shared discovery state behind a single
// dispatch entry point. Screens read snapshots and issue actions; they
// never mutate state directly.
package store

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/velalabs/vela/cache"
	"github.com/velalabs/vela/domain"
)

// Config bounds the store's collections
type Config struct {
	CacheSize       int
	CacheTTL        time.Duration
	CacheEvictBatch int
	HistoryLimit    int
	ViewingLimit    int
	NoticeLimit     int
}

const (
	defaultHistoryLimit = 10
	defaultViewingLimit = 50
	defaultNoticeLimit  = 10
)

// stream is the state of one paged content list
type stream struct {
	items   []domain.ContentItem
	hasMore bool
	loading bool
	err     string
}

type searchState struct {
	stream
	query       string
	suggestions []string
}

type state struct {
	feed        stream
	search      searchState
	filters     domain.SearchFilters
	history     []string
	categories  []domain.Category
	trending    []domain.ContentItem
	creatorRecs []domain.Creator
	contentRecs []domain.ContentItem
	liked       map[string]struct{}
	bookmarked  map[string]struct{}
	followed    map[string]struct{}
	viewing     []string
	prefs       domain.Preferences
	notices     []domain.Notice
}

// Store is the single owner of discovery state. Dispatches serialize
// under a mutex; subscribers run on the dispatching goroutine after
// the lock is released, so a subscriber may dispatch again.
type Store struct {
	mu     sync.RWMutex
	cfg    Config
	st     state
	cache  *cache.Cache
	logger *slog.Logger

	subMu  sync.Mutex
	subs   map[int]func(domain.Action)
	nextID int
}

// New creates an empty store
func New(cfg Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if cfg.ViewingLimit <= 0 {
		cfg.ViewingLimit = defaultViewingLimit
	}
	if cfg.NoticeLimit <= 0 {
		cfg.NoticeLimit = defaultNoticeLimit
	}

	s := &Store{
		cfg:    cfg,
		cache:  cache.New(cfg.CacheSize, cfg.CacheTTL, cfg.CacheEvictBatch, logger),
		logger: logger,
		subs:   make(map[int]func(domain.Action)),
	}
	s.st.filters = domain.DefaultFilters()
	s.st.prefs = domain.DefaultPreferences()
	s.st.liked = make(map[string]struct{})
	s.st.bookmarked = make(map[string]struct{})
	s.st.followed = make(map[string]struct{})
	return s
}

// Dispatch applies an action and then notifies subscribers. It never
// fails; failures are modeled as state (stream errors, notices).
func (s *Store) Dispatch(a domain.Action) {
	s.mu.Lock()
	s.apply(a)
	s.mu.Unlock()

	for _, fn := range s.subscribers() {
		fn(a)
	}
}

// Subscribe registers a callback invoked after every dispatch with the
// applied action. The returned func cancels the subscription.
func (s *Store) Subscribe(fn func(domain.Action)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) subscribers() []func(domain.Action) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fns := make([]func(domain.Action), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	return fns
}

// Sweep removes expired cache entries, returning how many were removed.
func (s *Store) Sweep() int {
	return s.cache.Sweep()
}
