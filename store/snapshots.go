package store

import (
	"sort"

	"github.com/velalabs/vela/domain"
)

// StreamSnapshot is a copy of one content stream's state. At most one
// of Loading and Error is meaningful at a time; a successful load
// clears both.
type StreamSnapshot struct {
	Items   []domain.ContentItem
	HasMore bool
	Loading bool
	Error   string
}

func snapshotStream(st stream) StreamSnapshot {
	return StreamSnapshot{
		Items:   cloneItems(st.items),
		HasMore: st.hasMore,
		Loading: st.loading,
		Error:   st.err,
	}
}

// Feed returns the home feed stream
func (s *Store) Feed() StreamSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotStream(s.st.feed)
}

// SearchResults returns the search result stream
func (s *Store) SearchResults() StreamSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotStream(s.st.search.stream)
}

// SearchQuery returns the query the visible search surface belongs to
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.search.query
}

// Suggestions returns the current typeahead suggestions
func (s *Store) Suggestions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.st.search.suggestions)
}

// History returns the search history, most recent first
func (s *Store) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.st.history)
}

// Filters returns the active search filters
func (s *Store) Filters() domain.SearchFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.filters.Clone()
}

// Categories returns the browsable category list
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.st.categories...)
}

// Trending returns the trending rail
func (s *Store) Trending() []domain.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.st.trending)
}

// CreatorRecs returns the recommended-creators rail
func (s *Store) CreatorRecs() []domain.Creator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Creator(nil), s.st.creatorRecs...)
}

// ContentRecs returns the recommended-content rail
func (s *Store) ContentRecs() []domain.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.st.contentRecs)
}

// IsLiked reports whether the content item is liked
func (s *Store) IsLiked(contentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.st.liked[contentID]
	return ok
}

// IsBookmarked reports whether the content item is bookmarked
func (s *Store) IsBookmarked(contentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.st.bookmarked[contentID]
	return ok
}

// IsFollowed reports whether the creator is followed
func (s *Store) IsFollowed(creatorID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.st.followed[creatorID]
	return ok
}

// LikedIDs returns the liked content IDs, sorted
func (s *Store) LikedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.st.liked)
}

// BookmarkedIDs returns the bookmarked content IDs, sorted
func (s *Store) BookmarkedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.st.bookmarked)
}

// FollowedIDs returns the followed creator IDs, sorted
func (s *Store) FollowedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.st.followed)
}

// RecentlyViewed returns viewed content IDs, most recent first
func (s *Store) RecentlyViewed() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.st.viewing)
}

// Preferences returns the user preferences
func (s *Store) Preferences() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.st.prefs
	p.PreferredCategories = cloneStrings(p.PreferredCategories)
	return p
}

// Notices returns the pending notices, oldest first
func (s *Store) Notices() []domain.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notice(nil), s.st.notices...)
}

// Cached returns a content item from the cache
func (s *Store) Cached(contentID string) (domain.ContentItem, bool) {
	return s.cache.Get(contentID)
}

// CacheLen returns the number of cached items, expired or not
func (s *Store) CacheLen() int {
	return s.cache.Len()
}

// CachedItems returns every unexpired cached item, sorted by ID.
func (s *Store) CachedItems() []domain.ContentItem {
	return s.cache.Items()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
