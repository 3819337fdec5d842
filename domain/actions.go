package domain

import "time"

// Action is a single state mutation applied through the discovery
// store's Dispatch. The set of actions below is closed; the store
// ignores any action it does not recognize, so an action added here
// before its handler lands degrades to a no-op instead of a crash.
type Action interface {
	isAction()
}

// === Feed stream ===

// FeedLoading marks the home feed as loading and clears its error.
type FeedLoading struct{}

func (FeedLoading) isAction() {}

// SetFeed replaces the home feed with a fresh first page.
type SetFeed struct {
	Items   []ContentItem
	HasMore bool
}

func (SetFeed) isAction() {}

// AppendFeed adds a subsequent page to the home feed. Items whose IDs
// are already present are dropped.
type AppendFeed struct {
	Items   []ContentItem
	HasMore bool
}

func (AppendFeed) isAction() {}

// FeedFailed records a feed load failure.
type FeedFailed struct {
	Message string
}

func (FeedFailed) isAction() {}

// === Search stream ===

// SearchLoading marks the search results as loading and clears their error.
type SearchLoading struct{}

func (SearchLoading) isAction() {}

// SetSearchResults replaces search results with a fresh first page.
type SetSearchResults struct {
	Query   string
	Items   []ContentItem
	HasMore bool
}

func (SetSearchResults) isAction() {}

// AppendSearchResults adds a subsequent page to the search results.
// Items whose IDs are already present are dropped.
type AppendSearchResults struct {
	Items   []ContentItem
	HasMore bool
}

func (AppendSearchResults) isAction() {}

// SearchFailed records a search failure.
type SearchFailed struct {
	Message string
}

func (SearchFailed) isAction() {}

// ClearSearch resets the search surface to idle: no query, no
// suggestions, no results.
type ClearSearch struct{}

func (ClearSearch) isAction() {}

// SetSuggestions replaces the typeahead suggestions for a query.
type SetSuggestions struct {
	Query       string
	Suggestions []string
}

func (SetSuggestions) isAction() {}

// UpdateFilters shallow-merges a patch into the active search filters.
type UpdateFilters struct {
	Patch FilterPatch
}

func (UpdateFilters) isAction() {}

// AppendHistory records a submitted query. Empty queries are ignored;
// a query already present leaves history untouched.
type AppendHistory struct {
	Query string
}

func (AppendHistory) isAction() {}

// ClearHistory empties the search history.
type ClearHistory struct{}

func (ClearHistory) isAction() {}

// === Browse surfaces ===

// SetTrending replaces the trending rail.
type SetTrending struct {
	Items []ContentItem
}

func (SetTrending) isAction() {}

// SetCategories replaces the browsable category list.
type SetCategories struct {
	Categories []Category
}

func (SetCategories) isAction() {}

// SetCreatorRecs replaces the recommended-creators rail.
type SetCreatorRecs struct {
	Creators []Creator
}

func (SetCreatorRecs) isAction() {}

// SetContentRecs replaces the recommended-content rail.
type SetContentRecs struct {
	Items []ContentItem
}

func (SetContentRecs) isAction() {}

// === Content cache ===

// CachePut caches a content item. A zero TTL uses the store's default.
type CachePut struct {
	Item ContentItem
	TTL  time.Duration
}

func (CachePut) isAction() {}

// CacheEvict removes a single item from the content cache.
type CacheEvict struct {
	ID string
}

func (CacheEvict) isAction() {}

// CacheClear empties the content cache.
type CacheClear struct{}

func (CacheClear) isAction() {}

// === Engagement ===

// ToggleLike flips the liked state of a content item. Dispatching the
// same action again is its own inverse.
type ToggleLike struct {
	ContentID string
}

func (ToggleLike) isAction() {}

// ToggleBookmark flips the bookmarked state of a content item.
type ToggleBookmark struct {
	ContentID string
}

func (ToggleBookmark) isAction() {}

// ToggleFollow flips the followed state of a creator.
type ToggleFollow struct {
	CreatorID string
}

func (ToggleFollow) isAction() {}

// === User state ===

// RecordView moves a content ID to the front of the viewing history.
type RecordView struct {
	ContentID string
}

func (RecordView) isAction() {}

// SetPreferences replaces the user preferences.
type SetPreferences struct {
	Preferences Preferences
}

func (SetPreferences) isAction() {}

// === Notices ===

// PushNotice appends a dismissible notice, dropping the oldest past
// the store's bound.
type PushNotice struct {
	Notice Notice
}

func (PushNotice) isAction() {}

// DismissNotice removes a notice by ID.
type DismissNotice struct {
	ID string
}

func (DismissNotice) isAction() {}
