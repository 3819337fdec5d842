package domain

import "context"

// InteractionType names a content interaction sent to the backend
type InteractionType string

const (
	InteractLike       InteractionType = "like"
	InteractUnlike     InteractionType = "unlike"
	InteractBookmark   InteractionType = "bookmark"
	InteractUnbookmark InteractionType = "unbookmark"
	InteractShare      InteractionType = "share"
)

// SearchAPI provides query-driven discovery against the backend
type SearchAPI interface {
	// SearchContent returns one result page for a query with filters
	SearchContent(ctx context.Context, req SearchRequest) (Page, error)

	// Suggestions returns typeahead completions for a query prefix
	Suggestions(ctx context.Context, query string, limit int) ([]string, error)
}

// FeedAPI provides the browse surfaces: home feed, trending,
// categories and recommendations
type FeedAPI interface {
	// Feed returns one page of the personalized home feed
	Feed(ctx context.Context, page, limit int) (Page, error)

	// Trending returns the current trending rail
	Trending(ctx context.Context) ([]ContentItem, error)

	// Categories returns the browsable category list
	Categories(ctx context.Context) ([]Category, error)

	// RecommendedCreators returns creators the user may want to follow
	RecommendedCreators(ctx context.Context, limit int) ([]Creator, error)

	// RecommendedContent returns content picked for the user
	RecommendedContent(ctx context.Context, limit int) ([]ContentItem, error)
}

// EngageAPI persists user engagement on the backend
type EngageAPI interface {
	// SetFollow follows (follow=true) or unfollows a creator
	SetFollow(ctx context.Context, creatorID string, follow bool) error

	// Interact records a content interaction
	Interact(ctx context.Context, contentID string, kind InteractionType) error
}

// API is the full backend surface the engine depends on
type API interface {
	SearchAPI
	FeedAPI
	EngageAPI
}
