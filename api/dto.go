package api

// Wire types for the discovery backend's JSON API.

type searchRequestBody struct {
	Query   string     `json:"query"`
	Filters filtersDTO `json:"filters"`
	Page    int        `json:"page"`
	Limit   int        `json:"limit"`
}

type followRequestBody struct {
	CreatorID string `json:"creatorId"`
	Action    string `json:"action"` // "follow" or "unfollow"
}

type interactRequestBody struct {
	ContentID string `json:"contentId"`
	Type      string `json:"type"` // like, unlike, bookmark, unbookmark, share
}

type filtersDTO struct {
	MediaTypes     []string `json:"mediaTypes,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	MinPriceCents  int      `json:"minPriceCents,omitempty"`
	MaxPriceCents  int      `json:"maxPriceCents,omitempty"`
	MinDurationSec int      `json:"minDurationSec,omitempty"`
	MaxDurationSec int      `json:"maxDurationSec,omitempty"`
	MinRating      float64  `json:"minRating,omitempty"`
	VerifiedOnly   bool     `json:"verifiedOnly,omitempty"`
	FreeOnly       bool     `json:"freeOnly,omitempty"`
	Sort           string   `json:"sort,omitempty"`
}

type searchResponse struct {
	Results []contentDTO `json:"results"`
	HasMore bool         `json:"hasMore"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type feedResponse struct {
	Feed    []contentDTO `json:"feed"`
	HasMore bool         `json:"hasMore"`
}

type trendingResponse struct {
	Trending []contentDTO `json:"trending"`
}

type categoriesResponse struct {
	Categories []categoryDTO `json:"categories"`
}

type creatorsResponse struct {
	Creators []creatorDTO `json:"creators"`
}

type contentListResponse struct {
	Content []contentDTO `json:"content"`
}

type contentDTO struct {
	ID          string   `json:"id"`
	CreatorID   string   `json:"creatorId"`
	CreatorName string   `json:"creatorName,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	MediaType   string   `json:"mediaType"`
	Visibility  string   `json:"visibility,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	PriceCents  int      `json:"priceCents,omitempty"`
	DurationSec int      `json:"durationSec,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Stats       statsDTO `json:"stats"`
	ThumbURL    string   `json:"thumbUrl,omitempty"`
	MediaURL    string   `json:"mediaUrl,omitempty"`
	CreatedAt   int64    `json:"createdAt,omitempty"`
	UpdatedAt   int64    `json:"updatedAt,omitempty"`
}

type statsDTO struct {
	Likes    int `json:"likes"`
	Views    int `json:"views"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

type creatorDTO struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio,omitempty"`
	Verified    bool   `json:"verified,omitempty"`
	Followers   int    `json:"followers,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

type categoryDTO struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	ContentCount int    `json:"contentCount,omitempty"`
}
