package domain

import "fmt"

// MediaType distinguishes content formats a creator can publish
type MediaType int

const (
	MediaTypeVideo MediaType = iota
	MediaTypeAudio
	MediaTypeImage
	MediaTypeText
	MediaTypeLive
)

// String returns a human-readable representation of the media type
func (t MediaType) String() string {
	switch t {
	case MediaTypeVideo:
		return "Video"
	case MediaTypeAudio:
		return "Audio"
	case MediaTypeImage:
		return "Image"
	case MediaTypeText:
		return "Text"
	case MediaTypeLive:
		return "Live"
	default:
		return "Unknown"
	}
}

// Visibility is the audience tier required to view a piece of content
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityFollowers
	VisibilityPremium
)

// String returns a human-readable representation of the visibility tier
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "Public"
	case VisibilityFollowers:
		return "Followers"
	case VisibilityPremium:
		return "Premium"
	default:
		return "Unknown"
	}
}

// Stats holds a content item's engagement counters
type Stats struct {
	Likes    int
	Views    int
	Shares   int
	Comments int
}

// ContentItem represents a single publishable piece of creator content
type ContentItem struct {
	ID          string     // Backend-assigned unique identifier
	CreatorID   string     // Publishing creator's ID
	CreatorName string     // Publishing creator's display name
	Title       string     // Display title
	Description string     // Creator-supplied description
	Media       MediaType  // Content format
	Visibility  Visibility // Audience tier required to view
	Category    string     // Category slug
	Tags        []string   // Creator-supplied tags
	PriceCents  int        // Unlock price in cents; 0 = free
	DurationSec int        // Runtime in seconds (0 for image/text)
	Rating      float64    // Community rating (0-5 scale)
	Stats       Stats      // Engagement counters
	ThumbURL    string     // Thumbnail image URL
	MediaURL    string     // Playable/viewable media URL
	CreatedAt   int64      // Unix timestamp when published
	UpdatedAt   int64      // Unix timestamp when last updated
}

// IsFree returns true if the item can be viewed without payment
func (c ContentItem) IsFree() bool {
	return c.PriceCents == 0
}

// IsLive returns true for live broadcasts
func (c ContentItem) IsLive() bool {
	return c.Media == MediaTypeLive
}

// FormattedDuration returns the runtime in a human-readable format
func (c ContentItem) FormattedDuration() string {
	if c.DurationSec <= 0 {
		return ""
	}
	h := c.DurationSec / 3600
	mins := (c.DurationSec % 3600) / 60
	secs := c.DurationSec % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormattedPrice returns the unlock price in a human-readable format
func (c ContentItem) FormattedPrice() string {
	if c.PriceCents <= 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", float64(c.PriceCents)/100)
}
