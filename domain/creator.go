package domain

import "fmt"

// Creator represents a publishing account users can follow
type Creator struct {
	ID          string // Backend-assigned unique identifier
	Handle      string // Unique handle without the @ prefix
	DisplayName string // Display name
	Bio         string // Profile bio
	Verified    bool   // Identity-verified badge
	Followers   int    // Follower count
	AvatarURL   string // Avatar image URL
}

// DisplayHandle returns the handle with its @ prefix
func (c Creator) DisplayHandle() string {
	if c.Handle == "" {
		return ""
	}
	return "@" + c.Handle
}

// FormattedFollowers returns the follower count in a compact form
func (c Creator) FormattedFollowers() string {
	switch {
	case c.Followers >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(c.Followers)/1_000_000)
	case c.Followers >= 1_000:
		return fmt.Sprintf("%.1fK", float64(c.Followers)/1_000)
	default:
		return fmt.Sprintf("%d", c.Followers)
	}
}

// Category represents a browsable content category
type Category struct {
	ID           string // Backend-assigned unique identifier
	Slug         string // URL-safe identifier used in filters
	Name         string // Display name
	ContentCount int    // Number of items published under the category
}
