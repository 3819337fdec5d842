package domain

// SortOrder selects the server-side ordering of search results
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortNewest    SortOrder = "newest"
	SortPopular   SortOrder = "popular"
	SortTopRated  SortOrder = "top_rated"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// SearchFilters narrows search and browse requests. A zero field means
// "no constraint"; DefaultFilters fills the fields whose defaults are
// not zero values.
type SearchFilters struct {
	MediaTypes     []MediaType `json:"mediaTypes,omitempty"`
	Categories     []string    `json:"categories,omitempty"` // category slugs
	MinPriceCents  int         `json:"minPriceCents,omitempty"`
	MaxPriceCents  int         `json:"maxPriceCents,omitempty"` // 0 = no cap
	MinDurationSec int         `json:"minDurationSec,omitempty"`
	MaxDurationSec int         `json:"maxDurationSec,omitempty"` // 0 = no cap
	MinRating      float64     `json:"minRating,omitempty"`
	VerifiedOnly   bool        `json:"verifiedOnly,omitempty"`
	FreeOnly       bool        `json:"freeOnly,omitempty"`
	Sort           SortOrder   `json:"sort,omitempty"`
}

// DefaultFilters returns the filter set applied before any user edits
func DefaultFilters() SearchFilters {
	return SearchFilters{Sort: SortRelevance}
}

// Clone returns a copy whose slices are independent of the receiver's
func (f SearchFilters) Clone() SearchFilters {
	out := f
	if f.MediaTypes != nil {
		out.MediaTypes = append([]MediaType(nil), f.MediaTypes...)
	}
	if f.Categories != nil {
		out.Categories = append([]string(nil), f.Categories...)
	}
	return out
}

// FilterPatch updates a subset of filter fields. A nil field leaves the
// current value untouched; a set field replaces its counterpart
// wholesale. Patches never merge slice contents.
type FilterPatch struct {
	MediaTypes     *[]MediaType
	Categories     *[]string
	MinPriceCents  *int
	MaxPriceCents  *int
	MinDurationSec *int
	MaxDurationSec *int
	MinRating      *float64
	VerifiedOnly   *bool
	FreeOnly       *bool
	Sort           *SortOrder
}

// AsPatch returns a patch that sets every field to f's value, replacing
// whatever filters are active when it is applied.
func (f SearchFilters) AsPatch() FilterPatch {
	c := f.Clone()
	return FilterPatch{
		MediaTypes:     &c.MediaTypes,
		Categories:     &c.Categories,
		MinPriceCents:  &c.MinPriceCents,
		MaxPriceCents:  &c.MaxPriceCents,
		MinDurationSec: &c.MinDurationSec,
		MaxDurationSec: &c.MaxDurationSec,
		MinRating:      &c.MinRating,
		VerifiedOnly:   &c.VerifiedOnly,
		FreeOnly:       &c.FreeOnly,
		Sort:           &c.Sort,
	}
}

// Merge returns a copy of f with the patch's set fields applied
func (f SearchFilters) Merge(p FilterPatch) SearchFilters {
	out := f.Clone()
	if p.MediaTypes != nil {
		out.MediaTypes = append([]MediaType(nil), (*p.MediaTypes)...)
	}
	if p.Categories != nil {
		out.Categories = append([]string(nil), (*p.Categories)...)
	}
	if p.MinPriceCents != nil {
		out.MinPriceCents = *p.MinPriceCents
	}
	if p.MaxPriceCents != nil {
		out.MaxPriceCents = *p.MaxPriceCents
	}
	if p.MinDurationSec != nil {
		out.MinDurationSec = *p.MinDurationSec
	}
	if p.MaxDurationSec != nil {
		out.MaxDurationSec = *p.MaxDurationSec
	}
	if p.MinRating != nil {
		out.MinRating = *p.MinRating
	}
	if p.VerifiedOnly != nil {
		out.VerifiedOnly = *p.VerifiedOnly
	}
	if p.FreeOnly != nil {
		out.FreeOnly = *p.FreeOnly
	}
	if p.Sort != nil {
		out.Sort = *p.Sort
	}
	return out
}
