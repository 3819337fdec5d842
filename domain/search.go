package domain

// SearchRequest describes one page of a content search
type SearchRequest struct {
	Query   string
	Filters SearchFilters
	Page    int // 1-based
	Limit   int
}

// Page is one page of content results from the backend
type Page struct {
	Items   []ContentItem
	HasMore bool
}
