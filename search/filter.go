package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/velalabs/vela/domain"
)

// FilterIndex implements fuzzy.Source over content items so matching
// runs without per-query allocations. Titles are lowercased once at
// build time.
type FilterIndex struct {
	items       []domain.ContentItem
	lowerTitles []string
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (ix *FilterIndex) String(i int) string { return ix.lowerTitles[i] }

// Len returns the number of indexed items (implements fuzzy.Source)
func (ix *FilterIndex) Len() int { return len(ix.items) }

// buildFilterIndex indexes items by lowercase title, dropping duplicate IDs.
func buildFilterIndex(items []domain.ContentItem) *FilterIndex {
	ix := &FilterIndex{
		items:       make([]domain.ContentItem, 0, len(items)),
		lowerTitles: make([]string, 0, len(items)),
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		ix.items = append(ix.items, item)
		ix.lowerTitles = append(ix.lowerTitles, strings.ToLower(item.Title))
	}
	return ix
}

// matchIndex runs the fuzzy pattern against the index and returns the
// matched items, best match first.
func matchIndex(ix *FilterIndex, query string) []domain.ContentItem {
	matches := fuzzy.FindFrom(strings.ToLower(query), ix)
	results := make([]domain.ContentItem, 0, len(matches))
	for _, m := range matches {
		results = append(results, ix.items[m.Index])
	}
	return results
}
