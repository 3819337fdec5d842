package search

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// fetchSuggestions combines server suggestions with locally derived
// ones. A server failure degrades to local-only; it is never surfaced
// as an error.
func (o *Orchestrator) fetchSuggestions(ctx context.Context, query string) []string {
	local := o.localSuggestions(query)

	remote, err := o.api.Suggestions(ctx, query, o.cfg.SuggestLimit)
	if err != nil {
		o.logger.Warn("suggestion fetch failed, using local only", "query", query, "error", err)
		return capStrings(local, o.cfg.SuggestLimit)
	}

	return mergeSuggestions(remote, local, o.cfg.SuggestLimit)
}

// localSuggestions ranks past queries and cached titles against the
// typed prefix.
func (o *Orchestrator) localSuggestions(query string) []string {
	candidates := o.store.History()
	for _, item := range o.store.CachedItems() {
		if item.Title != "" {
			candidates = append(candidates, item.Title)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.RankFindFold(query, candidates)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Target)
	}
	return out
}

// mergeSuggestions keeps server order first, then fills the remainder
// with local matches the server did not already return.
func mergeSuggestions(remote, local []string, limit int) []string {
	merged := make([]string, 0, limit)
	seen := make(map[string]bool, limit)
	for _, group := range [][]string{remote, local} {
		for _, s := range group {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, s)
			if len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}

func capStrings(list []string, limit int) []string {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
