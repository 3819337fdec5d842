package store

import (
	"fmt"
	"strings"

	"github.com/velalabs/vela/domain"
)

// apply mutates state for one action. Caller holds the write lock.
func (s *Store) apply(a domain.Action) {
	switch a := a.(type) {

	// === Feed stream ===

	case domain.FeedLoading:
		s.st.feed.loading = true
		s.st.feed.err = ""

	case domain.SetFeed:
		s.st.feed = stream{items: cloneItems(a.Items), hasMore: a.HasMore}
		s.cacheItems(a.Items)

	case domain.AppendFeed:
		s.st.feed.items = appendDedupe(s.st.feed.items, a.Items)
		s.st.feed.hasMore = a.HasMore
		s.st.feed.loading = false
		s.st.feed.err = ""
		s.cacheItems(a.Items)

	case domain.FeedFailed:
		s.st.feed.loading = false
		s.st.feed.err = a.Message

	// === Search stream ===

	case domain.SearchLoading:
		s.st.search.loading = true
		s.st.search.err = ""

	case domain.SetSearchResults:
		s.st.search.stream = stream{items: cloneItems(a.Items), hasMore: a.HasMore}
		s.st.search.query = a.Query
		s.cacheItems(a.Items)

	case domain.AppendSearchResults:
		s.st.search.items = appendDedupe(s.st.search.items, a.Items)
		s.st.search.hasMore = a.HasMore
		s.st.search.loading = false
		s.st.search.err = ""
		s.cacheItems(a.Items)

	case domain.SearchFailed:
		s.st.search.loading = false
		s.st.search.err = a.Message

	case domain.ClearSearch:
		s.st.search = searchState{}

	case domain.SetSuggestions:
		s.st.search.query = a.Query
		s.st.search.suggestions = cloneStrings(a.Suggestions)

	case domain.UpdateFilters:
		s.st.filters = s.st.filters.Merge(a.Patch)

	case domain.AppendHistory:
		q := strings.TrimSpace(a.Query)
		if q == "" {
			return
		}
		for _, existing := range s.st.history {
			if existing == q {
				// Resubmitting a remembered query changes nothing.
				return
			}
		}
		s.st.history = prependBounded(s.st.history, q, s.cfg.HistoryLimit)

	case domain.ClearHistory:
		s.st.history = nil

	// === Browse surfaces ===

	case domain.SetTrending:
		s.st.trending = cloneItems(a.Items)
		s.cacheItems(a.Items)

	case domain.SetCategories:
		s.st.categories = append([]domain.Category(nil), a.Categories...)

	case domain.SetCreatorRecs:
		s.st.creatorRecs = append([]domain.Creator(nil), a.Creators...)

	case domain.SetContentRecs:
		s.st.contentRecs = cloneItems(a.Items)
		s.cacheItems(a.Items)

	// === Content cache ===

	case domain.CachePut:
		s.cache.Put(a.Item, a.TTL)

	case domain.CacheEvict:
		s.cache.Evict(a.ID)

	case domain.CacheClear:
		s.cache.Clear()

	// === Engagement ===

	case domain.ToggleLike:
		toggle(s.st.liked, a.ContentID)

	case domain.ToggleBookmark:
		toggle(s.st.bookmarked, a.ContentID)

	case domain.ToggleFollow:
		toggle(s.st.followed, a.CreatorID)

	// === User state ===

	case domain.RecordView:
		if a.ContentID == "" {
			return
		}
		s.st.viewing = moveToFront(s.st.viewing, a.ContentID, s.cfg.ViewingLimit)

	case domain.SetPreferences:
		p := a.Preferences
		p.PreferredCategories = cloneStrings(p.PreferredCategories)
		s.st.prefs = p

	// === Notices ===

	case domain.PushNotice:
		s.st.notices = append(s.st.notices, a.Notice)
		if len(s.st.notices) > s.cfg.NoticeLimit {
			s.st.notices = s.st.notices[len(s.st.notices)-s.cfg.NoticeLimit:]
		}

	case domain.DismissNotice:
		for i, n := range s.st.notices {
			if n.ID == a.ID {
				s.st.notices = append(s.st.notices[:i], s.st.notices[i+1:]...)
				break
			}
		}

	default:
		s.logger.Debug("ignoring unrecognized action", "action", fmt.Sprintf("%T", a))
	}
}

// cacheItems opportunistically caches items that arrived on a stream.
func (s *Store) cacheItems(items []domain.ContentItem) {
	for _, it := range items {
		s.cache.Put(it, 0)
	}
}

func cloneItems(items []domain.ContentItem) []domain.ContentItem {
	if items == nil {
		return nil
	}
	return append([]domain.ContentItem(nil), items...)
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append([]string(nil), ss...)
}

// appendDedupe appends incoming items whose IDs are not already present.
func appendDedupe(existing, incoming []domain.ContentItem) []domain.ContentItem {
	seen := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		seen[it.ID] = struct{}{}
	}
	for _, it := range incoming {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		existing = append(existing, it)
	}
	return existing
}

func toggle(set map[string]struct{}, id string) {
	if id == "" {
		return
	}
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
}

// moveToFront puts id first, removing any earlier occurrence, and trims
// to limit.
func moveToFront(list []string, id string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, id)
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// prependBounded puts v first and trims to limit.
func prependBounded(list []string, v string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, v)
	out = append(out, list...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
