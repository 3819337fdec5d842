// Package feed loads the browse surfaces: the personalized home feed,
// the trending rail, categories, and recommendations. Every outcome is
// dispatched into the store; errors become stream state or notices
// instead of propagating to the caller's UI.
package feed

import (
	"context"
	"log/slog"

	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/pager"
	"github.com/velalabs/vela/store"
)

// Service drives the feed stream and the browse rails.
type Service struct {
	api    domain.FeedAPI
	store  *store.Store
	pager  *pager.Pager
	logger *slog.Logger
}

// New returns a feed service paging with the given size.
func New(api domain.FeedAPI, st *store.Store, pageSize int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		api:    api,
		store:  st,
		logger: logger,
	}
	s.pager = pager.New(pageSize, s.fetchPage, logger)
	return s
}

// Refresh replaces the feed with a fresh first page. On failure the
// previous items stay visible behind the stream error.
func (s *Service) Refresh(ctx context.Context) error {
	s.store.Dispatch(domain.FeedLoading{})

	res, err := s.pager.Refresh(ctx)
	if err != nil {
		s.logger.Warn("feed refresh failed", "error", err)
		s.store.Dispatch(domain.FeedFailed{Message: domain.UserMessage(err)})
		s.store.Dispatch(domain.PushNotice{Notice: domain.NewNotice(domain.NoticeError, domain.UserMessage(err))})
		return err
	}
	if res.Skipped {
		s.store.Dispatch(domain.AppendFeed{HasMore: s.pager.HasMore()})
		return nil
	}

	s.store.Dispatch(domain.SetFeed{Items: res.Items, HasMore: res.HasMore})
	return nil
}

// LoadMore appends the next feed page. The cursor only moves on
// success, so a failed page is retried by the next call.
func (s *Service) LoadMore(ctx context.Context) error {
	if !s.pager.HasMore() {
		return nil
	}
	s.store.Dispatch(domain.FeedLoading{})

	res, err := s.pager.LoadMore(ctx)
	if err != nil {
		s.logger.Warn("feed page failed", "error", err)
		s.store.Dispatch(domain.FeedFailed{Message: domain.UserMessage(err)})
		return err
	}
	if res.Skipped {
		s.store.Dispatch(domain.AppendFeed{HasMore: s.pager.HasMore()})
		return nil
	}

	s.store.Dispatch(domain.AppendFeed{Items: res.Items, HasMore: res.HasMore})
	return nil
}

// Trending reloads the trending rail.
func (s *Service) Trending(ctx context.Context) error {
	items, err := s.api.Trending(ctx)
	if err != nil {
		return s.railFailed("trending", err)
	}
	s.store.Dispatch(domain.SetTrending{Items: items})
	return nil
}

// Categories reloads the browsable category list.
func (s *Service) Categories(ctx context.Context) error {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		return s.railFailed("categories", err)
	}
	s.store.Dispatch(domain.SetCategories{Categories: categories})
	return nil
}

// RecommendedCreators reloads the creator recommendation rail.
func (s *Service) RecommendedCreators(ctx context.Context, limit int) error {
	creators, err := s.api.RecommendedCreators(ctx, limit)
	if err != nil {
		return s.railFailed("creator recommendations", err)
	}
	s.store.Dispatch(domain.SetCreatorRecs{Creators: creators})
	return nil
}

// RecommendedContent reloads the content recommendation rail.
func (s *Service) RecommendedContent(ctx context.Context, limit int) error {
	items, err := s.api.RecommendedContent(ctx, limit)
	if err != nil {
		return s.railFailed("content recommendations", err)
	}
	s.store.Dispatch(domain.SetContentRecs{Items: items})
	return nil
}

// railFailed records a rail load failure as a notice. The rail keeps
// whatever it showed before.
func (s *Service) railFailed(rail string, err error) error {
	s.logger.Warn("rail load failed", "rail", rail, "error", err)
	s.store.Dispatch(domain.PushNotice{
		Notice: domain.NewNotice(domain.NoticeError, domain.UserMessage(err)),
	})
	return err
}

func (s *Service) fetchPage(ctx context.Context, page, size int) ([]domain.ContentItem, bool, error) {
	result, err := s.api.Feed(ctx, page, size)
	if err != nil {
		return nil, false, err
	}
	return result.Items, result.HasMore, nil
}
