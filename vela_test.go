package vela

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/velalabs/vela/config"
	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/logging"
)

// fakeBackend satisfies domain.API with canned data so engine tests
// never touch the network.
type fakeBackend struct {
	feed       []domain.ContentItem
	trending   []domain.ContentItem
	categories []domain.Category
	creators   []domain.Creator
	recommends []domain.ContentItem
	err        error
}

func (f *fakeBackend) SearchContent(_ context.Context, req domain.SearchRequest) (domain.Page, error) {
	if f.err != nil {
		return domain.Page{}, f.err
	}
	return domain.Page{Items: f.feed, HasMore: false}, nil
}

func (f *fakeBackend) Suggestions(context.Context, string, int) ([]string, error) {
	return nil, f.err
}

func (f *fakeBackend) Feed(_ context.Context, page, limit int) (domain.Page, error) {
	if f.err != nil {
		return domain.Page{}, f.err
	}
	return domain.Page{Items: f.feed, HasMore: false}, nil
}

func (f *fakeBackend) Trending(context.Context) ([]domain.ContentItem, error) {
	return f.trending, f.err
}

func (f *fakeBackend) Categories(context.Context) ([]domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeBackend) RecommendedCreators(_ context.Context, limit int) ([]domain.Creator, error) {
	return f.creators, f.err
}

func (f *fakeBackend) RecommendedContent(_ context.Context, limit int) ([]domain.ContentItem, error) {
	return f.recommends, f.err
}

func (f *fakeBackend) SetFollow(context.Context, string, bool) error { return f.err }

func (f *fakeBackend) Interact(context.Context, string, domain.InteractionType) error {
	return f.err
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Storage.Dir = dir
	return cfg
}

func newTestEngine(t *testing.T, dir string, backend domain.API) *Engine {
	t.Helper()
	eng, err := New(testConfig(dir), WithAPI(backend), WithLogger(logging.Null()))
	require.NoError(t, err)
	return eng
}

func TestEngineStateSurvivesRestart(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	backend := &fakeBackend{}
	ctx := context.Background()

	eng := newTestEngine(t, dir, backend)
	st := eng.Store()

	require.NoError(t, eng.Engage().ToggleFollow(ctx, "cr1"))
	require.NoError(t, eng.Engage().ToggleLike(ctx, "c1"))
	require.NoError(t, eng.Engage().ToggleBookmark(ctx, "c2"))
	st.Dispatch(domain.AppendHistory{Query: "alpha"})
	st.Dispatch(domain.AppendHistory{Query: "beta"})
	st.Dispatch(domain.RecordView{ContentID: "v1"})
	st.Dispatch(domain.RecordView{ContentID: "v2"})
	st.Dispatch(domain.SetPreferences{Preferences: domain.Preferences{
		Autoplay:  false,
		DataSaver: true,
	}})
	free := true
	st.Dispatch(domain.UpdateFilters{Patch: domain.FilterPatch{FreeOnly: &free}})

	require.NoError(t, eng.Close())

	// Fresh engine over the same directory picks everything back up.
	eng2 := newTestEngine(t, dir, backend)
	st2 := eng2.Store()

	assert.True(t, st2.IsFollowed("cr1"))
	assert.True(t, st2.IsLiked("c1"))
	assert.True(t, st2.IsBookmarked("c2"))
	assert.Equal(t, []string{"beta", "alpha"}, st2.History(), "history order survives the restart")
	assert.Equal(t, []string{"v2", "v1"}, st2.RecentlyViewed())
	assert.False(t, st2.Preferences().Autoplay)
	assert.True(t, st2.Preferences().DataSaver)
	assert.True(t, st2.Filters().FreeOnly)
	assert.Equal(t, domain.SortRelevance, st2.Filters().Sort)

	// Restore must not mutate the stored records: a third generation
	// sees the identical state.
	require.NoError(t, eng2.Close())
	eng3 := newTestEngine(t, dir, backend)
	defer func() { require.NoError(t, eng3.Close()) }()

	assert.True(t, eng3.Store().IsFollowed("cr1"))
	assert.Equal(t, []string{"beta", "alpha"}, eng3.Store().History())
	assert.Equal(t, []string{"v2", "v1"}, eng3.Store().RecentlyViewed())
}

func TestEngineMemoryOnlyMode(t *testing.T) {
	defer goleak.VerifyNone(t)

	eng := newTestEngine(t, "", &fakeBackend{})
	eng.Store().Dispatch(domain.AppendHistory{Query: "ephemeral"})
	assert.Equal(t, []string{"ephemeral"}, eng.Store().History())
	require.NoError(t, eng.Close())
}

func TestPreloadFillsEverySurface(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &fakeBackend{
		feed:       []domain.ContentItem{{ID: "f1", Title: "Feed One"}},
		trending:   []domain.ContentItem{{ID: "t1", Title: "Trending One"}},
		categories: []domain.Category{{ID: "cat1", Slug: "music", Name: "Music"}},
		creators:   []domain.Creator{{ID: "cr1", Handle: "maya"}},
		recommends: []domain.ContentItem{{ID: "r1", Title: "Rec One"}},
	}
	eng := newTestEngine(t, t.TempDir(), backend)
	defer func() { require.NoError(t, eng.Close()) }()

	require.NoError(t, eng.Preload(context.Background()))

	st := eng.Store()
	assert.Equal(t, "f1", st.Feed().Items[0].ID)
	assert.Equal(t, "t1", st.Trending()[0].ID)
	assert.Equal(t, "music", st.Categories()[0].Slug)
	assert.Equal(t, "maya", st.CreatorRecs()[0].Handle)
	assert.Equal(t, "r1", st.ContentRecs()[0].ID)
}

func TestPreloadPartialFailureKeepsDispatchedData(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &fakeBackend{
		trending: []domain.ContentItem{{ID: "t1", Title: "Trending One"}},
	}
	eng := newTestEngine(t, t.TempDir(), backend)
	defer func() { require.NoError(t, eng.Close()) }()

	// Trending succeeds first, then every remaining call fails.
	require.NoError(t, eng.Feed().Trending(context.Background()))
	backend.err = domain.ErrBackendUnreachable

	err := eng.Preload(context.Background())
	require.Error(t, err)
	assert.Equal(t, "t1", eng.Store().Trending()[0].ID, "earlier results are not rolled back")
}

func TestPreloadAfterClose(t *testing.T) {
	eng := newTestEngine(t, t.TempDir(), &fakeBackend{})
	require.NoError(t, eng.Close())

	err := eng.Preload(context.Background())
	assert.ErrorIs(t, err, domain.ErrClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	eng := newTestEngine(t, t.TempDir(), &fakeBackend{})
	require.NoError(t, eng.Close())
	require.NoError(t, eng.Close())
}

func TestUserActionsArePersistedReactively(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	eng := newTestEngine(t, dir, &fakeBackend{})

	// Plain store dispatches are enough; the reactor does the saving.
	eng.Store().Dispatch(domain.ToggleFollow{CreatorID: "cr9"})
	eng.Store().Dispatch(domain.ClearHistory{})
	require.NoError(t, eng.Close())

	eng2 := newTestEngine(t, dir, &fakeBackend{})
	defer func() { require.NoError(t, eng2.Close()) }()
	assert.True(t, eng2.Store().IsFollowed("cr9"))
	assert.Empty(t, eng2.Store().History())
}

func TestEngineExposesServices(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Dir = ""
	eng, err := New(cfg, WithAPI(&fakeBackend{}), WithLogger(logging.Null()))
	require.NoError(t, err)
	assert.NotNil(t, eng.Store())
	assert.NotNil(t, eng.Search())
	assert.NotNil(t, eng.Engage())
	assert.NotNil(t, eng.Feed())
	require.NoError(t, eng.Close())
}

func TestSweeperRemovesExpiredEntries(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig("")
	cfg.Cache.TTL = 20 * time.Millisecond
	eng, err := New(cfg, WithAPI(&fakeBackend{}), WithLogger(logging.Null()))
	require.NoError(t, err)
	defer func() { require.NoError(t, eng.Close()) }()

	eng.Store().Dispatch(domain.CachePut{Item: domain.ContentItem{ID: "c1", Title: "Clip"}, TTL: 5 * time.Millisecond})
	require.Equal(t, 1, eng.Store().CacheLen())

	assert.Eventually(t, func() bool {
		return eng.Store().CacheLen() == 0
	}, time.Second, 10*time.Millisecond, "sweeper collects expired entries without a read")
}
