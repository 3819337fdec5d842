// Package engage applies follow, like, and bookmark mutations
// optimistically: the store is updated first so the UI answers
// immediately, then the backend call runs, and a failure re-dispatches
// the same toggle to put the state back where it was.
package engage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/store"
)

// Coordinator serializes mutations per id: two toggles on the same
// content or creator run one after the other, while distinct ids
// proceed independently.
type Coordinator struct {
	api    domain.EngageAPI
	store  *store.Store
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a coordinator.
func New(api domain.EngageAPI, st *store.Store, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		api:    api,
		store:  st,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// ToggleFollow flips the follow state for a creator.
func (c *Coordinator) ToggleFollow(ctx context.Context, creatorID string) error {
	if creatorID == "" {
		return nil
	}
	unlock := c.lock(creatorID)
	defer unlock()

	following := c.store.IsFollowed(creatorID)
	c.store.Dispatch(domain.ToggleFollow{CreatorID: creatorID})

	if err := c.api.SetFollow(ctx, creatorID, !following); err != nil {
		c.logger.Warn("follow change rejected, reverting", "creator_id", creatorID, "error", err)
		c.store.Dispatch(domain.ToggleFollow{CreatorID: creatorID})
		c.notifyFailure("Couldn't update follow.", err)
		return err
	}
	return nil
}

// ToggleLike flips the like state for a content item.
func (c *Coordinator) ToggleLike(ctx context.Context, contentID string) error {
	return c.toggleInteraction(ctx, contentID, domain.InteractLike, domain.InteractUnlike,
		c.store.IsLiked, func(id string) domain.Action { return domain.ToggleLike{ContentID: id} },
		"Couldn't update like.")
}

// ToggleBookmark flips the bookmark state for a content item.
func (c *Coordinator) ToggleBookmark(ctx context.Context, contentID string) error {
	return c.toggleInteraction(ctx, contentID, domain.InteractBookmark, domain.InteractUnbookmark,
		c.store.IsBookmarked, func(id string) domain.Action { return domain.ToggleBookmark{ContentID: id} },
		"Couldn't update bookmark.")
}

// Share reports a share interaction. Shares carry no local state, so
// nothing is applied optimistically and there is nothing to revert.
func (c *Coordinator) Share(ctx context.Context, contentID string) error {
	if contentID == "" {
		return nil
	}
	if err := c.api.Interact(ctx, contentID, domain.InteractShare); err != nil {
		c.logger.Warn("share failed", "content_id", contentID, "error", err)
		c.notifyFailure("Couldn't share.", err)
		return err
	}
	return nil
}

// toggleInteraction runs the shared apply-call-revert sequence for like
// and bookmark. On success the cached copy of the item is evicted since
// its engagement counters are now stale.
func (c *Coordinator) toggleInteraction(
	ctx context.Context,
	contentID string,
	on, off domain.InteractionType,
	active func(string) bool,
	action func(string) domain.Action,
	failureText string,
) error {
	if contentID == "" {
		return nil
	}
	unlock := c.lock(contentID)
	defer unlock()

	kind := on
	if active(contentID) {
		kind = off
	}
	c.store.Dispatch(action(contentID))

	if err := c.api.Interact(ctx, contentID, kind); err != nil {
		c.logger.Warn("interaction rejected, reverting", "content_id", contentID, "type", string(kind), "error", err)
		c.store.Dispatch(action(contentID))
		c.notifyFailure(failureText, err)
		return err
	}

	c.store.Dispatch(domain.CacheEvict{ID: contentID})
	return nil
}

func (c *Coordinator) notifyFailure(prefix string, err error) {
	c.store.Dispatch(domain.PushNotice{
		Notice: domain.NewNotice(domain.NoticeError, prefix+" "+domain.UserMessage(err)),
	})
}

// lock acquires the mutex for one id, creating it on first use, and
// returns the matching unlock.
func (c *Coordinator) lock(id string) func() {
	c.mu.Lock()
	m, ok := c.locks[id]
	if !ok {
		m = &sync.Mutex{}
		c.locks[id] = m
	}
	c.mu.Unlock()

	m.Lock()
	return m.Unlock
}
