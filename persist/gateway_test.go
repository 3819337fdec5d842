package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/goleak"

	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/logging"
)

func TestSaveLoadAcrossReopen(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()

	g, err := Open(dir, logging.Null())
	require.NoError(t, err)

	g.SaveEngagement(domain.EngagementRecord{
		Version: domain.RecordVersion,
		Liked:   []string{"c1", "c2"},
	})
	g.SaveHistory(domain.HistoryRecord{
		Version: domain.RecordVersion,
		Queries: []string{"lofi beats"},
	})
	require.NoError(t, g.Close())

	g2, err := Open(dir, logging.Null())
	require.NoError(t, err)
	defer g2.Close()

	eng, ok := g2.LoadEngagement()
	require.True(t, ok)
	assert.Equal(t, []string{"c1", "c2"}, eng.Liked)

	hist, ok := g2.LoadHistory()
	require.True(t, ok)
	assert.Equal(t, []string{"lofi beats"}, hist.Queries)

	_, ok = g2.LoadPreferences()
	assert.False(t, ok, "never-saved key reports absent")
}

func TestRepeatedSavesKeepNewestValue(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()

	g, err := Open(dir, logging.Null())
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		g.SaveViewing(domain.ViewingRecord{Version: 1, ContentIDs: []string{"old"}})
	}
	g.SaveViewing(domain.ViewingRecord{Version: 1, ContentIDs: []string{"newest"}})
	require.NoError(t, g.Close())

	g2, err := Open(dir, logging.Null())
	require.NoError(t, err)
	defer g2.Close()

	rec, ok := g2.LoadViewing()
	require.True(t, ok)
	assert.Equal(t, []string{"newest"}, rec.ContentIDs)
}

func TestSaveVisibleToLoadBeforeFlush(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, err := Open(t.TempDir(), logging.Null())
	require.NoError(t, err)
	defer g.Close()

	g.SaveFilters(domain.FiltersRecord{Version: 1, Filters: domain.SearchFilters{MinRating: 4}})

	rec, ok := g.LoadFilters()
	require.True(t, ok, "read must not wait on the disk write")
	assert.Equal(t, 4.0, rec.Filters.MinRating)
}

func TestMemoryOnlyMode(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, err := Open("", logging.Null())
	require.NoError(t, err)

	g.SaveFollowed(domain.FollowedRecord{Version: 1, CreatorIDs: []string{"cr1"}})

	rec, ok := g.LoadFollowed()
	require.True(t, ok)
	assert.Equal(t, []string{"cr1"}, rec.CreatorIDs)

	require.NoError(t, g.Close())
	require.NoError(t, g.Close(), "double close is safe")
}

func TestMalformedRecordReportsAbsent(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()

	g, err := Open(dir, logging.Null())
	require.NoError(t, err)
	require.NoError(t, g.Close())

	// Corrupt the stored record directly.
	db, err := bolt.Open(filepath.Join(dir, "vela.db"), 0600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("records")).Put([]byte("prefs"), []byte("{not json"))
	}))
	require.NoError(t, db.Close())

	g2, err := Open(dir, logging.Null())
	require.NoError(t, err)
	defer g2.Close()

	_, ok := g2.LoadPreferences()
	assert.False(t, ok, "malformed record falls back to defaults instead of failing")
}

func TestSaveAfterCloseIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()

	g, err := Open(dir, logging.Null())
	require.NoError(t, err)
	require.NoError(t, g.Close())

	g.SaveHistory(domain.HistoryRecord{Version: 1, Queries: []string{"late"}})

	g2, err := Open(dir, logging.Null())
	require.NoError(t, err)
	defer g2.Close()

	_, ok := g2.LoadHistory()
	assert.False(t, ok)
}
