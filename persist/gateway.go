package persist

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/velalabs/vela/domain"
)

var bucketRecords = []byte("records")

// Record keys. Each key holds one whole-value JSON record.
const (
	keyPrefs      = "prefs"
	keyViewing    = "viewing"
	keyHistory    = "search_history"
	keyFollowed   = "followed"
	keyEngagement = "engagement"
	keyFilters    = "filters"
)

// Gateway persists user state records in BoltDB. Saves are
// fire-and-forget: the value is queued and a background writer flushes
// it, coalescing repeated saves of the same key to the newest value.
// Reads are served from memory once a key has been seen.
type Gateway struct {
	db     *bolt.DB
	logger *slog.Logger

	mu      sync.RWMutex
	mem     map[string][]byte // newest value per key, serves reads
	pending map[string][]byte // queued for the next flush
	closed  bool

	kick chan struct{}
	quit chan struct{}
	done chan struct{}
}

// Open creates a gateway backed by <dir>/vela.db. An empty dir opens a
// memory-only gateway with no persistence.
func Open(dir string, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		logger:  logger,
		mem:     make(map[string][]byte),
		pending: make(map[string][]byte),
	}
	if dir == "" {
		return g, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "vela.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	g.db = db
	g.kick = make(chan struct{}, 1)
	g.quit = make(chan struct{})
	g.done = make(chan struct{})
	go g.writeLoop()

	return g, nil
}

// Close drains the write queue and closes the database.
func (g *Gateway) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	close(g.quit)
	<-g.done
	return g.db.Close()
}

// === Generic helpers ===

func (g *Gateway) get(key string, dest interface{}) bool {
	g.mu.RLock()
	data, ok := g.mem[key]
	g.mu.RUnlock()

	if ok {
		return json.Unmarshal(data, dest) == nil
	}

	if g.db == nil {
		return false
	}

	var raw []byte
	g.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})

	if raw == nil {
		return false
	}

	// Promote to memory for later reads
	g.mu.Lock()
	g.mem[key] = raw
	g.mu.Unlock()

	if err := json.Unmarshal(raw, dest); err != nil {
		g.logger.Warn("discarding malformed record", "key", key, "error", err)
		return false
	}
	return true
}

func (g *Gateway) enqueue(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		g.logger.Error("failed to encode record", "key", key, "error", err)
		return
	}

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.mem[key] = data
	if g.db == nil {
		g.mu.Unlock()
		return
	}
	g.pending[key] = data
	g.mu.Unlock()

	select {
	case g.kick <- struct{}{}:
	default:
	}
}

func (g *Gateway) writeLoop() {
	defer close(g.done)
	for {
		select {
		case <-g.kick:
			g.flush()
		case <-g.quit:
			g.flush()
			return
		}
	}
}

func (g *Gateway) flush() {
	g.mu.Lock()
	if len(g.pending) == 0 {
		g.mu.Unlock()
		return
	}
	batch := g.pending
	g.pending = make(map[string][]byte)
	g.mu.Unlock()

	err := g.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		for k, v := range batch {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		g.logger.Error("record flush failed", "records", len(batch), "error", err)
		// Put the batch back so a later save or Close retries it,
		// unless a newer value has already superseded it.
		g.mu.Lock()
		for k, v := range batch {
			if _, exists := g.pending[k]; !exists {
				g.pending[k] = v
			}
		}
		g.mu.Unlock()
	}
}

// === Preferences ===

func (g *Gateway) LoadPreferences() (domain.PreferencesRecord, bool) {
	var rec domain.PreferencesRecord
	ok := g.get(keyPrefs, &rec)
	return rec, ok
}

func (g *Gateway) SavePreferences(rec domain.PreferencesRecord) {
	g.enqueue(keyPrefs, rec)
}

// === Viewing history ===

func (g *Gateway) LoadViewing() (domain.ViewingRecord, bool) {
	var rec domain.ViewingRecord
	ok := g.get(keyViewing, &rec)
	return rec, ok
}

func (g *Gateway) SaveViewing(rec domain.ViewingRecord) {
	g.enqueue(keyViewing, rec)
}

// === Search history ===

func (g *Gateway) LoadHistory() (domain.HistoryRecord, bool) {
	var rec domain.HistoryRecord
	ok := g.get(keyHistory, &rec)
	return rec, ok
}

func (g *Gateway) SaveHistory(rec domain.HistoryRecord) {
	g.enqueue(keyHistory, rec)
}

// === Followed creators ===

func (g *Gateway) LoadFollowed() (domain.FollowedRecord, bool) {
	var rec domain.FollowedRecord
	ok := g.get(keyFollowed, &rec)
	return rec, ok
}

func (g *Gateway) SaveFollowed(rec domain.FollowedRecord) {
	g.enqueue(keyFollowed, rec)
}

// === Engagement sets ===

func (g *Gateway) LoadEngagement() (domain.EngagementRecord, bool) {
	var rec domain.EngagementRecord
	ok := g.get(keyEngagement, &rec)
	return rec, ok
}

func (g *Gateway) SaveEngagement(rec domain.EngagementRecord) {
	g.enqueue(keyEngagement, rec)
}

// === Search filters ===

func (g *Gateway) LoadFilters() (domain.FiltersRecord, bool) {
	var rec domain.FiltersRecord
	ok := g.get(keyFilters, &rec)
	return rec, ok
}

func (g *Gateway) SaveFilters(rec domain.FiltersRecord) {
	g.enqueue(keyFilters, rec)
}
