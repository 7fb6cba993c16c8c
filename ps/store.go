package ps

import (
	"encoding/json"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
)

// Outcome classifies a persistence operation. It stays internal to the
// data layer: callers above the engine never see persistence failures,
// they see the in-memory state the store fell back to.
type Outcome int

const (
	// OK means the blob round-trip succeeded.
	OK Outcome = iota
	// Missing means no blob exists yet; the store starts empty.
	Missing
	// ReadCorrupt means the blob existed but did not decode; the store
	// starts empty and the blob is left in place.
	ReadCorrupt
	// WriteFailed means a flush did not persist; the in-memory state is
	// still current and the session continues.
	WriteFailed
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case ReadCorrupt:
		return "read-corrupt"
	default:
		return "write-failed"
	}
}

// Store is the in-memory table map with write-through persistence. The
// lock guards the table map itself; Mutate pairs each table-map change
// with its flush. Row maps handed out by Rows are shared, so the engine
// may edit them in place before a Mutate — safe under the single-writer
// model this layer assumes.
type Store struct {
	mu     sync.RWMutex
	tables core.Tables
	blob   BlobStore
	log    *zap.Logger
}

func NewStore(blob BlobStore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		tables: core.Tables{},
		blob:   blob,
		log:    log,
	}
}

// Load hydrates the table map from the blob. Absent and undecodable blobs
// both leave the store empty; the distinction only reaches the log.
func (store *Store) Load() Outcome {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.tables = core.Tables{}

	data, found, err := store.blob.Load()
	if err != nil {
		store.log.Warn("blob read failed, starting empty", zap.Error(err))
		return ReadCorrupt
	}
	if !found {
		return Missing
	}

	var tables core.Tables
	if err := json.Unmarshal(data, &tables); err != nil {
		store.log.Warn("blob did not decode, starting empty", zap.Error(err))
		return ReadCorrupt
	}
	if tables != nil {
		store.tables = tables
	}
	return OK
}

// Mutate runs fn under the write lock and, when fn reports a change,
// flushes the whole table map back to the blob. A failed flush is logged
// and reported but the in-memory change stands.
func (store *Store) Mutate(fn func(tables core.Tables) bool) Outcome {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !fn(store.tables) {
		return OK
	}
	return store.flushLocked()
}

// Wipe drops every table and persists the empty state.
func (store *Store) Wipe() Outcome {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.tables = core.Tables{}
	if err := store.blob.Delete(); err != nil {
		store.log.Warn("blob delete failed", zap.Error(err))
		return WriteFailed
	}
	return OK
}

// Rows returns a snapshot of a table's row slice. The record maps are
// shared; callers that hand rows outward clone them first.
func (store *Store) Rows(table string) []core.Record {
	store.mu.RLock()
	defer store.mu.RUnlock()

	rows := store.tables[table]
	snapshot := make([]core.Record, len(rows))
	copy(snapshot, rows)
	return snapshot
}

// TableNames lists the known tables in stable order.
func (store *Store) TableNames() []string {
	store.mu.RLock()
	defer store.mu.RUnlock()

	names := make([]string, 0, len(store.tables))
	for name := range store.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot deep-copies the whole table map, for callers that need a
// consistent view across tables.
func (store *Store) Snapshot() core.Tables {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.tables.Clone()
}

func (store *Store) flushLocked() Outcome {
	data, err := json.Marshal(store.tables)
	if err != nil {
		store.log.Warn("table map did not encode", zap.Error(err))
		return WriteFailed
	}
	if err := store.blob.Save(data); err != nil {
		store.log.Warn("flush failed, keeping in-memory state", zap.Error(err))
		return WriteFailed
	}
	return OK
}
