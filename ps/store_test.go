package ps

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
)

type failingBlobStore struct {
	loadErr error
	saveErr error
}

func (f *failingBlobStore) Load() ([]byte, bool, error) {
	return nil, false, f.loadErr
}

func (f *failingBlobStore) Save(data []byte) error {
	return f.saveErr
}

func (f *failingBlobStore) Delete() error {
	return f.saveErr
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(NewMemoryBlobStore(), nil)

	if outcome := store.Load(); outcome != Missing {
		t.Errorf("expected Missing, got %s", outcome)
	}
	if rows := store.Rows("food_entries"); len(rows) != 0 {
		t.Errorf("expected empty table, got %d rows", len(rows))
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	blob := NewMemoryBlobStore()

	store := NewStore(blob, nil)
	store.Load()
	outcome := store.Mutate(func(tables core.Tables) bool {
		tables["food_entries"] = append(tables["food_entries"], core.Record{
			"id": int64(1), "food_name": "Avena",
		})
		return true
	})
	if outcome != OK {
		t.Fatalf("expected OK flush, got %s", outcome)
	}

	// A fresh store over the same blob sees the flushed state.
	restored := NewStore(blob, nil)
	if outcome := restored.Load(); outcome != OK {
		t.Fatalf("expected OK load, got %s", outcome)
	}
	rows := restored.Rows("food_entries")
	if len(rows) != 1 || rows[0]["food_name"] != "Avena" {
		t.Errorf("unexpected restored rows: %v", rows)
	}
}

func TestStoreLoadCorruptBlob(t *testing.T) {
	blob := NewMemoryBlobStore()
	if err := blob.Save([]byte("{not json")); err != nil {
		t.Fatal(err)
	}

	store := NewStore(blob, nil)
	if outcome := store.Load(); outcome != ReadCorrupt {
		t.Errorf("expected ReadCorrupt, got %s", outcome)
	}
	if names := store.TableNames(); len(names) != 0 {
		t.Errorf("expected empty store, got tables %v", names)
	}
}

func TestStoreLoadReadError(t *testing.T) {
	store := NewStore(&failingBlobStore{loadErr: errors.New("device gone")}, nil)
	if outcome := store.Load(); outcome != ReadCorrupt {
		t.Errorf("expected ReadCorrupt, got %s", outcome)
	}
}

func TestStoreFlushFailureKeepsMemoryState(t *testing.T) {
	store := NewStore(&failingBlobStore{saveErr: errors.New("disk full")}, nil)
	store.Load()

	outcome := store.Mutate(func(tables core.Tables) bool {
		tables["water_entries"] = append(tables["water_entries"], core.Record{"id": int64(1)})
		return true
	})
	if outcome != WriteFailed {
		t.Errorf("expected WriteFailed, got %s", outcome)
	}
	// The in-memory change survives the failed flush.
	if rows := store.Rows("water_entries"); len(rows) != 1 {
		t.Errorf("expected 1 row despite flush failure, got %d", len(rows))
	}
}

func TestStoreMutateNoChangeSkipsFlush(t *testing.T) {
	store := NewStore(&failingBlobStore{saveErr: errors.New("disk full")}, nil)
	store.Load()

	outcome := store.Mutate(func(tables core.Tables) bool { return false })
	if outcome != OK {
		t.Errorf("expected OK for no-op mutation, got %s", outcome)
	}
}

func TestStoreWipe(t *testing.T) {
	blob := NewMemoryBlobStore()
	store := NewStore(blob, nil)
	store.Load()
	store.Mutate(func(tables core.Tables) bool {
		tables["food_entries"] = []core.Record{{"id": int64(1)}}
		return true
	})

	if outcome := store.Wipe(); outcome != OK {
		t.Fatalf("expected OK wipe, got %s", outcome)
	}
	if names := store.TableNames(); len(names) != 0 {
		t.Errorf("expected no tables after wipe, got %v", names)
	}

	restored := NewStore(blob, nil)
	if outcome := restored.Load(); outcome != Missing {
		t.Errorf("expected Missing after wipe, got %s", outcome)
	}
}

func TestStoreSnapshotIsDeepCopy(t *testing.T) {
	store := NewStore(NewMemoryBlobStore(), nil)
	store.Load()
	store.Mutate(func(tables core.Tables) bool {
		tables["food_entries"] = []core.Record{{"id": int64(1), "food_name": "Pan"}}
		return true
	})

	snapshot := store.Snapshot()
	snapshot["food_entries"][0]["food_name"] = "changed"

	rows := store.Rows("food_entries")
	if rows[0]["food_name"] != "Pan" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestBlobDocumentShape(t *testing.T) {
	blob := NewMemoryBlobStore()
	store := NewStore(blob, nil)
	store.Load()
	store.Mutate(func(tables core.Tables) bool {
		tables["water_entries"] = []core.Record{{"id": int64(1), "glasses": int64(3)}}
		return true
	})

	data, found, err := blob.Load()
	if err != nil || !found {
		t.Fatalf("expected saved blob, found=%v err=%v", found, err)
	}

	var decoded map[string][]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("blob is not a table-to-rows document: %v", err)
	}
	expected := map[string][]map[string]any{
		"water_entries": {{"id": 1.0, "glasses": 3.0}},
	}
	if !reflect.DeepEqual(decoded, expected) {
		t.Errorf("expected %v, got %v", expected, decoded)
	}
}
