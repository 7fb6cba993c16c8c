package ps

import (
	"bytes"
	"testing"

	"github.com/go-git/go-billy/v6/memfs"
)

func TestFileBlobStoreRoundTrip(t *testing.T) {
	store := NewFileBlobStoreFS(memfs.New())

	if _, found, err := store.Load(); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	payload := []byte(`{"food_entries":[]}`)
	if err := store.Save(payload); err != nil {
		t.Fatal(err)
	}

	data, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("expected blob, found=%v err=%v", found, err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("expected %s, got %s", payload, data)
	}
}

func TestFileBlobStoreSaveReplacesWhole(t *testing.T) {
	store := NewFileBlobStoreFS(memfs.New())

	if err := store.Save([]byte(`{"a":[1,2,3]}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save([]byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	data, _, _ := store.Load()
	if string(data) != `{}` {
		t.Errorf("expected replaced blob, got %s", data)
	}
}

func TestFileBlobStoreDelete(t *testing.T) {
	store := NewFileBlobStoreFS(memfs.New())

	// Deleting a blob that never existed is not an error.
	if err := store.Delete(); err != nil {
		t.Fatal(err)
	}

	if err := store.Save([]byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(); err != nil {
		t.Fatal(err)
	}
	if _, found, err := store.Load(); err != nil || found {
		t.Errorf("expected missing after delete, found=%v err=%v", found, err)
	}
}

func TestFileBlobStoreLeavesNoTempFile(t *testing.T) {
	fs := memfs.New()
	store := NewFileBlobStoreFS(fs)

	if err := store.Save([]byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	entries, err := fs.ReadDir(".")
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != BlobFileName {
			t.Errorf("unexpected file left behind: %s", entry.Name())
		}
	}
}
