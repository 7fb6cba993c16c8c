package ps

// BlobStore is the single-document persistence surface: the entire table
// map serializes to one JSON blob, and every mutation rewrites it whole.
type BlobStore interface {
	// Load returns the blob, or found=false when nothing has been saved yet.
	Load() (data []byte, found bool, err error)
	// Save replaces the blob.
	Save(data []byte) error
	// Delete removes the blob so the next Load reports found=false.
	Delete() error
}

// MemoryBlobStore keeps the blob in process memory. It is the zero-setup
// store used by tests and by callers that only need session-scoped state.
type MemoryBlobStore struct {
	data  []byte
	saved bool
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{}
}

func (store *MemoryBlobStore) Load() ([]byte, bool, error) {
	if !store.saved {
		return nil, false, nil
	}
	return store.data, true, nil
}

func (store *MemoryBlobStore) Save(data []byte) error {
	store.data = append([]byte(nil), data...)
	store.saved = true
	return nil
}

func (store *MemoryBlobStore) Delete() error {
	store.data = nil
	store.saved = false
	return nil
}
