package ps

import (
	"os"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-billy/v6/util"
)

// BlobFileName is the fixed on-disk name of the database document.
const BlobFileName = "database.json"

// FileBlobStore persists the blob as a single file on a billy filesystem.
// Saves go through a temp file and rename so a crash mid-write leaves the
// previous blob intact.
type FileBlobStore struct {
	fs   billy.Filesystem
	name string
}

// NewFileBlobStore stores the blob under baseDir on the host filesystem.
func NewFileBlobStore(baseDir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return NewFileBlobStoreFS(osfs.New(baseDir)), nil
}

// NewFileBlobStoreFS stores the blob on the given filesystem. Tests pass
// memfs here.
func NewFileBlobStoreFS(fs billy.Filesystem) *FileBlobStore {
	return &FileBlobStore{fs: fs, name: BlobFileName}
}

func (store *FileBlobStore) Load() ([]byte, bool, error) {
	data, err := util.ReadFile(store.fs, store.name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (store *FileBlobStore) Save(data []byte) error {
	tmp := store.name + ".tmp"
	if err := util.WriteFile(store.fs, tmp, data, 0644); err != nil {
		return err
	}
	return store.fs.Rename(tmp, store.name)
}

func (store *FileBlobStore) Delete() error {
	err := store.fs.Remove(store.name)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
