package ps

import (
	"os"
	"time"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-billy/v6/util"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"
)

// Identity signs the commit a git-backed save produces.
type Identity struct {
	Name  string
	Email string
}

// GitBlobStore keeps the database document in a git worktree and commits
// every save. The history doubles as an audit log of diary mutations:
// each write-through flush is one commit.
type GitBlobStore struct {
	repo     *git.Repository
	identity Identity
	now      func() time.Time
}

// NewMemoryGitBlobStore backs the repository with in-memory storage.
func NewMemoryGitBlobStore(identity Identity) (*GitBlobStore, error) {
	wt := memfs.New()
	storer := memory.NewStorage()

	repo, err := git.Init(storer, git.WithWorkTree(wt))
	if err != nil {
		return nil, err
	}

	return &GitBlobStore{repo: repo, identity: identity, now: time.Now}, nil
}

// NewGitBlobStore opens (or initializes) a repository under baseDir.
func NewGitBlobStore(baseDir string, identity Identity) (*GitBlobStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	wt := osfs.New(baseDir)
	fs, err := wt.Chroot(".git")
	if err != nil {
		return nil, err
	}

	storer := filesystem.NewStorageWithOptions(
		fs,
		cache.NewObjectLRUDefault(),
		filesystem.Options{ExclusiveAccess: true})

	var repo *git.Repository
	if _, statErr := os.Stat(fs.Root()); statErr != nil {
		repo, err = git.Init(storer, git.WithWorkTree(wt))
	} else {
		repo, err = git.Open(storer, wt)
	}
	if err != nil {
		return nil, err
	}

	return &GitBlobStore{repo: repo, identity: identity, now: time.Now}, nil
}

func (store *GitBlobStore) Load() ([]byte, bool, error) {
	wt, err := store.repo.Worktree()
	if err != nil {
		return nil, false, err
	}

	data, err := util.ReadFile(wt.Filesystem, BlobFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (store *GitBlobStore) Save(data []byte) error {
	wt, err := store.repo.Worktree()
	if err != nil {
		return err
	}

	if err := util.WriteFile(wt.Filesystem, BlobFileName, data, 0644); err != nil {
		return err
	}
	if _, err := wt.Add(BlobFileName); err != nil {
		return err
	}
	return store.commit("Save database")
}

func (store *GitBlobStore) Delete() error {
	wt, err := store.repo.Worktree()
	if err != nil {
		return err
	}

	if err := wt.Filesystem.Remove(BlobFileName); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if _, err := wt.Add(BlobFileName); err != nil {
		return err
	}
	return store.commit("Delete database")
}

func (store *GitBlobStore) commit(message string) error {
	wt, err := store.repo.Worktree()
	if err != nil {
		return err
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  store.identity.Name,
			Email: store.identity.Email,
			When:  store.now(),
		},
		AllowEmptyCommits: true,
	})
	return err
}
