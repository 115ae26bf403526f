package gitx

import (
	"fmt"
	"io"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RepoStager implements Stager over a real repository using go-git.
type RepoStager struct {
	repo *git.Repository
}

// Open opens the repository containing path, walking up to find the
// metadata directory the way the git binary does.
func Open(path string) (*RepoStager, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return &RepoStager{repo: repo}, nil
}

// ChangedPaths lists files whose staged status is added, copied, modified,
// or renamed. Renamed files are reported under their new path and scanned
// like any other staged blob; deletions carry no content and are excluded.
// Paths are sorted for deterministic reporting.
func (r *RepoStager) ChangedPaths() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read staging status: %w", err)
	}

	var paths []string
	for path, fs := range status {
		switch fs.Staging {
		case git.Added, git.Copied, git.Modified, git.Renamed:
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// StagedContent reads the staged blob for path from the index. This is the
// content captured by `git add`, which may differ from the working copy.
func (r *RepoStager) StagedContent(path string) ([]byte, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	entry, err := idx.Entry(path)
	if err != nil {
		return nil, fmt.Errorf("no index entry for %s: %w", path, err)
	}

	return r.BlobContent(entry.Hash)
}

// TreeFile is one blob in a commit tree.
type TreeFile struct {
	Path string
	Hash plumbing.Hash
}

// HeadFiles lists every blob reachable from HEAD, for whole-tree audits.
// A repository with no commits yet audits as empty.
func (r *RepoStager) HeadFiles() ([]TreeFile, error) {
	head, err := r.repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD tree: %w", err)
	}

	var files []TreeFile
	err = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, TreeFile{Path: f.Name, Hash: f.Hash})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk HEAD tree: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// BlobContent reads the full content of a blob by hash.
func (r *RepoStager) BlobContent(hash plumbing.Hash) ([]byte, error) {
	blob, err := r.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve blob %s: %w", hash, err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", hash, err)
	}
	defer func() { _ = reader.Close() }()

	return io.ReadAll(reader)
}
