package gitx

import (
	"fmt"
	"sort"
)

// FakeStager is an in-memory Stager for tests. It records StagedContent
// calls so tests can assert that skipped files are never fetched.
type FakeStager struct {
	// Files maps staged path to staged content.
	Files map[string][]byte
	// FetchErrs marks paths whose content fetch should fail.
	FetchErrs map[string]error
	// ListErr, when set, fails ChangedPaths.
	ListErr error

	// Fetched records every StagedContent call in order.
	Fetched []string
}

// NewFakeStager creates a fake with the given staged files.
func NewFakeStager(files map[string][]byte) *FakeStager {
	return &FakeStager{Files: files}
}

// ChangedPaths returns every staged path, sorted.
func (f *FakeStager) ChangedPaths() ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	paths := make([]string, 0, len(f.Files))
	for p := range f.Files {
		paths = append(paths, p)
	}
	for p := range f.FetchErrs {
		if _, ok := f.Files[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// StagedContent returns the staged bytes for path, recording the call.
func (f *FakeStager) StagedContent(path string) ([]byte, error) {
	f.Fetched = append(f.Fetched, path)
	if err, ok := f.FetchErrs[path]; ok {
		return nil, err
	}
	content, ok := f.Files[path]
	if !ok {
		return nil, fmt.Errorf("no staged content for %s", path)
	}
	return content, nil
}
