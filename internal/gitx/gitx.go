// Package gitx wraps the version-control staging area behind a narrow
// interface so the scanner can be tested against an in-memory fake.
package gitx

// Stager is the read-only view of the staging area the scanner needs:
// enumerate files whose staged blob should be inspected, and fetch the
// staged (not working-tree) content of one of them.
type Stager interface {
	ChangedPaths() ([]string, error)
	StagedContent(path string) ([]byte, error)
}
