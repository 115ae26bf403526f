package scan

import (
	"bytes"
	"path/filepath"
	"strings"
)

// SkipRules describes files that are never scanned, however their content
// looks. Extensions are case-sensitive suffixes (.md and .MD are separate
// entries), Names match the file's base name exactly, and Prefixes match
// the start of the repository-relative path.
type SkipRules struct {
	Extensions []string
	Names      []string
	Prefixes   []string
}

// DefaultSkipRules returns the built-in skip list: binary and documentation
// formats, license/example files, and the CI configuration directory.
func DefaultSkipRules() SkipRules {
	return SkipRules{
		Extensions: []string{".md", ".MD", ".png", ".jpg", ".jpeg", ".gif", ".pdf", ".svg", ".ico", ".zip", ".gz"},
		Names:      []string{".env.example", "LICENSE", "COPYING"},
		Prefixes:   []string{".github/"},
	}
}

// Skip reports whether path is excluded from scanning.
func (s SkipRules) Skip(path string) bool {
	for _, ext := range s.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	base := filepath.Base(path)
	for _, name := range s.Names {
		if base == name {
			return true
		}
	}
	for _, prefix := range s.Prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// binary content is unscannable and treated like a skip, not an error.
func looksBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}
