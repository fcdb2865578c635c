// Package walk discovers the files a run scans.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher decides whether a root-relative path is a scan candidate.
type Matcher struct {
	include []string
	exclude []string
}

// NewMatcher validates the patterns. A pattern without "/" matches the base
// name at any depth; a pattern with "/" matches the whole relative path,
// where "**" spans zero or more directories.
func NewMatcher(include, exclude []string) (*Matcher, error) {
	m := &Matcher{}
	var err error
	if m.include, err = normalize(include); err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	if m.exclude, err = normalize(exclude); err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	return m, nil
}

func normalize(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		for strings.HasPrefix(p, "./") {
			p = p[2:]
		}
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%q: %w", p, doublestar.ErrBadPattern)
		}
		out = append(out, p)
	}
	return out, nil
}

func matchOne(pattern, rel string) bool {
	target := rel
	if !strings.Contains(pattern, "/") {
		target = path.Base(rel)
	}
	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if matchOne(p, rel) {
			return true
		}
	}
	return false
}

// Match reports whether rel (slash separated, relative to the root) matches
// at least one include pattern and no exclude pattern.
func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if !matchAny(m.include, rel) {
		return false
	}
	return !matchAny(m.exclude, rel)
}

// Files walks root in lexical order and returns the regular files accepted
// by the patterns. Returned paths are joined onto root, so they read like
// the locations a user would type.
func Files(root string, include, exclude []string) ([]string, error) {
	m, err := NewMatcher(include, exclude)
	if err != nil {
		return nil, err
	}
	return m.Files(root)
}

// Files is the Matcher form of the package-level Files.
func (m *Matcher) Files(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open directory %s: not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() {
			return nil
		}
		if !isRegular(p, d) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if m.Match(rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// isRegular follows symlinks: a link to a regular file counts, a dangling
// link or a link to a directory does not.
func isRegular(p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
