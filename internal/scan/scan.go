// Package scan enumerates source files under a root directory, filtered by
// file extension.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ashwell/codecards/internal/models"
)

// ExtSet is the set of file extensions (with leading dot) selected for
// processing.
type ExtSet map[string]struct{}

// ParseExts parses a comma-separated extension list ("js,ts,.py") into an
// ExtSet. Entries are trimmed and normalised to a single leading dot; empty
// entries are dropped. An empty input yields an empty set, which matches
// nothing.
func ParseExts(csv string) ExtSet {
	set := make(ExtSet)
	for _, raw := range strings.Split(csv, ",") {
		e := strings.TrimSpace(raw)
		e = strings.TrimLeft(e, ".")
		if e == "" {
			continue
		}
		set["."+e] = struct{}{}
	}
	return set
}

// Match reports whether a file name's extension belongs to the set. Matching
// is exact and case-sensitive.
func (s ExtSet) Match(name string) bool {
	_, ok := s[filepath.Ext(name)]
	return ok
}

// Walk enumerates every regular file under root whose extension is in exts
// and calls fn for each, in directory-walk order. Directories, symlinks, and
// special files are skipped silently, as are unreadable subtrees. The subtree
// rooted at skipDir (absolute path, may be empty) is excluded so that a tool
// run does not descend into its own output.
//
// Relative paths are reported slash-separated regardless of platform.
func Walk(root string, exts ExtSet, skipDir string, fn func(models.SourceFile) error) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("scan: resolve root: %w", err)
	}
	return filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// A nil entry means the root itself could not be read; that is
			// fatal. Anything deeper is skipped rather than aborting the run.
			if d == nil {
				return fmt.Errorf("scan: %w", walkErr)
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDir != "" && p == skipDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !exts.Match(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return fmt.Errorf("scan: relativise %s: %w", p, err)
		}
		return fn(models.SourceFile{AbsPath: p, RelPath: filepath.ToSlash(rel)})
	})
}
