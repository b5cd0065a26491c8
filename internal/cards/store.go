// Package cards persists per-file cards and the aggregate document as flat
// Markdown files inside a single output directory.
package cards

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashwell/codecards/internal/apperr"
)

const (
	// Separator joins relative-path segments into a flat card filename.
	// Uniqueness of derived names assumes no real path segment contains it;
	// the pipeline warns when that assumption is violated.
	Separator = "__"

	// Ext is appended to every derived card filename.
	Ext = ".md"

	// AggregateName is the aggregate document's filename inside the store.
	AggregateName = "ALL_CARDS.md"
)

// Name derives the flat card filename for a slash-separated relative path.
func Name(rel string) string {
	return strings.Join(strings.Split(rel, "/"), Separator) + Ext
}

// Store writes and reads card files inside a single directory. All names are
// flat; anything resembling a path is rejected.
type Store struct {
	root string // absolute path to the cards directory
}

// NewStore opens a store rooted at dir. The directory must already exist.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cards: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cards: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cards: root is not a directory: %s", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute path of the cards directory.
func (s *Store) Root() string { return s.root }

// safeName rejects names that would escape the flat card directory.
func (s *Store) safeName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == ".." {
		return "", fmt.Errorf("cards: invalid card name: %q", name)
	}
	return filepath.Join(s.root, name), nil
}

// WriteCard persists text as the card for the given relative source path,
// overwriting any previous card of the same derived name. It returns the
// resolved output path.
func (s *Store) WriteCard(rel, text string) (string, error) {
	return s.write(Name(rel), []byte(text))
}

// WriteAggregate persists the aggregate document and returns its path.
func (s *Store) WriteAggregate(data []byte) (string, error) {
	return s.write(AggregateName, data)
}

// write atomically writes content: tmp file, fsync, rename.
func (s *Store) write(name string, content []byte) (string, error) {
	abs, err := s.safeName(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.root, ".codecards-tmp-*")
	if err != nil {
		return "", fmt.Errorf("cards: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return "", fmt.Errorf("cards: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("cards: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("cards: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return "", fmt.Errorf("cards: rename: %w", err)
	}
	success = true
	return abs, nil
}

// Read returns the raw bytes of a card by its derived filename.
func (s *Store) Read(name string) ([]byte, error) {
	abs, err := s.safeName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cards: %q: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("cards: read %s: %w", name, err)
	}
	return data, nil
}

// List returns the derived filenames of every card in the store, excluding
// the aggregate document.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("cards: list: %w", err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == AggregateName || !strings.HasSuffix(name, Ext) {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}
