// Package testutil provides shared test helpers for setting up source trees,
// card stores, and stub completion clients.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashwell/codecards/internal/cards"
)

// SourceTree writes the given files (slash-separated relative path to
// content) under a fresh temp directory and returns its path.
func SourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// CardStore creates a cards/ directory under root and opens a store on it.
func CardStore(t *testing.T, root string) *cards.Store {
	t.Helper()
	dir := filepath.Join(root, "cards")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	store, err := cards.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

// Logger returns a logger that discards all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ClientFunc adapts a function to the llm.Client interface.
type ClientFunc func(ctx context.Context, promptText string) (string, error)

// Complete implements llm.Client.
func (f ClientFunc) Complete(ctx context.Context, promptText string) (string, error) {
	return f(ctx, promptText)
}

// StubClient returns a client answering per relative source path, matched
// against the fenced file block inside the rendered prompt. Paths listed in
// fail produce the given error instead.
func StubClient(responses map[string]string, fail map[string]error) ClientFunc {
	return func(_ context.Context, promptText string) (string, error) {
		for rel, err := range fail {
			if strings.Contains(promptText, "```"+rel+"\n") {
				return "", err
			}
		}
		for rel, card := range responses {
			if strings.Contains(promptText, "```"+rel+"\n") {
				return card, nil
			}
		}
		return "UNMATCHED", nil
	}
}
