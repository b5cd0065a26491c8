package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ashwell/codecards/internal/models"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func collect(t *testing.T, root string, exts ExtSet, skipDir string) []string {
	t.Helper()
	var got []string
	err := Walk(root, exts, skipDir, func(f models.SourceFile) error {
		got = append(got, f.RelPath)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return got
}

func TestParseExts(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"js,ts,py", []string{".js", ".ts", ".py"}},
		{".go, .md ", []string{".go", ".md"}},
		{"py,,", []string{".py"}},
		{"", nil},
	}
	for _, c := range cases {
		set := ParseExts(c.in)
		if len(set) != len(c.want) {
			t.Errorf("ParseExts(%q) len = %d, want %d", c.in, len(set), len(c.want))
			continue
		}
		for _, e := range c.want {
			if _, ok := set[e]; !ok {
				t.Errorf("ParseExts(%q) missing %q", c.in, e)
			}
		}
	}
}

func TestWalkFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "print(1)")
	writeFile(t, root, "b/c.js", "console.log(1)")
	writeFile(t, root, "b/d/e.py", "print(2)")
	writeFile(t, root, "readme.txt", "not code")
	writeFile(t, root, "upper.PY", "case sensitive")

	got := collect(t, root, ParseExts("py,js"), "")
	want := map[string]bool{"a.py": true, "b/c.js": true, "b/d/e.py": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %d files", got, len(want))
	}
	for _, rel := range got {
		if !want[rel] {
			t.Errorf("unexpected file %q", rel)
		}
	}
}

func TestWalkEmptyExtSetMatchesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x")

	if got := collect(t, root, ParseExts(""), ""); len(got) != 0 {
		t.Errorf("empty ext set should match nothing, got %v", got)
	}
}

func TestWalkSkipsOutputDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x")
	writeFile(t, root, "cards/old__card.py", "should be skipped")

	got := collect(t, root, ParseExts("py"), filepath.Join(root, "cards"))
	if len(got) != 1 || got[0] != "a.py" {
		t.Errorf("got %v, want [a.py]", got)
	}
}

func TestWalkSkipsNonRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real.py", "x")
	if err := os.Symlink(filepath.Join(root, "real.py"), filepath.Join(root, "link.py")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	got := collect(t, root, ParseExts("py"), "")
	if len(got) != 1 || got[0] != "real.py" {
		t.Errorf("got %v, want [real.py]", got)
	}
}

func TestWalkPropagatesCallbackError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x")

	wantErr := os.ErrClosed
	err := Walk(root, ParseExts("py"), "", func(models.SourceFile) error {
		return wantErr
	})
	if err != wantErr {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
