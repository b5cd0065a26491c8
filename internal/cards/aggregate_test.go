package cards

import (
	"strings"
	"testing"
	"time"
)

func TestRenderHeaderOnly(t *testing.T) {
	var a Aggregate
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	got := string(a.Render(ts))

	want := "# Code-Cards\nGenerated 2026-03-14 09:26:53\n\n"
	if got != want {
		t.Errorf("empty aggregate = %q, want %q", got, want)
	}
}

func TestRenderSectionsInOrder(t *testing.T) {
	var a Aggregate
	a.Add("a.py", "CARD-A")
	a.Add("b/c.js", "CARD-B")
	got := string(a.Render(time.Now()))

	first := strings.Index(got, "## a.py\n\nCARD-A\n")
	second := strings.Index(got, "## b/c.js\n\nCARD-B\n")
	if first < 0 || second < 0 {
		t.Fatalf("sections missing:\n%s", got)
	}
	if first > second {
		t.Error("sections out of collection order")
	}
	if strings.Count(got, "\n---\n") != 1 {
		t.Errorf("want exactly one rule between two sections:\n%s", got)
	}
}
