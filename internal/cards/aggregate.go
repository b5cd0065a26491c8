package cards

import (
	"strings"
	"time"

	"github.com/ashwell/codecards/internal/models"
)

// Aggregate accumulates card sections in the order cards are produced and
// renders them into the single aggregate document.
type Aggregate struct {
	sections []models.Section
}

// Add appends one card section, headed by its relative source path.
func (a *Aggregate) Add(rel, card string) {
	a.sections = append(a.sections, models.Section{RelPath: rel, Text: card})
}

// Len returns the number of collected sections.
func (a *Aggregate) Len() int { return len(a.sections) }

// Render composes the aggregate document: a generated-timestamp header
// followed by every section in collection order, separated by horizontal
// rules.
func (a *Aggregate) Render(now time.Time) []byte {
	var b strings.Builder
	b.WriteString("# Code-Cards\n")
	b.WriteString("Generated " + now.Format("2006-01-02 15:04:05") + "\n\n")
	for i, s := range a.sections {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		b.WriteString("## " + s.RelPath + "\n\n" + s.Text + "\n")
	}
	return []byte(b.String())
}
