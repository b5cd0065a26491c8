// Package models defines the domain types for codecards.
package models

import "time"

// SourceFile identifies one file selected by the scanner. It is read once,
// carded, and discarded; nothing mutates it after creation.
type SourceFile struct {
	AbsPath string `json:"abs_path"`
	RelPath string `json:"rel_path"`
}

// Section is one card wrapped with its relative-path heading, ready to be
// joined into the aggregate document.
type Section struct {
	RelPath string `json:"rel_path"`
	Text    string `json:"text"`
}

// FileResult records the outcome of processing a single source file. Exactly
// one of CardPath or Err is meaningful.
type FileResult struct {
	RelPath  string `json:"rel_path"`
	CardPath string `json:"card_path,omitempty"`
	Err      error  `json:"-"`
}

// OK reports whether the file produced a card.
func (r FileResult) OK() bool { return r.Err == nil }

// Report aggregates the per-file outcomes of one run.
type Report struct {
	Results       []FileResult `json:"results"`
	AggregatePath string       `json:"aggregate_path"`
	StartedAt     time.Time    `json:"started_at"`
}

// CardsWritten returns the number of files that produced a card.
func (r *Report) CardsWritten() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failures returns the results for files that did not produce a card.
func (r *Report) Failures() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}
