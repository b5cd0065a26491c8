// Package pipeline drives one card-generation run: scan, prompt, complete,
// persist, aggregate.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ashwell/codecards/internal/cards"
	"github.com/ashwell/codecards/internal/llm"
	"github.com/ashwell/codecards/internal/models"
	"github.com/ashwell/codecards/internal/prompt"
	"github.com/ashwell/codecards/internal/scan"
)

// Runner holds the collaborators for one run. Files are processed strictly
// sequentially; the only blocking call is the completion round-trip.
type Runner struct {
	Root   string // scan root directory
	Exts   scan.ExtSet
	Client llm.Client
	Store  *cards.Store
	Logger *slog.Logger
	Now    func() time.Time // defaults to time.Now
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run walks the root, produces a card per selected file, and writes the
// aggregate document. A per-file failure is recorded in the report and logged;
// it never aborts the run. Run itself fails only when the walk cannot start,
// the context is cancelled, or the aggregate cannot be written.
func (r *Runner) Run(ctx context.Context) (*models.Report, error) {
	report := &models.Report{StartedAt: r.now()}
	var agg cards.Aggregate
	seen := make(map[string]string) // derived card name -> first rel path

	err := scan.Walk(r.Root, r.Exts, r.Store.Root(), func(f models.SourceFile) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Logger.Info("processing file", slog.String("file", f.RelPath))

		name := cards.Name(f.RelPath)
		if prev, dup := seen[name]; dup {
			// Derived names collide when a path segment contains the join
			// separator. Flagged, not fixed: the later card overwrites.
			r.Logger.Warn("card name collision",
				slog.String("name", name),
				slog.String("first", prev),
				slog.String("second", f.RelPath))
		}
		seen[name] = f.RelPath

		res, card := r.processFile(ctx, f)
		report.Results = append(report.Results, res)
		if res.Err != nil {
			r.Logger.Error("card generation failed",
				slog.String("file", f.RelPath),
				slog.String("error", res.Err.Error()))
			return nil
		}
		agg.Add(f.RelPath, card)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: scan: %w", err)
	}

	aggPath, err := r.Store.WriteAggregate(agg.Render(r.now()))
	if err != nil {
		return nil, fmt.Errorf("pipeline: write aggregate: %w", err)
	}
	report.AggregatePath = aggPath
	return report, nil
}

// processFile runs the per-file sequence: read, build prompt, complete, write
// card. Any failure is folded into the returned result; on success the card
// text is returned for aggregation.
func (r *Runner) processFile(ctx context.Context, f models.SourceFile) (models.FileResult, string) {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return models.FileResult{RelPath: f.RelPath, Err: fmt.Errorf("read: %w", err)}, ""
	}
	// Permissive decode: undecodable bytes are replaced, never rejected.
	text := strings.ToValidUTF8(string(data), "�")

	card, err := r.Client.Complete(ctx, prompt.Build(f.RelPath, text))
	if err != nil {
		return models.FileResult{RelPath: f.RelPath, Err: fmt.Errorf("complete: %w", err)}, ""
	}

	cardPath, err := r.Store.WriteCard(f.RelPath, card)
	if err != nil {
		return models.FileResult{RelPath: f.RelPath, Err: fmt.Errorf("write card: %w", err)}, ""
	}
	return models.FileResult{RelPath: f.RelPath, CardPath: cardPath}, card
}
