package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/sitepress/internal/classify"
	"github.com/dgallion1/sitepress/internal/config"
	"github.com/dgallion1/sitepress/internal/markup"
	"github.com/dgallion1/sitepress/internal/page"
	"github.com/dgallion1/sitepress/internal/parser"
	"github.com/dgallion1/sitepress/internal/publish"
	"github.com/dgallion1/sitepress/internal/refine"
	"github.com/dgallion1/sitepress/internal/search"
	"github.com/dgallion1/sitepress/internal/sitestore"
)

// Worker processes a single page build job.
type Worker struct {
	store *sitestore.Store
	index *search.Index
	pub   *publish.Client
	stats *BuildStats
	log   *slog.Logger
	cfg   config.Config
}

func NewWorker(store *sitestore.Store, index *search.Index, pub *publish.Client, stats *BuildStats, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		store: store,
		index: index,
		pub:   pub,
		stats: stats,
		log:   log,
		cfg:   cfg,
	}
}

// Process runs the full build pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	started := time.Now()
	defer func() {
		w.stats.Record(time.Since(started).Milliseconds())
	}()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.cfg.PDFFallbackPdftotext
	}

	pg, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetFileData(nil)
	if pg.CreatedAt.IsZero() {
		pg.CreatedAt = time.Now()
	}

	if pg.Meta.Draft {
		log.Info("draft page, skipping")
		job.SetSlugTitle(pg.Slug, pg.Title)
		job.SetStatus(StatusCompleted, "draft_skipped")
		return
	}

	// Phase 2: Refine
	job.SetStatus(StatusRefining, "refining")
	tokens := markup.Tokenize(pg.Body)

	if w.cfg.StrictMarkup {
		_, warnings := classify.ScanStrict(tokens)
		for _, warn := range warnings {
			msg := fmt.Sprintf("unmatched </%s> at token %d", warn.Name, warn.Index)
			log.Warn("markup warning", "tag", warn.Name, "token", warn.Index)
			job.AddWarning(msg)
		}
	}

	tokens = refine.Sanitize(tokens)
	if w.cfg.DemoteHeadings {
		tokens = refine.Demote(tokens)
	}
	if w.cfg.HighlightCode {
		tokens = refine.HighlightBlocks(tokens)
	}
	body := markup.Render(tokens, markup.DefaultPolicy())

	if title, subtitle := refine.Titles(body); title != "" {
		pg.Title = title
		pg.Subtitle = subtitle
	}
	pg.PlainText = refine.PlainText(body)
	pg.Body = body
	if pg.Slug == "" {
		pg.Slug = page.Slugify(pg.Title)
	}
	job.SetSlugTitle(pg.Slug, pg.Title)

	// Phase 2.5: Dedup check against already-stored content.
	hash := ContentHashHex([]byte(body))
	if existing, ok := w.store.HasContent(hash); ok && existing != pg.Slug {
		log.Info("duplicate content, skipping", "existing_slug", existing)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	rec, err := w.store.Put(pg)
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	w.index.Add(rec.Slug, rec.Title, rec.Excerpt, refine.SearchSpans(body))
	log.Info("page stored", "slug", rec.Slug, "size", rec.Size)

	// Phase 4: Publish, when a remote host is configured.
	if w.pub != nil {
		job.SetStatus(StatusPublishing, "publishing")
		if err := w.publishWithRetry(ctx, log, pg, rec); err != nil {
			log.Error("publish failed", "error", err)
			job.AddError(fmt.Sprintf("publish: %s", err))
			job.SetStatus(StatusPartial, "publishing")
			return
		}
		job.SetPublished()
	}

	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) publishWithRetry(ctx context.Context, log *slog.Logger, pg *page.Page, rec sitestore.Record) error {
	req := publish.PageRequest{
		Title:       pg.Title,
		Subtitle:    pg.Subtitle,
		HTML:        pg.Body,
		ContentHash: rec.ContentHash,
		SourceFile:  pg.SourceFile,
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = w.pub.PutPage(ctx, pg.Slug, req)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable publish error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
