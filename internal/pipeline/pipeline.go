// Package pipeline orchestrates the asynchronous screening of
// uploaded documents: rasterize every page, run the two analysis
// stages, generate the per-page report, and record terminal page
// states with their notifications. Pages fail independently; one bad
// page never blocks its siblings.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/efoncier/survey-lab/internal/analysis"
	"github.com/efoncier/survey-lab/internal/documents"
	"github.com/efoncier/survey-lab/internal/pages"
	"github.com/efoncier/survey-lab/internal/render"
	"github.com/efoncier/survey-lab/internal/report"
	"github.com/efoncier/survey-lab/internal/storage"
	"github.com/efoncier/survey-lab/pkg/lifecycle"
)

// Orchestrator runs document screening tasks. It implements the
// documents.Launcher interface consumed by the upload handler.
type Orchestrator struct {
	documents documents.System
	pages     pages.System
	storage   storage.Store
	renderer  render.Renderer
	engine    analysis.Engine
	reports   report.Generator
	notifier  *Notifier

	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	logger *slog.Logger
}

// New creates a pipeline orchestrator.
func New(
	config *Config,
	docs documents.System,
	pg pages.System,
	store storage.Store,
	renderer render.Renderer,
	engine analysis.Engine,
	reports report.Generator,
	notifier *Notifier,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		documents: docs,
		pages:     pg,
		storage:   store,
		renderer:  renderer,
		engine:    engine,
		reports:   reports,
		notifier:  notifier,
		sem:       semaphore.NewWeighted(int64(config.MaxConcurrent)),
		logger:    logger.With("system", "pipeline"),
	}
}

// Start registers the in-flight task wait with the lifecycle
// coordinator. Tasks have no cancellation surface: shutdown waits for
// them to reach terminal states, bounded by the shutdown timeout.
func (o *Orchestrator) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		o.logger.Info("waiting for in-flight documents")
		o.wg.Wait()
		o.logger.Info("pipeline drained")
	})
	return nil
}

// Launch schedules processing for an uploaded document and returns
// immediately. Concurrency across documents is bounded by the weighted
// semaphore; pages within a document process sequentially.
func (o *Orchestrator) Launch(doc *documents.Document, pdf []byte) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		ctx := context.Background()
		if err := o.sem.Acquire(ctx, 1); err != nil {
			o.logger.Error("task slot acquisition failed", "document_id", doc.ID, "error", err)
			return
		}
		defer o.sem.Release(1)

		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("task panicked", "document_id", doc.ID, "panic", r)
				if err := o.documents.Fail(ctx, doc.ID, "internal processing error"); err != nil {
					o.logger.Error("document fail write failed", "document_id", doc.ID, "error", err)
				}
			}
		}()

		o.process(ctx, doc, pdf)
	}()
}

func (o *Orchestrator) process(ctx context.Context, doc *documents.Document, pdf []byte) {
	o.logger.Info("processing started", "document_id", doc.ID, "owner_id", doc.OwnerID)

	if err := o.documents.SetStatus(ctx, doc.ID, documents.StatusProcessing); err != nil {
		o.logger.Error("status transition failed", "document_id", doc.ID, "error", err)
	}

	rasters, err := o.renderer.Render(ctx, pdf)
	if err != nil {
		reason := fmt.Sprintf("rasterization failed: %v", err)
		if failErr := o.documents.Fail(ctx, doc.ID, reason); failErr != nil {
			o.logger.Error("document fail write failed", "document_id", doc.ID, "error", failErr)
		}
		o.notifier.DocumentFailed(ctx, doc.OwnerID, doc.Filename, reason)
		o.logger.Error("processing aborted", "document_id", doc.ID, "error", err)
		return
	}

	// The renderer is authoritative for page count; the upload-time
	// pdfcpu count is only advisory.
	if err := o.documents.SetPageCount(ctx, doc.ID, len(rasters)); err != nil {
		o.logger.Error("page count write failed", "document_id", doc.ID, "error", err)
	}

	for _, raster := range rasters {
		o.processPage(ctx, doc, raster)
	}

	o.finalize(ctx, doc)
}

// processPage drives one page to a terminal state. The terminal write
// always precedes the notification.
func (o *Orchestrator) processPage(ctx context.Context, doc *documents.Document, raster render.PageImage) {
	rasterKey := fmt.Sprintf("rasters/%s/page-%03d.png", doc.ID, raster.Number)

	if _, err := o.storage.Write(rasterKey, bytes.NewReader(raster.PNG)); err != nil {
		o.logger.Error("raster store failed",
			"document_id", doc.ID,
			"sequence_number", raster.Number,
			"error", err,
		)
		o.failPage(ctx, doc, nil, raster.Number, fmt.Sprintf("raster storage failed: %v", err))
		return
	}

	page, err := o.pages.Create(ctx, pages.CreateCommand{
		DocumentID:     doc.ID,
		OwnerID:        doc.OwnerID,
		SequenceNumber: raster.Number,
		StorageKey:     rasterKey,
	})
	if err != nil {
		o.logger.Error("page record creation failed",
			"document_id", doc.ID,
			"sequence_number", raster.Number,
			"error", err,
		)
		o.notifier.PageFailed(ctx, doc.OwnerID, nil, raster.Number, "page registration failed")
		return
	}

	extraction, err := o.engine.ExtractFeatures(ctx, raster.Number, raster.PNG)
	if err != nil {
		o.failPage(ctx, doc, page, raster.Number, fmt.Sprintf("feature extraction failed: %v", err))
		return
	}

	zones, err := o.engine.ClassifyZones(ctx, extraction)
	if err != nil {
		o.failPage(ctx, doc, page, raster.Number, fmt.Sprintf("zone classification failed: %v", err))
		return
	}

	reportPDF, err := o.reports.Generate(ctx, zones, raster.PNG, page.ID)
	if err != nil {
		o.failPage(ctx, doc, page, raster.Number, fmt.Sprintf("report generation failed: %v", err))
		return
	}

	reportKey := fmt.Sprintf("reports/%s/page-%03d.pdf", doc.ID, raster.Number)
	if _, err := o.storage.Write(reportKey, bytes.NewReader(reportPDF)); err != nil {
		o.failPage(ctx, doc, page, raster.Number, fmt.Sprintf("report storage failed: %v", err))
		return
	}

	extractionJSON, err := json.Marshal(extraction)
	if err != nil {
		o.failPage(ctx, doc, page, raster.Number, fmt.Sprintf("result encoding failed: %v", err))
		return
	}
	zonesJSON, err := json.Marshal(zones)
	if err != nil {
		o.failPage(ctx, doc, page, raster.Number, fmt.Sprintf("result encoding failed: %v", err))
		return
	}

	if err := o.pages.Complete(ctx, page.ID, extractionJSON, zonesJSON, reportKey); err != nil {
		o.logger.Error("page completion write failed", "page_id", page.ID, "error", err)
		o.failPage(ctx, doc, page, raster.Number, "result persistence failed")
		return
	}

	o.notifier.PageCompleted(ctx, doc.OwnerID, page.ID, raster.Number, o.storage.URL(reportKey))
	o.logger.Info("page completed",
		"document_id", doc.ID,
		"page_id", page.ID,
		"sequence_number", raster.Number,
	)
}

// failPage records the failed terminal state (when a page record
// exists) and then notifies. Sibling pages are unaffected.
func (o *Orchestrator) failPage(ctx context.Context, doc *documents.Document, page *pages.Page, sequence int, reason string) {
	if page != nil {
		if err := o.pages.Fail(ctx, page.ID, reason); err != nil {
			o.logger.Error("page fail write failed", "page_id", page.ID, "error", err)
		}
		o.notifier.PageFailed(ctx, doc.OwnerID, &page.ID, sequence, reason)
	} else {
		o.notifier.PageFailed(ctx, doc.OwnerID, nil, sequence, reason)
	}

	o.logger.Warn("page failed",
		"document_id", doc.ID,
		"sequence_number", sequence,
		"reason", reason,
	)
}

// finalize sets the document terminal status from its pages using the
// same aggregate rule the status endpoint applies.
func (o *Orchestrator) finalize(ctx context.Context, doc *documents.Document) {
	result, err := o.pages.ListByDocument(ctx, doc.ID)
	if err != nil {
		o.logger.Error("final page listing failed", "document_id", doc.ID, "error", err)
		return
	}

	// Mixed outcomes still finish as completed: per-page state carries
	// the failures, the document row only says processing is over.
	status := documents.StatusCompleted
	if pages.Aggregate(result) == pages.StatusFailed {
		status = documents.StatusFailed
	}

	if status == documents.StatusFailed {
		if err := o.documents.Fail(ctx, doc.ID, "all pages failed"); err != nil {
			o.logger.Error("document fail write failed", "document_id", doc.ID, "error", err)
		}
	} else if err := o.documents.SetStatus(ctx, doc.ID, status); err != nil {
		o.logger.Error("status transition failed", "document_id", doc.ID, "error", err)
	}

	o.logger.Info("processing finished", "document_id", doc.ID, "status", status)
}
