package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"resume-builder/internal/domain"

	"go.uber.org/zap"
)

// MinScale is the lowest device scale a capture is taken at.
const MinScale = 2.0

// CaptureSelector addresses the resume root in the rendered surface.
const CaptureSelector = "#resume-preview"

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ExportOptions tunes the export pipeline. Zero values pick defaults.
type ExportOptions struct {
	Scale    float64
	Mode     PaginationMode
	Attempts int
	Backoff  time.Duration
}

func (o ExportOptions) withDefaults() ExportOptions {
	if o.Scale < MinScale {
		o.Scale = MinScale
	}
	if !o.Mode.Valid() {
		o.Mode = PaginateCrop
	}
	if o.Attempts <= 0 {
		o.Attempts = 3
	}
	if o.Backoff < 0 {
		o.Backoff = 0
	}
	return o
}

// Exporter turns documents into paginated A4 PDFs. At most one export runs
// at a time; concurrent calls fail with EXPORT_IN_PROGRESS.
type Exporter struct {
	surface Surface
	raster  Rasterizer
	log     *zap.Logger
	opts    ExportOptions
	busy    atomic.Bool
}

func NewExporter(s Surface, r Rasterizer, log *zap.Logger, opts ExportOptions) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{surface: s, raster: r, log: log, opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Exporter) Options() ExportOptions { return e.opts }

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool { return e.busy.Load() }

// Export captures doc and paginates it. fileName is the resolved download
// name and is carried on the artifact unchanged.
func (e *Exporter) Export(ctx context.Context, doc *domain.Document, fileName string) (art *Artifact, err error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, exportErr(KindExportInProgress, nil)
	}
	defer e.busy.Store(false)
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("export panicked", zap.Any("panic", r))
			art, err = nil, exportErr(KindCaptureFailed, fmt.Errorf("panic: %v", r))
		}
	}()

	if doc == nil {
		return nil, exportErr(KindNoRenderableNode, ErrNoRenderableNode)
	}

	start := time.Now()
	html, err := e.surface.Render(doc)
	if err != nil {
		return nil, exportErr(KindCaptureFailed, fmt.Errorf("render surface: %w", err))
	}

	bitmap, err := e.capture(ctx, html)
	if err != nil {
		return nil, err
	}

	pdf, pages, err := Paginate(bitmap, e.opts.Mode)
	if err != nil {
		return nil, exportErr(KindCaptureFailed, fmt.Errorf("paginate: %w", err))
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, exportErr(KindIOFailure, fmt.Errorf("invalid PDF output (len=%d)", len(pdf)))
	}

	e.log.Info("export finished",
		zap.String("file", fileName),
		zap.String("template", doc.TemplateID),
		zap.Int("pages", pages),
		zap.Int("bytes", len(pdf)),
		zap.Duration("took", time.Since(start)),
	)
	return &Artifact{FileName: fileName, PDF: pdf, Pages: pages}, nil
}

// ExportToSink exports doc and hands the PDF to sink. Nothing reaches the
// sink when the export fails.
func (e *Exporter) ExportToSink(ctx context.Context, doc *domain.Document, fileName string, sink Sink) (*Artifact, error) {
	art, err := e.Export(ctx, doc, fileName)
	if err != nil {
		return nil, err
	}
	if err := sink.Deliver(ctx, art.FileName, art.PDF); err != nil {
		e.log.Error("deliver export", zap.String("file", art.FileName), zap.Error(err))
		return nil, exportErr(KindIOFailure, err)
	}
	return art, nil
}

// capture rasterizes the surface, retrying with exponential backoff. A
// missing capture node is not retried.
func (e *Exporter) capture(ctx context.Context, html string) ([]byte, error) {
	var lastErr error
	for i := 0; i < e.opts.Attempts; i++ {
		bitmap, err := e.raster.Rasterize(ctx, html, CaptureSelector, e.surface.Width(), e.opts.Scale)
		if err == nil {
			if bytes.HasPrefix(bitmap, pngSignature) {
				return bitmap, nil
			}
			err = fmt.Errorf("invalid bitmap output (len=%d)", len(bitmap))
		}
		if errors.Is(err, ErrNoRenderableNode) {
			return nil, exportErr(KindNoRenderableNode, err)
		}
		lastErr = err
		e.log.Warn("capture attempt failed", zap.Int("attempt", i+1), zap.Error(err))

		if i < e.opts.Attempts-1 {
			backoff := time.Duration(1<<i) * e.opts.Backoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, exportErr(KindCaptureFailed, ctx.Err())
			}
		}
	}
	return nil, exportErr(KindCaptureFailed, lastErr)
}
