package usecase

import (
	"context"
	"errors"
	"fmt"

	"resume-builder/internal/domain"
)

// Surface renders a document into a standalone HTML page.
type Surface interface {
	Render(doc *domain.Document) (string, error)
	Width() int
}

// Rasterizer captures the node matched by selector in an HTML page as a
// PNG bitmap. scale is the device pixel ratio.
type Rasterizer interface {
	Rasterize(ctx context.Context, html, selector string, width int, scale float64) ([]byte, error)
}

// KeyValueStore persists opaque values under string keys. Load returns
// ErrKeyNotFound when nothing was stored yet.
type KeyValueStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Sink receives a finished PDF.
type Sink interface {
	Deliver(ctx context.Context, fileName string, pdf []byte) error
}

// Artifact is a finished export.
type Artifact struct {
	FileName string
	PDF      []byte
	Pages    int
}

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrResumeNotFound   = errors.New("saved resume not found")
	ErrPersist          = errors.New("persist saved resumes")
	ErrInvalidName      = errors.New("name must not be empty")
	ErrNoRenderableNode = errors.New("no renderable node")
)

// ExportErrorKind classifies export failures.
type ExportErrorKind string

const (
	KindCaptureFailed    ExportErrorKind = "CAPTURE_FAILED"
	KindNoRenderableNode ExportErrorKind = "NO_RENDERABLE_NODE"
	KindIOFailure        ExportErrorKind = "IO_FAILURE"
	KindExportInProgress ExportErrorKind = "EXPORT_IN_PROGRESS"
)

// ErrExportInProgress matches any export error of that kind via errors.Is.
var ErrExportInProgress = &ExportError{Kind: KindExportInProgress}

// ExportError is returned by every failing export.
type ExportError struct {
	Kind ExportErrorKind
	Err  error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("export: %s", e.Kind)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Is matches another *ExportError of the same kind.
func (e *ExportError) Is(target error) bool {
	t, ok := target.(*ExportError)
	return ok && t.Kind == e.Kind
}

func exportErr(kind ExportErrorKind, err error) *ExportError {
	return &ExportError{Kind: kind, Err: err}
}

// ExportKind returns the kind of an export error, or "" for other errors.
func ExportKind(err error) ExportErrorKind {
	var e *ExportError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
