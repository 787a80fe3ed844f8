// Package loader loads documents from files, extracting text and metadata
// per format and stripping structural noise (headers, footers, page numbers).
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hyperjump/kizami/internal/models"
	"go.uber.org/zap"
)

// ErrUnsupportedFormat is returned when no loader supports a file.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Loader loads documents of one format family.
type Loader interface {
	// Supports reports whether this loader handles the file at path.
	Supports(path string) bool
	// Load reads the file and returns its text content and metadata.
	Load(path string) (*models.Document, error)
}

// Registry dispatches to the first loader that supports a path.
type Registry struct {
	loaders []Loader
	logger  *zap.Logger // optional; when set, logs load events
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets a logger for debug output on loads.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates a registry with the default loaders: PDF, DOCX, XLSX,
// and plain text.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		loaders: []Loader{
			NewPDFLoader(),
			NewDOCXLoader(),
			NewXLSXLoader(),
			NewTextLoader(),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load loads the document at path with the first loader that supports it.
// Returns ErrUnsupportedFormat if none does. The returned document carries a
// fresh UUID when the loader did not assign one.
func (r *Registry) Load(path string) (*models.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	for _, l := range r.loaders {
		if !l.Supports(path) {
			continue
		}
		if r.logger != nil {
			r.logger.Debug("loading document", zap.String("path", path))
		}
		doc, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Supports reports whether any registered loader handles path.
func (r *Registry) Supports(path string) bool {
	for _, l := range r.loaders {
		if l.Supports(path) {
			return true
		}
	}
	return false
}

// SupportedFormats lists the file formats the registry handles.
func (r *Registry) SupportedFormats() []string {
	return []string{
		"PDF (.pdf)",
		"Word (.docx)",
		"Excel (.xlsx)",
		"Text (.txt, .md, .rst)",
	}
}

// fileSize returns the size of the file at path, or 0 when unavailable.
func fileSize(path string) int64 {
	if info, err := os.Stat(path); err == nil {
		return info.Size()
	}
	return 0
}
