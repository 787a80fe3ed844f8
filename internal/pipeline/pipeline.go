// Package pipeline composes loading, preprocessing, and chunking into a
// single document-processing flow.
package pipeline

import (
	"fmt"

	"github.com/hyperjump/kizami/internal/chunker"
	"github.com/hyperjump/kizami/internal/config"
	"github.com/hyperjump/kizami/internal/loader"
	"github.com/hyperjump/kizami/internal/models"
	"github.com/hyperjump/kizami/internal/preprocess"
	"go.uber.org/zap"
)

// Result is the outcome of processing one document.
type Result struct {
	Document *models.Document   `json:"document"`
	Chunks   []*models.TextChunk `json:"chunks"`
	Stats    models.ChunkStats  `json:"stats"`
}

// Processor runs documents through load, preprocess, and chunk stages.
// A Processor is safe for sequential reuse across documents.
type Processor struct {
	registry *loader.Registry
	chunker  *chunker.Chunker
	strategy chunker.Strategy
	logger   *zap.Logger // optional; when set, logs per-stage events
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a logger for debug output (document loaded, chunks emitted).
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a processor from chunking config. registry may be nil,
// in which case the default loader set is used.
func NewProcessor(cfg *config.ChunkingConfig, registry *loader.Registry, opts ...Option) (*Processor, error) {
	strategy, err := chunker.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		registry = loader.NewRegistry()
	}
	p := &Processor{
		registry: registry,
		chunker:  chunker.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		strategy: strategy,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Strategy returns the configured chunking strategy.
func (p *Processor) Strategy() chunker.Strategy { return p.strategy }

// Registry returns the loader registry, for format queries.
func (p *Processor) Registry() *loader.Registry { return p.registry }

// ProcessFile loads, preprocesses, and chunks the document at path.
func (p *Processor) ProcessFile(path string) (*Result, error) {
	doc, err := p.registry.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if p.logger != nil {
		p.logger.Debug("document loaded",
			zap.String("path", path),
			zap.Int("content_length", len(doc.Content)))
	}
	return p.ProcessDocument(doc)
}

// ProcessDocument preprocesses and chunks an already-loaded document with
// the configured strategy.
func (p *Processor) ProcessDocument(doc *models.Document) (*Result, error) {
	return p.ProcessDocumentWith(doc, p.strategy)
}

// ProcessDocumentWith preprocesses and chunks doc with an explicit strategy.
func (p *Processor) ProcessDocumentWith(doc *models.Document, strategy chunker.Strategy) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", chunker.ErrInvalidDocument, err)
	}
	preprocess.Document(doc)

	chunks, err := p.chunker.ChunkDocument(doc, strategy)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Document: doc,
		Chunks:   chunks,
		Stats:    models.NewChunkStats(chunks, 0),
	}
	if p.logger != nil {
		p.logger.Debug("document processed",
			zap.String("id", doc.ID),
			zap.Int("chunks", result.Stats.Count),
			zap.Float64("avg_size", result.Stats.AvgSize))
	}
	return result, nil
}
