// Package chunker splits document text into bounded, quality-filtered chunks.
//
// Two interchangeable strategies are provided: fixed-size splitting with
// boundary snapping, and sentence aggregation with overlap. Candidate chunks
// are classified and quality-filtered before emission; surviving chunks are
// enriched with source document metadata.
package chunker

import (
	"errors"
	"fmt"

	"github.com/hyperjump/kizami/internal/models"
	"go.uber.org/zap"
)

// Strategy selects the splitting algorithm.
type Strategy string

const (
	// StrategyFixedSize splits on a target character count, snapping
	// boundaries to sentence ends, paragraph breaks, or spaces.
	StrategyFixedSize Strategy = "fixed_size"
	// StrategySentence aggregates sentences up to the target character count.
	StrategySentence Strategy = "sentence"
)

// Chunk metadata values for the chunking_strategy key.
const (
	metaStrategyFixedSize = "fixed_size"
	metaStrategySentence  = "sentence_based"
)

// ErrUnknownStrategy is returned for a strategy outside the supported set.
var ErrUnknownStrategy = errors.New("unknown chunking strategy")

// ErrInvalidDocument is returned when a document violates chunking preconditions.
var ErrInvalidDocument = errors.New("invalid document")

// ParseStrategy converts a strategy name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyFixedSize, StrategySentence:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Chunker splits documents into quality-filtered text chunks. A Chunker is
// configured once and may be reused sequentially across documents; it is not
// safe for concurrent use while SetChunking is being called.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	logger       *zap.Logger // optional; when set, logs chunking stats
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithLogger sets a logger for chunking events and statistics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chunker) { c.logger = l }
}

// NewChunker creates a chunker with the given target size and overlap, both
// in characters.
func NewChunker(chunkSize, chunkOverlap int, opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetChunking updates the chunk size and overlap. Not safe to call while a
// chunking run is in progress.
func (c *Chunker) SetChunking(chunkSize, chunkOverlap int) {
	c.chunkSize = chunkSize
	c.chunkOverlap = chunkOverlap
	if c.logger != nil {
		c.logger.Info("updated chunking parameters",
			zap.Int("chunk_size", chunkSize), zap.Int("chunk_overlap", chunkOverlap))
	}
}

// ChunkSize returns the configured target chunk size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// ChunkOverlap returns the configured overlap.
func (c *Chunker) ChunkOverlap() int { return c.chunkOverlap }

// ChunkDocument splits doc with the selected strategy and returns the
// quality-filtered, metadata-enriched chunks in emission order. The splitter
// filters candidates inline and the result is filtered once more before
// enrichment, so every returned chunk satisfies IsQualityChunk. Empty or
// all-noise content yields an empty result, not an error.
func (c *Chunker) ChunkDocument(doc *models.Document, strategy Strategy) ([]*models.TextChunk, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if c.logger != nil {
		c.logger.Info("starting chunking",
			zap.String("file", doc.SourceFile()),
			zap.String("strategy", string(strategy)),
			zap.Int("chunk_size", c.chunkSize),
			zap.Int("chunk_overlap", c.chunkOverlap))
	}

	var chunks []*models.TextChunk
	switch strategy {
	case StrategyFixedSize:
		chunks = c.chunkFixedSize(doc.Content)
	case StrategySentence:
		chunks = c.chunkBySentences(doc.Content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	initial := len(chunks)
	quality := make([]*models.TextChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if c.IsQualityChunk(chunk.Content) {
			quality = append(quality, chunk)
		}
	}

	for _, chunk := range quality {
		c.enrich(chunk, doc.Metadata)
	}

	if c.logger != nil {
		stats := models.NewChunkStats(quality, initial-len(quality))
		c.logger.Info("chunking complete",
			zap.Int("chunks", stats.Count),
			zap.Int("filtered", stats.Filtered),
			zap.Float64("avg_size", stats.AvgSize),
			zap.Int("min_size", stats.MinSize),
			zap.Int("max_size", stats.MaxSize))
	}

	return quality, nil
}

// enrich merges document-level metadata into the chunk: the source file and
// type, plus the remaining document metadata under original_metadata.
func (c *Chunker) enrich(chunk *models.TextChunk, docMeta map[string]interface{}) {
	original := make(map[string]interface{}, len(docMeta))
	for k, v := range docMeta {
		if k == "file_path" || k == "file_type" {
			continue
		}
		original[k] = v
	}
	chunk.Metadata["source_file"] = docMeta["file_path"]
	chunk.Metadata["file_type"] = docMeta["file_type"]
	chunk.Metadata["original_metadata"] = original
}
