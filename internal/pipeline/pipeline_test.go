package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/kizami/internal/chunker"
	"github.com/hyperjump/kizami/internal/config"
	"github.com/hyperjump/kizami/internal/models"
)

// sampleParagraph returns prose long enough to produce quality chunks.
func sampleParagraph() string {
	sentences := []string{
		"The river ran fast beneath the old stone bridge while swallows turned above the water.",
		"Beyond the orchard a narrow footpath climbed steadily toward the wooded ridge.",
		"Morning light spread across the meadow and caught the frost along the fence line.",
		"A heron stood motionless in the shallows watching for minnows among the reeds.",
		"The wind carried the smell of rain down from the hills before noon.",
		"By evening the valley had gone quiet except for the stream over the stones.",
		"Smoke rose from the farmhouse chimney and drifted slowly toward the east.",
		"The last light faded behind the summit leaving the pasture in shadow.",
	}
	return strings.Join(sentences, " ")
}

func testConfig() *config.ChunkingConfig {
	return &config.ChunkingConfig{ChunkSize: 300, ChunkOverlap: 0, Strategy: "sentence"}
}

func TestNewProcessor_invalidStrategy(t *testing.T) {
	cfg := &config.ChunkingConfig{ChunkSize: 300, Strategy: "semantic"}
	if _, err := NewProcessor(cfg, nil); !errors.Is(err, chunker.ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte(sampleParagraph()), 0600); err != nil {
		t.Fatal(err)
	}

	p, err := NewProcessor(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := p.ProcessFile(path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(result.Chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if result.Stats.Count != len(result.Chunks) {
		t.Errorf("stats count %d != chunks %d", result.Stats.Count, len(result.Chunks))
	}
	if result.Document.ID == "" {
		t.Error("document ID should be assigned")
	}
	if _, ok := result.Document.Metadata["preprocessing"]; !ok {
		t.Error("preprocessing metadata should be attached")
	}
	for i, chunk := range result.Chunks {
		if chunk.Metadata["source_file"] != path {
			t.Errorf("chunk %d source_file = %v", i, chunk.Metadata["source_file"])
		}
	}
}

func TestProcessFile_unsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.bin")
	if err := os.WriteFile(path, []byte("data"), 0600); err != nil {
		t.Fatal(err)
	}
	p, err := NewProcessor(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.ProcessFile(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestProcessDocument_invalid(t *testing.T) {
	p, err := NewProcessor(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	doc := &models.Document{Content: sampleParagraph()}
	if _, err := p.ProcessDocument(doc); !errors.Is(err, chunker.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestProcessDocumentWith_overridesStrategy(t *testing.T) {
	p, err := NewProcessor(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	doc := &models.Document{
		Content:  sampleParagraph(),
		Metadata: map[string]interface{}{"file_path": "mem.txt", "file_type": "txt"},
	}
	result, err := p.ProcessDocumentWith(doc, chunker.StrategyFixedSize)
	if err != nil {
		t.Fatal(err)
	}
	for i, chunk := range result.Chunks {
		if chunk.Metadata["chunking_strategy"] != "fixed_size" {
			t.Errorf("chunk %d strategy = %v", i, chunk.Metadata["chunking_strategy"])
		}
	}
}
