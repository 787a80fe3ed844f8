package chunker

import (
	"errors"
	"testing"

	"github.com/hyperjump/kizami/internal/models"
)

func testDocument(content string) *models.Document {
	return &models.Document{
		ID:      "doc1",
		Content: content,
		Metadata: map[string]interface{}{
			"file_path":  "/docs/sample.txt",
			"file_type":  "txt",
			"line_count": 12,
		},
	}
}

func TestChunkDocument_fixedSize(t *testing.T) {
	c := NewChunker(400, 0)
	chunks, err := c.ChunkDocument(testDocument(makeText(30)), StrategyFixedSize)
	if err != nil {
		t.Fatalf("ChunkDocument: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, chunk := range chunks {
		if !c.IsQualityChunk(chunk.Content) {
			t.Errorf("chunk %d does not satisfy the quality filter", i)
		}
		if chunk.ChunkID != i {
			t.Errorf("chunk %d has ChunkID %d", i, chunk.ChunkID)
		}
	}
}

func TestChunkDocument_sentence(t *testing.T) {
	c := NewChunker(300, 50)
	chunks, err := c.ChunkDocument(testDocument(makeText(12)), StrategySentence)
	if err != nil {
		t.Fatalf("ChunkDocument: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
}

func TestChunkDocument_unknownStrategy(t *testing.T) {
	c := NewChunker(400, 0)
	chunks, err := c.ChunkDocument(testDocument(makeText(6)), Strategy("semantic"))
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
	if chunks != nil {
		t.Error("no partial output on invalid strategy")
	}
}

func TestChunkDocument_invalidDocument(t *testing.T) {
	c := NewChunker(400, 0)
	tests := []struct {
		name string
		doc  *models.Document
	}{
		{"nil document", nil},
		{"nil metadata", &models.Document{Content: makeText(6)}},
		{"missing file_path", &models.Document{Content: makeText(6), Metadata: map[string]interface{}{"file_type": "txt"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.ChunkDocument(tt.doc, StrategyFixedSize); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestChunkDocument_emptyContent(t *testing.T) {
	c := NewChunker(400, 0)
	chunks, err := c.ChunkDocument(testDocument(""), StrategyFixedSize)
	if err != nil {
		t.Fatalf("empty content should not error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestChunkDocument_allNoiseContent(t *testing.T) {
	c := NewChunker(400, 0)
	chunks, err := c.ChunkDocument(testDocument("Copyright 2020 All Rights Reserved"), StrategyFixedSize)
	if err != nil {
		t.Fatalf("noise content should not error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks from front matter, got %d", len(chunks))
	}
}

func TestChunkDocument_metadataEnrichment(t *testing.T) {
	c := NewChunker(400, 0)
	chunks, err := c.ChunkDocument(testDocument(makeText(30)), StrategyFixedSize)
	if err != nil {
		t.Fatalf("ChunkDocument: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, chunk := range chunks {
		if chunk.Metadata["source_file"] != "/docs/sample.txt" {
			t.Errorf("chunk %d source_file = %v", i, chunk.Metadata["source_file"])
		}
		if chunk.Metadata["file_type"] != "txt" {
			t.Errorf("chunk %d file_type = %v", i, chunk.Metadata["file_type"])
		}
		original, ok := chunk.Metadata["original_metadata"].(map[string]interface{})
		if !ok {
			t.Fatalf("chunk %d original_metadata missing", i)
		}
		if original["line_count"] != 12 {
			t.Errorf("chunk %d original_metadata line_count = %v", i, original["line_count"])
		}
		if _, has := original["file_path"]; has {
			t.Errorf("chunk %d original_metadata should not carry file_path", i)
		}
		if _, has := original["file_type"]; has {
			t.Errorf("chunk %d original_metadata should not carry file_type", i)
		}
	}
}

func TestChunkDocument_deterministic(t *testing.T) {
	c := NewChunker(400, 0)
	doc := testDocument(makeText(30))
	first, err := c.ChunkDocument(doc, StrategyFixedSize)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.ChunkDocument(doc, StrategyFixedSize)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Content != second[i].Content {
			t.Errorf("chunk %d content differs between runs", i)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"fixed_size", StrategyFixedSize, false},
		{"sentence", StrategySentence, false},
		{"semantic", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetChunking(t *testing.T) {
	c := NewChunker(400, 0)
	c.SetChunking(200, 20)
	if c.ChunkSize() != 200 || c.ChunkOverlap() != 20 {
		t.Errorf("SetChunking not applied: size=%d overlap=%d", c.ChunkSize(), c.ChunkOverlap())
	}
}
