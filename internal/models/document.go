// Package models defines core data structures for documents and chunks.
package models

import "fmt"

// Document is a loaded document: extracted text plus format-specific metadata.
// Metadata always carries "file_path" and "file_type"; other keys depend on
// the loader that produced it.
type Document struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Validate checks the preconditions chunking relies on: metadata must be
// present and identify the source file. Returns an error describing the
// first missing piece.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}
	if d.Metadata == nil {
		return fmt.Errorf("document metadata is missing")
	}
	if _, ok := d.Metadata["file_path"]; !ok {
		return fmt.Errorf("document metadata missing file_path")
	}
	if _, ok := d.Metadata["file_type"]; !ok {
		return fmt.Errorf("document metadata missing file_type")
	}
	return nil
}

// SourceFile returns the file_path metadata value, or "" when unset.
func (d *Document) SourceFile() string {
	if d.Metadata == nil {
		return ""
	}
	if p, ok := d.Metadata["file_path"].(string); ok {
		return p
	}
	return ""
}

// DocumentInput is the input for chunking a document over the HTTP API.
type DocumentInput struct {
	ID       string                 `json:"id,omitempty"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Strategy string                 `json:"strategy,omitempty"`
}
