package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/kizami/internal/models"
)

// textExtensions are the plain-text extensions the TextLoader handles.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".rst": true,
}

// TextLoader loads plain-text documents. Content is UTF-8 validated with
// invalid sequences replaced; separator lines (mostly dashes, equals signs,
// or dots) are dropped.
type TextLoader struct{}

// NewTextLoader returns a new TextLoader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Supports reports whether path has a plain-text extension.
func (l *TextLoader) Supports(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}

// Load reads the text file at path. Metadata carries line_count, the number
// of lines surviving noise removal.
func (l *TextLoader) Load(path string) (*models.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file %s: %w", path, err)
	}
	content := string(raw)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "�")
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isSeparatorLine(line) {
			continue
		}
		lines = append(lines, line)
	}

	return &models.Document{
		Content: strings.Join(lines, "\n"),
		Metadata: map[string]interface{}{
			"file_type":  "txt",
			"file_path":  path,
			"file_size":  fileSize(path),
			"line_count": len(lines),
		},
	}, nil
}
