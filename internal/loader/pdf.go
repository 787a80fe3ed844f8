package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/hyperjump/kizami/internal/models"
)

// minMeaningfulPageLen is the minimum cleaned page length worth keeping.
const minMeaningfulPageLen = 50

// PDFLoader loads PDF documents, stripping per-page noise lines.
type PDFLoader struct{}

// NewPDFLoader returns a new PDFLoader.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// Supports reports whether path has a .pdf extension.
func (l *PDFLoader) Supports(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}

// Load extracts text from the PDF at path. Pages are cleaned of
// header/footer/page-number lines; pages with fewer than 50 clean characters
// are skipped. Metadata carries page_count and meaningful_pages.
func (l *PDFLoader) Load(path string) (*models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read PDF %s: %w", path, err)
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open PDF %s: %w", path, err)
	}

	var pages []string
	numPages := r.NumPage()
	meaningful := 0
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d of %s: %w", i, path, err)
		}
		clean := strings.Join(cleanLines(text, isNoiseLine), " ")
		if len(clean) > minMeaningfulPageLen {
			pages = append(pages, clean)
			meaningful++
		}
	}

	return &models.Document{
		Content: strings.TrimSpace(strings.Join(pages, "\n\n")),
		Metadata: map[string]interface{}{
			"file_type":        "pdf",
			"file_path":        path,
			"file_size":        fileSize(path),
			"page_count":       numPages,
			"meaningful_pages": meaningful,
		},
	}, nil
}
