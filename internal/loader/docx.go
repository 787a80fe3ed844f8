package loader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hyperjump/kizami/internal/models"
)

// docxDocumentXMLPath is the default path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path to [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType is the content type for the main document in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// wtTag matches <w:t>text</w:t> with any attributes (e.g. xml:space="preserve").
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// wpTag counts paragraph elements.
var wpTag = regexp.MustCompile(`<w:p[ >]`)

// partNameRe extracts PartName from Override elements in [Content_Types].xml.
var partNameRe = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)

// partNameRe2 handles the case where ContentType appears before PartName.
var partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)

// DOCXLoader loads Word documents. DOCX is a ZIP containing word/document.xml
// (OOXML); all <w:t>...</w:t> text nodes are extracted so content survives
// regardless of paragraph/run attributes.
type DOCXLoader struct{}

// NewDOCXLoader returns a new DOCXLoader.
func NewDOCXLoader() *DOCXLoader {
	return &DOCXLoader{}
}

// Supports reports whether path has a .docx extension.
func (l *DOCXLoader) Supports(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".docx"
}

// Load extracts text from the DOCX at path. The main document part is found
// via [Content_Types].xml with word/document.xml as the fallback. Metadata
// carries paragraph_count.
func (l *DOCXLoader) Load(path string) (*models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read DOCX %s: %w", path, err)
	}
	text, paragraphs, err := extractDOCX(content)
	if err != nil {
		return nil, fmt.Errorf("load DOCX %s: %w", path, err)
	}

	clean := strings.Join(cleanLines(text, isNoiseLine), "\n")

	return &models.Document{
		Content: clean,
		Metadata: map[string]interface{}{
			"file_type":       "docx",
			"file_path":       path,
			"file_size":       fileSize(path),
			"paragraph_count": paragraphs,
		},
	}, nil
}

// findDocxMainDocumentPath finds the main document path from [Content_Types].xml.
// Returns the path without leading slash, or empty string if not found.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	for _, f := range zr.File {
		if f.Name != contentTypesPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return ""
		}
		_ = rc.Close()

		content := buf.String()
		// Try both attribute orders
		if matches := partNameRe.FindStringSubmatch(content); len(matches) > 1 {
			return strings.TrimPrefix(matches[1], "/")
		}
		if matches := partNameRe2.FindStringSubmatch(content); len(matches) > 1 {
			return strings.TrimPrefix(matches[1], "/")
		}
		return ""
	}
	return ""
}

// extractDOCX extracts the text nodes and paragraph count from .docx bytes.
func extractDOCX(content []byte) (string, int, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("not a zip: %w", err)
	}

	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != docPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", 0, fmt.Errorf("open %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return "", 0, fmt.Errorf("read %s: %w", f.Name, err)
		}
		_ = rc.Close()
		docXML = buf.Bytes()
		break
	}
	if docXML == nil {
		return "", 0, fmt.Errorf("%s not found", docPath)
	}

	xml := string(docXML)
	paragraphs := len(wpTag.FindAllString(xml, -1))
	parts := wtTag.FindAllStringSubmatch(xml, -1)
	if len(parts) == 0 {
		return "", paragraphs, nil
	}
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(p[1]))
	}
	return strings.TrimSpace(b.String()), paragraphs, nil
}
