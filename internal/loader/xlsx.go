package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/kizami/internal/models"
	"github.com/xuri/excelize/v2"
)

// XLSXLoader loads Excel workbooks, one tab-joined line per row.
type XLSXLoader struct{}

// NewXLSXLoader returns a new XLSXLoader.
func NewXLSXLoader() *XLSXLoader {
	return &XLSXLoader{}
}

// Supports reports whether path has a .xlsx extension.
func (l *XLSXLoader) Supports(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xlsx"
}

// Load extracts cell text from every sheet. Metadata carries sheet_count.
func (l *XLSXLoader) Load(path string) (*models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read Excel %s: %w", path, err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open Excel %s: %w", path, err)
	}
	defer f.Close()

	var buf strings.Builder
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q of %s: %w", sheet, path, err)
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
		}
	}

	return &models.Document{
		Content: strings.TrimSpace(buf.String()),
		Metadata: map[string]interface{}{
			"file_type":   "xlsx",
			"file_path":   path,
			"file_size":   fileSize(path),
			"sheet_count": len(sheets),
		},
	}, nil
}
