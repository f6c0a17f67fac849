// -----------------------------------------------------------------------
// PDF Extractor Interface - Extract borderless tables from PDF documents
// -----------------------------------------------------------------------

package interfaces

import (
	"context"
)

// PDFTableData represents one table detected on a PDF page, as a grid of cell texts
type PDFTableData struct {
	PageNumber int        `json:"page_number"`
	Rows       [][]string `json:"rows"`
}

// PDFTableExtractor detects tables on the pages of a PDF that mention a keyword.
// Pages without the keyword are never parsed for tables.
type PDFTableExtractor interface {
	ExtractTables(ctx context.Context, data []byte, keyword string) ([]PDFTableData, error)
}
