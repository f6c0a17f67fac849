// -----------------------------------------------------------------------
// PDF Extractor Service - Detect borderless tables in deposit PDFs
// Uses pdfcpu for validation and decryption, ledongthuc/pdf for positioned text
// -----------------------------------------------------------------------

package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/interfaces"
)

// ErrNoKeywordPages is returned when no page of the document mentions the keyword
var ErrNoKeywordPages = errors.New("no page contains the keyword")

// Extractor implements the PDFTableExtractor interface
type Extractor struct {
	logger  arbor.ILogger
	tempDir string
}

// Compile-time interface assertion
var _ interfaces.PDFTableExtractor = (*Extractor)(nil)

// NewExtractor creates a new PDF table extractor. An empty tempDir uses os.TempDir().
func NewExtractor(tempDir string, logger arbor.ILogger) *Extractor {
	return &Extractor{
		logger:  logger,
		tempDir: tempDir,
	}
}

// pageGlyphs is the positioned text of one page
type pageGlyphs struct {
	number int
	glyphs []glyph
}

// ExtractTables writes the document to a temporary file, keeps the pages whose
// text contains keyword (case-insensitive) and returns the tables found on them.
// The temporary file is removed on every path.
func (e *Extractor) ExtractTables(ctx context.Context, data []byte, keyword string) ([]interfaces.PDFTableData, error) {
	if len(data) == 0 {
		return nil, errors.New("empty PDF document")
	}

	tempFile, err := e.writeTemp(data)
	if err != nil {
		return nil, err
	}
	defer e.removeTemp(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	// The text reader cannot open encrypted files, owner-locked deposits are decrypted in place
	if pdfCtx.Encrypt != nil {
		if err := e.decrypt(tempFile); err != nil {
			return nil, err
		}
	}

	pages, pageCount, err := readPages(ctx, tempFile)
	if err != nil {
		return nil, err
	}
	if pageCount != pdfCtx.PageCount {
		e.logger.Warn().
			Int("pdfcpu_pages", pdfCtx.PageCount).
			Int("text_pages", pageCount).
			Msg("Page count mismatch between PDF readers")
	}

	keyword = strings.ToLower(keyword)
	var tables []interfaces.PDFTableData
	matched := 0
	for _, page := range pages {
		lines := groupLines(page.glyphs)
		if !strings.Contains(strings.ToLower(linesText(lines)), keyword) {
			continue
		}
		matched++
		for _, grid := range detectTables(page.glyphs) {
			tables = append(tables, interfaces.PDFTableData{PageNumber: page.number, Rows: grid})
		}
	}

	e.logger.Debug().
		Int("page_count", pdfCtx.PageCount).
		Int("matched_pages", matched).
		Int("tables", len(tables)).
		Msg("Extracted PDF tables")

	if matched == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoKeywordPages, keyword)
	}
	return tables, nil
}

func (e *Extractor) writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp(e.tempDir, "deposit-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp PDF file: %w", err)
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		e.removeTemp(name)
		return "", fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	if err := f.Close(); err != nil {
		e.removeTemp(name)
		return "", fmt.Errorf("failed to close temp PDF file: %w", err)
	}
	return name, nil
}

func (e *Extractor) decrypt(name string) error {
	if err := api.DecryptFile(name, "", model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("failed to decrypt PDF: %w", err)
	}
	e.logger.Debug().Str("file", name).Msg("Decrypted owner-protected PDF")
	return nil
}

func (e *Extractor) removeTemp(name string) {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		e.logger.Warn().Err(err).Str("file", name).Msg("Failed to remove temp PDF file")
	}
}

// readPages reads the positioned glyphs of every page and returns them with the
// page count of the document. The reader panics on some malformed content
// streams, which is reported as an error.
func readPages(ctx context.Context, path string) (pages []pageGlyphs, count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("failed to read PDF text: %v", r)
		}
	}()

	f, reader, err := lpdf.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	count = reader.NumPage()
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		glyphs := make([]glyph, 0, len(texts))
		for _, t := range texts {
			glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
		}
		pages = append(pages, pageGlyphs{number: i, glyphs: glyphs})
	}
	return pages, count, nil
}
