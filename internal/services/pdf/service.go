package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const (
	pageWidth   = 190.0 // A4 width minus margins
	bodySize    = 9.0
	tableSize   = 8.0
	lineHeight  = 5.0
	tableLine   = 4.0
	bottomLimit = 297.0 - 15.0
)

// Service implements interfaces.PDFService
type Service struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.PDFService = (*Service)(nil)

// NewService creates a new PDF service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// ConvertMarkdownToPDF converts a markdown company report to a PDF byte slice.
// Text is translated to cp1252 so the core fonts render French and Dutch accents.
func (s *Service) ConvertMarkdownToPDF(markdown, title string) ([]byte, error) {
	s.logger.Debug().
		Int("markdown_len", len(markdown)).
		Str("title", title).
		Msg("Converting markdown to PDF")

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 10, 10)
	doc.SetAutoPageBreak(true, 15)
	doc.SetTitle(title, true)
	doc.SetCreator("vatscope", true)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Arial", "I", 7)
		doc.CellFormat(0, 5, tr(fmt.Sprintf("%s - page %d", title, doc.PageNo())), "", 0, "C", false, 0, "")
	})

	doc.AddPage()
	doc.SetFont("Arial", "", bodySize)

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	source := []byte(markdown)
	root := md.Parser().Parse(text.NewReader(source))

	r := &reportRenderer{pdf: doc, source: source, tr: tr}
	if err := ast.Walk(root, r.walk); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render report")
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("PDF generated")
	return buf.Bytes(), nil
}

type reportRenderer struct {
	pdf       *fpdf.Fpdf
	source    []byte
	tr        func(string) string
	bold      bool
	italic    bool
	listLevel int
}

func (r *reportRenderer) setFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont("Arial", style, bodySize)
}

func (r *reportRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			sizes := map[int]float64{1: 14, 2: 12, 3: 10}
			size, ok := sizes[node.Level]
			if !ok {
				size = bodySize
			}
			r.pdf.Ln(4)
			r.pdf.SetFont("Arial", "B", size)
		} else {
			r.pdf.Ln(7)
			r.setFont()
		}
	case *ast.Paragraph, *ast.TextBlock:
		if !entering && r.listLevel == 0 {
			r.pdf.Ln(6)
		}
	case *ast.Text:
		if entering {
			r.pdf.Write(lineHeight, r.tr(string(node.Segment.Value(r.source))))
			if node.SoftLineBreak() {
				r.pdf.Write(lineHeight, " ")
			}
			if node.HardLineBreak() {
				r.pdf.Ln(lineHeight)
			}
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.setFont()
	case *ast.CodeSpan:
		if entering {
			r.pdf.SetFont("Courier", "", bodySize)
			r.pdf.Write(lineHeight, r.tr(string(node.Text(r.source))))
			r.setFont()
		}
		return ast.WalkSkipChildren, nil
	case *ast.List:
		if entering {
			r.listLevel++
		} else {
			r.listLevel--
			if r.listLevel == 0 {
				r.pdf.Ln(7)
			}
		}
	case *ast.ListItem:
		if entering {
			if node.PreviousSibling() != nil {
				r.pdf.Ln(lineHeight)
			}
			r.pdf.SetX(10 + float64(r.listLevel)*5)
			r.pdf.Write(lineHeight, "- ")
		}
	case *ast.ThematicBreak:
		if entering {
			r.pdf.Ln(2)
			y := r.pdf.GetY()
			r.pdf.Line(10, y, 10+pageWidth, y)
			r.pdf.Ln(3)
		}
	case *extast.Table:
		if entering {
			r.renderTable(r.tableRows(node))
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (r *reportRenderer) tableRows(table *extast.Table) [][]string {
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		var cells []string
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.tr(strings.TrimSpace(string(cell.Text(r.source)))))
		}
		rows = append(rows, cells)
	}
	return rows
}

// renderTable draws a bordered table, the first row as header, wrapping cell text
func (r *reportRenderer) renderTable(rows [][]string) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}
	columns := len(rows[0])
	widths := r.columnWidths(rows, columns)

	r.pdf.Ln(1)
	for i, row := range rows {
		style := ""
		if i == 0 {
			style = "B"
			r.pdf.SetFillColor(230, 230, 230)
		}
		r.pdf.SetFont("Arial", style, tableSize)

		lines := 1
		for j := 0; j < columns && j < len(row); j++ {
			if n := len(r.pdf.SplitText(row[j], widths[j]-2)); n > lines {
				lines = n
			}
		}
		height := float64(lines)*tableLine + 2

		x, y := r.pdf.GetX(), r.pdf.GetY()
		if y+height > bottomLimit {
			r.pdf.AddPage()
			x, y = r.pdf.GetX(), r.pdf.GetY()
		}

		cellX := x
		for j := 0; j < columns; j++ {
			fill := "D"
			if i == 0 {
				fill = "FD"
			}
			r.pdf.Rect(cellX, y, widths[j], height, fill)
			if j < len(row) {
				r.pdf.SetXY(cellX+1, y+1)
				r.pdf.MultiCell(widths[j]-2, tableLine, row[j], "", "L", false)
			}
			cellX += widths[j]
		}
		r.pdf.SetXY(x, y+height)
	}
	r.pdf.Ln(4)
	r.setFont()
}

// columnWidths sizes columns by their widest cell, scaled to fit the page
func (r *reportRenderer) columnWidths(rows [][]string, columns int) []float64 {
	r.pdf.SetFont("Arial", "B", tableSize)
	widths := make([]float64, columns)
	total := 0.0
	for j := range widths {
		for _, row := range rows {
			if j < len(row) {
				if w := r.pdf.GetStringWidth(row[j]) + 4; w > widths[j] {
					widths[j] = w
				}
			}
		}
		if widths[j] < 15 {
			widths[j] = 15
		}
		if widths[j] > pageWidth/2 {
			widths[j] = pageWidth / 2
		}
		total += widths[j]
	}
	scale := pageWidth / total
	for j := range widths {
		widths[j] *= scale
	}
	return widths
}
