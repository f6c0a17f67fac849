package models

// DocumentKind tags the content carried by a Document
type DocumentKind string

const (
	DocumentKindCSV  DocumentKind = "csv"
	DocumentKindPDF  DocumentKind = "pdf"
	DocumentKindHTML DocumentKind = "html"
)

// Document is a fetched source document. Text carries CSV and HTML content,
// Data carries the raw bytes of a PDF.
type Document struct {
	Kind DocumentKind `json:"kind"`
	URL  string       `json:"url,omitempty"`
	Text string       `json:"text,omitempty"`
	Data []byte       `json:"-"`
}

// NewCSVDocument wraps CSV text
func NewCSVDocument(url, text string) Document {
	return Document{Kind: DocumentKindCSV, URL: url, Text: text}
}

// NewPDFDocument wraps raw PDF bytes
func NewPDFDocument(url string, data []byte) Document {
	return Document{Kind: DocumentKindPDF, URL: url, Data: data}
}

// NewHTMLDocument wraps an HTML page
func NewHTMLDocument(url, html string) Document {
	return Document{Kind: DocumentKindHTML, URL: url, Text: html}
}

// IsEmpty reports whether the document carries no content
func (d Document) IsEmpty() bool {
	return d.Text == "" && len(d.Data) == 0
}
