package models

import (
	"strings"
	"time"
)

// FileType is the import file type of an NBB deposit
type FileType string

// FileTypePDF marks deposits only available as a scanned or generated PDF.
// Every other file type (CSV, XBRL, ...) has a structured CSV rendition.
const FileTypePDF FileType = "PDF"

// IsPDF reports whether the deposit has to go through the PDF table extractor
func (f FileType) IsPDF() bool {
	return strings.EqualFold(strings.TrimSpace(string(f)), string(FileTypePDF))
}

// Deposit is one annual account filing published by the National Bank of Belgium
type Deposit struct {
	ID             string    `json:"id"`
	PeriodEndDate  time.Time `json:"period_end_date"`
	DepositDate    time.Time `json:"deposit_date"`
	ImportFileType FileType  `json:"import_file_type"`
}

// FiscalYear returns the calendar year the deposit's accounting period ends in
func (d Deposit) FiscalYear() int {
	return d.PeriodEndDate.Year()
}
