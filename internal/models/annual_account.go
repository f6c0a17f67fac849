package models

import (
	"time"
)

// CodeTable maps an accounting code ("70", "10/49", "Model code") to its raw value
type CodeTable map[string]string

// Merge copies every entry of other into t, overwriting existing codes
func (t CodeTable) Merge(other CodeTable) {
	for code, value := range other {
		t[code] = value
	}
}

// AnnualAccount is the canonical financial snapshot of one company-year.
// A nil numeric field was absent from the filing, a non-nil zero was reported as zero.
type AnnualAccount struct {
	ModelCode           string   `json:"model_code"`
	Employees           *float64 `json:"employees,omitempty"`             // Full-time equivalents (codes 1003 / 9087)
	PreviousYearRevenue *float64 `json:"previous_year_revenue,omitempty"` // Turnover (code 70)
	TotalAssets         *float64 `json:"total_assets,omitempty"`          // Balance sheet total (code 10/49)
	GrossMargin         *float64 `json:"gross_margin,omitempty"`          // Code 9900 or (74 + 70) - (60 + 61)
}

// EmployeesOrZero returns the employee count, 0 when absent
func (a AnnualAccount) EmployeesOrZero() float64 { return valueOrZero(a.Employees) }

// RevenueOrZero returns the previous year revenue, 0 when absent
func (a AnnualAccount) RevenueOrZero() float64 { return valueOrZero(a.PreviousYearRevenue) }

// AssetsOrZero returns the balance sheet total, 0 when absent
func (a AnnualAccount) AssetsOrZero() float64 { return valueOrZero(a.TotalAssets) }

// HasFigures reports whether at least one of employees, revenue or assets is present and non-zero
func (a AnnualAccount) HasFigures() bool {
	return a.EmployeesOrZero() != 0 || a.RevenueOrZero() != 0 || a.AssetsOrZero() != 0
}

// IsEmpty reports whether nothing at all was extracted
func (a AnnualAccount) IsEmpty() bool {
	return a.ModelCode == "" && a.Employees == nil && a.PreviousYearRevenue == nil &&
		a.TotalAssets == nil && a.GrossMargin == nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FinancialResult is the outcome of the size and financial pipeline for one VAT number
type FinancialResult struct {
	ExtractionID  string        `json:"extraction_id"`
	VATNumber     string        `json:"vat_number"`
	Size          *CompanySize  `json:"size"`
	AnnualAccount AnnualAccount `json:"annual_account"`
	DepositID     string        `json:"deposit_id,omitempty"`
	PeriodEnd     time.Time     `json:"period_end,omitempty"`
	Source        DocumentKind  `json:"source,omitempty"`
	ExtractedAt   time.Time     `json:"extracted_at"`
}
