package interfaces

import (
	"context"

	"github.com/ternarybob/vatscope/internal/models"
)

// DepositProvider lists and downloads the annual account deposits of a company
type DepositProvider interface {
	// ListDeposits returns deposits sorted by period end date then deposit date, most recent first
	ListDeposits(ctx context.Context, vatNumber string) ([]models.Deposit, error)

	// FetchCSV returns the CSV rendition of a deposit
	FetchCSV(ctx context.Context, depositID string) (models.Document, error)

	// FetchPDF returns the PDF of a deposit
	FetchPDF(ctx context.Context, depositID string) (models.Document, error)
}

// FinancialService produces the size and financial figures of a company
type FinancialService interface {
	GetSizeAndFinancialData(ctx context.Context, vatNumber string) (*models.FinancialResult, error)
}
