package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/vatscope/internal/models"
)

// FinancialResultStorage caches financial results per VAT number
type FinancialResultStorage interface {
	// GetFinancialResult returns the cached result, or nil when none is younger than maxAge
	GetFinancialResult(ctx context.Context, vatNumber string, maxAge time.Duration) (*models.FinancialResult, error)
	SaveFinancialResult(ctx context.Context, result *models.FinancialResult) error
	DeleteFinancialResult(ctx context.Context, vatNumber string) error
	ListFinancialResults(ctx context.Context) ([]*models.FinancialResult, error)
}
