package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// financialRecord is the stored form of a result. The result travels as JSON
// so that optional figures keep the difference between nil and zero.
type financialRecord struct {
	VATNumber   string
	ExtractedAt time.Time
	Payload     []byte
}

// FinancialStorage implements the FinancialResultStorage interface for Badger
type FinancialStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
	now    func() time.Time
}

// Compile-time assertion
var _ interfaces.FinancialResultStorage = (*FinancialStorage)(nil)

// NewFinancialStorage creates a new FinancialStorage instance
func NewFinancialStorage(db *BadgerDB, logger arbor.ILogger) *FinancialStorage {
	return &FinancialStorage{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// GetFinancialResult returns the cached result for a VAT number, nil when absent or older than maxAge
func (s *FinancialStorage) GetFinancialResult(ctx context.Context, vatNumber string, maxAge time.Duration) (*models.FinancialResult, error) {
	var record financialRecord
	err := s.db.Store().Get(vatNumber, &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get financial result: %w", err)
	}

	if maxAge > 0 && s.now().Sub(record.ExtractedAt) > maxAge {
		s.logger.Debug().
			Str("vat_number", vatNumber).
			Str("extracted_at", record.ExtractedAt.Format(time.RFC3339)).
			Msg("Cached financial result expired")
		return nil, nil
	}

	return decodeRecord(record)
}

// SaveFinancialResult inserts or replaces the result of a VAT number
func (s *FinancialStorage) SaveFinancialResult(ctx context.Context, result *models.FinancialResult) error {
	if result == nil || result.VATNumber == "" {
		return errors.New("financial result without VAT number")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode financial result: %w", err)
	}

	record := financialRecord{
		VATNumber:   result.VATNumber,
		ExtractedAt: result.ExtractedAt,
		Payload:     payload,
	}
	if err := s.db.Store().Upsert(result.VATNumber, &record); err != nil {
		return fmt.Errorf("failed to save financial result: %w", err)
	}
	return nil
}

// DeleteFinancialResult removes the cached result of a VAT number
func (s *FinancialStorage) DeleteFinancialResult(ctx context.Context, vatNumber string) error {
	err := s.db.Store().Delete(vatNumber, &financialRecord{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete financial result: %w", err)
	}
	return nil
}

// ListFinancialResults returns every cached result, most recent extraction first
func (s *FinancialStorage) ListFinancialResults(ctx context.Context) ([]*models.FinancialResult, error) {
	var records []financialRecord
	if err := s.db.Store().Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list financial results: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ExtractedAt.After(records[j].ExtractedAt)
	})

	results := make([]*models.FinancialResult, 0, len(records))
	for _, record := range records {
		result, err := decodeRecord(record)
		if err != nil {
			s.logger.Warn().Err(err).Str("vat_number", record.VATNumber).Msg("Skipping unreadable cached result")
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

func decodeRecord(record financialRecord) (*models.FinancialResult, error) {
	var result models.FinancialResult
	if err := json.Unmarshal(record.Payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode financial result: %w", err)
	}
	return &result, nil
}
