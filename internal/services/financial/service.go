package financial

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/models"
)

// documentParser turns a fetched deposit document into a code table
type documentParser func(ctx context.Context, doc models.Document) (models.CodeTable, error)

// Service implements interfaces.FinancialService
type Service struct {
	deposits   interfaces.DepositProvider
	tables     interfaces.PDFTableExtractor
	storage    interfaces.FinancialResultStorage
	classifier *Classifier
	cacheTTL   time.Duration
	logger     arbor.ILogger
	parsers    map[models.DocumentKind]documentParser
	now        func() time.Time
}

// Compile-time assertion
var _ interfaces.FinancialService = (*Service)(nil)

// NewService creates a new financial service. storage may be nil to disable caching.
func NewService(
	deposits interfaces.DepositProvider,
	tables interfaces.PDFTableExtractor,
	storage interfaces.FinancialResultStorage,
	classifier *Classifier,
	cacheTTL time.Duration,
	logger arbor.ILogger,
) *Service {
	s := &Service{
		deposits:   deposits,
		tables:     tables,
		storage:    storage,
		classifier: classifier,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        time.Now,
	}
	s.parsers = map[models.DocumentKind]documentParser{
		models.DocumentKindCSV: s.parseCSV,
		models.DocumentKindPDF: s.parsePDF,
	}
	return s
}

// GetSizeAndFinancialData runs deposit selection, extraction, assembly and
// classification for one company. A nil size in the result is not an error.
func (s *Service) GetSizeAndFinancialData(ctx context.Context, vatNumber string) (*models.FinancialResult, error) {
	vat, err := NormalizeVATNumber(vatNumber)
	if err != nil {
		return nil, err
	}

	if cached := s.cached(ctx, vat); cached != nil {
		return cached, nil
	}

	deposits, err := s.deposits.ListDeposits(ctx, vat)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits for %s: %w", vat, err)
	}
	if len(deposits) == 0 {
		s.logger.Info().Str("vat_number", vat).Msg("No published deposits")
		return nil, fmt.Errorf("%w for %s", ErrNoFinancialData, vat)
	}

	table, deposit, kind, err := s.extract(ctx, deposits)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("vat_number", vat).
			Str("deposit_id", deposit.ID).
			Msg("Financial extraction failed, no figures available")
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoFinancialData, vat)
	}

	account := Assemble(table)
	if bad := UnparseableCodes(table); len(bad) > 0 {
		s.logger.Debug().Str("vat_number", vat).Strs("codes", bad).Msg("Ignoring unparseable amounts")
	}
	size := s.classifier.Classify(account)
	if size == nil {
		s.logger.Warn().
			Str("vat_number", vat).
			Str("model_code", account.ModelCode).
			Msg("Company size could not be determined")
	}

	result := &models.FinancialResult{
		ExtractionID:  uuid.New().String(),
		VATNumber:     vat,
		Size:          size,
		AnnualAccount: account,
		DepositID:     deposit.ID,
		PeriodEnd:     deposit.PeriodEndDate,
		Source:        kind,
		ExtractedAt:   s.now().UTC(),
	}

	s.logger.Info().
		Str("vat_number", vat).
		Str("deposit_id", deposit.ID).
		Str("source", string(kind)).
		Int("codes", len(table)).
		Msg("Financial data extracted")

	s.store(ctx, result)
	return result, nil
}

// ExtractFinancialFromDeposits reads the code table of the deposit chosen from
// the latest fiscal year. No eligible deposit yields an empty table.
func (s *Service) ExtractFinancialFromDeposits(ctx context.Context, deposits []models.Deposit) (models.CodeTable, models.DocumentKind, error) {
	table, _, kind, err := s.extract(ctx, deposits)
	return table, kind, err
}

func (s *Service) extract(ctx context.Context, deposits []models.Deposit) (models.CodeTable, models.Deposit, models.DocumentKind, error) {
	deposit, ok := chooseDeposit(SelectLatestYearDeposits(deposits))
	if !ok {
		return models.CodeTable{}, models.Deposit{}, "", nil
	}

	doc, err := s.fetch(ctx, deposit)
	if err != nil {
		return models.CodeTable{}, deposit, "", err
	}

	parse, ok := s.parsers[doc.Kind]
	if !ok {
		return models.CodeTable{}, deposit, doc.Kind, fmt.Errorf("no parser for %s documents", doc.Kind)
	}

	table, err := parse(ctx, doc)
	if table == nil {
		table = models.CodeTable{}
	}
	return table, deposit, doc.Kind, err
}

func (s *Service) fetch(ctx context.Context, deposit models.Deposit) (models.Document, error) {
	if deposit.ImportFileType.IsPDF() {
		doc, err := s.deposits.FetchPDF(ctx, deposit.ID)
		if err != nil {
			return models.Document{}, fmt.Errorf("failed to fetch PDF deposit %s: %w", deposit.ID, err)
		}
		return doc, nil
	}
	doc, err := s.deposits.FetchCSV(ctx, deposit.ID)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to fetch CSV deposit %s: %w", deposit.ID, err)
	}
	return doc, nil
}

func (s *Service) parseCSV(_ context.Context, doc models.Document) (models.CodeTable, error) {
	return ParseCSVCodes(doc.Text)
}

// parsePDF merges the code tables of every detected table, later tables winning
func (s *Service) parsePDF(ctx context.Context, doc models.Document) (models.CodeTable, error) {
	if s.tables == nil {
		return models.CodeTable{}, errors.New("no PDF table extractor configured")
	}

	tables, err := s.tables.ExtractTables(ctx, doc.Data, codesKeyword)
	if err != nil {
		return models.CodeTable{}, fmt.Errorf("failed to extract PDF tables: %w", err)
	}

	merged := models.CodeTable{}
	for _, t := range tables {
		codes := CodesFromGrid(t.Rows)
		for code, value := range codes {
			if previous, exists := merged[code]; exists && previous != value {
				s.logger.Debug().
					Str("code", code).
					Str("previous", previous).
					Str("value", value).
					Int("page", t.PageNumber).
					Msg("Duplicate accounting code overwritten")
			}
		}
		merged.Merge(codes)
	}
	return merged, nil
}

func (s *Service) cached(ctx context.Context, vat string) *models.FinancialResult {
	if s.storage == nil {
		return nil
	}
	result, err := s.storage.GetFinancialResult(ctx, vat, s.cacheTTL)
	if err != nil {
		s.logger.Warn().Err(err).Str("vat_number", vat).Msg("Failed to read cached financial result")
		return nil
	}
	if result != nil {
		s.logger.Debug().Str("vat_number", vat).Str("extraction_id", result.ExtractionID).Msg("Serving cached financial result")
	}
	return result
}

func (s *Service) store(ctx context.Context, result *models.FinancialResult) {
	if s.storage == nil {
		return
	}
	if err := s.storage.SaveFinancialResult(ctx, result); err != nil {
		s.logger.Warn().Err(err).Str("vat_number", result.VATNumber).Msg("Failed to cache financial result")
	}
}
