// Package company assembles the consolidated registry record of a Belgian company
// from the annual account pipeline and the public registry pages.
package company

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/models"
	"github.com/ternarybob/vatscope/internal/services/financial"
	"github.com/ternarybob/vatscope/internal/services/geocode"
	"github.com/ternarybob/vatscope/internal/worker"
)

// Extraction task names, used in the error placeholders of a record
const (
	TaskFinancial          = "financial_data_and_size"
	TaskGeneralInformation = "general_info"
	TaskEstablishmentUnits = "establishment_units"
)

// applyFunc copies the outcome of a task into the record on the caller's goroutine
type applyFunc func(*models.Company)

// Builder runs the extraction tasks of a company in parallel and merges them
type Builder struct {
	financials interfaces.FinancialService
	registry   interfaces.RegistryProvider
	geocoder   interfaces.Geocoder
	pool       *worker.Pool
	validate   *validator.Validate
	logger     arbor.ILogger
}

// NewBuilder creates a company record builder. geocoder may be nil.
func NewBuilder(
	financials interfaces.FinancialService,
	registry interfaces.RegistryProvider,
	geocoder interfaces.Geocoder,
	pool *worker.Pool,
	logger arbor.ILogger,
) *Builder {
	return &Builder{
		financials: financials,
		registry:   registry,
		geocoder:   geocoder,
		pool:       pool,
		validate:   NewValidator(),
		logger:     logger,
	}
}

// Build assembles the record of one company. A failed or timed-out task leaves
// an "Error in {task}: {err}" entry in Errors instead of failing the build.
func (b *Builder) Build(ctx context.Context, vatNumber string) (*models.Company, error) {
	vat, err := financial.NormalizeVATNumber(vatNumber)
	if err != nil {
		return nil, err
	}

	b.logger.Info().Str("vat_number", vat).Msg("Building company record")

	results := b.pool.Run(ctx, b.tasks(vat))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("company %s: %w", vat, err)
	}

	company := &models.Company{VATNumber: vat}
	for _, result := range results {
		if result.Err != nil {
			company.Errors = append(company.Errors, fmt.Sprintf("Error in %s: %v", result.Name, result.Err))
			continue
		}
		if apply, ok := result.Value.(applyFunc); ok {
			apply(company)
		}
	}

	b.completeAddress(ctx, company)

	if err := ValidateCompany(b.validate, company); err != nil {
		return nil, err
	}

	b.logger.Info().
		Str("vat_number", vat).
		Str("name", company.Name).
		Int("establishment_units", len(company.EstablishmentUnits)).
		Int("errors", len(company.Errors)).
		Msg("Company record built")
	return company, nil
}

func (b *Builder) tasks(vat string) []worker.Task {
	return []worker.Task{
		{
			Name: TaskFinancial,
			Run: func(ctx context.Context) (any, error) {
				result, err := b.financials.GetSizeAndFinancialData(ctx, vat)
				if err != nil {
					return nil, err
				}
				return applyFunc(func(c *models.Company) {
					c.Financial = models.NewFinancialSummary(result.Size, result.AnnualAccount)
				}), nil
			},
		},
		{
			Name: TaskGeneralInformation,
			Run: func(ctx context.Context) (any, error) {
				info, err := b.registry.FetchGeneralInformation(ctx, vat)
				if err != nil {
					return nil, err
				}
				return applyFunc(func(c *models.Company) {
					c.Name = info.Name
					c.LegalForm = info.LegalForm
					c.Status = info.Status
					c.StartDate = info.StartDate
					c.Address = info.Address
					c.NACEBELCodes = info.NACEBELCodes
					c.GeneralInformation = info.GeneralInformation
				}), nil
			},
		},
		{
			Name: TaskEstablishmentUnits,
			Run: func(ctx context.Context) (any, error) {
				units, err := b.registry.FetchEstablishmentUnits(ctx, vat)
				if err != nil {
					return nil, err
				}
				return applyFunc(func(c *models.Company) {
					c.EstablishmentUnits = units
				}), nil
			},
		},
	}
}

// completeAddress fills the region from the postal code, then country and
// province from the geocoder when street, number, postal code and city are known
func (b *Builder) completeAddress(ctx context.Context, company *models.Company) {
	address := &company.Address
	if address.IsEmpty() {
		b.logger.Debug().Str("vat_number", company.VATNumber).Msg("No address to complete")
		return
	}

	if address.PostalCode != "" {
		if region := geocode.FindRegion(address.PostalCode); region != "" {
			address.Region = region
		} else {
			b.logger.Info().Str("postal_code", address.PostalCode).Msg("No region found for postal code")
		}
	}

	if b.geocoder == nil {
		return
	}
	if address.Street == "" || address.StreetNumber == "" || address.PostalCode == "" || address.City == "" {
		return
	}

	query := fmt.Sprintf("%s %s, %s %s", address.Street, address.StreetNumber, address.PostalCode, address.City)
	location, err := b.geocoder.Lookup(ctx, query)
	if err != nil {
		b.logger.Warn().Err(err).Str("address", query).Msg("Address lookup failed")
		return
	}
	address.Country = strings.TrimSpace(location.Country)
	address.Province = strings.TrimSpace(location.Province)
}
