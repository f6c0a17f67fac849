package company

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/vatscope/internal/models"
)

func TestRenderMarkdown(t *testing.T) {
	employees := int64(12)
	margin := int64(240000)
	company := registryCompany()
	company.VATNumber = "0403394333"
	company.Address.Region = "Bruxelles"
	company.Financial = models.FinancialSummary{
		NumberOfEmployees: &employees,
		GrossMargin:       &margin,
		CompanySize:       models.SizePtr(models.CompanySizeSmall),
	}
	company.EstablishmentUnits = []models.EstablishmentUnit{
		{Status: "Actif", EstablishmentNumber: "2123456789", StartDate: "1 janvier 2000", Denomination: "ACME | Bruxelles", Address: "Rue de la Loi 16 1000 Bruxelles"},
	}
	company.Errors = []string{"Error in establishment_units: timeout"}

	markdown := RenderMarkdown(company)

	assert.True(t, strings.HasPrefix(markdown, "# ACME SA\n"))
	assert.Contains(t, markdown, "| VAT number | 0403.394.333 |")
	assert.Contains(t, markdown, "| Address | Rue de la Loi 16, 1000 Bruxelles |")
	assert.Contains(t, markdown, "| Region | Bruxelles |")
	assert.Contains(t, markdown, "| Province | - |")
	assert.Contains(t, markdown, "- NACEBEL 70.100\n")
	assert.Contains(t, markdown, "| Company size | small |")
	assert.Contains(t, markdown, "| Employees | 12 |")
	assert.Contains(t, markdown, "| Gross margin (EUR) | 240000 |")
	assert.Contains(t, markdown, "## Establishment units (1)")
	assert.Contains(t, markdown, `ACME \| Bruxelles`)
	assert.Contains(t, markdown, "- Error in establishment_units: timeout\n")
}

func TestRenderMarkdown_MinimalRecord(t *testing.T) {
	markdown := RenderMarkdown(&models.Company{VATNumber: "0403394333"})

	assert.True(t, strings.HasPrefix(markdown, "# 0403.394.333\n"))
	assert.Contains(t, markdown, "| Company size | unknown |")
	assert.Contains(t, markdown, "| Employees | - |")
	assert.NotContains(t, markdown, "## Registered address")
	assert.NotContains(t, markdown, "## Establishment units")
	assert.NotContains(t, markdown, "## Incomplete data")
}
