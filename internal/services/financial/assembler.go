package financial

import (
	"github.com/ternarybob/vatscope/internal/models"
)

// Accounting codes of the Belgian annual account schema
const (
	CodeModel            = "Model code"
	CodeEmployees        = "1003"
	CodeEmployeesSocial  = "9087"
	CodeRevenue          = "70"
	CodeTotalAssets      = "10/49"
	CodeGrossMargin      = "9900"
	CodeOtherIncome      = "74"
	CodeRawMaterials     = "60"
	CodeServicesAndGoods = "61"
)

// Assemble builds the annual account from a code table. Every field is looked up
// independently and left nil when its codes are absent or unparseable.
func Assemble(table models.CodeTable) models.AnnualAccount {
	account := models.AnnualAccount{
		ModelCode:           table[CodeModel],
		PreviousYearRevenue: lookup(table, CodeRevenue),
		TotalAssets:         lookup(table, CodeTotalAssets),
	}

	account.Employees = lookup(table, CodeEmployees)
	if account.Employees == nil {
		account.Employees = lookup(table, CodeEmployeesSocial)
	}

	account.GrossMargin = lookup(table, CodeGrossMargin)
	if account.GrossMargin == nil {
		account.GrossMargin = computedGrossMargin(table)
	}

	return account
}

// computedGrossMargin is (74 + 70) - (60 + 61), with absent terms counted as zero.
// Returns nil when none of the four codes is usable.
func computedGrossMargin(table models.CodeTable) *float64 {
	otherIncome := lookup(table, CodeOtherIncome)
	revenue := lookup(table, CodeRevenue)
	rawMaterials := lookup(table, CodeRawMaterials)
	services := lookup(table, CodeServicesAndGoods)
	if otherIncome == nil && revenue == nil && rawMaterials == nil && services == nil {
		return nil
	}
	margin := (deref(otherIncome) + deref(revenue)) - (deref(rawMaterials) + deref(services))
	return &margin
}

func lookup(table models.CodeTable, code string) *float64 {
	raw, ok := table[code]
	if !ok {
		return nil
	}
	value, ok := ParseAmount(raw)
	if !ok {
		return nil
	}
	return &value
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// UnparseableCodes lists the assembler codes present in table whose value is not a number
func UnparseableCodes(table models.CodeTable) []string {
	var codes []string
	for _, code := range []string{CodeEmployees, CodeEmployeesSocial, CodeRevenue, CodeTotalAssets,
		CodeGrossMargin, CodeOtherIncome, CodeRawMaterials, CodeServicesAndGoods} {
		if raw, ok := table[code]; ok {
			if _, parsed := ParseAmount(raw); !parsed {
				codes = append(codes, code)
			}
		}
	}
	return codes
}
