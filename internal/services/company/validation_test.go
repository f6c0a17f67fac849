package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/vatscope/internal/models"
)

func TestValidateCompany(t *testing.T) {
	validate := NewValidator()

	tests := []struct {
		name    string
		company *models.Company
		wantErr bool
	}{
		{"minimal", &models.Company{VATNumber: "0403394333"}, false},
		{"full", registryRecord(), false},
		{"nil", nil, true},
		{"short vat", &models.Company{VATNumber: "403394333"}, true},
		{"bad nacebel", &models.Company{VATNumber: "0403394333", NACEBELCodes: []string{"70100"}}, true},
		{"bad postal code", &models.Company{VATNumber: "0403394333", Address: models.Address{PostalCode: "B-1000"}}, true},
		{"unknown region", &models.Company{VATNumber: "0403394333", Address: models.Address{Region: "Bavaria"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompany(validate, tt.company)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func registryRecord() *models.Company {
	company := registryCompany()
	company.VATNumber = "0403394333"
	company.Address.Region = "Bruxelles"
	return company
}
