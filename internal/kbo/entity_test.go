package kbo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/vatscope/internal/models"
)

func TestParseEntityPage_French(t *testing.T) {
	company, err := ParseEntityPage(entityPageHTML)
	require.NoError(t, err)

	assert.Equal(t, "ACME SA", company.Name)
	assert.Equal(t, "Actif", company.Status)
	assert.Equal(t, "1 janvier 1933", company.StartDate)
	assert.Equal(t, "Société anonyme", company.LegalForm)
	assert.Equal(t, models.Address{
		Street:       "Rue de la Loi",
		StreetNumber: "16",
		PostalCode:   "1000",
		City:         "Bruxelles",
	}, company.Address)
	assert.Equal(t, []string{"70.100", "62.010"}, company.NACEBELCodes)
}

func TestParseEntityPage_Dutch(t *testing.T) {
	company, err := ParseEntityPage(dutchEntityPageHTML)
	require.NoError(t, err)

	assert.Equal(t, "Bakkerij Peeters BV", company.Name)
	assert.Equal(t, "Actief", company.Status)
	assert.Equal(t, "Besloten vennootschap", company.LegalForm)
	assert.Equal(t, "Kerkstraat", company.Address.Street)
	assert.Equal(t, "1A", company.Address.StreetNumber)
	assert.Equal(t, "2", company.Address.PostalBox)
	assert.Equal(t, "2000", company.Address.PostalCode)
	assert.Equal(t, "Antwerpen", company.Address.City)
	assert.Equal(t, []string{"10.711"}, company.NACEBELCodes)
}

func TestParseEntityPage_NotFound(t *testing.T) {
	_, err := ParseEntityPage(unknownEntityPageHTML)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  models.Address
	}{
		{
			name:  "street with box",
			lines: []string{"Avenue Louise 54 bte 12", "1050 Ixelles"},
			want:  models.Address{Street: "Avenue Louise", StreetNumber: "54", PostalBox: "12", PostalCode: "1050", City: "Ixelles"},
		},
		{
			name:  "street name containing a box word",
			lines: []string{"Rue du Bus 5", "4000 Liège"},
			want:  models.Address{Street: "Rue du Bus", StreetNumber: "5", PostalCode: "4000", City: "Liège"},
		},
		{
			name:  "validity note stripped",
			lines: []string{"Grote Markt 7", "8000 Brugge Sinds 1 april 2015"},
			want:  models.Address{Street: "Grote Markt", StreetNumber: "7", PostalCode: "8000", City: "Brugge"},
		},
		{
			name:  "street without number",
			lines: []string{"Zoning Industriel", "6041 Gosselies"},
			want:  models.Address{Street: "Zoning Industriel", PostalCode: "6041", City: "Gosselies"},
		},
		{
			name:  "empty",
			lines: nil,
			want:  models.Address{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAddress(tt.lines))
		})
	}
}

func TestEntityTablesHTML(t *testing.T) {
	block := EntityTablesHTML(entityPageHTML)
	assert.Contains(t, block, `id="table"`)
	assert.NotContains(t, block, "<title>")

	page := "<html><body><p>no block</p></body></html>"
	assert.Equal(t, page, EntityTablesHTML(page))
}
