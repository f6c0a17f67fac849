package kbo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/vatscope/internal/models"
)

func TestParseEstablishmentUnits(t *testing.T) {
	units, err := ParseEstablishmentUnits(establishmentPageHTML)
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, models.EstablishmentUnit{
		Status:              "Actif",
		EstablishmentNumber: "2123456789",
		StartDate:           "1 janvier 2000",
		Denomination:        "ACME Bruxelles",
		Address:             "Rue de la Loi 16 1000 Bruxelles",
	}, units[0])
	assert.Equal(t, "Arrêté", units[1].Status)
	assert.Equal(t, "2234567890", units[1].EstablishmentNumber)
	assert.Equal(t, "Veldstraat 3 9000 Gent", units[1].Address)
}

func TestParseEstablishmentUnits_NoTable(t *testing.T) {
	_, err := ParseEstablishmentUnits("<html><body><p>Geen vestigingen</p></body></html>")
	assert.ErrorIs(t, err, ErrNoEstablishmentTable)
}

func TestParseEstablishmentUnits_EmptyBody(t *testing.T) {
	units, err := ParseEstablishmentUnits(`<table id="vestiginglist"><tbody></tbody></table>`)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestCleanAddress(t *testing.T) {
	assert.Equal(t, "Rue Haute 2 1000 Bruxelles", CleanAddress("Rue Haute 2 1000 Bruxelles Depuis le 4 mai 2001"))
	assert.Equal(t, "Markt 1 9000 Gent", CleanAddress("Markt 1 9000 Gent Sinds 2 juli 1999"))
	assert.Equal(t, "Hauptstraße 5 4700 Eupen", CleanAddress("  Hauptstraße 5 4700 Eupen  "))
}
