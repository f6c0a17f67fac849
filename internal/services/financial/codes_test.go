package financial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/vatscope/internal/models"
)

func TestParseCSVCodes(t *testing.T) {
	text := "Model code,m02-f\n70,\"1.000.000\",extra\nlonely\n70,2000000\n10/49,\"450.000,00\"\n"

	table, err := ParseCSVCodes(text)
	require.NoError(t, err)
	assert.Equal(t, models.CodeTable{
		"Model code": "m02-f",
		"70":         "2000000",
		"10/49":      "450.000,00",
	}, table)
}

func TestFindCodesAnchor(t *testing.T) {
	grid := [][]string{
		{"Actif", "", ""},
		{"", "Exercice", "Codes"},
		{"", "codes again", ""},
	}
	row, col, found := FindCodesAnchor(grid)
	require.True(t, found)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	_, _, found = FindCodesAnchor([][]string{{"no", "anchor"}})
	assert.False(t, found)
}

func TestExtractCodeValuePairs(t *testing.T) {
	t.Run("value in next column", func(t *testing.T) {
		grid := [][]string{
			{"", "codes", "header"},
			{"1", "70", "100000"},
		}
		row, col, found := FindCodesAnchor(grid)
		require.True(t, found)
		assert.Equal(t, models.CodeTable{"70": "100000"}, ExtractCodeValuePairs(grid, row, col))
	})

	t.Run("falls back two columns when next is blank", func(t *testing.T) {
		grid := [][]string{
			{"", "codes", "header", ""},
			{"1", "70", "  ", "100000"},
		}
		assert.Equal(t, models.CodeTable{"70": "100000"}, CodesFromGrid(grid))
	})

	t.Run("skips short and incomplete rows", func(t *testing.T) {
		grid := [][]string{
			{"Codes", "Exercice"},
			{"10/49"},
			{"", "5"},
			{" 9087 ", " 4,2 "},
			{"60", ""},
		}
		assert.Equal(t, models.CodeTable{"9087": "4,2"}, CodesFromGrid(grid))
	})

	t.Run("rows above the anchor are ignored", func(t *testing.T) {
		grid := [][]string{
			{"70", "999"},
			{"Codes", "Exercice"},
			{"70", "1"},
		}
		assert.Equal(t, models.CodeTable{"70": "1"}, CodesFromGrid(grid))
	})

	t.Run("no anchor", func(t *testing.T) {
		assert.Empty(t, CodesFromGrid([][]string{{"70", "1"}}))
	})
}
