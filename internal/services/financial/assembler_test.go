package financial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/vatscope/internal/models"
)

func TestAssemble_DirectGrossMargin(t *testing.T) {
	account := Assemble(models.CodeTable{"70": "1000000", "9900": "50000"})

	require.NotNil(t, account.GrossMargin)
	require.NotNil(t, account.PreviousYearRevenue)
	assert.Equal(t, 50000.0, *account.GrossMargin)
	assert.Equal(t, 1000000.0, *account.PreviousYearRevenue)
	assert.Nil(t, account.Employees)
	assert.Nil(t, account.TotalAssets)
	assert.Empty(t, account.ModelCode)
}

func TestAssemble_ComputedGrossMargin(t *testing.T) {
	account := Assemble(models.CodeTable{"74": "200000", "70": "100000", "60": "50000", "61": "10000"})

	require.NotNil(t, account.GrossMargin)
	assert.Equal(t, 240000.0, *account.GrossMargin)
}

func TestAssemble_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		table     models.CodeTable
		employees *float64
	}{
		{"primary employees code", models.CodeTable{"1003": "12,5", "9087": "3"}, ptr(12.5)},
		{"social balance employees", models.CodeTable{"9087": "3"}, ptr(3)},
		{"no employees", models.CodeTable{"70": "1"}, nil},
		{"unparseable primary", models.CodeTable{"1003": "n/a", "9087": "3"}, ptr(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.employees, Assemble(tt.table).Employees)
		})
	}
}

func TestAssemble_AbsentVersusZero(t *testing.T) {
	empty := Assemble(models.CodeTable{})
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.GrossMargin)

	zero := Assemble(models.CodeTable{"70": "0", "Model code": "m07-f"})
	require.NotNil(t, zero.PreviousYearRevenue)
	assert.Equal(t, 0.0, *zero.PreviousYearRevenue)
	require.NotNil(t, zero.GrossMargin)
	assert.Equal(t, 0.0, *zero.GrossMargin)
	assert.Equal(t, "m07-f", zero.ModelCode)
}

func TestAssemble_Idempotent(t *testing.T) {
	table := models.CodeTable{
		"Model code": "m02-f",
		"1003":       "4,3",
		"70":         "1.234.567,89",
		"10/49":      "403.394.333",
		"74":         "10",
		"60":         "5",
	}
	assert.Equal(t, Assemble(table), Assemble(table))
}

func TestUnparseableCodes(t *testing.T) {
	assert.Equal(t, []string{"1003", "10/49"}, UnparseableCodes(models.CodeTable{"1003": "x", "70": "1", "10/49": "-"}))
	assert.Empty(t, UnparseableCodes(models.CodeTable{"70": "1"}))
}

func ptr(v float64) *float64 {
	return &v
}
