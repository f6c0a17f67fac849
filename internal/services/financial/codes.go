package financial

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/vatscope/internal/models"
)

// codesKeyword marks the header cell of the code column in deposit tables
const codesKeyword = "codes"

// ParseCSVCodes reads a deposit CSV where each row is [code, value, ...].
// Rows with fewer than two columns are skipped and later rows win on duplicate codes.
func ParseCSVCodes(text string) (models.CodeTable, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	table := models.CodeTable{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table, fmt.Errorf("failed to read deposit CSV: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		table[record[0]] = record[1]
	}
	return table, nil
}

// FindCodesAnchor returns the position of the first cell, in row-major order,
// whose lower-cased text contains "codes".
func FindCodesAnchor(grid [][]string) (row, col int, found bool) {
	for r, cells := range grid {
		for c, cell := range cells {
			if strings.Contains(strings.ToLower(cell), codesKeyword) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// ExtractCodeValuePairs reads every row below the anchor: the code sits in the
// anchor column, the value in the next column or, when that one is blank, the
// column after it.
func ExtractCodeValuePairs(grid [][]string, anchorRow, anchorCol int) models.CodeTable {
	table := models.CodeTable{}
	for r := anchorRow + 1; r < len(grid); r++ {
		cells := grid[r]
		code := cellAt(cells, anchorCol)
		value := cellAt(cells, anchorCol+1)
		if value == "" {
			value = cellAt(cells, anchorCol+2)
		}
		if code != "" && value != "" {
			table[code] = value
		}
	}
	return table
}

// CodesFromGrid locates the anchor in grid and extracts its code/value pairs.
// A grid without anchor yields an empty table.
func CodesFromGrid(grid [][]string) models.CodeTable {
	row, col, found := FindCodesAnchor(grid)
	if !found {
		return models.CodeTable{}
	}
	return ExtractCodeValuePairs(grid, row, col)
}

func cellAt(cells []string, col int) string {
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}
