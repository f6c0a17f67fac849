package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// word lays out s one glyph per rune, 5 points wide at font size 10
func word(x, y float64, s string) []glyph {
	var glyphs []glyph
	for _, r := range s {
		glyphs = append(glyphs, glyph{X: x, Y: y, W: 5, FontSize: 10, S: string(r)})
		x += 5
	}
	return glyphs
}

func page(words ...[]glyph) []glyph {
	var all []glyph
	for _, w := range words {
		all = append(all, w...)
	}
	return all
}

func TestDetectTables(t *testing.T) {
	glyphs := page(
		word(50, 700, "Rubriques"), word(300, 700, "Codes"), word(400, 700, "Exercice"),
		word(50, 686.4, "Chiffre d'affaires"), word(305, 686, "70"), word(400, 686, "1.234.567"),
		word(50, 672, "Total de l'actif"), word(300, 672, "10/49"), word(470, 672, "500"),
		word(100, 400, "Codes"), word(200, 400, "Montant"),
		word(100, 386, "9087"), word(200, 386, "4,5"),
	)

	grids := detectTables(glyphs)
	require.Len(t, grids, 2)

	assert.Equal(t, [][]string{
		{"Rubriques", "Codes", "Exercice", ""},
		{"Chiffre d'affaires", "70", "1.234.567", ""},
		{"Total de l'actif", "10/49", "", "500"},
	}, grids[0])

	assert.Equal(t, [][]string{
		{"Codes", "Montant"},
		{"9087", "4,5"},
	}, grids[1])
}

func TestSplitChunks(t *testing.T) {
	glyphs := page(word(10, 100, "Frais"), []glyph{{X: 35, Y: 100, W: 5, FontSize: 10, S: " "}}, word(40, 100, "divers"), word(200, 100, "61"))

	chunks := splitChunks(glyphs)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Frais divers", chunks[0].text)
	assert.Equal(t, 10.0, chunks[0].x0)
	assert.Equal(t, 70.0, chunks[0].x1)
	assert.Equal(t, "61", chunks[1].text)
}

func TestGroupLines_IgnoresBlankLines(t *testing.T) {
	glyphs := page(word(10, 100, "   "), word(10, 80, "Codes"))
	lines := groupLines(glyphs)
	require.Len(t, lines, 1)
	assert.Equal(t, "Codes\n", linesText(lines))
}

func TestColumnFor_NearestWhenNoOverlap(t *testing.T) {
	columns := []interval{{0, 50}, {100, 150}}
	assert.Equal(t, 0, columnFor(chunk{x0: 55, x1: 60}, columns))
	assert.Equal(t, 1, columnFor(chunk{x0: 90, x1: 95}, columns))
	assert.Equal(t, 1, columnFor(chunk{x0: 120, x1: 130}, columns))
}

func TestDetectTables_Empty(t *testing.T) {
	assert.Nil(t, detectTables(nil))
}
