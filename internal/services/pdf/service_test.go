package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	service := NewService(arbor.NewLogger())

	tests := []struct {
		name     string
		markdown string
		title    string
	}{
		{
			name:     "Basic report",
			markdown: "# Société Exemple SA\n\nTVA `0403.394.333`\n\n- Siège social\n- Unité d'établissement",
			title:    "0403.394.333",
		},
		{
			name:     "Empty markdown",
			markdown: "",
			title:    "Empty",
		},
		{
			name:     "Bold and italic",
			markdown: "Normal **Bold** *Italic* ***BoldItalic***\n\n---\n\nAfter the rule.",
			title:    "Styling",
		},
		{
			name: "Financial table",
			markdown: `## Données financières

| Champ | Valeur |
|-------|--------|
| Taille | micro |
| Marge brute | 240000 |
`,
			title: "Table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfBytes, err := service.ConvertMarkdownToPDF(tt.markdown, tt.title)
			require.NoError(t, err)
			require.NotEmpty(t, pdfBytes)
			assert.Equal(t, "%PDF", string(pdfBytes[:4]))
		})
	}
}

func TestConvertMarkdownToPDF_LongTable(t *testing.T) {
	service := NewService(arbor.NewLogger())

	markdown := "| Statut | Numéro | Début | Dénomination | Adresse |\n|---|---|---|---|---|\n"
	for i := 0; i < 120; i++ {
		markdown += "| Actif | 2.123.456.789 | 1 janvier 2001 | Magasin de la chaussée | Chaussée de Louvain 123, 1000 Bruxelles |\n"
	}

	pdfBytes, err := service.ConvertMarkdownToPDF(markdown, "Establishments")
	require.NoError(t, err)
	assert.Greater(t, len(pdfBytes), 1000)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
