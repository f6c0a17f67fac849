package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestHTMLToMarkdown(t *testing.T) {
	service := NewService(arbor.NewLogger())

	markdown, err := service.HTMLToMarkdown(`<h2>Généralités</h2><p>Numéro&nbsp;d'entreprise: <strong>0403.394.333</strong></p>`, "https://kbopub.economie.fgov.be")
	require.NoError(t, err)
	assert.Contains(t, markdown, "## Généralités")
	assert.Contains(t, markdown, "**0403.394.333**")
	assert.NotContains(t, markdown, "\u00a0")

	markdown, err = service.HTMLToMarkdown("   ", "")
	require.NoError(t, err)
	assert.Empty(t, markdown)
}

func TestPlainText(t *testing.T) {
	text, err := plainText("<div><script>var x;</script><p>Rue   de la Loi</p>\n<p>16</p></div>")
	require.NoError(t, err)
	assert.Equal(t, "Rue de la Loi 16", text)
}
