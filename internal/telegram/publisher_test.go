package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	assert.Equal(t, `score \[2-0\]`, sanitizeMarkdown("score [2-0]"))
	assert.Equal(t, `*VIP* du jour`, sanitizeMarkdown("*VIP* du jour"), "os asteriscos de negrito passam intactos")
	assert.Equal(t, `nom\_d\_equipe`, sanitizeMarkdown("nom_d_equipe"))
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `Over 2\.5 \(cote 1\.9\)`, escapeMarkdownV2("Over 2.5 (cote 1.9)"))
	assert.Equal(t, `\*gras\*`, escapeMarkdownV2("*gras*"))
}

func TestStripMarkdown(t *testing.T) {
	assert.Equal(t, "VIP du jour", stripMarkdown("*VIP* du _jour_"))
	assert.Equal(t, "code", stripMarkdown("`code`"))
	assert.Equal(t, "lien", stripMarkdown("[lien](https://example.com)"))
}
