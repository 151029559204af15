package kdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSingleShortParagraph(t *testing.T) {
	lines := Format("/** Adds two numbers. */", 40)
	assert.Equal(t, []string{"Adds two numbers."}, lines)
}

func TestFormatSeparatesTagBlocksFromDescription(t *testing.T) {
	raw := "/**\n * Adds two numbers.\n *\n * @param a first number\n * @param b second number\n */"
	lines := Format(raw, 40)
	assert.Equal(t, []string{
		"Adds two numbers.",
		"",
		"@param a first number",
		"",
		"@param b second number",
	}, lines)
}

func TestFormatWrapsLongParagraphsAtMaxWidth(t *testing.T) {
	raw := "/** one two three four five six seven eight */"
	lines := Format(raw, 15)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 15)
	}
	assert.Greater(t, len(lines), 1)
}

func TestFormatKeepsBulletListAsHangingIndent(t *testing.T) {
	raw := "/**\n * - first item\n * - second item\n */"
	lines := Format(raw, 40)
	assert.Equal(t, []string{"- first item", "", "- second item"}, lines)
}
