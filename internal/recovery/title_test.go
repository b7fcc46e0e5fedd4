package recovery

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle_QuotedField(t *testing.T) {
	title, err := ExtractTitle(`{"title": "Quarterly Review", "slides": [`)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly Review", title)
}

func TestExtractTitle_BareLabel(t *testing.T) {
	title, err := ExtractTitle(`not json at all but title: "My Deck" appears here`)
	require.NoError(t, err)
	assert.Equal(t, "My Deck", title)
}

func TestExtractTitle_MarkdownHeading(t *testing.T) {
	title, err := ExtractTitle("some preamble\n## Deep Sea Exploration\nmore text")
	require.NoError(t, err)
	assert.Equal(t, "Deep Sea Exploration", title)
}

func TestExtractTitle_FirstLineFallback(t *testing.T) {
	title, err := ExtractTitle("\n\nAn Introduction to Beekeeping\nand other things")
	require.NoError(t, err)
	assert.Equal(t, "An Introduction to Beekeeping", title)
}

func TestExtractTitle_EmptyInput(t *testing.T) {
	_, err := ExtractTitle("")
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = ExtractTitle("   \n\t  ")
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestExtractTitle_LongLineTruncated(t *testing.T) {
	title, err := ExtractTitle(strings.Repeat("word ", 100))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(title), maxTitleLength)
	assert.NotEmpty(t, title)
}

func TestExtractTitle_MultibyteLineTruncatedOnRuneBoundary(t *testing.T) {
	title, err := ExtractTitle(strings.Repeat("日本語のタイトル", 20))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(title), maxTitleLength)
	assert.True(t, utf8.ValidString(title))
}

func TestExtractTitle_ProbeOrder(t *testing.T) {
	// the quoted JSON field wins over the heading further down
	input := "# Wrong Title\n" + `{"title": "Right Title"}`
	title, err := ExtractTitle(input)
	require.NoError(t, err)
	assert.Equal(t, "Right Title", title)
}
