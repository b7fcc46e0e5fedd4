package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_NormalizesLineEndings(t *testing.T) {
	result := CleanText("line one\r\nline two\rline three")
	assert.Equal(t, "line one\nline two\nline three", result)
}

func TestCleanText_CollapsesBlankLines(t *testing.T) {
	result := CleanText("a\n\n\n\n\nb")
	assert.Equal(t, "a\n\nb", result)
}

func TestCleanText_PreservesHeadingsAndBullets(t *testing.T) {
	input := "  ## Heading\n  - bullet one\n- bullet two"
	result := CleanText(input)

	assert.Contains(t, result, "## Heading")
	assert.Contains(t, result, "  - bullet one")
	assert.Contains(t, result, "- bullet two")
}

func TestCleanText_NormalizesInternalSpaces(t *testing.T) {
	result := CleanText("too   many    spaces")
	assert.Equal(t, "too many spaces", result)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n \t "))
}

func TestTruncate(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("line of topic text\n", 1000)
	result := Truncate(long)
	assert.LessOrEqual(t, len(result), MaxTopicChars)
	assert.True(t, strings.HasSuffix(result, "line of topic text"), "cut on a line boundary")
}

func TestIngestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topic.txt")
	require.NoError(t, os.WriteFile(path, []byte("The history of  cartography\r\n\n\n\nMaps through the ages"), 0o644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "The history of cartography\n\nMaps through the ages", text)
	require.NotNil(t, meta)
	assert.Equal(t, len(text), meta.CharCount)
	assert.NotEmpty(t, meta.Hash)
}

func TestIngestFromFile_NotFound(t *testing.T) {
	_, _, err := IngestFromFile("/nonexistent/topic.txt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := NewMetadata("content", "https://example.com")
	data, err := meta.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://example.com")
	assert.Contains(t, string(data), meta.Hash)
}
