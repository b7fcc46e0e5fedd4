package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExistingPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(FileClassification, "classify-topic")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Topic}}")
	assert.Contains(t, prompt, "narrative")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get(FileClassification, "does-not-exist")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "key")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet(FileStrategies, "no-such-prompt")
	})
}

func TestFormat(t *testing.T) {
	template := "Topic: {{.Topic}}, slides: {{.SlideCount}}"
	result := Format(template, map[string]string{
		"Topic":      "Go concurrency",
		"SlideCount": "8",
	})
	assert.Equal(t, "Topic: Go concurrency, slides: 8", result)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestStrategyPromptsComplete(t *testing.T) {
	// Every strategy needs a generation and an image template.
	for _, id := range []string{"standard", "business", "academic", "technical", "creative", "storytelling"} {
		assert.True(t, Has(FileStrategies, "generation-"+id), "missing generation prompt for %s", id)
		assert.True(t, Has(FileStrategies, "image-"+id), "missing image prompt for %s", id)
	}
	assert.True(t, Has(FileStrategies, "document-format"))
}

func TestEnhancementPromptsCoverConsistencyLevels(t *testing.T) {
	for _, level := range []string{"loose", "medium", "strict"} {
		_, err := Get(FileEnhancement, "consistency-"+level)
		require.NoError(t, err)
	}
}

func TestList(t *testing.T) {
	keys, err := List(FileStrategies)
	require.NoError(t, err)
	assert.True(t, len(keys) >= 13)

	found := false
	for _, k := range keys {
		if strings.HasPrefix(k, "generation-") {
			found = true
			break
		}
	}
	assert.True(t, found)
}
