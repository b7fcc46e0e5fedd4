package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"title\": \"Deck\"}\n```",
			expected: `{"title": "Deck"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"title\": \"Deck\"}\n```",
			expected: `{"title": "Deck"}`,
		},
		{
			name:     "generic block with language identifier",
			input:    "```javascript\n{\"title\": \"Deck\"}\n```",
			expected: `{"title": "Deck"}`,
		},
		{
			name:     "plain json untouched",
			input:    `{"title": "Deck"}`,
			expected: `{"title": "Deck"}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
