package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request GenerationRequest
		wantErr bool
	}{
		{
			name:    "minimal valid request",
			request: GenerationRequest{Topic: "The history of aviation"},
			wantErr: false,
		},
		{
			name: "full valid request",
			request: GenerationRequest{
				Topic:            "Quarterly results",
				StrategyID:       "business",
				Purpose:          "board meeting",
				Theme:            "dark",
				SlideCount:       10,
				IncludeImages:    true,
				ImageConsistency: ConsistencyStrict,
			},
			wantErr: false,
		},
		{
			name:    "missing topic",
			request: GenerationRequest{},
			wantErr: true,
		},
		{
			name:    "topic too short",
			request: GenerationRequest{Topic: "x"},
			wantErr: true,
		},
		{
			name:    "slide count out of range",
			request: GenerationRequest{Topic: "valid topic", SlideCount: 100},
			wantErr: true,
		},
		{
			name:    "invalid consistency level",
			request: GenerationRequest{Topic: "valid topic", ImageConsistency: "extreme"},
			wantErr: true,
		},
		{
			name:    "purpose too long",
			request: GenerationRequest{Topic: "valid topic", Purpose: strings.Repeat("a", 501)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"business", CategoryBusiness, true},
		{"Business", CategoryBusiness, true},
		{"  TECHNICAL  ", CategoryTechnical, true},
		{"narrative", CategoryNarrative, true},
		{"poetry", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
