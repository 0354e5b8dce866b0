package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywordsServingSize(t *testing.T) {
	tests := []struct {
		transcript string
		want       int
	}{
		{"make it for 6 people please", 6},
		{"I need 2 servings", 2},
		{"this serves 8", 8},
		{"for 100 people", 0}, // 超出合理範圍
		{"no serving mentioned", 0},
	}

	for _, tt := range tests {
		_, servingSize, _ := ExtractKeywords(tt.transcript)
		assert.Equal(t, tt.want, servingSize, "transcript: %s", tt.transcript)
	}
}

func TestExtractKeywordsSpiceLevel(t *testing.T) {
	tests := []struct {
		transcript string
		want       string
	}{
		{"make it not spicy please", "Mild"},
		{"something extra hot for me", "Extra Hot"},
		{"I like it spicy", "Hot"},
		{"normal spice is fine", "Medium"},
		{"no mention of heat", ""},
	}

	for _, tt := range tests {
		_, _, spiceLevel := ExtractKeywords(tt.transcript)
		assert.Equal(t, tt.want, spiceLevel, "transcript: %s", tt.transcript)
	}
}

func TestExtractKeywordsPreferences(t *testing.T) {
	keywords, servingSize, spiceLevel := ExtractKeywords(
		"A mild vegetarian dish for 4 people, steamed if possible")

	assert.Equal(t, 4, servingSize)
	assert.Equal(t, "Mild", spiceLevel)
	assert.Contains(t, keywords, "vegetarian")
	assert.Contains(t, keywords, "mild_spice")
	assert.Contains(t, keywords, "steamed")
}

func TestExtractKeywordsEmptyTranscript(t *testing.T) {
	keywords, servingSize, spiceLevel := ExtractKeywords("")

	assert.Empty(t, keywords)
	assert.Zero(t, servingSize)
	assert.Empty(t, spiceLevel)
}
