package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSONObject(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, ExtractJSONObject("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, ExtractJSONObject("Sure! Here is your recipe: {\"a\":1} enjoy"))
	assert.Equal(t, "", ExtractJSONObject("no json here"))
	assert.Equal(t, "", ExtractJSONObject("}{"))
}

func TestQuoteJSONKeys(t *testing.T) {
	assert.Equal(t, `{"name": "x", "servings": 4}`, QuoteJSONKeys(`{name: "x", servings: 4}`))
	// 已加引號的鍵不受影響
	assert.Equal(t, `{"name": "x"}`, QuoteJSONKeys(`{"name": "x"}`))
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	assert.Error(t, ParseJSON(`{"a":1}{"b":2}`, &v))
	assert.NoError(t, ParseJSON(`{"a":1}`, &v))
}

func TestParseJSONStrict(t *testing.T) {
	type target struct {
		Name string `json:"name"`
	}
	var v target
	assert.Error(t, ParseJSONStrict(`{"name":"x","extra":1}`, &v))
	assert.NoError(t, ParseJSON(`{"name":"x","extra":1}`, &v))
}
