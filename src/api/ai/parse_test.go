package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStructuredResponseCleanJSON(t *testing.T) {
	out := ParseStructuredResponse(`{"answer":"Hi there","proposed_actions":["Track my order"]}`)
	assert.Equal(t, "Hi there", out.Answer)
	assert.Equal(t, []string{"Track my order"}, out.ProposedActions)
}

func TestParseStructuredResponseSurroundingText(t *testing.T) {
	raw := "Sure! Here is the reply:\n```json\n{\"answer\":\"Done\",\"proposed_actions\":[]}\n```"
	out := ParseStructuredResponse(raw)
	assert.Equal(t, "Done", out.Answer)
	assert.Empty(t, out.ProposedActions)
}

func TestParseStructuredResponsePlainText(t *testing.T) {
	out := ParseStructuredResponse("Your order ships in 5-7 business days.")
	assert.Equal(t, "Your order ships in 5-7 business days.", out.Answer)
	assert.NotNil(t, out.ProposedActions)
	assert.Empty(t, out.ProposedActions)
}

func TestParseStructuredResponseMalformedJSON(t *testing.T) {
	raw := `{"answer": "broken`
	out := ParseStructuredResponse(raw)
	assert.Equal(t, raw, out.Answer)
	assert.Empty(t, out.ProposedActions)
}

func TestParseStructuredResponseMissingAnswer(t *testing.T) {
	raw := `{"proposed_actions":["a"]}`
	out := ParseStructuredResponse(raw)
	assert.Equal(t, raw, out.Answer)
	assert.Empty(t, out.ProposedActions)
}

func TestParseStructuredResponseTruncatesActions(t *testing.T) {
	out := ParseStructuredResponse(`{"answer":"ok","proposed_actions":["a","b","c","d","e"]}`)
	assert.Equal(t, []string{"a", "b", "c"}, out.ProposedActions)
}

func TestFirstJSONObjectNestedAndStrings(t *testing.T) {
	raw, ok := firstJSONObject(`noise {"a":{"b":"}"},"c":"\"{"} tail {"second":1}`)
	assert.True(t, ok)
	assert.Equal(t, `{"a":{"b":"}"},"c":"\"{"}`, raw)

	_, ok = firstJSONObject("no braces at all")
	assert.False(t, ok)

	_, ok = firstJSONObject(`{"never":"closed"`)
	assert.False(t, ok)
}
