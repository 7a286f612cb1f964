package webserver

import (
	"strings"
	"testing"

	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/stretchr/testify/assert"
)

func TestCleanMessage(t *testing.T) {
	h := NewPublicChat(nil, nil, nil)

	out, err := h.cleanMessage("  hello there  ")
	assert.NoError(t, err)
	assert.Equal(t, "hello there", out)

	// Markup is stripped, text content survives.
	out, err = h.cleanMessage(`<script>alert(1)</script>where is my order?`)
	assert.NoError(t, err)
	assert.Equal(t, "where is my order?", out)
}

func TestCleanMessageEmpty(t *testing.T) {
	h := NewPublicChat(nil, nil, nil)

	_, err := h.cleanMessage("   ")
	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, "EMPTY_MESSAGE", e.Code)

	// Markup-only input sanitizes down to nothing.
	_, err = h.cleanMessage("<b></b>")
	e, ok = apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, "EMPTY_MESSAGE", e.Code)
}

func TestCleanMessageTooLong(t *testing.T) {
	h := NewPublicChat(nil, nil, nil)

	_, err := h.cleanMessage(strings.Repeat("a", maxMessageLen+1))
	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, "MESSAGE_TOO_LONG", e.Code)
}
