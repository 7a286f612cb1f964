package ai

import (
	"fmt"
	"strings"
	"testing"

	"github.com/siiddhantt/ai-chat-assistant/src/api/tools"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPromptIncludesTools(t *testing.T) {
	r := tools.NewRegistry()
	r.Register(tools.NewScheduleAppointment())

	prompt := buildSystemPrompt(r)
	assert.Contains(t, prompt, "TechHub Store")
	assert.Contains(t, prompt, "Response Format:")
	assert.Contains(t, prompt, "Available Tools:")
	assert.Contains(t, prompt, "- schedule_appointment:")
	assert.Contains(t, prompt, "customerEmail")
}

func TestBuildSystemPromptWithoutTools(t *testing.T) {
	prompt := buildSystemPrompt(tools.NewRegistry())
	assert.NotContains(t, prompt, "Available Tools:")

	prompt = buildSystemPrompt(nil)
	assert.NotContains(t, prompt, "Available Tools:")
}

func TestBuildConversationContext(t *testing.T) {
	history := []types.Message{
		{Sender: types.SenderUser, Text: "hello"},
		{Sender: types.SenderAI, Text: "hi, how can I help?"},
	}
	ctx := buildConversationContext(history)
	assert.Equal(t, "Customer: hello\nAgent: hi, how can I help?", ctx)
}

func TestBuildConversationContextBoundsHistory(t *testing.T) {
	var history []types.Message
	for i := 0; i < 25; i++ {
		history = append(history, types.Message{
			Sender: types.SenderUser,
			Text:   fmt.Sprintf("msg %d", i),
		})
	}
	ctx := buildConversationContext(history)
	lines := strings.Split(ctx, "\n")
	assert.Len(t, lines, contextTurns)
	assert.Equal(t, "Customer: msg 15", lines[0])
	assert.Equal(t, "Customer: msg 24", lines[len(lines)-1])
}
