package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/siiddhantt/ai-chat-assistant/src/api/tools"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"github.com/stretchr/testify/assert"
)

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *anthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	registry := tools.NewRegistry()
	registry.Register(tools.NewScheduleAppointment())
	p := newAnthropicProvider(FactoryConfig{Provider: "anthropic", APIKey: "test-key", Registry: registry})
	p.url = srv.URL
	return p
}

func TestAnthropicRequestShape(t *testing.T) {
	var captured map[string]interface{}
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"content":[{"type":"text","text":"hello"}]}`))
	})

	history := []types.Message{
		{Sender: types.SenderUser, Text: "earlier"},
		{Sender: types.SenderAI, Text: "noted"},
	}
	resp, err := p.GenerateReply(context.Background(), history, "hi", Options{})
	assert.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)

	assert.Equal(t, "claude-3-5-sonnet-20241022", captured["model"])
	assert.NotEmpty(t, captured["system"])

	messages := captured["messages"].([]interface{})
	assert.Len(t, messages, 1)
	user := messages[0].(map[string]interface{})
	content := user["content"].(string)
	assert.Contains(t, content, "Previous conversation:")
	assert.Contains(t, content, "Agent: noted")
	assert.Contains(t, content, "Current message: hi")

	toolsField := captured["tools"].([]interface{})
	assert.Len(t, toolsField, 1)
}

func TestAnthropicParsesToolUse(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[
			{"type":"text","text":"booking now"},
			{"type":"tool_use","id":"toolu_1","name":"schedule_appointment","input":{"customerName":"Jane"}},
			{"type":"tool_use","id":"toolu_2","name":"schedule_appointment","input":null}
		]}`))
	})

	resp, err := p.GenerateReply(context.Background(), nil, "book", Options{})
	assert.NoError(t, err)
	assert.Equal(t, "booking now", resp.Text)
	assert.Len(t, resp.ToolCalls, 2)
	assert.Equal(t, "toolu_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "Jane", resp.ToolCalls[0].Arguments["customerName"])
	// Null input still yields a usable empty argument map.
	assert.NotNil(t, resp.ToolCalls[1].Arguments)
}

func TestAnthropicContinuationMessages(t *testing.T) {
	var captured map[string]interface{}
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"content":[{"type":"text","text":"done"}]}`))
	})

	prev := &Response{
		Text: "let me book that",
		ToolCalls: []tools.Call{
			{ID: "toolu_1", Name: "schedule_appointment", Arguments: map[string]interface{}{"a": "b"}},
		},
	}
	results := []tools.Result{{ToolCallID: "toolu_1", Success: true, Result: "booked"}}

	resp, err := p.ContinueWithToolResults(context.Background(), nil, "book", prev, results, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "done", resp.Text)

	messages := captured["messages"].([]interface{})
	assert.Len(t, messages, 3)

	assistant := messages[1].(map[string]interface{})
	assert.Equal(t, "assistant", assistant["role"])
	blocks := assistant["content"].([]interface{})
	assert.Len(t, blocks, 2)
	assert.Equal(t, "text", blocks[0].(map[string]interface{})["type"])
	use := blocks[1].(map[string]interface{})
	assert.Equal(t, "tool_use", use["type"])
	assert.Equal(t, "toolu_1", use["id"])

	followup := messages[2].(map[string]interface{})
	assert.Equal(t, "user", followup["role"])
	resBlocks := followup["content"].([]interface{})
	resBlock := resBlocks[0].(map[string]interface{})
	assert.Equal(t, "tool_result", resBlock["type"])
	assert.Equal(t, "toolu_1", resBlock["tool_use_id"])
}

func TestAnthropicErrorMapping(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	})
	_, err := p.GenerateReply(context.Background(), nil, "hi", Options{})
	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_API_KEY", e.Code)
	assert.Equal(t, "Invalid Anthropic API key", e.Message)
}

func TestAnthropicEmptyContent(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	})
	_, err := p.GenerateReply(context.Background(), nil, "hi", Options{})
	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, "EMPTY_RESPONSE", e.Code)
}

func TestNewProviderSelection(t *testing.T) {
	anthropic := NewProvider(FactoryConfig{Provider: "anthropic"})
	_, ok := anthropic.(*anthropicProvider)
	assert.True(t, ok)

	openai := NewProvider(FactoryConfig{Provider: "openai"})
	_, ok = openai.(*openAIProvider)
	assert.True(t, ok)

	fallback := NewProvider(FactoryConfig{Provider: ""})
	_, ok = fallback.(*openAIProvider)
	assert.True(t, ok)
}
