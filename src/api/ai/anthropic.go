package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/siiddhantt/ai-chat-assistant/src/api/tools"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
)

const (
	anthropicURL     = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
)

type anthropicProvider struct {
	apiKey     string
	model      string
	url        string
	registry   *tools.Registry
	httpClient *http.Client
}

func newAnthropicProvider(cfg FactoryConfig) *anthropicProvider {
	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &anthropicProvider{
		apiKey:     cfg.APIKey,
		model:      model,
		url:        anthropicURL,
		registry:   cfg.Registry,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *anthropicProvider) GenerateReply(ctx context.Context, history []types.Message, userMessage string, opts Options) (*Response, error) {
	messages := []map[string]interface{}{
		{"role": "user", "content": p.userContent(history, userMessage)},
	}
	return p.request(ctx, messages, opts)
}

func (p *anthropicProvider) ContinueWithToolResults(ctx context.Context, history []types.Message, userMessage string, prev *Response, results []tools.Result, opts Options) (*Response, error) {
	// Assistant turn replays the tool-use blocks; the follow-up user turn
	// carries one tool_result block per call id.
	assistantBlocks := make([]map[string]interface{}, 0, len(prev.ToolCalls)+1)
	if prev.Text != "" {
		assistantBlocks = append(assistantBlocks, map[string]interface{}{
			"type": "text",
			"text": prev.Text,
		})
	}
	for _, tc := range prev.ToolCalls {
		assistantBlocks = append(assistantBlocks, map[string]interface{}{
			"type":  "tool_use",
			"id":    tc.ID,
			"name":  tc.Name,
			"input": tc.Arguments,
		})
	}

	resultBlocks := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		content, err := json.Marshal(res)
		if err != nil {
			content = []byte(`{"success":false,"error":"unserializable tool result"}`)
		}
		resultBlocks = append(resultBlocks, map[string]interface{}{
			"type":        "tool_result",
			"tool_use_id": res.ToolCallID,
			"content":     string(content),
		})
	}

	messages := []map[string]interface{}{
		{"role": "user", "content": p.userContent(history, userMessage)},
		{"role": "assistant", "content": assistantBlocks},
		{"role": "user", "content": resultBlocks},
	}
	return p.request(ctx, messages, opts)
}

// userContent folds the transcript into the user turn; the Anthropic API
// keeps the system prompt out of the messages array.
func (p *anthropicProvider) userContent(history []types.Message, userMessage string) string {
	if ctxText := buildConversationContext(history); ctxText != "" {
		return "Previous conversation:\n" + ctxText + "\n\nCurrent message: " + userMessage
	}
	return userMessage
}

func (p *anthropicProvider) request(ctx context.Context, messages []map[string]interface{}, opts Options) (*Response, error) {
	opts = opts.withDefaults()
	payload := map[string]interface{}{
		"model":       p.model,
		"max_tokens":  opts.MaxTokens,
		"temperature": opts.Temperature,
		"system":      buildSystemPrompt(p.registry),
		"messages":    messages,
	}
	if p.registry != nil && len(p.registry.All()) > 0 {
		payload["tools"] = p.registry.AnthropicTools()
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, connectionError("Anthropic")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError("Anthropic")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, providerHTTPError("Anthropic", resp.StatusCode, body)
	}

	var result struct {
		Content []struct {
			Type  string                 `json:"type"`
			Text  string                 `json:"text"`
			ID    string                 `json:"id"`
			Name  string                 `json:"name"`
			Input map[string]interface{} `json:"input"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, providerHTTPError("Anthropic", resp.StatusCode, body)
	}

	out := &Response{}
	for _, block := range result.Content {
		switch block.Type {
		case "text":
			if out.Text == "" {
				out.Text = block.Text
			}
		case "tool_use":
			input := block.Input
			if input == nil {
				input = map[string]interface{}{}
			}
			out.ToolCalls = append(out.ToolCalls, tools.Call{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: input,
			})
		}
	}
	if out.Text == "" && len(out.ToolCalls) == 0 {
		return nil, emptyResponseError("Anthropic")
	}
	return out, nil
}
