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

const openAIURL = "https://api.openai.com/v1/chat/completions"

type openAIProvider struct {
	apiKey     string
	model      string
	url        string
	registry   *tools.Registry
	httpClient *http.Client
}

func newOpenAIProvider(cfg FactoryConfig) *openAIProvider {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &openAIProvider{
		apiKey:     cfg.APIKey,
		model:      model,
		url:        openAIURL,
		registry:   cfg.Registry,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) GenerateReply(ctx context.Context, history []types.Message, userMessage string, opts Options) (*Response, error) {
	return p.request(ctx, p.baseMessages(history, userMessage), opts)
}

func (p *openAIProvider) ContinueWithToolResults(ctx context.Context, history []types.Message, userMessage string, prev *Response, results []tools.Result, opts Options) (*Response, error) {
	messages := p.baseMessages(history, userMessage)

	// Replay the assistant's tool-call intent, then one tool message per
	// result keyed by the originating call id.
	calls := make([]map[string]interface{}, 0, len(prev.ToolCalls))
	for _, tc := range prev.ToolCalls {
		args, err := json.Marshal(tc.Arguments)
		if err != nil {
			args = []byte("{}")
		}
		calls = append(calls, map[string]interface{}{
			"id":   tc.ID,
			"type": "function",
			"function": map[string]interface{}{
				"name":      tc.Name,
				"arguments": string(args),
			},
		})
	}
	assistant := map[string]interface{}{
		"role":       "assistant",
		"tool_calls": calls,
	}
	if prev.Text != "" {
		assistant["content"] = prev.Text
	}
	messages = append(messages, assistant)

	for _, res := range results {
		content, err := json.Marshal(res)
		if err != nil {
			content = []byte(`{"success":false,"error":"unserializable tool result"}`)
		}
		messages = append(messages, map[string]interface{}{
			"role":         "tool",
			"tool_call_id": res.ToolCallID,
			"content":      string(content),
		})
	}

	return p.request(ctx, messages, opts)
}

func (p *openAIProvider) baseMessages(history []types.Message, userMessage string) []map[string]interface{} {
	messages := []map[string]interface{}{
		{"role": "system", "content": buildSystemPrompt(p.registry)},
	}
	if ctxText := buildConversationContext(history); ctxText != "" {
		messages = append(messages, map[string]interface{}{
			"role":    "system",
			"content": "Previous conversation:\n" + ctxText,
		})
	}
	return append(messages, map[string]interface{}{"role": "user", "content": userMessage})
}

func (p *openAIProvider) request(ctx context.Context, messages []map[string]interface{}, opts Options) (*Response, error) {
	opts = opts.withDefaults()
	payload := map[string]interface{}{
		"model":       p.model,
		"messages":    messages,
		"temperature": opts.Temperature,
		"max_tokens":  opts.MaxTokens,
	}
	if p.registry != nil && len(p.registry.All()) > 0 {
		payload["tools"] = p.registry.OpenAITools()
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
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, connectionError("OpenAI")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError("OpenAI")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, providerHTTPError("OpenAI", resp.StatusCode, body)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content   string `json:"content"`
				ToolCalls []struct {
					ID       string `json:"id"`
					Function struct {
						Name      string `json:"name"`
						Arguments string `json:"arguments"`
					} `json:"function"`
				} `json:"tool_calls"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, providerHTTPError("OpenAI", resp.StatusCode, body)
	}
	if len(result.Choices) == 0 {
		return nil, emptyResponseError("OpenAI")
	}

	msg := result.Choices[0].Message
	out := &Response{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		args := map[string]interface{}{}
		_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		out.ToolCalls = append(out.ToolCalls, tools.Call{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	if out.Text == "" && len(out.ToolCalls) == 0 {
		return nil, emptyResponseError("OpenAI")
	}
	return out, nil
}
