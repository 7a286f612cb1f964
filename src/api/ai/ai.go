// Package ai drives replies for support conversations: two interchangeable
// provider adapters (OpenAI, Anthropic) behind one contract, plus the
// bounded tool-execution loop that turns raw model output into a
// structured answer.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/siiddhantt/ai-chat-assistant/src/api/tools"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
)

// Options tune a single provider request. Zero values fall back to the
// adapter defaults (500 tokens / 0.7 temperature).
type Options struct {
	MaxTokens   int
	Temperature float64
}

const (
	defaultMaxTokens   = 500
	defaultTemperature = 0.7
)

func (o Options) withDefaults() Options {
	if o.MaxTokens == 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Temperature == 0 {
		o.Temperature = defaultTemperature
	}
	return o
}

// Response is the parsed form of one provider round-trip. ToolCalls, when
// present, take priority over Text.
type Response struct {
	Text      string
	ToolCalls []tools.Call
}

// StructuredResponse is the orchestration loop's final output. ToolCalls
// reports what was executed across all iterations; it demands no further
// action.
type StructuredResponse struct {
	Answer          string       `json:"answer"`
	ProposedActions []string     `json:"proposedActions"`
	ToolCalls       []tools.Call `json:"toolCalls,omitempty"`
}

// Provider is the contract both hosted-model adapters implement.
type Provider interface {
	// GenerateReply issues one request carrying the system prompt, the
	// bounded conversation context and the user's message.
	GenerateReply(ctx context.Context, history []types.Message, userMessage string, opts Options) (*Response, error)

	// ContinueWithToolResults re-issues the request including the
	// assistant's prior tool-call intent and the corresponding outputs,
	// formatted per provider convention.
	ContinueWithToolResults(ctx context.Context, history []types.Message, userMessage string, prev *Response, results []tools.Result, opts Options) (*Response, error)
}

// FactoryConfig constructs a provider without leaking adapter details.
type FactoryConfig struct {
	Provider string // "openai" or "anthropic"
	APIKey   string
	Model    string
	Registry *tools.Registry
}

// NewProvider selects the adapter by configuration.
func NewProvider(cfg FactoryConfig) Provider {
	switch cfg.Provider {
	case "anthropic":
		return newAnthropicProvider(cfg)
	default:
		return newOpenAIProvider(cfg)
	}
}

// providerHTTPError maps an upstream non-2xx reply onto the error taxonomy.
// 401 and 429 pass through with their own statuses; everything else wraps
// the upstream message as a 500.
func providerHTTPError(provider string, status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return apperr.New(http.StatusUnauthorized, "INVALID_API_KEY",
			fmt.Sprintf("Invalid %s API key", provider))
	case http.StatusTooManyRequests:
		return apperr.New(http.StatusTooManyRequests, "RATE_LIMIT",
			"Rate limit exceeded. Please try again later.")
	}

	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := fmt.Sprintf("%s API error", provider)
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		msg = parsed.Error.Message
	}
	return apperr.New(http.StatusInternalServerError, "LLM_ERROR", msg)
}

func connectionError(provider string) error {
	return apperr.New(http.StatusInternalServerError, "CONNECTION_ERROR",
		fmt.Sprintf("Failed to connect to %s API", provider))
}

func emptyResponseError(provider string) error {
	return apperr.New(http.StatusInternalServerError, "EMPTY_RESPONSE",
		fmt.Sprintf("Empty response from %s", provider))
}

// ParseStructuredResponse extracts {answer, proposed_actions} from raw model
// text. The scan is best effort: the first balanced {...} object is tried;
// anything malformed degrades to the whole text as the answer with no
// actions. It never fails.
func ParseStructuredResponse(text string) StructuredResponse {
	if raw, ok := firstJSONObject(text); ok {
		var parsed struct {
			Answer          string   `json:"answer"`
			ProposedActions []string `json:"proposed_actions"`
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil && parsed.Answer != "" {
			actions := parsed.ProposedActions
			if len(actions) > 3 {
				actions = actions[:3]
			}
			if actions == nil {
				actions = []string{}
			}
			return StructuredResponse{Answer: parsed.Answer, ProposedActions: actions}
		}
	}
	return StructuredResponse{Answer: text, ProposedActions: []string{}}
}

// firstJSONObject returns the first balanced top-level {...} in s, honoring
// string literals and escapes.
func firstJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if start == -1 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
