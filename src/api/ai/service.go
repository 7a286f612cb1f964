package ai

import (
	"context"
	"log"

	"github.com/siiddhantt/ai-chat-assistant/src/api/tools"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
)

// DefaultMaxToolIterations bounds provider round-trips per user message.
const DefaultMaxToolIterations = 5

// Service runs the reply loop: request, execute any requested tools,
// continue with their results, repeat until the model stops asking or the
// iteration ceiling is hit.
type Service struct {
	provider          Provider
	registry          *tools.Registry
	maxToolIterations int
}

func NewService(provider Provider, registry *tools.Registry, maxToolIterations int) *Service {
	if maxToolIterations <= 0 {
		maxToolIterations = DefaultMaxToolIterations
	}
	return &Service{
		provider:          provider,
		registry:          registry,
		maxToolIterations: maxToolIterations,
	}
}

// GenerateReply produces one final structured answer for a user message.
//
// Tool execution failures never fail the turn; each call resolves to a
// result (success or error) handed back to the model. Adapter failures are
// fatal for the whole turn. Tools already executed are not compensated:
// execution is at most once, and the shipped tools are simulations with no
// external state.
func (s *Service) GenerateReply(ctx context.Context, history []types.Message, userMessage string, opts Options) (*StructuredResponse, error) {
	resp, err := s.provider.GenerateReply(ctx, history, userMessage, opts)
	if err != nil {
		return nil, err
	}

	var executed []tools.Call
	for iteration := 0; len(resp.ToolCalls) > 0; iteration++ {
		if iteration >= s.maxToolIterations {
			// The model is still asking for tools; surface what we have
			// rather than looping forever.
			log.Printf("tool iteration ceiling (%d) reached, returning last response", s.maxToolIterations)
			break
		}

		executed = append(executed, resp.ToolCalls...)
		results := s.registry.ExecuteToolCalls(resp.ToolCalls)

		next, err := s.provider.ContinueWithToolResults(ctx, history, userMessage, resp, results, opts)
		if err != nil {
			return nil, err
		}
		resp = next
	}

	parsed := ParseStructuredResponse(resp.Text)
	parsed.ToolCalls = executed
	return &parsed, nil
}
