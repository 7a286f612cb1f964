package tools

import "fmt"

// Registry is the catalog of tools exposed to the model. It is constructed
// once in main and injected where needed; there is no package-level state.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, overwriting any previous entry with the same name.
func (r *Registry) Register(t Tool) {
	name := t.Definition().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

func (r *Registry) OpenAITools() []OpenAITool {
	out := make([]OpenAITool, 0, len(r.order))
	for _, t := range r.All() {
		def := t.Definition()
		out = append(out, OpenAITool{
			Type: "function",
			Function: OpenAIFunction{
				Name:        def.Name,
				Description: def.Description,
				Parameters: OpenAIParameters{
					Type:                 "object",
					Properties:           def.Properties,
					Required:             def.Required,
					AdditionalProperties: false,
				},
				Strict: true,
			},
		})
	}
	return out
}

func (r *Registry) AnthropicTools() []AnthropicTool {
	out := make([]AnthropicTool, 0, len(r.order))
	for _, t := range r.All() {
		def := t.Definition()
		out = append(out, AnthropicTool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: AnthropicInput{
				Type:       "object",
				Properties: def.Properties,
				Required:   def.Required,
			},
		})
	}
	return out
}

// ExecuteToolCalls runs each call in order and returns one Result per Call,
// same order, tagged with the call's id. Unknown tools and tool errors
// become failed Results; a single failure never aborts the batch.
func (r *Registry) ExecuteToolCalls(calls []Call) []Result {
	results := make([]Result, 0, len(calls))
	for _, call := range calls {
		tool, ok := r.Get(call.Name)
		if !ok {
			results = append(results, Result{
				ToolCallID: call.ID,
				Success:    false,
				Error:      fmt.Sprintf("Unknown tool: %s", call.Name),
			})
			continue
		}

		res, err := tool.Execute(call.Arguments)
		if err != nil {
			results = append(results, Result{
				ToolCallID: call.ID,
				Success:    false,
				Error:      err.Error(),
			})
			continue
		}
		res.ToolCallID = call.ID
		results = append(results, res)
	}
	return results
}
