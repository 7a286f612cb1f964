package tools

// Parameter describes one field of a tool's argument object.
type Parameter struct {
	Type        interface{} `json:"type"` // string or []string (nullable fields)
	Description string      `json:"description"`
	Enum        []string    `json:"enum,omitempty"`
}

// Definition is the provider-neutral schema of a tool.
type Definition struct {
	Name        string
	Description string
	Properties  map[string]Parameter
	Required    []string
	// Order fixes the property iteration order when describing the tool in
	// prompts, since the map carries none.
	Order []string
}

// Call is a structured function-invocation request emitted by the model.
type Call struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Result pairs one Call with its outcome. Exactly one Result exists per
// executed Call, success or not.
type Result struct {
	ToolCallID string      `json:"toolCallId"`
	Success    bool        `json:"success"`
	Result     interface{} `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Tool is an executable with a declared schema. Execute receives decoded
// arguments and reports business-rule failures inside the Result; an error
// return is reserved for unexpected failures and is contained by the
// registry, never propagated.
type Tool interface {
	Definition() Definition
	Execute(args map[string]interface{}) (Result, error)
}

// OpenAITool is the function-declaration shape the OpenAI API expects.
type OpenAITool struct {
	Type     string         `json:"type"`
	Function OpenAIFunction `json:"function"`
}

type OpenAIFunction struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  OpenAIParameters `json:"parameters"`
	Strict      bool             `json:"strict"`
}

type OpenAIParameters struct {
	Type                 string               `json:"type"`
	Properties           map[string]Parameter `json:"properties"`
	Required             []string             `json:"required"`
	AdditionalProperties bool                 `json:"additionalProperties"`
}

// AnthropicTool is the equivalent declaration for the Anthropic API.
type AnthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema AnthropicInput `json:"input_schema"`
}

type AnthropicInput struct {
	Type       string               `json:"type"`
	Properties map[string]Parameter `json:"properties"`
	Required   []string             `json:"required"`
}
