package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTool struct {
	name    string
	execute func(args map[string]interface{}) (Result, error)
}

func (f fakeTool) Definition() Definition {
	return Definition{Name: f.name, Description: "fake"}
}

func (f fakeTool) Execute(args map[string]interface{}) (Result, error) {
	return f.execute(args)
}

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeTool{name: "b"})
	r.Register(fakeTool{name: "a"})
	r.Register(fakeTool{name: "c"})

	all := r.All()
	names := make([]string, 0, len(all))
	for _, tool := range all {
		names = append(names, tool.Definition().Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)

	// Re-registering must not duplicate the entry.
	r.Register(fakeTool{name: "a"})
	assert.Len(t, r.All(), 3)
}

func TestExecuteToolCallsUnknownTool(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeTool{
		name: "known",
		execute: func(map[string]interface{}) (Result, error) {
			return Result{Success: true, Result: "ok"}, nil
		},
	})

	results := r.ExecuteToolCalls([]Call{
		{ID: "call_1", Name: "missing"},
		{ID: "call_2", Name: "known"},
	})

	assert.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Equal(t, "call_1", results[0].ToolCallID)
	assert.Equal(t, "Unknown tool: missing", results[0].Error)
	assert.True(t, results[1].Success)
	assert.Equal(t, "call_2", results[1].ToolCallID)
}

func TestExecuteToolCallsContainsErrors(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeTool{
		name: "boom",
		execute: func(map[string]interface{}) (Result, error) {
			return Result{}, errors.New("exploded")
		},
	})
	r.Register(fakeTool{
		name: "fine",
		execute: func(map[string]interface{}) (Result, error) {
			return Result{Success: true}, nil
		},
	})

	results := r.ExecuteToolCalls([]Call{
		{ID: "1", Name: "boom"},
		{ID: "2", Name: "fine"},
	})

	assert.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Equal(t, "exploded", results[0].Error)
	assert.True(t, results[1].Success)
}

func TestOpenAIToolsShape(t *testing.T) {
	r := NewRegistry()
	r.Register(NewScheduleAppointment())

	out := r.OpenAITools()
	assert.Len(t, out, 1)
	assert.Equal(t, "function", out[0].Type)
	assert.Equal(t, "schedule_appointment", out[0].Function.Name)
	assert.True(t, out[0].Function.Strict)
	assert.False(t, out[0].Function.Parameters.AdditionalProperties)
	assert.Contains(t, out[0].Function.Parameters.Required, "notes")
}

func TestAnthropicToolsShape(t *testing.T) {
	r := NewRegistry()
	r.Register(NewScheduleAppointment())

	out := r.AnthropicTools()
	assert.Len(t, out, 1)
	assert.Equal(t, "schedule_appointment", out[0].Name)
	assert.Equal(t, "object", out[0].InputSchema.Type)
	assert.Contains(t, out[0].InputSchema.Properties, "customerEmail")
}
