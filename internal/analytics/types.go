// Package analytics holds the tool-calling surface of the analytics agent.
package analytics

import (
	"context"

	"inventory-assistant/pkg/llmprovider"
)

// Tool is one analytics computation the model can invoke.
type Tool interface {
	// Name returns the tool name used in function calling.
	Name() string

	// Description tells the model what the tool computes.
	Description() string

	// Parameters returns the JSON Schema of the tool's arguments.
	Parameters() map[string]interface{}

	// Execute runs the computation. The owner scope arrives in params,
	// injected by the orchestrator, never by the model.
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// Registry holds the tools exposed to the analytics agent.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Last registration wins on name collisions.
func (r *Registry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools.
func (r *Registry) List() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	return tools
}

// ToFunctionDefinitions converts the registry to the provider-neutral
// function-calling format.
func (r *Registry) ToFunctionDefinitions() []llmprovider.Tool {
	defs := make([]llmprovider.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, llmprovider.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return defs
}
