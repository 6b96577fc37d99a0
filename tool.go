package wirely

import (
	"context"
	"encoding/json"
)

// Tool is the contract for a named, schema-described capability the
// reasoning service may request. Implementations are provider-agnostic and
// usually built with NewTool; hand-written implementations are fine as long
// as Parameters returns a valid JSON Schema map.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns a valid JSON Schema as a map (the shape sent to the
	// reasoning service verbatim).
	Parameters() map[string]any
	// Execute runs the tool. A returned error is converted to a failed
	// ToolResult by the dispatcher; it never aborts the conversation.
	Execute(ctx context.Context, args json.RawMessage) (ToolResult, error)
}

// ToolCall is one request, by the reasoning service, to invoke a tool.
// Arguments accumulates across stream frames and is guaranteed to be
// parseable JSON only once the stream has completed.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResult is the uniform result shape regardless of which tool produced
// it. It is JSON-serialized into a ToolMessage and fed back to the model.
type ToolResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ToolSchema is the registration shape exported to the completion request:
// {name, description, parameters}.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}
