package wirely

import (
	"context"
	"encoding/json"
	"maps"
)

// tool is the internal Tool implementation built by NewTool.
type tool struct {
	name        string
	description string
	schema      map[string]any
	execute     func(context.Context, json.RawMessage) (ToolResult, error)
}

// NewTool builds a Tool from a typed handler. Schema generation and
// validation are delegated to Extractor[T]: incoming argument JSON is
// unmarshaled, validated against the same schema shown to the model, and
// handed to fn as a concrete T. Returns an error if schema generation fails
// (e.g. unsupported type).
func NewTool[T any](
	name, description string,
	fn func(ctx context.Context, args T) (ToolResult, error),
	opts ...ToolOption,
) (Tool, error) {
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}
	ext, err := NewExtractor[T](o.strict)
	if err != nil {
		return nil, err
	}
	execute := func(ctx context.Context, argsJSON json.RawMessage) (ToolResult, error) {
		args, err := ext.ParseAndValidate(argsJSON)
		if err != nil {
			return ToolResult{}, err
		}
		res, err := fn(ctx, args)
		if err != nil {
			return ToolResult{}, wrapHandlerError(err)
		}
		return res, nil
	}
	return &tool{
		name:        name,
		description: description,
		schema:      ext.Schema(),
		execute:     execute,
	}, nil
}

func (t *tool) Name() string        { return t.name }
func (t *tool) Description() string { return t.description }

// Parameters returns a shallow copy of the JSON Schema (top-level keys
// only). Nested maps are shared; callers must not mutate them.
func (t *tool) Parameters() map[string]any { return maps.Clone(t.schema) }

func (t *tool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	return t.execute(ctx, args)
}

// wrapHandlerError passes through ArgumentError; wraps other handler errors
// as ExecutionError so internals never reach the model.
func wrapHandlerError(err error) error {
	if err == nil {
		return nil
	}
	if IsArgumentError(err) {
		return err
	}
	return &ExecutionError{Err: err}
}

var _ Tool = (*tool)(nil)
