package wirely

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Registry holds the tool set and dispatches calls from the reasoning
// service. The mapping is assembled once at startup; Schemas returns the
// same list for every completion request.
type Registry struct {
	mu          sync.Mutex
	tools       map[string]Tool // wrapped with middlewares, used by Dispatch
	rawTools    map[string]Tool // unwrapped, used by Use to re-apply middlewares
	middlewares []Middleware
	opts        registryOptions
}

// NewRegistry creates a Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{recoverPanics: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		tools:    make(map[string]Tool),
		rawTools: make(map[string]Tool),
		opts:     o,
	}
}

// Register adds a tool. Stored middlewares (see Use) are applied before
// registration. A tool with the same name replaces the previous one. Safe
// for concurrent use with Dispatch and other Register calls.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := t.Name()
	r.rawTools[name] = t
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		t = r.middlewares[i](t)
	}
	r.tools[name] = t
}

// Lookup returns the tool with the given name (after middlewares are
// applied), or (nil, false) if not found.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tools[name]
	return t, ok
}

// Schemas returns the registered tool schemas, sorted by name for a
// deterministic order. The list is used verbatim in completion requests.
func (r *Registry) Schemas() []ToolSchema {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]ToolSchema, 0, len(names))
	for _, name := range names {
		t := r.tools[name]
		out = append(out, ToolSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return out
}

// Dispatch invokes the tool named by the call and always returns a
// ToolResult: an unknown name, malformed argument JSON, a handler error, and
// a handler panic all become {Success:false, Message} results fed back into
// the conversation. Tool failures never propagate as fatal errors.
func (r *Registry) Dispatch(ctx context.Context, call ToolCall) ToolResult {
	t, ok := r.Lookup(call.Name)
	if !ok {
		return ToolResult{Success: false, Message: fmt.Sprintf("Unknown tool: %s", call.Name)}
	}

	args := call.Arguments
	if args == "" {
		args = "{}"
	}
	if !json.Valid([]byte(args)) {
		return failureResult(&ArgumentError{Reason: "arguments are not valid JSON"})
	}

	if r.opts.onBefore != nil {
		r.opts.onBefore(ctx, call)
	}
	start := time.Now()
	res, err := r.invoke(ctx, t, json.RawMessage(args))
	if err != nil {
		res = failureResult(err)
	}
	if r.opts.onAfter != nil {
		r.opts.onAfter(ctx, call, res, time.Since(start))
	}
	return res
}

// invoke runs the tool, converting a panic into ExecutionError when panic
// recovery is enabled.
func (r *Registry) invoke(ctx context.Context, t Tool, args json.RawMessage) (res ToolResult, err error) {
	if r.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				res = ToolResult{}
				err = &ExecutionError{Err: &panicError{p: p}}
			}
		}()
	}
	return t.Execute(ctx, args)
}

// Use stores the given middlewares and reapplies them from scratch to all
// registered tools (onion order: first middleware is outermost). Tools
// registered after Use also get these middlewares. Calling Use again
// replaces the chain and rewraps from raw tools, avoiding double-wrapping.
func (r *Registry) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = middlewares
	for name, raw := range r.rawTools {
		t := raw
		for i := len(middlewares) - 1; i >= 0; i-- {
			t = middlewares[i](t)
		}
		r.tools[name] = t
	}
}

// failureResult converts a dispatch-boundary error into the uniform failed
// result shape. ArgumentError text is surfaced verbatim so the model can
// self-correct; ExecutionError renders its generic message.
func failureResult(err error) ToolResult {
	return ToolResult{Success: false, Message: err.Error()}
}
