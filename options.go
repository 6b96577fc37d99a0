package wirely

import (
	"context"
	"log/slog"
	"time"
)

// toolOptions hold optional tool settings.
type toolOptions struct {
	strict bool
}

// ToolOption configures a tool built with NewTool.
type ToolOption func(*toolOptions)

// WithStrict sets strict mode for the generated schema: additionalProperties
// false for all objects, and all properties required.
func WithStrict() ToolOption {
	return func(o *toolOptions) {
		o.strict = true
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	recoverPanics bool
	onBefore      func(context.Context, ToolCall)
	onAfter       func(context.Context, ToolCall, ToolResult, time.Duration)
}

// WithRecoverPanics enables panic recovery in Dispatch (on by default);
// a recovered panic becomes a failed ToolResult.
func WithRecoverPanics(enable bool) RegistryOption {
	return func(o *registryOptions) {
		o.recoverPanics = enable
	}
}

// WithOnBeforeDispatch sets a hook called before each tool dispatch.
func WithOnBeforeDispatch(fn func(context.Context, ToolCall)) RegistryOption {
	return func(o *registryOptions) {
		o.onBefore = fn
	}
}

// WithOnAfterDispatch sets a hook called after each tool dispatch with the
// result and duration (success or failure).
func WithOnAfterDispatch(fn func(context.Context, ToolCall, ToolResult, time.Duration)) RegistryOption {
	return func(o *registryOptions) {
		o.onAfter = fn
	}
}

// AgentOption configures an Agent.
type AgentOption func(*agentOptions)

type agentOptions struct {
	systemPrompt  string
	maxIterations int
	historyWindow int
	logger        *slog.Logger
	notifier      *Notifier
	onContent     func(running string)
}

// WithSystemPrompt replaces the default persona/instructions sent as the
// conversation's system message.
func WithSystemPrompt(prompt string) AgentOption {
	return func(o *agentOptions) {
		if prompt != "" {
			o.systemPrompt = prompt
		}
	}
}

// WithMaxIterations bounds the thought-action loop (default 10). Values
// below 1 are ignored.
func WithMaxIterations(n int) AgentOption {
	return func(o *agentOptions) {
		if n >= 1 {
			o.maxIterations = n
		}
	}
}

// WithHistoryWindow bounds the replayed recent-history window to the last n
// turns (default 12).
func WithHistoryWindow(n int) AgentOption {
	return func(o *agentOptions) {
		if n >= 0 {
			o.historyWindow = n
		}
	}
}

// WithAgentLogger sets the agent's logger; defaults to slog.Default().
func WithAgentLogger(logger *slog.Logger) AgentOption {
	return func(o *agentOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNotifier attaches a progress notifier. Without one, progress events
// are dropped.
func WithNotifier(n *Notifier) AgentOption {
	return func(o *agentOptions) {
		o.notifier = n
	}
}

// WithLiveContent registers a callback invoked with the running assistant
// text as content deltas arrive (live rendering).
func WithLiveContent(fn func(running string)) AgentOption {
	return func(o *agentOptions) {
		o.onContent = fn
	}
}
