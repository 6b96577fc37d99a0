package wirely

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skematic/wirely/llm"
)

const defaultSystemPrompt = `You are a circuit-design assistant embedded in a schematic editor.
You can search the parts library, place components, and wire them together
using the provided tools. Make design changes through tool calls only, one
step at a time, and finish with a short summary of what you did. If a tool
call fails, read its message and correct your next call.`

const (
	defaultMaxIterations = 10
	defaultHistoryWindow = 12
)

// Completer streams one chat completion. *llm.Client implements it; tests
// substitute scripted implementations.
type Completer interface {
	Stream(ctx context.Context, req *llm.Request, fn func(llm.Event) error) error
}

// Status is the terminal state of one Execute call.
type Status string

// Execute outcomes. Iteration exhaustion is StatusSuccess: the cap is a
// bounded-termination condition, not an error.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of one Execute call. Iterations counts the full
// request/response/tool-dispatch cycles performed; a turn that terminates
// the loop without dispatching tools is not counted.
type Result struct {
	Status     Status
	Response   string
	Iterations int
}

// Agent runs the thought-action loop: request a streamed completion, merge
// deltas, dispatch tool calls in order, repeat until the model answers in
// plain text or the iteration cap is reached.
//
// An Agent assumes at most one Execute call in flight per design surface;
// concurrent calls against the same canvas are not guarded.
type Agent struct {
	completer Completer
	registry  *Registry
	opts      agentOptions
}

// New constructs an Agent over a completion service and a tool registry.
func New(completer Completer, registry *Registry, opts ...AgentOption) *Agent {
	o := agentOptions{
		systemPrompt:  defaultSystemPrompt,
		maxIterations: defaultMaxIterations,
		historyWindow: defaultHistoryWindow,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Agent{completer: completer, registry: registry, opts: o}
}

// Execute runs one natural-language command against the design surface.
// history is an optional window of prior turns; it is trimmed to the
// configured window and empty entries are dropped.
//
// Only a transport failure returns a non-nil error (wrapped in
// *TransportError, mirrored by Result.Status). Tool failures and malformed
// tool arguments are fed back into the conversation as failed results.
func (a *Agent) Execute(ctx context.Context, prompt string, history []Message) (*Result, error) {
	conv := make([]Message, 0, a.opts.historyWindow+2)
	conv = append(conv, SystemMessage{Content: a.opts.systemPrompt})
	conv = append(conv, trimHistory(history, a.opts.historyWindow)...)
	conv = append(conv, UserMessage{Content: prompt})

	schemas := a.registry.Schemas()
	result := &Result{Status: StatusSuccess}

	for iter := 1; iter <= a.opts.maxIterations; iter++ {
		a.emit(KindStatus, "thinking")

		content, calls, err := a.completeTurn(ctx, conv, schemas)
		if err != nil {
			terr := &TransportError{Err: err}
			if serr, ok := err.(*llm.StatusError); ok {
				terr.Status = serr.Status
			}
			a.emit(KindError, "the assistant ran into a problem", WithErrorDetail(terr.Error()))
			result.Status = StatusError
			result.Response = terr.Error()
			return result, terr
		}

		conv = append(conv, AssistantMessage{Content: content, ToolCalls: calls})
		if content != "" {
			result.Response = content
		}

		if len(calls) > 0 {
			for _, call := range calls {
				a.emit(KindStatus, "running "+call.Name)
				res := a.registry.Dispatch(ctx, call)
				conv = append(conv, ToolMessage{
					ToolCallID: call.ID,
					Content:    marshalToolResult(res),
				})
			}
			result.Iterations++
			continue
		}

		if content != "" {
			a.emit(KindSuccess, content)
			return result, nil
		}

		// Neither content nor tool calls: a non-fatal anomaly.
		a.opts.logger.Warn("completion turn carried no content and no tool calls", "iteration", iter)
		return result, nil
	}

	a.emit(KindWarn, fmt.Sprintf("stopped after %d iterations without a final answer", a.opts.maxIterations))
	return result, nil
}

// completeTurn streams one completion and merges its frames.
func (a *Agent) completeTurn(ctx context.Context, conv []Message, schemas []ToolSchema) (string, []ToolCall, error) {
	req := &llm.Request{
		Messages: wireMessages(conv),
		Tools:    wireSchemas(schemas),
		Stream:   true,
	}

	var mergerOpts []MergerOption
	if a.opts.onContent != nil {
		mergerOpts = append(mergerOpts, WithContentObserver(a.opts.onContent))
	}
	merger := NewMerger(mergerOpts...)

	err := a.completer.Stream(ctx, req, func(ev llm.Event) error {
		for _, f := range framesFromEvent(ev) {
			merger.Apply(f)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrStreamAborted, err)
		}
		return "", nil, err
	}
	merger.Apply(DoneFrame{})
	content, calls := merger.Result()
	return content, calls, nil
}

func (a *Agent) emit(kind EventKind, text string, opts ...EmitOption) {
	if a.opts.notifier != nil {
		a.opts.notifier.Emit(kind, text, opts...)
	}
}

// marshalToolResult serializes a result for the tool message. Data payloads
// that cannot be marshaled degrade to the success/message envelope.
func marshalToolResult(res ToolResult) string {
	payload, err := json.Marshal(res)
	if err != nil {
		payload, _ = json.Marshal(ToolResult{Success: res.Success, Message: res.Message})
	}
	return string(payload)
}

// wireMessages converts the conversation to the wire shape, matching every
// member of the Message union.
func wireMessages(conv []Message) []llm.ChatMessage {
	out := make([]llm.ChatMessage, 0, len(conv))
	for _, m := range conv {
		switch m := m.(type) {
		case SystemMessage:
			out = append(out, llm.ChatMessage{Role: "system", Content: m.Content})
		case UserMessage:
			out = append(out, llm.ChatMessage{Role: "user", Content: m.Content})
		case AssistantMessage:
			out = append(out, llm.ChatMessage{
				Role:      "assistant",
				Content:   m.Content,
				ToolCalls: wireToolCalls(m.ToolCalls),
			})
		case ToolMessage:
			out = append(out, llm.ChatMessage{
				Role:       "tool",
				Content:    m.Content,
				ToolCallID: m.ToolCallID,
			})
		}
	}
	return out
}

func wireToolCalls(calls []ToolCall) []llm.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]llm.ToolCall, 0, len(calls))
	for _, c := range calls {
		out = append(out, llm.ToolCall{
			ID:   c.ID,
			Type: "function",
			Function: llm.ToolFunction{
				Name:      c.Name,
				Arguments: c.Arguments,
			},
		})
	}
	return out
}

func wireSchemas(schemas []ToolSchema) []llm.ToolSchema {
	if len(schemas) == 0 {
		return nil
	}
	out := make([]llm.ToolSchema, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, llm.ToolSchema{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  s.Parameters,
		})
	}
	return out
}
