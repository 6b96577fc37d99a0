// Package testutil provides test helpers for wirely (MockTool, MockExecutor,
// ScriptedCompleter).
package testutil

import (
	"context"
	"encoding/json"

	"github.com/skematic/wirely"
	"github.com/skematic/wirely/llm"
)

// MockTool is a configurable Tool implementation for tests.
type MockTool struct {
	NameVal   string
	DescVal   string
	ParamsVal map[string]any
	ExecuteFn func(ctx context.Context, args json.RawMessage) (wirely.ToolResult, error)
}

// Name returns the tool name.
func (m *MockTool) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// Description returns the tool description.
func (m *MockTool) Description() string {
	return m.DescVal
}

// Parameters returns the parameters schema (or an empty object schema).
func (m *MockTool) Parameters() map[string]any {
	if m.ParamsVal != nil {
		return m.ParamsVal
	}
	return map[string]any{"type": "object"}
}

// Execute runs ExecuteFn if set, otherwise reports success.
func (m *MockTool) Execute(ctx context.Context, args json.RawMessage) (wirely.ToolResult, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, args)
	}
	return wirely.ToolResult{Success: true, Message: "ok"}, nil
}

// MockExecutor records design-surface commands and optionally rejects them.
type MockExecutor struct {
	Commands []string
	Params   []map[string]any
	Reject   bool
}

// Execute records the command and reports !Reject.
func (m *MockExecutor) Execute(command string, params map[string]any) bool {
	m.Commands = append(m.Commands, command)
	m.Params = append(m.Params, params)
	return !m.Reject
}

// ScriptedCompleter replays one canned event sequence per Stream call, in
// order. Extra calls return the last script. It records every request.
type ScriptedCompleter struct {
	Scripts  [][]llm.Event
	Requests []*llm.Request
	Err      error // returned instead of streaming when set
	calls    int
}

// Stream replays the next script.
func (s *ScriptedCompleter) Stream(_ context.Context, req *llm.Request, fn func(llm.Event) error) error {
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return s.Err
	}
	if len(s.Scripts) == 0 {
		return nil
	}
	idx := s.calls
	if idx >= len(s.Scripts) {
		idx = len(s.Scripts) - 1
	}
	s.calls++
	for _, ev := range s.Scripts[idx] {
		if err := fn(ev); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ wirely.Tool      = (*MockTool)(nil)
	_ wirely.Completer = (*ScriptedCompleter)(nil)
)
