package wirely

import "strings"

// Merger reconstructs the full assistant text and tool-call objects from the
// ordered frame sequence of one completion request. Merging is a pure fold:
// replaying the same frames always yields identical results.
//
// A Merger is single-use; create a fresh one per completion request.
type Merger struct {
	content   strings.Builder
	calls     []ToolCall
	positions map[int]int // stream index -> position in calls
	onContent func(running string)
	done      bool
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithContentObserver registers a callback invoked with the running content
// accumulator after every content frame (supports live text rendering).
func WithContentObserver(fn func(running string)) MergerOption {
	return func(m *Merger) {
		m.onContent = fn
	}
}

// NewMerger creates a Merger for one completion request.
func NewMerger(opts ...MergerOption) *Merger {
	m := &Merger{positions: make(map[int]int)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply folds one frame into the accumulators. Frames arriving after a
// DoneFrame are ignored.
func (m *Merger) Apply(f Frame) {
	if m.done {
		return
	}
	switch f := f.(type) {
	case ContentFrame:
		m.content.WriteString(f.Text)
		if m.onContent != nil {
			m.onContent(m.content.String())
		}
	case ToolCallDeltaFrame:
		pos, ok := m.positions[f.Index]
		if !ok {
			pos = len(m.calls)
			m.positions[f.Index] = pos
			m.calls = append(m.calls, ToolCall{})
		}
		call := &m.calls[pos]
		if f.ID != "" {
			call.ID = f.ID
		}
		call.Name += f.Name
		call.Arguments += f.Args
	case DoneFrame:
		m.done = true
	}
}

// Result returns the accumulated content and tool calls. Each call's
// Arguments is expected to be syntactically complete JSON once the stream
// has ended; parsing is deferred to the dispatcher, which treats a parse
// failure as a tool-argument error, not a transport error.
func (m *Merger) Result() (string, []ToolCall) {
	return m.content.String(), m.calls
}
