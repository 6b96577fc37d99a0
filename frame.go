package wirely

import "github.com/skematic/wirely/llm"

// Frame is one element of a streamed completion response. It is a closed
// union: the concrete types are ContentFrame, ToolCallDeltaFrame, and
// DoneFrame. Frames are processed strictly in arrival order.
type Frame interface {
	frame()
}

// ContentFrame carries one fragment of assistant text.
type ContentFrame struct {
	Text string
}

// ToolCallDeltaFrame carries one fragment of a tool call. Index identifies
// the logical call; the order of first appearance defines array position.
// ID is sent at most once, on the first delta for a call; Name and Args are
// fragments to be concatenated.
type ToolCallDeltaFrame struct {
	Index int
	ID    string
	Name  string
	Args  string
}

// DoneFrame marks the end of the stream.
type DoneFrame struct{}

func (ContentFrame) frame()       {}
func (ToolCallDeltaFrame) frame() {}
func (DoneFrame) frame()          {}

// framesFromEvent flattens one wire event into frames. A tool_calls event
// may carry deltas for several logical calls at once.
func framesFromEvent(ev llm.Event) []Frame {
	switch ev.Type {
	case llm.EventContent:
		return []Frame{ContentFrame{Text: ev.Content}}
	case llm.EventToolCalls:
		frames := make([]Frame, 0, len(ev.ToolCalls))
		for _, d := range ev.ToolCalls {
			frames = append(frames, ToolCallDeltaFrame{
				Index: d.Index,
				ID:    d.ID,
				Name:  d.Function.Name,
				Args:  d.Function.Arguments,
			})
		}
		return frames
	default:
		// Unknown event types are ignored; the wire contract may grow.
		return nil
	}
}
