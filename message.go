package wirely

// Message is one entry in a conversation. It is a closed union: the concrete
// types are SystemMessage, UserMessage, AssistantMessage, and ToolMessage.
// Conversations are append-only within one Execute call; messages are never
// mutated after they are appended.
type Message interface {
	message()
}

// SystemMessage carries the fixed persona and instructions for the agent.
type SystemMessage struct {
	Content string
}

// UserMessage carries one natural-language command from the user.
type UserMessage struct {
	Content string
}

// AssistantMessage is one reconstructed model turn. Content and ToolCalls
// may both be present; a turn with neither terminates the loop.
type AssistantMessage struct {
	Content   string
	ToolCalls []ToolCall
}

// ToolMessage feeds a JSON-serialized ToolResult back to the model. Every
// ToolMessage follows an AssistantMessage that emitted a matching call id.
type ToolMessage struct {
	ToolCallID string
	Content    string
}

func (SystemMessage) message()    {}
func (UserMessage) message()      {}
func (AssistantMessage) message() {}
func (ToolMessage) message()      {}

// trimHistory keeps the last window turns and drops entries with empty
// content (empty assistant turns carry nothing worth replaying).
func trimHistory(history []Message, window int) []Message {
	if window <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	out := make([]Message, 0, len(history))
	for _, m := range history {
		switch m := m.(type) {
		case SystemMessage:
			// The agent owns the system persona; stray system turns are dropped.
		case UserMessage:
			if m.Content != "" {
				out = append(out, m)
			}
		case AssistantMessage:
			if m.Content != "" {
				out = append(out, AssistantMessage{Content: m.Content})
			}
		case ToolMessage:
			// Tool turns are only meaningful next to the assistant turn that
			// requested them; a trimmed window replays text turns only.
		}
	}
	return out
}
