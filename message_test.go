package wirely

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimHistory_WindowAppliesBeforeFiltering(t *testing.T) {
	history := []Message{
		UserMessage{Content: "first"},
		UserMessage{Content: "second"},
		UserMessage{Content: "third"},
	}
	out := trimHistory(history, 2)
	require.Len(t, out, 2)
	assert.Equal(t, UserMessage{Content: "second"}, out[0])
	assert.Equal(t, UserMessage{Content: "third"}, out[1])
}

func TestTrimHistory_DropsSystemToolAndEmptyTurns(t *testing.T) {
	history := []Message{
		SystemMessage{Content: "persona"},
		UserMessage{Content: ""},
		AssistantMessage{Content: ""},
		ToolMessage{ToolCallID: "call_1", Content: `{"success":true}`},
		AssistantMessage{Content: "kept"},
	}
	out := trimHistory(history, 10)
	require.Len(t, out, 1)
	assert.Equal(t, AssistantMessage{Content: "kept"}, out[0])
}

func TestTrimHistory_StripsAssistantToolCalls(t *testing.T) {
	history := []Message{
		AssistantMessage{Content: "answer", ToolCalls: []ToolCall{{ID: "call_1", Name: "add_wire"}}},
	}
	out := trimHistory(history, 10)
	require.Len(t, out, 1)
	assert.Equal(t, AssistantMessage{Content: "answer"}, out[0])
}

func TestTrimHistory_ZeroWindowDropsEverything(t *testing.T) {
	history := []Message{UserMessage{Content: "anything"}}
	assert.Nil(t, trimHistory(history, 0))
	assert.Nil(t, trimHistory(nil, 5))
}
