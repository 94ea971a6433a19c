package schema

// ToolCall represents one function call requested by the model.
//
// Arguments holds the raw JSON-encoded payload exactly as the model produced
// it. Parsing is deferred to the tool executor so that a malformed payload
// becomes a conversation-visible error result instead of a transport failure.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToWireMap serialises a ToolCall into the OpenAI function-calling wire map.
// Used by provider implementations when building the JSON request body.
func (tc ToolCall) ToWireMap() map[string]any {
	return map[string]any{
		"id":   tc.ID,
		"type": "function",
		"function": map[string]any{
			"name":      tc.Name,
			"arguments": tc.Arguments,
		},
	}
}

// Message is one entry in the conversation transcript.
//
// Role is one of: "system", "user", "assistant", "tool".
//
// Content is nil only on an assistant message that carries tool calls; every
// other message has text. ToolCallID and ToolName are set on tool-result
// messages and reference a call in the immediately preceding assistant
// message.
type Message struct {
	Role       string
	Content    *string
	ToolCalls  []ToolCall // assistant role only
	ToolCallID string     // tool role only
	ToolName   string     // tool role only
}

func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: &content}
}

func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: &content}
}

// NewAssistantMessage builds a plain assistant reply with text content.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: &content}
}

// NewToolCallMessage builds the assistant half of a tool interaction:
// content is nil and the requested calls are echoed back verbatim.
func NewToolCallMessage(calls []ToolCall) Message {
	return Message{Role: "assistant", ToolCalls: calls}
}

// NewToolResultMessage builds the tool half of a tool interaction.
func NewToolResultMessage(call ToolCall, result string) Message {
	return Message{
		Role:       "tool",
		Content:    &result,
		ToolCallID: call.ID,
		ToolName:   call.Name,
	}
}
