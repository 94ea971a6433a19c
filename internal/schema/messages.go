package schema

// Messages is the ordered list of messages exchanged with the model.
// It owns typed append methods so callers never construct raw maps.
type Messages struct {
	Messages []Message
}

// NewMessages returns a Messages initialised with the given messages.
// Called with no arguments it returns an empty Messages ready for use.
func NewMessages(msgs ...Message) Messages {
	if len(msgs) == 0 {
		return Messages{Messages: make([]Message, 0)}
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return Messages{Messages: out}
}

// AddSystem appends a system message.
func (mh *Messages) AddSystem(content string) {
	mh.Messages = append(mh.Messages, NewSystemMessage(content))
}

// AddUser appends a user message.
func (mh *Messages) AddUser(content string) {
	mh.Messages = append(mh.Messages, NewUserMessage(content))
}

// AddAssistant appends a plain assistant message with text content.
func (mh *Messages) AddAssistant(content string) {
	mh.Messages = append(mh.Messages, NewAssistantMessage(content))
}

// AddToolCall appends an assistant message carrying tool calls and no content.
func (mh *Messages) AddToolCall(calls []ToolCall) {
	mh.Messages = append(mh.Messages, NewToolCallMessage(calls))
}

// AddToolResult appends a tool-result message paired with the given call.
func (mh *Messages) AddToolResult(call ToolCall, result string) {
	mh.Messages = append(mh.Messages, NewToolResultMessage(call, result))
}

// Len returns the number of messages.
func (mh *Messages) Len() int { return len(mh.Messages) }

// Clone returns a copy of mh with an independent backing slice. Individual
// messages are never mutated after being appended, so copying the slice is
// enough to isolate the clone from later appends.
func (mh *Messages) Clone() Messages {
	cloned := make([]Message, len(mh.Messages))
	copy(cloned, mh.Messages)
	return Messages{Messages: cloned}
}
