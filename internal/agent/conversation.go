package agent

import "github.com/Void-n-Null/MiniCouncil/internal/schema"

// Conversation is the append-only transcript of one conversation. It owns the
// message sequence and enforces the pairing rule for tool interactions: a
// tool-result message is only ever appended immediately after the assistant
// message carrying its call.
//
// A Conversation is mutated by exactly one orchestrator at a time, so it
// needs no locking.
type Conversation struct {
	messages schema.Messages
}

// NewConversation returns an empty transcript.
func NewConversation() *Conversation {
	return &Conversation{messages: schema.NewMessages()}
}

// AddSystem appends a system message. Call before the first user message.
func (c *Conversation) AddSystem(content string) {
	c.messages.AddSystem(content)
}

// AddUser appends a user message.
func (c *Conversation) AddUser(content string) {
	c.messages.AddUser(content)
}

// AddAssistant appends a plain assistant message (a final, non-tool-calling
// reply).
func (c *Conversation) AddAssistant(content string) {
	c.messages.AddAssistant(content)
}

// AddToolInteraction appends exactly two messages: an assistant message with
// nil content carrying the call, immediately followed by the tool-result
// message referencing it. The pair is never split and never reordered.
func (c *Conversation) AddToolInteraction(call schema.ToolCall, result string) {
	c.messages.AddToolCall([]schema.ToolCall{call})
	c.messages.AddToolResult(call, result)
}

// Snapshot returns a defensive copy of the transcript for transmission.
// Later appends to the live transcript are not visible through the snapshot.
func (c *Conversation) Snapshot() schema.Messages {
	return c.messages.Clone()
}

// Len returns the number of messages in the transcript.
func (c *Conversation) Len() int { return c.messages.Len() }
