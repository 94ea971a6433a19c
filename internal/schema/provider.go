package schema

import "context"

// ChatOptions configures a single model chat request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func NewChatOptions(model string, maxTokens int, temperature float64) ChatOptions {
	return ChatOptions{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// ModelResponse is the normalised response from any model provider.
// Content is nil when the response contains only tool calls.
type ModelResponse struct {
	Content      *string
	ToolCalls    []ToolCall
	FinishReason string
	Usage        map[string]int // "prompt_tokens", "completion_tokens", "total_tokens"
}

// HasToolCalls reports whether the response requests at least one tool call.
func (r ModelResponse) HasToolCalls() bool { return len(r.ToolCalls) > 0 }

// ModelProvider is the interface every model backend must satisfy.
//
// Chat is a single blocking request/response exchange: the full transcript and
// the advertised tool schemas go out, one normalised response comes back.
// Transport failures are returned as errors and are never converted into
// transcript text.
type ModelProvider interface {
	Chat(ctx context.Context, messages Messages, tools []map[string]any, opts ChatOptions) (ModelResponse, error)
	DefaultModel() string
}
