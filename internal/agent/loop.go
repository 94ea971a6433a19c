// Package agent contains the conversation transcript, the tool executor, and
// the orchestrator that drives model turns to completion.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
	"github.com/Void-n-Null/MiniCouncil/internal/tools"
)

// State identifies where the orchestrator is in its turn cycle.
type State int

const (
	StateAwaitingModel State = iota
	StateProcessingToolCalls
	StateDone // terminal
)

func (s State) String() string {
	switch s {
	case StateAwaitingModel:
		return "awaiting_model"
	case StateProcessingToolCalls:
		return "processing_tool_calls"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Settings configures one conversation run.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float64
	// MaxTurns bounds the number of model round-trips. The loop itself has no
	// inherent ceiling (a model that keeps requesting tools would run
	// forever), so this guard is on by default; 0 disables it.
	MaxTurns int
}

// Orchestrator is the state machine driving one conversation: query the
// model, dispatch any requested tool calls, fold the results back into the
// transcript, repeat until the model answers without calling tools.
//
// One orchestrator processes one conversation strictly sequentially, one
// in-flight model request or tool call at a time, so the transcript needs no
// locking. Independent orchestrators with their own registries and
// conversations can run side by side.
type Orchestrator struct {
	provider schema.ModelProvider
	registry *tools.Registry
	executor *ToolExecutor
	conv     *Conversation
	settings Settings
	state    State
}

// New builds an orchestrator over an existing conversation. The caller owns
// conv and may seed it (system prompt, earlier exchanges) before running.
func New(provider schema.ModelProvider, registry *tools.Registry, conv *Conversation, settings Settings) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		registry: registry,
		executor: NewToolExecutor(registry),
		conv:     conv,
		settings: settings,
		state:    StateAwaitingModel,
	}
}

// State returns the orchestrator's current state.
func (o *Orchestrator) State() State { return o.state }

// Conversation returns the transcript the orchestrator appends to.
func (o *Orchestrator) Conversation() *Conversation { return o.conv }

// Run seeds the transcript with prompt and drives the turn cycle until the
// model produces a final answer, which is recorded and returned.
//
// Tool failures never abort the run: they are contained by the executor and
// appended as text. Transport failures from the provider are fatal for the
// turn and returned to the caller. Once done, the orchestrator is terminal:
// further Run calls fail.
func (o *Orchestrator) Run(ctx context.Context, prompt string) (string, error) {
	if o.state == StateDone {
		return "", fmt.Errorf("conversation already completed")
	}

	o.conv.AddUser(prompt)
	o.state = StateAwaitingModel

	opts := schema.NewChatOptions(o.settings.Model, o.settings.MaxTokens, o.settings.Temperature)

	for turn := 0; ; turn++ {
		if o.settings.MaxTurns > 0 && turn >= o.settings.MaxTurns {
			return "", fmt.Errorf("conversation exceeded %d turns without a final answer", o.settings.MaxTurns)
		}

		resp, err := o.provider.Chat(ctx, o.conv.Snapshot(), o.registry.Schemas(), opts)
		if err != nil {
			return "", fmt.Errorf("model request: %w", err)
		}

		if !resp.HasToolCalls() {
			content := ""
			if resp.Content != nil {
				content = *resp.Content
			}
			o.conv.AddAssistant(content)
			o.state = StateDone
			return content, nil
		}

		// Tool calls run sequentially, in the order the model listed them.
		// Later calls may depend on side effects of earlier ones, so this
		// ordering is load-bearing; never parallelise it.
		o.state = StateProcessingToolCalls
		for _, call := range resp.ToolCalls {
			result := o.executor.ExecuteCall(ctx, call)
			o.conv.AddToolInteraction(call, result)
			slog.Info("tool call",
				"tool", call.Name,
				"args", truncate(call.Arguments, 200),
				"result", truncate(result, 200),
			)
		}
		o.state = StateAwaitingModel
	}
}

// truncate clamps s for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
