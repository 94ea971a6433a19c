package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
	"github.com/Void-n-Null/MiniCouncil/internal/tools"
)

// stubTool lets tests script a tool body behind a declared contract.
type stubTool struct {
	name   string
	desc   string
	params []schema.Parameter
	fn     func(ctx context.Context, args map[string]any) (any, error)
}

func (t *stubTool) Name() string                   { return t.name }
func (t *stubTool) Description() string            { return t.desc }
func (t *stubTool) Parameters() []schema.Parameter { return t.params }
func (t *stubTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.fn(ctx, args)
}

func echoRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	r := tools.NewRegistry()
	err := r.Register(&stubTool{
		name: "echo",
		params: []schema.Parameter{
			{Name: "text", Type: schema.ParamString},
			{Name: "repeat", Type: schema.ParamInteger, Default: 1},
		},
		fn: func(_ context.Context, args map[string]any) (any, error) {
			out := ""
			for i := 0; i < args["repeat"].(int); i++ {
				out += args["text"].(string)
			}
			return out, nil
		},
	})
	require.NoError(t, err)
	return r
}

func TestExecuteCall_Success(t *testing.T) {
	e := NewToolExecutor(echoRegistry(t))

	result := e.ExecuteCall(context.Background(), schema.ToolCall{
		ID: "c1", Name: "echo", Arguments: `{"text":"hi","repeat":2}`,
	})
	assert.Equal(t, "hihi", result)
}

func TestExecuteCall_FillsDefaults(t *testing.T) {
	e := NewToolExecutor(echoRegistry(t))

	result := e.ExecuteCall(context.Background(), schema.ToolCall{
		ID: "c1", Name: "echo", Arguments: `{"text":"hi"}`,
	})
	assert.Equal(t, "hi", result)
}

func TestExecuteCall_MalformedJSON(t *testing.T) {
	e := NewToolExecutor(echoRegistry(t))

	result := e.ExecuteCall(context.Background(), schema.ToolCall{
		ID: "c1", Name: "echo", Arguments: `{"text": oops`,
	})
	assert.Equal(t, "Error: invalid JSON in arguments for echo", result)
}

func TestExecuteCall_UnknownTool(t *testing.T) {
	e := NewToolExecutor(echoRegistry(t))

	result := e.ExecuteCall(context.Background(), schema.ToolCall{
		ID: "c1", Name: "nope", Arguments: `{}`,
	})
	assert.Equal(t, `Error: unknown tool "nope"`, result)
}

func TestExecuteCall_MissingRequiredField(t *testing.T) {
	e := NewToolExecutor(echoRegistry(t))

	result := e.ExecuteCall(context.Background(), schema.ToolCall{
		ID: "c1", Name: "echo", Arguments: `{"repeat":3}`,
	})
	assert.Contains(t, result, "Error: invalid arguments for echo")
	assert.Contains(t, result, `missing required field "text"`)
}

func TestExecuteCall_UnknownFieldRejected(t *testing.T) {
	e := NewToolExecutor(echoRegistry(t))

	result := e.ExecuteCall(context.Background(), schema.ToolCall{
		ID: "c1", Name: "echo", Arguments: `{"text":"hi","bogus":true}`,
	})
	assert.Contains(t, result, "Error: invalid arguments for echo")
	assert.Contains(t, result, "unknown field(s): bogus")
}

func TestExecuteCall_TypeMismatch(t *testing.T) {
	e := NewToolExecutor(echoRegistry(t))

	result := e.ExecuteCall(context.Background(), schema.ToolCall{
		ID: "c1", Name: "echo", Arguments: `{"text":"hi","repeat":1.5}`,
	})
	assert.Contains(t, result, "Error: invalid arguments for echo")
	assert.Contains(t, result, `field "repeat"`)
}

func TestExecuteCall_DomainErrorVsUnexpected(t *testing.T) {
	r := tools.NewRegistry()
	require.NoError(t, r.Register(&stubTool{
		name: "fragile",
		fn: func(_ context.Context, _ map[string]any) (any, error) {
			return nil, schema.NewToolError("file_not_found", "file not found: missing.txt")
		},
	}))
	require.NoError(t, r.Register(&stubTool{
		name: "buggy",
		fn: func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("nil pointer somewhere")
		},
	}))
	e := NewToolExecutor(r)

	domain := e.ExecuteCall(context.Background(), schema.ToolCall{ID: "c1", Name: "fragile", Arguments: `{}`})
	unexpected := e.ExecuteCall(context.Background(), schema.ToolCall{ID: "c2", Name: "buggy", Arguments: `{}`})

	assert.Equal(t, "Error executing fragile: file not found: missing.txt", domain)
	assert.Equal(t, "Unexpected error executing buggy: nil pointer somewhere", unexpected)
	// The two categories must stay distinguishable from the transcript alone.
	assert.NotEqual(t, domain[:16], unexpected[:16])
}

func TestExecuteCall_RecoversPanics(t *testing.T) {
	r := tools.NewRegistry()
	require.NoError(t, r.Register(&stubTool{
		name: "explosive",
		fn: func(_ context.Context, _ map[string]any) (any, error) {
			panic("boom")
		},
	}))
	e := NewToolExecutor(r)

	result := e.ExecuteCall(context.Background(), schema.ToolCall{ID: "c1", Name: "explosive", Arguments: `{}`})
	assert.Equal(t, "Unexpected error executing explosive: panic: boom", result)
}

func TestExecuteCall_MapResultSerialisedAsJSON(t *testing.T) {
	r := tools.NewRegistry()
	require.NoError(t, r.Register(&stubTool{
		name: "structured",
		fn: func(_ context.Context, _ map[string]any) (any, error) {
			return map[string]any{"b": 2, "a": 1}, nil
		},
	}))
	e := NewToolExecutor(r)

	result := e.ExecuteCall(context.Background(), schema.ToolCall{ID: "c1", Name: "structured", Arguments: `{}`})
	assert.Equal(t, `{"a":1,"b":2}`, result, "maps serialise to canonical JSON")
}
