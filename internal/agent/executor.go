package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
	"github.com/Void-n-Null/MiniCouncil/internal/tools"
)

// ToolExecutor runs tool calls on behalf of the orchestrator. ExecuteCall is
// the single boundary where every failure mode (malformed arguments, unknown
// tools, validation errors, domain errors, bugs) is converted into text for
// the transcript. Nothing propagates past it: the model reads the error and
// may retry or change course, and the conversation keeps going.
type ToolExecutor struct {
	registry *tools.Registry
}

func NewToolExecutor(registry *tools.Registry) *ToolExecutor {
	return &ToolExecutor{registry: registry}
}

// ExecuteCall parses, validates, and executes one tool call, returning the
// result as transcript text. Each call is attempted exactly once; there are
// no retries at this layer. It never returns an error and never panics.
func (e *ToolExecutor) ExecuteCall(ctx context.Context, call schema.ToolCall) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Unexpected error executing %s: panic: %v", call.Name, r)
		}
	}()

	var args map[string]any
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return fmt.Sprintf("Error: invalid JSON in arguments for %s", call.Name)
	}
	if args == nil {
		args = map[string]any{}
	}

	desc, err := e.registry.Get(call.Name)
	if err != nil {
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	validated, err := validateArgs(desc.Parameters(), args)
	if err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %s", call.Name, err)
	}

	out, err := desc.Tool().Execute(ctx, validated)
	if err != nil {
		var te schema.ToolError
		if errors.As(err, &te) {
			return fmt.Sprintf("Error executing %s: %s", call.Name, te.Message)
		}
		return fmt.Sprintf("Unexpected error executing %s: %v", call.Name, err)
	}
	return renderResult(out)
}

// renderResult turns a tool's return value into transcript text: structured
// maps become canonical JSON, strings pass through, anything else is
// stringified.
func renderResult(out any) string {
	switch v := out.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

// validateArgs checks parsed arguments against the declared parameters:
// every required field present, every value coercible to its declared type,
// and no unknown fields (rejected rather than ignored, for safety). Defaults
// are filled in for absent optional parameters. The returned map carries
// normalised values: integer parameters as int, not float64.
func validateArgs(params []schema.Parameter, args map[string]any) (map[string]any, error) {
	declared := make(map[string]schema.Parameter, len(params))
	for _, p := range params {
		declared[p.Name] = p
	}

	var unknown []string
	for name := range args {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown field(s): %s", strings.Join(unknown, ", "))
	}

	validated := make(map[string]any, len(params))
	var problems []string
	for _, p := range params {
		raw, present := args[p.Name]
		if !present {
			if p.Required() {
				problems = append(problems, fmt.Sprintf("missing required field %q", p.Name))
				continue
			}
			validated[p.Name] = p.Default
			continue
		}
		coerced, err := coerceValue(p.Type, raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("field %q: %s", p.Name, err))
			continue
		}
		validated[p.Name] = coerced
	}
	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}
	return validated, nil
}

// coerceValue converts a JSON-decoded value to the declared parameter type.
// encoding/json decodes every number as float64; integers are accepted only
// when the value is integral.
func coerceValue(t schema.ParamType, v any) (any, error) {
	switch t {
	case schema.ParamString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case schema.ParamInteger:
		f, ok := v.(float64)
		if !ok || f != float64(int(f)) {
			return nil, fmt.Errorf("expected integer, got %v", v)
		}
		return int(f), nil
	case schema.ParamNumber:
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", v)
		}
		return f, nil
	case schema.ParamBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", v)
		}
		return b, nil
	case schema.ParamArray:
		a, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("expected array, got %T", v)
		}
		return a, nil
	case schema.ParamObject:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected object, got %T", v)
		}
		return m, nil
	default:
		// Unknown tags derive as "string", so validate them the same way.
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	}
}
