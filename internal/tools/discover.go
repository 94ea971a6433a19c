package tools

import (
	"log/slog"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
	"github.com/Void-n-Null/MiniCouncil/internal/workspace"
)

// Factory constructs one tool. Factories let wiring code describe a tool set
// without instantiating anything until discovery runs.
type Factory func() (schema.Tool, error)

// Discover registers every tool produced by factories. An individual factory
// or registration failure is logged and skipped; partial success is fine and
// discovery never aborts the process. It returns the number of tools
// registered.
//
// Explicit Register calls remain the primary wiring path; Discover is a
// convenience layered on top for bulk setup.
func (r *Registry) Discover(factories []Factory) int {
	registered := 0
	for _, factory := range factories {
		t, err := factory()
		if err != nil {
			slog.Warn("tool construction failed, skipping", "err", err)
			continue
		}
		if err := r.Register(t); err != nil {
			name := "<nil>"
			if t != nil {
				name = t.Name()
			}
			slog.Warn("tool registration failed, skipping", "tool", name, "err", err)
			continue
		}
		registered++
	}
	return registered
}

// DefaultFactories returns the built-in tool set: file operations sandboxed
// by guard, plus the clock tool.
func DefaultFactories(guard *workspace.Guard) []Factory {
	return []Factory{
		func() (schema.Tool, error) { return NewReadFileTool(guard), nil },
		func() (schema.Tool, error) { return NewWriteFileTool(guard), nil },
		func() (schema.Tool, error) { return NewListDirTool(guard), nil },
		func() (schema.Tool, error) { return NewFileSizeTool(guard), nil },
		func() (schema.Tool, error) { return NewCurrentTimeTool(), nil },
	}
}
