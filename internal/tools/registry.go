// Package tools defines the tool registry, wire-schema derivation, and the
// built-in tools available to the agent.
package tools

import (
	"errors"
	"fmt"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
)

// ErrToolNotFound is returned by Get for names with no registered tool.
var ErrToolNotFound = errors.New("tool not found")

// Descriptor is the registry's record of one tool: the tool itself, its
// declared parameters, and the wire-format schema derived once at
// registration. Descriptors are immutable after creation.
type Descriptor struct {
	name        string
	description string
	params      []schema.Parameter
	fnSchema    map[string]any
	tool        schema.Tool
}

func (d *Descriptor) Name() string                   { return d.name }
func (d *Descriptor) Description() string            { return d.description }
func (d *Descriptor) Parameters() []schema.Parameter { return d.params }
func (d *Descriptor) Tool() schema.Tool              { return d.tool }

// Schema returns the cached wire-format schema. Callers must treat it as
// read-only.
func (d *Descriptor) Schema() map[string]any { return d.fnSchema }

// Registry owns the name → tool mapping for one agent instance. It is built
// during wiring and passed explicitly to the orchestrator; there is no
// process-wide registry, so isolated conversations can run side by side.
//
// Registry is not safe for concurrent mutation; register everything up front.
type Registry struct {
	tools map[string]*Descriptor
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Descriptor)}
}

// Register validates t's declaration, derives its schema, and inserts it
// under its public name. Registering a second tool under an existing name
// overwrites the first (last registration wins, never an error); the entry
// keeps its original position in registration order.
func (r *Registry) Register(t schema.Tool) error {
	if err := validateDeclaration(t); err != nil {
		return err
	}
	name := t.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = &Descriptor{
		name:        name,
		description: t.Description(),
		params:      t.Parameters(),
		fnSchema:    FunctionSchema(t),
		tool:        t,
	}
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (*Descriptor, error) {
	d, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	return d, nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Schemas returns the wire-format schema of every registered tool, in
// registration order. This is what gets advertised to the model each turn.
func (r *Registry) Schemas() []map[string]any {
	out := make([]map[string]any, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].fnSchema)
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }
