// Package schema contains the core contracts shared across MiniCouncil
// packages. Concrete implementations live in their respective packages; this
// package is the single canonical source of truth for every shared type.
package schema

import "context"

// ParamType is the JSON-schema type tag of a declared tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
	ParamArray   ParamType = "array"
	ParamObject  ParamType = "object"
)

// Parameter is one statically declared tool parameter.
//
// A parameter is required exactly when Default is nil. A non-nil Default makes
// the parameter optional and is carried into the derived schema for
// introspection; the executor fills it in when the model omits the field.
type Parameter struct {
	Name        string
	Type        ParamType
	Description string
	Default     any
}

// Required reports whether the parameter must be present in tool arguments.
func (p Parameter) Required() bool { return p.Default == nil }

// Tool is the interface all model-callable tools must satisfy.
//
// Parameters returns the tool's declared parameter list in a stable order;
// the registry derives the wire-format schema from it once at registration.
// Execute receives arguments already validated against that declaration, with
// defaults filled in. It returns either a result value (maps are serialised to
// JSON for the transcript, everything else is stringified) or an error; a
// ToolError marks an expected domain failure, any other error is treated as a
// bug.
type Tool interface {
	Name() string
	Description() string
	Parameters() []Parameter
	Execute(ctx context.Context, args map[string]any) (any, error)
}
