package tools

import (
	"github.com/Void-n-Null/MiniCouncil/internal/schema"
)

// ParameterSchema builds the JSON-schema "parameters" object from a tool's
// declared parameter list.
//
// Each declared type tag maps straight onto its JSON-schema counterpart; a
// tag outside the known set degrades to "string" as a documented
// approximation rather than failing derivation. A parameter is required
// exactly when it has no default; a default is carried into the property for
// introspection and the parameter is left out of the required list.
//
// The output is a pure function of the declaration: deriving twice from the
// same parameter list yields byte-identical JSON.
func ParameterSchema(params []schema.Parameter) map[string]any {
	properties := make(map[string]any, len(params))
	required := make([]string, 0, len(params))

	for _, p := range params {
		prop := map[string]any{"type": string(jsonType(p.Type))}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Required() {
			required = append(required, p.Name)
		} else {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// FunctionSchema builds the complete wire-format schema advertised to the
// model for one tool.
func FunctionSchema(t schema.Tool) map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        t.Name(),
			"description": t.Description(),
			"parameters":  ParameterSchema(t.Parameters()),
		},
	}
}

// jsonType clamps a declared type tag to the supported JSON-schema set.
func jsonType(t schema.ParamType) schema.ParamType {
	switch t {
	case schema.ParamString, schema.ParamInteger, schema.ParamNumber,
		schema.ParamBoolean, schema.ParamArray, schema.ParamObject:
		return t
	default:
		return schema.ParamString
	}
}

// validateDeclaration checks a tool's static contract before registration.
// It is the derivation-time guard: a tool that declares nothing usable is a
// wiring bug and must fail before any conversation starts.
func validateDeclaration(t schema.Tool) error {
	if t == nil {
		return schema.NewConfigurationError("cannot register a nil tool")
	}
	if t.Name() == "" {
		return schema.NewConfigurationError("tool %T has no name", t)
	}
	seen := make(map[string]bool, len(t.Parameters()))
	for _, p := range t.Parameters() {
		if p.Name == "" {
			return schema.NewConfigurationError("tool %s declares an unnamed parameter", t.Name())
		}
		if seen[p.Name] {
			return schema.NewConfigurationError("tool %s declares parameter %q twice", t.Name(), p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
