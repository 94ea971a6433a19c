package schema

import "fmt"

// ConfigurationError marks an invalid tool registration or schema derivation.
// It is the only error category allowed to prevent a conversation from
// starting; everything else is contained at the executor boundary.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ToolError is an expected, tool-specific failure (file not found, bad format
// argument, path outside the sandbox). Tools return it from Execute to signal
// a domain error the model can read about and recover from; any other error
// type is reported to the transcript as an unexpected failure instead.
type ToolError struct {
	Code    string
	Message string
}

func (e ToolError) Error() string { return e.Message }

// NewToolError builds a ToolError from a format string.
func NewToolError(code, format string, args ...any) ToolError {
	return ToolError{Code: code, Message: fmt.Sprintf(format, args...)}
}
