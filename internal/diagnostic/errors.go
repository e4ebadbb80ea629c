package diagnostic

import (
	"errors"
	"strings"
)

// Diagnostic codes.
const (
	CodeConfigMissing      = "config_missing"
	CodeConfigInvalid      = "config_invalid"
	CodeUnknownContext     = "unknown_context"
	CodeDuplicateUID       = "duplicate_uid"
	CodeEmptyDocument      = "empty_document"
	CodeUnmappedDatasource = "unmapped_datasource"
	CodeMalformedContext   = "malformed_context"
	CodeRefIDExhausted     = "refid_exhausted"
	CodeUIDExhausted       = "uid_exhausted"
	CodeDecode             = "decode"
	CodeWrite              = "write"
	CodeMultiColumn        = "multi_column_layout"
)

// ConfigError is a problem with the mapping configuration or the batch as
// a whole. It aborts the run before any document is processed.
type ConfigError struct {
	Code    string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	var b strings.Builder

	b.WriteString("configuration error")

	if e.Code != "" {
		b.WriteString(" [" + e.Code + "]")
	}

	b.WriteString(": " + e.Message)

	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}

	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError wrapping err, which may be nil.
func NewConfigError(code, message string, err error) *ConfigError {
	return &ConfigError{Code: code, Message: message, Err: err}
}

// TransformError aborts the conversion of one document.
type TransformError struct {
	Code        string
	Message     string
	Path        string
	Suggestions []string
	Err         error
}

func (e *TransformError) Error() string {
	var b strings.Builder

	b.WriteString("transform error")

	if e.Code != "" {
		b.WriteString(" [" + e.Code + "]")
	}

	if e.Path != "" {
		b.WriteString(" at " + e.Path)
	}

	b.WriteString(": " + e.Message)

	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(e.Suggestions, ", ") + "?)")
	}

	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}

	return b.String()
}

func (e *TransformError) Unwrap() error { return e.Err }

// NewTransformError creates a TransformError wrapping err, which may be nil.
func NewTransformError(code, message string, err error) *TransformError {
	return &TransformError{Code: code, Message: message, Err: err}
}

// IsConfig reports whether err is or wraps a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsTransform reports whether err is or wraps a TransformError.
func IsTransform(err error) bool {
	var te *TransformError
	return errors.As(err, &te)
}

// CodeOf returns the code carried by err, or "" for other errors.
func CodeOf(err error) string {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code
	}

	var te *TransformError
	if errors.As(err, &te) {
		return te.Code
	}

	return ""
}
