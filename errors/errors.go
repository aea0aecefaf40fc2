package errors

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ServiceError is a structured error returned to callers of a service.
type ServiceError struct {
	code       uint32
	name       string
	httpStatus uint16
	message    string
	arguments  []string
	parameters map[string]Value
	renderer   Renderer
	cause      error
}

// New creates a ServiceError. The status is not validated here; unknown
// statuses are mapped to 500 when the error is rendered.
func New(code uint32, name string, status uint16, message string) *ServiceError {
	return &ServiceError{
		code:       code,
		name:       name,
		httpStatus: status,
		message:    message,
	}
}

// Error returns the string representation of the error.
func (e *ServiceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s (%d): %s (cause: %v)", e.name, e.code, e.formatMessage(), e.cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.name, e.code, e.formatMessage())
}

// Unwrap returns the underlying cause of the error.
func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// --- builders (mutate and return the receiver) ---

// Bind appends the textual form of value to the message arguments.
// Argument i replaces the {i} placeholder of the message template.
func (e *ServiceError) Bind(value any) *ServiceError {
	if e == nil {
		return nil
	}
	e.arguments = append(e.arguments, argumentText(value))
	return e
}

// Parameter sets a single parameter. An existing key is overwritten.
func (e *ServiceError) Parameter(key string, value any) *ServiceError {
	return e.ParameterValue(key, ValueOf(value))
}

// ParameterValue sets a single prebuilt parameter value.
func (e *ServiceError) ParameterValue(key string, value Value) *ServiceError {
	if e == nil {
		return nil
	}
	if e.parameters == nil {
		e.parameters = make(map[string]Value)
	}
	e.parameters[key] = value
	return e
}

// Parameters merges params into the error parameters. Existing keys are overwritten.
func (e *ServiceError) Parameters(params map[string]any) *ServiceError {
	if e == nil {
		return nil
	}
	for k, v := range params {
		e.ParameterValue(k, ValueOf(v))
	}
	return e
}

// WithRenderer attaches a renderer used in preference to any default.
// Passing nil removes a previously attached renderer.
func (e *ServiceError) WithRenderer(r Renderer) *ServiceError {
	if e == nil {
		return nil
	}
	e.renderer = r
	return e
}

// WithCause sets the underlying cause of the error.
func (e *ServiceError) WithCause(cause error) *ServiceError {
	if e == nil {
		return nil
	}
	e.cause = cause
	return e
}

// --- getters (a nil receiver reads as the zero error) ---

// Code returns the numeric error code, or 0 for a nil error.
func (e *ServiceError) Code() uint32 {
	if e == nil {
		return 0
	}
	return e.code
}

// Name returns the symbolic error name, or "" for a nil error.
func (e *ServiceError) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// HTTPStatus returns the status as set, without mapping invalid values.
// See StatusCode for the transport status.
func (e *ServiceError) HTTPStatus() uint16 {
	if e == nil {
		return 0
	}
	return e.httpStatus
}

// Template returns the message before argument substitution.
func (e *ServiceError) Template() string {
	if e == nil {
		return ""
	}
	return e.message
}

// HasRenderer reports whether an instance renderer is attached.
func (e *ServiceError) HasRenderer() bool {
	return e != nil && e.renderer != nil
}

// Message returns the message template with bound arguments substituted.
func (e *ServiceError) Message() string {
	if e == nil {
		return ""
	}
	return e.formatMessage()
}

// Arguments returns a copy of the bound arguments.
func (e *ServiceError) Arguments() []string {
	if e == nil || len(e.arguments) == 0 {
		return nil
	}
	out := make([]string, len(e.arguments))
	copy(out, e.arguments)
	return out
}

// Params returns a deep copy of the parameters, or nil when there are none.
func (e *ServiceError) Params() map[string]Value {
	if e == nil {
		return nil
	}
	return cloneParams(e.parameters)
}

// Param returns a single parameter and whether it was set.
func (e *ServiceError) Param(key string) (Value, bool) {
	if e == nil {
		return Value{}, false
	}
	v, ok := e.parameters[key]
	return v, ok
}

// Clone returns a deep copy of the error. The renderer is never copied: a
// clone always renders through the registry default or the builtin fallback.
func (e *ServiceError) Clone() *ServiceError {
	if e == nil {
		return nil
	}
	return &ServiceError{
		code:       e.code,
		name:       e.name,
		httpStatus: e.httpStatus,
		message:    e.message,
		arguments:  e.Arguments(),
		parameters: cloneParams(e.parameters),
		cause:      e.cause,
	}
}

// formatMessage replaces each {i} placeholder with argument i. Placeholders
// without an argument are left as they are and surplus arguments are ignored.
func (e *ServiceError) formatMessage() string {
	if len(e.arguments) == 0 || !strings.Contains(e.message, "{") {
		return e.message
	}
	var sb strings.Builder
	sb.Grow(len(e.message))
	rest := e.message
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		end += open
		digits := rest[open+1 : end]
		idx, err := strconv.Atoi(digits)
		if err != nil || idx < 0 || idx >= len(e.arguments) || strconv.Itoa(idx) != digits {
			sb.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		sb.WriteString(rest[:open])
		sb.WriteString(e.arguments[idx])
		rest = rest[end+1:]
	}
	sb.WriteString(rest)
	return sb.String()
}

// --- serialization ---

// wireError is the serialized subset of a ServiceError.
type wireError struct {
	Code       uint32           `json:"code"`
	Name       string           `json:"name"`
	Message    string           `json:"message"`
	Parameters map[string]Value `json:"parameters,omitempty"`
}

// MarshalJSON encodes code, name, the formatted message and parameters.
// Status, arguments and renderer are never serialized.
func (e *ServiceError) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(e.wire())
}

// UnmarshalJSON decodes the serialized subset. The decoded error has no
// status, arguments or renderer; its message is already formatted.
func (e *ServiceError) UnmarshalJSON(data []byte) error {
	var w wireError
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = ServiceError{
		code:       w.Code,
		name:       w.Name,
		message:    w.Message,
		parameters: w.Parameters,
	}
	if len(e.parameters) == 0 {
		e.parameters = nil
	}
	return nil
}

func (e *ServiceError) wire() wireError {
	return wireError{
		Code:       e.code,
		Name:       e.name,
		Message:    e.formatMessage(),
		Parameters: e.parameters,
	}
}

func argumentText(value any) string {
	switch x := value.(type) {
	case string:
		return x
	case Value:
		return x.String()
	default:
		return fmt.Sprint(value)
	}
}

func cloneParams(in map[string]Value) map[string]Value {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]Value, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}
