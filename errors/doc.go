// Package errors provides structured service errors for Go services.
// It implements a ServiceError value carrying a numeric code, symbolic name,
// HTTP status, templated message and a free-form parameter tree, together
// with pluggable renderers that turn an error into a wire response.
//
// # Construction
//
//	err := errors.New(1001, "VALIDATION_ERROR", 400, "Invalid input for field {0}").
//	    Bind("email").
//	    Parameter("field", "email")
//
// # Rendering
//
// Render resolves a renderer in order: the renderer attached with
// WithRenderer, then the registry default, then the builtin plain-text
// renderer.
//
//	errors.SetDefaultRenderer(errors.JSONRenderer{}) // once, at startup
//	resp := err.Render()                             // status, content type, body
//
// Clone never copies an attached renderer.
package errors
