package errors

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/kbukum/svcerrors/logger"
)

// Content types produced by the builtin renderers.
const (
	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"
)

// jsonFallbackBody is returned by JSONRenderer when an error cannot be serialized.
const jsonFallbackBody = `{"code":0,"name":"INTERNAL_ERROR","message":"error response could not be serialized"}`

// Renderer turns a ServiceError into a response body and content type.
// Implementations must accept a nil error and render it as OrInternal(nil).
type Renderer interface {
	Render(e *ServiceError) (body string, contentType string)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(e *ServiceError) (string, string)

// Render calls f(e).
func (f RendererFunc) Render(e *ServiceError) (string, string) { return f(e) }

// Response is a rendered ServiceError ready to be written by a transport.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

// StatusCode maps an error status to a transport status. Values outside
// 100-999 cannot be written as a status line and map to 500.
func StatusCode(status uint16) int {
	if status < 100 || status > 999 {
		return http.StatusInternalServerError
	}
	return int(status)
}

// PlainTextRenderer is the builtin fallback renderer.
//
//	Error 1001: VALIDATION_ERROR - Invalid input (Parameters: {field: email})
type PlainTextRenderer struct{}

// Render implements Renderer.
func (PlainTextRenderer) Render(e *ServiceError) (string, string) {
	e = OrInternal(e)
	var sb strings.Builder
	sb.WriteString("Error ")
	sb.WriteString(strconv.FormatUint(uint64(e.code), 10))
	sb.WriteString(": ")
	sb.WriteString(e.name)
	sb.WriteString(" - ")
	sb.WriteString(e.formatMessage())
	if len(e.parameters) > 0 {
		sb.WriteString(" (Parameters: ")
		writeFields(&sb, e.parameters)
		sb.WriteByte(')')
	}
	return sb.String(), ContentTypeText
}

// JSONRenderer renders the serialized form of a ServiceError:
//
//	{"code":1001,"name":"VALIDATION_ERROR","message":"Invalid input","parameters":{"field":"email"}}
//
// If the error cannot be serialized, a fixed fallback envelope is returned
// instead of failing.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(e *ServiceError) (string, string) {
	e = OrInternal(e)
	body, err := json.Marshal(e)
	if err != nil {
		logger.Get(logger.ComponentErrors).Warn("failed to serialize service error", logger.Fields(
			"code", e.code,
			"name", e.name,
			logger.FieldError, err.Error(),
		))
		return jsonFallbackBody, ContentTypeJSON
	}
	return string(body), ContentTypeJSON
}

// OrInternal returns e, or a generic INTERNAL_ERROR when e is nil.
func OrInternal(e *ServiceError) *ServiceError {
	if e != nil {
		return e
	}
	return New(CodeInternal, NameInternal, http.StatusInternalServerError, "An unexpected error occurred.")
}
