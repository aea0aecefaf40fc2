package errors

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/kbukum/svcerrors/logger"
)

func TestPlainTextRenderer_NoParameters(t *testing.T) {
	body, contentType := PlainTextRenderer{}.Render(New(1001, "VALIDATION_ERROR", 400, "Invalid input"))
	if body != "Error 1001: VALIDATION_ERROR - Invalid input" {
		t.Errorf("unexpected body %q", body)
	}
	if contentType != ContentTypeText {
		t.Errorf("expected %s, got %s", ContentTypeText, contentType)
	}
}

func TestPlainTextRenderer_WithParameters(t *testing.T) {
	e := New(1001, "VALIDATION_ERROR", 400, "Invalid input for field {0}").
		Bind("email").
		Parameter("field", "email").
		Parameter("attempts", 3).
		Parameter("hints", []string{"a", "b"})

	body, _ := PlainTextRenderer{}.Render(e)
	want := "Error 1001: VALIDATION_ERROR - Invalid input for field email (Parameters: {attempts: 3, field: email, hints: [a, b]})"
	if body != want {
		t.Errorf("expected %q, got %q", want, body)
	}
}

func TestJSONRenderer_Success(t *testing.T) {
	e := New(3001, "NOT_FOUND", 404, "The requested {0} was not found.").
		Bind("user").
		Parameter("id", 42)

	body, contentType := JSONRenderer{}.Render(e)
	if contentType != ContentTypeJSON {
		t.Errorf("expected %s, got %s", ContentTypeJSON, contentType)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded["code"] != float64(3001) {
		t.Errorf("expected code 3001, got %v", decoded["code"])
	}
	if decoded["message"] != "The requested user was not found." {
		t.Errorf("unexpected message %v", decoded["message"])
	}
	params, ok := decoded["parameters"].(map[string]interface{})
	if !ok || params["id"] != float64(42) {
		t.Errorf("unexpected parameters %v", decoded["parameters"])
	}
	if _, ok := decoded["http_status"]; ok {
		t.Error("status must not be serialized")
	}
}

func TestJSONRenderer_FallbackOnSerializationFailure(t *testing.T) {
	prev := logger.GetGlobalLogger()
	t.Cleanup(func() { logger.SetGlobalLogger(prev) })

	var buf bytes.Buffer
	logger.SetGlobalLogger(logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf))

	e := New(5000, "INTERNAL_ERROR", 500, "bad value").Parameter("ratio", math.NaN())
	body, contentType := JSONRenderer{}.Render(e)

	if body != jsonFallbackBody {
		t.Errorf("expected fallback envelope, got %q", body)
	}
	if contentType != ContentTypeJSON {
		t.Errorf("expected %s, got %s", ContentTypeJSON, contentType)
	}
	if !json.Valid([]byte(body)) {
		t.Error("fallback envelope must be valid JSON")
	}
	if !strings.Contains(buf.String(), "failed to serialize service error") {
		t.Errorf("expected a warning to be logged, got %q", buf.String())
	}
}

func TestRenderers_NilError(t *testing.T) {
	tests := []struct {
		name        string
		renderer    Renderer
		body        string
		contentType string
	}{
		{
			name:        "plain text",
			renderer:    PlainTextRenderer{},
			body:        "Error 5000: INTERNAL_ERROR - An unexpected error occurred.",
			contentType: ContentTypeText,
		},
		{
			name:        "json",
			renderer:    JSONRenderer{},
			body:        `{"code":5000,"name":"INTERNAL_ERROR","message":"An unexpected error occurred."}`,
			contentType: ContentTypeJSON,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := tc.renderer.Render(nil)
			if body != tc.body {
				t.Errorf("expected %q, got %q", tc.body, body)
			}
			if contentType != tc.contentType {
				t.Errorf("expected %s, got %s", tc.contentType, contentType)
			}
		})
	}
}

func TestOrInternal(t *testing.T) {
	e := New(1, "X", 400, "m")
	if got := OrInternal(e); got != e {
		t.Errorf("expected the same error back, got %v", got)
	}
	got := OrInternal(nil)
	if got.Code() != CodeInternal || got.Name() != NameInternal || got.HTTPStatus() != 500 {
		t.Errorf("expected INTERNAL_ERROR 5000/500, got %d %s %d", got.Code(), got.Name(), got.HTTPStatus())
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		in   uint16
		want int
	}{
		{0, 500},
		{99, 500},
		{100, 100},
		{200, 200},
		{400, 400},
		{404, 404},
		{503, 503},
		{599, 599},
		{600, 600},
		{799, 799},
		{999, 999},
		{1000, 500},
		{9999, 500},
	}
	for _, tc := range tests {
		if got := StatusCode(tc.in); got != tc.want {
			t.Errorf("StatusCode(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestRendererFunc(t *testing.T) {
	var seen *ServiceError
	r := RendererFunc(func(e *ServiceError) (string, string) {
		seen = e
		return "custom:" + e.Name(), "application/x-custom"
	})
	e := New(1, "X", 418, "teapot")
	body, contentType := r.Render(e)
	if seen != e || body != "custom:X" || contentType != "application/x-custom" {
		t.Errorf("unexpected result %q %q", body, contentType)
	}
}
