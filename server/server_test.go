package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRegistry() *errors.Registry {
	reg := errors.NewRegistry()
	reg.SetDefault(errors.JSONRenderer{})
	return reg
}

func decode(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("body is not valid JSON: %v (%s)", err, body)
	}
	return m
}

func TestRespondWithErrorUsing(t *testing.T) {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)

	RespondWithErrorUsing(c, jsonRegistry(), errors.NotFound("user", "42"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != errors.ContentTypeJSON {
		t.Errorf("expected %s, got %s", errors.ContentTypeJSON, ct)
	}
	body := decode(t, rr.Body.Bytes())
	if body["name"] != "NOT_FOUND" || body["message"] != "The requested user was not found." {
		t.Errorf("unexpected body %v", body)
	}
}

func TestRespondWithErrorUsing_PlainError(t *testing.T) {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)

	RespondWithErrorUsing(c, errors.NewRegistry(), fmt.Errorf("db down"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Body.String(), "Error 5000: INTERNAL_ERROR - ") {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "db down") {
		t.Error("the cause must not leak into the response")
	}
}

func TestRespondWithError_UsesInstanceRenderer(t *testing.T) {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)

	custom := errors.RendererFunc(func(e *errors.ServiceError) (string, string) {
		return "custom " + e.Name(), "text/x-custom"
	})
	RespondWithError(c, errors.Forbidden("").WithRenderer(custom))

	if rr.Code != http.StatusForbidden || rr.Body.String() != "custom FORBIDDEN" {
		t.Errorf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/x-custom" {
		t.Errorf("expected text/x-custom, got %s", ct)
	}
}

func TestAbortWithError(t *testing.T) {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	AbortWithError(c, nil, errors.RateLimited())
	if !c.IsAborted() {
		t.Error("expected context to be aborted")
	}
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rr.Code)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.NewRegistry(), errors.New(1001, "VALIDATION_ERROR", 9999, "Invalid input"))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected invalid status to map to 500, got %d", rr.Code)
	}
	if rr.Body.String() != "Error 1001: VALIDATION_ERROR - Invalid input" {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != errors.ContentTypeText {
		t.Errorf("expected %s, got %s", errors.ContentTypeText, ct)
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	cfg.ApplyDefaults()
	s := New(cfg, logger.NewDefault("test"), jsonRegistry())
	s.ApplyMiddleware()

	r := s.GinEngine()
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(errors.Conflict("version mismatch"))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("unexpected"))
	})
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return s
}

func serve(s *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rr
}

func TestServer_PanicRendersInternal(t *testing.T) {
	s := newTestServer(t, Config{})
	rr := serve(s, "/panic")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decode(t, rr.Body.Bytes())
	if body["name"] != errors.NameInternal {
		t.Errorf("expected %s, got %v", errors.NameInternal, body["name"])
	}
}

func TestServer_ErrorHandlerAddsRequestID(t *testing.T) {
	s := newTestServer(t, Config{})
	rr := serve(s, "/conflict")

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	id := rr.Header().Get("X-Request-Id")
	if id == "" {
		t.Fatal("expected X-Request-Id header")
	}
	body := decode(t, rr.Body.Bytes())
	params, _ := body["parameters"].(map[string]interface{})
	if params["request_id"] != id {
		t.Errorf("expected request_id %s, got %v", id, params["request_id"])
	}
}

func TestServer_PlainErrorIsInternal(t *testing.T) {
	s := newTestServer(t, Config{})
	rr := serve(s, "/plain")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t, Config{})
	rr := serve(s, "/nope")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	body := decode(t, rr.Body.Bytes())
	if body["code"] != float64(errors.CodeNotFound) {
		t.Errorf("expected code %d, got %v", errors.CodeNotFound, body["code"])
	}
}

func TestServer_RateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: 1})
	if rr := serve(s, "/ok"); rr.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rr.Code)
	}
	rr := serve(s, "/ok")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestServer_StartStop(t *testing.T) {
	s := newTestServer(t, Config{Host: "127.0.0.1", Port: 0})
	s.httpServer.Addr = "127.0.0.1:0"

	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		if err := s.Stop(ctx); err != nil {
			t.Errorf("stop: %v", err)
		}
	}()

	resp, err := http.Get("http://" + s.Addr() + "/nope")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d (%s)", resp.StatusCode, data)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.ReadTimeout != 15 || cfg.IdleTimeout != 60 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []Config{{Port: 70000}, {ReadTimeout: -1}, {WriteTimeout: -1}, {IdleTimeout: -1}, {RateLimit: -1}} {
		if err := bad.Validate(); err == nil {
			t.Errorf("expected error for %+v", bad)
		}
	}
}
