package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" || !cfg.Debug {
			t.Errorf("expected development with debug, got %q debug=%v", cfg.Environment, cfg.Debug)
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name 'svc', got %q", cfg.Logging.ServiceName)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
		}
		if cfg.Errors.Renderer != "text" {
			t.Errorf("expected renderer 'text', got %q", cfg.Errors.Renderer)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production", Errors: ErrorsConfig{Renderer: "json"}}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Errors.Renderer != "json" {
			t.Errorf("expected configured renderer to be kept, got %q", cfg.Errors.Renderer)
		}
	})
}

func TestErrorsConfigRendererName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "text"},
		{"upper case", "JSON", "json"},
		{"padded", "  Problem ", "problem"},
		{"exact", "yaml", "yaml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ErrorsConfig{Renderer: tc.in}
			cfg.ApplyDefaults()
			if cfg.Renderer != tc.want {
				t.Errorf("expected %q, got %q", tc.want, cfg.Renderer)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("expected %q to validate, got %v", tc.in, err)
			}
		})
	}

	cfg := ErrorsConfig{Renderer: "XML"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected an unknown renderer to be rejected")
	}
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"bad environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"bad logging", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
		{"bad renderer", func(c *ServiceConfig) { c.Errors.Renderer = "xml" }, "errors.renderer must be one of"},
		{"bad sample rate", func(c *ServiceConfig) { c.Telemetry.SampleRate = 1.5 }, "config.telemetry"},
		{"bad metric interval", func(c *ServiceConfig) { c.Telemetry.MetricInterval = -1 }, "telemetry.metric_interval"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestTelemetryConfigApplyDefaults(t *testing.T) {
	disabled := TelemetryConfig{}
	disabled.ApplyDefaults()
	if disabled != (TelemetryConfig{}) {
		t.Errorf("expected disabled telemetry to stay empty, got %+v", disabled)
	}

	enabled := TelemetryConfig{Enabled: true}
	enabled.ApplyDefaults()
	if enabled.Endpoint != "localhost:4318" || !enabled.Insecure {
		t.Errorf("unexpected endpoint defaults: %+v", enabled)
	}
	if enabled.SampleRate != 1.0 || enabled.MetricInterval != 15 {
		t.Errorf("unexpected sampling defaults: %+v", enabled)
	}

	custom := TelemetryConfig{Enabled: true, Endpoint: "otel:4318", SampleRate: 0.25}
	custom.ApplyDefaults()
	if custom.Insecure || custom.SampleRate != 0.25 {
		t.Errorf("expected configured values to be kept, got %+v", custom)
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: orders-api
environment: staging
logging:
  level: debug
  format: json
errors:
  renderer: problem
  problem_type_base: https://errors.example.com
`)

	var cfg ServiceConfig
	if err := LoadConfig("orders-api", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "orders-api" || cfg.Environment != "staging" {
		t.Errorf("unexpected base fields: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Errors.Renderer != "problem" || cfg.Errors.ProblemTypeBase != "https://errors.example.com" {
		t.Errorf("unexpected errors config: %+v", cfg.Errors)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: svc\nerrors:\n  renderer: yaml\n")
	t.Setenv("ERRORS_RENDERER", "json")
	t.Setenv("LOGGING_LEVEL", "warn")

	var cfg ServiceConfig
	if err := LoadConfig("svc", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Errors.Renderer != "json" {
		t.Errorf("expected env to override renderer, got %q", cfg.Errors.Renderer)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env logging level, got %q", cfg.Logging.Level)
	}
	if cfg.Name != "svc" {
		t.Errorf("expected file value for name, got %q", cfg.Name)
	}
}

func TestLoadConfigEnvPrefix(t *testing.T) {
	t.Setenv("APP_ERRORS_RENDERER", "problem")

	var cfg ServiceConfig
	if err := LoadConfig("svc", &cfg, WithEnvPrefix("APP"), WithFileSystem(&mockFS{})); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Errors.Renderer != "problem" {
		t.Errorf("expected prefixed env override, got %q", cfg.Errors.Renderer)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	const key = "SVCERRORS_TEST_VERSION"
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", key+"=1.2.3\n")

	type testConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
		Svcerrors     struct {
			Test struct {
				Version string `mapstructure:"version"`
			} `mapstructure:"test"`
		} `mapstructure:"svcerrors"`
	}

	var cfg testConfig
	if err := LoadConfig("svc", &cfg, WithEnvFile(envPath), WithConfigFile(filepath.Join(dir, "missing.yml"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Svcerrors.Test.Version != "1.2.3" {
		t.Errorf("expected value from .env file, got %q", cfg.Svcerrors.Test.Version)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	if err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
		"./config.yml":            true,
		"./.env":                  true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/my-svc/config.yml" {
		t.Errorf("expected ./cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected ./.env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("my-svc", LoaderConfig{ConfigFile: "/etc/svc.yml"})
	if explicit.ConfigFile != "/etc/svc.yml" {
		t.Errorf("expected explicit path to win, got %q", explicit.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestConfigKeys(t *testing.T) {
	type inner struct {
		Level string `mapstructure:"level"`
	}
	type Base struct {
		Name string `mapstructure:"name"`
	}
	type cfg struct {
		Base    `mapstructure:",squash"`
		Logging inner  `mapstructure:"logging"`
		Skipped string `mapstructure:"-"`
		Plain   int
		hidden  string
	}

	got := configKeys(reflect.TypeOf(&cfg{}), "")
	want := []string{"name", "logging.level", "plain"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("APP")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" || lc.EnvPrefix != "APP" {
		t.Errorf("unexpected loader config: %+v", lc)
	}
}
