package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{LookupEnv: noEnv})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partnerform.yaml")
	yamlDoc := `
endpoint: https://partners.example.com/api/forms/partner
log:
  level: debug
  format: json
theme:
  name: acme
  variant: dark
  tokens:
    brand: "#16a34a"
devserver:
  forced_status: 503
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := map[string]string{"PARTNERFORM_ENDPOINT": "http://localhost:8089/api/forms/partner"}
	cfg, err := Load(Options{
		Path: path,
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Endpoint = "http://localhost:8089/api/forms/partner"
	want.Log = LogConfig{Level: "debug", Format: "json"}
	want.Theme = ThemeConfig{Name: "acme", Variant: "dark", Tokens: map[string]string{"brand": "#16a34a"}}
	want.DevServer.ForcedStatus = 503
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PARTNERFORM_TEST_ENDPOINT_ONLY=1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PARTNERFORM_TEST_ENDPOINT_ONLY") })

	if _, err := Load(Options{EnvFiles: []string{envPath, filepath.Join(dir, "missing.env")}, LookupEnv: noEnv}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("PARTNERFORM_TEST_ENDPOINT_ONLY"); got != "1" {
		t.Fatalf("env file not applied, got %q", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"relative endpoint": {"PARTNERFORM_ENDPOINT": "/api/forms/partner"},
		"bad level":         {"PARTNERFORM_LOG_LEVEL": "loud"},
		"bad format":        {"PARTNERFORM_LOG_FORMAT": "xml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(Options{LookupEnv: func(key string) (string, bool) {
				v, ok := env[key]
				return v, ok
			}})
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.yaml"), LookupEnv: noEnv}); err == nil {
		t.Fatalf("expected error for missing explicit file")
	}
}

func TestConfig_NewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log = LogConfig{Level: "warn", Format: "json"}

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}
