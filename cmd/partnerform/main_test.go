package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

func TestRun_StaticModes(t *testing.T) {
	missingEnv := filepath.Join(t.TempDir(), "missing.env")

	cases := map[string]string{
		"html": "<h1>Partner With Us</h1>",
		"text": "[ Submit Proposal ]",
	}
	for mode, want := range cases {
		t.Run(mode, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), []string{"-mode", mode, "-env", missingEnv, "-endpoint", "http://localhost:8089/api/forms/partner"}, &stdout, &stderr)
			if err != nil {
				t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
			}
			if !strings.Contains(stdout.String(), want) {
				t.Fatalf("expected %q in output:\n%s", want, stdout.String())
			}
		})
	}
}

func TestRun_WritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "form.html")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-mode", "html", "-env", filepath.Join(dir, "none"), "-output", out}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `role="form"`) || strings.Contains(string(data), "action=") {
		t.Fatalf("expected the form surface without a native action in the written file")
	}
}

func TestRun_Errors(t *testing.T) {
	env := filepath.Join(t.TempDir(), "none")
	var stdout, stderr bytes.Buffer

	if err := run(context.Background(), []string{"-mode", "gui", "-env", env}, &stdout, &stderr); err == nil {
		t.Fatalf("expected unknown mode error")
	}
	if err := run(context.Background(), []string{"-endpoint", "/relative", "-env", env}, &stdout, &stderr); err == nil {
		t.Fatalf("expected endpoint validation error")
	}
}

func TestRun_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "form.tpl"), []byte(`custom: {{ surface.Heading }}`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-mode", "html", "-env", filepath.Join(dir, "none"), "-templates", dir}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := stdout.String(); got != "custom: Partner With Us" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRun_ThemeManifestFromConfig(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "acme.yaml")
	if err := os.WriteFile(manifest, []byte("name: acme\nversion: 1.0.0\ntokens:\n  accent: \"#f97316\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	cfgPath := filepath.Join(dir, "partnerform.yaml")
	cfgDoc := "theme:\n  name: acme\n  manifest: " + manifest + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgDoc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-mode", "html", "-config", cfgPath, "-env", filepath.Join(dir, "none")}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{`data-theme="acme"`, "--partner-accent: #f97316;"} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout.String())
		}
	}
}

func TestShutdownSignals(t *testing.T) {
	want := map[os.Signal]bool{os.Interrupt: false, syscall.SIGTERM: false}
	for _, sig := range shutdownSignals {
		want[sig] = true
	}
	for sig, seen := range want {
		if !seen {
			t.Fatalf("%v should cancel the run", sig)
		}
	}
}
