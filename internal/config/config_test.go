package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.BufferType != "shm" {
		t.Fatalf("expected default buffer_type shm, got %q", cfg.BufferType)
	}
	if cfg.RetryLimit != 0 {
		t.Fatalf("expected unbounded retries by default, got %d", cfg.RetryLimit)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Path != "" {
		t.Fatalf("expected empty path for defaults, got %q", res.Path)
	}
	if res.Config.SourceType != "framebuffer" {
		t.Fatalf("expected default source_type framebuffer, got %q", res.Config.SourceType)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DRMDevice != "/dev/dri/card0" {
		t.Fatalf("expected default drm_device, got %q", res.Config.DRMDevice)
	}
}

func TestLoadFromPath_PartialFileKeepsOtherDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"buffer_type: dma",
		"retry_limit: 5",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.BufferType != "dma" {
		t.Fatalf("expected buffer_type dma, got %q", res.Config.BufferType)
	}
	if res.Config.RetryLimit != 5 {
		t.Fatalf("expected retry_limit 5, got %d", res.Config.RetryLimit)
	}
	if res.Config.SourceType != "framebuffer" {
		t.Fatalf("expected untouched source_type default, got %q", res.Config.SourceType)
	}
	if res.Path != path {
		t.Fatalf("expected path %q, got %q", path, res.Path)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("unknown_key: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown key in error, got %v", err)
	}
}

func TestLoadFromPath_InvalidValuesRejected(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		path string
	}{
		{"buffer", "buffer_type: gpu\n", "buffer_type"},
		{"source", "source_type: window\n", "source_type"},
		{"retry", "retry_limit: -1\n", "retry_limit"},
		{"level", "log_level: loud\n", "log_level"},
		{"drm", "buffer_type: dma\ndrm_device: \"\"\n", "drm_device"},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
			t.Fatalf("%s: write: %v", tc.name, err)
		}

		_, err := LoadFromPath(path)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if verr.Path != tc.path {
			t.Fatalf("%s: expected path %q, got %q", tc.name, tc.path, verr.Path)
		}
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.LogLevel = tc.in
		got, err := cfg.SlogLevel()
		if err != nil {
			t.Fatalf("SlogLevel(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SlogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	if _, err := cfg.SlogLevel(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	cfg.BufferType = "dma"
	cfg.OutputDir = "/tmp/shots"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !strings.HasPrefix(path, home) {
		t.Fatalf("expected config under %q, got %q", home, path)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.BufferType != "dma" || res.Config.OutputDir != "/tmp/shots" {
		t.Fatalf("round trip lost values: %+v", res.Config)
	}
}

func TestConfig_SaveRejectsInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.RetryLimit = -3
	if err := cfg.Save(); err == nil {
		t.Fatalf("expected save of invalid config to fail")
	}
}
