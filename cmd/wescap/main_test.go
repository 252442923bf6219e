package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunShoot_RejectsArguments(t *testing.T) {
	if got := runShoot([]string{"extra"}); got != 2 {
		t.Errorf("runShoot with positional arg = %d, want 2", got)
	}
}

func TestRunShoot_HelpExitsZero(t *testing.T) {
	if got := runShoot([]string{"--help"}); got != 0 {
		t.Errorf("runShoot --help = %d, want 0", got)
	}
}

func TestRunShoot_RejectsUnknownBufferType(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if got := runShoot([]string{"--buffer-type", "bogus"}); got != 2 {
		t.Errorf("runShoot with bad buffer type = %d, want 2", got)
	}
}

func TestRunShoot_RejectsUnknownSourceType(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if got := runShoot([]string{"--source-type", "bogus"}); got != 2 {
		t.Errorf("runShoot with bad source type = %d, want 2", got)
	}
}

func TestRunShoot_RejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if got := runShoot([]string{"--log-level", "loud"}); got != 2 {
		t.Errorf("runShoot with bad log level = %d, want 2", got)
	}
}

func TestRunShoot_BadConfigFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("buffer_type: bogus\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := runShoot([]string{"--config", path}); got != 1 {
		t.Errorf("runShoot with invalid config file = %d, want 1", got)
	}
}

func TestRunOutputs_RejectsArguments(t *testing.T) {
	if got := runOutputs([]string{"extra"}); got != 2 {
		t.Errorf("runOutputs with positional arg = %d, want 2", got)
	}
}

func TestRunConfig_NoArgs(t *testing.T) {
	if got := runConfig(nil); got != 2 {
		t.Errorf("runConfig with no args = %d, want 2", got)
	}
}

func TestRunConfig_ValidateOK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "buffer_type: dma\ndrm_device: /dev/dri/renderD128\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if got := runConfig([]string{"validate", "--path", path}); got != 0 {
		t.Errorf("config validate = %d, want 0", got)
	}
}

func TestRunConfig_ValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source_type: sideband\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := runConfig([]string{"validate", "--path", path}); got != 1 {
		t.Errorf("config validate with bad file = %d, want 1", got)
	}
}

func TestRunConfig_PrintDefaults(t *testing.T) {
	if got := runConfig([]string{"print", "--defaults"}); got != 0 {
		t.Errorf("config print --defaults = %d, want 0", got)
	}
}

func TestRunConfig_UnknownSubcommand(t *testing.T) {
	if got := runConfig([]string{"bogus"}); got != 2 {
		t.Errorf("config bogus = %d, want 2", got)
	}
}

func TestRunMCP_NoArgs(t *testing.T) {
	if got := runMCP(nil); got != 2 {
		t.Errorf("runMCP with no args = %d, want 2", got)
	}
}

func TestRunMCP_UnknownCommand(t *testing.T) {
	if got := runMCP([]string{"bogus"}); got != 2 {
		t.Errorf("runMCP bogus = %d, want 2", got)
	}
}
