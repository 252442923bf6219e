// Package config loads and validates the wescap configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Command line flags override
// these values.
type Config struct {
	// OutputDir is where screenshots are written. Empty means
	// XDG_PICTURES_DIR, falling back to the current directory.
	OutputDir string `yaml:"output_dir,omitempty"`
	// BufferType selects the capture buffer backend: "shm" (or "0") for
	// shared memory, "dma" (or "1") for dma-buf.
	BufferType string `yaml:"buffer_type"`
	// SourceType selects what the compositor captures: "framebuffer"
	// (or "0") for the composited frame, "writeback" (or "1") for the
	// display writeback engine.
	SourceType string `yaml:"source_type"`
	// DRMDevice is the node dma-buf captures allocate dumb buffers on.
	DRMDevice string `yaml:"drm_device"`
	// RetryLimit caps how often an unstable scene is re-captured before
	// giving up. 0 retries forever.
	RetryLimit int    `yaml:"retry_limit"`
	LogLevel   string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		BufferType: "shm",
		SourceType: "framebuffer",
		DRMDevice:  "/dev/dri/card0",
		RetryLimit: 0,
		LogLevel:   "info",
	}
}

// ValidationError reports an invalid configuration value by its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.BufferType {
	case "0", "shm", "1", "dma", "dmabuf", "dma-buf":
	default:
		return &ValidationError{Path: "buffer_type", Err: fmt.Errorf("buffer_type must be 0/shm or 1/dma")}
	}
	switch c.SourceType {
	case "0", "framebuffer", "1", "writeback":
	default:
		return &ValidationError{Path: "source_type", Err: fmt.Errorf("source_type must be 0/framebuffer or 1/writeback")}
	}
	if c.isDma() && c.DRMDevice == "" {
		return &ValidationError{Path: "drm_device", Err: fmt.Errorf("drm_device is required for dma-buf captures")}
	}
	if c.RetryLimit < 0 {
		return &ValidationError{Path: "retry_limit", Err: fmt.Errorf("retry_limit must be >= 0")}
	}
	if _, err := c.SlogLevel(); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

func (c *Config) isDma() bool {
	switch c.BufferType {
	case "1", "dma", "dmabuf", "dma-buf":
		return true
	}
	return false
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level must be one of: debug, info, warning, error")
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
