package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// rawConfig mirrors Config with pointer fields, so a partial file only
// overrides the keys it actually sets.
type rawConfig struct {
	OutputDir  *string `yaml:"output_dir"`
	BufferType *string `yaml:"buffer_type"`
	SourceType *string `yaml:"source_type"`
	DRMDevice  *string `yaml:"drm_device"`
	RetryLimit *int    `yaml:"retry_limit"`
	LogLevel   *string `yaml:"log_level"`
}

// LoadResult carries the effective config and where it came from.
type LoadResult struct {
	Config *Config
	// Path is the file the configuration was read from, empty when only
	// defaults were used.
	Path string
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "wescap", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// is not an error; defaults apply.
func Load() (*Config, error) {
	res, err := LoadWithSource()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSource loads config and reports which file supplied it.
func LoadWithSource() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path, applying
// defaults for keys the file leaves unset.
func LoadFromPath(path string) (*LoadResult, error) {
	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &LoadResult{Config: cfg}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	var raw rawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := buildEffective(raw)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Path: path}, nil
}

func buildEffective(raw rawConfig) *Config {
	cfg := DefaultConfig()
	if raw.OutputDir != nil {
		cfg.OutputDir = *raw.OutputDir
	}
	if raw.BufferType != nil {
		cfg.BufferType = *raw.BufferType
	}
	if raw.SourceType != nil {
		cfg.SourceType = *raw.SourceType
	}
	if raw.DRMDevice != nil {
		cfg.DRMDevice = *raw.DRMDevice
	}
	if raw.RetryLimit != nil {
		cfg.RetryLimit = *raw.RetryLimit
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	return cfg
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
