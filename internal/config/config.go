// Package config loads optional run defaults from a YAML file.
// Command-line flags always win over file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the recognized keys of the defaults file.
type Config struct {
	OutDir   string   `yaml:"outdir"`
	BaseName string   `yaml:"basename"`
	Files    []string `yaml:"files"`
}

// Load reads the defaults file at path. A missing file is not an
// error; it yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
