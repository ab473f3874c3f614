// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewport

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings errors.
var (
	// ErrInvalidScaleFactor is returned for a non-positive or non-finite
	// scale factor override.
	ErrInvalidScaleFactor = errors.New("viewport: scale factor must be positive and finite")

	// ErrUnknownFormat is returned for settings files that are neither
	// YAML nor TOML.
	ErrUnknownFormat = errors.New("viewport: unknown settings file format")
)

// Settings configures viewport resolution.
type Settings struct {
	// ScaleFactor overrides the window-reported scale factor when non-nil.
	ScaleFactor *float64 `yaml:"scale_factor,omitempty" toml:"scale_factor,omitempty"`
}

// WithScaleFactor returns settings overriding the scale factor with s.
func WithScaleFactor(s float64) Settings {
	return Settings{ScaleFactor: &s}
}

// Validate checks the override, if any.
func (s Settings) Validate() error {
	if s.ScaleFactor == nil {
		return nil
	}
	f := *s.ScaleFactor
	if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("%w: %v", ErrInvalidScaleFactor, f)
	}
	return nil
}

// LoadSettings reads settings from a .yaml, .yml or .toml file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("viewport: read settings: %w", err)
	}
	return ParseSettings(filepath.Ext(path), data)
}

// ParseSettings decodes settings in the format named by ext (".yaml",
// ".yml" or ".toml") and validates them.
func ParseSettings(ext string, data []byte) (Settings, error) {
	var s Settings
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("viewport: decode yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("viewport: decode toml: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
