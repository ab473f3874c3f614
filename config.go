// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uipass

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/uipass/backend"
	"github.com/gogpu/uipass/viewport"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigFormat is returned for config files that are neither
// YAML nor TOML.
var ErrUnknownConfigFormat = errors.New("uipass: unknown config file format")

// Config is the file form of the plugin options.
//
//	scale_factor: 1.5
//	overlay: ["uipass demo"]
//	log_level: debug
//	presenter: wgpu
type Config struct {
	// ScaleFactor overrides the window scale factor when set.
	ScaleFactor *float64 `yaml:"scale_factor,omitempty" toml:"scale_factor,omitempty"`

	// Overlay enables the debug overlay with these lines.
	Overlay []string `yaml:"overlay,omitempty" toml:"overlay,omitempty"`

	// LogLevel enables text logging to stderr at the named slog level
	// ("debug", "info", "warn", "error"). Empty keeps uipass silent.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// Presenter names a registered presenter. Empty selects the default.
	Presenter string `yaml:"presenter,omitempty" toml:"presenter,omitempty"`
}

// LoadConfig reads a config from a .yaml, .yml or .toml file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("uipass: read config: %w", err)
	}
	return ParseConfig(filepath.Ext(path), data)
}

// ParseConfig decodes a config in the format named by ext and validates it.
func ParseConfig(ext string, data []byte) (Config, error) {
	var c Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("uipass: decode yaml config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("uipass: decode toml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, ext)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the scale factor and log level.
func (c Config) Validate() error {
	if err := c.settings().Validate(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) settings() viewport.Settings {
	return viewport.Settings{ScaleFactor: c.ScaleFactor}
}

// Level returns the configured log level. An empty level parses as info.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return l, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("uipass: log_level: %w", err)
	}
	return l, nil
}

// Options converts the config to plugin options. Log output, when enabled,
// goes to w as slog text.
func (c Config) Options(w io.Writer) ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []Option{WithSettings(c.settings())}
	if len(c.Overlay) > 0 {
		opts = append(opts, WithOverlay(c.Overlay...))
	}
	if c.LogLevel != "" {
		level, _ := c.Level()
		opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))))
	}
	if c.Presenter != "" {
		p, err := backend.NewPresenter(c.Presenter)
		if err != nil {
			return nil, fmt.Errorf("uipass: %w", err)
		}
		opts = append(opts, WithPresenter(p))
	}
	return opts, nil
}
