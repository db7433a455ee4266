// Package config loads the toolbridge server configuration from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the declarative startup configuration for the serve command.
type Config struct {
	// Listen is the host:port the websocket server binds to.
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Tools controls the builtin tool set.
	Tools ToolsConfig `yaml:"tools"`

	// Resources are registered on the server at startup.
	Resources []ResourceConfig `yaml:"resources"`
}

// ToolsConfig controls which builtin tools are exposed.
type ToolsConfig struct {
	Disabled []string `yaml:"disabled,omitempty"`
}

// ResourceConfig declares one resource in the config file. When Text is set
// the resource serves that inline content; otherwise file:// URIs are read
// from disk.
type ResourceConfig struct {
	URI         string `yaml:"uri"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	MIMEType    string `yaml:"mime_type,omitempty"`
	Text        string `yaml:"text,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Listen:   "localhost:3000",
		LogLevel: "info",
	}
}

// Load reads and validates a YAML config file. Fields absent from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the config for internal consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address must not be empty")
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	for i, r := range c.Resources {
		if strings.TrimSpace(r.URI) == "" {
			return fmt.Errorf("resource %d: uri must not be empty", i)
		}
	}

	return nil
}

// SlogLevel returns the configured log level as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}

	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
