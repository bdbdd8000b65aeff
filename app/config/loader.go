package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSource      = "src"
	DefaultDestination = "build"
)

// Loader handles loading and validation of the site configuration
type Loader struct {
	path string
}

// NewLoader creates a new configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, defaults and validates the configuration file
func (l *Loader) Load() (*SiteConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config SiteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	config.resolve(filepath.Dir(l.path))

	slog.Debug("Configuration loaded", "path", l.path, "collections", len(config.Collections), "feeds", len(config.Feeds))

	return &config, nil
}

// setDefaults applies default values to configuration
func (l *Loader) setDefaults(config *SiteConfig) {
	if config.Source == "" {
		config.Source = DefaultSource
	}
	if config.Destination == "" {
		config.Destination = DefaultDestination
	}
}

// validate validates the configuration
func (l *Loader) validate(config *SiteConfig) error {
	for name, collection := range config.Collections {
		if name == "" {
			return fmt.Errorf("collection name is required")
		}
		if collection.Pattern == "" {
			return fmt.Errorf("collection %s: pattern is required", name)
		}
		if _, err := filepath.Match(collection.Pattern, ""); err != nil {
			return fmt.Errorf("collection %s: invalid pattern: %w", name, err)
		}
	}

	for i, options := range config.Feeds {
		if options.Len() == 0 {
			return fmt.Errorf("feed at index %d has no options", i)
		}
	}

	return nil
}
