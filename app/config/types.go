package config

import "github.com/lysyi3m/atomsmith/app/feed"

// SiteConfig represents a complete site build configuration
type SiteConfig struct {
	Source      string                      `yaml:"source"`
	Destination string                      `yaml:"destination"`
	Collections map[string]CollectionConfig `yaml:"collections"`
	Feeds       []feed.Mapping              `yaml:"feeds"`
}

// CollectionConfig selects source files into a named collection
type CollectionConfig struct {
	Pattern string `yaml:"pattern"`
	SortBy  string `yaml:"sort_by"`
	Reverse bool   `yaml:"reverse"`
}
