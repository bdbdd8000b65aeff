package config

import (
	"path/filepath"
	"sort"
)

// CollectionNames returns collection names in a stable order
func (c *SiteConfig) CollectionNames() []string {
	names := make([]string, 0, len(c.Collections))
	for name := range c.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve makes relative directories relative to the config file location
func (c *SiteConfig) resolve(baseDir string) {
	if !filepath.IsAbs(c.Source) {
		c.Source = filepath.Join(baseDir, c.Source)
	}
	if !filepath.IsAbs(c.Destination) {
		c.Destination = filepath.Join(baseDir, c.Destination)
	}
}
