package pipeline

import "github.com/lysyi3m/atomsmith/app/feed"

var _ feed.CollectionSource = (*Metadata)(nil)

// Metadata is the build-wide store shared between stages.
// Collections stay unset until a stage registers one.
type Metadata struct {
	collections map[string]*feed.Collection
}

func NewMetadata() *Metadata {
	return &Metadata{}
}

func (m *Metadata) AddCollection(name string, c *feed.Collection) {
	if m.collections == nil {
		m.collections = make(map[string]*feed.Collection)
	}
	m.collections[name] = c
}

func (m *Metadata) HasCollections() bool {
	return m.collections != nil
}

func (m *Metadata) Collection(name string) (*feed.Collection, bool) {
	c, ok := m.collections[name]
	return c, ok
}
