package feed

// Generator assembles the feed tree from a collection and feed options.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run builds the feed root from cfg.Feed and appends one entry per selected
// record. A missing named collection yields a feed without entries; a store
// without any collections is an error.
func (g *Generator) Run(store CollectionSource, cfg Config) (Element, error) {
	if !store.HasCollections() {
		return Element{}, ErrMissingCollections
	}

	root := Build("feed", cfg.Feed)

	var feedLink string
	if link, ok := root.Child("link"); ok {
		feedLink = link.Text()
	}

	collection, _ := store.Collection(cfg.Collection)
	deriver := NewDeriver(cfg)

	entries := make([]Node, 0, max(min(cfg.Limit, collection.Len()), 0))
	for key, record := range collection.Take(cfg.Limit) {
		entries = append(entries, Build("entry", deriver.Derive(key, record, feedLink)))
	}

	return root.With(entries...), nil
}
