package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Parser reads rendered output back with gofeed, independent of our writer.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data string) (*Metadata, []Item, error) {
	parsed, err := p.gofeedParser.ParseString(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Type:        parsed.FeedType,
		Title:       parsed.Title,
		Link:        parsed.Link,
		UpdatedAt:   parsed.UpdatedParsed,
		EntryCount:  len(parsed.Items),
		ContentHash: p.generateContentHash(data),
	}

	if parsed.Author != nil {
		metadata.Author = strings.TrimSpace(parsed.Author.Name)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, Item{
			Title:       item.Title,
			Summary:     item.Description,
			PublishedAt: item.PublishedParsed,
		})
	}

	return metadata, items, nil
}

// Verify checks that data parses as Atom with the expected number of entries.
func (p *Parser) Verify(data string, entries int) (*Metadata, error) {
	metadata, _, err := p.Run(data)
	if err != nil {
		return nil, err
	}
	if metadata.Type != "atom" {
		return nil, fmt.Errorf("expected an atom feed, got %q", metadata.Type)
	}
	if metadata.EntryCount != entries {
		return nil, fmt.Errorf("expected %d entries, parsed %d", entries, metadata.EntryCount)
	}
	return metadata, nil
}

func (p *Parser) generateContentHash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
