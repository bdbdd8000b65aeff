package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/atomsmith/app/feed"
)

// FeedStage renders one feed and registers it at its destination.
type FeedStage struct {
	cfg       feed.Config
	generator *feed.Generator
	parser    *feed.Parser
}

// NewFeedStage resolves options up front so a bad config fails before any stage runs.
func NewFeedStage(options *feed.Mapping) (*FeedStage, error) {
	cfg, err := feed.ResolveConfig(options)
	if err != nil {
		return nil, err
	}
	return &FeedStage{
		cfg:       cfg,
		generator: feed.NewGenerator(),
		parser:    feed.NewParser(),
	}, nil
}

func (s *FeedStage) Name() string {
	return "feed:" + s.cfg.Destination
}

func (s *FeedStage) Run(ctx context.Context, b *Build) error {
	root, err := s.generator.Run(b.Metadata, s.cfg)
	if err != nil {
		return err
	}

	entries := len(root.Elements("entry"))
	contents := feed.Render(root)

	if s.cfg.Verify {
		if _, err := s.parser.Verify(contents, entries); err != nil {
			return fmt.Errorf("verify %s: %w", s.cfg.Destination, err)
		}
	}

	b.Files.Set(s.cfg.Destination, &File{
		Contents: []byte(contents),
		Mode:     DefaultMode,
	})
	b.Feeds = append(b.Feeds, FeedResult{Destination: s.cfg.Destination, Entries: entries})

	slog.Info("Feed generated", "collection", s.cfg.Collection, "destination", s.cfg.Destination, "entries", entries)

	return nil
}
