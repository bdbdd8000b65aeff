package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MarkdownStage renders .md files to HTML and renames them to .html.
type MarkdownStage struct {
	md goldmark.Markdown
}

func NewMarkdownStage() *MarkdownStage {
	return &MarkdownStage{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (s *MarkdownStage) Name() string {
	return "markdown"
}

func (s *MarkdownStage) Run(ctx context.Context, b *Build) error {
	for path, f := range b.Files.All() {
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".markdown" {
			continue
		}

		var buf bytes.Buffer
		if err := s.md.Convert(f.Contents, &buf); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		f.Contents = buf.Bytes()

		b.Files.Rename(path, strings.TrimSuffix(path, ext)+".html")
	}
	return nil
}
