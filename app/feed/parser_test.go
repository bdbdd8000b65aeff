package feed

import (
	"strings"
	"testing"
	"time"
)

func TestParserReadsRenderedFeed(t *testing.T) {
	store := memStore{collections: map[string]*Collection{"posts": examplePosts()}}

	root, err := NewGenerator().Run(store, exampleConfig(2))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	metadata, items, err := NewParser().Run(Render(root))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Type != "atom" {
		t.Errorf("Expected atom feed, got: %s", metadata.Type)
	}
	if metadata.Title != "Example Feed" {
		t.Errorf("Expected title 'Example Feed', got: %s", metadata.Title)
	}
	if metadata.Author != "John Doe" {
		t.Errorf("Expected author 'John Doe', got: %s", metadata.Author)
	}
	if len(metadata.ContentHash) != 64 {
		t.Errorf("Expected sha256 hex hash, got: %s", metadata.ContentHash)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got: %d", len(items))
	}
	if items[0].Title != "Post A" || items[1].Title != "Post B" {
		t.Errorf("Unexpected item order: %s, %s", items[0].Title, items[1].Title)
	}
	if items[0].Summary != "Excerpt A" {
		t.Errorf("Expected summary 'Excerpt A', got: %s", items[0].Summary)
	}
	if items[0].PublishedAt == nil || !items[0].PublishedAt.Equal(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)) {
		t.Errorf("Unexpected published date: %v", items[0].PublishedAt)
	}
}

func TestParserVerify(t *testing.T) {
	root := Build("feed", NewMapping().Set("title", String("Empty")))
	out := Render(root)

	if _, err := NewParser().Verify(out, 0); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	_, err := NewParser().Verify(out, 1)
	if err == nil || !strings.Contains(err.Error(), "expected 1 entries") {
		t.Errorf("Expected entry count mismatch, got: %v", err)
	}
}

func TestParserInvalidData(t *testing.T) {
	if _, _, err := NewParser().Run("not a feed"); err == nil {
		t.Error("Expected error for invalid data")
	}
}
