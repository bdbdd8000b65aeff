package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/atomsmith/app/feed"
)

func postFiles() *Files {
	files := NewFiles()
	for i, name := range []string{"a", "b", "c"} {
		files.Set("posts/"+name+".html", &File{
			Contents: []byte("<p>" + name + "</p>"),
			Mode:     DefaultMode,
			Metadata: feed.Record{
				"title":   "Post " + name,
				"excerpt": "Excerpt " + name,
				"date":    time.Date(2024, 1, 2+i, 15, 4, 5, 0, time.UTC),
			},
		})
	}
	return files
}

func exampleOptions(limit int) *feed.Mapping {
	return feed.NewMapping().
		Set("collection", feed.String("posts")).
		Set("feed", feed.NewMapping().
			Set("title", feed.String("Example Feed")).
			Set("link", feed.String("http://example.org/")).
			Set("author", feed.NewMapping().Set("name", feed.String("John Doe")))).
		Set("limit", feed.Int(int64(limit)))
}

func TestPipelineBuildsFeed(t *testing.T) {
	feedStage, err := NewFeedStage(exampleOptions(2))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	p := New(NewCollectionsStage(CollectionRule{Name: "posts", Pattern: "posts/*.html"}), feedStage)
	b, err := p.Run(context.Background(), postFiles())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	out, ok := b.Files.Get("feed.xml")
	if !ok {
		t.Fatal("Expected feed.xml in the file registry")
	}
	if out.Mode != 0644 {
		t.Errorf("Expected mode 0644, got: %o", out.Mode)
	}
	if out.Path != "feed.xml" {
		t.Errorf("Expected path feed.xml, got: %s", out.Path)
	}

	xml := string(out.Contents)
	if n := strings.Count(xml, "<entry>"); n != 2 {
		t.Errorf("Expected 2 entries, got: %d", n)
	}
	for _, want := range []string{
		"<link>http://example.org/posts/a.html</link>",
		"<link>http://example.org/posts/b.html</link>",
		"<summary>Excerpt a</summary>",
		"<published>2024-01-02T15:04:05+00:00</published>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("Feed should contain %s", want)
		}
	}
	if strings.Contains(xml, "posts/c.html") {
		t.Error("Feed should not contain the third post")
	}

	if len(b.Feeds) != 1 || b.Feeds[0].Entries != 2 {
		t.Errorf("Unexpected feed results: %+v", b.Feeds)
	}
}

func TestPipelineWithoutCollectionsStage(t *testing.T) {
	feedStage, err := NewFeedStage(exampleOptions(20))
	if err != nil {
		t.Fatal(err)
	}

	files := postFiles()
	_, err = New(feedStage).Run(context.Background(), files)
	if !errors.Is(err, feed.ErrMissingCollections) {
		t.Fatalf("Expected ErrMissingCollections, got: %v", err)
	}
	if _, ok := files.Get("feed.xml"); ok {
		t.Error("No feed should be written on failure")
	}
}

func TestPipelineCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(NewMarkdownStage()).Run(ctx, NewFiles())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestNewFeedStageMissingOptions(t *testing.T) {
	_, err := NewFeedStage(feed.NewMapping().Set("collection", feed.String("posts")))
	if !errors.Is(err, feed.ErrMissingRequiredOption) {
		t.Errorf("Expected ErrMissingRequiredOption, got: %v", err)
	}
}

func TestFeedStageVerify(t *testing.T) {
	options := exampleOptions(3).Set("verify", feed.String("true")).Set("destination", feed.String("atom.xml"))
	feedStage, err := NewFeedStage(options)
	if err != nil {
		t.Fatal(err)
	}
	if feedStage.Name() != "feed:atom.xml" {
		t.Errorf("Unexpected stage name: %s", feedStage.Name())
	}

	b, err := New(NewCollectionsStage(CollectionRule{Name: "posts", Pattern: "posts/*"}), feedStage).Run(context.Background(), postFiles())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, ok := b.Files.Get("atom.xml"); !ok {
		t.Error("Expected atom.xml in the file registry")
	}
}

func TestFeedStageOverwritesDestination(t *testing.T) {
	files := postFiles()
	files.Set("feed.xml", &File{Contents: []byte("stale")})

	feedStage, err := NewFeedStage(exampleOptions(1))
	if err != nil {
		t.Fatal(err)
	}

	b, err := New(NewCollectionsStage(CollectionRule{Name: "posts", Pattern: "posts/*"}), feedStage).Run(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}

	out, _ := b.Files.Get("feed.xml")
	if string(out.Contents) == "stale" {
		t.Error("Expected feed.xml to be overwritten")
	}
	if b.Files.Len() != 4 {
		t.Errorf("Expected 4 files, got: %d", b.Files.Len())
	}
}
