package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lysyi3m/atomsmith/app/config"
	"github.com/lysyi3m/atomsmith/app/database"
	"github.com/lysyi3m/atomsmith/app/feed"
)

func writeSite(t *testing.T, siteYAML string) *config.SiteConfig {
	t.Helper()
	dir := t.TempDir()

	posts := map[string]string{
		"a": "---\ntitle: Post A\ndate: 2024-01-02T15:04:05Z\nexcerpt: Excerpt A\n---\nBody A\n",
		"b": "---\ntitle: Post B\ndate: 2024-01-03T15:04:05Z\nexcerpt: Excerpt B\n---\nBody B\n",
		"c": "---\ntitle: Post C\ndate: 2024-01-04T15:04:05Z\nexcerpt: Excerpt C\n---\nBody C\n",
	}
	if err := os.MkdirAll(filepath.Join(dir, "src", "posts"), 0755); err != nil {
		t.Fatal(err)
	}
	for name, body := range posts {
		if err := os.WriteFile(filepath.Join(dir, "src", "posts", name+".md"), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(dir, "site.yml")
	if err := os.WriteFile(path, []byte(siteYAML), 0644); err != nil {
		t.Fatal(err)
	}

	site, err := config.NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Failed to load site config: %v", err)
	}
	return site
}

func openTestRepo(t *testing.T) *database.SQLArtifactRepository {
	t.Helper()
	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatal(err)
	}
	return database.NewArtifactRepository(db)
}

const exampleSite = `
collections:
  posts:
    pattern: "posts/*.html"
feeds:
  - collection: posts
    limit: 2
    verify: true
    feed:
      title: Example Feed
      link: http://example.org/
      author:
        name: John Doe
`

func TestBuildSiteTask(t *testing.T) {
	site := writeSite(t, exampleSite)
	repo := openTestRepo(t)

	p, err := NewPipeline(site)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	task := NewBuildSiteTask("example", site, p, repo)
	task.Start()
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(site.Destination, "feed.xml"))
	if err != nil {
		t.Fatalf("Expected feed.xml in the build directory: %v", err)
	}
	xml := string(data)

	if n := strings.Count(xml, "<entry>"); n != 2 {
		t.Errorf("Expected 2 entries, got %d", n)
	}
	if !strings.Contains(xml, "<link>http://example.org/posts/a.html</link>") {
		t.Error("Expected link for posts/a.html")
	}
	if !strings.Contains(xml, "<link>http://example.org/posts/b.html</link>") {
		t.Error("Expected link for posts/b.html")
	}
	if strings.Contains(xml, "posts/c.html") {
		t.Error("Third post should be beyond the limit")
	}
	if !strings.Contains(xml, "<published>2024-01-02T15:04:05+00:00</published>") {
		t.Error("Expected published date for post A")
	}

	if _, err := os.Stat(filepath.Join(site.Destination, "posts", "a.html")); err != nil {
		t.Errorf("Expected rendered post: %v", err)
	}

	artifact, err := repo.GetArtifact("feed.xml")
	if err != nil {
		t.Fatal(err)
	}
	if artifact == nil || artifact.Contents != xml || artifact.EntryCount != 2 {
		t.Errorf("Unexpected stored artifact: %+v", artifact)
	}
}

func TestBuildSiteTaskIdempotent(t *testing.T) {
	site := writeSite(t, exampleSite)
	repo := openTestRepo(t)

	p, err := NewPipeline(site)
	if err != nil {
		t.Fatal(err)
	}

	var outputs []string
	for i := 0; i < 2; i++ {
		if err := NewBuildSiteTask("example", site, p, repo).Execute(context.Background()); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(filepath.Join(site.Destination, "feed.xml"))
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, string(data))
	}

	if outputs[0] != outputs[1] {
		t.Error("Repeated builds should produce byte-identical feeds")
	}
}

func TestBuildSiteTaskWithoutCollections(t *testing.T) {
	site := writeSite(t, `
feeds:
  - collection: posts
    feed:
      title: Example Feed
`)

	p, err := NewPipeline(site)
	if err != nil {
		t.Fatal(err)
	}

	err = NewBuildSiteTask("example", site, p, openTestRepo(t)).Execute(context.Background())
	if !errors.Is(err, feed.ErrMissingCollections) {
		t.Fatalf("Expected ErrMissingCollections, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(site.Destination, "feed.xml")); !os.IsNotExist(err) {
		t.Error("No output should be written when the build fails")
	}
}

func TestNewPipelineInvalidFeed(t *testing.T) {
	site := writeSite(t, `
collections:
  posts:
    pattern: "posts/*"
feeds:
  - collection: posts
`)

	_, err := NewPipeline(site)
	if !errors.Is(err, feed.ErrMissingRequiredOption) {
		t.Errorf("Expected ErrMissingRequiredOption, got: %v", err)
	}
}
