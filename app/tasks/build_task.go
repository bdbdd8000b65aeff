package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/atomsmith/app/config"
	"github.com/lysyi3m/atomsmith/app/content"
	"github.com/lysyi3m/atomsmith/app/database"
	"github.com/lysyi3m/atomsmith/app/pipeline"
)

// NewPipeline assembles the stages for a site: markdown, collections, then
// one stage per configured feed. Feed options are resolved here, so an invalid
// feed fails before any file is read.
func NewPipeline(site *config.SiteConfig) (*pipeline.Pipeline, error) {
	rules := make([]pipeline.CollectionRule, 0, len(site.Collections))
	for _, name := range site.CollectionNames() {
		c := site.Collections[name]
		rules = append(rules, pipeline.CollectionRule{
			Name:    name,
			Pattern: c.Pattern,
			SortBy:  c.SortBy,
			Reverse: c.Reverse,
		})
	}

	stages := []pipeline.Stage{pipeline.NewMarkdownStage()}
	if len(rules) > 0 {
		stages = append(stages, pipeline.NewCollectionsStage(rules...))
	}

	for i := range site.Feeds {
		feedStage, err := pipeline.NewFeedStage(&site.Feeds[i])
		if err != nil {
			return nil, fmt.Errorf("feed at index %d: %w", i, err)
		}
		stages = append(stages, feedStage)
	}

	return pipeline.New(stages...), nil
}

type BuildSiteTask struct {
	Task
	site         *config.SiteConfig
	pipeline     *pipeline.Pipeline
	artifactRepo database.ArtifactRepository
}

func NewBuildSiteTask(name string, site *config.SiteConfig, p *pipeline.Pipeline, artifactRepo database.ArtifactRepository) *BuildSiteTask {
	return &BuildSiteTask{
		Task:         NewTask(TaskTypeBuildSite, name),
		site:         site,
		pipeline:     p,
		artifactRepo: artifactRepo,
	}
}

// Execute reads the source tree, runs the pipeline, writes the output and
// stores every generated feed. Nothing is written when a stage fails.
func (t *BuildSiteTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	files, err := content.NewReader(t.site.Source).Run()
	if err != nil {
		slog.Error("Task failed", "type", "BuildSite", "site", t.Site, "error", err)
		return fmt.Errorf("failed to read sources: %w", err)
	}

	build, err := t.pipeline.Run(ctx, files)
	if err != nil {
		slog.Error("Task failed", "type", "BuildSite", "site", t.Site, "error", err)
		return fmt.Errorf("build failed: %w", err)
	}

	if err := content.NewWriter(t.site.Destination).Run(build.Files); err != nil {
		return fmt.Errorf("failed to write build: %w", err)
	}

	builtAt := time.Now().UTC()
	changed := 0
	for _, result := range build.Feeds {
		f, ok := build.Files.Get(result.Destination)
		if !ok {
			continue
		}
		updated, err := t.artifactRepo.SaveArtifact(database.Artifact{
			Destination: result.Destination,
			Contents:    string(f.Contents),
			EntryCount:  result.Entries,
			BuiltAt:     builtAt,
		})
		if err != nil {
			return fmt.Errorf("failed to store %s: %w", result.Destination, err)
		}
		if updated {
			changed++
		}
	}

	slog.Info("Task completed",
		"type", "BuildSite",
		"site", t.Site,
		"files", build.Files.Len(),
		"feeds", len(build.Feeds),
		"changed_feeds", changed,
		"duration", t.GetDuration())

	return nil
}
