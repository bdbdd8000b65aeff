package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Build struct {
	Metadata *Metadata
	Files    *Files
	Feeds    []FeedResult
}

// FeedResult describes one feed written during the build.
type FeedResult struct {
	Destination string
	Entries     int
}

type Stage interface {
	Name() string
	Run(ctx context.Context, b *Build) error
}

type Pipeline struct {
	stages []Stage
}

func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes the stages in order over files and stops at the first error.
func (p *Pipeline) Run(ctx context.Context, files *Files) (*Build, error) {
	b := &Build{Metadata: NewMetadata(), Files: files}

	for _, st := range p.stages {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("stage %s canceled: %w", st.Name(), ctx.Err())
		default:
		}

		t0 := time.Now()
		if err := st.Run(ctx, b); err != nil {
			slog.Error("Stage failed", "stage", st.Name(), "error", err)
			return nil, fmt.Errorf("stage %s: %w", st.Name(), err)
		}

		slog.Debug("Stage completed", "stage", st.Name(), "files", b.Files.Len(), "duration", time.Since(t0))
	}

	return b, nil
}
