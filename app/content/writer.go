package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lysyi3m/atomsmith/app/pipeline"
)

// Writer persists a file registry below a destination directory.
type Writer struct {
	destDir string
}

func NewWriter(destDir string) *Writer {
	return &Writer{destDir: destDir}
}

func (w *Writer) Run(files *pipeline.Files) error {
	for path, f := range files.All() {
		target := filepath.Join(w.destDir, filepath.FromSlash(path))

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}

		mode := f.Mode
		if mode == 0 {
			mode = pipeline.DefaultMode
		}
		if err := os.WriteFile(target, f.Contents, mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	slog.Debug("Build written", "dir", w.destDir, "count", files.Len())

	return nil
}
