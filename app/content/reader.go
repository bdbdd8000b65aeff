package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lysyi3m/atomsmith/app/pipeline"
	"golang.org/x/text/unicode/norm"
)

// Reader loads a source tree into a file registry.
type Reader struct {
	sourceDir string
}

func NewReader(sourceDir string) *Reader {
	return &Reader{sourceDir: sourceDir}
}

// Run walks the source directory in lexical order. Text is normalized to NFC
// and front matter fields become file metadata.
func (r *Reader) Run() (*pipeline.Files, error) {
	files := pipeline.NewFiles()

	err := filepath.WalkDir(r.sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(r.sourceDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		f, err := r.readFile(path)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", rel, err)
		}
		files.Set(rel, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	slog.Debug("Source files loaded", "dir", r.sourceDir, "count", files.Len())

	return files, nil
}

func (r *Reader) readFile(path string) (*pipeline.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	data = norm.NFC.Bytes(data)

	frontmatter, body, err := split(data)
	if err != nil {
		return nil, err
	}

	fields, err := parseFields(frontmatter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	return &pipeline.File{
		Contents: body,
		Mode:     info.Mode().Perm(),
		Metadata: fields,
	}, nil
}
