package pipeline

import (
	"io/fs"
	"iter"

	"github.com/lysyi3m/atomsmith/app/feed"
)

const DefaultMode fs.FileMode = 0644

type File struct {
	Path     string
	Contents []byte
	Mode     fs.FileMode
	Metadata feed.Record
}

// Files is the output registry, ordered by first insertion.
type Files struct {
	paths []string
	files map[string]*File
}

func NewFiles() *Files {
	return &Files{files: make(map[string]*File)}
}

// Set inserts f at path or overwrites the existing entry in place.
func (r *Files) Set(path string, f *File) {
	if _, ok := r.files[path]; !ok {
		r.paths = append(r.paths, path)
	}
	f.Path = path
	r.files[path] = f
}

func (r *Files) Get(path string) (*File, bool) {
	f, ok := r.files[path]
	return f, ok
}

func (r *Files) Delete(path string) {
	if _, ok := r.files[path]; !ok {
		return
	}
	delete(r.files, path)
	for i, p := range r.paths {
		if p == path {
			r.paths = append(r.paths[:i], r.paths[i+1:]...)
			break
		}
	}
}

// Rename moves the entry at from to to, keeping its position.
func (r *Files) Rename(from, to string) {
	f, ok := r.files[from]
	if !ok || from == to {
		return
	}
	if _, exists := r.files[to]; exists {
		r.Delete(to)
	}
	delete(r.files, from)
	for i, p := range r.paths {
		if p == from {
			r.paths[i] = to
			break
		}
	}
	f.Path = to
	r.files[to] = f
}

func (r *Files) Len() int {
	return len(r.paths)
}

func (r *Files) Paths() []string {
	return append([]string(nil), r.paths...)
}

func (r *Files) All() iter.Seq2[string, *File] {
	return func(yield func(string, *File) bool) {
		for _, p := range r.Paths() {
			if !yield(p, r.files[p]) {
				return
			}
		}
	}
}
