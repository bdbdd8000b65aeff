package feed

import (
	"fmt"
	"iter"
	"strconv"
	"time"
)

// Record holds the metadata fields of one content document.
type Record map[string]any

// Lookup reports a field as present when the key exists with a non-nil value.
func (r Record) Lookup(field string) (any, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r Record) String(field string) (string, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return "", false
	}
	return stringify(v), true
}

// Collection is an ordered mapping from record path to Record.
type Collection struct {
	paths   []string
	records map[string]Record
}

func NewCollection() *Collection {
	return &Collection{records: make(map[string]Record)}
}

func (c *Collection) Add(path string, record Record) {
	if c.records == nil {
		c.records = make(map[string]Record)
	}
	if _, ok := c.records[path]; !ok {
		c.paths = append(c.paths, path)
	}
	c.records[path] = record
}

func (c *Collection) Get(path string) (Record, bool) {
	if c == nil {
		return nil, false
	}
	r, ok := c.records[path]
	return r, ok
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.paths)
}

func (c *Collection) Paths() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.paths...)
}

func (c *Collection) All() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		if c == nil {
			return
		}
		for _, p := range c.paths {
			if !yield(p, c.records[p]) {
				return
			}
		}
	}
}

// Take yields at most n records in collection order.
func (c *Collection) Take(n int) iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for p, r := range c.All() {
			if !yield(p, r) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	}
}

// CollectionSource is the read side of the pipeline metadata store.
type CollectionSource interface {
	HasCollections() bool
	Collection(name string) (*Collection, bool)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case Scalar:
		return string(t)
	case time.Time:
		return FormatDate(t)
	case DateTime:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return ""
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
