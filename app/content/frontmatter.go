package content

import (
	"bytes"
	"errors"

	"github.com/lysyi3m/atomsmith/app/feed"
	"gopkg.in/yaml.v3"
)

var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// split separates `---` delimited YAML front matter from the body.
// Documents without front matter return the whole input as body.
func split(data []byte) (frontmatter []byte, body []byte, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(data, []byte("---\r\n")) {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(data, open) {
		return nil, data, nil
	}

	rest := data[len(open):]
	if bytes.HasPrefix(rest, open) {
		return nil, rest[len(open):], nil
	}

	closing := append(append(append([]byte{}, nl...), "---"...), nl...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		if bytes.HasSuffix(rest, append(append([]byte{}, nl...), "---"...)) {
			return rest[:len(rest)-len(nl)-3], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}

	return rest[:idx+len(nl)], rest[idx+len(closing):], nil
}

// parseFields decodes front matter into a record. Date strings become time.Time.
func parseFields(frontmatter []byte) (feed.Record, error) {
	fields := feed.Record{}
	if len(frontmatter) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = feed.Record{}
	}

	for _, key := range []string{"date", "updated"} {
		if s, ok := fields[key].(string); ok {
			if t, ok := feed.ParseDate(s); ok {
				fields[key] = t
			}
		}
	}

	return fields, nil
}
