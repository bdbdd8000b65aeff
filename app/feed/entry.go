package feed

import (
	"fmt"
	"strings"
	"time"
)

// LinkSource is one step of the entry link fallback chain.
type LinkSource string

const (
	// LinkFromURL uses the record's url field verbatim.
	LinkFromURL LinkSource = "url"
	// LinkFromPath prefixes the record's path field with the feed link.
	LinkFromPath LinkSource = "path"
	// LinkFromKey prefixes the record's collection key with the feed link.
	LinkFromKey LinkSource = "key"
)

var DefaultLinkPrecedence = []LinkSource{LinkFromURL, LinkFromPath, LinkFromKey}

func ParseLinkPrecedence(s string) ([]LinkSource, error) {
	var out []LinkSource
	for _, part := range strings.Split(s, ",") {
		src := LinkSource(strings.TrimSpace(part))
		switch src {
		case LinkFromURL, LinkFromPath, LinkFromKey:
			out = append(out, src)
		case "":
		default:
			return nil, fmt.Errorf("link_precedence: unknown source %q: %w", src, ErrInvalidOption)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("link_precedence: empty: %w", ErrInvalidOption)
	}
	return out, nil
}

type Deriver struct {
	ExcerptField   string
	LinkPrecedence []LinkSource
}

func NewDeriver(cfg Config) *Deriver {
	return &Deriver{
		ExcerptField:   cfg.ExcerptField,
		LinkPrecedence: cfg.LinkPrecedence,
	}
}

// Derive maps one record to entry data: title, link, summary and, when the
// record has a date, published.
func (d *Deriver) Derive(key string, record Record, feedLink string) *Mapping {
	title, _ := record.String("title")

	summary, ok := record.String(d.ExcerptField)
	if !ok {
		summary, _ = record.String("contents")
	}

	entry := NewMapping().
		Set("title", String(title)).
		Set("link", String(d.link(key, record, feedLink))).
		Set("summary", String(summary))

	if date, ok := record.Lookup("date"); ok {
		entry.Set("published", String(formatRecordDate(date)))
	}

	return entry
}

func (d *Deriver) link(key string, record Record, feedLink string) string {
	precedence := d.LinkPrecedence
	if len(precedence) == 0 {
		precedence = DefaultLinkPrecedence
	}

	for _, src := range precedence {
		switch src {
		case LinkFromURL:
			if url, ok := record.String("url"); ok {
				return url
			}
		case LinkFromPath:
			if path, ok := record.String("path"); ok {
				return feedLink + path
			}
		case LinkFromKey:
			return feedLink + key
		}
	}

	return feedLink + key
}

func formatRecordDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return FormatDate(t)
	case *time.Time:
		return FormatDate(*t)
	case DateTime:
		return t.String()
	case string:
		if parsed, ok := ParseDate(t); ok {
			return FormatDate(parsed)
		}
		return t
	default:
		return stringify(v)
	}
}
