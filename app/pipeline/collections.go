package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"time"

	"github.com/lysyi3m/atomsmith/app/feed"
)

type CollectionRule struct {
	Name    string
	Pattern string
	SortBy  string
	Reverse bool
}

// CollectionsStage groups files into named collections. Every rule registers
// its collection, even when nothing matches.
type CollectionsStage struct {
	rules []CollectionRule
}

func NewCollectionsStage(rules ...CollectionRule) *CollectionsStage {
	return &CollectionsStage{rules: rules}
}

func (s *CollectionsStage) Name() string {
	return "collections"
}

func (s *CollectionsStage) Run(ctx context.Context, b *Build) error {
	for _, rule := range s.rules {
		type member struct {
			path   string
			record feed.Record
		}
		var members []member

		for p, f := range b.Files.All() {
			ok, err := path.Match(rule.Pattern, filepath.ToSlash(p))
			if err != nil {
				return fmt.Errorf("collection %s: %w", rule.Name, err)
			}
			if !ok {
				continue
			}
			members = append(members, member{path: p, record: recordFor(p, f)})
		}

		if rule.SortBy != "" {
			slices.SortStableFunc(members, func(x, y member) int {
				return compareField(x.record, y.record, rule.SortBy)
			})
		}
		if rule.Reverse {
			slices.Reverse(members)
		}

		collection := feed.NewCollection()
		for _, m := range members {
			collection.Add(m.path, m.record)
		}
		b.Metadata.AddCollection(rule.Name, collection)

		slog.Debug("Collection registered", "collection", rule.Name, "records", collection.Len())
	}
	return nil
}

func recordFor(p string, f *File) feed.Record {
	record := make(feed.Record, len(f.Metadata)+2)
	for k, v := range f.Metadata {
		record[k] = v
	}
	record["contents"] = string(f.Contents)
	record["path"] = filepath.ToSlash(p)
	return record
}

// compareField orders records by field; records without it sort last.
func compareField(a, b feed.Record, field string) int {
	av, aok := a.Lookup(field)
	bv, bok := b.Lookup(field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	at, aIsTime := av.(time.Time)
	bt, bIsTime := bv.(time.Time)
	if aIsTime && bIsTime {
		return at.Compare(bt)
	}

	as, _ := a.String(field)
	bs, _ := b.String(field)
	return cmp.Compare(as, bs)
}
