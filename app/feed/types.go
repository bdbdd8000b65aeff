package feed

import (
	"time"
)

// Parsed feed types, as read back from rendered output

type Metadata struct {
	Type        string
	Title       string
	Link        string
	Author      string
	UpdatedAt   *time.Time
	EntryCount  int
	ContentHash string
}

type Item struct {
	Title       string
	Summary     string
	PublishedAt *time.Time
}
