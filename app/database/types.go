package database

import (
	"time"
)

// Artifact is a rendered feed as stored after a build
type Artifact struct {
	Destination string
	Contents    string
	ContentHash string // sha256 of Contents
	EntryCount  int
	BuiltAt     time.Time
}
