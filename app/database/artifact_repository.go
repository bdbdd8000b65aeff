package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var _ ArtifactRepository = (*SQLArtifactRepository)(nil)

// SQLArtifactRepository handles database operations for built artifacts
type SQLArtifactRepository struct {
	db *DB
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *DB) *SQLArtifactRepository {
	return &SQLArtifactRepository{db: db}
}

// SaveArtifact inserts or replaces the artifact at its destination and
// reports whether the stored contents changed
func (r *SQLArtifactRepository) SaveArtifact(artifact Artifact) (bool, error) {
	artifact.ContentHash = ContentHash(artifact.Contents)

	existing, err := r.GetArtifact(artifact.Destination)
	if err != nil {
		return false, fmt.Errorf("failed to check existing artifact: %w", err)
	}
	changed := existing == nil || existing.ContentHash != artifact.ContentHash

	_, err = r.db.Exec(`
		INSERT INTO artifacts (destination, contents, content_hash, entry_count, built_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (destination) DO UPDATE SET
			contents = excluded.contents,
			content_hash = excluded.content_hash,
			entry_count = excluded.entry_count,
			built_at = excluded.built_at
	`, artifact.Destination, artifact.Contents, artifact.ContentHash, artifact.EntryCount,
		artifact.BuiltAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("failed to save artifact: %w", err)
	}

	return changed, nil
}

// GetArtifact retrieves an artifact by destination, nil when absent
func (r *SQLArtifactRepository) GetArtifact(destination string) (*Artifact, error) {
	row := r.db.QueryRow(`
		SELECT destination, contents, content_hash, entry_count, built_at
		FROM artifacts
		WHERE destination = ?
	`, destination)

	artifact, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}

	return artifact, nil
}

// ListArtifacts returns all artifacts ordered by destination
func (r *SQLArtifactRepository) ListArtifacts() ([]Artifact, error) {
	rows, err := r.db.Query(`
		SELECT destination, contents, content_hash, entry_count, built_at
		FROM artifacts
		ORDER BY destination
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact row: %w", err)
		}
		artifacts = append(artifacts, *artifact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artifact rows: %w", err)
	}

	return artifacts, nil
}

// GetArtifactCount returns the number of stored artifacts
func (r *SQLArtifactRepository) GetArtifactCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM artifacts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get artifact count: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(s scanner) (*Artifact, error) {
	var artifact Artifact
	var builtAt string
	err := s.Scan(&artifact.Destination, &artifact.Contents, &artifact.ContentHash,
		&artifact.EntryCount, &builtAt)
	if err != nil {
		return nil, err
	}

	artifact.BuiltAt, err = time.Parse(time.RFC3339Nano, builtAt)
	if err != nil {
		return nil, fmt.Errorf("invalid built_at %q: %w", builtAt, err)
	}

	return &artifact, nil
}

func ContentHash(contents string) string {
	hash := sha256.Sum256([]byte(contents))
	return hex.EncodeToString(hash[:])
}
