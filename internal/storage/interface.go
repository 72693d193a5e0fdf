// Package storage provides read access to the persisted artifact collection.
// The product keeps artifacts in a single Drive-backed JSON document; the
// file store here mirrors that shape locally. The analysis engine only ever
// reads: annotation writes and ingestion happen in other services.
package storage

import (
	"context"

	"timeline-insight/pkg/types"
)

// ArtifactStore is the read-only surface the analysis layer consumes.
type ArtifactStore interface {
	// List returns every entry, sorted by entry key for determinism.
	List(ctx context.Context) ([]types.EntryRecord, error)
	// GetByID returns the entry whose artifact id matches, or nil when no
	// such artifact exists.
	GetByID(ctx context.Context, artifactID string) (*types.EntryRecord, error)
}
