package storage

import (
	"context"
	"sort"

	"timeline-insight/pkg/types"
)

// MemoryStore serves a fixed entry list from memory. Used in tests and by the
// API layer when the caller already holds the collection.
type MemoryStore struct {
	entries []types.EntryRecord
}

// NewMemoryStore copies the given entries into a store sorted by entry key.
func NewMemoryStore(entries []types.EntryRecord) *MemoryStore {
	copied := make([]types.EntryRecord, len(entries))
	copy(copied, entries)
	sort.Slice(copied, func(i, j int) bool {
		return copied[i].EntryKey < copied[j].EntryKey
	})
	return &MemoryStore{entries: copied}
}

// List returns a copy of the entries so callers cannot mutate the store.
func (s *MemoryStore) List(ctx context.Context) ([]types.EntryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]types.EntryRecord, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// GetByID returns the entry with the given artifact id, or nil.
func (s *MemoryStore) GetByID(ctx context.Context, artifactID string) (*types.EntryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range s.entries {
		if s.entries[i].Artifact.ArtifactID == artifactID {
			entry := s.entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}
