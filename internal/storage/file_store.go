package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"timeline-insight/internal/logging"
	"timeline-insight/pkg/types"
)

// storeDocument is the on-disk shape: one JSON document mapping entry keys to
// artifact records, same as the Drive-backed collection it stands in for.
type storeDocument struct {
	Entries map[string]types.ArtifactRecord `json:"entries"`
}

// FileStore reads the artifact collection from a local JSON document.
// Reads are permissive: entries that cannot be coerced into an artifact
// record are skipped with a warning, never fatal.
type FileStore struct {
	path   string
	logger logging.Logger
}

// NewFileStore creates a file store for the given document path.
func NewFileStore(path string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FileStore{
		path:   path,
		logger: logger.WithComponent("storage"),
	}
}

// List reads and decodes the whole document. Entries are sorted by entry key;
// artifacts missing an id inherit their entry key so downstream id lists stay
// usable.
func (s *FileStore) List(ctx context.Context) ([]types.EntryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact store %s: %w", s.path, err)
	}

	var doc storeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode artifact store %s: %w", s.path, err)
	}

	entries := make([]types.EntryRecord, 0, len(doc.Entries))
	for key, artifact := range doc.Entries {
		if key == "" {
			s.logger.Warn("skipping entry with empty key")
			continue
		}
		if artifact.ArtifactID == "" {
			artifact.ArtifactID = key
		}
		entries = append(entries, types.EntryRecord{EntryKey: key, Artifact: artifact})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EntryKey < entries[j].EntryKey
	})

	s.logger.Debug("loaded artifact entries", "count", len(entries), "path", s.path)
	return entries, nil
}

// GetByID scans for an artifact id. The collection is small by design, so a
// linear scan beats maintaining an index that could go stale.
func (s *FileStore) GetByID(ctx context.Context, artifactID string) (*types.EntryRecord, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Artifact.ArtifactID == artifactID {
			return &entries[i], nil
		}
	}
	return nil, nil
}
