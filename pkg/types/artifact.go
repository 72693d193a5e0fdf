// Package types provides core data structures and type definitions for the
// timeline quality engine, including artifact records and analysis results.
package types

import "encoding/json"

// ArtifactRecord is a summarized document or email as persisted by the
// artifact store. The engine treats records as read-only input; fields beyond
// the ones enumerated here are ignored rather than rejected.
type ArtifactRecord struct {
	ArtifactID string `json:"artifactId"`
	Title      string `json:"title,omitempty"`
	Summary    string `json:"summary,omitempty"`

	// ContentDateISO is the date the artifact's content is about, not the
	// date it was ingested. Absent or unparseable means "undated".
	ContentDateISO string `json:"contentDateISO,omitempty"`

	// Entities is kept raw because persisted data carries three legacy
	// container shapes. Normalization happens in the extraction package.
	Entities json.RawMessage `json:"entities,omitempty"`

	UserAnnotations *UserAnnotations `json:"userAnnotations,omitempty"`

	Highlights []string `json:"highlights,omitempty"`

	// Display-only metadata, used for evidence snippets and entity search,
	// never for matching records to each other.
	SourceLabel string `json:"sourceLabel,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Subject     string `json:"subject,omitempty"`
	DriveName   string `json:"driveName,omitempty"`
	FileID      string `json:"fileId,omitempty"`
}

// UserAnnotations holds user-supplied overrides attached to an artifact.
type UserAnnotations struct {
	Entities []string `json:"entities,omitempty"`
	Location string   `json:"location,omitempty"`
	Amount   string   `json:"amount,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// EntryRecord pairs a storage entry key with its artifact. This is the input
// shape every analysis function consumes.
type EntryRecord struct {
	EntryKey string         `json:"entryKey"`
	Artifact ArtifactRecord `json:"artifact"`
}
