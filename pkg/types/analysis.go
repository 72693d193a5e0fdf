package types

// ConflictType classifies the dimension on which two artifacts disagree.
type ConflictType string

const (
	// ConflictTypeDate indicates two artifacts date the same event differently.
	ConflictTypeDate ConflictType = "date"
	// ConflictTypeAmount indicates differing monetary amounts for the same event.
	ConflictTypeAmount ConflictType = "amount"
	// ConflictTypeBooleanFact indicates a yes/no fact asserted both ways.
	ConflictTypeBooleanFact ConflictType = "boolean_fact"
	// ConflictTypeNamedEntity indicates disagreement about a named entity.
	ConflictTypeNamedEntity ConflictType = "named_entity"
	// ConflictTypeStatusFact indicates opposite status polarity (signed vs unsigned).
	ConflictTypeStatusFact ConflictType = "status_fact"
)

// Valid returns true if the conflict type is one the engine understands.
func (ct ConflictType) Valid() bool {
	switch ct {
	case ConflictTypeDate, ConflictTypeAmount, ConflictTypeBooleanFact, ConflictTypeNamedEntity, ConflictTypeStatusFact:
		return true
	}
	return false
}

// ConflictSeverity ranks how urgently a conflict deserves review.
type ConflictSeverity string

const (
	// SeverityHigh marks conflicts with strong evidence on both sides.
	SeverityHigh ConflictSeverity = "high"
	// SeverityMedium marks conflicts where one side is lower confidence.
	SeverityMedium ConflictSeverity = "medium"
	// SeverityLow marks weak or informational conflicts.
	SeverityLow ConflictSeverity = "low"
)

// Valid returns true if the severity is valid.
func (cs ConflictSeverity) Valid() bool {
	switch cs {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Rank returns a numeric weight for sorting, higher is more severe.
func (cs ConflictSeverity) Rank() int {
	switch cs {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ConflictSide carries the identifying and display fields for one artifact
// involved in a conflict.
type ConflictSide struct {
	ArtifactID     string `json:"artifactId"`
	Title          string `json:"title,omitempty"`
	ContentDateISO string `json:"contentDateISO,omitempty"`
	SourceLabel    string `json:"sourceLabel,omitempty"`
	Evidence       string `json:"evidence,omitempty"`
}

// ConflictDetails holds the concrete values the two sides disagree on.
type ConflictDetails struct {
	LeftValue  string `json:"leftValue,omitempty"`
	RightValue string `json:"rightValue,omitempty"`
	Evidence   string `json:"evidence,omitempty"`
}

// PotentialConflict is one detected disagreement between a pair of artifacts.
// ConflictID is a stable hash of the deduplication key, so the same pair and
// dimension always produce the same id across runs.
type PotentialConflict struct {
	ConflictID string           `json:"conflictId"`
	Type       ConflictType     `json:"type"`
	Severity   ConflictSeverity `json:"severity"`
	Summary    string           `json:"summary"`
	Artifacts  [2]ConflictSide  `json:"artifacts"`
	Details    ConflictDetails  `json:"details"`
}

// MissingInfoResult aggregates per-field gaps across a set of artifacts.
// The four lists are independent; an artifact id may appear in any subset.
type MissingInfoResult struct {
	MissingEntitiesIDs []string `json:"missingEntitiesIds"`
	MissingLocationIDs []string `json:"missingLocationIds"`
	MissingAmountIDs   []string `json:"missingAmountIds"`
	MissingDateIDs     []string `json:"missingDateIds"`
}

// CoverageSummary reports how much of the timeline carries a content date.
type CoverageSummary struct {
	Total   int `json:"total"`
	Dated   int `json:"dated"`
	Undated int `json:"undated"`
}
