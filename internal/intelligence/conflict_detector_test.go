package intelligence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline-insight/pkg/types"
)

func pair(a, b types.ArtifactRecord) []types.EntryRecord {
	return []types.EntryRecord{
		{EntryKey: "entry-" + a.ArtifactID, Artifact: a},
		{EntryKey: "entry-" + b.ArtifactID, Artifact: b},
	}
}

func TestDetectConflicts_EmptyAndSingle(t *testing.T) {
	d := NewDetector()
	assert.Empty(t, d.DetectConflicts(nil))
	assert.Empty(t, d.DetectConflicts([]types.EntryRecord{
		{EntryKey: "e1", Artifact: types.ArtifactRecord{ArtifactID: "a1", Title: "Invoice meeting"}},
	}))
}

func TestDetectConflicts_DateConflict(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID:     "a1",
			Title:          "Invoice meeting follow up",
			ContentDateISO: "2024-03-01T00:00:00Z",
		},
		types.ArtifactRecord{
			ArtifactID:     "a2",
			Title:          "Invoice meeting follow up",
			ContentDateISO: "2024-03-08T00:00:00Z",
		},
	))

	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, types.ConflictTypeDate, c.Type)
	assert.Equal(t, types.SeverityHigh, c.Severity)
	assert.Equal(t, "2024-03-01T00:00:00Z", c.Details.LeftValue)
	assert.Equal(t, "2024-03-08T00:00:00Z", c.Details.RightValue)
	assert.Equal(t, "a1", c.Artifacts[0].ArtifactID)
	assert.Equal(t, "a2", c.Artifacts[1].ArtifactID)
	assert.NotEmpty(t, c.ConflictID)
}

func TestDetectConflicts_DatesBelowDivergenceThreshold(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID:     "a1",
			Title:          "Invoice meeting follow up",
			ContentDateISO: "2024-03-01T00:00:00Z",
		},
		types.ArtifactRecord{
			ArtifactID:     "a2",
			Title:          "Invoice meeting follow up",
			ContentDateISO: "2024-03-02T12:00:00Z",
		},
	))
	assert.Empty(t, conflicts, "divergence under the day threshold is not a conflict")
}

func TestDetectConflicts_AmountConflict(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID: "a1",
			Title:      "Invoice meeting follow up",
			Summary:    "Invoice meeting follow up totals $1200.",
		},
		types.ArtifactRecord{
			ArtifactID: "a2",
			Title:      "Invoice meeting follow up",
			Summary:    "Invoice meeting follow up totals $1800.",
		},
	))

	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, types.ConflictTypeAmount, c.Type)
	assert.Equal(t, types.SeverityHigh, c.Severity, "matching explicit currencies give high confidence")
	assert.Equal(t, "$1200", c.Details.LeftValue)
	assert.Equal(t, "$1800", c.Details.RightValue)
}

func TestDetectConflicts_EqualAmountsNoConflict(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID: "a1",
			Title:      "Invoice meeting follow up",
			Summary:    "Invoice meeting follow up totals $1,200.00 exactly.",
		},
		types.ArtifactRecord{
			ArtifactID: "a2",
			Title:      "Invoice meeting follow up",
			Summary:    "Invoice meeting follow up totals $1200 exactly.",
		},
	))
	assert.Empty(t, conflicts, "same numeric value in different notation is not a conflict")
}

func TestDetectConflicts_DifferentCurrenciesNoConflict(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID: "a1",
			Title:      "Invoice meeting follow up",
			Summary:    "Invoice meeting follow up totals $1200 overall.",
		},
		types.ArtifactRecord{
			ArtifactID: "a2",
			Title:      "Invoice meeting follow up",
			Summary:    "Invoice meeting follow up totals €1800 overall.",
		},
	))
	assert.Empty(t, conflicts, "different known currencies are incomparable, not conflicting")
}

func TestDetectConflicts_StatusConflict(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID: "a1",
			Title:      "Contract update",
			Summary:    "The contract document was signed.",
		},
		types.ArtifactRecord{
			ArtifactID: "a2",
			Title:      "Contract update",
			Summary:    "The contract document was not signed.",
		},
	))

	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, types.ConflictTypeStatusFact, c.Type)
	assert.Equal(t, types.SeverityMedium, c.Severity)
	assert.Equal(t, "signed", c.Details.LeftValue)
	assert.Equal(t, "not signed", c.Details.RightValue)
}

func TestDetectConflicts_SamePolarityNoStatusConflict(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID: "a1",
			Title:      "Contract update",
			Summary:    "The contract document was signed.",
		},
		types.ArtifactRecord{
			ArtifactID: "a2",
			Title:      "Contract update",
			Summary:    "The contract document was signed early.",
		},
	))
	assert.Empty(t, conflicts)
}

func TestDetectConflicts_UnrelatedArtifactsNeverCompared(t *testing.T) {
	d := NewDetector()
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID:     "a1",
			Title:          "Quarterly budget review",
			ContentDateISO: "2024-01-01T00:00:00Z",
		},
		types.ArtifactRecord{
			ArtifactID:     "a2",
			Title:          "Garden party photos",
			ContentDateISO: "2024-06-01T00:00:00Z",
		},
	))
	assert.Empty(t, conflicts, "no token overlap means the pair is skipped on every dimension")
}

func TestDetectConflicts_SimilarityJustBelowThreshold(t *testing.T) {
	d := NewDetector()
	// one shared token out of two on each side: similarity 0.5 < 0.6
	conflicts := d.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID:     "a1",
			Title:          "Budget meeting",
			ContentDateISO: "2024-01-01T00:00:00Z",
		},
		types.ArtifactRecord{
			ArtifactID:     "a2",
			Title:          "Budget overview",
			ContentDateISO: "2024-05-01T00:00:00Z",
		},
	))
	assert.Empty(t, conflicts)
}

func TestDetectConflicts_PairOrderSymmetry(t *testing.T) {
	d := NewDetector()
	a := types.ArtifactRecord{
		ArtifactID:     "a1",
		Title:          "Invoice meeting follow up",
		ContentDateISO: "2024-03-01T00:00:00Z",
	}
	b := types.ArtifactRecord{
		ArtifactID:     "a2",
		Title:          "Invoice meeting follow up",
		ContentDateISO: "2024-03-08T00:00:00Z",
	}

	forward := d.DetectConflicts(pair(a, b))
	reversed := d.DetectConflicts(pair(b, a))

	require.Len(t, forward, 1)
	require.Len(t, reversed, 1)
	assert.Equal(t, forward[0].ConflictID, reversed[0].ConflictID)
	assert.Equal(t, forward[0].Type, reversed[0].Type)
	assert.Equal(t, forward[0].Severity, reversed[0].Severity)
}

func TestDetectConflicts_Idempotent(t *testing.T) {
	d := NewDetector()
	entries := pair(
		types.ArtifactRecord{
			ArtifactID:     "a1",
			Title:          "Invoice meeting follow up",
			Summary:        "Invoice meeting follow up totals $1200.",
			ContentDateISO: "2024-03-01T00:00:00Z",
		},
		types.ArtifactRecord{
			ArtifactID:     "a2",
			Title:          "Invoice meeting follow up",
			Summary:        "Invoice meeting follow up totals $1800.",
			ContentDateISO: "2024-03-08T00:00:00Z",
		},
	)

	first := d.DetectConflicts(entries)
	second := d.DetectConflicts(entries)

	assert.Equal(t, first, second)
}

func TestDetectConflicts_DuplicateEntriesDeduplicated(t *testing.T) {
	d := NewDetector()
	a := types.ArtifactRecord{
		ArtifactID:     "a1",
		Title:          "Invoice meeting follow up",
		ContentDateISO: "2024-03-01T00:00:00Z",
	}
	b := types.ArtifactRecord{
		ArtifactID:     "a2",
		Title:          "Invoice meeting follow up",
		ContentDateISO: "2024-03-08T00:00:00Z",
	}
	entries := []types.EntryRecord{
		{EntryKey: "e1", Artifact: a},
		{EntryKey: "e2", Artifact: b},
		{EntryKey: "e3", Artifact: a},
	}

	conflicts := d.DetectConflicts(entries)
	require.Len(t, conflicts, 1, "the repeated pair must not emit twice")
}

func TestDetectConflicts_SeverityOrdering(t *testing.T) {
	d := NewDetector()
	entries := []types.EntryRecord{
		{EntryKey: "e1", Artifact: types.ArtifactRecord{
			ArtifactID: "s1",
			Title:      "Contract update",
			Summary:    "The contract document was signed.",
		}},
		{EntryKey: "e2", Artifact: types.ArtifactRecord{
			ArtifactID: "s2",
			Title:      "Contract update",
			Summary:    "The contract document was not signed.",
		}},
		{EntryKey: "e3", Artifact: types.ArtifactRecord{
			ArtifactID:     "d1",
			Title:          "Invoice meeting follow up",
			ContentDateISO: "2024-03-01T00:00:00Z",
		}},
		{EntryKey: "e4", Artifact: types.ArtifactRecord{
			ArtifactID:     "d2",
			Title:          "Invoice meeting follow up",
			ContentDateISO: "2024-03-08T00:00:00Z",
		}},
	}

	conflicts := d.DetectConflicts(entries)

	require.Len(t, conflicts, 2)
	assert.Equal(t, types.SeverityHigh, conflicts[0].Severity)
	assert.Equal(t, types.SeverityMedium, conflicts[1].Severity)
}

func TestDetectConflicts_OutputCapped(t *testing.T) {
	d := NewDetector()

	// 8 near-duplicates dated two days apart pairwise: 28 date conflicts
	entries := make([]types.EntryRecord, 0, 8)
	for i := 0; i < 8; i++ {
		entries = append(entries, types.EntryRecord{
			EntryKey: fmt.Sprintf("e%d", i),
			Artifact: types.ArtifactRecord{
				ArtifactID:     fmt.Sprintf("a%d", i),
				Title:          "Invoice meeting follow up",
				ContentDateISO: fmt.Sprintf("2024-03-%02dT00:00:00Z", 1+2*i),
			},
		})
	}

	conflicts := d.DetectConflicts(entries)
	assert.Len(t, conflicts, MaxConflicts)
}

func TestDetectConflicts_ConfigurableThresholds(t *testing.T) {
	relaxed := NewDetector(WithSimilarityThreshold(0.4))
	conflicts := relaxed.DetectConflicts(pair(
		types.ArtifactRecord{
			ArtifactID:     "a1",
			Title:          "Budget meeting",
			ContentDateISO: "2024-01-01T00:00:00Z",
		},
		types.ArtifactRecord{
			ArtifactID:     "a2",
			Title:          "Budget overview",
			ContentDateISO: "2024-05-01T00:00:00Z",
		},
	))
	require.Len(t, conflicts, 1, "lowering the gate admits the 0.5 similarity pair")
}

func TestConflictID_StableHash(t *testing.T) {
	key := dedupKey(types.ConflictTypeDate, "a1", "a2", "content_date")
	assert.Equal(t, conflictID(key), conflictID(key))
	assert.Equal(t, key, dedupKey(types.ConflictTypeDate, "a2", "a1", "content_date"),
		"pair order must not change the dedup key")
	assert.Len(t, conflictID(key), 8)
}
