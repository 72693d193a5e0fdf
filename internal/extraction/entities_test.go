package extraction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline-insight/pkg/types"
)

func TestNormalizeEntities_LegacyShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "bare_array",
			raw:  `["Acme Corp", {"name": "Jane Doe", "type": "person"}]`,
			want: []string{"Acme Corp", "Jane Doe"},
		},
		{
			name: "structured_container",
			raw:  `{"structured": ["Acme   Corp", {"name": "Beta LLC"}]}`,
			want: []string{"Acme Corp", "Beta LLC"},
		},
		{
			name: "extracted_container",
			raw:  `{"extracted": {"entities": [{"name": "Gamma GmbH", "type": "org"}]}}`,
			want: []string{"Gamma GmbH"},
		},
		{
			name: "mixed_garbage_dropped",
			raw:  `["Acme Corp", 42, {"name": 7}, {"label": "nope"}, null, ""]`,
			want: []string{"Acme Corp"},
		},
		{
			name: "unknown_shape",
			raw:  `"just a string"`,
			want: nil,
		},
		{
			name: "empty",
			raw:  ``,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEntities(json.RawMessage(tt.raw))
			var names []string
			for _, e := range got {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestEntities_OrderAndDedup(t *testing.T) {
	a := &types.ArtifactRecord{
		ArtifactID: "a1",
		Entities:   json.RawMessage(`["Acme Corp", "Jane  Doe"]`),
		UserAnnotations: &types.UserAnnotations{
			Entities: []string{"acme corp", "Beta LLC", "  "},
		},
	}

	got := Entities(a)

	// structured first, annotation duplicates folded case-insensitively
	assert.Equal(t, []string{"Acme Corp", "Jane Doe", "Beta LLC"}, got)
}

func TestEntities_AnnotationsOnly(t *testing.T) {
	a := &types.ArtifactRecord{
		ArtifactID:      "a1",
		UserAnnotations: &types.UserAnnotations{Entities: []string{"Solo Entity"}},
	}
	assert.Equal(t, []string{"Solo Entity"}, Entities(a))
}

func TestEntities_Empty(t *testing.T) {
	a := &types.ArtifactRecord{ArtifactID: "a1"}
	assert.Empty(t, Entities(a))
}

func filterFixture() []types.EntryRecord {
	return []types.EntryRecord{
		{
			EntryKey: "e1",
			Artifact: types.ArtifactRecord{
				ArtifactID: "a1",
				Title:      "Quarterly invoices",
				Summary:    "Processing invoices for Q1.",
				Entities:   json.RawMessage(`["Acme Corp"]`),
			},
		},
		{
			EntryKey: "e2",
			Artifact: types.ArtifactRecord{
				ArtifactID: "a2",
				Title:      "Library work",
				Summary:    "Spent the week cataloging rare books.",
			},
		},
		{
			EntryKey: "e3",
			Artifact: types.ArtifactRecord{
				ArtifactID: "a3",
				Title:      "Vet visit",
				Summary:    "Took the cat to the vet.",
				Subject:    "Pet care",
			},
		},
	}
}

func TestFilterByEntity_ExactEntityMatch(t *testing.T) {
	got := FilterByEntity(filterFixture(), "acme corp")
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].Artifact.ArtifactID)
}

func TestFilterByEntity_LongQuerySubstringFallback(t *testing.T) {
	got := FilterByEntity(filterFixture(), "invoice")
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].Artifact.ArtifactID)
}

func TestFilterByEntity_ShortQueryRequiresWordBoundary(t *testing.T) {
	// "cat" appears as a whole word only in a3; a2 has it inside "cataloging"
	got := FilterByEntity(filterFixture(), "cat")
	require.Len(t, got, 1)
	assert.Equal(t, "a3", got[0].Artifact.ArtifactID)
}

func TestFilterByEntity_SearchesMetadataFields(t *testing.T) {
	entries := []types.EntryRecord{
		{
			EntryKey: "e1",
			Artifact: types.ArtifactRecord{
				ArtifactID: "a1",
				From:       "billing@acme.example",
				Subject:    "Renewal notice",
			},
		},
	}
	got := FilterByEntity(entries, "renewal")
	require.Len(t, got, 1)
}

func TestFilterByEntity_BlankQuery(t *testing.T) {
	assert.Nil(t, FilterByEntity(filterFixture(), "   "))
}

func TestFilterByEntity_NoMatch(t *testing.T) {
	assert.Empty(t, FilterByEntity(filterFixture(), "nonexistent topic"))
}
