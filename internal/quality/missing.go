// Package quality computes the per-field gap dashboard for a set of
// artifacts: which records are missing entities, a location, an amount, or a
// content date. Fields count as present whether user-supplied or machine
// extracted, except location, which is user-supplied only.
package quality

import (
	"sort"
	"strings"

	"timeline-insight/internal/extraction"
	"timeline-insight/internal/timeline"
	"timeline-insight/pkg/types"
)

// ComputeMissingInfo inspects every entry and aggregates artifact ids into
// four independent lists, one per field. An id may land in zero to four lists.
// Each list is sorted by id and contains an id at most once.
func ComputeMissingInfo(entries []types.EntryRecord) types.MissingInfoResult {
	result := types.MissingInfoResult{
		MissingEntitiesIDs: []string{},
		MissingLocationIDs: []string{},
		MissingAmountIDs:   []string{},
		MissingDateIDs:     []string{},
	}

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		a := &entries[i].Artifact
		if _, dup := seen[a.ArtifactID]; dup {
			continue
		}
		seen[a.ArtifactID] = struct{}{}

		if len(extraction.Entities(a)) == 0 {
			result.MissingEntitiesIDs = append(result.MissingEntitiesIDs, a.ArtifactID)
		}
		if missingLocation(a) {
			result.MissingLocationIDs = append(result.MissingLocationIDs, a.ArtifactID)
		}
		if missingAmount(a) {
			result.MissingAmountIDs = append(result.MissingAmountIDs, a.ArtifactID)
		}
		if _, ok := timeline.ParseContentDate(a.ContentDateISO); !ok {
			result.MissingDateIDs = append(result.MissingDateIDs, a.ArtifactID)
		}
	}

	sort.Strings(result.MissingEntitiesIDs)
	sort.Strings(result.MissingLocationIDs)
	sort.Strings(result.MissingAmountIDs)
	sort.Strings(result.MissingDateIDs)
	return result
}

// missingLocation reports whether the user supplied a location. There is no
// machine extraction for location: inferring places from free text is too
// unreliable to count as coverage.
func missingLocation(a *types.ArtifactRecord) bool {
	return a.UserAnnotations == nil || strings.TrimSpace(a.UserAnnotations.Location) == ""
}

// missingAmount reports whether neither the user annotation nor the currency
// pattern over title and summary yields an amount.
func missingAmount(a *types.ArtifactRecord) bool {
	if a.UserAnnotations != nil && strings.TrimSpace(a.UserAnnotations.Amount) != "" {
		return false
	}
	_, ok := extraction.ExtractAmount(a.Title + "\n" + a.Summary)
	return !ok
}
