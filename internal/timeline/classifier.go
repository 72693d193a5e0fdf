// Package timeline partitions artifacts into dated calendar-day groups and an
// undated bucket. Both the quality summary and the conflict detector consume
// this partition, so classification lives in its own package.
package timeline

import (
	"sort"
	"time"

	"timeline-insight/pkg/types"
)

// dayKeyFormat is the UTC calendar-day grouping key.
const dayKeyFormat = "2006-01-02"

// contentDateLayouts are tried in order when parsing a content date. Persisted
// artifacts carry full RFC 3339 stamps, bare dates, or zone-less timestamps
// depending on which summarizer version produced them.
var contentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Classification is the result of splitting entries by content date.
type Classification struct {
	// Dated groups entries by UTC calendar day.
	Dated map[string][]types.EntryRecord
	// Days lists the keys of Dated in ascending order.
	Days []string
	// Undated holds entries with no parseable content date, sorted by
	// artifact id.
	Undated []types.EntryRecord
}

// ParseContentDate parses an artifact content date. The second return value is
// false for empty or unparseable input; callers treat that as "undated" rather
// than as an error.
func ParseContentDate(iso string) (time.Time, bool) {
	if iso == "" {
		return time.Time{}, false
	}
	for _, layout := range contentDateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DayKey returns the UTC calendar day for a timestamp.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyFormat)
}

// Classify partitions entries into dated day groups and an undated bucket.
// Every entry lands in exactly one partition. Ordering is deterministic: day
// keys ascend, entries within a day sort by timestamp then artifact id, and
// undated entries sort by artifact id.
func Classify(entries []types.EntryRecord) Classification {
	c := Classification{
		Dated:   make(map[string][]types.EntryRecord),
		Undated: []types.EntryRecord{},
	}

	for _, e := range entries {
		t, ok := ParseContentDate(e.Artifact.ContentDateISO)
		if !ok {
			c.Undated = append(c.Undated, e)
			continue
		}
		c.Dated[DayKey(t)] = append(c.Dated[DayKey(t)], e)
	}

	for key := range c.Dated {
		c.Days = append(c.Days, key)
	}
	sort.Strings(c.Days)

	for _, key := range c.Days {
		group := c.Dated[key]
		sort.SliceStable(group, func(i, j int) bool {
			ti, _ := ParseContentDate(group[i].Artifact.ContentDateISO)
			tj, _ := ParseContentDate(group[j].Artifact.ContentDateISO)
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
			return group[i].Artifact.ArtifactID < group[j].Artifact.ArtifactID
		})
	}

	sort.SliceStable(c.Undated, func(i, j int) bool {
		return c.Undated[i].Artifact.ArtifactID < c.Undated[j].Artifact.ArtifactID
	})

	return c
}

// Coverage summarizes how many entries carry a usable content date. Dated is
// derived as total minus undated and clamped at zero.
func Coverage(entries []types.EntryRecord) types.CoverageSummary {
	c := Classify(entries)
	total := len(entries)
	dated := total - len(c.Undated)
	if dated < 0 {
		dated = 0
	}
	return types.CoverageSummary{
		Total:   total,
		Dated:   dated,
		Undated: len(c.Undated),
	}
}
