// Package extraction pulls structured facts out of artifact records: named
// entities from heterogeneous persisted shapes and currency amounts from free
// text. Extraction is best-effort; malformed data is dropped, never reported.
package extraction

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"timeline-insight/pkg/types"
)

// Entity is the normalized form of one persisted entity item.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Queries at or below this rune count require a word-boundary match in the
// fallback text search. Short tokens are disproportionately likely to false
// positive as substrings ("cat" inside "cataloging").
const shortQueryBoundaryLen = 4

var (
	fold       = cases.Fold()
	whitespace = regexp.MustCompile(`\s+`)
)

// legacy container shapes for the persisted entities field
type structuredContainer struct {
	Structured []json.RawMessage `json:"structured"`
}

type extractedContainer struct {
	Extracted struct {
		Entities []json.RawMessage `json:"entities"`
	} `json:"extracted"`
}

// NormalizeEntities flattens the three legacy shapes of the persisted entities
// field into a single list. Accepted shapes are a bare array, an object with a
// "structured" array, and an object with an "extracted.entities" array. Items
// are bare strings or objects exposing a string "name"; anything else is
// dropped silently.
func NormalizeEntities(raw json.RawMessage) []Entity {
	if len(raw) == 0 {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		var sc structuredContainer
		if err := json.Unmarshal(raw, &sc); err == nil && sc.Structured != nil {
			items = sc.Structured
		} else {
			var ec extractedContainer
			if err := json.Unmarshal(raw, &ec); err == nil {
				items = ec.Extracted.Entities
			}
		}
	}

	var out []Entity
	for _, item := range items {
		if e, ok := coerceEntity(item); ok {
			out = append(out, e)
		}
	}
	return out
}

func coerceEntity(raw json.RawMessage) (Entity, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if name := normalizeSpace(s); name != "" {
			return Entity{Name: name}, true
		}
		return Entity{}, false
	}

	var obj struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if name := normalizeSpace(obj.Name); name != "" {
			return Entity{Name: name, Type: obj.Type}, true
		}
	}
	return Entity{}, false
}

// Entities returns the deduplicated entity names for one artifact: structured
// entities first, then user-annotation entities, each whitespace-normalized.
// Duplicates are folded case-insensitively, first occurrence wins.
func Entities(artifact *types.ArtifactRecord) []string {
	seen := make(map[string]struct{})
	out := []string{}

	add := func(name string) {
		name = normalizeSpace(name)
		if name == "" {
			return
		}
		key := fold.String(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}

	for _, e := range NormalizeEntities(artifact.Entities) {
		add(e.Name)
	}
	if artifact.UserAnnotations != nil {
		for _, name := range artifact.UserAnnotations.Entities {
			add(name)
		}
	}
	return out
}

// FilterByEntity returns the entries matching an entity query. Structured
// matches are tried first: a case-insensitive exact match against the
// artifact's extracted entity set. Entries without a structured hit fall back
// to a text search over summary, title, highlights, and routing metadata.
// A blank query matches nothing.
func FilterByEntity(entries []types.EntryRecord, query string) []types.EntryRecord {
	q := normalizeSpace(query)
	if q == "" {
		return nil
	}
	qFold := fold.String(q)
	qLower := strings.ToLower(q)

	var boundary *regexp.Regexp
	if len([]rune(q)) <= shortQueryBoundaryLen {
		boundary = regexp.MustCompile(`\b` + regexp.QuoteMeta(qLower) + `\b`)
	}

	var out []types.EntryRecord
	for i := range entries {
		a := &entries[i].Artifact

		matched := false
		for _, name := range Entities(a) {
			if fold.String(name) == qFold {
				matched = true
				break
			}
		}

		if !matched {
			haystack := strings.ToLower(searchHaystack(a))
			if boundary != nil {
				matched = boundary.MatchString(haystack)
			} else {
				matched = strings.Contains(haystack, qLower)
			}
		}

		if matched {
			out = append(out, entries[i])
		}
	}
	return out
}

func searchHaystack(a *types.ArtifactRecord) string {
	parts := []string{a.Summary, a.Title}
	parts = append(parts, a.Highlights...)
	parts = append(parts, a.From, a.To, a.Subject, a.DriveName)
	return strings.Join(parts, "\n")
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
