// Package intelligence implements the cross-document fact-conflict detector.
// For every pair of artifacts that plausibly describe the same event it
// checks three independent dimensions (content date, currency amount, boolean
// status) and emits a ranked, deduplicated, capped list of conflicts. The
// detector is a pure function over its input: no I/O, no retained state, and
// the same artifacts always produce the same conflict ids.
package intelligence

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"timeline-insight/internal/extraction"
	"timeline-insight/internal/timeline"
	"timeline-insight/pkg/types"
)

const (
	// SameEventSimilarityThreshold gates every pair: below it, two artifacts
	// are assumed to describe unrelated events and are never compared on any
	// dimension. The value is inherited product tuning, not a derived
	// optimum; recalibrate it with product data rather than in code review.
	SameEventSimilarityThreshold = 0.6

	// DateConflictMinDays is the minimum content-date divergence treated as a
	// conflict. Same caveat as the similarity threshold: inherited tuning,
	// flagged for product-level calibration.
	DateConflictMinDays = 2

	// MaxConflicts caps the emitted list after severity ranking.
	MaxConflicts = 20

	// evidenceSnippetLen bounds the per-side evidence excerpt.
	evidenceSnippetLen = 140
)

// Detector runs the pairwise fact-conflict scan. The zero value is not
// usable; construct with NewDetector.
type Detector struct {
	similarityThreshold float64
	dateConflictMinDays int
	maxConflicts        int
}

// Option tunes a Detector at construction time.
type Option func(*Detector)

// WithSimilarityThreshold overrides the same-event similarity gate.
func WithSimilarityThreshold(t float64) Option {
	return func(d *Detector) { d.similarityThreshold = t }
}

// WithDateConflictMinDays overrides the date divergence threshold.
func WithDateConflictMinDays(days int) Option {
	return func(d *Detector) { d.dateConflictMinDays = days }
}

// WithMaxConflicts overrides the output cap.
func WithMaxConflicts(n int) Option {
	return func(d *Detector) { d.maxConflicts = n }
}

// NewDetector creates a detector with the default thresholds.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		similarityThreshold: SameEventSimilarityThreshold,
		dateConflictMinDays: DateConflictMinDays,
		maxConflicts:        MaxConflicts,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectConflicts scans every unordered pair of entries and returns the
// detected conflicts sorted by severity rank descending, then conflict id
// ascending, truncated to the configured cap. Malformed fields never abort
// the scan; they only suppress detection on the affected dimension.
func (d *Detector) DetectConflicts(entries []types.EntryRecord) []types.PotentialConflict {
	labels := make([]entityLabel, len(entries))
	for i := range entries {
		labels[i] = deriveLabel(&entries[i].Artifact)
	}

	emitted := make(map[string]struct{})
	conflicts := []types.PotentialConflict{}

	emit := func(c *types.PotentialConflict, labelKey string) {
		key := dedupKey(c.Type, c.Artifacts[0].ArtifactID, c.Artifacts[1].ArtifactID, labelKey)
		if _, dup := emitted[key]; dup {
			return
		}
		emitted[key] = struct{}{}
		c.ConflictID = conflictID(key)
		conflicts = append(conflicts, *c)
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := &entries[i].Artifact, &entries[j].Artifact
			if labelSimilarity(labels[i], labels[j]) < d.similarityThreshold {
				continue
			}

			if c := d.checkDateConflict(a, b); c != nil {
				emit(c, "content_date")
			}
			if c := d.checkAmountConflict(a, b); c != nil {
				emit(c, "amount")
			}
			for _, sc := range d.checkStatusConflicts(a, b) {
				c := sc.conflict
				emit(&c, sc.label)
			}
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		ri, rj := conflicts[i].Severity.Rank(), conflicts[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return conflicts[i].ConflictID < conflicts[j].ConflictID
	})

	if len(conflicts) > d.maxConflicts {
		conflicts = conflicts[:d.maxConflicts]
	}
	return conflicts
}

// checkDateConflict fires when both artifacts carry parseable content dates
// at least the configured number of days apart.
func (d *Detector) checkDateConflict(a, b *types.ArtifactRecord) *types.PotentialConflict {
	ta, okA := timeline.ParseContentDate(a.ContentDateISO)
	tb, okB := timeline.ParseContentDate(b.ContentDateISO)
	if !okA || !okB {
		return nil
	}

	diff := ta.Sub(tb)
	if diff < 0 {
		diff = -diff
	}
	if diff < time.Duration(d.dateConflictMinDays)*24*time.Hour {
		return nil
	}

	days := int(diff / (24 * time.Hour))
	return &types.PotentialConflict{
		Type:     types.ConflictTypeDate,
		Severity: types.SeverityHigh,
		Summary:  fmt.Sprintf("Similar events dated %d days apart", days),
		Artifacts: [2]types.ConflictSide{
			conflictSide(a, orMissing(a.ContentDateISO)),
			conflictSide(b, orMissing(b.ContentDateISO)),
		},
		Details: types.ConflictDetails{
			LeftValue:  orMissing(a.ContentDateISO),
			RightValue: orMissing(b.ContentDateISO),
		},
	}
}

// checkAmountConflict fires when both artifacts yield a currency amount, the
// numeric values differ, and the currencies match whenever both are known.
// Severity drops to medium when either currency is ambiguous.
func (d *Detector) checkAmountConflict(a, b *types.ArtifactRecord) *types.PotentialConflict {
	amtA, okA := extraction.ExtractAmount(a.Title + "\n" + a.Summary)
	amtB, okB := extraction.ExtractAmount(b.Title + "\n" + b.Summary)
	if !okA || !okB {
		return nil
	}
	if amtA.Value == amtB.Value {
		return nil
	}
	if amtA.Currency != "" && amtB.Currency != "" && amtA.Currency != amtB.Currency {
		return nil
	}

	severity := types.SeverityMedium
	if amtA.Currency != "" && amtB.Currency != "" {
		severity = types.SeverityHigh
	}

	return &types.PotentialConflict{
		Type:     types.ConflictTypeAmount,
		Severity: severity,
		Summary:  fmt.Sprintf("Similar events report different amounts (%s vs %s)", amtA.Raw, amtB.Raw),
		Artifacts: [2]types.ConflictSide{
			conflictSide(a, amtA.Raw),
			conflictSide(b, amtB.Raw),
		},
		Details: types.ConflictDetails{
			LeftValue:  amtA.Raw,
			RightValue: amtB.Raw,
		},
	}
}

type statusConflict struct {
	conflict types.PotentialConflict
	label    string
}

// checkStatusConflicts scans both texts against the status antonym table. A
// conflict fires per label only when both sides address the label with
// opposite polarity.
func (d *Detector) checkStatusConflicts(a, b *types.ArtifactRecord) []statusConflict {
	textA := strings.ToLower(a.Title + "\n" + a.Summary)
	textB := strings.ToLower(b.Title + "\n" + b.Summary)

	var out []statusConflict
	for i := range statusPatterns {
		p := &statusPatterns[i]
		polA, okA := statusPolarity(p, textA)
		polB, okB := statusPolarity(p, textB)
		if !okA || !okB || polA == polB {
			continue
		}

		out = append(out, statusConflict{
			label: p.Label,
			conflict: types.PotentialConflict{
				Type:     types.ConflictTypeStatusFact,
				Severity: types.SeverityMedium,
				Summary:  fmt.Sprintf("Opposite %q status reported for similar events", p.Label),
				Artifacts: [2]types.ConflictSide{
					conflictSide(a, polarityValue(p.Label, polA)),
					conflictSide(b, polarityValue(p.Label, polB)),
				},
				Details: types.ConflictDetails{
					LeftValue:  polarityValue(p.Label, polA),
					RightValue: polarityValue(p.Label, polB),
				},
			},
		})
	}
	return out
}

// statusPolarity classifies one text against one pattern. Negative wins over
// positive because negated phrases contain the positive word.
func statusPolarity(p *statusPattern, text string) (positive, matched bool) {
	if p.Negative.MatchString(text) {
		return false, true
	}
	if p.Positive.MatchString(text) {
		return true, true
	}
	return false, false
}

func polarityValue(label string, positive bool) string {
	if positive {
		return label
	}
	return "not " + label
}

func conflictSide(a *types.ArtifactRecord, evidence string) types.ConflictSide {
	return types.ConflictSide{
		ArtifactID:     a.ArtifactID,
		Title:          a.Title,
		ContentDateISO: a.ContentDateISO,
		SourceLabel:    a.SourceLabel,
		Evidence:       snippet(evidence, a),
	}
}

// snippet prefers the dimension-specific evidence, falling back to the first
// summary sentence, bounded for display.
func snippet(evidence string, a *types.ArtifactRecord) string {
	s := evidence
	if s == "" {
		s = firstSentence(a.Summary)
	}
	if len(s) > evidenceSnippetLen {
		s = s[:evidenceSnippetLen]
	}
	return s
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return "missing"
	}
	return s
}

// dedupKey orders the pair ids so that input order never changes the key.
func dedupKey(ct types.ConflictType, idA, idB, labelKey string) string {
	lo, hi := idA, idB
	if hi < lo {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%s:%s|%s:%s", ct, lo, hi, labelKey)
}

// conflictID hashes the dedup key with 32-bit FNV-1a. Stability matters here,
// cryptographic strength does not: identical pairs and labels must produce
// identical ids across runs.
func conflictID(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return fmt.Sprintf("%08x", h.Sum32())
}
