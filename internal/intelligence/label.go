package intelligence

import (
	"strings"

	"timeline-insight/pkg/types"
)

// entityLabel is the ephemeral, derived identity of an artifact used only for
// same-event likelihood scoring. It is built from the first summary sentence
// or, when that is empty, the title, and discarded after the pairwise pass.
type entityLabel struct {
	raw        string
	normalized string
	tokens     map[string]struct{}
}

// sentenceTerminators end the first sentence when followed by whitespace.
const sentenceTerminators = ".!?"

// firstSentence returns the text up to the first sentence terminator followed
// by whitespace, or the whole text when no terminator is found.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	for i := 0; i < len(text)-1; i++ {
		if strings.ContainsRune(sentenceTerminators, rune(text[i])) && isSpace(text[i+1]) {
			return strings.TrimSpace(text[:i+1])
		}
	}
	return text
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// deriveLabel builds the comparison label for one artifact.
func deriveLabel(a *types.ArtifactRecord) entityLabel {
	raw := firstSentence(a.Summary)
	if raw == "" {
		raw = strings.TrimSpace(a.Title)
	}
	normalized := strings.ToLower(raw)
	return entityLabel{
		raw:        raw,
		normalized: normalized,
		tokens:     tokenize(normalized),
	}
}

// tokenize lower-cases, strips non-alphanumerics, splits on whitespace, and
// drops tokens of length two or less along with stop-words.
func tokenize(text string) map[string]struct{} {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// labelSimilarity scores how likely two labels describe the same event as
// intersection size over the larger token set. The asymmetric denominator
// keeps a short label from trivially matching a long one.
func labelSimilarity(a, b entityLabel) float64 {
	if len(a.tokens) == 0 || len(b.tokens) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a.tokens {
		if _, ok := b.tokens[tok]; ok {
			intersection++
		}
	}
	larger := len(a.tokens)
	if len(b.tokens) > larger {
		larger = len(b.tokens)
	}
	return float64(intersection) / float64(larger)
}
