package intelligence

import "regexp"

// The tables in this file are the tunable surface of the detector. Control
// flow never changes when a word list or regex pair is adjusted.

// stopWords are dropped during label tokenization. Negations are deliberately
// kept: "not" flips meaning and must survive into the token set.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "at": {}, "for": {},
	"with": {}, "from": {}, "by": {}, "about": {}, "into": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"this": {}, "that": {}, "it": {}, "as": {},
}

// statusPattern describes one boolean status fact. Positive and Negative are
// word-boundary regexes; a text is negative when Negative matches, positive
// when only Positive matches, and unknown otherwise. A conflict fires only
// when two artifacts assert the same label with opposite polarity.
type statusPattern struct {
	Label    string
	Positive *regexp.Regexp
	Negative *regexp.Regexp
}

var statusPatterns = []statusPattern{
	{
		Label:    "paid",
		Positive: regexp.MustCompile(`\bpaid\b`),
		Negative: regexp.MustCompile(`\b(?:unpaid|not\s+paid)\b`),
	},
	{
		Label:    "present",
		Positive: regexp.MustCompile(`\bpresent\b`),
		Negative: regexp.MustCompile(`\b(?:absent|not\s+present)\b`),
	},
	{
		Label:    "agreed",
		Positive: regexp.MustCompile(`\bagreed\b`),
		Negative: regexp.MustCompile(`\b(?:disagreed|not\s+agreed)\b`),
	},
	{
		Label:    "signed",
		Positive: regexp.MustCompile(`\bsigned\b`),
		Negative: regexp.MustCompile(`\b(?:unsigned|not\s+signed|never\s+signed)\b`),
	},
	{
		Label:    "delivered",
		Positive: regexp.MustCompile(`\bdelivered\b`),
		Negative: regexp.MustCompile(`\b(?:undelivered|not\s+delivered)\b`),
	},
}
