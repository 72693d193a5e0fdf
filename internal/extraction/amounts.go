package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Amount is a currency amount extracted from free text.
type Amount struct {
	// Raw is the literal matched substring, kept for evidence display.
	Raw string
	// Value is the parsed numeric value with separators stripped.
	Value float64
	// Currency is an ISO-style code when one could be determined.
	Currency string
}

// amountPattern matches a currency symbol or a 3-letter ISO code adjacent to
// a decimal number, e.g. "$1,200.00" or "1800 USD". The pattern is package
// configuration, not control flow: tune it here without touching callers.
var amountPattern = regexp.MustCompile(
	`([$€£¥])\s?([0-9][0-9,]*(?:\.[0-9]+)?)|([0-9][0-9,]*(?:\.[0-9]+)?)\s?([A-Z]{3})\b`)

// symbolCurrencies maps currency symbols to ISO codes.
var symbolCurrencies = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}

// ExtractAmount finds at most one currency amount in text. The first match
// wins; unparseable text simply yields no amount.
func ExtractAmount(text string) (Amount, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return Amount{}, false
	}

	var number, currency string
	switch {
	case m[1] != "":
		currency = symbolCurrencies[m[1]]
		number = m[2]
	default:
		number = m[3]
		currency = m[4]
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return Amount{}, false
	}

	return Amount{
		Raw:      strings.TrimSpace(m[0]),
		Value:    value,
		Currency: currency,
	}, true
}
