// Package estimate derives a client-facing low/high price band from the
// semi-structured quote text produced upstream by AI generation, and holds
// the shared display formatters for currency values.
//
// Derivation is a pure classification over one input string. It never
// returns an error: absent or unparseable input degrades to an unavailable
// range displayed as "N/A".
package estimate

import (
	"regexp"
	"strconv"
	"strings"
)

// currencyPattern matches currency-formatted substrings: a dollar symbol,
// digits with optional thousands separators, and an optional decimal part.
var currencyPattern = regexp.MustCompile(`\$\s*\d{1,3}(?:,\d{3})*(?:\.\d+)?|\$\s*\d+(?:\.\d+)?`)

// amountKind tags the outcome of scanning a text for currency amounts
type amountKind int

const (
	// scanUnparseable: the text was empty, or a matched substring failed
	// numeric conversion
	scanUnparseable amountKind = iota
	// scanNoMatch: well-formed text with no currency substrings
	scanNoMatch
	// scanSingle: exactly one currency amount found
	scanSingle
	// scanPair: two or more amounts found; the first two are kept
	scanPair
)

// scannedAmounts is the tagged result of scanCurrency. Using an explicit
// variant instead of nested fallbacks keeps the five derivation outcomes
// exhaustive and visible at the call site.
type scannedAmounts struct {
	kind   amountKind
	first  float64
	second float64
}

// scanCurrency extracts currency-formatted amounts from free text
func scanCurrency(text string) scannedAmounts {
	if strings.TrimSpace(text) == "" {
		return scannedAmounts{kind: scanUnparseable}
	}

	matches := currencyPattern.FindAllString(text, 2)
	if len(matches) == 0 {
		return scannedAmounts{kind: scanNoMatch}
	}

	first, ok := parseAmount(matches[0])
	if !ok {
		return scannedAmounts{kind: scanUnparseable}
	}
	if len(matches) == 1 {
		return scannedAmounts{kind: scanSingle, first: first}
	}

	second, ok := parseAmount(matches[1])
	if !ok {
		return scannedAmounts{kind: scanUnparseable}
	}
	return scannedAmounts{kind: scanPair, first: first, second: second}
}

// parseAmount converts one matched currency substring to a number
func parseAmount(match string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(match)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
