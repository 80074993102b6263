package estimate

import (
	"encoding/json"
	"math"
	"strings"
)

// pairTolerance is the rounding tolerance under which two parsed amounts
// are treated as the same value rather than a low/high pair.
const pairTolerance = 1.0

// Banding multipliers applied to the base total once it is established.
const (
	lowFactor  = 0.95
	highFactor = 1.10
)

// fallbackHalfWidth is the fixed half-width band used when rounding
// collapses the multiplied band to zero or negative width.
const fallbackHalfWidth = 50.0

// RangeUnavailable is the display value when no range can be derived
const RangeUnavailable = "N/A"

// EstimateRange is the derived confidence band for one quote. All fields
// are recomputed from the stored quote text on every read and are never
// persisted. BaseTotal, LowEstimate and HighEstimate are nil when no usable
// cost basis exists; LowEstimate < HighEstimate holds whenever both are set.
type EstimateRange struct {
	BaseTotal      *float64 `json:"baseTotal"`
	LowEstimate    *float64 `json:"lowEstimate"`
	HighEstimate   *float64 `json:"highEstimate"`
	FormattedRange string   `json:"formattedRange"`
}

// quoteDocument is the JSON shape the upstream AI generation aims for.
// All money fields arrive as currency-formatted strings (e.g. "$1,385.50").
type quoteDocument struct {
	Labour struct {
		Total string `json:"total"`
	} `json:"labour"`
	Materials struct {
		TotalMaterialsCost string `json:"totalMaterialsCost"`
	} `json:"materials"`
	TotalEstimate struct {
		TotalJobEstimate string `json:"totalJobEstimate"`
	} `json:"totalEstimate"`
}

// DeriveRange turns a stored quote text into a display band.
//
// The quote text is expected to be the JSON produced by generation, but the
// model does not always comply, so non-JSON input is scanned as free text
// with embedded currency substrings. The derivation outcomes, in evaluation
// order:
//
//  1. no-data: empty input, or no cost basis anywhere; every field nil and
//     FormattedRange "N/A"
//  2. single-value: one amount in the total-estimate text becomes the base
//  3. range-averaged: two amounts more than a unit apart are an upstream
//     low/high pair; their mean becomes the base and the band is recomputed
//     from it, so upstream banding never compounds with ours
//  4. summed-fallback: no usable total-estimate text; labour plus materials
//     is the base when positive
//  5. banded-result: any positive base produces low/high via the banding
//     rule
//
// DeriveRange never panics or errors and is idempotent for a given input.
func DeriveRange(quoteText string) EstimateRange {
	if strings.TrimSpace(quoteText) == "" {
		return unavailable()
	}

	var doc quoteDocument
	structured := json.Unmarshal([]byte(quoteText), &doc) == nil

	// Primary path: the total-estimate text. When the input is not valid
	// JSON the whole text stands in for it.
	totalText := quoteText
	if structured {
		totalText = doc.TotalEstimate.TotalJobEstimate
	}

	base := 0.0
	haveBase := false

	switch scanned := scanCurrency(totalText); scanned.kind {
	case scanSingle:
		base = scanned.first
		haveBase = true
	case scanPair:
		if math.Abs(scanned.first-scanned.second) > pairTolerance {
			// An upstream low/high pair; collapse to its mean and re-band.
			base = (scanned.first + scanned.second) / 2
		} else {
			base = scanned.first
		}
		haveBase = true
	case scanNoMatch, scanUnparseable:
		// Fall through to the secondary path.
	}

	// Secondary path: sum labour and materials totals. A zero or negative
	// cost basis is never displayed as a range.
	if !haveBase && structured {
		sum := 0.0
		if labour, ok := firstAmount(doc.Labour.Total); ok && labour > 0 {
			sum += labour
		}
		if materials, ok := firstAmount(doc.Materials.TotalMaterialsCost); ok && materials > 0 {
			sum += materials
		}
		if sum > 0 {
			base = sum
			haveBase = true
		}
	}

	if !haveBase || base <= 0 {
		return unavailable()
	}

	low, high := band(base)
	return EstimateRange{
		BaseTotal:      &base,
		LowEstimate:    &low,
		HighEstimate:   &high,
		FormattedRange: FormatWholeCurrency(low) + " – " + FormatWholeCurrency(high),
	}
}

// band computes the display band for a positive base total. Both bounds are
// rounded to the nearest 10; when rounding collapses the band, a fixed-width
// band around the base is used instead so the result is never zero-width.
func band(base float64) (low, high float64) {
	low = roundToTen(base * lowFactor)
	high = roundToTen(base * highFactor)
	if low >= high {
		low = math.Max(0, base-fallbackHalfWidth)
		high = base + fallbackHalfWidth
	}
	return low, high
}

// roundToTen rounds to the nearest 10, halves away from zero
func roundToTen(v float64) float64 {
	return math.Round(v/10) * 10
}

// firstAmount returns the first currency amount embedded in a text field
func firstAmount(text string) (float64, bool) {
	switch scanned := scanCurrency(text); scanned.kind {
	case scanSingle, scanPair:
		return scanned.first, true
	}
	return 0, false
}

func unavailable() EstimateRange {
	return EstimateRange{FormattedRange: RangeUnavailable}
}
