// Package rates resolves the effective pricing parameters for a job by
// merging job overrides, an optional rate template, the owner's business
// profile, and hard-coded trade defaults under a fixed precedence.
//
// Resolution is a pure computation over already-loaded records: the package
// never touches storage and never returns an error. A missing source layer
// is passed as nil and skipped; a field that no layer defines stays nil in
// the result, which downstream quoting must read as "omit this line item",
// never as zero.
package rates

import (
	"encoding/json"
)

// Field identifies one numeric rate field in the shared schema.
// Every source layer answers the same set of fields, so precedence is
// declared once in the resolver chain instead of per field.
type Field int

const (
	FieldHourlyRate Field = iota
	FieldHelperHourlyRate
	FieldDayRate
	FieldCalloutFee
	FieldMinCharge
	FieldRatePerM2Interior
	FieldRatePerM2Exterior
	FieldRatePerLmTrim
	FieldMaterialMarkupPercent
)

// numericFields is the full shared schema, iterated by the resolver.
var numericFields = []Field{
	FieldHourlyRate,
	FieldHelperHourlyRate,
	FieldDayRate,
	FieldCalloutFee,
	FieldMinCharge,
	FieldRatePerM2Interior,
	FieldRatePerM2Exterior,
	FieldRatePerLmTrim,
	FieldMaterialMarkupPercent,
}

// String returns the camelCase name of the field as used in API payloads
func (f Field) String() string {
	switch f {
	case FieldHourlyRate:
		return "hourlyRate"
	case FieldHelperHourlyRate:
		return "helperHourlyRate"
	case FieldDayRate:
		return "dayRate"
	case FieldCalloutFee:
		return "calloutFee"
	case FieldMinCharge:
		return "minCharge"
	case FieldRatePerM2Interior:
		return "ratePerM2Interior"
	case FieldRatePerM2Exterior:
		return "ratePerM2Exterior"
	case FieldRatePerLmTrim:
		return "ratePerLmTrim"
	case FieldMaterialMarkupPercent:
		return "materialMarkupPercent"
	}
	return "unknown"
}

// TradeRates is the parsed per-trade sub-rate map from the business profile,
// keyed by trade name then sub-rate name.
type TradeRates map[string]map[string]float64

// EffectiveRates is the single authoritative set of pricing parameters for
// one job. Every numeric field is optional: nil means no rate is configured
// anywhere in the precedence chain for this job.
type EffectiveRates struct {
	HourlyRate            *float64
	HelperHourlyRate      *float64
	DayRate               *float64
	CalloutFee            *float64
	MinCharge             *float64
	RatePerM2Interior     *float64
	RatePerM2Exterior     *float64
	RatePerLmTrim         *float64
	MaterialMarkupPercent *float64

	// Business-wide settings, sourced from the profile layer only.
	GSTRegistered       *bool
	DefaultMarginPct    *float64
	DefaultDepositPct   *float64
	DefaultPaymentTerms string
	TradeRates          TradeRates
}

// Get returns the resolved value for a numeric field
func (e *EffectiveRates) Get(f Field) *float64 {
	switch f {
	case FieldHourlyRate:
		return e.HourlyRate
	case FieldHelperHourlyRate:
		return e.HelperHourlyRate
	case FieldDayRate:
		return e.DayRate
	case FieldCalloutFee:
		return e.CalloutFee
	case FieldMinCharge:
		return e.MinCharge
	case FieldRatePerM2Interior:
		return e.RatePerM2Interior
	case FieldRatePerM2Exterior:
		return e.RatePerM2Exterior
	case FieldRatePerLmTrim:
		return e.RatePerLmTrim
	case FieldMaterialMarkupPercent:
		return e.MaterialMarkupPercent
	}
	return nil
}

func (e *EffectiveRates) set(f Field, v *float64) {
	switch f {
	case FieldHourlyRate:
		e.HourlyRate = v
	case FieldHelperHourlyRate:
		e.HelperHourlyRate = v
	case FieldDayRate:
		e.DayRate = v
	case FieldCalloutFee:
		e.CalloutFee = v
	case FieldMinCharge:
		e.MinCharge = v
	case FieldRatePerM2Interior:
		e.RatePerM2Interior = v
	case FieldRatePerM2Exterior:
		e.RatePerM2Exterior = v
	case FieldRatePerLmTrim:
		e.RatePerLmTrim = v
	case FieldMaterialMarkupPercent:
		e.MaterialMarkupPercent = v
	}
}

// HasAnyRate reports whether at least one numeric field resolved to a value
func (e *EffectiveRates) HasAnyRate() bool {
	for _, f := range numericFields {
		if e.Get(f) != nil {
			return true
		}
	}
	return false
}

// parseTradeRates parses the profile's JSON-encoded trade rates.
// A parse failure degrades to nil; it is never surfaced as an error.
func parseTradeRates(raw string) TradeRates {
	if raw == "" {
		return nil
	}
	var tr TradeRates
	if err := json.Unmarshal([]byte(raw), &tr); err != nil {
		return nil
	}
	if len(tr) == 0 {
		return nil
	}
	return tr
}

// ptr is a convenience for building optional values in defaults and tests
func ptr(v float64) *float64 { return &v }
