package rates

import (
	"github.com/tradequote/quoting-api/internal/domain"
)

// Source is one candidate layer in the precedence chain. A source answers
// every field in the shared schema; nil means the layer does not define it.
// All sources tolerate a nil underlying record and simply answer nil.
type Source interface {
	// Name identifies the layer, for diagnostics
	Name() string
	// Value returns the layer's value for the field, or nil if undefined
	Value(f Field) *float64
}

// jobSource exposes a job's one-off rate overrides
type jobSource struct {
	job *domain.Job
}

// JobOverrides returns the job-override source layer
func JobOverrides(job *domain.Job) Source {
	return jobSource{job: job}
}

func (s jobSource) Name() string { return "job" }

func (s jobSource) Value(f Field) *float64 {
	if s.job == nil {
		return nil
	}
	switch f {
	case FieldHourlyRate:
		return s.job.HourlyRate
	case FieldHelperHourlyRate:
		return s.job.HelperHourlyRate
	case FieldDayRate:
		return s.job.DayRate
	case FieldCalloutFee:
		return s.job.CalloutFee
	case FieldMinCharge:
		return s.job.MinCharge
	case FieldRatePerM2Interior:
		return s.job.RatePerM2Interior
	case FieldRatePerM2Exterior:
		return s.job.RatePerM2Exterior
	case FieldRatePerLmTrim:
		return s.job.RatePerLmTrim
	case FieldMaterialMarkupPercent:
		return s.job.MaterialMarkupPercent
	}
	return nil
}

// templateSource exposes a linked rate template's values
type templateSource struct {
	tpl *domain.RateTemplate
}

// TemplateRates returns the rate-template source layer
func TemplateRates(tpl *domain.RateTemplate) Source {
	return templateSource{tpl: tpl}
}

func (s templateSource) Name() string { return "template" }

func (s templateSource) Value(f Field) *float64 {
	if s.tpl == nil {
		return nil
	}
	switch f {
	case FieldHourlyRate:
		return s.tpl.HourlyRate
	case FieldHelperHourlyRate:
		return s.tpl.HelperHourlyRate
	case FieldDayRate:
		return s.tpl.DayRate
	case FieldCalloutFee:
		return s.tpl.CalloutFee
	case FieldMinCharge:
		return s.tpl.MinCharge
	case FieldRatePerM2Interior:
		return s.tpl.RatePerM2Interior
	case FieldRatePerM2Exterior:
		return s.tpl.RatePerM2Exterior
	case FieldRatePerLmTrim:
		return s.tpl.RatePerLmTrim
	case FieldMaterialMarkupPercent:
		return s.tpl.MaterialMarkupPercent
	}
	return nil
}

// profileSource exposes the business profile's standing default rates.
// Material markup is not answered here: the profile carries defaultMarginPct
// instead, which participates in the separate markup chain.
type profileSource struct {
	profile *domain.BusinessProfile
}

// ProfileRates returns the business-profile source layer
func ProfileRates(profile *domain.BusinessProfile) Source {
	return profileSource{profile: profile}
}

func (s profileSource) Name() string { return "profile" }

func (s profileSource) Value(f Field) *float64 {
	if s.profile == nil {
		return nil
	}
	switch f {
	case FieldHourlyRate:
		return s.profile.HourlyRate
	case FieldHelperHourlyRate:
		return s.profile.HelperHourlyRate
	case FieldDayRate:
		return s.profile.DayRate
	case FieldCalloutFee:
		return s.profile.CalloutFee
	case FieldMinCharge:
		return s.profile.MinCharge
	case FieldRatePerM2Interior:
		return s.profile.RatePerM2Interior
	case FieldRatePerM2Exterior:
		return s.profile.RatePerM2Exterior
	case FieldRatePerLmTrim:
		return s.profile.RatePerLmTrim
	}
	return nil
}

// defaultSource exposes the hard-coded fallback defaults for one trade
type defaultSource struct {
	trade domain.TradeType
}

// TradeDefaults returns the hard-coded trade-default source layer
func TradeDefaults(trade domain.TradeType) Source {
	return defaultSource{trade: trade}
}

func (s defaultSource) Name() string { return "trade-default" }

func (s defaultSource) Value(f Field) *float64 {
	fields, ok := tradeDefaults[s.trade]
	if !ok {
		return nil
	}
	v, ok := fields[f]
	if !ok {
		return nil
	}
	return ptr(v)
}
