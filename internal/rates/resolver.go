package rates

import (
	"github.com/tradequote/quoting-api/internal/domain"
)

// Resolve merges the four source layers into one EffectiveRates record.
//
// Precedence per numeric field is strictly job override > rate template >
// business profile > hard-coded trade default; the first layer that defines
// a field wins and later layers are not consulted for it. Fields resolve
// independently, so a job may take the template's hourly rate but its own
// callout fee.
//
// Any of the inputs may be nil: a nil template means the job references
// none, a nil profile means the profile was unavailable upstream. A nil
// layer is simply skipped. Resolve never fails; a field no layer defines
// stays nil and consumers must omit it rather than charge zero.
func Resolve(job *domain.Job, tpl *domain.RateTemplate, profile *domain.BusinessProfile) EffectiveRates {
	var trade domain.TradeType
	if job != nil {
		trade = job.TradeType
	}

	chain := []Source{
		JobOverrides(job),
		TemplateRates(tpl),
		ProfileRates(profile),
		TradeDefaults(trade),
	}

	var resolved EffectiveRates
	for _, f := range numericFields {
		resolved.set(f, firstDefined(chain, f))
	}

	// Business-wide settings have no job or template equivalent; they are
	// copied through from the profile layer verbatim. Trade rates are parsed
	// from their persisted JSON form and degrade to nil on failure.
	if profile != nil {
		gst := profile.GSTRegistered
		resolved.GSTRegistered = &gst
		resolved.DefaultMarginPct = profile.DefaultMarginPct
		resolved.DefaultDepositPct = profile.DefaultDepositPct
		resolved.DefaultPaymentTerms = profile.DefaultPaymentTerms
		resolved.TradeRates = parseTradeRates(profile.TradeRates)
	}

	return resolved
}

// ResolveSources reports, for each numeric field that resolves to a value,
// which layer supplied it. Keys are the camelCase field names and values are
// the layer names ("job", "template", "profile", "trade-default"). Fields no
// layer defines are absent.
func ResolveSources(job *domain.Job, tpl *domain.RateTemplate, profile *domain.BusinessProfile) map[string]string {
	var trade domain.TradeType
	if job != nil {
		trade = job.TradeType
	}

	chain := []Source{
		JobOverrides(job),
		TemplateRates(tpl),
		ProfileRates(profile),
		TradeDefaults(trade),
	}

	sources := make(map[string]string)
	for _, f := range numericFields {
		for _, src := range chain {
			if src.Value(f) != nil {
				sources[f.String()] = src.Name()
				break
			}
		}
	}
	return sources
}

// firstDefined walks the chain in order and returns the first defined value.
// The returned pointer is a copy so callers cannot mutate source records.
func firstDefined(chain []Source, f Field) *float64 {
	for _, src := range chain {
		if v := src.Value(f); v != nil {
			out := *v
			return &out
		}
	}
	return nil
}
