package rates

import (
	"github.com/tradequote/quoting-api/internal/domain"
)

// ResolveMaterialMarkup resolves the material markup percentage through its
// own three-level chain, which differs from the numeric rate fields in its
// final fallback: instead of a hard-coded trade default it consults the
// user's standalone markup preference from the key-value preference store.
//
// Order: markup already present on the merged rates (job or template layer),
// then the profile's default margin, then the stored preference. First
// non-nil wins. When all three are absent the result is nil and downstream
// quoting must price materials at cost, with no hidden default upcharge.
func ResolveMaterialMarkup(resolved *EffectiveRates, profile *domain.BusinessProfile, preference *float64) *float64 {
	v, _ := ResolveMaterialMarkupWithSource(resolved, profile, preference)
	return v
}

// Markup source labels reported alongside the resolved value
const (
	MarkupSourceRates         = "rates"
	MarkupSourceProfileMargin = "profileMargin"
	MarkupSourcePreference    = "preference"
)

// ResolveMaterialMarkupWithSource is ResolveMaterialMarkup plus the label of
// the chain link that supplied the value. The label is empty when nothing in
// the chain defines a markup.
func ResolveMaterialMarkupWithSource(resolved *EffectiveRates, profile *domain.BusinessProfile, preference *float64) (*float64, string) {
	if resolved != nil && resolved.MaterialMarkupPercent != nil {
		out := *resolved.MaterialMarkupPercent
		return &out, MarkupSourceRates
	}
	if profile != nil && profile.DefaultMarginPct != nil {
		out := *profile.DefaultMarginPct
		return &out, MarkupSourceProfileMargin
	}
	if preference != nil {
		out := *preference
		return &out, MarkupSourcePreference
	}
	return nil, ""
}
