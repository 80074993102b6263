package rates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/rates"
)

func f(v float64) *float64 { return &v }

func TestResolvePrecedenceChain(t *testing.T) {
	job := &domain.Job{TradeType: domain.TradePainter, HourlyRate: f(80)}
	tpl := &domain.RateTemplate{TradeType: domain.TradePainter, HourlyRate: f(60)}
	profile := &domain.BusinessProfile{HourlyRate: f(50)}

	resolved := rates.Resolve(job, tpl, profile)
	require.NotNil(t, resolved.HourlyRate)
	assert.Equal(t, 80.0, *resolved.HourlyRate)

	// Removing the override falls back to the template
	job.HourlyRate = nil
	resolved = rates.Resolve(job, tpl, profile)
	require.NotNil(t, resolved.HourlyRate)
	assert.Equal(t, 60.0, *resolved.HourlyRate)

	// Removing the template falls back to the profile
	resolved = rates.Resolve(job, nil, profile)
	require.NotNil(t, resolved.HourlyRate)
	assert.Equal(t, 50.0, *resolved.HourlyRate)

	// With no configured source, the hard-coded painter default applies
	resolved = rates.Resolve(job, nil, nil)
	require.NotNil(t, resolved.HourlyRate)
	assert.Equal(t, 55.0, *resolved.HourlyRate)
}

func TestResolveSourcesLabelsWinningLayer(t *testing.T) {
	job := &domain.Job{TradeType: domain.TradePainter, CalloutFee: f(120)}
	tpl := &domain.RateTemplate{TradeType: domain.TradePainter, HourlyRate: f(85)}
	profile := &domain.BusinessProfile{DayRate: f(600)}

	sources := rates.ResolveSources(job, tpl, profile)

	assert.Equal(t, "job", sources["calloutFee"])
	assert.Equal(t, "template", sources["hourlyRate"])
	assert.Equal(t, "profile", sources["dayRate"])
	assert.Equal(t, "trade-default", sources["ratePerM2Interior"])

	// A field no layer defines has no entry at all
	unknown := rates.ResolveSources(&domain.Job{TradeType: "roofer"}, nil, nil)
	_, present := unknown["hourlyRate"]
	assert.False(t, present)
}

func TestResolveFieldCombinations(t *testing.T) {
	// Every combination of present/absent across the four layers for one
	// field must resolve to the highest-precedence present layer.
	jobVal, tplVal, profVal := 80.0, 60.0, 50.0
	painterDefault := 150.0 // min charge default for painter

	for mask := 0; mask < 8; mask++ {
		job := &domain.Job{TradeType: domain.TradePainter}
		tpl := &domain.RateTemplate{}
		profile := &domain.BusinessProfile{}

		var want *float64
		if mask&4 != 0 {
			job.MinCharge = f(jobVal)
			want = f(jobVal)
		}
		if mask&2 != 0 {
			tpl.MinCharge = f(tplVal)
			if want == nil {
				want = f(tplVal)
			}
		}
		if mask&1 != 0 {
			profile.MinCharge = f(profVal)
			if want == nil {
				want = f(profVal)
			}
		}
		if want == nil {
			want = f(painterDefault)
		}

		resolved := rates.Resolve(job, tpl, profile)
		require.NotNil(t, resolved.MinCharge, "mask %d", mask)
		assert.Equal(t, *want, *resolved.MinCharge, "mask %d", mask)
	}
}

func TestResolveFieldsIndependently(t *testing.T) {
	// A job may use the template's hourly rate but its own callout fee.
	job := &domain.Job{TradeType: domain.TradeElectrician, CalloutFee: f(120)}
	tpl := &domain.RateTemplate{HourlyRate: f(100), CalloutFee: f(75)}

	resolved := rates.Resolve(job, tpl, nil)
	require.NotNil(t, resolved.HourlyRate)
	require.NotNil(t, resolved.CalloutFee)
	assert.Equal(t, 100.0, *resolved.HourlyRate)
	assert.Equal(t, 120.0, *resolved.CalloutFee)
}

func TestResolveUnconfiguredFieldStaysNil(t *testing.T) {
	// Electricians carry no per-m2 default, so with no other source the
	// field must remain unset rather than resolve to zero.
	job := &domain.Job{TradeType: domain.TradeElectrician}

	resolved := rates.Resolve(job, nil, nil)
	assert.Nil(t, resolved.RatePerM2Interior)
	assert.Nil(t, resolved.RatePerM2Exterior)
}

func TestResolveUnknownTradeHasNoDefaults(t *testing.T) {
	job := &domain.Job{TradeType: domain.TradeType("roofer")}

	resolved := rates.Resolve(job, nil, nil)
	assert.False(t, resolved.HasAnyRate())
}

func TestResolveNilJob(t *testing.T) {
	profile := &domain.BusinessProfile{HourlyRate: f(50)}

	resolved := rates.Resolve(nil, nil, profile)
	require.NotNil(t, resolved.HourlyRate)
	assert.Equal(t, 50.0, *resolved.HourlyRate)
}

func TestResolveBusinessSettingsFromProfileOnly(t *testing.T) {
	job := &domain.Job{TradeType: domain.TradePainter}
	profile := &domain.BusinessProfile{
		GSTRegistered:       true,
		DefaultMarginPct:    f(20),
		DefaultDepositPct:   f(30),
		DefaultPaymentTerms: "14 days from invoice",
		TradeRates:          `{"painter":{"ceilingPerM2":14}}`,
	}

	resolved := rates.Resolve(job, nil, profile)
	require.NotNil(t, resolved.GSTRegistered)
	assert.True(t, *resolved.GSTRegistered)
	require.NotNil(t, resolved.DefaultMarginPct)
	assert.Equal(t, 20.0, *resolved.DefaultMarginPct)
	require.NotNil(t, resolved.DefaultDepositPct)
	assert.Equal(t, 30.0, *resolved.DefaultDepositPct)
	assert.Equal(t, "14 days from invoice", resolved.DefaultPaymentTerms)
	require.NotNil(t, resolved.TradeRates)
	assert.Equal(t, 14.0, resolved.TradeRates["painter"]["ceilingPerM2"])
}

func TestResolveMissingProfileLeavesSettingsUnset(t *testing.T) {
	job := &domain.Job{TradeType: domain.TradePainter}

	resolved := rates.Resolve(job, nil, nil)
	assert.Nil(t, resolved.GSTRegistered)
	assert.Nil(t, resolved.DefaultMarginPct)
	assert.Nil(t, resolved.DefaultDepositPct)
	assert.Empty(t, resolved.DefaultPaymentTerms)
	assert.Nil(t, resolved.TradeRates)
}

func TestResolveMalformedTradeRatesDegrades(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "invalid json", raw: `{"painter":`},
		{name: "wrong shape", raw: `["painter"]`},
		{name: "empty object", raw: `{}`},
		{name: "empty string", raw: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := &domain.BusinessProfile{TradeRates: tc.raw}
			resolved := rates.Resolve(&domain.Job{}, nil, profile)
			assert.Nil(t, resolved.TradeRates)
		})
	}
}

func TestResolveProfileMarginDoesNotLeakIntoMarkupField(t *testing.T) {
	// The profile carries defaultMarginPct, not a material markup; the
	// numeric chain must not treat it as the markup layer.
	job := &domain.Job{TradeType: domain.TradePainter}
	profile := &domain.BusinessProfile{DefaultMarginPct: f(25)}

	resolved := rates.Resolve(job, nil, profile)
	assert.Nil(t, resolved.MaterialMarkupPercent)
}

func TestResolveDoesNotAliasSourceValues(t *testing.T) {
	rate := 70.0
	job := &domain.Job{TradeType: domain.TradeCarpenter, HourlyRate: &rate}

	resolved := rates.Resolve(job, nil, nil)
	require.NotNil(t, resolved.HourlyRate)

	*resolved.HourlyRate = 999
	assert.Equal(t, 70.0, rate)
}

func TestDefaultForTrade(t *testing.T) {
	v := rates.DefaultForTrade(domain.TradePlumber, rates.FieldCalloutFee)
	require.NotNil(t, v)
	assert.Equal(t, 85.0, *v)

	assert.Nil(t, rates.DefaultForTrade(domain.TradePlumber, rates.FieldRatePerLmTrim))
	assert.Nil(t, rates.DefaultForTrade(domain.TradeType(""), rates.FieldHourlyRate))
}
