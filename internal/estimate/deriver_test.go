package estimate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/estimate"
)

func TestDeriveRangeEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		rng := estimate.DeriveRange(text)
		assert.Nil(t, rng.BaseTotal)
		assert.Nil(t, rng.LowEstimate)
		assert.Nil(t, rng.HighEstimate)
		assert.Equal(t, "N/A", rng.FormattedRange)
	}
}

func TestDeriveRangeAveragesUpstreamPair(t *testing.T) {
	rng := estimate.DeriveRange(`{"totalEstimate":{"totalJobEstimate":"$1,350 - $1,550"}}`)

	require.NotNil(t, rng.BaseTotal)
	require.NotNil(t, rng.LowEstimate)
	require.NotNil(t, rng.HighEstimate)
	assert.Equal(t, 1450.0, *rng.BaseTotal)
	assert.Equal(t, 1380.0, *rng.LowEstimate)
	assert.Equal(t, 1600.0, *rng.HighEstimate)
	assert.Equal(t, "$1,380 – $1,600", rng.FormattedRange)
}

func TestDeriveRangeSingleAmount(t *testing.T) {
	rng := estimate.DeriveRange(`{"totalEstimate":{"totalJobEstimate":"$1,385.50"}}`)

	require.NotNil(t, rng.BaseTotal)
	assert.Equal(t, 1385.5, *rng.BaseTotal)
	require.NotNil(t, rng.LowEstimate)
	require.NotNil(t, rng.HighEstimate)
	assert.Equal(t, 1320.0, *rng.LowEstimate)
	assert.Equal(t, 1520.0, *rng.HighEstimate)
}

func TestDeriveRangePairWithinTolerance(t *testing.T) {
	// Two amounts within a unit of each other are the same value, not a
	// low/high pair.
	rng := estimate.DeriveRange(`{"totalEstimate":{"totalJobEstimate":"$500 to $500.50"}}`)

	require.NotNil(t, rng.BaseTotal)
	assert.Equal(t, 500.0, *rng.BaseTotal)
}

func TestDeriveRangeFreeText(t *testing.T) {
	rng := estimate.DeriveRange("Should come in around $2,000 all up, give or take.")

	require.NotNil(t, rng.BaseTotal)
	assert.Equal(t, 2000.0, *rng.BaseTotal)
	require.NotNil(t, rng.LowEstimate)
	require.NotNil(t, rng.HighEstimate)
	assert.Equal(t, 1900.0, *rng.LowEstimate)
	assert.Equal(t, 2200.0, *rng.HighEstimate)
	assert.Equal(t, "$1,900 – $2,200", rng.FormattedRange)
}

func TestDeriveRangeSummedFallback(t *testing.T) {
	rng := estimate.DeriveRange(`{"labour":{"total":"$800"},"materials":{"totalMaterialsCost":"$450"}}`)

	require.NotNil(t, rng.BaseTotal)
	assert.Equal(t, 1250.0, *rng.BaseTotal)
	require.NotNil(t, rng.LowEstimate)
	require.NotNil(t, rng.HighEstimate)
	assert.Equal(t, 1190.0, *rng.LowEstimate)
	assert.Equal(t, 1380.0, *rng.HighEstimate)
}

func TestDeriveRangeLabourOnlyFallback(t *testing.T) {
	rng := estimate.DeriveRange(`{"labour":{"total":"$960"}}`)

	require.NotNil(t, rng.BaseTotal)
	assert.Equal(t, 960.0, *rng.BaseTotal)
}

func TestDeriveRangeZeroBasisUnavailable(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "zero total", text: `{"totalEstimate":{"totalJobEstimate":"$0"}}`},
		{name: "zero components", text: `{"labour":{"total":"$0"},"materials":{"totalMaterialsCost":"$0"}}`},
		{name: "no amounts anywhere", text: `{"totalEstimate":{"totalJobEstimate":"to be confirmed"}}`},
		{name: "free text without currency", text: "will price after site visit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := estimate.DeriveRange(tc.text)
			assert.Nil(t, rng.BaseTotal)
			assert.Nil(t, rng.LowEstimate)
			assert.Nil(t, rng.HighEstimate)
			assert.Equal(t, "N/A", rng.FormattedRange)
		})
	}
}

func TestDeriveRangeCollapsedBandUsesFixedWidth(t *testing.T) {
	// A small base rounds both bounds to the same multiple of ten, which
	// must widen to the fixed-width band rather than display zero-width.
	rng := estimate.DeriveRange("$20")

	require.NotNil(t, rng.BaseTotal)
	assert.Equal(t, 20.0, *rng.BaseTotal)
	require.NotNil(t, rng.LowEstimate)
	require.NotNil(t, rng.HighEstimate)
	assert.Equal(t, 0.0, *rng.LowEstimate)
	assert.Equal(t, 70.0, *rng.HighEstimate)
	assert.Less(t, *rng.LowEstimate, *rng.HighEstimate)
}

func TestDeriveRangeLowAlwaysBelowHigh(t *testing.T) {
	for _, text := range []string{
		"$1", "$15", "$99", "$100", "$550", "$1,000", "$12,345.67", "$250,000",
	} {
		rng := estimate.DeriveRange(text)
		require.NotNil(t, rng.LowEstimate, "input %q", text)
		require.NotNil(t, rng.HighEstimate, "input %q", text)
		assert.Less(t, *rng.LowEstimate, *rng.HighEstimate, "input %q", text)
	}
}

func TestDeriveRangeIdempotent(t *testing.T) {
	text := `{"totalEstimate":{"totalJobEstimate":"$1,350 - $1,550"}}`

	first := estimate.DeriveRange(text)
	second := estimate.DeriveRange(text)
	assert.Equal(t, first, second)
}

func TestDeriveRangeIgnoresExtraAmounts(t *testing.T) {
	// Only the first two amounts matter; trailing ones do not change the pair.
	rng := estimate.DeriveRange("$1,000 - $2,000 (deposit $500)")

	require.NotNil(t, rng.BaseTotal)
	assert.Equal(t, 1500.0, *rng.BaseTotal)
}
