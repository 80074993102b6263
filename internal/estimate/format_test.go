package estimate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradequote/quoting-api/internal/estimate"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,385.50", estimate.FormatCurrency(1385.5))
	assert.Equal(t, "$0.00", estimate.FormatCurrency(0))
	assert.Equal(t, "$250,000.00", estimate.FormatCurrency(250000))
}

func TestFormatWholeCurrency(t *testing.T) {
	assert.Equal(t, "$1,380", estimate.FormatWholeCurrency(1380))
	assert.Equal(t, "$95", estimate.FormatWholeCurrency(95))
	assert.Equal(t, "$12,346", estimate.FormatWholeCurrency(12345.67))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "20%", estimate.FormatPercent(20))
	assert.Equal(t, "17.5%", estimate.FormatPercent(17.5))
}

func TestFormatOptionalCurrency(t *testing.T) {
	v := 85.0
	assert.Equal(t, "$85.00", estimate.FormatOptionalCurrency(&v))
	assert.Equal(t, "not set", estimate.FormatOptionalCurrency(nil))
}
