package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/rates"
)

func ptr(v float64) *float64 { return &v }

func TestBuildQuotePrompt_IncludesOnlyResolvedRates(t *testing.T) {
	prompt := BuildQuotePrompt(&PromptInput{
		Job: &domain.Job{
			Title:       "Repaint lounge",
			TradeType:   domain.TradePainter,
			Description: "Two coats on walls and ceiling",
		},
		Rates: &rates.EffectiveRates{
			HourlyRate: ptr(85),
			DayRate:    ptr(650),
		},
		BusinessName: "Sam's Painting",
	})

	assert.Contains(t, prompt, "Sam's Painting")
	assert.Contains(t, prompt, "Repaint lounge")
	assert.Contains(t, prompt, "Two coats on walls and ceiling")
	assert.Contains(t, prompt, "Hourly rate: $85.00")
	assert.Contains(t, prompt, "Day rate: $650.00")

	// Unresolved rates never appear as zero charges
	assert.NotContains(t, prompt, "Callout fee")
	assert.NotContains(t, prompt, "Minimum charge")

	// The response contract is always spelled out
	assert.Contains(t, prompt, "totalJobEstimate")
}

func TestBuildQuotePrompt_BusinessSettings(t *testing.T) {
	gst := true
	prompt := BuildQuotePrompt(&PromptInput{
		Job: &domain.Job{
			Title:     "Splashback tiling",
			TradeType: domain.TradeTiler,
		},
		Rates: &rates.EffectiveRates{
			HourlyRate:          ptr(65),
			GSTRegistered:       &gst,
			DefaultDepositPct:   ptr(20),
			DefaultPaymentTerms: "7 days from invoice",
			TradeRates: rates.TradeRates{
				"tiler": {"wetAreaPerM2": 95},
			},
		},
		MaterialMarkup: ptr(15),
	})

	assert.Contains(t, prompt, "Material markup: 15%")
	assert.Contains(t, prompt, "GST registered: yes")
	assert.Contains(t, prompt, "Deposit: 20% of total")
	assert.Contains(t, prompt, "Payment terms: 7 days from invoice")
	assert.Contains(t, prompt, "wetAreaPerM2: $95.00")
}

func TestBuildQuotePrompt_SubRatesForOtherTradesExcluded(t *testing.T) {
	prompt := BuildQuotePrompt(&PromptInput{
		Job: &domain.Job{
			Title:     "Repaint lounge",
			TradeType: domain.TradePainter,
		},
		Rates: &rates.EffectiveRates{
			HourlyRate: ptr(85),
			TradeRates: rates.TradeRates{
				"tiler": {"wetAreaPerM2": 95},
			},
		},
	})

	assert.NotContains(t, prompt, "wetAreaPerM2")
}
