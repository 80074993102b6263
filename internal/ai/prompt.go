package ai

import (
	"fmt"
	"strings"

	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/estimate"
	"github.com/tradequote/quoting-api/internal/rates"
)

// PromptInput carries everything the quote prompt is built from
type PromptInput struct {
	Job            *domain.Job
	Rates          *rates.EffectiveRates
	MaterialMarkup *float64
	BusinessName   string
}

// BuildQuotePrompt renders the generation prompt for a job. Only rates that
// actually resolved are included; the model is told to price from what is
// given rather than invent rates.
func BuildQuotePrompt(in *PromptInput) string {
	var b strings.Builder

	b.WriteString("You are a quoting assistant for an Australian trade business")
	if in.BusinessName != "" {
		fmt.Fprintf(&b, " (%s)", in.BusinessName)
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "Job: %s\n", in.Job.Title)
	fmt.Fprintf(&b, "Trade: %s\n", in.Job.TradeType)
	if in.Job.PropertyType != "" {
		fmt.Fprintf(&b, "Property type: %s\n", in.Job.PropertyType)
	}
	if in.Job.SiteAddress != "" {
		fmt.Fprintf(&b, "Site: %s\n", in.Job.SiteAddress)
	}
	if in.Job.Description != "" {
		fmt.Fprintf(&b, "\nScope of work:\n%s\n", in.Job.Description)
	}

	b.WriteString("\nPricing parameters (use only these, do not invent rates):\n")
	writeRateLine(&b, "Hourly rate", in.Rates.HourlyRate)
	writeRateLine(&b, "Helper hourly rate", in.Rates.HelperHourlyRate)
	writeRateLine(&b, "Day rate", in.Rates.DayRate)
	writeRateLine(&b, "Callout fee", in.Rates.CalloutFee)
	writeRateLine(&b, "Minimum charge", in.Rates.MinCharge)
	writeRateLine(&b, "Rate per m2 (interior)", in.Rates.RatePerM2Interior)
	writeRateLine(&b, "Rate per m2 (exterior)", in.Rates.RatePerM2Exterior)
	writeRateLine(&b, "Rate per lineal metre (trim)", in.Rates.RatePerLmTrim)

	if in.MaterialMarkup != nil {
		fmt.Fprintf(&b, "- Material markup: %s\n", estimate.FormatPercent(*in.MaterialMarkup))
	}
	if in.Rates.GSTRegistered != nil && *in.Rates.GSTRegistered {
		b.WriteString("- GST registered: yes, show GST as a separate line\n")
	}
	if in.Rates.DefaultDepositPct != nil {
		fmt.Fprintf(&b, "- Deposit: %s of total\n", estimate.FormatPercent(*in.Rates.DefaultDepositPct))
	}
	if in.Rates.DefaultPaymentTerms != "" {
		fmt.Fprintf(&b, "- Payment terms: %s\n", in.Rates.DefaultPaymentTerms)
	}

	if sub, ok := in.Rates.TradeRates[string(in.Job.TradeType)]; ok && len(sub) > 0 {
		b.WriteString("- Trade-specific sub-rates:\n")
		for name, value := range sub {
			fmt.Fprintf(&b, "  - %s: %s\n", name, estimate.FormatCurrency(value))
		}
	}

	b.WriteString(`
Respond with a single JSON object using exactly this shape:
{
  "labour": {"items": [{"description": "...", "amount": "$0.00"}], "total": "$0.00"},
  "materials": {"items": [{"description": "...", "amount": "$0.00"}], "totalMaterialsCost": "$0.00"},
  "totalEstimate": {"totalJobEstimate": "$X,XXX - $X,XXX"},
  "notes": "..."
}
Amounts are Australian dollars formatted like $1,234.56. The
totalJobEstimate may be a single amount or a "low - high" band.
`)

	return b.String()
}

func writeRateLine(b *strings.Builder, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, estimate.FormatCurrency(*v))
}
