package estimate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is shared by the formatters; message.Printer is safe for
// concurrent use.
var printer = message.NewPrinter(language.English)

// FormatCurrency formats a monetary value with thousands separators and
// two decimal places, e.g. 1385.5 -> "$1,385.50".
func FormatCurrency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// FormatWholeCurrency formats a monetary value with thousands separators
// and no decimal places, e.g. 1380 -> "$1,380". Range bounds are always
// displayed whole.
func FormatWholeCurrency(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

// FormatPercent formats a percentage with no decimal places when whole,
// e.g. 17.5 -> "17.5%", 20 -> "20%".
func FormatPercent(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%.0f%%", v)
	}
	return printer.Sprintf("%.1f%%", v)
}

// FormatOptionalCurrency formats a nullable monetary value. A nil value
// renders as "not set" so settings screens show that no rate is configured
// rather than a zero charge.
func FormatOptionalCurrency(v *float64) string {
	if v == nil {
		return "not set"
	}
	return FormatCurrency(*v)
}
