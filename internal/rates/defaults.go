package rates

import (
	"github.com/tradequote/quoting-api/internal/domain"
)

// tradeDefaults is the last-resort fallback layer: typical market rates per
// trade, used only when neither the job, its template, nor the business
// profile configures a field. Not every field is defined for every trade;
// an undefined field stays unset in the resolved result.
var tradeDefaults = map[domain.TradeType]map[Field]float64{
	domain.TradePainter: {
		FieldHourlyRate:        55,
		FieldHelperHourlyRate:  35,
		FieldDayRate:           440,
		FieldMinCharge:         150,
		FieldRatePerM2Interior: 18,
		FieldRatePerM2Exterior: 26,
		FieldRatePerLmTrim:     9,
	},
	domain.TradePlasterer: {
		FieldHourlyRate:        60,
		FieldHelperHourlyRate:  38,
		FieldDayRate:           480,
		FieldMinCharge:         180,
		FieldRatePerM2Interior: 22,
	},
	domain.TradeTiler: {
		FieldHourlyRate:        65,
		FieldDayRate:           520,
		FieldMinCharge:         200,
		FieldRatePerM2Interior: 55,
		FieldRatePerM2Exterior: 70,
	},
	domain.TradeCarpenter: {
		FieldHourlyRate:       70,
		FieldHelperHourlyRate: 42,
		FieldDayRate:          560,
		FieldCalloutFee:       60,
		FieldMinCharge:        180,
		FieldRatePerLmTrim:    12,
	},
	domain.TradeElectrician: {
		FieldHourlyRate: 95,
		FieldCalloutFee: 90,
		FieldMinCharge:  160,
	},
	domain.TradePlumber: {
		FieldHourlyRate: 90,
		FieldCalloutFee: 85,
		FieldMinCharge:  150,
	},
	domain.TradeLandscaper: {
		FieldHourlyRate:       58,
		FieldHelperHourlyRate: 36,
		FieldDayRate:          460,
		FieldMinCharge:        200,
	},
	domain.TradeHandyman: {
		FieldHourlyRate: 60,
		FieldCalloutFee: 50,
		FieldMinCharge:  120,
	},
}

// DefaultForTrade returns the hard-coded default for a single field, or nil
// when the trade or field has no default. Exposed for settings display.
func DefaultForTrade(trade domain.TradeType, f Field) *float64 {
	fields, ok := tradeDefaults[trade]
	if !ok {
		return nil
	}
	v, ok := fields[f]
	if !ok {
		return nil
	}
	return ptr(v)
}
