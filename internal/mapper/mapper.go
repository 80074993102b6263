package mapper

import (
	"time"

	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/estimate"
	"github.com/tradequote/quoting-api/internal/rates"
)

const isoFormat = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(isoFormat)
}

// ToJobDTO converts Job to JobDTO
func ToJobDTO(job *domain.Job) domain.JobDTO {
	dto := domain.JobDTO{
		ID:             job.ID,
		Title:          job.Title,
		Description:    job.Description,
		ClientName:     job.ClientName,
		ClientEmail:    job.ClientEmail,
		ClientPhone:    job.ClientPhone,
		SiteAddress:    job.SiteAddress,
		TradeType:      job.TradeType,
		PropertyType:   job.PropertyType,
		Status:         job.Status,
		RateTemplateID: job.RateTemplateID,
		Overrides: domain.RateValuesDTO{
			HourlyRate:            job.HourlyRate,
			HelperHourlyRate:      job.HelperHourlyRate,
			DayRate:               job.DayRate,
			CalloutFee:            job.CalloutFee,
			MinCharge:             job.MinCharge,
			RatePerM2Interior:     job.RatePerM2Interior,
			RatePerM2Exterior:     job.RatePerM2Exterior,
			RatePerLmTrim:         job.RatePerLmTrim,
			MaterialMarkupPercent: job.MaterialMarkupPercent,
		},
		Photos:    job.Photos,
		CreatedAt: formatTime(job.CreatedAt),
		UpdatedAt: formatTime(job.UpdatedAt),
	}

	if job.RateTemplate != nil {
		dto.RateTemplateName = job.RateTemplate.Name
	}

	return dto
}

// ToRateTemplateDTO converts RateTemplate to RateTemplateDTO
func ToRateTemplateDTO(tpl *domain.RateTemplate) domain.RateTemplateDTO {
	return domain.RateTemplateDTO{
		ID:           tpl.ID,
		Name:         tpl.Name,
		TradeType:    tpl.TradeType,
		PropertyType: tpl.PropertyType,
		IsDefault:    tpl.IsDefault,
		Rates: domain.RateValuesDTO{
			HourlyRate:            tpl.HourlyRate,
			HelperHourlyRate:      tpl.HelperHourlyRate,
			DayRate:               tpl.DayRate,
			CalloutFee:            tpl.CalloutFee,
			MinCharge:             tpl.MinCharge,
			RatePerM2Interior:     tpl.RatePerM2Interior,
			RatePerM2Exterior:     tpl.RatePerM2Exterior,
			RatePerLmTrim:         tpl.RatePerLmTrim,
			MaterialMarkupPercent: tpl.MaterialMarkupPercent,
		},
		CreatedAt: formatTime(tpl.CreatedAt),
		UpdatedAt: formatTime(tpl.UpdatedAt),
	}
}

// ToBusinessProfileDTO converts BusinessProfile to BusinessProfileDTO.
// TradeRates are parsed from their persisted JSON form; a malformed blob
// simply yields no trade rates in the response.
func ToBusinessProfileDTO(profile *domain.BusinessProfile) domain.BusinessProfileDTO {
	resolved := rates.Resolve(nil, nil, profile)

	return domain.BusinessProfileDTO{
		ID:            profile.ID,
		BusinessName:  profile.BusinessName,
		ABN:           profile.ABN,
		PrimaryTrade:  profile.PrimaryTrade,
		GSTRegistered: profile.GSTRegistered,
		Rates: domain.RateValuesDTO{
			HourlyRate:        profile.HourlyRate,
			HelperHourlyRate:  profile.HelperHourlyRate,
			DayRate:           profile.DayRate,
			CalloutFee:        profile.CalloutFee,
			MinCharge:         profile.MinCharge,
			RatePerM2Interior: profile.RatePerM2Interior,
			RatePerM2Exterior: profile.RatePerM2Exterior,
			RatePerLmTrim:     profile.RatePerLmTrim,
		},
		DefaultMarginPct:    profile.DefaultMarginPct,
		DefaultDepositPct:   profile.DefaultDepositPct,
		DefaultPaymentTerms: profile.DefaultPaymentTerms,
		TradeRates:          resolved.TradeRates,
		ServiceAreas:        profile.ServiceAreas,
		CreatedAt:           formatTime(profile.CreatedAt),
		UpdatedAt:           formatTime(profile.UpdatedAt),
	}
}

// ToEffectiveRatesDTO converts a resolved rate set plus its source trace
func ToEffectiveRatesDTO(resolved *rates.EffectiveRates, sources map[string]string) domain.EffectiveRatesDTO {
	return domain.EffectiveRatesDTO{
		Rates: domain.RateValuesDTO{
			HourlyRate:            resolved.HourlyRate,
			HelperHourlyRate:      resolved.HelperHourlyRate,
			DayRate:               resolved.DayRate,
			CalloutFee:            resolved.CalloutFee,
			MinCharge:             resolved.MinCharge,
			RatePerM2Interior:     resolved.RatePerM2Interior,
			RatePerM2Exterior:     resolved.RatePerM2Exterior,
			RatePerLmTrim:         resolved.RatePerLmTrim,
			MaterialMarkupPercent: resolved.MaterialMarkupPercent,
		},
		GSTRegistered:       resolved.GSTRegistered,
		DefaultMarginPct:    resolved.DefaultMarginPct,
		DefaultDepositPct:   resolved.DefaultDepositPct,
		DefaultPaymentTerms: resolved.DefaultPaymentTerms,
		TradeRates:          resolved.TradeRates,
		Sources:             sources,
	}
}

// ToQuoteDTO converts Quote to QuoteDTO, deriving the estimate band from the
// stored text. The band is recomputed on every call and never persisted.
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	rng := estimate.DeriveRange(quote.QuoteText)

	return domain.QuoteDTO{
		ID:        quote.ID,
		JobID:     quote.JobID,
		QuoteText: quote.QuoteText,
		Model:     quote.Model,
		Status:    quote.Status,
		CreatedAt: formatTime(quote.CreatedAt),
		Estimate:  ToEstimateRangeDTO(rng),
	}
}

// ToEstimateRangeDTO converts a derived range to its DTO
func ToEstimateRangeDTO(rng estimate.EstimateRange) *domain.EstimateRangeDTO {
	return &domain.EstimateRangeDTO{
		BaseTotal:      rng.BaseTotal,
		LowEstimate:    rng.LowEstimate,
		HighEstimate:   rng.HighEstimate,
		FormattedRange: rng.FormattedRange,
	}
}

// ToJobPackDTO converts JobPack to JobPackDTO
func ToJobPackDTO(pack *domain.JobPack) domain.JobPackDTO {
	return domain.JobPackDTO{
		ID:        pack.ID,
		JobID:     pack.JobID,
		FileName:  pack.FileName,
		Size:      pack.Size,
		CreatedAt: formatTime(pack.CreatedAt),
	}
}
