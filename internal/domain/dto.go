package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses. Optional rate values stay pointers end to end so
// the client can tell "not configured" apart from zero.

type JobDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ClientName  string    `json:"clientName,omitempty"`
	ClientEmail string    `json:"clientEmail,omitempty"`
	ClientPhone string    `json:"clientPhone,omitempty"`
	SiteAddress string    `json:"siteAddress,omitempty"`

	TradeType    TradeType    `json:"tradeType"`
	PropertyType PropertyType `json:"propertyType,omitempty"`
	Status       JobStatus    `json:"status"`

	RateTemplateID   *uuid.UUID `json:"rateTemplateId,omitempty"`
	RateTemplateName string     `json:"rateTemplateName,omitempty"`

	Overrides RateValuesDTO `json:"overrides"`

	Photos []string `json:"photos,omitempty"`

	CreatedAt string `json:"createdAt"` // ISO 8601
	UpdatedAt string `json:"updatedAt"` // ISO 8601
}

// RateValuesDTO is the shared shape for the nine optional numeric rate
// fields wherever they appear: job overrides, templates, and profiles.
type RateValuesDTO struct {
	HourlyRate            *float64 `json:"hourlyRate,omitempty"`
	HelperHourlyRate      *float64 `json:"helperHourlyRate,omitempty"`
	DayRate               *float64 `json:"dayRate,omitempty"`
	CalloutFee            *float64 `json:"calloutFee,omitempty"`
	MinCharge             *float64 `json:"minCharge,omitempty"`
	RatePerM2Interior     *float64 `json:"ratePerM2Interior,omitempty"`
	RatePerM2Exterior     *float64 `json:"ratePerM2Exterior,omitempty"`
	RatePerLmTrim         *float64 `json:"ratePerLmTrim,omitempty"`
	MaterialMarkupPercent *float64 `json:"materialMarkupPercent,omitempty"`
}

type JobListResponse struct {
	Jobs     []JobDTO `json:"jobs"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

type RateTemplateDTO struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	TradeType    TradeType    `json:"tradeType"`
	PropertyType PropertyType `json:"propertyType,omitempty"`
	IsDefault    bool         `json:"isDefault"`

	Rates RateValuesDTO `json:"rates"`

	CreatedAt string `json:"createdAt"` // ISO 8601
	UpdatedAt string `json:"updatedAt"` // ISO 8601
}

type BusinessProfileDTO struct {
	ID            uuid.UUID `json:"id"`
	BusinessName  string    `json:"businessName"`
	ABN           string    `json:"abn,omitempty"`
	PrimaryTrade  TradeType `json:"primaryTrade,omitempty"`
	GSTRegistered bool      `json:"gstRegistered"`

	Rates RateValuesDTO `json:"rates"`

	DefaultMarginPct    *float64 `json:"defaultMarginPct,omitempty"`
	DefaultDepositPct   *float64 `json:"defaultDepositPct,omitempty"`
	DefaultPaymentTerms string   `json:"defaultPaymentTerms,omitempty"`

	TradeRates   map[string]map[string]float64 `json:"tradeRates,omitempty"`
	ServiceAreas []string                      `json:"serviceAreas,omitempty"`

	CreatedAt string `json:"createdAt"` // ISO 8601
	UpdatedAt string `json:"updatedAt"` // ISO 8601
}

// EffectiveRatesDTO is the fully resolved rate set for a job, with the
// winning source layer recorded per field.
type EffectiveRatesDTO struct {
	Rates RateValuesDTO `json:"rates"`

	GSTRegistered       *bool    `json:"gstRegistered,omitempty"`
	DefaultMarginPct    *float64 `json:"defaultMarginPct,omitempty"`
	DefaultDepositPct   *float64 `json:"defaultDepositPct,omitempty"`
	DefaultPaymentTerms string   `json:"defaultPaymentTerms,omitempty"`

	TradeRates map[string]map[string]float64 `json:"tradeRates,omitempty"`

	// Sources maps each resolved field name to the layer it came from:
	// "job", "template", "profile", or "trade-default".
	Sources map[string]string `json:"sources,omitempty"`
}

// MaterialMarkupDTO reports the resolved markup and which fallback supplied it
type MaterialMarkupDTO struct {
	Value  *float64 `json:"value"`
	Source string   `json:"source,omitempty"` // "rates", "profileMargin", "preference", or ""
}

type QuoteDTO struct {
	ID        uuid.UUID   `json:"id"`
	JobID     uuid.UUID   `json:"jobId"`
	QuoteText string      `json:"quoteText"`
	Model     string      `json:"model,omitempty"`
	Status    QuoteStatus `json:"status"`
	CreatedAt string      `json:"createdAt"` // ISO 8601

	// Estimate is derived from QuoteText on every read, never persisted
	Estimate *EstimateRangeDTO `json:"estimate,omitempty"`
}

// EstimateRangeDTO is the display band derived from quote text
type EstimateRangeDTO struct {
	BaseTotal      *float64 `json:"baseTotal"`
	LowEstimate    *float64 `json:"lowEstimate"`
	HighEstimate   *float64 `json:"highEstimate"`
	FormattedRange string   `json:"formattedRange"`
}

type JobPackDTO struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	FileName  string    `json:"fileName"`
	Size      int64     `json:"size"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

type PreferenceDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Request payloads

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=10000"`
	ClientName  string `json:"clientName" validate:"max=200"`
	ClientEmail string `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone string `json:"clientPhone" validate:"max=50"`
	SiteAddress string `json:"siteAddress" validate:"max=500"`

	TradeType    string `json:"tradeType" validate:"required"`
	PropertyType string `json:"propertyType" validate:"omitempty,oneof=residential commercial industrial"`

	RateTemplateID *uuid.UUID    `json:"rateTemplateId"`
	Overrides      RateValuesDTO `json:"overrides"`

	Photos []string `json:"photos" validate:"dive,max=500"`
}

type UpdateJobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=10000"`
	ClientName  string `json:"clientName" validate:"max=200"`
	ClientEmail string `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone string `json:"clientPhone" validate:"max=50"`
	SiteAddress string `json:"siteAddress" validate:"max=500"`

	TradeType    string `json:"tradeType" validate:"required"`
	PropertyType string `json:"propertyType" validate:"omitempty,oneof=residential commercial industrial"`
	Status       string `json:"status" validate:"omitempty,oneof=draft quoted accepted in_progress completed cancelled"`

	RateTemplateID *uuid.UUID    `json:"rateTemplateId"`
	Overrides      RateValuesDTO `json:"overrides"`

	Photos []string `json:"photos" validate:"dive,max=500"`
}

type CreateRateTemplateRequest struct {
	Name         string        `json:"name" validate:"required,max=200"`
	TradeType    string        `json:"tradeType" validate:"required"`
	PropertyType string        `json:"propertyType" validate:"omitempty,oneof=residential commercial industrial"`
	IsDefault    bool          `json:"isDefault"`
	Rates        RateValuesDTO `json:"rates"`
}

type UpdateRateTemplateRequest struct {
	Name         string        `json:"name" validate:"required,max=200"`
	TradeType    string        `json:"tradeType" validate:"required"`
	PropertyType string        `json:"propertyType" validate:"omitempty,oneof=residential commercial industrial"`
	Rates        RateValuesDTO `json:"rates"`
}

type UpsertBusinessProfileRequest struct {
	BusinessName  string `json:"businessName" validate:"required,max=200"`
	ABN           string `json:"abn" validate:"max=20"`
	PrimaryTrade  string `json:"primaryTrade" validate:"omitempty"`
	GSTRegistered bool   `json:"gstRegistered"`

	Rates RateValuesDTO `json:"rates"`

	DefaultMarginPct    *float64 `json:"defaultMarginPct" validate:"omitempty,gte=0,lte=100"`
	DefaultDepositPct   *float64 `json:"defaultDepositPct" validate:"omitempty,gte=0,lte=100"`
	DefaultPaymentTerms string   `json:"defaultPaymentTerms" validate:"max=100"`

	TradeRates   map[string]map[string]float64 `json:"tradeRates"`
	ServiceAreas []string                      `json:"serviceAreas" validate:"dive,max=100"`
}

type SetPreferenceRequest struct {
	Value string `json:"value" validate:"required,max=1000"`
}

type SetMaterialMarkupRequest struct {
	Value float64 `json:"value" validate:"gte=0,lte=100"`
}

type GenerateQuoteRequest struct {
	// Notes are extra one-off instructions appended to the prompt
	Notes string `json:"notes" validate:"max=2000"`
}
