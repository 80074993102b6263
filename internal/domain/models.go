package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the database default is not in play,
// such as the sqlite databases used in tests.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TradeType identifies the trade a job or template is priced for
type TradeType string

const (
	TradePainter     TradeType = "painter"
	TradePlasterer   TradeType = "plasterer"
	TradeTiler       TradeType = "tiler"
	TradeCarpenter   TradeType = "carpenter"
	TradeElectrician TradeType = "electrician"
	TradePlumber     TradeType = "plumber"
	TradeLandscaper  TradeType = "landscaper"
	TradeHandyman    TradeType = "handyman"
)

// IsValidTradeType reports whether the given string is a known trade
func IsValidTradeType(s string) bool {
	switch TradeType(s) {
	case TradePainter, TradePlasterer, TradeTiler, TradeCarpenter,
		TradeElectrician, TradePlumber, TradeLandscaper, TradeHandyman:
		return true
	}
	return false
}

// PropertyType classifies the property a rate template targets
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
	PropertyIndustrial  PropertyType = "industrial"
)

// JobStatus represents the lifecycle state of a job
type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusQuoted     JobStatus = "quoted"
	JobStatusAccepted   JobStatus = "accepted"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// QuoteStatus tracks whether a persisted AI quote still reflects current rates
type QuoteStatus string

const (
	QuoteStatusCurrent QuoteStatus = "current"
	QuoteStatusStale   QuoteStatus = "stale"
)

// User represents an account holder (a tradie or their office)
type User struct {
	BaseModel
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName string `gorm:"type:varchar(200);not null;column:display_name"`
	IsActive    bool   `gorm:"not null;default:true;column:is_active"`
}

// BusinessProfile holds a user's standing default rates and business settings.
// Numeric rate fields are nullable: a null column means the user never
// configured that rate, which is different from configuring it as zero.
type BusinessProfile struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id"`
	BusinessName  string    `gorm:"type:varchar(200);not null;column:business_name"`
	ABN           string    `gorm:"type:varchar(20);column:abn"`
	PrimaryTrade  TradeType `gorm:"type:varchar(50);column:primary_trade"`
	GSTRegistered bool      `gorm:"not null;default:false;column:gst_registered"`

	HourlyRate        *float64 `gorm:"column:hourly_rate"`
	HelperHourlyRate  *float64 `gorm:"column:helper_hourly_rate"`
	DayRate           *float64 `gorm:"column:day_rate"`
	CalloutFee        *float64 `gorm:"column:callout_fee"`
	MinCharge         *float64 `gorm:"column:min_charge"`
	RatePerM2Interior *float64 `gorm:"column:rate_per_m2_interior"`
	RatePerM2Exterior *float64 `gorm:"column:rate_per_m2_exterior"`
	RatePerLmTrim     *float64 `gorm:"column:rate_per_lm_trim"`

	DefaultMarginPct    *float64 `gorm:"column:default_margin_pct"`
	DefaultDepositPct   *float64 `gorm:"column:default_deposit_pct"`
	DefaultPaymentTerms string   `gorm:"type:varchar(100);column:default_payment_terms"`

	// TradeRates is a JSON-encoded per-trade sub-rate map, for example
	// {"painter":{"ceilingPerM2":14},"tiler":{"wetAreaPerM2":95}}.
	// It is stored as text and parsed defensively at resolution time.
	TradeRates string `gorm:"type:text;column:trade_rates"`

	ServiceAreas pq.StringArray `gorm:"type:text[];column:service_areas"`
}

// RateTemplate is a named, reusable bundle of rate values owned by a user.
// At most one template per user may be marked default; the template service
// enforces that when setting the flag.
type RateTemplate struct {
	BaseModel
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index;column:user_id"`
	Name         string       `gorm:"type:varchar(200);not null"`
	TradeType    TradeType    `gorm:"type:varchar(50);not null;column:trade_type;index"`
	PropertyType PropertyType `gorm:"type:varchar(50);column:property_type"`
	IsDefault    bool         `gorm:"not null;default:false;column:is_default"`

	HourlyRate            *float64 `gorm:"column:hourly_rate"`
	HelperHourlyRate      *float64 `gorm:"column:helper_hourly_rate"`
	DayRate               *float64 `gorm:"column:day_rate"`
	CalloutFee            *float64 `gorm:"column:callout_fee"`
	MinCharge             *float64 `gorm:"column:min_charge"`
	RatePerM2Interior     *float64 `gorm:"column:rate_per_m2_interior"`
	RatePerM2Exterior     *float64 `gorm:"column:rate_per_m2_exterior"`
	RatePerLmTrim         *float64 `gorm:"column:rate_per_lm_trim"`
	MaterialMarkupPercent *float64 `gorm:"column:material_markup_percent"`
}

// Job represents one quoting job for a client.
// The rate-override columns are a one-off deviation for this job only and
// take precedence over template and profile rates when resolving.
type Job struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;column:user_id"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	ClientName  string    `gorm:"type:varchar(200);column:client_name"`
	ClientEmail string    `gorm:"type:varchar(255);column:client_email"`
	ClientPhone string    `gorm:"type:varchar(50);column:client_phone"`
	SiteAddress string    `gorm:"type:varchar(500);column:site_address"`

	TradeType    TradeType    `gorm:"type:varchar(50);not null;column:trade_type;index"`
	PropertyType PropertyType `gorm:"type:varchar(50);column:property_type"`
	Status       JobStatus    `gorm:"type:varchar(50);not null;default:'draft';index"`

	RateTemplateID *uuid.UUID    `gorm:"type:uuid;column:rate_template_id"`
	RateTemplate   *RateTemplate `gorm:"foreignKey:RateTemplateID"`

	HourlyRate            *float64 `gorm:"column:hourly_rate"`
	HelperHourlyRate      *float64 `gorm:"column:helper_hourly_rate"`
	DayRate               *float64 `gorm:"column:day_rate"`
	CalloutFee            *float64 `gorm:"column:callout_fee"`
	MinCharge             *float64 `gorm:"column:min_charge"`
	RatePerM2Interior     *float64 `gorm:"column:rate_per_m2_interior"`
	RatePerM2Exterior     *float64 `gorm:"column:rate_per_m2_exterior"`
	RatePerLmTrim         *float64 `gorm:"column:rate_per_lm_trim"`
	MaterialMarkupPercent *float64 `gorm:"column:material_markup_percent"`

	Photos pq.StringArray `gorm:"type:text[]"`

	Quotes []Quote `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

// Quote stores the raw AI-generated quote text for a job.
// The display range is never persisted; it is re-derived from QuoteText on
// every read.
type Quote struct {
	BaseModel
	JobID     uuid.UUID   `gorm:"type:uuid;not null;index;column:job_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index;column:user_id"`
	QuoteText string      `gorm:"type:text;not null;column:quote_text"`
	Model     string      `gorm:"type:varchar(100)"`
	Status    QuoteStatus `gorm:"type:varchar(50);not null;default:'current';index"`
}

// JobPack records a generated job-pack document stored in file storage
type JobPack struct {
	BaseModel
	JobID       uuid.UUID `gorm:"type:uuid;not null;index;column:job_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;column:user_id"`
	FileName    string    `gorm:"type:varchar(255);not null;column:file_name"`
	StoragePath string    `gorm:"type:varchar(500);not null;column:storage_path"`
	Size        int64     `gorm:"not null;default:0"`
}

// PreferenceMaterialMarkup is the key under which a user's standalone
// material markup preference is stored
const PreferenceMaterialMarkup = "material_markup_percent"

// UserPreference is a simple key-value preference owned by a user.
// Preferences hold settings that live outside the business profile, such as
// the standalone material markup percentage.
type UserPreference struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_pref_key;column:user_id"`
	Key    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_pref_key"`
	Value  string    `gorm:"type:text;not null"`
}
