// Package testutil provides database helpers for tests. Tests run against
// in-memory sqlite, so the schema here mirrors migrations/ with
// sqlite-compatible column types.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE business_profiles (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id TEXT NOT NULL UNIQUE,
		business_name TEXT NOT NULL,
		abn TEXT,
		primary_trade TEXT,
		gst_registered BOOLEAN NOT NULL DEFAULT FALSE,
		hourly_rate REAL,
		helper_hourly_rate REAL,
		day_rate REAL,
		callout_fee REAL,
		min_charge REAL,
		rate_per_m2_interior REAL,
		rate_per_m2_exterior REAL,
		rate_per_lm_trim REAL,
		default_margin_pct REAL,
		default_deposit_pct REAL,
		default_payment_terms TEXT,
		trade_rates TEXT,
		service_areas TEXT
	)`,
	`CREATE TABLE rate_templates (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		trade_type TEXT NOT NULL,
		property_type TEXT,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		hourly_rate REAL,
		helper_hourly_rate REAL,
		day_rate REAL,
		callout_fee REAL,
		min_charge REAL,
		rate_per_m2_interior REAL,
		rate_per_m2_exterior REAL,
		rate_per_lm_trim REAL,
		material_markup_percent REAL
	)`,
	`CREATE TABLE jobs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		client_name TEXT,
		client_email TEXT,
		client_phone TEXT,
		site_address TEXT,
		trade_type TEXT NOT NULL,
		property_type TEXT,
		status TEXT NOT NULL DEFAULT 'draft',
		rate_template_id TEXT,
		hourly_rate REAL,
		helper_hourly_rate REAL,
		day_rate REAL,
		callout_fee REAL,
		min_charge REAL,
		rate_per_m2_interior REAL,
		rate_per_m2_exterior REAL,
		rate_per_lm_trim REAL,
		material_markup_percent REAL,
		photos TEXT
	)`,
	`CREATE TABLE quotes (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		job_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		quote_text TEXT NOT NULL,
		model TEXT,
		status TEXT NOT NULL DEFAULT 'current'
	)`,
	`CREATE TABLE job_packs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		job_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		storage_path TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE user_preferences (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX idx_user_pref_key ON user_preferences(user_id, key)`,
}

// SetupTestDB opens a fresh in-memory database with the full schema.
// Each test gets its own database, named after the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// Keep the single shared in-memory database alive for the whole test
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateTestUser inserts a user with a unique email
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:       fmt.Sprintf("%s-%s@example.com", strings.ToLower(name), uuid.NewString()[:8]),
		DisplayName: name,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestJob inserts a minimal job for the user
func CreateTestJob(t *testing.T, db *gorm.DB, userID uuid.UUID, title string, trade domain.TradeType) *domain.Job {
	t.Helper()

	job := &domain.Job{
		UserID:    userID,
		Title:     title,
		TradeType: trade,
		Status:    domain.JobStatusDraft,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// CreateTestTemplate inserts a rate template for the user
func CreateTestTemplate(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, trade domain.TradeType) *domain.RateTemplate {
	t.Helper()

	tpl := &domain.RateTemplate{
		UserID:    userID,
		Name:      name,
		TradeType: trade,
	}
	require.NoError(t, db.Create(tpl).Error)
	return tpl
}

// FloatPtr returns a pointer to the given value
func FloatPtr(v float64) *float64 {
	return &v
}
