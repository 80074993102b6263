package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Quote{}, "id = ?", id).Error
}

// GetLatestForJob returns the newest quote for a job, or gorm.ErrRecordNotFound
func (r *QuoteRepository) GetLatestForJob(ctx context.Context, jobID uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// ListByJob returns all quotes for a job, newest first
func (r *QuoteRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Quote, error) {
	var quotes []domain.Quote
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

// MarkStaleForJob flags all current quotes on a job as stale.
// Called when the job's rates or template binding change.
func (r *QuoteRepository) MarkStaleForJob(ctx context.Context, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("job_id = ? AND status = ?", jobID, domain.QuoteStatusCurrent).
		Update("status", domain.QuoteStatusStale).Error
}

// MarkStaleForUser flags all of a user's current quotes as stale.
// Called when profile rates or the markup preference change, since every
// job may resolve differently afterwards.
func (r *QuoteRepository) MarkStaleForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("user_id = ? AND status = ?", userID, domain.QuoteStatusCurrent).
		Update("status", domain.QuoteStatusStale).Error
}

// MarkStaleOlderThan flags current quotes created before the cutoff as stale
// and returns the number of rows affected. Used by the scheduled sweep so
// month-old quotes are not presented as live pricing.
func (r *QuoteRepository) MarkStaleOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("status = ? AND created_at < ?", domain.QuoteStatusCurrent, cutoff).
		Update("status", domain.QuoteStatusStale)
	return result.RowsAffected, result.Error
}
