package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).
		Preload("RateTemplate").
		First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Job{}, "id = ?", id).Error
}

// JobFilters holds filters for listing jobs
type JobFilters struct {
	Status    *domain.JobStatus
	TradeType *domain.TradeType
	Search    string
}

// ListByUser returns a user's jobs with filters and pagination
func (r *JobRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int, filters *JobFilters) ([]domain.Job, int64, error) {
	var jobs []domain.Job
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Job{}).Where("user_id = ?", userID)

	if filters != nil {
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.TradeType != nil {
			query = query.Where("trade_type = ?", *filters.TradeType)
		}
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(client_name) LIKE ? OR LOWER(site_address) LIKE ?",
				searchPattern, searchPattern, searchPattern,
			)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("RateTemplate").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&jobs).Error

	return jobs, total, err
}

// UpdateStatus moves a job to a new lifecycle state
func (r *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListIDsByTemplate returns IDs of jobs referencing the given rate template
func (r *JobRepository) ListIDsByTemplate(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("rate_template_id = ?", templateID).
		Pluck("id", &ids).Error
	return ids, err
}

// DetachTemplate clears the template reference on jobs that point at it.
// Used when a template is deleted so jobs fall through to profile rates.
func (r *JobRepository) DetachTemplate(ctx context.Context, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("rate_template_id = ?", templateID).
		Update("rate_template_id", nil).Error
}
