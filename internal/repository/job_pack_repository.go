package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"gorm.io/gorm"
)

type JobPackRepository struct {
	db *gorm.DB
}

func NewJobPackRepository(db *gorm.DB) *JobPackRepository {
	return &JobPackRepository{db: db}
}

func (r *JobPackRepository) Create(ctx context.Context, pack *domain.JobPack) error {
	return r.db.WithContext(ctx).Create(pack).Error
}

func (r *JobPackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobPack, error) {
	var pack domain.JobPack
	err := r.db.WithContext(ctx).First(&pack, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

// ListByJob returns generated packs for a job, newest first
func (r *JobPackRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.JobPack, error) {
	var packs []domain.JobPack
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&packs).Error
	return packs, err
}

func (r *JobPackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.JobPack{}, "id = ?", id).Error
}
