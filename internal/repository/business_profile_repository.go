package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"gorm.io/gorm"
)

type BusinessProfileRepository struct {
	db *gorm.DB
}

func NewBusinessProfileRepository(db *gorm.DB) *BusinessProfileRepository {
	return &BusinessProfileRepository{db: db}
}

func (r *BusinessProfileRepository) Create(ctx context.Context, profile *domain.BusinessProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByUserID returns the user's profile, or gorm.ErrRecordNotFound.
// Each user has at most one profile.
func (r *BusinessProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BusinessProfile, error) {
	var profile domain.BusinessProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *BusinessProfileRepository) Update(ctx context.Context, profile *domain.BusinessProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *BusinessProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.BusinessProfile{}, "id = ?", id).Error
}
