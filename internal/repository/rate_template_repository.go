package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"gorm.io/gorm"
)

type RateTemplateRepository struct {
	db *gorm.DB
}

func NewRateTemplateRepository(db *gorm.DB) *RateTemplateRepository {
	return &RateTemplateRepository{db: db}
}

func (r *RateTemplateRepository) Create(ctx context.Context, tpl *domain.RateTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *RateTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RateTemplate, error) {
	var tpl domain.RateTemplate
	err := r.db.WithContext(ctx).First(&tpl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *RateTemplateRepository) Update(ctx context.Context, tpl *domain.RateTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

func (r *RateTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.RateTemplate{}, "id = ?", id).Error
}

// ListByUser returns all templates owned by a user, default first
func (r *RateTemplateRepository) ListByUser(ctx context.Context, userID uuid.UUID, tradeType *domain.TradeType) ([]domain.RateTemplate, error) {
	var templates []domain.RateTemplate

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if tradeType != nil {
		query = query.Where("trade_type = ?", *tradeType)
	}

	err := query.Order("is_default DESC, name ASC").Find(&templates).Error
	return templates, err
}

// GetDefaultForUser returns the user's default template, or gorm.ErrRecordNotFound
func (r *RateTemplateRepository) GetDefaultForUser(ctx context.Context, userID uuid.UUID) (*domain.RateTemplate, error) {
	var tpl domain.RateTemplate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// SetDefault marks the given template as the user's default and clears the
// flag on every other template the user owns, in one transaction.
func (r *RateTemplateRepository) SetDefault(ctx context.Context, userID, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.RateTemplate{}).
			Where("user_id = ? AND id <> ?", userID, templateID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.RateTemplate{}).
			Where("id = ? AND user_id = ?", templateID, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
