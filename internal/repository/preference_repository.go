package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the preference for the given user and key, or
// gorm.ErrRecordNotFound when the user never set it.
func (r *PreferenceRepository) Get(ctx context.Context, userID uuid.UUID, key string) (*domain.UserPreference, error) {
	var pref domain.UserPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Set creates or updates the preference for the given user and key
func (r *PreferenceRepository) Set(ctx context.Context, userID uuid.UUID, key, value string) error {
	pref := domain.UserPreference{
		UserID: userID,
		Key:    key,
		Value:  value,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&pref).Error
}

func (r *PreferenceRepository) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		Delete(&domain.UserPreference{}).Error
}

// ListByUser returns all preferences for a user
func (r *PreferenceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserPreference, error) {
	var prefs []domain.UserPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("key ASC").
		Find(&prefs).Error
	return prefs, err
}
