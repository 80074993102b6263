package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/mapper"
	"github.com/tradequote/quoting-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfileService struct {
	profileRepo *repository.BusinessProfileRepository
	prefRepo    *repository.PreferenceRepository
	quoteRepo   *repository.QuoteRepository
	logger      *zap.Logger
}

func NewProfileService(
	profileRepo *repository.BusinessProfileRepository,
	prefRepo *repository.PreferenceRepository,
	quoteRepo *repository.QuoteRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		prefRepo:    prefRepo,
		quoteRepo:   quoteRepo,
		logger:      logger,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.BusinessProfileDTO, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business profile: %w", err)
	}

	dto := mapper.ToBusinessProfileDTO(profile)
	return &dto, nil
}

// Upsert creates the user's profile on first write and updates it after.
// Every change invalidates the user's current quotes: the profile is the
// bottom configured layer of the rate chain, so any job may resolve
// differently afterwards.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertBusinessProfileRequest) (*domain.BusinessProfileDTO, error) {
	if req.PrimaryTrade != "" && !domain.IsValidTradeType(req.PrimaryTrade) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTradeType, req.PrimaryTrade)
	}

	tradeRatesJSON, err := encodeTradeRates(req.TradeRates)
	if err != nil {
		return nil, fmt.Errorf("%w: tradeRates", ErrInvalidInput)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	creating := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get business profile: %w", err)
		}
		profile = &domain.BusinessProfile{UserID: userID}
		creating = true
	}

	profile.BusinessName = req.BusinessName
	profile.ABN = req.ABN
	profile.PrimaryTrade = domain.TradeType(req.PrimaryTrade)
	profile.GSTRegistered = req.GSTRegistered

	profile.HourlyRate = req.Rates.HourlyRate
	profile.HelperHourlyRate = req.Rates.HelperHourlyRate
	profile.DayRate = req.Rates.DayRate
	profile.CalloutFee = req.Rates.CalloutFee
	profile.MinCharge = req.Rates.MinCharge
	profile.RatePerM2Interior = req.Rates.RatePerM2Interior
	profile.RatePerM2Exterior = req.Rates.RatePerM2Exterior
	profile.RatePerLmTrim = req.Rates.RatePerLmTrim

	profile.DefaultMarginPct = req.DefaultMarginPct
	profile.DefaultDepositPct = req.DefaultDepositPct
	profile.DefaultPaymentTerms = req.DefaultPaymentTerms
	profile.TradeRates = tradeRatesJSON
	profile.ServiceAreas = req.ServiceAreas

	if creating {
		err = s.profileRepo.Create(ctx, profile)
	} else {
		err = s.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save business profile: %w", err)
	}

	if err := s.quoteRepo.MarkStaleForUser(ctx, userID); err != nil {
		s.logger.Warn("failed to mark quotes stale after profile change",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("business profile saved",
		zap.String("user_id", userID.String()),
		zap.Bool("created", creating),
	)

	dto := mapper.ToBusinessProfileDTO(profile)
	return &dto, nil
}

// GetMaterialMarkupPreference returns the user's standalone markup
// preference, or nil when unset or unparseable. It never fails: the markup
// chain treats a broken preference the same as an absent one.
func (s *ProfileService) GetMaterialMarkupPreference(ctx context.Context, userID uuid.UUID) *float64 {
	pref, err := s.prefRepo.Get(ctx, userID, domain.PreferenceMaterialMarkup)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("failed to load markup preference",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
		return nil
	}

	v, err := strconv.ParseFloat(pref.Value, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// SetMaterialMarkupPreference stores the standalone markup percentage.
// Changing it invalidates current quotes the same way a profile edit does.
func (s *ProfileService) SetMaterialMarkupPreference(ctx context.Context, userID uuid.UUID, value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%w: markup must be between 0 and 100", ErrInvalidInput)
	}

	str := strconv.FormatFloat(value, 'f', -1, 64)
	if err := s.prefRepo.Set(ctx, userID, domain.PreferenceMaterialMarkup, str); err != nil {
		return fmt.Errorf("failed to save markup preference: %w", err)
	}

	if err := s.quoteRepo.MarkStaleForUser(ctx, userID); err != nil {
		s.logger.Warn("failed to mark quotes stale after markup change",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// ListPreferences returns all of the user's key-value preferences
func (s *ProfileService) ListPreferences(ctx context.Context, userID uuid.UUID) ([]domain.PreferenceDTO, error) {
	prefs, err := s.prefRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	dtos := make([]domain.PreferenceDTO, len(prefs))
	for i, p := range prefs {
		dtos[i] = domain.PreferenceDTO{Key: p.Key, Value: p.Value}
	}
	return dtos, nil
}

func encodeTradeRates(tr map[string]map[string]float64) (string, error) {
	if len(tr) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(tr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
