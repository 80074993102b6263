package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/mapper"
	"github.com/tradequote/quoting-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RateTemplateService struct {
	templateRepo *repository.RateTemplateRepository
	jobRepo      *repository.JobRepository
	quoteRepo    *repository.QuoteRepository
	logger       *zap.Logger
}

func NewRateTemplateService(
	templateRepo *repository.RateTemplateRepository,
	jobRepo *repository.JobRepository,
	quoteRepo *repository.QuoteRepository,
	logger *zap.Logger,
) *RateTemplateService {
	return &RateTemplateService{
		templateRepo: templateRepo,
		jobRepo:      jobRepo,
		quoteRepo:    quoteRepo,
		logger:       logger,
	}
}

func (s *RateTemplateService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateRateTemplateRequest) (*domain.RateTemplateDTO, error) {
	if !domain.IsValidTradeType(req.TradeType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTradeType, req.TradeType)
	}

	tpl := &domain.RateTemplate{
		UserID:       userID,
		Name:         req.Name,
		TradeType:    domain.TradeType(req.TradeType),
		PropertyType: domain.PropertyType(req.PropertyType),

		HourlyRate:            req.Rates.HourlyRate,
		HelperHourlyRate:      req.Rates.HelperHourlyRate,
		DayRate:               req.Rates.DayRate,
		CalloutFee:            req.Rates.CalloutFee,
		MinCharge:             req.Rates.MinCharge,
		RatePerM2Interior:     req.Rates.RatePerM2Interior,
		RatePerM2Exterior:     req.Rates.RatePerM2Exterior,
		RatePerLmTrim:         req.Rates.RatePerLmTrim,
		MaterialMarkupPercent: req.Rates.MaterialMarkupPercent,
	}

	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to create rate template: %w", err)
	}

	// The default flag goes through SetDefault so the one-default-per-user
	// invariant is enforced in a single place.
	if req.IsDefault {
		if err := s.templateRepo.SetDefault(ctx, userID, tpl.ID); err != nil {
			return nil, fmt.Errorf("failed to set default template: %w", err)
		}
		tpl.IsDefault = true
	}

	s.logger.Info("rate template created",
		zap.String("template_id", tpl.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("is_default", tpl.IsDefault),
	)

	dto := mapper.ToRateTemplateDTO(tpl)
	return &dto, nil
}

func (s *RateTemplateService) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.RateTemplateDTO, error) {
	tpl, err := s.getOwnedTemplate(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToRateTemplateDTO(tpl)
	return &dto, nil
}

func (s *RateTemplateService) List(ctx context.Context, userID uuid.UUID, tradeType *domain.TradeType) ([]domain.RateTemplateDTO, error) {
	templates, err := s.templateRepo.ListByUser(ctx, userID, tradeType)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate templates: %w", err)
	}

	dtos := make([]domain.RateTemplateDTO, len(templates))
	for i := range templates {
		dtos[i] = mapper.ToRateTemplateDTO(&templates[i])
	}
	return dtos, nil
}

func (s *RateTemplateService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateRateTemplateRequest) (*domain.RateTemplateDTO, error) {
	if !domain.IsValidTradeType(req.TradeType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTradeType, req.TradeType)
	}

	tpl, err := s.getOwnedTemplate(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tpl.Name = req.Name
	tpl.TradeType = domain.TradeType(req.TradeType)
	tpl.PropertyType = domain.PropertyType(req.PropertyType)

	tpl.HourlyRate = req.Rates.HourlyRate
	tpl.HelperHourlyRate = req.Rates.HelperHourlyRate
	tpl.DayRate = req.Rates.DayRate
	tpl.CalloutFee = req.Rates.CalloutFee
	tpl.MinCharge = req.Rates.MinCharge
	tpl.RatePerM2Interior = req.Rates.RatePerM2Interior
	tpl.RatePerM2Exterior = req.Rates.RatePerM2Exterior
	tpl.RatePerLmTrim = req.Rates.RatePerLmTrim
	tpl.MaterialMarkupPercent = req.Rates.MaterialMarkupPercent

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to update rate template: %w", err)
	}

	// Quotes on jobs using this template were priced under the old values
	if err := s.markTemplateJobsStale(ctx, tpl.ID); err != nil {
		s.logger.Warn("failed to mark quotes stale after template change",
			zap.String("template_id", tpl.ID.String()),
			zap.Error(err),
		)
	}

	dto := mapper.ToRateTemplateDTO(tpl)
	return &dto, nil
}

// SetDefault marks the template as the user's default, clearing any other
func (s *RateTemplateService) SetDefault(ctx context.Context, userID, id uuid.UUID) (*domain.RateTemplateDTO, error) {
	if err := s.templateRepo.SetDefault(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set default template: %w", err)
	}

	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate template: %w", err)
	}

	s.logger.Info("default rate template changed",
		zap.String("template_id", id.String()),
		zap.String("user_id", userID.String()),
	)

	dto := mapper.ToRateTemplateDTO(tpl)
	return &dto, nil
}

// Delete removes the template. Jobs referencing it are detached first so
// their rates fall through to the profile layer, and their quotes are
// marked stale.
func (s *RateTemplateService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwnedTemplate(ctx, userID, id); err != nil {
		return err
	}

	if err := s.markTemplateJobsStale(ctx, id); err != nil {
		s.logger.Warn("failed to mark quotes stale before template delete",
			zap.String("template_id", id.String()),
			zap.Error(err),
		)
	}

	if err := s.jobRepo.DetachTemplate(ctx, id); err != nil {
		return fmt.Errorf("failed to detach jobs from template: %w", err)
	}

	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete rate template: %w", err)
	}

	s.logger.Info("rate template deleted",
		zap.String("template_id", id.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (s *RateTemplateService) getOwnedTemplate(ctx context.Context, userID, id uuid.UUID) (*domain.RateTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rate template: %w", err)
	}
	if tpl.UserID != userID {
		return nil, ErrNotFound
	}
	return tpl, nil
}

func (s *RateTemplateService) markTemplateJobsStale(ctx context.Context, templateID uuid.UUID) error {
	jobIDs, err := s.jobRepo.ListIDsByTemplate(ctx, templateID)
	if err != nil {
		return err
	}
	for _, jobID := range jobIDs {
		if err := s.quoteRepo.MarkStaleForJob(ctx, jobID); err != nil {
			return err
		}
	}
	return nil
}
