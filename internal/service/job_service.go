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

type JobService struct {
	jobRepo      *repository.JobRepository
	templateRepo *repository.RateTemplateRepository
	quoteRepo    *repository.QuoteRepository
	logger       *zap.Logger
}

func NewJobService(
	jobRepo *repository.JobRepository,
	templateRepo *repository.RateTemplateRepository,
	quoteRepo *repository.QuoteRepository,
	logger *zap.Logger,
) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		templateRepo: templateRepo,
		quoteRepo:    quoteRepo,
		logger:       logger,
	}
}

func (s *JobService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateJobRequest) (*domain.JobDTO, error) {
	if !domain.IsValidTradeType(req.TradeType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTradeType, req.TradeType)
	}

	if req.RateTemplateID != nil {
		if err := s.checkTemplateOwnership(ctx, userID, *req.RateTemplateID); err != nil {
			return nil, err
		}
	}

	job := &domain.Job{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		SiteAddress:  req.SiteAddress,
		TradeType:    domain.TradeType(req.TradeType),
		PropertyType: domain.PropertyType(req.PropertyType),
		Status:       domain.JobStatusDraft,

		RateTemplateID: req.RateTemplateID,

		HourlyRate:            req.Overrides.HourlyRate,
		HelperHourlyRate:      req.Overrides.HelperHourlyRate,
		DayRate:               req.Overrides.DayRate,
		CalloutFee:            req.Overrides.CalloutFee,
		MinCharge:             req.Overrides.MinCharge,
		RatePerM2Interior:     req.Overrides.RatePerM2Interior,
		RatePerM2Exterior:     req.Overrides.RatePerM2Exterior,
		RatePerLmTrim:         req.Overrides.RatePerLmTrim,
		MaterialMarkupPercent: req.Overrides.MaterialMarkupPercent,

		Photos: req.Photos,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("trade_type", string(job.TradeType)),
	)

	dto := mapper.ToJobDTO(job)
	return &dto, nil
}

func (s *JobService) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.JobDTO, error) {
	job, err := s.getOwnedJob(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToJobDTO(job)
	return &dto, nil
}

func (s *JobService) List(ctx context.Context, userID uuid.UUID, page, pageSize int, filters *repository.JobFilters) (*domain.JobListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	jobs, total, err := s.jobRepo.ListByUser(ctx, userID, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	dtos := make([]domain.JobDTO, len(jobs))
	for i := range jobs {
		dtos[i] = mapper.ToJobDTO(&jobs[i])
	}

	return &domain.JobListResponse{
		Jobs:     dtos,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *JobService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateJobRequest) (*domain.JobDTO, error) {
	if !domain.IsValidTradeType(req.TradeType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTradeType, req.TradeType)
	}

	job, err := s.getOwnedJob(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.RateTemplateID != nil {
		if err := s.checkTemplateOwnership(ctx, userID, *req.RateTemplateID); err != nil {
			return nil, err
		}
	}

	ratesChanged := ratesDiffer(job, req)

	job.Title = req.Title
	job.Description = req.Description
	job.ClientName = req.ClientName
	job.ClientEmail = req.ClientEmail
	job.ClientPhone = req.ClientPhone
	job.SiteAddress = req.SiteAddress
	job.TradeType = domain.TradeType(req.TradeType)
	job.PropertyType = domain.PropertyType(req.PropertyType)
	if req.Status != "" {
		job.Status = domain.JobStatus(req.Status)
	}

	job.RateTemplateID = req.RateTemplateID
	job.RateTemplate = nil

	job.HourlyRate = req.Overrides.HourlyRate
	job.HelperHourlyRate = req.Overrides.HelperHourlyRate
	job.DayRate = req.Overrides.DayRate
	job.CalloutFee = req.Overrides.CalloutFee
	job.MinCharge = req.Overrides.MinCharge
	job.RatePerM2Interior = req.Overrides.RatePerM2Interior
	job.RatePerM2Exterior = req.Overrides.RatePerM2Exterior
	job.RatePerLmTrim = req.Overrides.RatePerLmTrim
	job.MaterialMarkupPercent = req.Overrides.MaterialMarkupPercent

	job.Photos = req.Photos

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	// A change to overrides or the template binding invalidates existing
	// quotes since they were priced under the old effective rates.
	if ratesChanged {
		if err := s.quoteRepo.MarkStaleForJob(ctx, job.ID); err != nil {
			s.logger.Warn("failed to mark quotes stale after rate change",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
	}

	dto := mapper.ToJobDTO(job)
	return &dto, nil
}

func (s *JobService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwnedJob(ctx, userID, id); err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.logger.Info("job deleted",
		zap.String("job_id", id.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (s *JobService) getOwnedJob(ctx context.Context, userID, id uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.UserID != userID {
		return nil, ErrNotFound
	}
	return job, nil
}

func (s *JobService) checkTemplateOwnership(ctx context.Context, userID, templateID uuid.UUID) error {
	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: rate template", ErrNotFound)
		}
		return fmt.Errorf("failed to get rate template: %w", err)
	}
	if tpl.UserID != userID {
		return fmt.Errorf("%w: rate template", ErrNotFound)
	}
	return nil
}

// ratesDiffer reports whether an update changes anything that feeds the
// rate resolver: the override fields or the template binding.
func ratesDiffer(job *domain.Job, req *domain.UpdateJobRequest) bool {
	if !uuidPtrEqual(job.RateTemplateID, req.RateTemplateID) {
		return true
	}
	pairs := [][2]*float64{
		{job.HourlyRate, req.Overrides.HourlyRate},
		{job.HelperHourlyRate, req.Overrides.HelperHourlyRate},
		{job.DayRate, req.Overrides.DayRate},
		{job.CalloutFee, req.Overrides.CalloutFee},
		{job.MinCharge, req.Overrides.MinCharge},
		{job.RatePerM2Interior, req.Overrides.RatePerM2Interior},
		{job.RatePerM2Exterior, req.Overrides.RatePerM2Exterior},
		{job.RatePerLmTrim, req.Overrides.RatePerLmTrim},
		{job.MaterialMarkupPercent, req.Overrides.MaterialMarkupPercent},
	}
	for _, p := range pairs {
		if !floatPtrEqual(p[0], p[1]) {
			return true
		}
	}
	return false
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
