package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tradequote/quoting-api/internal/ai"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/mapper"
	"github.com/tradequote/quoting-api/internal/rates"
	"github.com/tradequote/quoting-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuoteService resolves effective rates for jobs and manages AI quotes.
// The generator may be nil when no AI provider is configured; everything
// except Generate keeps working.
type QuoteService struct {
	jobRepo      *repository.JobRepository
	templateRepo *repository.RateTemplateRepository
	profileRepo  *repository.BusinessProfileRepository
	quoteRepo    *repository.QuoteRepository
	profiles     *ProfileService
	generator    ai.QuoteGenerator
	logger       *zap.Logger
}

func NewQuoteService(
	jobRepo *repository.JobRepository,
	templateRepo *repository.RateTemplateRepository,
	profileRepo *repository.BusinessProfileRepository,
	quoteRepo *repository.QuoteRepository,
	profiles *ProfileService,
	generator ai.QuoteGenerator,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		jobRepo:      jobRepo,
		templateRepo: templateRepo,
		profileRepo:  profileRepo,
		quoteRepo:    quoteRepo,
		profiles:     profiles,
		generator:    generator,
		logger:       logger,
	}
}

// rateContext is the loaded input to one resolution pass
type rateContext struct {
	job      *domain.Job
	template *domain.RateTemplate
	profile  *domain.BusinessProfile
}

func (s *QuoteService) getOwnedJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
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

// loadRateContext loads the job and its optional template and profile
// layers. The job must exist and belong to the user; template and profile
// load failures degrade that layer to nil rather than failing resolution.
func (s *QuoteService) loadRateContext(ctx context.Context, userID, jobID uuid.UUID) (*rateContext, error) {
	job, err := s.getOwnedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	rc := &rateContext{job: job}

	if job.RateTemplate != nil {
		rc.template = job.RateTemplate
	} else if job.RateTemplateID != nil {
		tpl, err := s.templateRepo.GetByID(ctx, *job.RateTemplateID)
		if err != nil {
			s.logger.Warn("job's rate template unavailable, layer skipped",
				zap.String("job_id", jobID.String()),
				zap.Error(err),
			)
		} else {
			rc.template = tpl
		}
	} else {
		// No explicit binding: the user's default template, if any, stands in
		tpl, err := s.templateRepo.GetDefaultForUser(ctx, userID)
		if err == nil {
			rc.template = tpl
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("default rate template unavailable, layer skipped",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("business profile unavailable, layer skipped",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	} else {
		rc.profile = profile
	}

	return rc, nil
}

// EffectiveRates resolves and returns the full rate set for a job,
// including the per-field source trace.
func (s *QuoteService) EffectiveRates(ctx context.Context, userID, jobID uuid.UUID) (*domain.EffectiveRatesDTO, error) {
	rc, err := s.loadRateContext(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	resolved := rates.Resolve(rc.job, rc.template, rc.profile)
	sources := rates.ResolveSources(rc.job, rc.template, rc.profile)

	dto := mapper.ToEffectiveRatesDTO(&resolved, sources)
	return &dto, nil
}

// MaterialMarkup resolves the markup chain for a job
func (s *QuoteService) MaterialMarkup(ctx context.Context, userID, jobID uuid.UUID) (*domain.MaterialMarkupDTO, error) {
	rc, err := s.loadRateContext(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	resolved := rates.Resolve(rc.job, rc.template, rc.profile)
	pref := s.profiles.GetMaterialMarkupPreference(ctx, userID)

	value, source := rates.ResolveMaterialMarkupWithSource(&resolved, rc.profile, pref)
	return &domain.MaterialMarkupDTO{Value: value, Source: source}, nil
}

// Generate produces a new quote for the job and persists it. Existing
// current quotes on the job are marked stale first: the newest quote is
// the only live one.
func (s *QuoteService) Generate(ctx context.Context, userID, jobID uuid.UUID, req *domain.GenerateQuoteRequest) (*domain.QuoteDTO, error) {
	if s.generator == nil {
		return nil, ErrGenerationUnavailable
	}

	rc, err := s.loadRateContext(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	resolved := rates.Resolve(rc.job, rc.template, rc.profile)
	pref := s.profiles.GetMaterialMarkupPreference(ctx, userID)
	markup := rates.ResolveMaterialMarkup(&resolved, rc.profile, pref)

	if !resolved.HasAnyRate() {
		s.logger.Warn("generating quote with no configured rates",
			zap.String("job_id", jobID.String()),
		)
	}

	businessName := ""
	if rc.profile != nil {
		businessName = rc.profile.BusinessName
	}

	prompt := ai.BuildQuotePrompt(&ai.PromptInput{
		Job:            rc.job,
		Rates:          &resolved,
		MaterialMarkup: markup,
		BusinessName:   businessName,
	})
	if req != nil && req.Notes != "" {
		prompt += "\nAdditional instructions from the tradie:\n" + req.Notes + "\n"
	}

	text, err := s.generator.GenerateQuote(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("quote generation failed: %w", err)
	}

	if err := s.quoteRepo.MarkStaleForJob(ctx, jobID); err != nil {
		s.logger.Warn("failed to mark previous quotes stale",
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
	}

	quote := &domain.Quote{
		JobID:     jobID,
		UserID:    userID,
		QuoteText: text,
		Model:     s.generator.Model(),
		Status:    domain.QuoteStatusCurrent,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	if rc.job.Status == domain.JobStatusDraft {
		if err := s.jobRepo.UpdateStatus(ctx, jobID, domain.JobStatusQuoted); err != nil {
			s.logger.Warn("failed to move job to quoted",
				zap.String("job_id", jobID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("quote generated",
		zap.String("quote_id", quote.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.String("model", quote.Model),
	)

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// GetLatest returns the newest quote for a job with its derived range
func (s *QuoteService) GetLatest(ctx context.Context, userID, jobID uuid.UUID) (*domain.QuoteDTO, error) {
	if _, err := s.getOwnedJob(ctx, userID, jobID); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.GetLatestForJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoQuote
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// ListByJob returns all quotes for a job, newest first, each with its range
func (s *QuoteService) ListByJob(ctx context.Context, userID, jobID uuid.UUID) ([]domain.QuoteDTO, error) {
	if _, err := s.getOwnedJob(ctx, userID, jobID); err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		dtos[i] = mapper.ToQuoteDTO(&quotes[i])
	}
	return dtos, nil
}
