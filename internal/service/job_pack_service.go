package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/estimate"
	"github.com/tradequote/quoting-api/internal/mapper"
	"github.com/tradequote/quoting-api/internal/rates"
	"github.com/tradequote/quoting-api/internal/repository"
	"github.com/tradequote/quoting-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JobPackService renders a printable job pack document for a quoted job
// and files it in storage. The pack combines the job details, the resolved
// rates, the latest quote with its derived range, and deposit terms.
type JobPackService struct {
	quotes    *QuoteService
	quoteRepo *repository.QuoteRepository
	packRepo  *repository.JobPackRepository
	store     storage.Storage
	logger    *zap.Logger
}

func NewJobPackService(
	quotes *QuoteService,
	quoteRepo *repository.QuoteRepository,
	packRepo *repository.JobPackRepository,
	store storage.Storage,
	logger *zap.Logger,
) *JobPackService {
	return &JobPackService{
		quotes:    quotes,
		quoteRepo: quoteRepo,
		packRepo:  packRepo,
		store:     store,
		logger:    logger,
	}
}

// Generate renders the pack, uploads it, and records the document
func (s *JobPackService) Generate(ctx context.Context, userID, jobID uuid.UUID) (*domain.JobPackDTO, error) {
	rc, err := s.quotes.loadRateContext(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.GetLatestForJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoQuote
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	resolved := rates.Resolve(rc.job, rc.template, rc.profile)
	doc := renderJobPack(rc, quote, &resolved)

	fileName := fmt.Sprintf("job-pack-%s.txt", time.Now().UTC().Format("20060102-150405"))
	prefix := "packs/" + jobID.String()

	storagePath, size, err := s.store.Upload(ctx, prefix, fileName, "text/plain; charset=utf-8", strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to store job pack: %w", err)
	}

	pack := &domain.JobPack{
		JobID:       jobID,
		UserID:      userID,
		FileName:    fileName,
		StoragePath: storagePath,
		Size:        size,
	}
	if err := s.packRepo.Create(ctx, pack); err != nil {
		return nil, fmt.Errorf("failed to record job pack: %w", err)
	}

	s.logger.Info("job pack generated",
		zap.String("pack_id", pack.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.Int64("size", size),
	)

	dto := mapper.ToJobPackDTO(pack)
	return &dto, nil
}

// List returns the packs generated for a job
func (s *JobPackService) List(ctx context.Context, userID, jobID uuid.UUID) ([]domain.JobPackDTO, error) {
	if _, err := s.quotes.getOwnedJob(ctx, userID, jobID); err != nil {
		return nil, err
	}

	packs, err := s.packRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job packs: %w", err)
	}

	dtos := make([]domain.JobPackDTO, len(packs))
	for i := range packs {
		dtos[i] = mapper.ToJobPackDTO(&packs[i])
	}
	return dtos, nil
}

// Download opens the stored pack document for streaming to the client
func (s *JobPackService) Download(ctx context.Context, userID, packID uuid.UUID) (*domain.JobPack, io.ReadCloser, error) {
	pack, err := s.packRepo.GetByID(ctx, packID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get job pack: %w", err)
	}
	if pack.UserID != userID {
		return nil, nil, ErrNotFound
	}

	rdr, err := s.store.Download(ctx, pack.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open job pack: %w", err)
	}
	return pack, rdr, nil
}

// renderJobPack lays out the plain-text pack document
func renderJobPack(rc *rateContext, quote *domain.Quote, resolved *rates.EffectiveRates) string {
	var b strings.Builder

	b.WriteString("JOB PACK\n")
	b.WriteString("========\n\n")

	if rc.profile != nil && rc.profile.BusinessName != "" {
		fmt.Fprintf(&b, "Business: %s\n", rc.profile.BusinessName)
		if rc.profile.ABN != "" {
			fmt.Fprintf(&b, "ABN: %s\n", rc.profile.ABN)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Job: %s\n", rc.job.Title)
	fmt.Fprintf(&b, "Trade: %s\n", rc.job.TradeType)
	if rc.job.ClientName != "" {
		fmt.Fprintf(&b, "Client: %s\n", rc.job.ClientName)
	}
	if rc.job.SiteAddress != "" {
		fmt.Fprintf(&b, "Site: %s\n", rc.job.SiteAddress)
	}
	if rc.job.Description != "" {
		fmt.Fprintf(&b, "\nScope of work:\n%s\n", rc.job.Description)
	}

	b.WriteString("\nRATES APPLIED\n")
	b.WriteString("-------------\n")
	writePackRate(&b, "Hourly rate", resolved.HourlyRate)
	writePackRate(&b, "Helper hourly rate", resolved.HelperHourlyRate)
	writePackRate(&b, "Day rate", resolved.DayRate)
	writePackRate(&b, "Callout fee", resolved.CalloutFee)
	writePackRate(&b, "Minimum charge", resolved.MinCharge)
	writePackRate(&b, "Rate per m2 (interior)", resolved.RatePerM2Interior)
	writePackRate(&b, "Rate per m2 (exterior)", resolved.RatePerM2Exterior)
	writePackRate(&b, "Rate per lm (trim)", resolved.RatePerLmTrim)

	b.WriteString("\nQUOTE\n")
	b.WriteString("-----\n")
	rng := estimate.DeriveRange(quote.QuoteText)
	fmt.Fprintf(&b, "Estimate: %s\n", rng.FormattedRange)
	if quote.Status == domain.QuoteStatusStale {
		b.WriteString("Note: rates have changed since this quote was generated.\n")
	}
	b.WriteString("\n")
	b.WriteString(quote.QuoteText)
	b.WriteString("\n")

	if rng.BaseTotal != nil && resolved.DefaultDepositPct != nil {
		deposit := depositAmount(*rng.BaseTotal, *resolved.DefaultDepositPct)
		b.WriteString("\nTERMS\n")
		b.WriteString("-----\n")
		fmt.Fprintf(&b, "Deposit (%s): %s\n",
			estimate.FormatPercent(*resolved.DefaultDepositPct),
			estimate.FormatCurrency(deposit),
		)
		if resolved.DefaultPaymentTerms != "" {
			fmt.Fprintf(&b, "Payment terms: %s\n", resolved.DefaultPaymentTerms)
		}
	}

	return b.String()
}

func writePackRate(b *strings.Builder, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "%-24s %s\n", label+":", estimate.FormatCurrency(*v))
}

// depositAmount computes the deposit in cents-exact decimal arithmetic,
// rounded to the nearest cent.
func depositAmount(total, pct float64) float64 {
	d := decimal.NewFromFloat(total).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := d.Float64()
	return f
}
