package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/repository"
	"github.com/tradequote/quoting-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTemplateService(t *testing.T, db *gorm.DB) (*RateTemplateService, *repository.QuoteRepository, *repository.JobRepository) {
	t.Helper()
	quoteRepo := repository.NewQuoteRepository(db)
	jobRepo := repository.NewJobRepository(db)
	return NewRateTemplateService(
		repository.NewRateTemplateRepository(db),
		jobRepo,
		quoteRepo,
		zap.NewNop(),
	), quoteRepo, jobRepo
}

func TestRateTemplateService_Create_Default(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, _ := newTemplateService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")

	first, err := svc.Create(ctx, user.ID, &domain.CreateRateTemplateRequest{
		Name:      "Standard",
		TradeType: "painter",
		IsDefault: true,
		Rates:     domain.RateValuesDTO{HourlyRate: testutil.FloatPtr(85)},
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	// A second default displaces the first
	second, err := svc.Create(ctx, user.ID, &domain.CreateRateTemplateRequest{
		Name:      "Premium",
		TradeType: "painter",
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	reloaded, err := svc.GetByID(ctx, user.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestRateTemplateService_Update_MarksBoundJobsStale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, quoteRepo, _ := newTemplateService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	tpl := testutil.CreateTestTemplate(t, db, user.ID, "Standard", domain.TradePainter)

	job := testutil.CreateTestJob(t, db, user.ID, "Repaint lounge", domain.TradePainter)
	job.RateTemplateID = &tpl.ID
	require.NoError(t, db.Save(job).Error)

	quote := &domain.Quote{
		JobID:     job.ID,
		UserID:    user.ID,
		QuoteText: "{}",
		Status:    domain.QuoteStatusCurrent,
	}
	quote.CreatedAt = time.Now()
	require.NoError(t, db.Create(quote).Error)

	_, err := svc.Update(ctx, user.ID, tpl.ID, &domain.UpdateRateTemplateRequest{
		Name:      "Standard",
		TradeType: "painter",
		Rates:     domain.RateValuesDTO{HourlyRate: testutil.FloatPtr(90)},
	})
	require.NoError(t, err)

	got, err := quoteRepo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusStale, got.Status)
}

func TestRateTemplateService_Delete_DetachesJobs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, quoteRepo, jobRepo := newTemplateService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	tpl := testutil.CreateTestTemplate(t, db, user.ID, "Standard", domain.TradePainter)

	job := testutil.CreateTestJob(t, db, user.ID, "Repaint lounge", domain.TradePainter)
	job.RateTemplateID = &tpl.ID
	require.NoError(t, db.Save(job).Error)

	quote := &domain.Quote{
		JobID:     job.ID,
		UserID:    user.ID,
		QuoteText: "{}",
		Status:    domain.QuoteStatusCurrent,
	}
	quote.CreatedAt = time.Now()
	require.NoError(t, db.Create(quote).Error)

	require.NoError(t, svc.Delete(ctx, user.ID, tpl.ID))

	// Job falls through to the profile layer
	reloaded, err := jobRepo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.RateTemplateID)

	// Its quotes no longer reflect current rates
	got, err := quoteRepo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusStale, got.Status)

	_, err = svc.GetByID(ctx, user.ID, tpl.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRateTemplateService_Ownership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, _ := newTemplateService(t, db)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, db, "Sam")
	intruder := testutil.CreateTestUser(t, db, "Alex")
	tpl := testutil.CreateTestTemplate(t, db, owner.ID, "Standard", domain.TradePainter)

	_, err := svc.GetByID(ctx, intruder.ID, tpl.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetDefault(ctx, intruder.ID, tpl.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, intruder.ID, tpl.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
