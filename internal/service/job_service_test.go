package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/repository"
	"github.com/tradequote/quoting-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newJobService(t *testing.T, db *gorm.DB) (*JobService, *repository.QuoteRepository) {
	t.Helper()
	quoteRepo := repository.NewQuoteRepository(db)
	return NewJobService(
		repository.NewJobRepository(db),
		repository.NewRateTemplateRepository(db),
		quoteRepo,
		zap.NewNop(),
	), quoteRepo
}

func TestJobService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newJobService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")

	dto, err := svc.Create(ctx, user.ID, &domain.CreateJobRequest{
		Title:      "Repaint lounge",
		TradeType:  "painter",
		ClientName: "Jordan",
		Overrides: domain.RateValuesDTO{
			HourlyRate: testutil.FloatPtr(75),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDraft, dto.Status)
	assert.Equal(t, domain.TradePainter, dto.TradeType)
	require.NotNil(t, dto.Overrides.HourlyRate)
	assert.Equal(t, 75.0, *dto.Overrides.HourlyRate)
}

func TestJobService_Create_InvalidTrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newJobService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")

	_, err := svc.Create(ctx, user.ID, &domain.CreateJobRequest{
		Title:     "Mystery job",
		TradeType: "wizard",
	})
	assert.ErrorIs(t, err, ErrInvalidTradeType)
}

func TestJobService_Create_ForeignTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newJobService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	other := testutil.CreateTestUser(t, db, "Alex")
	foreign := testutil.CreateTestTemplate(t, db, other.ID, "Not yours", domain.TradePainter)

	_, err := svc.Create(ctx, user.ID, &domain.CreateJobRequest{
		Title:          "Repaint lounge",
		TradeType:      "painter",
		RateTemplateID: &foreign.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobService_Update_RateChangeMarksQuotesStale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, quoteRepo := newJobService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	job := testutil.CreateTestJob(t, db, user.ID, "Repaint lounge", domain.TradePainter)

	quote := &domain.Quote{
		JobID:     job.ID,
		UserID:    user.ID,
		QuoteText: "{}",
		Status:    domain.QuoteStatusCurrent,
	}
	quote.CreatedAt = time.Now()
	require.NoError(t, db.Create(quote).Error)

	// A title-only edit leaves quotes alone
	_, err := svc.Update(ctx, user.ID, job.ID, &domain.UpdateJobRequest{
		Title:     "Repaint lounge and hallway",
		TradeType: "painter",
	})
	require.NoError(t, err)

	got, err := quoteRepo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusCurrent, got.Status)

	// An override change invalidates them
	_, err = svc.Update(ctx, user.ID, job.ID, &domain.UpdateJobRequest{
		Title:     "Repaint lounge and hallway",
		TradeType: "painter",
		Overrides: domain.RateValuesDTO{
			HourlyRate: testutil.FloatPtr(95),
		},
	})
	require.NoError(t, err)

	got, err = quoteRepo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusStale, got.Status)
}

func TestJobService_Ownership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newJobService(t, db)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, db, "Sam")
	intruder := testutil.CreateTestUser(t, db, "Alex")
	job := testutil.CreateTestJob(t, db, owner.ID, "Private job", domain.TradePainter)

	_, err := svc.GetByID(ctx, intruder.ID, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, intruder.ID, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, owner.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobService_List_ClampsPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newJobService(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	testutil.CreateTestJob(t, db, user.ID, "One", domain.TradePainter)

	resp, err := svc.List(ctx, user.ID, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, int64(1), resp.Total)
}
