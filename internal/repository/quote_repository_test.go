package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/testutil"
	"gorm.io/gorm"
)

func createQuote(t *testing.T, db *gorm.DB, jobID, userID uuid.UUID, createdAt time.Time, status domain.QuoteStatus) *domain.Quote {
	t.Helper()
	quote := &domain.Quote{
		JobID:     jobID,
		UserID:    userID,
		QuoteText: `{"totalEstimate":{"totalJobEstimate":"$1,000 - $1,200"}}`,
		Model:     "gemini-1.5-flash",
		Status:    status,
	}
	quote.CreatedAt = createdAt
	require.NoError(t, db.Create(quote).Error)
	return quote
}

func TestQuoteRepository_GetLatestForJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	job := testutil.CreateTestJob(t, db, user.ID, "Repaint lounge", domain.TradePainter)

	older := createQuote(t, db, job.ID, user.ID, time.Now().Add(-2*time.Hour), domain.QuoteStatusStale)
	newer := createQuote(t, db, job.ID, user.ID, time.Now().Add(-1*time.Hour), domain.QuoteStatusCurrent)

	got, err := repo.GetLatestForJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.NotEqual(t, older.ID, got.ID)

	_, err = repo.GetLatestForJob(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestQuoteRepository_MarkStaleForJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	job := testutil.CreateTestJob(t, db, user.ID, "Tiling bathroom", domain.TradeTiler)
	otherJob := testutil.CreateTestJob(t, db, user.ID, "Deck repair", domain.TradeCarpenter)

	q1 := createQuote(t, db, job.ID, user.ID, time.Now().Add(-time.Hour), domain.QuoteStatusCurrent)
	q2 := createQuote(t, db, otherJob.ID, user.ID, time.Now(), domain.QuoteStatusCurrent)

	require.NoError(t, repo.MarkStaleForJob(ctx, job.ID))

	got1, err := repo.GetByID(ctx, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusStale, got1.Status)

	// The other job's quote is untouched
	got2, err := repo.GetByID(ctx, q2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusCurrent, got2.Status)
}

func TestQuoteRepository_MarkStaleForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	other := testutil.CreateTestUser(t, db, "Alex")
	job := testutil.CreateTestJob(t, db, user.ID, "Fence painting", domain.TradePainter)
	otherJob := testutil.CreateTestJob(t, db, other.ID, "Rewire shed", domain.TradeElectrician)

	mine := createQuote(t, db, job.ID, user.ID, time.Now(), domain.QuoteStatusCurrent)
	theirs := createQuote(t, db, otherJob.ID, other.ID, time.Now(), domain.QuoteStatusCurrent)

	require.NoError(t, repo.MarkStaleForUser(ctx, user.ID))

	gotMine, err := repo.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusStale, gotMine.Status)

	gotTheirs, err := repo.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusCurrent, gotTheirs.Status)
}

func TestQuoteRepository_MarkStaleOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	job := testutil.CreateTestJob(t, db, user.ID, "Bathroom reno", domain.TradePlumber)

	old := createQuote(t, db, job.ID, user.ID, time.Now().Add(-40*24*time.Hour), domain.QuoteStatusCurrent)
	recent := createQuote(t, db, job.ID, user.ID, time.Now().Add(-time.Hour), domain.QuoteStatusCurrent)
	alreadyStale := createQuote(t, db, job.ID, user.ID, time.Now().Add(-60*24*time.Hour), domain.QuoteStatusStale)

	marked, err := repo.MarkStaleOlderThan(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	gotOld, err := repo.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusStale, gotOld.Status)

	gotRecent, err := repo.GetByID(ctx, recent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusCurrent, gotRecent.Status)

	// Already-stale rows do not count towards the total
	gotStale, err := repo.GetByID(ctx, alreadyStale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusStale, gotStale.Status)
}

func TestQuoteRepository_ListByJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	job := testutil.CreateTestJob(t, db, user.ID, "Garden makeover", domain.TradeLandscaper)

	first := createQuote(t, db, job.ID, user.ID, time.Now().Add(-2*time.Hour), domain.QuoteStatusStale)
	second := createQuote(t, db, job.ID, user.ID, time.Now().Add(-1*time.Hour), domain.QuoteStatusCurrent)

	quotes, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, second.ID, quotes[0].ID)
	assert.Equal(t, first.ID, quotes[1].ID)
}
