package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/domain"
	"github.com/tradequote/quoting-api/internal/testutil"
)

func TestJobRepository_ListByUser_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	other := testutil.CreateTestUser(t, db, "Alex")

	painting := testutil.CreateTestJob(t, db, user.ID, "Repaint hallway", domain.TradePainter)
	tiling := testutil.CreateTestJob(t, db, user.ID, "Splashback tiling", domain.TradeTiler)
	testutil.CreateTestJob(t, db, other.ID, "Not mine", domain.TradePainter)

	require.NoError(t, repo.UpdateStatus(ctx, tiling.ID, domain.JobStatusQuoted))

	jobs, total, err := repo.ListByUser(ctx, user.ID, 1, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, jobs, 2)

	quoted := domain.JobStatusQuoted
	jobs, total, err = repo.ListByUser(ctx, user.ID, 1, 20, &JobFilters{Status: &quoted})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, tiling.ID, jobs[0].ID)

	painter := domain.TradePainter
	jobs, _, err = repo.ListByUser(ctx, user.ID, 1, 20, &JobFilters{TradeType: &painter})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, painting.ID, jobs[0].ID)

	jobs, _, err = repo.ListByUser(ctx, user.ID, 1, 20, &JobFilters{Search: "HALLWAY"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, painting.ID, jobs[0].ID)
}

func TestJobRepository_ListByUser_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	for i := 0; i < 5; i++ {
		testutil.CreateTestJob(t, db, user.ID, "Job", domain.TradeHandyman)
	}

	jobs, total, err := repo.ListByUser(ctx, user.ID, 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, jobs, 2)

	jobs, _, err = repo.ListByUser(ctx, user.ID, 3, 2, nil)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestJobRepository_TemplateBinding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam")
	tpl := testutil.CreateTestTemplate(t, db, user.ID, "Standard", domain.TradePainter)

	job := testutil.CreateTestJob(t, db, user.ID, "Repaint lounge", domain.TradePainter)
	job.RateTemplateID = &tpl.ID
	require.NoError(t, repo.Update(ctx, job))

	// GetByID preloads the bound template
	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RateTemplate)
	assert.Equal(t, tpl.ID, got.RateTemplate.ID)

	ids, err := repo.ListIDsByTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, job.ID, ids[0])

	// Detaching clears the reference so rates fall through to the profile
	require.NoError(t, repo.DetachTemplate(ctx, tpl.ID))

	got, err = repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RateTemplateID)

	ids, err = repo.ListIDsByTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
